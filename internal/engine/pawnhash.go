package engine

import "github.com/kestrelchess/chesscore/internal/board"

// PawnEntry stores a cached pawn material-and-PST subtotal, keyed by
// the Zobrist pawn key of the position it was computed for.
type PawnEntry struct {
	Key   uint64
	Score int16
}

// PawnTable is a hash table for caching pawn-structure evaluations,
// indexed directly by the low bits of the key rather than chained
// (a miss simply recomputes and overwrites).
type PawnTable struct {
	entries []PawnEntry
	mask    uint64
}

// NewPawnTable creates a new pawn hash table with the given size in MB.
func NewPawnTable(sizeMB int) *PawnTable {
	entrySize := 10 // 8 (key) + 2 (score), rounded to a power of 2 slot count
	numEntries := (sizeMB * 1024 * 1024) / entrySize

	size := 1
	for size*2 <= numEntries {
		size *= 2
	}

	return &PawnTable{
		entries: make([]PawnEntry, size),
		mask:    uint64(size - 1),
	}
}

// Probe looks up the cached pawn material-and-PST score for key.
func (pt *PawnTable) Probe(key uint64) (score int, found bool) {
	entry := &pt.entries[key&pt.mask]
	if entry.Key == key {
		return int(entry.Score), true
	}
	return 0, false
}

// Store saves the pawn material-and-PST score for key.
func (pt *PawnTable) Store(key uint64, score int) {
	entry := &pt.entries[key&pt.mask]
	entry.Key = key
	entry.Score = int16(score)
}

// Clear empties the pawn hash table.
func (pt *PawnTable) Clear() {
	for i := range pt.entries {
		pt.entries[i] = PawnEntry{}
	}
}

// pawnHashKey returns the key used to index the pawn hash table: the
// position's incrementally maintained Zobrist pawn key, which depends
// only on pawn placement and nothing else.
func pawnHashKey(pos *board.Board) uint64 {
	return pos.PawnKey
}
