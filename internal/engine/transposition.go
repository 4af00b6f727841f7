package engine

import (
	"github.com/kestrelchess/chesscore/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// TTOrigin distinguishes an entry produced by the main alpha-beta
// search from one produced by quiescence search: a quiescence entry
// was only ever searched to "depth 0" (captures/promotions from the
// leaf), so Probe never lets it satisfy an alpha-beta caller, while a
// quiescence caller accepts either. Searcher.quiescence itself neither
// probes nor stores entries; negamax stores only TTFromAB entries.
type TTOrigin uint8

const (
	TTEmpty TTOrigin = iota
	TTFromAB
	TTFromQuiescence
)

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Key      uint32     // Upper 32 bits of Zobrist hash for verification
	BestMove board.Move // Best move found
	Score    int16      // Score (bounded by flag, already mate-distance adjusted for storage)
	Depth    int8       // Search depth remaining
	Flag     TTFlag     // Type of bound
	Origin   TTOrigin   // Which search produced this entry
	Age      uint8      // Generation for replacement
}

// TranspositionTable is a direct-mapped hash table for search results.
// A lookup is a Slot: Empty, FromAB, or FromQuiescence; collisions are
// always replaced, matching the teacher's always-replace policy.
type TranspositionTable struct {
	entries []TTEntry
	size    uint64
	mask    uint64
	age     uint8

	filled uint64 // monotonically capped occupancy counter for HashFull

	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	entrySize := uint64(16) // approximate size of TTEntry, rounded up
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize

	numEntries = roundDownToPowerOf2(numEntries)
	if numEntries == 0 {
		numEntries = 1
	}

	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up hash for a caller searching with the given origin.
// A FromQuiescence entry is invisible to an alpha-beta caller (it was
// never searched past captures/promotions); a FromAB entry satisfies an
// alpha-beta caller only if it was searched at least as deep as
// requested, while a quiescence caller accepts any depth.
func (tt *TranspositionTable) Probe(hash uint64, origin TTOrigin, depth int) (TTEntry, bool) {
	tt.probes++

	idx := hash & tt.mask
	entry := tt.entries[idx]

	if entry.Origin == TTEmpty || entry.Key != uint32(hash>>32) {
		return TTEntry{}, false
	}
	if origin == TTFromAB {
		if entry.Origin == TTFromQuiescence {
			return TTEntry{}, false
		}
		if int(entry.Depth) < depth {
			return TTEntry{}, false
		}
	}

	tt.hits++
	return entry, true
}

// Store saves a position in the transposition table under an
// always-replace policy: the newest search result for a slot wins,
// since stale entries from prior searches (tracked via Age) are
// otherwise indistinguishable from a live deep entry at lookup time.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move, origin TTOrigin) {
	idx := hash & tt.mask
	entry := &tt.entries[idx]

	if entry.Origin == TTEmpty {
		tt.filled++
	}

	entry.Key = uint32(hash >> 32)
	entry.BestMove = bestMove
	entry.Score = int16(score)
	entry.Depth = int8(depth)
	entry.Flag = flag
	entry.Origin = origin
	entry.Age = tt.age
}

// NewSearch increments the age counter for a new search.
func (tt *TranspositionTable) NewSearch() {
	tt.age++
}

// Clear clears the transposition table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.age = 0
	tt.hits = 0
	tt.probes = 0
	tt.filled = 0
}

// HashFull returns the permille (parts per thousand) of the table that is used.
func (tt *TranspositionTable) HashFull() int {
	if tt.size == 0 {
		return 0
	}
	if tt.filled > tt.size {
		return 1000
	}
	return int((tt.filled * 1000) / tt.size)
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// AdjustScoreFromTT adjusts a mate score read from the table back to
// the current search's ply (stored mate scores are ply-0-relative).
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT adjusts a mate score found at the current ply to be
// ply-0-relative before storing it in the table.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
