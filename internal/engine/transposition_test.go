package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelchess/chesscore/internal/board"
)

func TestTranspositionProbeMiss(t *testing.T) {
	tt := NewTranspositionTable(1)
	_, found := tt.Probe(0x1234, TTFromAB, 4)
	require.False(t, found)
}

func TestTranspositionStoreAndProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(0xABCDEF0123456789)
	move := board.NewMove(board.E2, board.E4, board.NewPiece(board.Pawn, board.White))

	tt.Store(hash, 6, 42, TTExact, move, TTFromAB)

	entry, found := tt.Probe(hash, TTFromAB, 4)
	require.True(t, found)
	require.Equal(t, int16(42), entry.Score)
	require.Equal(t, move, entry.BestMove)
	require.Equal(t, TTExact, entry.Flag)
}

func TestTranspositionRejectsShallowerEntry(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(0xAAAA)
	move := board.NewMove(board.E2, board.E4, board.NewPiece(board.Pawn, board.White))

	tt.Store(hash, 3, 0, TTExact, move, TTFromAB)

	// An alpha-beta caller asking for depth 5 can't trust a depth-3 entry.
	_, found := tt.Probe(hash, TTFromAB, 5)
	require.False(t, found)

	// But asking for depth 3 or shallower is fine.
	_, found = tt.Probe(hash, TTFromAB, 3)
	require.True(t, found)
}

func TestTranspositionQuiescenceEntryInvisibleToAlphaBeta(t *testing.T) {
	tt := NewTranspositionTable(1)
	hash := uint64(0xBEEF)
	move := board.NewMove(board.E2, board.E4, board.NewPiece(board.Pawn, board.White))

	tt.Store(hash, 0, 10, TTExact, move, TTFromQuiescence)

	_, found := tt.Probe(hash, TTFromAB, 1)
	require.False(t, found, "a quiescence-origin entry must never satisfy an alpha-beta probe")

	entry, found := tt.Probe(hash, TTFromQuiescence, 0)
	require.True(t, found)
	require.Equal(t, move, entry.BestMove)
}

func TestTranspositionKeyCollisionIsRejected(t *testing.T) {
	tt := NewTranspositionTable(1)
	// Two hashes sharing the low bits (same slot) but differing upper
	// 32 bits must not be confused for one another.
	low := uint64(0x0000000000000001)
	high := uint64(0x0000000100000001)

	move := board.NewMove(board.E2, board.E4, board.NewPiece(board.Pawn, board.White))
	tt.Store(low, 4, 0, TTExact, move, TTFromAB)

	_, found := tt.Probe(high, TTFromAB, 1)
	require.False(t, found)
}

func TestTranspositionHashFullAndClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	require.Equal(t, 0, tt.HashFull())

	move := board.NewMove(board.E2, board.E4, board.NewPiece(board.Pawn, board.White))
	// Fill a tenth of the slots; HashFull is in permille, so a handful
	// of entries in a 1 MB table would still round down to 0.
	for i := uint64(0); i < tt.Size()/10; i++ {
		tt.Store(i, 1, 0, TTExact, move, TTFromAB)
	}
	require.Greater(t, tt.HashFull(), 0)

	tt.Clear()
	require.Equal(t, 0, tt.HashFull())
	_, found := tt.Probe(0, TTFromAB, 0)
	require.False(t, found)
}

func TestAdjustScoreRoundTripsMateScores(t *testing.T) {
	mateIn3 := MateScore - 3
	stored := AdjustScoreToTT(mateIn3, 2)
	got := AdjustScoreFromTT(stored, 2)
	require.Equal(t, mateIn3, got)

	nonMate := 57
	require.Equal(t, nonMate, AdjustScoreToTT(nonMate, 5))
	require.Equal(t, nonMate, AdjustScoreFromTT(nonMate, 5))
}
