package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelchess/chesscore/internal/board"
)

func newTestSearcher() *Searcher {
	return NewSearcher(NewTranspositionTable(1))
}

// TestSearchFindsMateInOne checks that a two-ply search recognizes a
// forced mate: White's rook lift to the back rank leaves Black with no
// legal reply while in check.
func TestSearchFindsMateInOne(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	s := newTestSearcher()
	move, score := s.Search(pos, 2)

	require.Equal(t, board.A1, move.From())
	require.Equal(t, board.A8, move.To())
	require.Greater(t, score, MateScore-MaxPly)
}

// TestSearchStalemateReturnsZero checks that searching from a stalemate
// position returns no move and a score of 0.
func TestSearchStalemateReturnsZero(t *testing.T) {
	pos, err := board.ParseFEN("7k/5K2/6Q1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	s := newTestSearcher()
	move, score := s.Search(pos, 2)

	require.Equal(t, board.NoMove, move)
	require.Equal(t, 0, score)
}

// refMinimax is an exhaustive, unpruned negamax used only to check that
// the production alpha-beta search returns the same root value it
// would without pruning. It shares Evaluate as its leaf function,
// which only agrees with quiescence's stand-pat when the position
// being searched never offers a capture — true of the sparse
// king-and-pawn position used below.
func refMinimax(pos *board.Board, depth int) int {
	if depth == 0 {
		return Evaluate(pos)
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if pos.InCheck() {
			return -MateScore
		}
		return 0
	}

	best := -Infinity
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		undo := pos.MakeMove(m)
		score := -refMinimax(pos, depth-1)
		pos.UnmakeMove(undo)
		if score > best {
			best = score
		}
	}
	return best
}

func TestNegamaxAgreesWithExhaustiveMinimax(t *testing.T) {
	// King-and-pawn position far enough apart that no capture is ever
	// available for several plies, so quiescence's stand-pat equals
	// refMinimax's leaf evaluation exactly.
	fen := "8/8/4k3/8/8/4K3/4P3/8 w - - 0 1"

	for _, depth := range []int{1, 2, 3} {
		pos, err := board.ParseFEN(fen)
		require.NoError(t, err)

		want := refMinimax(pos.Copy(), depth)

		s := newTestSearcher()
		_, got := s.Search(pos, depth)

		require.Equal(t, want, got, "depth %d", depth)
	}
}

func TestSearchReturnsLegalMoveFromStartingPosition(t *testing.T) {
	pos := board.NewBoard()
	s := newTestSearcher()

	move, _ := s.Search(pos, 3)
	require.NotEqual(t, board.NoMove, move)
	require.True(t, pos.GenerateLegalMoves().Contains(move))
}
