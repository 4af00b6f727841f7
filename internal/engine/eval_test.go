package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelchess/chesscore/internal/board"
)

func TestEvaluateSymmetricStartingPosition(t *testing.T) {
	pos := board.NewBoard()
	// The starting position is materially and positionally symmetric;
	// only the side-to-move tempo bonus should show through.
	require.Equal(t, tempoBonus, Evaluate(pos))
}

func TestEvaluateFavorsExtraMaterial(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	require.Greater(t, Evaluate(pos), 0)
}

func TestEvaluateWithPawnTableMatchesEvaluate(t *testing.T) {
	pt := NewPawnTable(1)
	positions := []string{
		board.StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 b - - 0 1",
	}

	for _, fen := range positions {
		pos, err := board.ParseFEN(fen)
		require.NoError(t, err)
		require.Equal(t, Evaluate(pos), EvaluateWithPawnTable(pos, pt))
	}
}

func TestSEEWinningCapture(t *testing.T) {
	// White rook on e1 can take an undefended pawn on e5, a clean
	// material win.
	pos, err := board.ParseFEN("4k3/8/8/4p3/8/8/8/4R1K1 w - - 0 1")
	require.NoError(t, err)

	m := board.NewCapture(board.E1, board.E5, board.NewPiece(board.Rook, board.White), board.NewPiece(board.Pawn, board.Black))
	require.Equal(t, board.PieceValue[board.Pawn], SEE(pos, m))
}

func TestSEELosingCapture(t *testing.T) {
	// A queen takes a pawn defended by a rook further up the same
	// file: after the rook recaptures, the net trade is queen-for-pawn.
	pos, err := board.ParseFEN("k7/4r3/8/4p3/8/8/4Q3/6K1 w - - 0 1")
	require.NoError(t, err)

	m := board.NewCapture(board.E2, board.E5, board.NewPiece(board.Queen, board.White), board.NewPiece(board.Pawn, board.Black))
	require.Less(t, SEE(pos, m), 0)
}

func TestSEENonCaptureIsZero(t *testing.T) {
	pos := board.NewBoard()
	m := board.NewMove(board.E2, board.E4, board.NewPiece(board.Pawn, board.White))
	require.Equal(t, 0, SEE(pos, m))
}
