package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelchess/chesscore/internal/board"
)

func TestScoreMovesPVHintWins(t *testing.T) {
	mo := NewMoveOrderer()
	pos := board.NewBoard()
	moves := pos.GenerateLegalMoves()

	ttMove := moves.Get(moves.Len() / 2)
	scores := mo.ScoreMoves(pos, moves, ttMove, board.NoSquare)

	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i) == ttMove {
			require.Equal(t, PVScore, scores[i])
		} else {
			require.Less(t, scores[i], PVScore)
		}
	}
}

func TestScoreMovesRecaptureOutscoresPlainCapture(t *testing.T) {
	// Black just captured on e5; the knight recapture there must score
	// higher than an ordinary capture elsewhere (the rook taking on a1).
	pos, err := board.ParseFEN("4k3/8/8/4p3/3N4/8/8/r3R1K1 w - - 0 1")
	require.NoError(t, err)

	mo := NewMoveOrderer()
	recapture := board.NewCapture(board.D4, board.E5, board.NewPiece(board.Knight, board.White), board.NewPiece(board.Pawn, board.Black))
	plainCapture := board.NewCapture(board.E1, board.A1, board.NewPiece(board.Rook, board.White), board.NewPiece(board.Rook, board.Black))

	ml := board.NewMoveList()
	ml.Add(recapture)
	ml.Add(plainCapture)

	scores := mo.ScoreMoves(pos, ml, board.NoMove, board.E5)
	require.Greater(t, scores[0], scores[1])
	require.GreaterOrEqual(t, scores[0], RecaptureBase)
}

func TestScoreMovesMVVLVAOrdersCapturesByAttacker(t *testing.T) {
	mo := NewMoveOrderer()
	pos, err := board.ParseFEN("4k3/3q4/8/4r3/3N4/8/8/4R1K1 w - - 0 1")
	require.NoError(t, err)

	knightTakesRook := board.NewCapture(board.D4, board.E5, board.NewPiece(board.Knight, board.White), board.NewPiece(board.Rook, board.Black))
	rookTakesRook := board.NewCapture(board.E1, board.E5, board.NewPiece(board.Rook, board.White), board.NewPiece(board.Rook, board.Black))

	scoreKnight := mo.scoreMove(pos, knightTakesRook, board.NoMove, board.NoSquare)
	scoreRook := mo.scoreMove(pos, rookTakesRook, board.NoMove, board.NoSquare)
	// Capturing a rook with a knight (lower-value attacker) should score
	// at least as well as capturing the same rook with a rook.
	require.GreaterOrEqual(t, scoreKnight, scoreRook)
}

func TestPickMoveSelectsHighestRemainingScore(t *testing.T) {
	pos := board.NewBoard()
	moves := pos.GenerateLegalMoves()
	scores := make([]int, moves.Len())
	for i := range scores {
		scores[i] = i
	}

	// The highest score is at the last index; PickMove at index 0
	// should bring it to the front.
	PickMove(moves, scores, 0)
	require.Equal(t, moves.Len()-1, scores[0])
}

func TestUpdateHistoryRewardsAndPenalizes(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(board.E2, board.E4, board.NewPiece(board.Pawn, board.White))

	mo.UpdateHistory(m, 4, true)
	require.Equal(t, 16, mo.history[board.E2][board.E4])

	mo.UpdateHistory(m, 4, false)
	require.Equal(t, 0, mo.history[board.E2][board.E4])
}

func TestMoveOrdererClearHalvesHistory(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(board.E2, board.E4, board.NewPiece(board.Pawn, board.White))
	mo.UpdateHistory(m, 10, true)

	before := mo.history[board.E2][board.E4]
	mo.Clear()
	require.Equal(t, before/2, mo.history[board.E2][board.E4])
}
