package engine

import (
	"github.com/kestrelchess/chesscore/internal/board"
)

// Move ordering priorities. There is no killer-move table: ordering
// here relies on the PV hint, (re)capture detection, MVV-LVA, and the
// history heuristic only.
const (
	PVScore         = 2000000 // PV hint gets the highest score
	RecaptureBase   = 1900000 // Recapture onto the last move's to-square
	GoodCaptureBase = 1000000 // Base score for an ordinary capture
)

// mvvLva gives MVV-LVA scores: victimValue*10 - attackerValue, scaled
// by piece-type index rather than centipawns so the table stays small.
//
//	     P   N   B   R   Q   K  (attacker)
var mvvLva = [6][6]int{
	/* P */ {15, 14, 14, 13, 12, 11},
	/* N */ {25, 24, 24, 23, 22, 21},
	/* B */ {35, 34, 34, 33, 32, 31},
	/* R */ {45, 44, 44, 43, 42, 41},
	/* Q */ {55, 54, 54, 53, 52, 51},
	/* K */ {0, 0, 0, 0, 0, 0},
}

// MoveOrderer scores and iterates a position's legal (or loud-only)
// moves: PV hint first, then (re)captures, then plain captures by
// MVV-LVA, then quiet moves by the history heuristic.
type MoveOrderer struct {
	history [64][64]int // indexed by [from][to]
}

// NewMoveOrderer creates a new move orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear ages the history table for a new search (halved rather than
// zeroed, so a few moves of continuity survive between searches).
func (mo *MoveOrderer) Clear() {
	for i := range mo.history {
		for j := range mo.history[i] {
			mo.history[i][j] /= 2
		}
	}
}

// ScoreMoves assigns an ordering score to every move in moves. ttMove
// is the PV/hash hint (NoMove if none); lastMoveTo is the to-square of
// the move that led to this position (NoSquare if none, e.g. at the
// search root), used to detect recaptures.
func (mo *MoveOrderer) ScoreMoves(pos *board.Board, moves *board.MoveList, ttMove board.Move, lastMoveTo board.Square) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = mo.scoreMove(pos, moves.Get(i), ttMove, lastMoveTo)
	}
	return scores
}

func (mo *MoveOrderer) scoreMove(pos *board.Board, m board.Move, ttMove board.Move, lastMoveTo board.Square) int {
	if m == ttMove {
		return PVScore
	}

	if m.IsCapture() {
		victim := m.CapturedPiece().Type()
		attacker := m.Piece().Type()
		score := GoodCaptureBase + mvvLva[victim][attacker]*1000
		if lastMoveTo != board.NoSquare && m.To() == lastMoveTo {
			// Recapture on the square that was just captured on:
			// boost above ordinary captures, lowest attacker first
			// (mvvLva already orders by attacker within a victim row).
			score = RecaptureBase + mvvLva[victim][attacker]*1000
		}
		return score
	}

	if m.IsPromotion() {
		return GoodCaptureBase - 1000 + board.PieceValue[m.PromotionPiece().Type()]
	}

	return mo.history[m.From()][m.To()]
}

// PickMove selects the best-scored move at or after index and swaps it
// into index: a lazy selection sort, so the search need only pay for
// as many comparisons as moves it actually visits before a cutoff.
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// UpdateHistory adjusts the history score for a quiet move that caused
// (isGood) or failed to cause a cutoff, by a depth-squared bonus.
func (mo *MoveOrderer) UpdateHistory(m board.Move, depth int, isGood bool) {
	from, to := m.From(), m.To()
	bonus := depth * depth
	if isGood {
		mo.history[from][to] += bonus
		if mo.history[from][to] > 400000 {
			for i := range mo.history {
				for j := range mo.history[i] {
					mo.history[i][j] /= 2
				}
			}
		}
	} else {
		mo.history[from][to] -= bonus
		if mo.history[from][to] < -400000 {
			mo.history[from][to] = -400000
		}
	}
}
