package engine

import (
	"sync/atomic"

	"github.com/kestrelchess/chesscore/internal/board"
)

// Search constants.
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128

	// stopCheckPeriod is a bit mask: negamax polls the stop signal on
	// entry once every stopCheckPeriod+1 (4096) nodes.
	stopCheckPeriod = 4095

	// maxQuiescencePly bounds quiescence recursion depth below MaxPly.
	maxQuiescencePly = 32

	// deltaMargin is the futility margin added to a capture's material
	// gain in quiescence delta pruning.
	deltaMargin = 200
)

// PVTable stores the principal variation extracted during search.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Searcher performs iterative negamax with alpha-beta and quiescence.
type Searcher struct {
	pos     *board.Board
	tt      *TranspositionTable
	orderer *MoveOrderer
	pawns   *PawnTable

	nodes    uint64
	stopFlag atomic.Bool

	pv PVTable

	undoStack [MaxPly]board.UndoEntry
}

// NewSearcher creates a new searcher around a shared transposition table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
		pawns:   NewPawnTable(4),
	}
}

// Stop signals the search to abandon its current iteration.
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Reset prepares the searcher for a new root search.
func (s *Searcher) Reset() {
	s.stopFlag.Store(false)
	s.nodes = 0
	s.orderer.Clear()
}

// Stopped reports whether the last search was aborted by Stop.
func (s *Searcher) Stopped() bool {
	return s.stopFlag.Load()
}

// Nodes returns the number of nodes visited in the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Search runs a fixed-depth search from pos and returns the best move
// found and its score from pos.SideToMove's perspective. It is a full,
// independent search: nodes and the stop signal are reset and the
// history table is halved first. IterativeDeepen does not call this directly across its
// depth loop — see searchDepth — since resetting the stop flag between
// depths would erase a timer's signal the moment the next depth began.
func (s *Searcher) Search(pos *board.Board, depth int) (board.Move, int) {
	s.pos = pos.Copy()
	s.Reset()
	return s.searchDepth(depth)
}

// searchDepth runs depth plies from s.pos against the searcher's
// current nodes/stop-flag/history state, without resetting any of it.
func (s *Searcher) searchDepth(depth int) (board.Move, int) {
	score := s.negamax(depth, 0, -Infinity, Infinity, board.NoSquare)

	var bestMove board.Move
	if s.pv.length[0] > 0 {
		bestMove = s.pv.moves[0][0]
	}
	return bestMove, score
}

// negamax searches depth plies from the current s.pos, returning a
// score from the side-to-move's perspective. lastMoveTo is the
// to-square of the move that reached this node (NoSquare at the
// root), used by move ordering to detect recaptures.
func (s *Searcher) negamax(depth, ply int, alpha, beta int, lastMoveTo board.Square) int {
	if s.nodes&stopCheckPeriod == 0 && s.stopFlag.Load() {
		return 0
	}
	s.nodes++
	s.pv.length[ply] = ply

	// No draw claim here: repetition/50-move scoring is out of scope
	// (the halfmove clock is tracked on Board but never consulted by
	// search — see Board.IsDraw, which is a query helper only).

	var ttMove board.Move
	if ttEntry, found := s.tt.Probe(s.pos.Hash, TTFromAB, depth); found {
		ttMove = ttEntry.BestMove
		score := AdjustScoreFromTT(int(ttEntry.Score), ply)
		switch ttEntry.Flag {
		case TTExact:
			return score
		case TTLowerBound:
			if score > alpha {
				alpha = score
			}
		case TTUpperBound:
			if score < beta {
				beta = score
			}
		}
		if alpha >= beta {
			return score
		}
	} else if probed, ok := s.tt.Probe(s.pos.Hash, TTFromQuiescence, 0); ok {
		ttMove = probed.BestMove
	}

	if depth <= 0 {
		return s.quiescence(ply, alpha, beta, lastMoveTo)
	}

	inCheck := s.pos.InCheck()
	moves := s.pos.GenerateLegalMoves()

	if moves.Len() == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}

	scores := s.orderer.ScoreMoves(s.pos, moves, ttMove, lastMoveTo)

	bestScore := -Infinity
	bestMove := board.NoMove
	flag := TTUpperBound

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		s.undoStack[ply] = s.pos.MakeMove(move)
		score := -s.negamax(depth-1, ply+1, -beta, -alpha, move.To())
		s.pos.UnmakeMove(s.undoStack[ply])

		if s.stopFlag.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move

			if score > alpha {
				alpha = score
				flag = TTExact

				s.pv.moves[ply][ply] = move
				for j := ply + 1; j < s.pv.length[ply+1]; j++ {
					s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
				}
				s.pv.length[ply] = s.pv.length[ply+1]
			}
		}

		if score >= beta {
			s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(score, ply), TTLowerBound, bestMove, TTFromAB)
			if move.IsQuiet() {
				s.orderer.UpdateHistory(move, depth, true)
			}
			return score
		}
	}

	s.tt.Store(s.pos.Hash, depth, AdjustScoreToTT(bestScore, ply), flag, bestMove, TTFromAB)
	return bestScore
}

// quiescence extends the search along captures and promotions only,
// past the nominal horizon, to avoid misjudging positions mid-exchange.
// This holds even when the side to move is in check: non-capturing
// evasions are not searched, and the stand-pat score still applies.
func (s *Searcher) quiescence(ply int, alpha, beta int, lastMoveTo board.Square) int {
	if ply >= MaxPly || ply > maxQuiescencePly {
		return Evaluate(s.pos)
	}
	if s.stopFlag.Load() {
		return 0
	}
	s.nodes++

	standPat := EvaluateWithPawnTable(s.pos, s.pawns)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	bigDelta := board.PieceValue[board.Queen]
	if standPat+bigDelta < alpha {
		return alpha
	}

	moves := s.pos.GenerateCaptures()
	scores := s.orderer.ScoreMoves(s.pos, moves, board.NoMove, lastMoveTo)

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		if !s.pos.InCheck() {
			captureValue := board.PieceValue[move.CapturedPiece().Type()]
			if move.IsPromotion() {
				captureValue += board.PieceValue[board.Queen] - board.PieceValue[board.Pawn]
			}
			if standPat+captureValue+deltaMargin < alpha {
				continue
			}
		}

		undo := s.pos.MakeMove(move)
		score := -s.quiescence(ply+1, -beta, -alpha, move.To())
		s.pos.UnmakeMove(undo)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// GetPV returns the principal variation found by the last Search call.
func (s *Searcher) GetPV() []board.Move {
	pv := make([]board.Move, s.pv.length[0])
	copy(pv, s.pv.moves[0][:s.pv.length[0]])
	return pv
}
