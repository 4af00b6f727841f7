package engine

import (
	"time"

	"github.com/kestrelchess/chesscore/internal/board"
)

// Difficulty maps to a preset search budget.
type Difficulty int

const (
	Easy   Difficulty = iota // depth 3, 500ms
	Medium                   // depth 7, 2s
	Hard                     // depth 40, 10s
)

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]Limits{
	Easy:   {Depth: 3, MoveTime: 500 * time.Millisecond},
	Medium: {Depth: 7, MoveTime: 2 * time.Second},
	Hard:   {Depth: 40, MoveTime: 10 * time.Second},
}

// Engine ties a transposition table and a single Searcher together
// behind the iterative-deepening driver. All search-affecting state
// (TT, history table, pawn cache) lives here and is scoped exclusively
// to the worker for the duration of a search, per spec.md §4.I's
// controller/worker/timer split; Engine plays the controller's role.
type Engine struct {
	tt         *TranspositionTable
	searcher   *Searcher
	difficulty Difficulty

	OnInfo func(Info)
}

// NewEngine creates a new engine with the given transposition table size in MB.
func NewEngine(ttSizeMB int) *Engine {
	tt := NewTranspositionTable(ttSizeMB)
	log.Infof("engine created: tt=%dMB (%d entries)", ttSizeMB, tt.Size())
	return &Engine{
		tt:         tt,
		searcher:   NewSearcher(tt),
		difficulty: Medium,
	}
}

// SetDifficulty sets the preset search budget used by Search.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Search finds the best move for pos using the current difficulty preset.
func (e *Engine) Search(pos *board.Board) board.Move {
	return e.SearchWithLimits(pos, DifficultySettings[e.difficulty])
}

// SearchWithLimits runs iterative deepening under limits and returns
// the best move found.
func (e *Engine) SearchWithLimits(pos *board.Board, limits Limits) board.Move {
	log.Debugf("search start: fen=%s limits=%+v", pos.ToFEN(), limits)
	move, score := IterativeDeepen(e.searcher, pos, limits, e.OnInfo)
	log.Debugf("search done: move=%s score=%s nodes=%d", move, ScoreToString(score), e.searcher.Nodes())
	return move
}

// Stop raises the stop signal, aborting any in-progress search.
func (e *Engine) Stop() {
	e.searcher.Stop()
}

// Clear empties the transposition table and halves the move-ordering
// history.
func (e *Engine) Clear() {
	e.tt.Clear()
	e.searcher.orderer.Clear()
}

// Perft counts leaf nodes at depth by brute-force move generation,
// used to validate move-generator correctness against known node counts.
func (e *Engine) Perft(pos *board.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)
		undo := pos.MakeMove(move)
		nodes += e.Perft(pos, depth-1)
		pos.UnmakeMove(undo)
	}

	return nodes
}

// Evaluate returns the static evaluation of a position in centipawns
// from White's perspective.
func (e *Engine) Evaluate(pos *board.Board) int {
	score := Evaluate(pos)
	if pos.SideToMove == board.Black {
		score = -score
	}
	return score
}

// ScoreToString converts a centipawn or mate score to a human-readable string.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		mateIn := (MateScore - score + 1) / 2
		return "Mate in " + itoa(mateIn)
	}
	if score < -MateScore+MaxPly {
		mateIn := (MateScore + score + 1) / 2
		return "Mated in " + itoa(mateIn)
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	pawns := score / 100
	centipawns := score % 100
	return sign + itoa(pawns) + "." + itoa(centipawns)
}

// itoa avoids pulling in strconv just for this.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	s := ""
	for n > 0 {
		s = string('0'+byte(n%10)) + s
		n /= 10
	}
	return s
}
