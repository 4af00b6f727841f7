package engine

import (
	"time"

	"github.com/kestrelchess/chesscore/internal/board"
)

// Info reports the state of the search after completing one
// iterative-deepening depth: everything a UCI "info" line or a test
// harness would want to know.
type Info struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	PV       []board.Move
	HashFull int
	NPS      uint64
}

// Limits bounds an iterative-deepening search. A zero Depth or
// MoveTime means "no limit on that axis"; Nodes likewise.
type Limits struct {
	Depth    int
	Nodes    uint64
	MoveTime time.Duration
}

// IterativeDeepen runs depth 1, 2, 3, ... against pos using s, calling
// onInfo after each completed depth, until limits is exhausted or the
// worker's stop signal is observed. It owns the worker/timer pairing:
// a timer goroutine sleeps in short increments and raises s's stop
// signal when limits.MoveTime elapses; IterativeDeepen itself runs on
// the calling goroutine and is the "worker thread" of the pair.
func IterativeDeepen(s *Searcher, pos *board.Board, limits Limits, onInfo func(Info)) (board.Move, int) {
	s.tt.NewSearch()
	s.pos = pos.Copy()
	s.Reset()

	maxDepth := MaxPly
	if limits.Depth > 0 {
		maxDepth = limits.Depth
	}

	stopTimer := func() {}
	if limits.MoveTime > 0 {
		stopTimer = startTimer(s, limits.MoveTime)
	}
	defer stopTimer()

	start := time.Now()
	var bestMove board.Move
	var bestScore int

	for depth := 1; depth <= maxDepth; depth++ {
		move, score := s.searchDepth(depth)

		if s.Stopped() && depth > 1 {
			break
		}
		if move == board.NoMove {
			break
		}

		bestMove = move
		bestScore = score

		if onInfo != nil {
			elapsed := time.Since(start)
			nps := uint64(0)
			if elapsed > 0 {
				nps = uint64(float64(s.Nodes()) / elapsed.Seconds())
			}
			onInfo(Info{
				Depth:    depth,
				Score:    score,
				Nodes:    s.Nodes(),
				Time:     elapsed,
				PV:       s.GetPV(),
				HashFull: s.tt.HashFull(),
				NPS:      nps,
			})
		}

		if limits.Nodes > 0 && s.Nodes() >= limits.Nodes {
			break
		}
		if score > MateScore-MaxPly || score < -MateScore+MaxPly {
			break
		}
		if s.Stopped() {
			break
		}
	}

	return bestMove, bestScore
}

// startTimer launches the timer thread: it wakes every 5ms and raises
// s's stop signal once budget has elapsed. The
// returned function cancels the timer early, used when the search
// finishes on its own before the budget elapses.
func startTimer(s *Searcher, budget time.Duration) func() {
	done := make(chan struct{})
	go func() {
		const tick = 5 * time.Millisecond
		deadline := time.Now().Add(budget)
		for {
			select {
			case <-done:
				return
			case <-time.After(tick):
				if time.Now().After(deadline) {
					s.Stop()
					return
				}
			}
		}
	}()
	return func() { close(done) }
}
