package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kestrelchess/chesscore/internal/board"
)

func TestIterativeDeepenRespectsDepthLimit(t *testing.T) {
	s := newTestSearcher()
	pos := board.NewBoard()

	var depths []int
	move, _ := IterativeDeepen(s, pos, Limits{Depth: 3}, func(info Info) {
		depths = append(depths, info.Depth)
	})

	require.NotEqual(t, board.NoMove, move)
	require.NotEmpty(t, depths)
	require.Equal(t, 3, depths[len(depths)-1])
	for _, d := range depths {
		require.LessOrEqual(t, d, 3)
	}
}

func TestIterativeDeepenMoveTimeEventuallyStops(t *testing.T) {
	s := newTestSearcher()
	pos := board.NewBoard()

	start := time.Now()
	move, _ := IterativeDeepen(s, pos, Limits{Depth: 60, MoveTime: 30 * time.Millisecond}, nil)
	elapsed := time.Since(start)

	require.NotEqual(t, board.NoMove, move)
	require.Less(t, elapsed, 5*time.Second, "timer should have stopped the search well before this")
}

func TestIterativeDeepenStopsOnMateFound(t *testing.T) {
	s := newTestSearcher()
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	var lastScore int
	move, score := IterativeDeepen(s, pos, Limits{Depth: 40}, func(info Info) {
		lastScore = info.Score
	})

	require.Equal(t, board.A1, move.From())
	require.Equal(t, board.A8, move.To())
	require.Greater(t, score, MateScore-MaxPly)
	require.Equal(t, score, lastScore)
}
