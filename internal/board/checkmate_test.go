package board

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckmate(t *testing.T) {
	// Back-rank mate: Black to move, already checkmated.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	require.NoError(t, err)

	pos.UpdateCheckers()
	require.True(t, pos.InCheck())
	require.True(t, pos.IsCheckmate())
	require.False(t, pos.IsStalemate())
	require.Equal(t, 0, pos.GenerateLegalMoves().Len())
}

func TestNotCheckmate(t *testing.T) {
	// Rook gives check but the king can simply capture it.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	require.NoError(t, err)

	pos.UpdateCheckers()
	require.True(t, pos.InCheck())
	require.False(t, pos.IsCheckmate())
}

func TestStalemate(t *testing.T) {
	// Classic stalemate: Black king on h8 has no legal move and is not
	// in check.
	pos, err := ParseFEN("7k/5K2/6Q1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	pos.UpdateCheckers()
	require.False(t, pos.InCheck())
	require.True(t, pos.IsStalemate())
	require.False(t, pos.IsCheckmate())
	require.Equal(t, 0, pos.GenerateLegalMoves().Len())
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"bare kings", "8/8/4k3/8/8/3K4/8/8 w - - 0 1", true},
		{"king+knight vs king", "8/8/4k3/8/8/3KN3/8/8 w - - 0 1", true},
		{"same-color bishops", "8/8/4k1b1/8/8/3K1B2/8/8 w - - 0 1", true},
		{"opposite-color bishops", "8/8/4k1b1/8/8/2BK4/8/8 w - - 0 1", false},
		{"rook present", "8/8/4k3/8/8/3KR3/8/8 w - - 0 1", false},
		{"pawn present", "8/8/4k3/8/4P3/3K4/8/8 w - - 0 1", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			require.NoError(t, err)
			require.Equal(t, tc.want, pos.IsInsufficientMaterial())
		})
	}
}

func TestIsDrawHalfmoveClock(t *testing.T) {
	pos, err := ParseFEN("8/8/4k3/8/8/3KR3/8/8 w - - 99 50")
	require.NoError(t, err)
	require.False(t, pos.IsDraw())

	pos, err = ParseFEN("8/8/4k3/8/8/3KR3/8/8 w - - 100 50")
	require.NoError(t, err)
	require.True(t, pos.IsDraw())
}
