package engine

import (
	"math/rand"
	"testing"

	"checkers/internal/board"
	"checkers/internal/core"
	"checkers/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLayout(t *testing.T, layout string) *game.State {
	t.Helper()
	s, err := game.FromLayout(layout, game.Score{})
	require.NoError(t, err)
	return s
}

func TestFindMoveOpening(t *testing.T) {
	t.Parallel()
	s := game.NewState()

	for _, side := range []core.Side{core.SideRed, core.SideBlack} {
		m, ok := NewSeeded(1).FindMove(s, side)
		require.True(t, ok, side.String())
		assert.False(t, m.IsJump)
		assert.True(t, s.IsValidMoveFor(side, m.FromRow, m.FromCol, m.ToRow, m.ToCol))
		b := s.Board()
		assert.True(t, b.At(m.FromRow, m.FromCol).BelongsTo(side))
	}
}

func TestFindMoveDeterministic(t *testing.T) {
	t.Parallel()
	s := game.NewState()

	a := New(rand.New(rand.NewSource(42)))
	b := New(rand.New(rand.NewSource(42)))
	for i := 0; i < 20; i++ {
		ma, okA := a.FindMove(s, core.SideBlack)
		mb, okB := b.FindMove(s, core.SideBlack)
		require.True(t, okA)
		require.True(t, okB)
		assert.Equal(t, ma, mb)
	}
}

func TestFindMovePrefersJumps(t *testing.T) {
	t.Parallel()
	// black b6 can capture c5, black f6 only has steps
	s := mustLayout(t, "8/8/1b3b2/2r5/8/8/8/8 b")

	f := NewSeeded(7)
	for i := 0; i < 50; i++ {
		res, ok := f.Search(s, core.SideBlack)
		require.True(t, ok)
		assert.True(t, res.Jump)
		assert.Equal(t, 1, res.Candidates)
		assert.Equal(t, board.NewMove(2, 1, 4, 3), res.Move)
	}
}

func TestFindMoveUniformCoverage(t *testing.T) {
	t.Parallel()
	s := game.NewState()
	_, steps := Candidates(s, core.SideRed)
	require.Len(t, steps, 7)

	seen := map[board.Move]bool{}
	f := NewSeeded(3)
	for i := 0; i < 500; i++ {
		m, ok := f.FindMove(s, core.SideRed)
		require.True(t, ok)
		seen[m] = true
	}
	assert.Len(t, seen, 7)
}

func TestFindMoveNoMoves(t *testing.T) {
	t.Parallel()
	s := mustLayout(t, "1r6/8/8/8/8/8/8/b7 b")

	m, ok := NewSeeded(1).FindMove(s, core.SideBlack)
	assert.False(t, ok)
	assert.Equal(t, board.Move{}, m)

	_, ok = NewSeeded(1).FindMove(s, core.SideNone)
	assert.False(t, ok)
}

func TestFindMoveIgnoresTurn(t *testing.T) {
	t.Parallel()
	// red to move, but the finder is asked for black
	s := game.NewState()
	m, ok := NewSeeded(9).FindMove(s, core.SideBlack)
	require.True(t, ok)
	assert.Equal(t, 1, m.ToRow-m.FromRow)
	assert.Equal(t, core.SideRed, s.CurrentPlayer(), "finding a move does not play it")
}

func TestFindMoveKingBackwards(t *testing.T) {
	t.Parallel()
	s := mustLayout(t, "8/8/8/8/8/8/8/2B5 b")
	jumps, steps := Candidates(s, core.SideBlack)
	assert.Empty(t, jumps)
	assert.ElementsMatch(t, []board.Move{
		board.NewMove(7, 2, 6, 1),
		board.NewMove(7, 2, 6, 3),
	}, steps)
}
