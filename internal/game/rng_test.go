package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/game"
)

// seed=1 draws, fixed by the recurrence.
var goldenSeed1 = []int{78, 1233, 2176, 8130, 7339, 3665, 5892, 6533}

func TestGeneratorGoldenSequence(t *testing.T) {
	g := game.NewGenerator(1)
	got := make([]int, len(goldenSeed1))
	for i := range got {
		got[i] = g.Next()
	}
	require.Equal(t, goldenSeed1, got)
}

func TestGeneratorDeterministic(t *testing.T) {
	for _, seed := range []int{0, 1, 2, 17, 8190, 8191, 123456, -5} {
		a, b := game.NewGenerator(seed), game.NewGenerator(seed)
		for i := 0; i < 50; i++ {
			require.Equal(t, a.Next(), b.Next(), "seed %d draw %d", seed, i)
		}
	}
}

func TestGeneratorStaysInRange(t *testing.T) {
	for _, seed := range []int{-1, -8191, -1 << 30, 1 << 30} {
		g := game.NewGenerator(seed)
		for i := 0; i < 100; i++ {
			v := g.Next()
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, 8191)
		}
	}
}

func TestGeneratorSeedOnce(t *testing.T) {
	g := game.NewGenerator(1)
	require.ErrorIs(t, g.Seed(99), game.ErrReseeded)
	assert.Equal(t, goldenSeed1[0], g.Next(), "rejected Seed must not touch the state")
}

func TestGeneratorZeroValueSeed(t *testing.T) {
	var g game.Generator
	require.NoError(t, g.Seed(1))
	assert.Equal(t, goldenSeed1[0], g.Next())
	assert.ErrorIs(t, g.Seed(1), game.ErrReseeded)
	assert.Equal(t, goldenSeed1[1], g.Next())
}

func TestGeneratorLargeSeedMatchesReduced(t *testing.T) {
	assert.Equal(t, game.NewGenerator(1).Next(), game.NewGenerator(8191+1).Next())
}
