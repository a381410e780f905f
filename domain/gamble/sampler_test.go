package gamble

import (
	"errors"
	"math/rand"
	"testing"

	"gamblelab/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleProbabilitiesFixed(t *testing.T) {
	for tier := MinTier; tier <= MaxTier; tier++ {
		rng := rand.New(rand.NewSource(int64(tier + 1)))
		for i := 0; i < 200; i++ {
			g, err := Sample(tier, rng)
			require.NoError(t, err)
			assert.Equal(t, 0.5, g.PWin)
			assert.Equal(t, 0.5, g.PLose)
			assert.True(t, g.IsMixed(), "tier %d produced a degenerate gamble: %+v", tier, g)
		}
	}
}

func TestSampleAmountsFromTierSets(t *testing.T) {
	for tier := MinTier; tier <= MaxTier; tier++ {
		wins, loses, err := TierAmounts(tier)
		require.NoError(t, err)

		winSet := map[float64]bool{}
		for _, w := range wins {
			winSet[w] = true
		}
		loseSet := map[float64]bool{}
		for _, l := range loses {
			loseSet[l] = true
		}

		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 500; i++ {
			g, err := Sample(tier, rng)
			require.NoError(t, err)
			assert.True(t, winSet[g.Win], "tier %d drew win %v outside candidate set", tier, g.Win)
			assert.True(t, loseSet[g.Lose], "tier %d drew lose %v outside candidate set", tier, g.Lose)
			assert.Positive(t, g.Win)
			assert.Positive(t, g.Lose)
		}
	}
}

func TestSampleDeterministicPerSeed(t *testing.T) {
	a, err := Sample(1, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := Sample(1, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	// Amounts replay exactly for the same seed; only the identifier is fresh.
	assert.Equal(t, a.Win, b.Win)
	assert.Equal(t, a.Lose, b.Lose)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSampleRejectsInvalidTier(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, tier := range []int{-1, 3, 99} {
		_, err := Sample(tier, rng)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrInvalidTier))
	}
}

func TestEV(t *testing.T) {
	tests := []struct {
		name string
		win  float64
		lose float64
		want float64
	}{
		{"clearly favorable", 20, 10, 5.0},
		{"clearly unfavorable", 10, 20, -5.0},
		{"near neutral", 11, 10, 0.5},
		{"exactly neutral", 10, 10, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MixedGamble{ID: core.NewGambleID(), PWin: 0.5, Win: tt.win, PLose: 0.5, Lose: tt.lose}
			assert.InDelta(t, tt.want, g.EV(), 1e-9)
		})
	}
}
