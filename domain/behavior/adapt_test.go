package behavior

import (
	"errors"
	"testing"

	"gamblelab/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeat(f FlagKind, n int) []FlagKind {
	out := make([]FlagKind, n)
	for i := range out {
		out[i] = f
	}
	return out
}

func TestAdapt(t *testing.T) {
	policy := DefaultAdaptPolicy()

	tests := []struct {
		name  string
		tier  int
		flags []FlagKind
		want  int
	}{
		{"empty history leaves tier unchanged", 1, nil, 1},
		{"sixty percent loss aversion eases", 1, append(repeat(FlagLossAversion, 6), repeat(FlagNone, 4)...), 0},
		{"ease clamps at floor", 0, repeat(FlagLossAversion, 10), 0},
		{"ten percent loss aversion hardens", 1, append(repeat(FlagNone, 9), FlagLossAversion), 2},
		{"harden clamps at ceiling", 2, append(repeat(FlagNone, 9), FlagLossAversion), 2},
		{"mid fraction holds", 1, append(repeat(FlagLossAversion, 4), repeat(FlagNone, 6)...), 1},
		{"exactly twenty percent hardens", 1, append(repeat(FlagLossAversion, 2), repeat(FlagNone, 8)...), 2},
		{"risk seeking flags count as non-loss-averse", 1, append(repeat(FlagRiskSeeking, 9), FlagLossAversion), 2},
		{"short history still adapts", 0, repeat(FlagNone, 3), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Adapt(tt.tier, tt.flags, policy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAdaptRejectsInvalidTier(t *testing.T) {
	policy := DefaultAdaptPolicy()
	for _, tier := range []int{-1, 3} {
		_, err := Adapt(tier, repeat(FlagNone, 5), policy)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrInvalidTier))
	}
}

func TestFlagWindowCapsAtCapacity(t *testing.T) {
	w := NewFlagWindow(10)
	for i := 0; i < 25; i++ {
		if i%2 == 0 {
			w.Push(FlagLossAversion)
		} else {
			w.Push(FlagNone)
		}
	}
	assert.Equal(t, 10, w.Len())

	// Oldest entries were dropped; the retained tail preserves insertion order.
	flags := w.Flags()
	assert.Equal(t, FlagLossAversion, flags[0])
	assert.Equal(t, FlagNone, flags[9])
}

func TestFlagWindowReset(t *testing.T) {
	w := NewFlagWindow(10)
	w.Push(FlagLossAversion)
	w.Push(FlagNone)
	w.Reset()
	assert.Zero(t, w.Len())
	assert.Empty(t, w.Flags())
}

func TestFlagWindowFlagsReturnsCopy(t *testing.T) {
	w := NewFlagWindow(5)
	w.Push(FlagNone)
	flags := w.Flags()
	flags[0] = FlagLossAversion
	assert.Equal(t, FlagNone, w.Flags()[0])
}
