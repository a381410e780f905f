package gamble

import (
	"math/rand"

	"gamblelab/domain/core"
)

// Difficulty tier bounds. Tiers widen the candidate amount ranges so the
// loss-aversion pattern is harder to elicit at higher tiers.
const (
	MinTier = 0
	MaxTier = 2
)

// Candidate amount sets per tier. Amounts are whole currency units; ranges
// stay modest so stake size never dominates the framing effect.
var (
	winAmounts = [][]float64{
		{6, 8, 10, 12, 14, 16},
		{10, 12, 14, 16, 18, 20, 22},
		{16, 18, 20, 22, 24, 26, 28, 30},
	}
	loseAmounts = [][]float64{
		{4, 6, 8, 10, 12},
		{8, 10, 12, 14, 16, 18},
		{12, 14, 16, 18, 20, 22, 24},
	}
)

// ValidTier reports whether tier is within the supported range.
func ValidTier(tier int) bool {
	return tier >= MinTier && tier <= MaxTier
}

// Sample draws a fresh 50/50 mixed gamble for the given difficulty tier.
// Win and loss amounts are drawn independently and uniformly from the
// tier's candidate sets. The caller owns the RNG so the same stream always
// reproduces the same gamble.
func Sample(tier int, rng *rand.Rand) (MixedGamble, error) {
	if !ValidTier(tier) {
		return MixedGamble{}, core.NewInvalidTierError(tier)
	}

	wins := winAmounts[tier]
	loses := loseAmounts[tier]

	return MixedGamble{
		ID:    core.NewGambleID(),
		PWin:  0.5,
		Win:   wins[rng.Intn(len(wins))],
		PLose: 0.5,
		Lose:  loses[rng.Intn(len(loses))],
	}, nil
}

// TierAmounts exposes the candidate sets for a tier, primarily for
// diagnostics and property checks.
func TierAmounts(tier int) (wins, loses []float64, err error) {
	if !ValidTier(tier) {
		return nil, nil, core.NewInvalidTierError(tier)
	}
	wins = append(wins, winAmounts[tier]...)
	loses = append(loses, loseAmounts[tier]...)
	return wins, loses, nil
}
