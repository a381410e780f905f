package gamble

import (
	"fmt"

	"gamblelab/domain/core"
)

// MixedGamble is a single 50/50 bet with a possible gain and a possible loss.
// Values are immutable once sampled; log rows snapshot them by value.
type MixedGamble struct {
	ID    core.GambleID `json:"gamble_id"`
	PWin  float64       `json:"p_win"`
	Win   float64       `json:"win"`
	PLose float64       `json:"p_lose"`
	Lose  float64       `json:"lose"`
}

// EV returns the probability-weighted average outcome of accepting the gamble.
func (g MixedGamble) EV() float64 {
	return g.PWin*g.Win - g.PLose*g.Lose
}

// IsMixed reports whether the gamble is a true mixed gamble: binary 50/50
// odds with strictly positive amounts on both sides.
func (g MixedGamble) IsMixed() bool {
	return g.PWin == 0.5 && g.PLose == 0.5 && g.Win > 0 && g.Lose > 0
}

// String renders the gamble the way it is framed to participants.
func (g MixedGamble) String() string {
	return fmt.Sprintf("50/50: win %.0f or lose %.0f (EV %+.1f)", g.Win, g.Lose, g.EV())
}
