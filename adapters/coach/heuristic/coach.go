package heuristic

import (
	"context"
	"fmt"

	"gamblelab/domain/behavior"
	"gamblelab/domain/gamble"
)

// Coach composes coaching feedback from fixed templates. It is a pure
// function of (gamble, decision, flag): one frame sentence, one EV sentence,
// and one of three flag-specific coaching sentences. Kept short and neutral.
type Coach struct{}

// New creates a templated coach.
func New() *Coach {
	return &Coach{}
}

// Compose renders the coaching message for a completed training trial.
func (c *Coach) Compose(ctx context.Context, g gamble.MixedGamble, decision behavior.Decision, flag behavior.FlagKind) (string, error) {
	frame := fmt.Sprintf("This is a 50/50 gamble: win %.0f or lose %.0f.", g.Win, g.Lose)
	evText := fmt.Sprintf("EV %+.1f (expected value).", g.EV())

	switch flag {
	case behavior.FlagLossAversion:
		return fmt.Sprintf("%s %s If the possible loss felt disproportionately salient, "+
			"try focusing on the probability structure and the long-run average outcome.",
			frame, evText), nil
	case behavior.FlagRiskSeeking:
		return fmt.Sprintf("%s %s Consider whether you would make the same choice repeatedly: "+
			"what would happen on average over many trials?", frame, evText), nil
	default:
		// generic micro-coaching
		return fmt.Sprintf("%s %s A quick check: what mattered more, "+
			"the potential loss magnitude or the expected value?", frame, evText), nil
	}
}
