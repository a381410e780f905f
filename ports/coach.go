package ports

import (
	"context"

	"gamblelab/domain/behavior"
	"gamblelab/domain/gamble"
)

// CoachPort composes the short coaching message shown after a training
// trial. The boundary is (gamble, decision, flag) → text so a model-backed
// composer can replace the templated one without touching the session
// engine.
type CoachPort interface {
	Compose(ctx context.Context, g gamble.MixedGamble, decision behavior.Decision, flag behavior.FlagKind) (string, error)
}
