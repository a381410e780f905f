package behavior

import (
	"fmt"

	"gamblelab/domain/core"
	"gamblelab/domain/gamble"
)

// Decision is a participant's response to a presented gamble.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// ParseDecision validates a raw decision label. Anything outside
// accept/reject is rejected rather than coerced.
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionAccept, DecisionReject:
		return Decision(s), nil
	default:
		return "", core.NewInvalidDecisionError(s)
	}
}

// FlagKind labels a completed decision with the behavioral pattern it may
// exhibit.
type FlagKind string

const (
	FlagNone FlagKind = "none"
	// FlagLossAversion marks a rejected gamble whose EV was clearly positive.
	FlagLossAversion FlagKind = "loss_aversion_possible"
	// FlagRiskSeeking marks an accepted gamble whose EV was clearly negative.
	FlagRiskSeeking FlagKind = "risk_seeking_or_noise"
)

// DefaultEVThreshold is the EV band beyond which a gamble counts as clearly
// favorable or clearly unfavorable. Fixed by the experimental design; do not
// tune without domain input.
const DefaultEVThreshold = 2.0

// Classify labels a decision. Deterministic, no randomness:
// declining a clearly favorable bet is symptomatic of loss aversion,
// accepting a clearly unfavorable one of risk seeking (or noise).
func Classify(g gamble.MixedGamble, decision Decision, evThreshold float64) FlagKind {
	ev := g.EV()
	if ev >= evThreshold && decision == DecisionReject {
		return FlagLossAversion
	}
	if ev <= -evThreshold && decision == DecisionAccept {
		return FlagRiskSeeking
	}
	return FlagNone
}

// String returns the flag label as it appears in exported rows.
func (f FlagKind) String() string { return string(f) }

// Valid reports whether f is one of the three known flag kinds.
func (f FlagKind) Valid() bool {
	switch f {
	case FlagNone, FlagLossAversion, FlagRiskSeeking:
		return true
	}
	return false
}

// ParseFlagKind validates a raw flag label.
func ParseFlagKind(s string) (FlagKind, error) {
	f := FlagKind(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown flag kind %q", s)
	}
	return f, nil
}
