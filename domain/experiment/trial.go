package experiment

import (
	"gamblelab/domain/behavior"
	"gamblelab/domain/core"
	"gamblelab/domain/gamble"
)

// TrialLog is one completed trial. Rows are append-only and immutable;
// insertion order is chronological order. The gamble is snapshotted by
// value so later state changes can never rewrite history.
type TrialLog struct {
	ParticipantID core.ParticipantID `json:"participant_id"`
	Timestamp     core.Timestamp     `json:"timestamp"`
	Phase         Phase              `json:"phase"`
	TrialInPhase  int                `json:"trial_in_phase"`
	Gamble        gamble.MixedGamble `json:"gamble"`
	EV            float64            `json:"ev"`
	Decision      behavior.Decision  `json:"decision"`
	Flag          behavior.FlagKind  `json:"flag"`
	// Feedback and Reflection are empty outside the training phase.
	Feedback   string  `json:"feedback"`
	Reflection string  `json:"reflection"`
	RTSeconds  float64 `json:"rt_seconds"`
	Difficulty int     `json:"difficulty"`
}
