package experiment

import (
	"time"

	"gamblelab/domain/behavior"
	"gamblelab/domain/core"
	"gamblelab/domain/gamble"
)

// Session is the aggregate state of one participant's run through the
// experiment. It is an explicit value owned by its caller: no ambient
// globals, so independent sessions never share state.
type Session struct {
	ID          core.SessionID
	Participant core.ParticipantID

	// Seed anchors per-trial RNG streams so a (seed, phase, trial index)
	// triple always reproduces the same gamble.
	Seed int64

	Phase      Phase
	TrialIndex int
	Difficulty int

	// Pending is the gamble currently awaiting a decision; nil during
	// consent and after finishing.
	Pending *gamble.MixedGamble

	// Window holds the recent flags driving training-phase adaptation.
	// Cleared at every phase boundary.
	Window *behavior.FlagWindow

	TrialStartedAt core.Timestamp
	StartedAt      core.Timestamp

	Rows []TrialLog
}

// NewSession creates a fresh session in the consent phase.
func NewSession(seed int64, windowSize int) *Session {
	return &Session{
		ID:          core.NewSessionID(),
		Participant: core.NewParticipantID(),
		Seed:        seed,
		Phase:       PhaseConsent,
		Window:      behavior.NewFlagWindow(windowSize),
		StartedAt:   core.Now(),
	}
}

// NewSessionWithClock is NewSession with a caller-supplied wall clock,
// used by deterministic tests and the simulator.
func NewSessionWithClock(seed int64, windowSize int, now time.Time) *Session {
	s := NewSession(seed, windowSize)
	s.StartedAt = core.NewTimestamp(now)
	return s
}

// Finished reports whether the session has completed all phases.
func (s *Session) Finished() bool { return s.Phase == PhaseFinished }

// InTrials reports whether the session is currently presenting gambles.
func (s *Session) InTrials() bool { return s.Phase.HasTrials() }

// ResetPhaseLocals clears the per-phase counters at a phase boundary:
// trial index, difficulty tier, and the adaptation flag window.
func (s *Session) ResetPhaseLocals() {
	s.TrialIndex = 0
	s.Difficulty = 0
	s.Window.Reset()
}

// Append records a completed trial. Rows are never mutated afterwards.
func (s *Session) Append(row TrialLog) {
	s.Rows = append(s.Rows, row)
}

// ElapsedSince returns the response latency for a decision made at now.
func (s *Session) ElapsedSince(now time.Time) float64 {
	return now.Sub(s.TrialStartedAt.Time()).Seconds()
}
