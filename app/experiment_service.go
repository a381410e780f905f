package app

import (
	"context"
	"time"

	"gamblelab/domain/behavior"
	"gamblelab/domain/core"
	"gamblelab/domain/experiment"
	"gamblelab/domain/gamble"
	"gamblelab/internal/errors"
	"gamblelab/ports"
)

// Options fixes the experimental design for a service instance.
type Options struct {
	Schedule    experiment.Schedule
	Policy      behavior.AdaptPolicy
	EVThreshold float64
	// BaseSeed anchors session seeds; 0 derives a seed from the clock at
	// session creation.
	BaseSeed int64
	// Clock is the wall clock; nil means time.Now. Injected for tests.
	Clock func() time.Time
}

// DefaultOptions returns the 40/25/40 design with the standard constants.
func DefaultOptions() Options {
	return Options{
		Schedule:    experiment.DefaultSchedule(),
		Policy:      behavior.DefaultAdaptPolicy(),
		EVThreshold: behavior.DefaultEVThreshold,
	}
}

// ExperimentService drives sessions through the consent → pre_test →
// training → post_test → finished sequence. Each decision is processed to
// completion (classify, adapt, coach, log, advance) before the next gamble
// is drawn; the service holds no per-session state of its own.
type ExperimentService struct {
	store ports.SessionStore
	rng   ports.RNGPort
	coach ports.CoachPort
	opts  Options
}

// NewExperimentService creates the session engine.
func NewExperimentService(store ports.SessionStore, rng ports.RNGPort, coach ports.CoachPort, opts Options) *ExperimentService {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Schedule == (experiment.Schedule{}) {
		opts.Schedule = experiment.DefaultSchedule()
	}
	if opts.Policy == (behavior.AdaptPolicy{}) {
		opts.Policy = behavior.DefaultAdaptPolicy()
	}
	if opts.EVThreshold == 0 {
		opts.EVThreshold = behavior.DefaultEVThreshold
	}
	return &ExperimentService{store: store, rng: rng, coach: coach, opts: opts}
}

// Progress reports what the presentation layer needs to render a trial.
type Progress struct {
	SessionID    core.SessionID
	Participant  core.ParticipantID
	Phase        experiment.Phase
	TrialIndex   int
	TotalTrials  int
	Gamble       *gamble.MixedGamble
	LastFeedback string
	Rows         int
}

// SubmitResult is the outcome of one completed trial.
type SubmitResult struct {
	Row      experiment.TrialLog
	Feedback string
	Phase    experiment.Phase
	Finished bool
}

// StartSession creates a session in the consent phase and registers it.
func (s *ExperimentService) StartSession(ctx context.Context) (*experiment.Session, error) {
	seed := s.opts.BaseSeed
	if seed == 0 {
		seed = s.opts.Clock().UnixNano()
	}
	session := experiment.NewSessionWithClock(seed, s.opts.Policy.WindowSize, s.opts.Clock())
	if err := s.store.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to register session")
	}
	return session, nil
}

// Begin confirms consent and moves the session into the pre-test phase,
// drawing its first gamble. Calling Begin outside consent is a phase
// sequence violation.
func (s *ExperimentService) Begin(ctx context.Context, id core.SessionID) (*experiment.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Phase != experiment.PhaseConsent {
		return nil, core.NewPhaseViolationError("begin", session.Phase.String())
	}

	session.Phase = experiment.PhasePreTest
	session.ResetPhaseLocals()
	session.TrialStartedAt = core.NewTimestamp(s.opts.Clock())
	if err := s.draw(ctx, session); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}
	return session, nil
}

// Submit processes one decision for the session's pending gamble: classify,
// adapt difficulty and compose coaching (training phase only), append the
// log row, and advance to the next trial or phase. Reflection text is kept
// only during training.
func (s *ExperimentService) Submit(ctx context.Context, id core.SessionID, rawDecision, reflection string) (*SubmitResult, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Phase == experiment.PhaseConsent {
		return nil, core.ErrConsentRequired
	}
	if !session.InTrials() {
		return nil, core.NewPhaseViolationError("submit", session.Phase.String())
	}
	if session.Pending == nil {
		return nil, errors.InternalError("session has no pending gamble")
	}

	decision, err := behavior.ParseDecision(rawDecision)
	if err != nil {
		return nil, err
	}

	now := s.opts.Clock()
	g := *session.Pending
	flag := behavior.Classify(g, decision, s.opts.EVThreshold)

	// Adaptivity and coaching run only during training.
	feedback := ""
	if session.Phase.IsTraining() {
		session.Window.Push(flag)
		newTier, err := behavior.Adapt(session.Difficulty, session.Window.Flags(), s.opts.Policy)
		if err != nil {
			return nil, err
		}
		session.Difficulty = newTier

		feedback, err = s.coach.Compose(ctx, g, decision, flag)
		if err != nil {
			return nil, errors.ExternalServiceError("coach", err)
		}
	} else {
		reflection = ""
	}

	row := experiment.TrialLog{
		ParticipantID: session.Participant,
		Timestamp:     core.NewTimestamp(now),
		Phase:         session.Phase,
		TrialInPhase:  session.TrialIndex,
		Gamble:        g,
		EV:            g.EV(),
		Decision:      decision,
		Flag:          flag,
		Feedback:      feedback,
		Reflection:    reflection,
		RTSeconds:     session.ElapsedSince(now),
		Difficulty:    session.Difficulty,
	}
	session.Append(row)

	if err := s.advance(ctx, session, now); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	return &SubmitResult{
		Row:      row,
		Feedback: feedback,
		Phase:    session.Phase,
		Finished: session.Finished(),
	}, nil
}

// Current reports the pending gamble and progress counters.
func (s *ExperimentService) Current(ctx context.Context, id core.SessionID) (*Progress, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p := &Progress{
		SessionID:   session.ID,
		Participant: session.Participant,
		Phase:       session.Phase,
		TrialIndex:  session.TrialIndex,
		TotalTrials: s.opts.Schedule.Trials(session.Phase),
		Gamble:      session.Pending,
		Rows:        len(session.Rows),
	}
	if n := len(session.Rows); n > 0 {
		last := session.Rows[n-1]
		if last.Phase.IsTraining() {
			p.LastFeedback = last.Feedback
		}
	}
	return p, nil
}

// Rows returns the ordered trial log.
func (s *ExperimentService) Rows(ctx context.Context, id core.SessionID) ([]experiment.TrialLog, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rows := make([]experiment.TrialLog, len(session.Rows))
	copy(rows, session.Rows)
	return rows, nil
}

// Restart discards the session's rows and identity and returns it to the
// consent phase with a freshly generated participant identifier.
func (s *ExperimentService) Restart(ctx context.Context, id core.SessionID) (*experiment.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	seed := s.opts.BaseSeed
	if seed == 0 {
		seed = s.opts.Clock().UnixNano()
	}

	session.Participant = core.NewParticipantID()
	session.Seed = seed
	session.Phase = experiment.PhaseConsent
	session.Pending = nil
	session.Rows = nil
	session.StartedAt = core.NewTimestamp(s.opts.Clock())
	session.ResetPhaseLocals()

	if err := s.store.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}
	return session, nil
}

// draw samples the pending gamble from the deterministic per-trial stream.
func (s *ExperimentService) draw(ctx context.Context, session *experiment.Session) error {
	stream, err := s.rng.TrialStream(ctx, session.Phase, session.TrialIndex, session.Seed)
	if err != nil {
		return errors.Wrap(err, "failed to open trial stream")
	}
	g, err := gamble.Sample(session.Difficulty, stream)
	if err != nil {
		return err
	}
	session.Pending = &g
	return nil
}

// advance moves to the next trial, crossing a phase boundary when the
// active phase's trial count is complete. Phase-local counters (trial
// index, difficulty tier, flag window) reset at every boundary.
func (s *ExperimentService) advance(ctx context.Context, session *experiment.Session, now time.Time) error {
	session.TrialIndex++
	session.TrialStartedAt = core.NewTimestamp(now)

	if session.TrialIndex >= s.opts.Schedule.Trials(session.Phase) {
		session.Phase = session.Phase.Next()
		session.ResetPhaseLocals()
	}

	if session.InTrials() {
		return s.draw(ctx, session)
	}
	session.Pending = nil
	return nil
}
