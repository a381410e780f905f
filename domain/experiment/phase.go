package experiment

// Phase is one stage of the experiment. Transitions are strictly forward:
// consent → pre_test → training → post_test → finished.
type Phase string

const (
	PhaseConsent  Phase = "consent"
	PhasePreTest  Phase = "pre_test"
	PhaseTraining Phase = "training"
	PhasePostTest Phase = "post_test"
	PhaseFinished Phase = "finished"
)

// Next returns the phase that follows p. Finished is terminal.
func (p Phase) Next() Phase {
	switch p {
	case PhaseConsent:
		return PhasePreTest
	case PhasePreTest:
		return PhaseTraining
	case PhaseTraining:
		return PhasePostTest
	case PhasePostTest:
		return PhaseFinished
	default:
		return PhaseFinished
	}
}

// HasTrials reports whether p presents gambles at all.
func (p Phase) HasTrials() bool {
	switch p {
	case PhasePreTest, PhaseTraining, PhasePostTest:
		return true
	}
	return false
}

// IsTraining reports whether coaching feedback and difficulty adaptation
// are active. Pre and post test deliberately never adapt mid-phase.
func (p Phase) IsTraining() bool { return p == PhaseTraining }

func (p Phase) String() string { return string(p) }

// Schedule fixes the trial count of each testing phase.
type Schedule struct {
	PreTrials      int
	TrainingTrials int
	PostTrials     int
}

// DefaultSchedule returns the 40/25/40 design.
func DefaultSchedule() Schedule {
	return Schedule{PreTrials: 40, TrainingTrials: 25, PostTrials: 40}
}

// Trials returns the trial count of a phase; consent and finished have none.
func (s Schedule) Trials(p Phase) int {
	switch p {
	case PhasePreTest:
		return s.PreTrials
	case PhaseTraining:
		return s.TrainingTrials
	case PhasePostTest:
		return s.PostTrials
	default:
		return 0
	}
}

// Total returns the number of trials a complete session records.
func (s Schedule) Total() int {
	return s.PreTrials + s.TrainingTrials + s.PostTrials
}
