package app

import (
	"math"

	"gamblelab/domain/behavior"
	"gamblelab/domain/core"
	"gamblelab/domain/experiment"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// PhaseSummary aggregates one phase of a completed log.
type PhaseSummary struct {
	Phase          experiment.Phase           `json:"phase"`
	Trials         int                        `json:"trials"`
	AcceptanceRate float64                    `json:"acceptance_rate"`
	MeanRT         float64                    `json:"mean_rt_seconds"`
	MedianRT       float64                    `json:"median_rt_seconds"`
	FlagCounts     map[behavior.FlagKind]int  `json:"flag_counts"`
	// Favorable trials are those with EV at or above the flagging threshold;
	// the acceptance rate on them is the loss-aversion measure of interest.
	FavorableOffered  int     `json:"favorable_offered"`
	FavorableAccepted int     `json:"favorable_accepted"`
	FavorableRate     float64 `json:"favorable_acceptance_rate"`
}

// ShiftResult compares favorable-gamble acceptance before and after
// training with a two-proportion z-test.
type ShiftResult struct {
	PreRate  float64 `json:"pre_rate"`
	PostRate float64 `json:"post_rate"`
	Delta    float64 `json:"delta"`
	ZScore   float64 `json:"z_score"`
	PValue   float64 `json:"p_value"`
}

// SessionSummary is the researcher-facing digest of one session's log.
type SessionSummary struct {
	Participant core.ParticipantID `json:"participant_id"`
	TotalTrials int                `json:"total_trials"`
	Phases      []PhaseSummary     `json:"phases"`
	// Shift is nil when either testing phase offered no favorable gambles.
	Shift *ShiftResult `json:"pre_post_shift,omitempty"`
}

// SummaryService computes end-of-session analytics over the trial log.
type SummaryService struct {
	evThreshold float64
}

// NewSummaryService creates a summary service using the experiment's EV
// flagging threshold to identify clearly favorable gambles.
func NewSummaryService(evThreshold float64) *SummaryService {
	if evThreshold <= 0 {
		evThreshold = behavior.DefaultEVThreshold
	}
	return &SummaryService{evThreshold: evThreshold}
}

// Summarize aggregates the ordered log. Rows outside the three testing
// phases are ignored.
func (s *SummaryService) Summarize(rows []experiment.TrialLog) *SessionSummary {
	summary := &SessionSummary{TotalTrials: len(rows)}
	if len(rows) > 0 {
		summary.Participant = rows[0].ParticipantID
	}

	order := []experiment.Phase{experiment.PhasePreTest, experiment.PhaseTraining, experiment.PhasePostTest}
	byPhase := make(map[experiment.Phase][]experiment.TrialLog, len(order))
	for _, row := range rows {
		byPhase[row.Phase] = append(byPhase[row.Phase], row)
	}

	for _, phase := range order {
		phaseRows := byPhase[phase]
		if len(phaseRows) == 0 {
			continue
		}
		summary.Phases = append(summary.Phases, s.summarizePhase(phase, phaseRows))
	}

	summary.Shift = s.shift(summary.Phases)
	return summary
}

func (s *SummaryService) summarizePhase(phase experiment.Phase, rows []experiment.TrialLog) PhaseSummary {
	ps := PhaseSummary{
		Phase:      phase,
		Trials:     len(rows),
		FlagCounts: map[behavior.FlagKind]int{},
	}

	accepted := 0
	rts := make([]float64, 0, len(rows))
	for _, row := range rows {
		rts = append(rts, row.RTSeconds)
		ps.FlagCounts[row.Flag]++
		if row.Decision == behavior.DecisionAccept {
			accepted++
		}
		if row.EV >= s.evThreshold {
			ps.FavorableOffered++
			if row.Decision == behavior.DecisionAccept {
				ps.FavorableAccepted++
			}
		}
	}

	ps.AcceptanceRate = float64(accepted) / float64(len(rows))
	if ps.FavorableOffered > 0 {
		ps.FavorableRate = float64(ps.FavorableAccepted) / float64(ps.FavorableOffered)
	}
	ps.MeanRT, _ = stats.Mean(rts)
	ps.MedianRT, _ = stats.Median(rts)
	return ps
}

// shift runs the pre vs post two-proportion z-test on favorable-gamble
// acceptance. Nil when either phase offered no favorable gambles.
func (s *SummaryService) shift(phases []PhaseSummary) *ShiftResult {
	var pre, post *PhaseSummary
	for i := range phases {
		switch phases[i].Phase {
		case experiment.PhasePreTest:
			pre = &phases[i]
		case experiment.PhasePostTest:
			post = &phases[i]
		}
	}
	if pre == nil || post == nil || pre.FavorableOffered == 0 || post.FavorableOffered == 0 {
		return nil
	}

	n1 := float64(pre.FavorableOffered)
	n2 := float64(post.FavorableOffered)
	p1 := pre.FavorableRate
	p2 := post.FavorableRate

	result := &ShiftResult{PreRate: p1, PostRate: p2, Delta: p2 - p1, PValue: 1}

	pooled := (float64(pre.FavorableAccepted) + float64(post.FavorableAccepted)) / (n1 + n2)
	se := math.Sqrt(pooled * (1 - pooled) * (1/n1 + 1/n2))
	if se == 0 {
		// Identical degenerate proportions; no detectable shift.
		return result
	}

	result.ZScore = (p2 - p1) / se
	normal := distuv.Normal{Mu: 0, Sigma: 1}
	result.PValue = 2 * (1 - normal.CDF(math.Abs(result.ZScore)))
	return result
}
