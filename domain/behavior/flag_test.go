package behavior

import (
	"testing"

	"gamblelab/domain/core"
	"gamblelab/domain/gamble"
)

func mixed(win, lose float64) gamble.MixedGamble {
	return gamble.MixedGamble{ID: core.NewGambleID(), PWin: 0.5, Win: win, PLose: 0.5, Lose: lose}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		win      float64
		lose     float64
		decision Decision
		want     FlagKind
	}{
		// Clearly favorable, rejected → loss aversion
		{"favorable-rejected", 20, 10, DecisionReject, FlagLossAversion},
		{"favorable-at-threshold-rejected", 14, 10, DecisionReject, FlagLossAversion},
		// Clearly favorable, accepted → no pattern
		{"favorable-accepted", 20, 10, DecisionAccept, FlagNone},
		// Clearly unfavorable, accepted → risk seeking or noise
		{"unfavorable-accepted", 10, 20, DecisionAccept, FlagRiskSeeking},
		{"unfavorable-at-threshold-accepted", 10, 14, DecisionAccept, FlagRiskSeeking},
		// Clearly unfavorable, rejected → no pattern
		{"unfavorable-rejected", 10, 20, DecisionReject, FlagNone},
		// Near-neutral EV never flags either way
		{"near-neutral-accepted", 11, 10, DecisionAccept, FlagNone},
		{"near-neutral-rejected", 11, 10, DecisionReject, FlagNone},
		{"inside-band-rejected", 13, 10, DecisionReject, FlagNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(mixed(tt.win, tt.lose), tt.decision, DefaultEVThreshold)
			if got != tt.want {
				t.Errorf("Classify(win=%v lose=%v, %s) = %q, want %q", tt.win, tt.lose, tt.decision, got, tt.want)
			}
		})
	}
}

func TestParseDecision(t *testing.T) {
	if _, err := ParseDecision("maybe"); err == nil {
		t.Error("expected error for unknown decision label")
	}
	if _, err := ParseDecision(""); err == nil {
		t.Error("expected error for empty decision label")
	}
	if _, err := ParseDecision("Accept"); err == nil {
		t.Error("expected error for wrong-case decision label")
	}
	for _, raw := range []string{"accept", "reject"} {
		d, err := ParseDecision(raw)
		if err != nil {
			t.Fatalf("ParseDecision(%q) returned error: %v", raw, err)
		}
		if string(d) != raw {
			t.Errorf("ParseDecision(%q) = %q", raw, d)
		}
	}
}

func TestParseFlagKind(t *testing.T) {
	for _, raw := range []string{"none", "loss_aversion_possible", "risk_seeking_or_noise"} {
		if _, err := ParseFlagKind(raw); err != nil {
			t.Errorf("ParseFlagKind(%q) returned error: %v", raw, err)
		}
	}
	if _, err := ParseFlagKind("panic"); err == nil {
		t.Error("expected error for unknown flag kind")
	}
}
