package behavior

import (
	"gamblelab/domain/core"
	"gamblelab/domain/gamble"
)

// AdaptPolicy carries the tuning constants of the difficulty controller.
// The defaults come from the experimental design; treat them as
// configuration, not knobs to optimize.
type AdaptPolicy struct {
	// WindowSize caps the sliding flag history consulted per adaptation.
	WindowSize int
	// EaseFraction: at or above this loss-aversion fraction, lower the tier
	// to make gambles clearer.
	EaseFraction float64
	// HardenFraction: at or below this fraction, raise the tier.
	HardenFraction float64
}

// DefaultAdaptPolicy returns the design constants (window 10, 0.6/0.2).
func DefaultAdaptPolicy() AdaptPolicy {
	return AdaptPolicy{
		WindowSize:     10,
		EaseFraction:   0.6,
		HardenFraction: 0.2,
	}
}

// FlagWindow is a sliding window of recent flags, oldest first. The zero
// value with a positive capacity is ready to use.
type FlagWindow struct {
	flags []FlagKind
	cap   int
}

// NewFlagWindow creates a window that retains at most capacity flags.
func NewFlagWindow(capacity int) *FlagWindow {
	return &FlagWindow{cap: capacity}
}

// Push appends a flag, dropping the oldest entry once the window is full.
func (w *FlagWindow) Push(f FlagKind) {
	w.flags = append(w.flags, f)
	if w.cap > 0 && len(w.flags) > w.cap {
		w.flags = w.flags[len(w.flags)-w.cap:]
	}
}

// Flags returns the window contents oldest-first. The slice is a copy.
func (w *FlagWindow) Flags() []FlagKind {
	out := make([]FlagKind, len(w.flags))
	copy(out, w.flags)
	return out
}

// Len returns the number of retained flags.
func (w *FlagWindow) Len() int { return len(w.flags) }

// Reset clears the window, as happens at every phase boundary.
func (w *FlagWindow) Reset() { w.flags = nil }

// Adapt adjusts the difficulty tier from the recent flag history.
// An empty history leaves the tier unchanged. A high fraction of
// loss-aversion flags eases the gambles (clearer EV gaps); a low fraction
// hardens them. Output is clamped to the valid tier range; the input tier
// is validated, never clamped.
func Adapt(currentTier int, recent []FlagKind, policy AdaptPolicy) (int, error) {
	if !gamble.ValidTier(currentTier) {
		return 0, core.NewInvalidTierError(currentTier)
	}
	if len(recent) == 0 {
		return currentTier, nil
	}

	lossAverse := 0
	for _, f := range recent {
		if f == FlagLossAversion {
			lossAverse++
		}
	}
	fraction := float64(lossAverse) / float64(len(recent))

	switch {
	case fraction >= policy.EaseFraction:
		return max(gamble.MinTier, currentTier-1), nil
	case fraction <= policy.HardenFraction:
		return min(gamble.MaxTier, currentTier+1), nil
	default:
		return currentTier, nil
	}
}
