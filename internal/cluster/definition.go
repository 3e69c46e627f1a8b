// Package cluster defines animation clusters — named, ordered frame
// sequences with playback parameters — and the registry that loads them
// from a YAML config file.
package cluster

// Definition describes one animation cluster. Definitions are built once at
// load time and never mutated afterwards, so a single registry is safe to
// share read-only across any number of playback states.
type Definition struct {
	Name string

	// Frames is the resolved, ordered frame list. Always non-empty for a
	// definition handed out by a Registry. Order is significant.
	Frames []string

	// FPS is the frame advance rate. Governs nominal speed for one-shots
	// as well, even though they do not wrap.
	FPS float64

	// Loop selects looping playback; false means one-shot.
	Loop bool

	// HoldLastMs is extra dwell on the final frame of a one-shot before
	// completion fires. Ignored for loops.
	HoldLastMs int

	// Easing is the one-shot easing name (linear, out_cubic, out_back).
	// Ignored for loops. Empty means linear.
	Easing string
}

// DurationMs is the nominal one-shot playback duration, excluding
// HoldLastMs. Zero for a single-frame cluster.
func (d Definition) DurationMs() float64 {
	if len(d.Frames) <= 1 || d.FPS <= 0 {
		return 0
	}
	return 1000 * float64(len(d.Frames)-1) / d.FPS
}

// SingleFrame builds a degenerate one-frame definition, used as the
// fallback when a cluster's assets cannot be resolved.
func SingleFrame(name, frame string) Definition {
	return Definition{
		Name:   name,
		Frames: []string{frame},
		FPS:    12,
		Loop:   true,
	}
}
