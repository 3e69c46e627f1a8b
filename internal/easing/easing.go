// Package easing maps normalized progress to eased progress for one-shot
// cluster playback. Looping clusters never apply easing.
package easing

import (
	"fmt"

	"github.com/fogleman/ease"
)

// Func reshapes a normalized progress value. Input is expected to be
// pre-clamped to [0,1]; the function itself does not clamp. OutBack
// overshoots past 1 before settling, so callers multiplying the result by a
// frame count must clamp the product afterwards.
type Func func(p float64) float64

// Linear leaves progress unchanged.
func Linear(p float64) float64 {
	return p
}

// OutCubic decelerates towards the endpoint: 1-(1-p)^3.
func OutCubic(p float64) float64 {
	return ease.OutCubic(p)
}

// OutBack decelerates with a slight overshoot past the endpoint
// (back-easing constant s≈1.70158).
func OutBack(p float64) float64 {
	return ease.OutBack(p)
}

var byName = map[string]Func{
	"":          Linear,
	"linear":    Linear,
	"out_cubic": OutCubic,
	"out_back":  OutBack,
}

// Names lists the accepted easing names, in config-file spelling.
var Names = []string{"linear", "out_cubic", "out_back"}

// ForName resolves a config easing name. The empty name means linear.
func ForName(name string) (Func, error) {
	f, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (want one of %v)", name, Names)
	}
	return f, nil
}
