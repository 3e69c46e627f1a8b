// Package driver maps caller-supplied elapsed time to a frame index within
// the active cluster. Time never comes from the wall clock, which keeps
// playback fully deterministic for replay and tests.
package driver

import (
	"fmt"
	"math"

	"github.com/ivlev/animsync/internal/cluster"
	"github.com/ivlev/animsync/internal/easing"
)

// minFPS guards the divisions below against a zero rate. Validation rejects
// fps <= 0 at load time; this only matters for hand-built definitions.
const minFPS = 1e-6

// InvalidDeltaError reports a negative Advance delta. The tick is ignored.
type InvalidDeltaError struct {
	DeltaMs float64
}

func (e *InvalidDeltaError) Error() string {
	return fmt.Sprintf("invalid tick delta %vms: must be non-negative", e.DeltaMs)
}

// Sample is a read-only snapshot of the driver, taken for tracing.
type Sample struct {
	Cluster    string
	ElapsedMs  float64
	Progress   float64
	FrameIndex int
	FramePath  string
}

// Driver owns the playback state for one displayed character: the active
// cluster, accumulated elapsed time and the paused flag. It is not safe for
// concurrent mutation; callers drive it from a single tick source or wrap
// it in their own serialization.
type Driver struct {
	registry *cluster.Registry

	def         cluster.Definition
	ease        easing.Func
	elapsedMs   float64
	paused      bool
	fpsOverride float64
}

// New creates a driver playing the registry's default cluster from time zero.
func New(reg *cluster.Registry) *Driver {
	d := &Driver{registry: reg}
	d.SetCluster(reg.Default())
	return d
}

// SetCluster swaps the active cluster and unconditionally resets elapsed
// time. Whether a switch is appropriate is the caller's decision, not the
// driver's.
func (d *Driver) SetCluster(def cluster.Definition) {
	d.def = def
	d.ease = easeFor(def)
	d.elapsedMs = 0
}

// SwitchTo looks the target up in the registry and activates it. On an
// unknown name the current cluster keeps playing untouched.
func (d *Driver) SwitchTo(name string) error {
	def, err := d.registry.Get(name)
	if err != nil {
		return err
	}
	d.SetCluster(def)
	return nil
}

// Advance accumulates elapsed time. Negative deltas fail with
// InvalidDeltaError and leave state untouched; while paused the delta is
// dropped.
func (d *Driver) Advance(deltaMs float64) error {
	if deltaMs < 0 {
		return &InvalidDeltaError{DeltaMs: deltaMs}
	}
	if d.paused {
		return nil
	}
	d.elapsedMs += deltaMs
	return nil
}

// FrameIndex computes the frame to display for the current elapsed time.
//
// Loops wrap indefinitely: floor(elapsed*fps/1000) mod len. One-shots map
// eased progress onto the frame range and clamp the product, so an
// out_back overshoot past 1 still lands on the final frame.
func (d *Driver) FrameIndex() int {
	n := len(d.def.Frames)
	if n <= 1 {
		return 0
	}

	fps := d.effectiveFPS()
	if d.def.Loop {
		return int(math.Floor(d.elapsedMs*fps/1000)) % n
	}

	durationMs := d.durationMs()
	p := 1.0
	if durationMs > 0 {
		p = clamp(d.elapsedMs/durationMs, 0, 1)
	}
	idx := int(math.Floor(d.ease(p) * float64(n-1)))
	return clampInt(idx, 0, n-1)
}

// FramePath returns the frame reference to display right now.
func (d *Driver) FramePath() string {
	return d.def.Frames[d.FrameIndex()]
}

// Progress reports normalized progress: position within the current period
// for loops, eased progress for one-shots. Used by the trace probe.
func (d *Driver) Progress() float64 {
	fps := d.effectiveFPS()
	if d.def.Loop {
		periodMs := 1000 * float64(len(d.def.Frames)) / fps
		if periodMs <= 0 {
			return 0
		}
		return math.Mod(d.elapsedMs, periodMs) / periodMs
	}

	durationMs := d.durationMs()
	if durationMs <= 0 {
		return 1
	}
	return d.ease(clamp(d.elapsedMs/durationMs, 0, 1))
}

// Completed reports whether a one-shot has played through its nominal
// duration plus the final-frame hold. Loops never complete. Cleared by the
// elapsed-time reset on the next cluster switch.
func (d *Driver) Completed() bool {
	if d.def.Loop {
		return false
	}
	return d.elapsedMs >= d.durationMs()+float64(d.def.HoldLastMs)
}

// StepMs is the elapsed-time increment of one discrete frame step:
// 1000/fps for loops, duration/(len-1) for one-shots. Zero for a
// single-frame one-shot.
func (d *Driver) StepMs() float64 {
	if d.def.Loop {
		return 1000 / d.effectiveFPS()
	}
	n := len(d.def.Frames)
	if n <= 1 {
		return 0
	}
	return d.durationMs() / float64(n-1)
}

// MaxElapsedMs is the point past which a one-shot no longer changes:
// duration plus hold. Loops have no cap and return +Inf.
func (d *Driver) MaxElapsedMs() float64 {
	if d.def.Loop {
		return math.Inf(1)
	}
	return d.durationMs() + float64(d.def.HoldLastMs)
}

// Snapshot captures the current playback position for the trace probe.
func (d *Driver) Snapshot() Sample {
	return Sample{
		Cluster:    d.def.Name,
		ElapsedMs:  d.elapsedMs,
		Progress:   d.Progress(),
		FrameIndex: d.FrameIndex(),
		FramePath:  d.FramePath(),
	}
}

// Cluster returns the active cluster definition.
func (d *Driver) Cluster() cluster.Definition {
	return d.def
}

// ElapsedMs returns accumulated elapsed time since the last switch.
func (d *Driver) ElapsedMs() float64 {
	return d.elapsedMs
}

// AdvanceTo forces elapsed time to an absolute value. Used by the playback
// controller for clamped stepping.
func (d *Driver) AdvanceTo(elapsedMs float64) {
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	d.elapsedMs = elapsedMs
}

// Paused reports whether elapsed time is frozen.
func (d *Driver) Paused() bool {
	return d.paused
}

// SetPaused freezes or resumes elapsed-time accumulation without resetting it.
func (d *Driver) SetPaused(paused bool) {
	d.paused = paused
}

// SetFPSOverride overrides the cluster's nominal rate for both algorithms,
// backing the dev-menu speed control. Zero or negative clears the override.
func (d *Driver) SetFPSOverride(fps float64) {
	if fps <= 0 {
		fps = 0
	}
	d.fpsOverride = fps
}

func (d *Driver) effectiveFPS() float64 {
	fps := d.def.FPS
	if d.fpsOverride > 0 {
		fps = d.fpsOverride
	}
	return math.Max(fps, minFPS)
}

func (d *Driver) durationMs() float64 {
	n := len(d.def.Frames)
	if n <= 1 {
		return 0
	}
	return 1000 * float64(n-1) / d.effectiveFPS()
}

// easeFor resolves a definition's easing, falling back to linear for loops
// and for names that slipped past load-time validation.
func easeFor(def cluster.Definition) easing.Func {
	if def.Loop {
		return easing.Linear
	}
	f, err := easing.ForName(def.Easing)
	if err != nil {
		return easing.Linear
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
