// Package playback layers the public control surface — play, pause, step,
// switch — over the animation driver and turns one-shot completion into a
// one-time notification per activation.
package playback

import (
	"errors"

	"github.com/ivlev/animsync/internal/cluster"
	"github.com/ivlev/animsync/internal/driver"
)

// ErrNotPaused is returned by Step while playback is running; stepping is
// only defined for a frozen timeline.
var ErrNotPaused = errors.New("step is only available while paused")

// CompletionFunc receives the name of the one-shot cluster that finished.
type CompletionFunc func(cluster string)

// Controller enforces switch semantics and emits completion events. Like
// the driver it expects a single logical timeline; concurrent mutation
// needs external serialization.
type Controller struct {
	drv *driver.Driver

	onCompleted []CompletionFunc
	notified    bool
}

// New wraps a controller around a driver playing the registry's default
// cluster.
func New(reg *cluster.Registry) *Controller {
	return &Controller{drv: driver.New(reg)}
}

// Tick advances playback by deltaMs and fires completion callbacks when a
// one-shot crosses into its completed state. Exactly one notification per
// cluster activation: further ticks while completed stay silent until the
// next switch re-arms it.
func (c *Controller) Tick(deltaMs float64) error {
	if err := c.drv.Advance(deltaMs); err != nil {
		return err
	}
	c.fireIfCompleted()
	return nil
}

// Play resumes elapsed-time accumulation. Idempotent; never resets time.
func (c *Controller) Play() {
	c.drv.SetPaused(false)
}

// Pause freezes elapsed-time accumulation. Idempotent; never resets time.
func (c *Controller) Pause() {
	c.drv.SetPaused(true)
}

// Paused reports whether the timeline is frozen.
func (c *Controller) Paused() bool {
	return c.drv.Paused()
}

// Step advances a paused timeline by exactly one frame's worth of time:
// 1000/fps on a loop, duration/(frames-1) on a one-shot. One-shot stepping
// is forward-only and clamps at duration+hold, so it can walk a cluster
// into completion but never past it. A single-frame one-shot has nothing to
// step through and is a no-op.
func (c *Controller) Step() error {
	if !c.drv.Paused() {
		return ErrNotPaused
	}

	target := c.drv.ElapsedMs() + c.drv.StepMs()
	if max := c.drv.MaxElapsedMs(); target > max {
		target = max
	}
	c.drv.AdvanceTo(target)
	c.fireIfCompleted()
	return nil
}

// SwitchCluster activates the named cluster, resetting elapsed time and
// completion state. An unknown name returns UnknownClusterError and leaves
// the current cluster playing. The controller applies no policy about which
// switches make sense; that contract stays with the caller.
func (c *Controller) SwitchCluster(name string) error {
	if err := c.drv.SwitchTo(name); err != nil {
		return err
	}
	c.notified = false
	return nil
}

// SetSpeed overrides the active playback rate in frames per second; zero
// restores the cluster's configured rate.
func (c *Controller) SetSpeed(fps float64) {
	c.drv.SetFPSOverride(fps)
}

// CurrentFrame returns the frame reference to display right now.
func (c *Controller) CurrentFrame() string {
	return c.drv.FramePath()
}

// FrameIndex returns the index of the frame to display right now.
func (c *Controller) FrameIndex() int {
	return c.drv.FrameIndex()
}

// ClusterName returns the active cluster's name.
func (c *Controller) ClusterName() string {
	return c.drv.Cluster().Name
}

// IsCompleted reports whether the active one-shot has finished. Always
// false for loops.
func (c *Controller) IsCompleted() bool {
	return c.drv.Completed()
}

// OnCompleted registers a callback fired once per one-shot activation, at
// the tick where elapsed time first reaches duration+hold.
func (c *Controller) OnCompleted(fn CompletionFunc) {
	c.onCompleted = append(c.onCompleted, fn)
}

// Driver exposes the underlying driver for read-only observers such as the
// trace probe.
func (c *Controller) Driver() *driver.Driver {
	return c.drv
}

func (c *Controller) fireIfCompleted() {
	if c.notified || !c.drv.Completed() {
		return
	}
	c.notified = true
	name := c.drv.Cluster().Name
	for _, fn := range c.onCompleted {
		fn(name)
	}
}
