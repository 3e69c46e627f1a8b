// Package probe records frame-sync timelines for offline verification:
// an append-only TSV of elapsed time versus frame index that can be diffed
// against an expected timeline without looking at pixels.
package probe

import (
	"fmt"
	"io"

	"github.com/ivlev/animsync/internal/cluster"
	"github.com/ivlev/animsync/internal/driver"
	"github.com/ivlev/animsync/internal/playback"
)

// Header is the first line of every trace file.
const Header = "cluster\tms\tp\tframe_idx\tframe_path"

// WriteError reports a failed sample write. Playback state is never
// affected; the embedding app decides whether to keep sampling.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write trace sample: %v", e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Probe appends samples to a trace sink. It only ever reads driver state —
// strictly an observer.
type Probe struct {
	w           io.Writer
	wroteHeader bool
}

// New creates a probe writing TSV rows to w.
func New(w io.Writer) *Probe {
	return &Probe{w: w}
}

// Sample appends one row. The header is written before the first row.
func (p *Probe) Sample(s driver.Sample) error {
	if !p.wroteHeader {
		if _, err := fmt.Fprintln(p.w, Header); err != nil {
			return &WriteError{Err: err}
		}
		p.wroteHeader = true
	}

	_, err := fmt.Fprintf(p.w, "%s\t%d\t%.4f\t%d\t%s\n",
		s.Cluster, int64(s.ElapsedMs), s.Progress, s.FrameIndex, s.FramePath)
	if err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// Recorder deterministically replays clusters against a virtual clock and
// feeds the resulting timeline to a probe. The sampling interval is
// independent of any render tick rate.
type Recorder struct {
	Registry *cluster.Registry

	// SampleMs is the virtual-clock step between samples.
	SampleMs float64

	// FPSOverride replays every cluster at a fixed rate when positive,
	// mirroring the dev-menu speed control.
	FPSOverride float64
}

// Trace plays the named cluster on a private controller for durationMs of
// virtual time, sampling every SampleMs. The shared registry is only read,
// so any number of Trace calls may run concurrently.
func (r *Recorder) Trace(name string, durationMs float64, p *Probe) error {
	ctl := playback.New(r.Registry)
	if err := ctl.SwitchCluster(name); err != nil {
		return err
	}
	if r.FPSOverride > 0 {
		ctl.SetSpeed(r.FPSOverride)
	}

	sampleMs := r.SampleMs
	if sampleMs <= 0 {
		sampleMs = 1000.0 / 30
	}

	for elapsed := 0.0; elapsed <= durationMs; elapsed += sampleMs {
		if err := p.Sample(ctl.Driver().Snapshot()); err != nil {
			return err
		}
		if err := ctl.Tick(sampleMs); err != nil {
			return err
		}
	}
	return nil
}
