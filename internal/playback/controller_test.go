package playback

import (
	"errors"
	"testing"

	"github.com/ivlev/animsync/internal/cluster"
	"github.com/ivlev/animsync/internal/driver"
)

func testRegistry(t *testing.T) *cluster.Registry {
	t.Helper()

	fps8, fps10 := 8.0, 10.0
	loop := false
	reg, errs := cluster.LoadConfig(&cluster.File{
		DefaultCluster: "idle",
		Clusters: map[string]cluster.Entry{
			"idle": {
				Frames: []string{"i0.png", "i1.png", "i2.png", "i3.png"},
				FPS:    &fps8,
			},
			"celebrate": {
				Frames:     []string{"c0.png", "c1.png", "c2.png", "c3.png", "c4.png"},
				FPS:        &fps10,
				Loop:       &loop,
				HoldLastMs: 500,
			},
			"pop": {
				Frames: []string{"p0.png"},
				FPS:    &fps10,
				Loop:   &loop,
			},
		},
	}, "")
	if len(errs) != 0 {
		t.Fatalf("Test registry failed to load: %v", errs)
	}
	return reg
}

func TestPlayPauseIdempotent(t *testing.T) {
	c := New(testRegistry(t))

	if err := c.Tick(100); err != nil {
		t.Fatal(err)
	}

	c.Pause()
	c.Pause()
	if !c.Paused() {
		t.Fatal("Expected paused")
	}
	if err := c.Tick(1000); err != nil {
		t.Fatal(err)
	}
	if got := c.Driver().ElapsedMs(); got != 100 {
		t.Errorf("Pause must freeze elapsed at 100, got %v", got)
	}

	c.Play()
	c.Play()
	if c.Paused() {
		t.Fatal("Expected playing")
	}
	if got := c.Driver().ElapsedMs(); got != 100 {
		t.Errorf("Play must not reset elapsed, got %v", got)
	}
}

func TestStepRequiresPause(t *testing.T) {
	c := New(testRegistry(t))
	if err := c.Step(); !errors.Is(err, ErrNotPaused) {
		t.Fatalf("Expected ErrNotPaused, got %v", err)
	}
}

func TestStepLoopAdvancesOneFrame(t *testing.T) {
	c := New(testRegistry(t)) // idle: 4 frames at 8 fps, 125ms per frame
	c.Pause()

	for step := 1; step <= 9; step++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
		expected := step % 4
		if got := c.FrameIndex(); got != expected {
			t.Errorf("Step %d: expected frame %d, got %d", step, expected, got)
		}
	}
}

func TestStepOneShotClampsAtHold(t *testing.T) {
	c := New(testRegistry(t))
	if err := c.SwitchCluster("celebrate"); err != nil {
		t.Fatal(err)
	}
	c.Pause()

	var completions int
	c.OnCompleted(func(string) { completions++ })

	// duration 400ms, step 100ms: four steps reach the last frame.
	for step := 1; step <= 4; step++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.FrameIndex(); got != 4 {
		t.Errorf("Expected last frame after 4 steps, got %d", got)
	}
	if c.IsCompleted() {
		t.Error("Hold time not exhausted yet; must not be completed")
	}

	// Stepping on walks through the hold and clamps at duration+hold.
	for step := 0; step < 20; step++ {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.Driver().ElapsedMs(); got != 900 {
		t.Errorf("Step must clamp at 900ms, got %v", got)
	}
	if !c.IsCompleted() {
		t.Error("Expected completed after stepping through hold")
	}
	if completions != 1 {
		t.Errorf("Expected exactly 1 completion, got %d", completions)
	}
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	c := New(testRegistry(t))

	var completed []string
	c.OnCompleted(func(name string) { completed = append(completed, name) })

	if err := c.SwitchCluster("celebrate"); err != nil {
		t.Fatal(err)
	}

	// Tick up to just before the completion boundary.
	for i := 0; i < 89; i++ {
		if err := c.Tick(10); err != nil {
			t.Fatal(err)
		}
	}
	if len(completed) != 0 {
		t.Fatalf("Completed too early at %vms", c.Driver().ElapsedMs())
	}

	// Crossing 900ms fires once; staying completed stays silent.
	for i := 0; i < 50; i++ {
		if err := c.Tick(10); err != nil {
			t.Fatal(err)
		}
	}
	if len(completed) != 1 || completed[0] != "celebrate" {
		t.Fatalf("Expected one celebrate completion, got %v", completed)
	}

	// A new activation re-arms the notification.
	if err := c.SwitchCluster("celebrate"); err != nil {
		t.Fatal(err)
	}
	if err := c.Tick(1000); err != nil {
		t.Fatal(err)
	}
	if len(completed) != 2 {
		t.Fatalf("Expected second completion after re-activation, got %v", completed)
	}
}

func TestLoopNeverCompletes(t *testing.T) {
	c := New(testRegistry(t))

	var completions int
	c.OnCompleted(func(string) { completions++ })

	for i := 0; i < 1000; i++ {
		if err := c.Tick(100); err != nil {
			t.Fatal(err)
		}
	}
	if completions != 0 || c.IsCompleted() {
		t.Errorf("Loop completed: count=%d", completions)
	}
}

func TestSingleFrameOneShotCompletesImmediately(t *testing.T) {
	c := New(testRegistry(t))

	var completions int
	c.OnCompleted(func(string) { completions++ })

	if err := c.SwitchCluster("pop"); err != nil {
		t.Fatal(err)
	}
	if err := c.Tick(0); err != nil {
		t.Fatal(err)
	}
	if !c.IsCompleted() {
		t.Error("Zero-duration one-shot should complete on the first tick")
	}
	if completions != 1 {
		t.Errorf("Expected 1 completion, got %d", completions)
	}
	if c.CurrentFrame() != "p0.png" {
		t.Errorf("Expected p0.png, got %s", c.CurrentFrame())
	}
}

func TestSwitchClusterResets(t *testing.T) {
	c := New(testRegistry(t))
	if err := c.Tick(1000); err != nil {
		t.Fatal(err)
	}

	if err := c.SwitchCluster("celebrate"); err != nil {
		t.Fatal(err)
	}
	if got := c.Driver().ElapsedMs(); got != 0 {
		t.Errorf("Switch must reset elapsed, got %v", got)
	}
	if c.ClusterName() != "celebrate" {
		t.Errorf("Expected celebrate, got %s", c.ClusterName())
	}
}

func TestSwitchClusterUnknownKeepsPlaying(t *testing.T) {
	c := New(testRegistry(t))
	if err := c.Tick(375); err != nil {
		t.Fatal(err)
	}

	var unknown *cluster.UnknownClusterError
	if err := c.SwitchCluster("ghost"); !errors.As(err, &unknown) {
		t.Fatalf("Expected UnknownClusterError, got %v", err)
	}
	if c.ClusterName() != "idle" || c.FrameIndex() != 3 {
		t.Errorf("Failed switch must keep the previous cluster playing: %s frame %d",
			c.ClusterName(), c.FrameIndex())
	}
}

func TestInvalidTickSurfaced(t *testing.T) {
	c := New(testRegistry(t))

	var invalid *driver.InvalidDeltaError
	if err := c.Tick(-5); !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidDeltaError, got %v", err)
	}
	if got := c.Driver().ElapsedMs(); got != 0 {
		t.Errorf("Rejected tick must be ignored, got %v", got)
	}
}
