package cluster

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"github.com/ivlev/animsync/internal/easing"
)

// DefaultClusterName is used when the config does not designate a default.
const DefaultClusterName = "idle"

// Registry owns the loaded cluster definitions. It is built once and
// read-only afterwards, so it is safe to share across any number of
// playback states.
type Registry struct {
	defs        map[string]Definition
	defaultName string
}

// Load reads a cluster config file and builds a registry from it.
//
// Invalid entries are reported as ConfigError values in the returned slice
// but do not block the remaining clusters, so a single malformed entry
// cannot take the whole overlay down. The registry itself is always usable:
// if the designated default cluster did not survive validation, a
// single-frame stand-in is synthesized from fallback_frame so the engine
// degrades to a static frame instead of failing construction.
func Load(path string) (*Registry, []error) {
	f, err := ReadFile(path)
	if err != nil {
		r, _ := LoadConfig(&File{}, "")
		return r, []error{err}
	}

	return LoadConfig(f, filepath.Dir(path))
}

// LoadConfig builds a registry from an already-parsed config. baseDir
// anchors relative glob and zip paths.
func LoadConfig(f *File, baseDir string) (*Registry, []error) {
	r := &Registry{
		defs:        make(map[string]Definition),
		defaultName: f.DefaultCluster,
	}
	if r.defaultName == "" {
		r.defaultName = DefaultClusterName
	}

	var errs []error
	names := make([]string, 0, len(f.Clusters))
	for name := range f.Clusters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		def, err := buildDefinition(name, f.Clusters[name], baseDir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.defs[name] = def
	}

	if _, ok := r.defs[r.defaultName]; !ok {
		frame := f.FallbackFrame
		if frame == "" {
			frame = joinBase(baseDir, filepath.Join("frames", "fallback.png"))
		}
		log.Printf("[!] Default cluster %q unavailable, falling back to static frame %s", r.defaultName, frame)
		r.defs[r.defaultName] = SingleFrame(r.defaultName, frame)
	}

	return r, errs
}

func buildDefinition(name string, e Entry, baseDir string) (Definition, error) {
	frames, err := resolveFrames(e, baseDir)
	if err != nil {
		return Definition{}, &ConfigError{Cluster: name, Reason: err.Error()}
	}
	if len(frames) == 0 {
		return Definition{}, &ConfigError{Cluster: name, Reason: "frame list resolved to empty"}
	}

	fps := DefaultFPS
	if e.FPS != nil {
		fps = *e.FPS
	}
	if fps <= 0 {
		return Definition{}, &ConfigError{Cluster: name, Reason: fmt.Sprintf("fps must be positive, got %v", fps)}
	}

	loop := true
	if e.Loop != nil {
		loop = *e.Loop
	}

	if e.HoldLastMs < 0 {
		return Definition{}, &ConfigError{Cluster: name, Reason: fmt.Sprintf("hold_last_ms must be non-negative, got %d", e.HoldLastMs)}
	}

	if !loop {
		if _, err := easing.ForName(e.Easing); err != nil {
			return Definition{}, &ConfigError{Cluster: name, Reason: err.Error()}
		}
	}

	return Definition{
		Name:       name,
		Frames:     frames,
		FPS:        fps,
		Loop:       loop,
		HoldLastMs: e.HoldLastMs,
		Easing:     e.Easing,
	}, nil
}

// Get looks up a cluster definition by name.
func (r *Registry) Get(name string) (Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return Definition{}, &UnknownClusterError{Name: name}
	}
	return def, nil
}

// Default returns the designated default cluster. Always present.
func (r *Registry) Default() Definition {
	return r.defs[r.defaultName]
}

// DefaultName returns the designated default cluster name.
func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Names lists the loaded cluster names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many clusters loaded.
func (r *Registry) Len() int {
	return len(r.defs)
}
