package cluster

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk cluster config (clusters.yaml).
type File struct {
	Version string `yaml:"version"`

	// DefaultCluster names the cluster a fresh playback state starts on.
	// Empty means "idle".
	DefaultCluster string `yaml:"default_cluster"`

	// FallbackFrame is the single frame the registry falls back to when the
	// default cluster cannot be resolved.
	FallbackFrame string `yaml:"fallback_frame"`

	Clusters map[string]Entry `yaml:"clusters"`
}

// Entry is one cluster definition as written in the config. Exactly one of
// Frames, Glob, Format/Range or Zip supplies the frame list; they are
// consulted in that order. Unknown YAML fields are ignored.
type Entry struct {
	Frames     []string `yaml:"frames"`
	Glob       string   `yaml:"glob"`
	Format     string   `yaml:"format"` // printf pattern, e.g. "frame_%04d.png"
	Range      []int    `yaml:"range"`  // [first, last] or [first, last, step], inclusive
	Zip        string   `yaml:"zip"`    // archive whose PNG members are the frames
	FPS        *float64 `yaml:"fps"`    // nil means the historical default of 12
	Loop       *bool    `yaml:"loop"`   // nil means true
	HoldLastMs int      `yaml:"hold_last_ms"`
	Easing     string   `yaml:"easing"`
}

// DefaultFPS is assumed when a cluster entry does not set fps.
const DefaultFPS = 12.0

// ReadFile reads a cluster config from a YAML file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse cluster config %s: %w", path, err)
	}

	return &f, nil
}

// WriteFile writes a cluster config to a YAML file.
func WriteFile(f *File, path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// resolveFrames expands an entry's frame source into a fixed ordered list.
// Resolution happens once at load time; playback never touches the
// filesystem. Relative globs and zip paths are taken relative to baseDir.
func resolveFrames(e Entry, baseDir string) ([]string, error) {
	switch {
	case len(e.Frames) > 0:
		frames := make([]string, len(e.Frames))
		copy(frames, e.Frames)
		return frames, nil

	case e.Glob != "":
		matches, err := filepath.Glob(joinBase(baseDir, e.Glob))
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", e.Glob, err)
		}
		// Glob order is filesystem-dependent; sort so frame order is
		// reproducible across runs.
		sort.Strings(matches)
		return matches, nil

	case e.Format != "" && len(e.Range) >= 2:
		step := 1
		if len(e.Range) > 2 {
			step = e.Range[2]
		}
		if step <= 0 {
			return nil, fmt.Errorf("range step must be positive, got %d", step)
		}
		var frames []string
		for i := e.Range[0]; i <= e.Range[1]; i += step {
			frames = append(frames, fmt.Sprintf(e.Format, i))
		}
		return frames, nil

	case e.Zip != "":
		return zipFrames(joinBase(baseDir, e.Zip))
	}

	return nil, nil
}

func joinBase(baseDir, path string) string {
	if baseDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// zipFrames lists the PNG members of an archive in frame order. Member
// names sort by their trailing numeric groups so frame_2 precedes frame_10
// regardless of zero padding.
func zipFrames(path string) ([]string, error) {
	zf, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame archive %s: %w", path, err)
	}
	defer zf.Close()

	var names []string
	for _, member := range zf.File {
		if strings.HasSuffix(strings.ToLower(member.Name), ".png") {
			names = append(names, member.Name)
		}
	}

	sort.Slice(names, func(i, j int) bool {
		ki, kj := numericKey(names[i]), numericKey(names[j])
		for n := 0; n < len(ki) && n < len(kj); n++ {
			if ki[n] != kj[n] {
				return ki[n] < kj[n]
			}
		}
		if len(ki) != len(kj) {
			return len(ki) < len(kj)
		}
		return names[i] < names[j]
	})

	return names, nil
}

var digitGroups = regexp.MustCompile(`\d+`)

// numericKey extracts up to the last two digit groups of a member name.
func numericKey(name string) []int {
	groups := digitGroups.FindAllString(name, -1)
	if len(groups) > 2 {
		groups = groups[len(groups)-2:]
	}
	key := make([]int, 0, len(groups))
	for _, g := range groups {
		v, err := strconv.Atoi(g)
		if err != nil {
			continue
		}
		key = append(key, v)
	}
	return key
}
