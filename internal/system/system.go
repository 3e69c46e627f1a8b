// Package system holds host-facing helpers for the CLIs: config discovery
// and the post-run performance report.
package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// FindLatestConfig returns the most recently modified cluster config
// (*.yaml or *.yml) in dir.
func FindLatestConfig(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := strings.ToLower(f.Name())
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no cluster configs found in %s", dir)
	}

	return latestFile, nil
}

// RunStats summarizes one trace run for the -stats report.
type RunStats struct {
	Clusters  int
	Samples   int
	Elapsed   time.Duration
	RSSMB     float64
	CPUPct    float64
	statsErr  error
}

// CollectRunStats gathers process resource usage via gopsutil. A probe
// failure degrades the report instead of failing the run.
func CollectRunStats(clusters, samples int, elapsed time.Duration) RunStats {
	s := RunStats{Clusters: clusters, Samples: samples, Elapsed: elapsed}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		s.statsErr = err
		return s
	}
	if mem, err := proc.MemoryInfo(); err == nil {
		s.RSSMB = float64(mem.RSS) / (1024 * 1024)
	} else {
		s.statsErr = err
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		s.CPUPct = cpu
	} else {
		s.statsErr = err
	}
	return s
}

// Report formats the performance block printed after a -stats run.
func (s RunStats) Report() string {
	report := fmt.Sprintf(
		"--- [TRACE REPORT] ---\n"+
			"Clusters: %d\n"+
			"Samples: %d\n"+
			"Total Time: %.2fs\n"+
			"RSS: %.1f MB\n"+
			"CPU: %.1f%%\n"+
			"----------------------\n",
		s.Clusters, s.Samples, s.Elapsed.Seconds(), s.RSSMB, s.CPUPct,
	)
	if s.statsErr != nil {
		report += fmt.Sprintf("[!] Incomplete process stats: %v\n", s.statsErr)
	}
	return report
}
