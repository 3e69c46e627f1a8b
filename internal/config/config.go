// Package config carries the resolved CLI options for the trace runner.
package config

type Config struct {
	ConfigPath string // cluster config file (clusters.yaml)
	OutDir     string // trace output directory
	Cluster    string // single cluster to trace; empty traces all
	DurationMs float64
	SampleMs   float64
	SpeedFPS   float64 // fps override, 0 keeps per-cluster rates
	ShowStats  bool
}
