package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/animsync/internal/cluster"
	"github.com/ivlev/animsync/internal/config"
	"github.com/ivlev/animsync/internal/probe"
	"github.com/ivlev/animsync/internal/system"
)

func main() {
	configPtr := flag.String("config", "", "Cluster config file (default: newest *.yaml in configs/)")
	outPtr := flag.String("out", "artifacts/sync", "Directory for trace output")
	clusterPtr := flag.String("cluster", "", "Trace a single cluster (default: all)")
	durationPtr := flag.Float64("duration", 2000, "Virtual time to trace per cluster (ms)")
	samplePtr := flag.Float64("sample", 30, "Sampling interval (ms)")
	speedPtr := flag.Float64("speed", 0, "FPS override for all clusters (0 keeps configured rates)")
	statsPtr := flag.Bool("stats", false, "Print a performance report after the run")

	flag.Parse()

	cfg := &config.Config{
		ConfigPath: *configPtr,
		OutDir:     *outPtr,
		Cluster:    *clusterPtr,
		DurationMs: *durationPtr,
		SampleMs:   *samplePtr,
		SpeedFPS:   *speedPtr,
		ShowStats:  *statsPtr,
	}

	if cfg.ConfigPath == "" {
		latest, err := system.FindLatestConfig("configs")
		if err != nil {
			log.Fatalf("[-] No config given and none found: %v", err)
		}
		cfg.ConfigPath = latest
		fmt.Printf("[*] Using config: %s\n", cfg.ConfigPath)
	}

	reg, errs := cluster.Load(cfg.ConfigPath)
	for _, err := range errs {
		log.Printf("[!] %v", err)
	}
	fmt.Printf("[*] Loaded %d clusters (default: %s)\n", reg.Len(), reg.DefaultName())

	names := reg.Names()
	if cfg.Cluster != "" {
		if _, err := reg.Get(cfg.Cluster); err != nil {
			log.Fatalf("[-] %v", err)
		}
		names = []string{cfg.Cluster}
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		log.Fatalf("[-] Failed to create output directory: %v", err)
	}

	start := time.Now()

	// Definitions are immutable after load, so the clusters can trace in
	// parallel as long as each goroutine owns its controller and sink.
	var g errgroup.Group
	for _, name := range names {
		name := name
		g.Go(func() error {
			outPath := filepath.Join(cfg.OutDir, name+".tsv")
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()

			w := bufio.NewWriter(f)
			rec := &probe.Recorder{
				Registry:    reg,
				SampleMs:    cfg.SampleMs,
				FPSOverride: cfg.SpeedFPS,
			}
			if err := rec.Trace(name, cfg.DurationMs, probe.New(w)); err != nil {
				return fmt.Errorf("tracing %s: %w", name, err)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("[>] Wrote %s\n", outPath)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("[-] Trace failed: %v", err)
	}

	if cfg.ShowStats {
		samplesPerCluster := int(math.Floor(cfg.DurationMs/cfg.SampleMs)) + 1
		stats := system.CollectRunStats(len(names), len(names)*samplesPerCluster, time.Since(start))
		fmt.Print(stats.Report())
	}

	fmt.Printf("[+++] Done. Traces in %s\n", cfg.OutDir)
}
