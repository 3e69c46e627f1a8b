package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/ivlev/animsync/internal/calib"
	"github.com/ivlev/animsync/internal/cluster"
)

func main() {
	namePtr := flag.String("name", "calib", "Calibration cluster name")
	framesPtr := flag.Int("frames", 48, "Number of frames to generate")
	fpsPtr := flag.Float64("fps", 24, "Playback rate written into the config entry")
	sizePtr := flag.Int("size", 512, "Frame side length in pixels")
	outPtr := flag.String("out", "assets/calib", "Directory for generated frames")
	configPtr := flag.String("config", "", "Optional cluster config to write (frames only when empty)")
	loopPtr := flag.Bool("loop", true, "Generate a looping cluster (false: one-shot with hold)")
	holdPtr := flag.Int("hold", 500, "hold_last_ms for one-shot calibration")

	flag.Parse()

	paths, err := calib.Generate(calib.Options{
		Cluster: *namePtr,
		Frames:  *framesPtr,
		FPS:     *fpsPtr,
		Size:    *sizePtr,
		OutDir:  *outPtr,
	})
	if err != nil {
		log.Fatalf("[-] Calibration frame generation failed: %v", err)
	}
	fmt.Printf("[*] Generated %d calibration frames in %s\n", len(paths), *outPtr)

	if *configPtr == "" {
		fmt.Println("[+++] Done")
		return
	}

	fps := *fpsPtr
	loop := *loopPtr
	entry := cluster.Entry{
		Glob: filepath.Join(*outPtr, *namePtr+"_*.png"),
		FPS:  &fps,
		Loop: &loop,
	}
	if !loop {
		entry.HoldLastMs = *holdPtr
	}

	file := &cluster.File{
		Version:        "1.0",
		DefaultCluster: *namePtr,
		FallbackFrame:  paths[0],
		Clusters:       map[string]cluster.Entry{*namePtr: entry},
	}
	if err := cluster.WriteFile(file, *configPtr); err != nil {
		log.Fatalf("[-] Failed to write config: %v", err)
	}

	fmt.Printf("[+++] Wrote %s\n", *configPtr)
}
