package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ivlev/animsync/internal/cluster"
	"github.com/ivlev/animsync/internal/source"
)

// frameRange is one "name:first-last" argument, frame numbers 1-based
// inclusive.
type frameRange struct {
	name  string
	first int
	last  int
}

type frameRanges []frameRange

func (r *frameRanges) String() string {
	parts := make([]string, 0, len(*r))
	for _, s := range *r {
		parts = append(parts, fmt.Sprintf("%s:%d-%d", s.name, s.first, s.last))
	}
	return strings.Join(parts, ",")
}

func (r *frameRanges) Set(value string) error {
	name, frames, ok := strings.Cut(value, ":")
	if !ok {
		return fmt.Errorf("want name:first-last, got %q", value)
	}
	lo, hi, ok := strings.Cut(frames, "-")
	if !ok {
		return fmt.Errorf("want name:first-last, got %q", value)
	}
	first, err := strconv.Atoi(lo)
	if err != nil {
		return err
	}
	last, err := strconv.Atoi(hi)
	if err != nil {
		return err
	}
	if first < 1 || last < first {
		return fmt.Errorf("bad frame range %d-%d", first, last)
	}
	*r = append(*r, frameRange{name: name, first: first, last: last})
	return nil
}

func main() {
	var ranges frameRanges

	inputPtr := flag.String("input", "", "PDF storyboard or image directory to import frames from")
	outPtr := flag.String("out", "assets/frames", "Directory for exported frame PNGs")
	configPtr := flag.String("config", "configs/clusters.yaml", "Cluster config to write")
	prefixPtr := flag.String("prefix", "frame", "Frame file name prefix")
	fpsPtr := flag.Float64("fps", 24, "Playback rate for generated clusters")
	dpiPtr := flag.Int("dpi", 150, "Rasterization DPI for PDF input")
	defaultPtr := flag.String("default", "idle", "Default cluster name")
	flag.Var(&ranges, "range", "Cluster range name:first-last (1-based, inclusive; repeatable)")

	flag.Parse()

	if *inputPtr == "" {
		log.Fatalf("[-] -input is required")
	}

	var src source.Source
	var err error
	if strings.HasSuffix(strings.ToLower(*inputPtr), ".pdf") {
		src, err = source.NewPDFSource(*inputPtr)
	} else {
		src, err = source.NewImageSource(*inputPtr)
	}
	if err != nil {
		log.Fatalf("[-] Failed to open frame source: %v", err)
	}
	defer src.Close()

	fmt.Printf("[*] Importing %d frames from %s\n", src.FrameCount(), *inputPtr)
	frames, err := source.ExportFrames(src, *outPtr, *prefixPtr, *dpiPtr)
	if err != nil {
		log.Fatalf("[-] Frame export failed: %v", err)
	}

	if len(ranges) == 0 {
		ranges = frameRanges{{name: *defaultPtr, first: 1, last: len(frames)}}
	}

	file := &cluster.File{
		Version:        "1.0",
		DefaultCluster: *defaultPtr,
		FallbackFrame:  frames[0],
		Clusters:       make(map[string]cluster.Entry),
	}

	for _, s := range ranges {
		if s.last > len(frames) {
			log.Fatalf("[-] Range %s:%d-%d exceeds %d exported frames", s.name, s.first, s.last, len(frames))
		}
		slice := make([]string, s.last-s.first+1)
		copy(slice, frames[s.first-1:s.last])

		// Idle-style names loop by convention; everything else plays once.
		loop := strings.HasPrefix(s.name, "idle") || strings.HasSuffix(s.name, "_loop")
		fps := *fpsPtr
		file.Clusters[s.name] = cluster.Entry{
			Frames: slice,
			FPS:    &fps,
			Loop:   &loop,
		}
		fmt.Printf("[>] Cluster %s: frames %d-%d, loop=%v\n", s.name, s.first, s.last, loop)
	}

	if err := cluster.WriteFile(file, *configPtr); err != nil {
		log.Fatalf("[-] Failed to write config: %v", err)
	}

	// Round-trip through the registry so a broken config is caught here,
	// not at overlay startup.
	if _, errs := cluster.Load(*configPtr); len(errs) > 0 {
		for _, err := range errs {
			log.Printf("[!] %v", err)
		}
		log.Fatalf("[-] Generated config failed validation")
	}

	fmt.Printf("[+++] Wrote %s (%d clusters, %d frames)\n", *configPtr, len(ranges), len(frames))
}
