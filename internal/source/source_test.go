package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestImageSourceOrder(t *testing.T) {
	dir := t.TempDir()

	// Created out of order; the source must sort by name.
	for _, name := range []string{"c.png", "a.png", "b.png", "notes.txt"} {
		if name == "notes.txt" {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
				t.Fatal(err)
			}
			continue
		}
		writeTestPNG(t, filepath.Join(dir, name), 8, 8)
	}

	src, err := NewImageSource(dir)
	if err != nil {
		t.Fatalf("NewImageSource failed: %v", err)
	}
	defer src.Close()

	if got := src.FrameCount(); got != 3 {
		t.Fatalf("Expected 3 frames, got %d", got)
	}

	for i, want := range []string{"a.png", "b.png", "c.png"} {
		if filepath.Base(src.paths[i]) != want {
			t.Errorf("Frame %d: expected %s, got %s", i, want, src.paths[i])
		}
	}

	w, h, err := src.FrameDimensions(0)
	if err != nil {
		t.Fatal(err)
	}
	if w != 8 || h != 8 {
		t.Errorf("Expected 8x8, got %vx%v", w, h)
	}
}

func TestExportFrames(t *testing.T) {
	inDir := t.TempDir()
	for _, name := range []string{"x.png", "y.png"} {
		writeTestPNG(t, filepath.Join(inDir, name), 4, 4)
	}

	src, err := NewImageSource(inDir)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	outDir := filepath.Join(t.TempDir(), "frames")
	paths, err := ExportFrames(src, outDir, "test", 72)
	if err != nil {
		t.Fatalf("ExportFrames failed: %v", err)
	}

	expected := []string{"test_0001.png", "test_0002.png"}
	if len(paths) != len(expected) {
		t.Fatalf("Expected %d frames, got %d", len(expected), len(paths))
	}
	for i, want := range expected {
		if filepath.Base(paths[i]) != want {
			t.Errorf("Frame %d: expected %s, got %s", i, want, paths[i])
		}
		f, err := os.Open(paths[i])
		if err != nil {
			t.Fatalf("Exported frame missing: %v", err)
		}
		if _, err := png.Decode(f); err != nil {
			t.Errorf("Exported frame %s not decodable: %v", paths[i], err)
		}
		f.Close()
	}
}
