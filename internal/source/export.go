package source

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// ExportFrames renders every frame of a source to zero-padded PNG files
// under outDir and returns their paths in frame order. The names sort
// lexicographically, so a glob over outDir reproduces the same order.
func ExportFrames(src Source, outDir, prefix string, dpi int) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	count := src.FrameCount()
	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		img, err := src.RenderFrame(i, dpi)
		if err != nil {
			return nil, fmt.Errorf("failed to render frame %d: %w", i, err)
		}

		path := filepath.Join(outDir, fmt.Sprintf("%s_%04d.png", prefix, i+1))
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to encode %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}
