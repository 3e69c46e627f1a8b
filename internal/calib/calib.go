// Package calib generates numbered calibration frames. Each frame carries
// its own index as a large label and as a QR code, so filming the overlay
// and decoding what was on screen at each instant verifies the
// frame-to-time mapping end to end, without trusting the renderer.
package calib

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Options controls one generated calibration cluster.
type Options struct {
	Cluster string // cluster name stamped into labels and QR payloads
	Frames  int    // number of frames to generate
	FPS     float64
	Size    int    // square frame side in pixels
	OutDir  string
}

// Generate writes the calibration frames as PNGs and returns their paths in
// frame order. Names are zero-padded so lexicographic order matches frame
// order.
func Generate(opts Options) ([]string, error) {
	if opts.Frames <= 0 {
		return nil, fmt.Errorf("frame count must be positive, got %d", opts.Frames)
	}
	size := opts.Size
	if size <= 0 {
		size = 512
	}

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, opts.Frames)
	for i := 0; i < opts.Frames; i++ {
		frame := checkerboard(size, size, 16)

		payload := fmt.Sprintf("%s/%d/%g", opts.Cluster, i, opts.FPS)
		if err := stampQR(frame, payload, size); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}

		label := fmt.Sprintf("%s %d/%d", opts.Cluster, i, opts.Frames-1)
		stampLabel(frame, label, size)

		path := filepath.Join(opts.OutDir, fmt.Sprintf("%s_%04d.png", opts.Cluster, i+1))
		if err := writePNG(path, frame); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// checkerboard fills a frame with the editor-style transparency pattern so
// compositing artifacts show up on camera.
func checkerboard(width, height, step int) *image.RGBA {
	on := color.RGBA{200, 200, 200, 255}
	off := color.RGBA{160, 160, 160, 255}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/step)+(y/step))%2 == 0 {
				img.Set(x, y, on)
			} else {
				img.Set(x, y, off)
			}
		}
	}
	return img
}

// stampQR draws the frame payload as a QR code in the lower half.
func stampQR(dst *image.RGBA, payload string, size int) error {
	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return err
	}

	qrSize := size / 2
	qrImg := qr.Image(qrSize)
	offset := image.Pt((size-qrSize)/2, size-qrSize-size/16)
	draw.Draw(dst, image.Rectangle{Min: offset, Max: offset.Add(image.Pt(qrSize, qrSize))},
		qrImg, qrImg.Bounds().Min, draw.Over)
	return nil
}

// stampLabel renders the text with the basic 7x13 face and scales it up
// with nearest-neighbour so the digits stay hard-edged and readable on a
// filmed screen.
func stampLabel(dst *image.RGBA, text string, size int) {
	face := basicfont.Face7x13
	textW := font.MeasureString(face, text).Ceil()
	small := image.NewRGBA(image.Rect(0, 0, textW+4, face.Height+4))
	draw.Draw(small, small.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(2, face.Ascent+2),
	}
	d.DrawString(text)

	scale := size / 4 / small.Bounds().Dy()
	if scale < 1 {
		scale = 1
	}
	labelW := small.Bounds().Dx() * scale
	labelH := small.Bounds().Dy() * scale
	offset := image.Pt((size-labelW)/2, size/16)
	xdraw.NearestNeighbor.Scale(dst,
		image.Rectangle{Min: offset, Max: offset.Add(image.Pt(labelW, labelH))},
		small, small.Bounds(), xdraw.Over, nil)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
