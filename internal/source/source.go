// Package source imports ordered frame sequences for cluster assets from
// external containers: PDF storyboards (one page per frame) or directories
// of images. The playback engine itself never decodes pixels; these
// importers exist for the cluster-building tools only.
package source

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

// Source yields the frames of one container in a fixed order.
type Source interface {
	FrameCount() int
	FrameDimensions(index int) (width, height float64, err error)
	RenderFrame(index int, dpi int) (image.Image, error)
	Close() error
}

// PDFSource treats each page of a PDF as one animation frame, in page
// order. Useful for storyboard-style cluster drafts.
type PDFSource struct {
	doc  *fitz.Document
	path string
}

func NewPDFSource(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &PDFSource{doc: doc, path: path}, nil
}

func (s *PDFSource) FrameCount() int {
	return s.doc.NumPage()
}

func (s *PDFSource) FrameDimensions(index int) (float64, float64, error) {
	rect, err := s.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

// RenderFrame rasterizes one page. go-fitz documents are not safe for
// concurrent rendering, so each call opens its own handle.
func (s *PDFSource) RenderFrame(index int, dpi int) (image.Image, error) {
	workerDoc, err := fitz.New(s.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(dpi))
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}
