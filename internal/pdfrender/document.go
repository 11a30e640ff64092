// Package pdfrender decodes PDF bytes into a read-only page tree and
// rasterizes pages into RGBA images.
//
// Parsing is delegated to github.com/wudi/pdfkit. Page content streams are
// interpreted with the pdfkit content stream processor and painted with
// internal/raster. Vector paths and solid colors are painted; text, images,
// shadings and clipping are accepted but not drawn.
package pdfrender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/wudi/pdfkit/coords"
	"github.com/wudi/pdfkit/ir"
	"github.com/wudi/pdfkit/ir/semantic"
)

// Sentinel errors for rendering operations.
var (
	ErrParse       = errors.New("parsing PDF")
	ErrEncrypted   = errors.New("encrypted PDF not supported")
	ErrPageIndex   = errors.New("page index out of range")
	ErrInvalidSize = errors.New("invalid raster size")
	// ErrContent reports a content stream the interpreter could not fully
	// process. Render still returns the partially painted raster.
	ErrContent = errors.New("content stream error")
)

// MaxPixels bounds a single page raster to keep memory predictable.
var MaxPixels = 64 << 20

// Page describes the geometry of one page.
type Page struct {
	MediaBox semantic.Rectangle
	CropBox  semantic.Rectangle
	Rotate   int
}

// Document is a parsed, read-only PDF.
type Document struct {
	doc *semantic.Document
}

// Open parses data into a Document.
func Open(ctx context.Context, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrParse)
	}
	doc, err := ir.NewDefault().Parse(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.Encrypted {
		return nil, ErrEncrypted
	}
	return &Document{doc: doc}, nil
}

// NumPages returns the number of pages.
func (d *Document) NumPages() int {
	return len(d.doc.Pages)
}

// Page returns the geometry of the page at the zero-based index.
func (d *Document) Page(index int) (Page, error) {
	p, err := d.page(index)
	if err != nil {
		return Page{}, err
	}
	return Page{MediaBox: p.MediaBox, CropBox: p.CropBox, Rotate: p.Rotate}, nil
}

func (d *Document) page(index int) (*semantic.Page, error) {
	if index < 0 || index >= len(d.doc.Pages) || d.doc.Pages[index] == nil {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrPageIndex, index, len(d.doc.Pages))
	}
	return d.doc.Pages[index], nil
}

// Render paints the page at the zero-based index into a white width x height
// raster. base maps PDF user space to device pixels.
//
// When the content stream cannot be fully interpreted, Render returns the
// partial raster together with an error wrapping ErrContent.
func (d *Document) Render(ctx context.Context, index, width, height int, base coords.Matrix) (*image.RGBA, error) {
	p, err := d.page(index)
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 || width*height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	in := newInterpreter(img, base)
	for i, cs := range p.Contents {
		if err := ctx.Err(); err != nil {
			return img, err
		}
		if err := in.run(ctx, cs); err != nil {
			return img, fmt.Errorf("%w: page %d stream %d: %v", ErrContent, index+1, i, err)
		}
	}
	return img, nil
}
