package pdfannotate

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/wudi/pdfkit/coords"
	"github.com/wudi/pdfkit/ir/semantic"

	"github.com/alnah/go-pdfannotate/internal/pdfedit"
	"github.com/alnah/go-pdfannotate/internal/pdfrender"
)

// RenderableDocument is a read-only view that rasterizes pages.
// Page indices are 1-based.
type RenderableDocument interface {
	NumPages() int
	PageBox(page int) (PageBox, error)
	// RenderPage paints the page into a fresh raster of the viewport's
	// pixel size. A partial result is returned with an error wrapping
	// ErrPartialRender.
	RenderPage(ctx context.Context, page int, vp Viewport) (*image.RGBA, error)
}

// RenderOpener derives a RenderableDocument from PDF bytes.
type RenderOpener interface {
	OpenRenderable(ctx context.Context, data []byte) (RenderableDocument, error)
}

// EmbeddedImage is an image resource owned by a MutableDocument.
type EmbeddedImage interface {
	Size() (width, height int)
}

// MutableDocument is a write-capable view used at export time.
// Page indices are 1-based.
type MutableDocument interface {
	PageCount() int
	PageBox(page int) (PageBox, error)
	EmbedPNG(data []byte) (EmbeddedImage, error)
	// DrawImage paints img on page. placement maps the image unit square
	// to page user space.
	DrawImage(page int, img EmbeddedImage, placement Matrix, opacity float64) error
	Save(ctx context.Context) ([]byte, error)
}

// MutableOpener derives a MutableDocument from PDF bytes.
type MutableOpener interface {
	OpenMutable(ctx context.Context, data []byte) (MutableDocument, error)
}

// PDFKit opens both views with the pdfkit-based packages. It is the
// default backend for a Session.
type PDFKit struct{}

var (
	_ RenderOpener  = PDFKit{}
	_ MutableOpener = PDFKit{}
)

// OpenRenderable implements RenderOpener.
func (PDFKit) OpenRenderable(ctx context.Context, data []byte) (RenderableDocument, error) {
	doc, err := pdfrender.Open(ctx, data)
	if err != nil {
		return nil, err
	}
	return &renderDoc{doc: doc}, nil
}

// OpenMutable implements MutableOpener.
func (PDFKit) OpenMutable(ctx context.Context, data []byte) (MutableDocument, error) {
	doc, err := pdfedit.Open(ctx, data)
	if err != nil {
		return nil, err
	}
	return &editDoc{doc: doc}, nil
}

func rect(r semantic.Rectangle) Rect {
	return Rect{LLX: r.LLX, LLY: r.LLY, URX: r.URX, URY: r.URY}
}

type renderDoc struct {
	doc *pdfrender.Document
}

func (d *renderDoc) NumPages() int { return d.doc.NumPages() }

func (d *renderDoc) PageBox(page int) (PageBox, error) {
	p, err := d.doc.Page(page - 1)
	if err != nil {
		return PageBox{}, fmt.Errorf("%w: %v", ErrPageRange, err)
	}
	return NewPageBox(rect(p.MediaBox), rect(p.CropBox), p.Rotate), nil
}

func (d *renderDoc) RenderPage(ctx context.Context, page int, vp Viewport) (*image.RGBA, error) {
	w, h := vp.PixelSize()
	img, err := d.doc.Render(ctx, page-1, w, h, coords.Matrix(vp.Transform))
	switch {
	case err == nil:
		return img, nil
	case errors.Is(err, pdfrender.ErrContent) && img != nil:
		return img, fmt.Errorf("%w: %v", ErrPartialRender, err)
	case errors.Is(err, pdfrender.ErrPageIndex):
		return nil, fmt.Errorf("%w: %v", ErrPageRange, err)
	default:
		return nil, err
	}
}

type editDoc struct {
	doc *pdfedit.Document
}

type editImage struct {
	img *pdfedit.Image
}

func (i editImage) Size() (int, int) { return i.img.Width, i.img.Height }

func (d *editDoc) PageCount() int { return d.doc.PageCount() }

func (d *editDoc) PageBox(page int) (PageBox, error) {
	p, err := d.doc.Page(page - 1)
	if err != nil {
		return PageBox{}, fmt.Errorf("%w: %v", ErrPageRange, err)
	}
	return NewPageBox(rect(p.MediaBox), rect(p.CropBox), p.Rotate), nil
}

func (d *editDoc) EmbedPNG(data []byte) (EmbeddedImage, error) {
	img, err := d.doc.EmbedPNG(data)
	if err != nil {
		return nil, err
	}
	return editImage{img: img}, nil
}

func (d *editDoc) DrawImage(page int, img EmbeddedImage, placement Matrix, opacity float64) error {
	ei, ok := img.(editImage)
	if !ok {
		return fmt.Errorf("image %T was not embedded by this document", img)
	}
	return d.doc.DrawImage(page-1, ei.img, coords.Matrix(placement), opacity)
}

func (d *editDoc) Save(ctx context.Context) ([]byte, error) {
	return d.doc.Save(ctx)
}
