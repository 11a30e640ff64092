// Package pdfedit holds a mutable, in-memory PDF page tree that can receive
// image overlays and be serialized back to bytes.
//
// The page tree is read and written with github.com/wudi/pdfkit. Overlays
// are embedded as image XObjects with a soft mask for alpha, and painted by
// a content stream appended to the page under an ExtGState that sets the
// constant opacity.
package pdfedit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wudi/pdfkit/coords"
	"github.com/wudi/pdfkit/ir"
	"github.com/wudi/pdfkit/ir/semantic"
	"github.com/wudi/pdfkit/writer"
)

// Sentinel errors for editing operations.
var (
	ErrParse          = errors.New("parsing PDF")
	ErrEncrypted      = errors.New("encrypted PDF not supported")
	ErrPageIndex      = errors.New("page index out of range")
	ErrInvalidImage   = errors.New("invalid image")
	ErrInvalidOpacity = errors.New("opacity must be within [0, 1]")
	ErrSerialize      = errors.New("serializing PDF")
)

// Page describes the geometry of one page.
type Page struct {
	MediaBox semantic.Rectangle
	CropBox  semantic.Rectangle
	Rotate   int
}

// Document is a mutable PDF page tree.
type Document struct {
	doc     *semantic.Document
	images  int
	wrapped map[int]bool
	drawn   map[int]int
}

// Open parses data into a mutable Document.
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
	return &Document{doc: doc, wrapped: make(map[int]bool), drawn: make(map[int]int)}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
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

// Overlays returns how many images have been drawn on the page since Open.
func (d *Document) Overlays(index int) int {
	return d.drawn[index]
}

func (d *Document) page(index int) (*semantic.Page, error) {
	if index < 0 || index >= len(d.doc.Pages) || d.doc.Pages[index] == nil {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrPageIndex, index, len(d.doc.Pages))
	}
	return d.doc.Pages[index], nil
}

// DrawImage paints img on the page at the zero-based index. placement maps
// the image unit square to page user space. The page's existing content is
// wrapped in q/Q once so its graphics state cannot leak into the overlay.
func (d *Document) DrawImage(index int, img *Image, placement coords.Matrix, opacity float64) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	if math.IsNaN(opacity) || opacity < 0 || opacity > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidOpacity, opacity)
	}
	p, err := d.page(index)
	if err != nil {
		return err
	}

	if p.Resources == nil {
		p.Resources = &semantic.Resources{}
	}
	res := p.Resources
	if res.ExtGStates == nil {
		res.ExtGStates = make(map[string]semantic.ExtGState)
	}
	if res.XObjects == nil {
		res.XObjects = make(map[string]semantic.XObject)
	}

	gsName := uniqueName(fmt.Sprintf("AnnotGS%d", int(math.Round(opacity*100))), func(n string) bool {
		gs, ok := res.ExtGStates[n]
		return ok && !(gs.FillAlpha != nil && *gs.FillAlpha == opacity)
	})
	alpha := opacity
	res.ExtGStates[gsName] = semantic.ExtGState{FillAlpha: &alpha, StrokeAlpha: &alpha}

	imName := uniqueName(img.name, func(n string) bool {
		_, ok := res.XObjects[n]
		return ok
	})
	res.XObjects[imName] = img.xobj
	res.Dirty = true

	if !d.wrapped[index] {
		contents := make([]semantic.ContentStream, 0, len(p.Contents)+2)
		contents = append(contents, semantic.ContentStream{RawBytes: []byte("q\n")})
		contents = append(contents, p.Contents...)
		contents = append(contents, semantic.ContentStream{RawBytes: []byte("\nQ\n")})
		p.Contents = contents
		d.wrapped[index] = true
	}
	p.Contents = append(p.Contents, semantic.ContentStream{RawBytes: overlayStream(gsName, imName, placement)})
	p.Dirty = true
	d.doc.Dirty = true
	d.drawn[index]++
	return nil
}

// overlayStream paints one image XObject under the named ExtGState.
func overlayStream(gsName, imName string, m coords.Matrix) []byte {
	var b strings.Builder
	b.WriteString("q /")
	b.WriteString(gsName)
	b.WriteString(" gs")
	for _, v := range m {
		b.WriteByte(' ')
		b.WriteString(formatNumber(v))
	}
	b.WriteString(" cm /")
	b.WriteString(imName)
	b.WriteString(" Do Q\n")
	return []byte(b.String())
}

func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// uniqueName returns base, or base with a numeric suffix, such that taken
// reports false.
func uniqueName(base string, taken func(string) bool) string {
	name := base
	for i := 2; taken(name); i++ {
		name = base + "_" + strconv.Itoa(i)
	}
	return name
}

// Save serializes the document.
func (d *Document) Save(ctx context.Context) ([]byte, error) {
	var buf bytes.Buffer
	cfg := writer.Config{
		Version:       writer.PDF17,
		Deterministic: true,
		Compression:   6,
	}
	if err := writer.NewWriter().Write(ctx, d.doc, &buf, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return buf.Bytes(), nil
}
