package pdfannotate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/alnah/go-pdfannotate/internal/raster"
)

// StrokeWidth is the pen width in backing pixels.
const StrokeWidth = 2.0

// StrokeColor is the pen color, opaque red.
var StrokeColor = color.NRGBA{R: 0xff, A: 0xff}

// Point is a position on the annotation surface, in backing pixels.
type Point struct {
	X, Y float64
}

// StrokeState is the drawing state of a Surface.
type StrokeState int

// Surface states.
const (
	StateIdle StrokeState = iota
	StateDrawing
)

func (s StrokeState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	default:
		return fmt.Sprintf("StrokeState(%d)", int(s))
	}
}

// Raster is a PNG-encoded snapshot of an annotation surface.
type Raster []byte

// Surface is a transparent drawing layer. Strokes are committed to its
// pixel buffer segment by segment; no stroke geometry is retained.
type Surface struct {
	img    *image.NRGBA
	state  StrokeState
	anchor Point
}

// NewSurface returns a fully transparent surface of the given size.
func NewSurface(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Resize replaces the pixel buffer with a transparent one of the given
// size and ends any active stroke.
func (s *Surface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.img = image.NewNRGBA(image.Rect(0, 0, width, height))
	s.state = StateIdle
}

// Clear makes every pixel fully transparent.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// Size returns the backing resolution.
func (s *Surface) Size() (width, height int) {
	return s.img.Rect.Dx(), s.img.Rect.Dy()
}

// State returns the drawing state.
func (s *Surface) State() StrokeState { return s.state }

// Image returns a copy of the pixel buffer.
func (s *Surface) Image() *image.NRGBA {
	out := image.NewNRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out
}

// BeginStroke moves to drawing and anchors the stroke at p. Nothing is
// painted until the pointer moves.
func (s *Surface) BeginStroke(p Point) {
	s.state = StateDrawing
	s.anchor = p
}

// ContinueStroke draws a segment from the anchor to p and advances the
// anchor. It does nothing while idle.
func (s *Surface) ContinueStroke(p Point) {
	if s.state != StateDrawing {
		return
	}
	s.segment(s.anchor, p)
	s.anchor = p
}

// EndStroke returns to idle.
func (s *Surface) EndStroke() {
	s.state = StateIdle
}

func (s *Surface) segment(from, to Point) {
	a := raster.Point{X: from.X, Y: from.Y}
	b := raster.Point{X: to.X, Y: to.Y}
	bounds := raster.SegmentBounds(a, b, StrokeWidth).Intersect(s.img.Rect)
	if bounds.Empty() {
		return
	}
	p := raster.NewPainter(bounds)
	p.Segment(a, b, StrokeWidth, true)
	p.Paint(s.img, StrokeColor)
}

// Capture encodes the pixel buffer as PNG. Encoding is deterministic, so
// capturing an unchanged surface yields identical bytes.
func (s *Surface) Capture() (Raster, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	return Raster(buf.Bytes()), nil
}

// Restore clears the surface and draws r at its natural size at the origin,
// clipped to the surface.
func (s *Surface) Restore(r Raster) error {
	src, err := png.Decode(bytes.NewReader(r))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRaster, err)
	}
	s.Clear()
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		// Straight copy keeps the round trip exact.
		w := min(n.Rect.Dx(), s.img.Rect.Dx()) * 4
		rows := min(n.Rect.Dy(), s.img.Rect.Dy())
		for y := 0; y < rows; y++ {
			copy(s.img.Pix[y*s.img.Stride:y*s.img.Stride+w], n.Pix[y*n.Stride:y*n.Stride+w])
		}
		return nil
	}
	draw.Draw(s.img, s.img.Rect, src, src.Bounds().Min, draw.Src)
	return nil
}

// Blank reports whether every pixel of r is fully transparent.
func (r Raster) Blank() (bool, error) {
	src, err := png.Decode(bytes.NewReader(r))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidRaster, err)
	}
	if n, ok := src.(*image.NRGBA); ok {
		for i := 3; i < len(n.Pix); i += 4 {
			if n.Pix[i] != 0 {
				return false, nil
			}
		}
		return true, nil
	}
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := src.At(x, y).RGBA(); a != 0 {
				return false, nil
			}
		}
	}
	return true, nil
}
