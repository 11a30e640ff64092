package pdfannotate

import (
	"fmt"
	"math"
)

// DefaultScale is the zoom factor pages are rendered at.
const DefaultScale = 1.5

// MaxScale bounds the zoom factor.
const MaxScale = 8.0

// Rect is a PDF rectangle in user space units.
type Rect struct {
	LLX, LLY, URX, URY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return math.Abs(r.URX - r.LLX) }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return math.Abs(r.URY - r.LLY) }

func (r Rect) normalize() Rect {
	return Rect{
		LLX: math.Min(r.LLX, r.URX), LLY: math.Min(r.LLY, r.URY),
		URX: math.Max(r.LLX, r.URX), URY: math.Max(r.LLY, r.URY),
	}
}

func (r Rect) empty() bool { return r.Width() == 0 || r.Height() == 0 }

func (r Rect) intersect(o Rect) Rect {
	r, o = r.normalize(), o.normalize()
	out := Rect{
		LLX: math.Max(r.LLX, o.LLX), LLY: math.Max(r.LLY, o.LLY),
		URX: math.Min(r.URX, o.URX), URY: math.Min(r.URY, o.URY),
	}
	if out.URX <= out.LLX || out.URY <= out.LLY {
		return Rect{}
	}
	return out
}

// PageBox is the visible area of a page and its display rotation.
type PageBox struct {
	Box    Rect
	Rotate int
}

// NewPageBox derives the visible box from a media box and an optional crop
// box: their intersection, or the media box when the crop box is empty or
// disjoint. Rotation is normalized to 0, 90, 180 or 270; other values are
// treated as 0.
func NewPageBox(media, crop Rect, rotate int) PageBox {
	box := media.normalize()
	if !crop.empty() {
		if clipped := crop.intersect(media); !clipped.empty() {
			box = clipped
		}
	}
	return PageBox{Box: box, Rotate: normalizeRotation(rotate)}
}

func normalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	if deg%90 != 0 {
		return 0
	}
	return deg
}

// Size returns the displayed page size in PDF units, with width and height
// swapped for quarter-turn rotations.
func (b PageBox) Size() (width, height float64) {
	w, h := b.Box.Width(), b.Box.Height()
	if b.Rotate == 90 || b.Rotate == 270 {
		return h, w
	}
	return w, h
}

// Viewport maps a page to a device raster with y pointing down and the
// origin at the top-left of the displayed page.
type Viewport struct {
	Width     float64
	Height    float64
	Scale     float64
	Transform Matrix
}

// NewViewport computes the viewport of box at the given scale.
func NewViewport(box PageBox, scale float64) Viewport {
	// Base orientation for each rotation: PDF y-up to device y-down.
	var a, b, c, d float64
	switch box.Rotate {
	case 90:
		a, b, c, d = 0, 1, 1, 0
	case 180:
		a, b, c, d = -1, 0, 0, 1
	case 270:
		a, b, c, d = 0, -1, -1, 0
	default:
		a, b, c, d = 1, 0, 0, -1
	}

	r := box.Box.normalize()
	cx, cy := (r.LLX+r.URX)/2, (r.LLY+r.URY)/2
	var offX, offY, width, height float64
	if a == 0 {
		offX = math.Abs(cy-r.LLY) * scale
		offY = math.Abs(cx-r.LLX) * scale
		width = r.Height() * scale
		height = r.Width() * scale
	} else {
		offX = math.Abs(cx-r.LLX) * scale
		offY = math.Abs(cy-r.LLY) * scale
		width = r.Width() * scale
		height = r.Height() * scale
	}

	return Viewport{
		Width:  width,
		Height: height,
		Scale:  scale,
		Transform: Matrix{
			a * scale, b * scale, c * scale, d * scale,
			offX - a*scale*cx - c*scale*cy,
			offY - b*scale*cx - d*scale*cy,
		},
	}
}

// PixelSize returns the device raster dimensions, truncated to whole pixels.
func (v Viewport) PixelSize() (width, height int) {
	return int(math.Floor(v.Width)), int(math.Floor(v.Height))
}

// OverlayPlacement returns the transform that maps an image's unit square
// onto the displayed page: the image's top-left corner lands on the page's
// displayed top-left and the image spans the full page.
func OverlayPlacement(box PageBox) (Matrix, error) {
	if box.Box.empty() {
		return Matrix{}, fmt.Errorf("%w: degenerate page box %+v", ErrEmbed, box.Box)
	}
	vp := NewViewport(box, 1)
	inv, ok := vp.Transform.Invert()
	if !ok {
		return Matrix{}, fmt.Errorf("%w: degenerate page box %+v", ErrEmbed, box.Box)
	}
	// Unit square (y up) to device space (y down, viewport sized).
	toDevice := Matrix{vp.Width, 0, 0, -vp.Height, 0, vp.Height}
	return toDevice.Then(inv), nil
}

func validateScale(scale float64) error {
	if math.IsNaN(scale) || scale <= 0 || scale > MaxScale {
		return fmt.Errorf("%w: %v (must be within (0, %v])", ErrInvalidScale, scale, MaxScale)
	}
	return nil
}
