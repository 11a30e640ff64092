// Package raster paints filled polygons and stroked segments onto Go images
// using the anti-aliasing rasterizer from golang.org/x/image/vector.
//
// Coordinates are device pixels with y pointing down. A Painter covers a
// rectangle of the destination image; geometry outside it is clipped.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Point is a device-space position.
type Point struct {
	X, Y float64
}

// circleSteps is the number of chords used to approximate a full circle.
// Round caps on 2px lines only need a handful; larger radii scale up.
const circleSteps = 16

// Painter accumulates coverage for a single paint operation.
type Painter struct {
	bounds image.Rectangle
	r      *vector.Rasterizer
	dirty  bool
}

// NewPainter returns a painter covering bounds. An empty rectangle yields a
// painter that never draws.
func NewPainter(bounds image.Rectangle) *Painter {
	p := &Painter{bounds: bounds.Canon()}
	if !p.bounds.Empty() {
		p.r = vector.NewRasterizer(p.bounds.Dx(), p.bounds.Dy())
	}
	return p
}

// Bounds returns the rectangle the painter covers.
func (p *Painter) Bounds() image.Rectangle { return p.bounds }

// Reset discards accumulated coverage.
func (p *Painter) Reset() {
	if p.r != nil {
		p.r.Reset(p.bounds.Dx(), p.bounds.Dy())
	}
	p.dirty = false
}

// Empty reports whether nothing has been added since the last reset.
func (p *Painter) Empty() bool { return !p.dirty }

func (p *Painter) moveTo(pt Point) {
	p.r.MoveTo(float32(pt.X-float64(p.bounds.Min.X)), float32(pt.Y-float64(p.bounds.Min.Y)))
}

func (p *Painter) lineTo(pt Point) {
	p.r.LineTo(float32(pt.X-float64(p.bounds.Min.X)), float32(pt.Y-float64(p.bounds.Min.Y)))
}

// Polygon adds a closed polygon. Fewer than three points add nothing.
func (p *Painter) Polygon(pts []Point) {
	if p.r == nil || len(pts) < 3 {
		return
	}
	p.moveTo(pts[0])
	for _, pt := range pts[1:] {
		p.lineTo(pt)
	}
	p.r.ClosePath()
	p.dirty = true
}

// Segment adds a straight segment of the given width from a to b. With round
// set, both ends get a semicircular cap; otherwise the ends are butt.
// A zero-length round segment adds a dot.
//
// All shapes are emitted with the same winding so overlapping pieces of one
// stroke accumulate instead of cancelling.
func (p *Painter) Segment(a, b Point, width float64, round bool) {
	if p.r == nil || width <= 0 {
		return
	}
	half := width / 2
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length > 0 {
		nx, ny := -dy/length*half, dx/length*half
		p.moveTo(Point{a.X + nx, a.Y + ny})
		p.lineTo(Point{b.X + nx, b.Y + ny})
		p.lineTo(Point{b.X - nx, b.Y - ny})
		p.lineTo(Point{a.X - nx, a.Y - ny})
		p.r.ClosePath()
		p.dirty = true
	}
	if round {
		p.Dot(a, half)
		if length > 0 {
			p.Dot(b, half)
		}
	}
}

// Dot adds a filled circle.
func (p *Painter) Dot(c Point, radius float64) {
	if p.r == nil || radius <= 0 {
		return
	}
	steps := circleSteps
	if n := int(math.Ceil(radius * 4)); n > steps {
		steps = n
	}
	// Clockwise in device space, matching Segment's quads.
	p.moveTo(Point{c.X + radius, c.Y})
	for i := 1; i < steps; i++ {
		theta := -2 * math.Pi * float64(i) / float64(steps)
		p.lineTo(Point{c.X + radius*math.Cos(theta), c.Y + radius*math.Sin(theta)})
	}
	p.r.ClosePath()
	p.dirty = true
}

// Paint composites col over dst through the accumulated coverage, then
// resets the painter.
func (p *Painter) Paint(dst draw.Image, col color.Color) {
	if p.r == nil || !p.dirty {
		return
	}
	p.r.DrawOp = draw.Over
	p.r.Draw(dst, p.bounds, image.NewUniform(col), image.Point{})
	p.Reset()
}

// SegmentBounds returns the pixel rectangle touched by a segment of the
// given width, padded by one pixel for anti-aliasing.
func SegmentBounds(a, b Point, width float64) image.Rectangle {
	pad := width/2 + 1
	minX := math.Floor(math.Min(a.X, b.X) - pad)
	minY := math.Floor(math.Min(a.Y, b.Y) - pad)
	maxX := math.Ceil(math.Max(a.X, b.X) + pad)
	maxY := math.Ceil(math.Max(a.Y, b.Y) + pad)
	return image.Rect(int(minX), int(minY), int(maxX), int(maxY))
}

// FlattenCubic appends the points of a cubic Bezier from p0 to p3, excluding
// p0, approximated by line segments no longer than roughly tolerance pixels.
func FlattenCubic(dst []Point, p0, p1, p2, p3 Point, tolerance float64) []Point {
	if tolerance <= 0 {
		tolerance = 1
	}
	hull := math.Hypot(p1.X-p0.X, p1.Y-p0.Y) +
		math.Hypot(p2.X-p1.X, p2.Y-p1.Y) +
		math.Hypot(p3.X-p2.X, p3.Y-p2.Y)
	n := int(math.Ceil(hull / tolerance))
	if n < 1 {
		n = 1
	}
	if n > 256 {
		n = 256
	}
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		a := mt * mt * mt
		b := 3 * mt * mt * t
		c := 3 * mt * t * t
		d := t * t * t
		dst = append(dst, Point{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		})
	}
	return dst
}
