package pdfrender

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/wudi/pdfkit/contentstream"
	"github.com/wudi/pdfkit/coords"
	"github.com/wudi/pdfkit/ir/semantic"

	"github.com/alnah/go-pdfannotate/internal/raster"
)

// curveTolerance is the flattening tolerance for Bezier curves, in pixels.
const curveTolerance = 0.75

// ignoredOperators are accepted so their operands are consumed, but paint
// nothing.
var ignoredOperators = []string{
	// text
	"BT", "ET", "Tc", "Tw", "Tz", "TL", "Tf", "Tr", "Ts", "Td", "TD", "Tm", "T*", "Tj", "TJ", "'", "\"",
	"d0", "d1",
	// images and xobjects
	"Do", "BI", "ID", "EI",
	// marked content and compatibility
	"BMC", "BDC", "EMC", "MP", "DP", "BX", "EX",
	// state we do not model
	"gs", "ri", "i", "d", "j", "M", "cs", "CS", "sh", "W", "W*",
}

// handlerFunc adapts a function to contentstream.OperatorHandler.
type handlerFunc func(ops []semantic.Operand) error

func (f handlerFunc) Handle(_ *contentstream.ExecutionContext, ops []semantic.Operand) error {
	return f(ops)
}

// subpath is a flattened polyline in device space.
type subpath struct {
	points []raster.Point
	closed bool
}

// paintState is the part of the graphics state the pdfkit GraphicsState
// does not carry.
type paintState struct {
	fill      color.Color
	stroke    color.Color
	roundCaps bool
}

type interpreter struct {
	img      *image.RGBA
	gs       *contentstream.GraphicsState
	paint    paintState
	saved    []paintState
	path     []subpath
	cur      coords.Point // current point, user space
	start    coords.Point // start of current subpath, user space
	handlers map[string]contentstream.OperatorHandler
	proc     contentstream.Processor
}

func newInterpreter(img *image.RGBA, base coords.Matrix) *interpreter {
	in := &interpreter{
		img:   img,
		gs:    &contentstream.GraphicsState{CTM: base, LineWidth: 1},
		paint: paintState{fill: color.Black, stroke: color.Black},
	}
	in.handlers = in.operatorTable()
	in.proc = contentstream.NewProcessor()
	for op, h := range in.handlers {
		in.proc.RegisterHandler(op, h)
	}
	return in
}

// run interprets one content stream. Parsed streams carry decoded bytes;
// streams built in memory carry operations, which are dispatched directly.
func (in *interpreter) run(ctx context.Context, cs semantic.ContentStream) error {
	if len(cs.RawBytes) > 0 {
		return in.proc.Process(ctx, cs.RawBytes, in.gs)
	}
	for _, op := range cs.Operations {
		h, ok := in.handlers[op.Operator]
		if !ok {
			continue
		}
		if err := h.Handle(nil, op.Operands); err != nil {
			return err
		}
	}
	return nil
}

func (in *interpreter) operatorTable() map[string]contentstream.OperatorHandler {
	t := map[string]contentstream.OperatorHandler{
		"q":  handlerFunc(in.save),
		"Q":  handlerFunc(in.restore),
		"cm": handlerFunc(in.concat),
		"w":  handlerFunc(in.lineWidth),
		"J":  handlerFunc(in.lineCap),

		"m":  handlerFunc(in.moveTo),
		"l":  handlerFunc(in.lineTo),
		"c":  handlerFunc(in.curveTo),
		"v":  handlerFunc(in.curveToV),
		"y":  handlerFunc(in.curveToY),
		"h":  handlerFunc(in.closePath),
		"re": handlerFunc(in.rect),

		"f":  paintOp(in, true, false, false),
		"F":  paintOp(in, true, false, false),
		"f*": paintOp(in, true, false, false),
		"S":  paintOp(in, false, true, false),
		"s":  paintOp(in, false, true, true),
		"B":  paintOp(in, true, true, false),
		"B*": paintOp(in, true, true, false),
		"b":  paintOp(in, true, true, true),
		"b*": paintOp(in, true, true, true),
		"n":  handlerFunc(in.endPath),

		"g":   colorOp(&in.paint.fill, 1),
		"G":   colorOp(&in.paint.stroke, 1),
		"rg":  colorOp(&in.paint.fill, 3),
		"RG":  colorOp(&in.paint.stroke, 3),
		"k":   colorOp(&in.paint.fill, 4),
		"K":   colorOp(&in.paint.stroke, 4),
		"sc":  colorOp(&in.paint.fill, 0),
		"scn": colorOp(&in.paint.fill, 0),
		"SC":  colorOp(&in.paint.stroke, 0),
		"SCN": colorOp(&in.paint.stroke, 0),
	}
	noop := handlerFunc(func([]semantic.Operand) error { return nil })
	for _, op := range ignoredOperators {
		t[op] = noop
	}
	return t
}

func numbers(ops []semantic.Operand) []float64 {
	out := make([]float64, 0, len(ops))
	for _, op := range ops {
		if n, ok := op.(semantic.NumberOperand); ok {
			out = append(out, n.Value)
		}
	}
	return out
}

func needNumbers(op string, ops []semantic.Operand, n int) ([]float64, error) {
	v := numbers(ops)
	if len(v) < n {
		return nil, fmt.Errorf("%s: want %d operands, got %d", op, n, len(v))
	}
	return v[len(v)-n:], nil
}

func (in *interpreter) save([]semantic.Operand) error {
	in.gs.Save()
	in.saved = append(in.saved, in.paint)
	return nil
}

// restore ignores unbalanced Q operators, as viewers do.
func (in *interpreter) restore([]semantic.Operand) error {
	if len(in.saved) == 0 {
		return nil
	}
	if err := in.gs.Restore(); err != nil {
		return nil
	}
	in.paint = in.saved[len(in.saved)-1]
	in.saved = in.saved[:len(in.saved)-1]
	return nil
}

func (in *interpreter) concat(ops []semantic.Operand) error {
	v, err := needNumbers("cm", ops, 6)
	if err != nil {
		return err
	}
	m := coords.Matrix{v[0], v[1], v[2], v[3], v[4], v[5]}
	in.gs.CTM = m.Multiply(in.gs.CTM)
	return nil
}

func (in *interpreter) lineWidth(ops []semantic.Operand) error {
	v, err := needNumbers("w", ops, 1)
	if err != nil {
		return err
	}
	in.gs.LineWidth = v[0]
	return nil
}

func (in *interpreter) lineCap(ops []semantic.Operand) error {
	v, err := needNumbers("J", ops, 1)
	if err != nil {
		return err
	}
	in.paint.roundCaps = v[0] == 1
	return nil
}

func (in *interpreter) device(p coords.Point) raster.Point {
	d := in.gs.CTM.Transform(p)
	return raster.Point{X: d.X, Y: d.Y}
}

func (in *interpreter) moveTo(ops []semantic.Operand) error {
	v, err := needNumbers("m", ops, 2)
	if err != nil {
		return err
	}
	in.cur = coords.Point{X: v[0], Y: v[1]}
	in.start = in.cur
	in.path = append(in.path, subpath{points: []raster.Point{in.device(in.cur)}})
	return nil
}

// current returns the open subpath, starting one at the current point when a
// segment operator arrives without a preceding m.
func (in *interpreter) current() *subpath {
	if len(in.path) == 0 || in.path[len(in.path)-1].closed {
		in.start = in.cur
		in.path = append(in.path, subpath{points: []raster.Point{in.device(in.cur)}})
	}
	return &in.path[len(in.path)-1]
}

func (in *interpreter) lineTo(ops []semantic.Operand) error {
	v, err := needNumbers("l", ops, 2)
	if err != nil {
		return err
	}
	sp := in.current()
	in.cur = coords.Point{X: v[0], Y: v[1]}
	sp.points = append(sp.points, in.device(in.cur))
	return nil
}

func (in *interpreter) cubic(c1, c2, end coords.Point) {
	sp := in.current()
	p0 := in.device(in.cur)
	sp.points = raster.FlattenCubic(sp.points, p0, in.device(c1), in.device(c2), in.device(end), curveTolerance)
	in.cur = end
}

func (in *interpreter) curveTo(ops []semantic.Operand) error {
	v, err := needNumbers("c", ops, 6)
	if err != nil {
		return err
	}
	in.cubic(coords.Point{X: v[0], Y: v[1]}, coords.Point{X: v[2], Y: v[3]}, coords.Point{X: v[4], Y: v[5]})
	return nil
}

func (in *interpreter) curveToV(ops []semantic.Operand) error {
	v, err := needNumbers("v", ops, 4)
	if err != nil {
		return err
	}
	in.cubic(in.cur, coords.Point{X: v[0], Y: v[1]}, coords.Point{X: v[2], Y: v[3]})
	return nil
}

func (in *interpreter) curveToY(ops []semantic.Operand) error {
	v, err := needNumbers("y", ops, 4)
	if err != nil {
		return err
	}
	end := coords.Point{X: v[2], Y: v[3]}
	in.cubic(coords.Point{X: v[0], Y: v[1]}, end, end)
	return nil
}

func (in *interpreter) closePath([]semantic.Operand) error {
	if len(in.path) == 0 {
		return nil
	}
	in.path[len(in.path)-1].closed = true
	in.cur = in.start
	return nil
}

func (in *interpreter) rect(ops []semantic.Operand) error {
	v, err := needNumbers("re", ops, 4)
	if err != nil {
		return err
	}
	x, y, w, h := v[0], v[1], v[2], v[3]
	corners := []coords.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
	sp := subpath{closed: true}
	for _, c := range corners {
		sp.points = append(sp.points, in.device(c))
	}
	in.path = append(in.path, sp)
	in.cur = coords.Point{X: x, Y: y}
	in.start = in.cur
	return nil
}

func (in *interpreter) endPath([]semantic.Operand) error {
	in.path = in.path[:0]
	return nil
}

func paintOp(in *interpreter, fill, stroke, closeFirst bool) handlerFunc {
	return func([]semantic.Operand) error {
		if closeFirst {
			_ = in.closePath(nil)
		}
		if fill {
			in.fillPath()
		}
		if stroke {
			in.strokePath()
		}
		in.path = in.path[:0]
		return nil
	}
}

func (in *interpreter) fillPath() {
	p := raster.NewPainter(in.img.Bounds())
	for _, sp := range in.path {
		p.Polygon(sp.points)
	}
	p.Paint(in.img, in.paint.fill)
}

// deviceLineWidth scales the user-space line width by the CTM. A zero width
// is the thinnest visible line.
func (in *interpreter) deviceLineWidth() float64 {
	m := in.gs.CTM
	scale := math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
	w := in.gs.LineWidth * scale
	if w < 1 {
		w = 1
	}
	return w
}

func (in *interpreter) strokePath() {
	w := in.deviceLineWidth()
	p := raster.NewPainter(in.img.Bounds())
	for _, sp := range in.path {
		pts := sp.points
		for i := 1; i < len(pts); i++ {
			p.Segment(pts[i-1], pts[i], w, true)
		}
		if sp.closed && len(pts) > 2 {
			p.Segment(pts[len(pts)-1], pts[0], w, true)
		}
		if len(pts) == 1 && in.paint.roundCaps {
			p.Dot(pts[0], w/2)
		}
	}
	p.Paint(in.img, in.paint.stroke)
}

// colorOp sets *dst from gray, RGB or CMYK operands. With n == 0 the color
// space is inferred from the operand count; pattern names are ignored.
func colorOp(dst *color.Color, n int) handlerFunc {
	return func(ops []semantic.Operand) error {
		v := numbers(ops)
		if n > 0 {
			if len(v) < n {
				return fmt.Errorf("color: want %d operands, got %d", n, len(v))
			}
			v = v[len(v)-n:]
		}
		switch len(v) {
		case 1:
			g := unit(v[0])
			*dst = color.Gray{Y: g}
		case 3:
			*dst = color.RGBA{R: unit(v[0]), G: unit(v[1]), B: unit(v[2]), A: 0xff}
		case 4:
			*dst = color.CMYK{C: unit(v[0]), M: unit(v[1]), Y: unit(v[2]), K: unit(v[3])}
		}
		return nil
	}
}

func unit(x float64) uint8 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 0xff
	default:
		return uint8(math.Round(x * 0xff))
	}
}
