package tui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	pdfannotate "github.com/alnah/go-pdfannotate"
)

// upperHalf paints the top sample in the foreground and the bottom sample
// in the background of one cell.
const upperHalf = "▀"

// Layout is where the page preview sits on screen, in terminal cells.
type Layout struct {
	Left, Top  int
	Cols, Rows int
}

// Rect returns the layout as a display rectangle in cell units.
func (l Layout) Rect() pdfannotate.DisplayRect {
	return pdfannotate.DisplayRect{
		Left: float64(l.Left), Top: float64(l.Top),
		Width: float64(l.Cols), Height: float64(l.Rows),
	}
}

// Contains reports whether the cell (x, y) is part of the preview.
func (l Layout) Contains(x, y int) bool {
	return l.Rect().Contains(float64(x)+0.5, float64(y)+0.5)
}

// fit sizes a preview for a w x h pixel page within maxCols x maxRows
// cells. A cell holds two vertically stacked samples, so the sample grid is
// cols x 2*rows and aspect is preserved on that grid.
func fit(w, h, maxCols, maxRows int) (cols, rows int) {
	if w <= 0 || h <= 0 || maxCols <= 0 || maxRows <= 0 {
		return 0, 0
	}
	cols = maxCols
	rows = int(math.Round(float64(cols) * float64(h) / float64(w) / 2))
	if rows > maxRows {
		rows = maxRows
		cols = int(math.Round(float64(rows) * 2 * float64(w) / float64(h)))
	}
	return max(1, min(cols, maxCols)), max(1, rows)
}

// block returns the pixel span of sample i out of n over length size.
func block(i, n, size int) (lo, hi int) {
	lo = i * size / n
	hi = (i + 1) * size / n
	if hi <= lo {
		hi = lo + 1
	}
	return lo, min(hi, size)
}

// sample returns the displayed color of one sample cell: the background at
// the block center with the overlay composited on top. The overlay takes
// the most opaque pixel of the block so thin strokes survive downsampling.
func sample(bg *image.RGBA, ov *image.NRGBA, gx, gy, gw, gh int) color.RGBA {
	b := bg.Bounds()
	x0, x1 := block(gx, gw, b.Dx())
	y0, y1 := block(gy, gh, b.Dy())
	out := bg.RGBAAt(b.Min.X+(x0+x1)/2, b.Min.Y+(y0+y1)/2)

	if ov == nil {
		return out
	}
	var ink color.NRGBA
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if p := (image.Point{X: x, Y: y}); p.In(ov.Rect) {
				if c := ov.NRGBAAt(x, y); c.A > ink.A {
					ink = c
				}
			}
		}
	}
	if ink.A == 0 {
		return out
	}
	mix := func(under, over uint8) uint8 {
		a := uint32(ink.A)
		return uint8((uint32(under)*(255-a) + uint32(over)*a) / 255)
	}
	return color.RGBA{R: mix(out.R, ink.R), G: mix(out.G, ink.G), B: mix(out.B, ink.B), A: 0xff}
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// renderPreview draws the page and its overlay as cols x rows half-block
// cells, one string per row.
func renderPreview(bg *image.RGBA, ov *image.NRGBA, cols, rows int) []string {
	if bg == nil || bg.Bounds().Empty() || cols <= 0 || rows <= 0 {
		return nil
	}
	lines := make([]string, rows)
	var sb strings.Builder
	for r := 0; r < rows; r++ {
		sb.Reset()
		for c := 0; c < cols; c++ {
			top := sample(bg, ov, c, 2*r, cols, 2*rows)
			bottom := sample(bg, ov, c, 2*r+1, cols, 2*rows)
			sb.WriteString(lipgloss.NewStyle().Foreground(hex(top)).Background(hex(bottom)).Render(upperHalf))
		}
		lines[r] = sb.String()
	}
	return lines
}
