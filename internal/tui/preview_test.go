package tui

import (
	"image"
	"image/color"
	"strings"
	"testing"

	pdfannotate "github.com/alnah/go-pdfannotate"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

var white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// ---------------------------------------------------------------------------
// TestFit - Preview sizing keeps the page aspect on the sample grid
// ---------------------------------------------------------------------------

func TestFit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		w, h, cols, rows   int
		wantCols, wantRows int
	}{
		{"width bound", 200, 100, 80, 30, 80, 20},
		{"height bound", 100, 200, 80, 10, 10, 10},
		{"square page", 1, 1, 80, 30, 60, 30},
		{"empty page", 0, 10, 80, 30, 0, 0},
		{"no room", 200, 100, 80, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cols, rows := fit(tt.w, tt.h, tt.cols, tt.rows)
			if cols != tt.wantCols || rows != tt.wantRows {
				t.Errorf("fit(%d, %d, %d, %d) = %d x %d, want %d x %d",
					tt.w, tt.h, tt.cols, tt.rows, cols, rows, tt.wantCols, tt.wantRows)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBlock - Sample spans cover the axis without gaps
// ---------------------------------------------------------------------------

func TestBlock(t *testing.T) {
	t.Parallel()

	next := 0
	for i := 0; i < 3; i++ {
		lo, hi := block(i, 3, 10)
		if lo != next || hi <= lo {
			t.Errorf("block(%d, 3, 10) = [%d, %d), want start %d", i, lo, hi, next)
		}
		next = hi
	}
	if next != 10 {
		t.Errorf("blocks end at %d, want 10", next)
	}

	// More samples than pixels still yields non-empty spans.
	if lo, hi := block(4, 10, 3); hi-lo != 1 {
		t.Errorf("block(4, 10, 3) = [%d, %d), want one pixel", lo, hi)
	}
}

// ---------------------------------------------------------------------------
// TestSample - Overlay ink uses the most opaque pixel of the block
// ---------------------------------------------------------------------------

func TestSample(t *testing.T) {
	t.Parallel()

	bg := solid(4, 4, white)

	t.Run("no overlay", func(t *testing.T) {
		t.Parallel()

		if got := sample(bg, nil, 0, 0, 1, 1); got != white {
			t.Errorf("sample = %v, want white", got)
		}
	})

	t.Run("opaque ink in a corner wins the block", func(t *testing.T) {
		t.Parallel()

		ov := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		ov.SetNRGBA(1, 1, color.NRGBA{R: 0x10, A: 0x40})
		ov.SetNRGBA(3, 3, color.NRGBA{R: 0xff, A: 0xff})
		want := color.RGBA{R: 0xff, A: 0xff}
		if got := sample(bg, ov, 0, 0, 1, 1); got != want {
			t.Errorf("sample = %v, want %v", got, want)
		}
	})

	t.Run("translucent ink blends", func(t *testing.T) {
		t.Parallel()

		ov := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		ov.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0x80})
		want := color.RGBA{R: 0xff, G: 0x7f, B: 0x7f, A: 0xff}
		if got := sample(bg, ov, 0, 0, 2, 2); got != want {
			t.Errorf("sample = %v, want %v", got, want)
		}
		if got := sample(bg, ov, 1, 1, 2, 2); got != white {
			t.Errorf("sample outside the ink = %v, want white", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRenderPreview - One line per row, one half block per column
// ---------------------------------------------------------------------------

func TestRenderPreview(t *testing.T) {
	t.Parallel()

	lines := renderPreview(solid(8, 8, white), nil, 3, 2)
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, upperHalf); n != 3 {
			t.Errorf("line %d has %d cells, want 3", i, n)
		}
	}

	if got := renderPreview(nil, nil, 3, 2); got != nil {
		t.Errorf("nil background = %v, want nil", got)
	}
	if got := renderPreview(solid(8, 8, white), nil, 0, 2); got != nil {
		t.Errorf("zero columns = %v, want nil", got)
	}
}

// ---------------------------------------------------------------------------
// TestLayout - Screen placement of the preview
// ---------------------------------------------------------------------------

func TestLayout(t *testing.T) {
	t.Parallel()

	l := Layout{Left: 2, Top: 1, Cols: 10, Rows: 5}
	want := pdfannotate.DisplayRect{Left: 2, Top: 1, Width: 10, Height: 5}
	if got := l.Rect(); got != want {
		t.Errorf("Rect() = %+v, want %+v", got, want)
	}

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 1, true},
		{11, 5, true},
		{12, 1, false},
		{2, 6, false},
		{1, 3, false},
		{5, 0, false},
	}
	for _, tt := range tests {
		if got := l.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
