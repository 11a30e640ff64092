// Package pdftest builds small PDF documents for tests.
package pdftest

import (
	"bytes"
	"context"
	"testing"

	"github.com/wudi/pdfkit/builder"
	"github.com/wudi/pdfkit/writer"
)

// Document returns a PDF of n pages of the given size. Page i (1-based)
// carries a blue bar whose width grows with i, so pages render
// distinguishably.
func Document(tb testing.TB, n int, width, height float64) []byte {
	tb.Helper()

	b := builder.NewBuilder()
	for i := 1; i <= n; i++ {
		bar := width * float64(i) / float64(n+1)
		b.NewPage(width, height).
			DrawRectangle(0, 0, bar, height/4, builder.RectOptions{Fill: true, FillColor: builder.Color{B: 1}}).
			Finish()
	}
	doc, err := b.Build()
	if err != nil {
		tb.Fatalf("pdftest: build: %v", err)
	}

	var buf bytes.Buffer
	if err := writer.NewWriter().Write(context.Background(), doc, &buf, writer.Config{Deterministic: true}); err != nil {
		tb.Fatalf("pdftest: write: %v", err)
	}
	return buf.Bytes()
}
