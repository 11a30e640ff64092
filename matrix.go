package pdfannotate

import (
	"github.com/wudi/pdfkit/coords"
)

// Matrix is a PDF affine transform [a b c d e f]. A point (x, y) maps to
// (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

// Then returns the transform that applies m first and o second.
func (m Matrix) Then(o Matrix) Matrix {
	return Matrix(coords.Matrix(m).Multiply(coords.Matrix(o)))
}

// Invert returns the inverse transform, or false when m is singular.
func (m Matrix) Invert() (Matrix, bool) {
	inv, err := coords.Matrix(m).Inverse()
	if err != nil {
		return Matrix{}, false
	}
	return Matrix(inv), true
}
