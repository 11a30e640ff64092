package pdfannotate

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// PDFMediaType is the MIME type accepted for input and used for output.
const PDFMediaType = "application/pdf"

// File is a user-selected input.
type File struct {
	Name     string
	MIMEType string // declared type; empty means unknown
	Data     []byte
}

// OpenFile reads path and declares its MIME type from the extension. An
// unknown extension leaves the type empty so the content decides.
func OpenFile(path string) (File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return File{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return File{
		Name:     filepath.Base(path),
		MIMEType: mime.TypeByExtension(filepath.Ext(path)),
		Data:     data,
	}, nil
}

// IsPDF reports whether f is typed as a PDF. A declared type must be
// application/pdf; without one the bytes are sniffed.
func IsPDF(f File) bool {
	if f.MIMEType != "" {
		mt, _, err := mime.ParseMediaType(f.MIMEType)
		return err == nil && mt == PDFMediaType
	}
	return http.DetectContentType(f.Data) == PDFMediaType
}
