package pdfannotate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file File
		want bool
	}{
		{name: "declared pdf", file: File{MIMEType: "application/pdf"}, want: true},
		{name: "declared pdf with params", file: File{MIMEType: "application/pdf; charset=binary"}, want: true},
		{name: "declared text with pdf bytes", file: File{MIMEType: "text/plain", Data: pdfHeader}, want: false},
		{name: "malformed declared type", file: File{MIMEType: "application/"}, want: false},
		{name: "sniffed pdf", file: File{Data: pdfHeader}, want: true},
		{name: "sniffed text", file: File{Data: []byte("hello")}, want: false},
		{name: "empty", file: File{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsPDF(tt.file); got != tt.want {
				t.Errorf("IsPDF() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpenFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "Report.pdf")
	if err := os.WriteFile(pdfPath, pdfHeader, 0o600); err != nil {
		t.Fatal(err)
	}
	noExt := filepath.Join(dir, "scan")
	if err := os.WriteFile(noExt, pdfHeader, 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := OpenFile(pdfPath)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if f.Name != "Report.pdf" || f.MIMEType != PDFMediaType || !IsPDF(f) {
		t.Errorf("file = %q %q", f.Name, f.MIMEType)
	}

	f, err = OpenFile(noExt)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if f.MIMEType != "" || !IsPDF(f) {
		t.Errorf("extensionless: type %q, IsPDF %v; want sniffed PDF", f.MIMEType, IsPDF(f))
	}

	if _, err := OpenFile(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("OpenFile on missing path succeeded")
	}
}
