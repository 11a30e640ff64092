package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	pdfannotate "github.com/alnah/go-pdfannotate"
	"github.com/alnah/go-pdfannotate/internal/config"
	"github.com/alnah/go-pdfannotate/internal/replay"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown", errors.New("boom"), ExitGeneral},
		{"render failure", pdfannotate.ErrRender, ExitGeneral},
		{"not a pdf", fmt.Errorf("loading: %w", pdfannotate.ErrNotPDF), ExitDocument},
		{"decode", pdfannotate.ErrDecode, ExitDocument},
		{"empty document", pdfannotate.ErrEmptyDocument, ExitDocument},
		{"missing file", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},
		{"download", pdfannotate.ErrDownload, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"usage", ErrUsage, ExitUsage},
		{"config not found", &config.NotFoundError{Tried: []string{"a.yaml"}}, ExitUsage},
		{"config scale", config.ErrInvalidScale, ExitUsage},
		{"page range", pdfannotate.ErrPageRange, ExitUsage},
		{"script", fmt.Errorf("step 1: %w", replay.ErrUnknownAction), ExitUsage},
		{"shell", ErrUnsupportedShell, ExitUsage},
		{"hinted", withHint(pdfannotate.ErrDecode, "\n  hint: x"), ExitDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	t.Parallel()

	err := withHint(ErrNoInput, "\n  hint: pass a file")
	if err.Error() != "no input file\n  hint: pass a file" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrNoInput) {
		t.Error("hinted error does not unwrap")
	}
	if withHint(ErrNoInput, "") != ErrNoInput {
		t.Error("empty hint changed the error")
	}
	if withHint(nil, "x") != nil {
		t.Error("nil error gained a hint")
	}
}
