package main

import (
	"errors"
	"os"

	pdfannotate "github.com/alnah/go-pdfannotate"
	"github.com/alnah/go-pdfannotate/internal/config"
	"github.com/alnah/go-pdfannotate/internal/fileutil"
	"github.com/alnah/go-pdfannotate/internal/replay"
)

// Exit codes for the pdfannotate CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful run
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, script or page number
	ExitIO       = 3 // File not found, permission denied, write failure
	ExitDocument = 4 // Input is not a usable PDF
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Document errors (exit 4)
	if errors.Is(err, pdfannotate.ErrNotPDF) ||
		errors.Is(err, pdfannotate.ErrDecode) ||
		errors.Is(err, pdfannotate.ErrEmptyDocument) {
		return ExitDocument
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, pdfannotate.ErrDownload) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidScale) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, pdfannotate.ErrInvalidScale) ||
		errors.Is(err, pdfannotate.ErrPageRange) ||
		errors.Is(err, fileutil.ErrNameEmpty) ||
		errors.Is(err, fileutil.ErrNamePathTraversal) ||
		errors.Is(err, replay.ErrParse) ||
		errors.Is(err, replay.ErrUnknownAction) ||
		errors.Is(err, replay.ErrMissingCoordinates) ||
		errors.Is(err, replay.ErrShortStroke) ||
		errors.Is(err, replay.ErrInvalidDisplay) ||
		errors.Is(err, replay.ErrNoSteps) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
