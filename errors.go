package pdfannotate

import "errors"

// Sentinel errors for session operations.
var (
	ErrNotPDF        = errors.New("not a PDF file")
	ErrDecode        = errors.New("failed to decode PDF")
	ErrEmptyDocument = errors.New("document has no pages")
	ErrNoDocument    = errors.New("no document loaded")
	ErrBusy          = errors.New("another action is in progress")
	ErrPageRange     = errors.New("page index out of range")
	ErrInvalidScale  = errors.New("invalid scale")

	// Rendering errors.
	ErrRender        = errors.New("page rendering failed")
	ErrPartialRender = errors.New("page rendered partially")

	// Annotation raster errors.
	ErrCapture       = errors.New("failed to capture annotation surface")
	ErrInvalidRaster = errors.New("invalid annotation raster")

	// Export errors.
	ErrEmbed    = errors.New("failed to embed annotation")
	ErrExport   = errors.New("export failed")
	ErrDownload = errors.New("download failed")
)

// User-facing notifications.
const (
	AlertInvalidFile = "Please select a valid PDF file."
	AlertLoadFailed  = "Error loading PDF."
)
