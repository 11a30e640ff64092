package pdfannotate

import (
	"context"
	"fmt"
)

// Export constants.
const (
	ExportFileName = "annotated.pdf"
	OverlayOpacity = 0.5
)

// PageError records a page whose overlay was skipped.
type PageError struct {
	Page int
	Err  error
}

func (e PageError) Error() string { return fmt.Sprintf("page %d: %v", e.Page, e.Err) }

func (e PageError) Unwrap() error { return e.Err }

// ExportResult describes a finished export.
type ExportResult struct {
	FileName  string
	PDF       []byte
	Annotated []int       // pages that received an overlay
	Skipped   []PageError // pages whose overlay failed
	Path      string      // set when the downloader reports a location
}

// Export captures the current page, composites every stored raster that
// holds ink onto its page at OverlayOpacity and serializes the document. A per-page
// failure skips that page only. When a Downloader is configured the result
// is delivered as ExportFileName.
func (s *Session) Export(ctx context.Context) (*ExportResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	if !s.Loaded() {
		return nil, ErrNoDocument
	}
	if err := s.capture(); err != nil {
		return nil, err
	}

	doc, err := s.mutableView(ctx)
	if err != nil {
		return nil, err
	}
	// The handle now carries overlays; the next export starts from the
	// source bytes again.
	s.mutable = nil
	defer s.refreshMutable(ctx)

	result := &ExportResult{FileName: ExportFileName}
	for page := 1; page <= doc.PageCount(); page++ {
		r, ok := s.annotations.Get(page)
		if !ok {
			continue
		}
		blank, err := r.Blank()
		if err != nil {
			s.log.Warnf("session %s: skipping overlay on page %d: %v", s.id, page, err)
			result.Skipped = append(result.Skipped, PageError{Page: page, Err: err})
			continue
		}
		if blank {
			// A page visited without drawing leaves its content untouched.
			continue
		}
		if err := overlayPage(doc, page, r); err != nil {
			s.log.Warnf("session %s: skipping overlay on page %d: %v", s.id, page, err)
			result.Skipped = append(result.Skipped, PageError{Page: page, Err: err})
			continue
		}
		result.Annotated = append(result.Annotated, page)
	}

	pdf, err := doc.Save(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}
	result.PDF = pdf
	s.log.Debugf("session %s: exported %d bytes, %d overlays, %d skipped",
		s.id, len(pdf), len(result.Annotated), len(result.Skipped))

	if s.downloader != nil {
		path, err := s.downloader.Download(ctx, ExportFileName, PDFMediaType, pdf)
		if err != nil {
			return result, fmt.Errorf("%w: %w", ErrDownload, err)
		}
		result.Path = path
	}
	return result, nil
}

// overlayPage embeds r and draws it over the full page.
func overlayPage(doc MutableDocument, page int, r Raster) error {
	box, err := doc.PageBox(page)
	if err != nil {
		return err
	}
	placement, err := OverlayPlacement(box)
	if err != nil {
		return err
	}
	img, err := doc.EmbedPNG(r)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEmbed, err)
	}
	if err := doc.DrawImage(page, img, placement, OverlayOpacity); err != nil {
		return fmt.Errorf("%w: %w", ErrEmbed, err)
	}
	return nil
}

// mutableView returns the pristine mutable handle, deriving it again from
// the source bytes when a previous export consumed it.
func (s *Session) mutableView(ctx context.Context) (MutableDocument, error) {
	if s.mutable != nil {
		return s.mutable, nil
	}
	doc, err := s.mutableOpener.OpenMutable(ctx, s.data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrExport, ErrDecode, err)
	}
	return doc, nil
}

func (s *Session) refreshMutable(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	doc, err := s.mutableOpener.OpenMutable(ctx, s.data)
	if err != nil {
		s.log.Warnf("session %s: re-deriving mutable view: %v", s.id, err)
		return
	}
	s.mutable = doc
}
