// Package pdfannotate lets a user draw freehand strokes over the pages of a
// PDF and exports a copy with the strokes composited onto each page.
//
// # Quick Start
//
// Create a session, load a file, feed pointer events, export:
//
//	s := pdfannotate.NewSession()
//
//	f, err := pdfannotate.OpenFile("report.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Load(ctx, f); err != nil {
//	    log.Fatal(err)
//	}
//
//	s.Pointer(pdfannotate.PointerEvent{Kind: pdfannotate.PointerDown, ClientX: 10, ClientY: 10}, rect)
//	s.Pointer(pdfannotate.PointerEvent{Kind: pdfannotate.PointerMove, ClientX: 90, ClientY: 40}, rect)
//	s.Pointer(pdfannotate.PointerEvent{Kind: pdfannotate.PointerUp}, rect)
//
//	result, err := s.Export(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.FileName, result.PDF, 0644)
//
// # Pages and annotations
//
// A session shows one page at a time. Its background is rasterized at the
// session scale (DefaultScale unless WithScale is given) and a transparent
// Surface of the same pixel size sits on top. Strokes are painted into the
// surface directly; only pixels are kept.
//
// Next and Prev capture the surface as a PNG Raster under the page being
// left, then render the new page and restore its raster if one exists.
// Navigation at the first or last page does nothing. Loading a new file
// discards every raster.
//
// # Export
//
// Export captures the current page, then draws each stored raster that holds
// ink over its page at 50% opacity, sized to the page in PDF units whatever
// the capture resolution. A page whose overlay fails is skipped and reported
// in ExportResult.Skipped. With WithDownloader the bytes are delivered as
// annotated.pdf.
//
// # Configuration
//
// Use functional options to customize the session:
//
//	s := pdfannotate.NewSession(
//	    pdfannotate.WithScale(2),
//	    pdfannotate.WithLogger(logger),
//	    pdfannotate.WithAlerter(pdfannotate.AlerterFunc(showModal)),
//	    pdfannotate.WithDownloader(pdfannotate.DirDownloader{Dir: "out"}),
//	)
//
// The PDF backend defaults to PDFKit. WithRenderOpener and WithMutableOpener
// replace it, which tests use to substitute fakes.
//
// # Concurrency
//
// A Session runs one action at a time. Load, Next, Prev and Export called
// while another action is in flight return ErrBusy; pointer and touch events
// arriving meanwhile are dropped.
//
// # Error Handling
//
// Errors wrap the sentinels in errors.go and can be checked with errors.Is:
//
//	if errors.Is(err, pdfannotate.ErrNotPDF) {
//	    // the file was rejected; the alerter has been notified
//	}
package pdfannotate
