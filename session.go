package pdfannotate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Session owns everything about one annotated document: the source bytes,
// both document views, the current page, the stored rasters and the live
// surfaces. Actions are sequential; an action that arrives while another is
// in flight fails with ErrBusy and changes nothing. The plain accessors are
// for the goroutine that runs actions; other goroutines use Snapshot.
type Session struct {
	id            string
	scale         float64
	log           Logger
	alerter       Alerter
	downloader    Downloader
	renderOpener  RenderOpener
	mutableOpener MutableOpener

	busy atomic.Bool
	// mu guards the fields below. Actions hold it for their whole run;
	// event handlers and Snapshot only try it.
	mu sync.Mutex

	name        string
	data        []byte
	renderable  RenderableDocument
	mutable     MutableDocument
	page        int
	annotations *Annotations
	surface     *Surface
	background  *image.RGBA
	viewport    Viewport
}

// NewSession returns an empty session. Load a file before navigating or
// exporting.
func NewSession(opts ...Option) *Session {
	s := &Session{
		id:            uuid.NewString(),
		scale:         DefaultScale,
		log:           nopLogger{},
		renderOpener:  PDFKit{},
		mutableOpener: PDFKit{},
		annotations:   NewAnnotations(0),
		surface:       NewSurface(0, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the random identifier used in log lines.
func (s *Session) ID() string { return s.id }

// Scale returns the zoom factor.
func (s *Session) Scale() float64 { return s.scale }

// Loaded reports whether a document is open.
func (s *Session) Loaded() bool { return s.renderable != nil }

// Busy reports whether an action is in flight.
func (s *Session) Busy() bool { return s.busy.Load() }

// FileName returns the name of the loaded file.
func (s *Session) FileName() string { return s.name }

// Page returns the current 1-based page index, or 0 before a load.
func (s *Session) Page() int { return s.page }

// PageCount returns the number of pages of the loaded document.
func (s *Session) PageCount() int {
	if s.renderable == nil {
		return 0
	}
	return s.renderable.NumPages()
}

// Viewport returns the viewport of the current page.
func (s *Session) Viewport() Viewport { return s.viewport }

// Background returns the rasterized current page. Callers must not modify
// it.
func (s *Session) Background() *image.RGBA { return s.background }

// Overlay returns a copy of the annotation surface.
func (s *Session) Overlay() *image.NRGBA { return s.surface.Image() }

// StrokeState returns the annotation surface state.
func (s *Session) StrokeState() StrokeState { return s.surface.State() }

// Annotation returns the raster stored for page.
func (s *Session) Annotation(page int) (Raster, bool) { return s.annotations.Get(page) }

// AnnotatedPages lists the pages with a stored raster.
func (s *Session) AnnotatedPages() []int { return s.annotations.Pages() }

func (s *Session) begin() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	s.mu.Lock()
	return nil
}

func (s *Session) end() {
	s.mu.Unlock()
	s.busy.Store(false)
}

func (s *Session) alert(msg string) {
	if s.alerter != nil {
		s.alerter.Alert(msg)
	}
}

// Load accepts f as the session document. Non-PDF input and decode
// failures raise one alert and leave the session unchanged. On success the
// session is reset to page 1 with no annotations and page 1 is rendered.
func (s *Session) Load(ctx context.Context, f File) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if !IsPDF(f) {
		s.alert(AlertInvalidFile)
		return fmt.Errorf("%w: %s (type %q)", ErrNotPDF, f.Name, f.MIMEType)
	}

	data := make([]byte, len(f.Data))
	copy(data, f.Data)

	var (
		renderable RenderableDocument
		mutable    MutableDocument
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := s.renderOpener.OpenRenderable(gctx, data)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrDecode, err)
		}
		renderable = doc
		return nil
	})
	g.Go(func() error {
		doc, err := s.mutableOpener.OpenMutable(gctx, data)
		if err != nil {
			return fmt.Errorf("%w: mutable view: %w", ErrDecode, err)
		}
		mutable = doc
		return nil
	})
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.alert(AlertLoadFailed)
		return err
	}
	if renderable.NumPages() < 1 {
		s.alert(AlertLoadFailed)
		return fmt.Errorf("%w: %s", ErrEmptyDocument, f.Name)
	}

	s.name = f.Name
	s.data = data
	s.renderable = renderable
	s.mutable = mutable
	s.reset(renderable.NumPages())
	s.log.Debugf("session %s: loaded %q (%d pages, %d bytes)", s.id, f.Name, renderable.NumPages(), len(data))

	return s.render(ctx)
}

// reset returns per-document state to its initial values.
func (s *Session) reset(pages int) {
	s.page = 1
	s.annotations = NewAnnotations(pages)
	s.surface.Resize(0, 0)
	s.background = nil
	s.viewport = Viewport{}
}

// Next moves to the following page. On the last page it does nothing.
func (s *Session) Next(ctx context.Context) error { return s.step(ctx, 1) }

// Prev moves to the preceding page. On the first page it does nothing.
func (s *Session) Prev(ctx context.Context) error { return s.step(ctx, -1) }

func (s *Session) step(ctx context.Context, delta int) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if !s.Loaded() {
		return ErrNoDocument
	}
	target := s.page + delta
	if target < 1 || target > s.renderable.NumPages() {
		return nil
	}
	if err := s.capture(); err != nil {
		return err
	}
	s.page = target
	return s.render(ctx)
}

// capture stores the surface under the current page, unconditionally.
func (s *Session) capture() error {
	r, err := s.surface.Capture()
	if err != nil {
		return err
	}
	if err := s.annotations.Put(s.page, r); err != nil {
		return err
	}
	s.log.Debugf("session %s: captured page %d (%d bytes)", s.id, s.page, len(r))
	return nil
}

// render draws the current page, then restores or clears its annotations.
// A failed page render leaves a blank page so the annotations stay usable.
func (s *Session) render(ctx context.Context) error {
	box, err := s.renderable.PageBox(s.page)
	if err != nil {
		return fmt.Errorf("%w: page %d: %w", ErrRender, s.page, err)
	}
	vp := NewViewport(box, s.scale)
	w, h := vp.PixelSize()
	s.viewport = vp
	s.surface.Resize(w, h)

	var renderErr error
	bg, err := s.renderable.RenderPage(ctx, s.page, vp)
	switch {
	case err == nil:
	case errors.Is(err, ErrPartialRender) && bg != nil:
		s.log.Warnf("session %s: page %d: %v", s.id, s.page, err)
	default:
		renderErr = fmt.Errorf("%w: page %d: %w", ErrRender, s.page, err)
		bg = blankPage(w, h)
	}
	s.background = bg

	if r, ok := s.annotations.Get(s.page); ok {
		if err := s.surface.Restore(r); err != nil {
			s.log.Warnf("session %s: page %d: %v", s.id, s.page, err)
			return errors.Join(renderErr, err)
		}
		s.log.Debugf("session %s: restored page %d", s.id, s.page)
	}
	return renderErr
}

func blankPage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

// Pointer routes a pointer event to the annotation surface. Events are
// dropped while an action is in flight or before a load; the result
// reports whether the event was applied.
func (s *Session) Pointer(ev PointerEvent, rect DisplayRect) bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()
	if !s.Loaded() {
		return false
	}
	s.surface.HandlePointer(ev, rect)
	return true
}

// Touch routes a touch event to the annotation surface and reports whether
// it was consumed.
func (s *Session) Touch(ev TouchEvent, rect DisplayRect) bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()
	if !s.Loaded() {
		return false
	}
	return s.surface.HandleTouch(ev, rect)
}

// Snapshot is a consistent copy of the state a viewer displays.
type Snapshot struct {
	Loaded     bool
	FileName   string
	Page       int
	PageCount  int
	Viewport   Viewport
	Background *image.RGBA // shared; never modified after a render
	Overlay    *image.NRGBA
}

// Snapshot copies the displayed state. It is safe to call from another
// goroutine than the one running actions and reports false while an action
// is in flight.
func (s *Session) Snapshot() (Snapshot, bool) {
	if !s.mu.TryLock() {
		return Snapshot{}, false
	}
	defer s.mu.Unlock()
	return Snapshot{
		Loaded:     s.Loaded(),
		FileName:   s.name,
		Page:       s.page,
		PageCount:  s.PageCount(),
		Viewport:   s.viewport,
		Background: s.background,
		Overlay:    s.surface.Image(),
	}, true
}
