package pdfannotate

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// fakeRenderDoc renders every page as a flat gray whose level depends on
// the page index.
type fakeRenderDoc struct {
	mu      sync.Mutex
	boxes   []PageBox
	fail    map[int]error
	renders []int
}

func newFakeRenderDoc(pages int) *fakeRenderDoc {
	d := &fakeRenderDoc{fail: map[int]error{}}
	for i := 0; i < pages; i++ {
		d.boxes = append(d.boxes, PageBox{Box: Rect{URX: 40, URY: 20}})
	}
	return d
}

func (d *fakeRenderDoc) NumPages() int { return len(d.boxes) }

func (d *fakeRenderDoc) PageBox(page int) (PageBox, error) {
	if page < 1 || page > len(d.boxes) {
		return PageBox{}, ErrPageRange
	}
	return d.boxes[page-1], nil
}

func (d *fakeRenderDoc) RenderPage(_ context.Context, page int, vp Viewport) (*image.RGBA, error) {
	d.mu.Lock()
	d.renders = append(d.renders, page)
	err := d.fail[page]
	d.mu.Unlock()

	w, h := vp.PixelSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	level := uint8(255 - 20*page)
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: level, G: level, B: level, A: 255}), image.Point{}, draw.Src)
	if err != nil {
		if errors.Is(err, ErrPartialRender) {
			return img, err
		}
		return nil, err
	}
	return img, nil
}

func (d *fakeRenderDoc) renderLog() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.renders...)
}

type fakeImage struct {
	w, h int
	data []byte
}

func (i *fakeImage) Size() (int, int) { return i.w, i.h }

type fakeDraw struct {
	page      int
	img       *fakeImage
	placement Matrix
	opacity   float64
}

// fakeMutableDoc records overlays instead of writing PDF syntax.
type fakeMutableDoc struct {
	boxes    []PageBox
	draws    []fakeDraw
	embedErr error
	drawErr  map[int]error
	saveErr  error
	saves    int
}

func (d *fakeMutableDoc) PageCount() int { return len(d.boxes) }

func (d *fakeMutableDoc) PageBox(page int) (PageBox, error) {
	if page < 1 || page > len(d.boxes) {
		return PageBox{}, ErrPageRange
	}
	return d.boxes[page-1], nil
}

func (d *fakeMutableDoc) EmbedPNG(data []byte) (EmbeddedImage, error) {
	if d.embedErr != nil {
		return nil, d.embedErr
	}
	return &fakeImage{w: 1, h: 1, data: data}, nil
}

func (d *fakeMutableDoc) DrawImage(page int, img EmbeddedImage, placement Matrix, opacity float64) error {
	if err := d.drawErr[page]; err != nil {
		return err
	}
	d.draws = append(d.draws, fakeDraw{page: page, img: img.(*fakeImage), placement: placement, opacity: opacity})
	return nil
}

func (d *fakeMutableDoc) Save(context.Context) ([]byte, error) {
	if d.saveErr != nil {
		return nil, d.saveErr
	}
	d.saves++
	return []byte("%PDF-fake"), nil
}

func (d *fakeMutableDoc) drawnPages() []int {
	var out []int
	for _, dr := range d.draws {
		out = append(out, dr.page)
	}
	return out
}

// fakeBackend opens the fakes above. Every OpenMutable call returns a fresh
// document, recorded in order.
type fakeBackend struct {
	mu         sync.Mutex
	render     *fakeRenderDoc
	renderErr  error
	mutableErr error
	configure  func(*fakeMutableDoc)
	mutables   []*fakeMutableDoc
	opens      int

	started chan struct{} // closed when OpenRenderable is entered, if set
	release chan struct{} // OpenRenderable waits on it, if set
}

func newFakeBackend(pages int) *fakeBackend {
	return &fakeBackend{render: newFakeRenderDoc(pages)}
}

func (b *fakeBackend) OpenRenderable(ctx context.Context, _ []byte) (RenderableDocument, error) {
	if b.started != nil {
		close(b.started)
	}
	if b.release != nil {
		select {
		case <-b.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opens++
	if b.renderErr != nil {
		return nil, b.renderErr
	}
	return b.render, nil
}

func (b *fakeBackend) OpenMutable(context.Context, []byte) (MutableDocument, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opens++
	if b.mutableErr != nil {
		return nil, b.mutableErr
	}
	d := &fakeMutableDoc{boxes: append([]PageBox(nil), b.render.boxes...), drawErr: map[int]error{}}
	if b.configure != nil {
		b.configure(d)
	}
	b.mutables = append(b.mutables, d)
	return d, nil
}

// at returns the i-th mutable document opened.
func (b *fakeBackend) at(i int) *fakeMutableDoc {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mutables[i]
}

func (b *fakeBackend) openCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.opens
}

type alertRecorder struct {
	mu     sync.Mutex
	alerts []string
}

func (r *alertRecorder) Alert(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, msg)
}

func (r *alertRecorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.alerts...)
}

type logRecorder struct {
	mu    sync.Mutex
	warns []string
}

func (l *logRecorder) Debugf(string, ...any) {}

func (l *logRecorder) Warnf(format string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, format)
}

var pdfHeader = []byte("%PDF-1.7\n%fake\n")

func pdfFile(name string) File {
	return File{Name: name, MIMEType: PDFMediaType, Data: pdfHeader}
}

func newTestSession(b *fakeBackend, opts ...Option) (*Session, *alertRecorder) {
	alerts := &alertRecorder{}
	base := []Option{
		WithScale(1),
		WithAlerter(alerts),
		WithRenderOpener(b),
		WithMutableOpener(b),
	}
	return NewSession(append(base, opts...)...), alerts
}

// drag draws a stroke in backing pixel coordinates.
func drag(s *Session, pts ...Point) {
	w, h := s.Viewport().PixelSize()
	rect := DisplayRect{Width: float64(w), Height: float64(h)}
	s.Pointer(PointerEvent{Kind: PointerDown, ClientX: pts[0].X, ClientY: pts[0].Y}, rect)
	for _, p := range pts[1:] {
		s.Pointer(PointerEvent{Kind: PointerMove, ClientX: p.X, ClientY: p.Y}, rect)
	}
	s.Pointer(PointerEvent{Kind: PointerUp}, rect)
}
