package pdfannotate

// DisplayRect is where the surface is shown on screen, in client
// coordinates. It may differ from the backing resolution.
type DisplayRect struct {
	Left, Top     float64
	Width, Height float64
}

// ToSurface maps client coordinates to backing pixels, scaling each axis by
// the ratio of backing size to displayed size. A zero displayed dimension
// maps that axis with ratio 1.
func (r DisplayRect) ToSurface(clientX, clientY float64, backingW, backingH int) Point {
	sx, sy := 1.0, 1.0
	if r.Width > 0 {
		sx = float64(backingW) / r.Width
	}
	if r.Height > 0 {
		sy = float64(backingH) / r.Height
	}
	return Point{X: (clientX - r.Left) * sx, Y: (clientY - r.Top) * sy}
}

// Contains reports whether a client position lies within the rectangle.
func (r DisplayRect) Contains(clientX, clientY float64) bool {
	return clientX >= r.Left && clientX < r.Left+r.Width &&
		clientY >= r.Top && clientY < r.Top+r.Height
}

// PointerKind identifies a pointer event.
type PointerKind int

// Pointer events.
const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerLeave
)

// PointerEvent is a mouse or pen event in client coordinates.
type PointerEvent struct {
	Kind             PointerKind
	ClientX, ClientY float64
}

// TouchKind identifies a touch event.
type TouchKind int

// Touch events.
const (
	TouchStart TouchKind = iota
	TouchMove
	TouchEnd
	TouchCancel
)

// TouchPoint is one contact in client coordinates.
type TouchPoint struct {
	ClientX, ClientY float64
}

// TouchEvent carries the active contacts; the first one is primary.
type TouchEvent struct {
	Kind    TouchKind
	Touches []TouchPoint
}

// HandlePointer feeds a pointer event through the stroke state machine.
func (s *Surface) HandlePointer(ev PointerEvent, rect DisplayRect) {
	w, h := s.Size()
	switch ev.Kind {
	case PointerDown:
		s.BeginStroke(rect.ToSurface(ev.ClientX, ev.ClientY, w, h))
	case PointerMove:
		s.ContinueStroke(rect.ToSurface(ev.ClientX, ev.ClientY, w, h))
	case PointerUp, PointerLeave:
		s.EndStroke()
	}
}

// HandleTouch feeds the primary touch through the same functions as the
// pointer. It reports whether the event was consumed, in which case the
// caller suppresses default scrolling and gestures.
func (s *Surface) HandleTouch(ev TouchEvent, rect DisplayRect) bool {
	w, h := s.Size()
	switch ev.Kind {
	case TouchStart:
		if len(ev.Touches) == 0 {
			return false
		}
		t := ev.Touches[0]
		s.BeginStroke(rect.ToSurface(t.ClientX, t.ClientY, w, h))
		return true
	case TouchMove:
		if len(ev.Touches) == 0 {
			return false
		}
		t := ev.Touches[0]
		s.ContinueStroke(rect.ToSurface(t.ClientX, t.ClientY, w, h))
		return true
	case TouchEnd, TouchCancel:
		s.EndStroke()
		return true
	}
	return false
}
