package replay

import (
	"context"
	"fmt"

	pdfannotate "github.com/alnah/go-pdfannotate"
)

// Target is the session surface a script drives.
type Target interface {
	Pointer(ev pdfannotate.PointerEvent, rect pdfannotate.DisplayRect) bool
	Touch(ev pdfannotate.TouchEvent, rect pdfannotate.DisplayRect) bool
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Export(ctx context.Context) (*pdfannotate.ExportResult, error)
	Viewport() pdfannotate.Viewport
}

var _ Target = (*pdfannotate.Session)(nil)

// Report summarizes a run.
type Report struct {
	Steps   int                         // steps executed, including an implicit final save
	Dropped int                         // input events the target did not apply
	Exports []*pdfannotate.ExportResult // one per save
}

// Run executes the script against t. A script without a save step ends with
// one. Navigation and export errors stop the run.
func Run(ctx context.Context, t Target, s *Script, log pdfannotate.Logger) (*Report, error) {
	if log == nil {
		log = discard{}
	}
	r := &runner{target: t, script: s, log: log, report: &Report{}}
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return r.report, err
		}
		if err := r.step(ctx, st); err != nil {
			return r.report, fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
		r.report.Steps++
	}
	if !s.HasSave() {
		if err := r.save(ctx); err != nil {
			return r.report, fmt.Errorf("final save: %w", err)
		}
		r.report.Steps++
	}
	return r.report, nil
}

type runner struct {
	target Target
	script *Script
	log    pdfannotate.Logger
	report *Report
}

// rect returns the display rectangle for the current page.
func (r *runner) rect() pdfannotate.DisplayRect {
	if d := r.script.Display; d != nil {
		return pdfannotate.DisplayRect{Left: d.Left, Top: d.Top, Width: d.Width, Height: d.Height}
	}
	w, h := r.target.Viewport().PixelSize()
	return pdfannotate.DisplayRect{Width: float64(w), Height: float64(h)}
}

func (r *runner) pointer(kind pdfannotate.PointerKind, x, y float64) {
	if !r.target.Pointer(pdfannotate.PointerEvent{Kind: kind, ClientX: x, ClientY: y}, r.rect()) {
		r.report.Dropped++
	}
}

func (r *runner) touch(kind pdfannotate.TouchKind, st Step) {
	ev := pdfannotate.TouchEvent{Kind: kind}
	if st.X != nil && st.Y != nil {
		ev.Touches = []pdfannotate.TouchPoint{{ClientX: *st.X, ClientY: *st.Y}}
	}
	if !r.target.Touch(ev, r.rect()) {
		r.report.Dropped++
	}
}

func (r *runner) step(ctx context.Context, st Step) error {
	switch st.Action {
	case ActionDown:
		r.pointer(pdfannotate.PointerDown, *st.X, *st.Y)
	case ActionMove:
		r.pointer(pdfannotate.PointerMove, *st.X, *st.Y)
	case ActionUp:
		r.pointer(pdfannotate.PointerUp, 0, 0)
	case ActionLeave:
		r.pointer(pdfannotate.PointerLeave, 0, 0)
	case ActionStroke:
		first := st.Points[0]
		r.pointer(pdfannotate.PointerDown, first[0], first[1])
		for _, p := range st.Points[1:] {
			r.pointer(pdfannotate.PointerMove, p[0], p[1])
		}
		r.pointer(pdfannotate.PointerUp, 0, 0)
	case ActionTouchStart:
		r.touch(pdfannotate.TouchStart, st)
	case ActionTouchMove:
		r.touch(pdfannotate.TouchMove, st)
	case ActionTouchEnd:
		r.touch(pdfannotate.TouchEnd, st)
	case ActionTouchCancel:
		r.touch(pdfannotate.TouchCancel, st)
	case ActionNext:
		return r.target.Next(ctx)
	case ActionPrev:
		return r.target.Prev(ctx)
	case ActionSave:
		return r.save(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, st.Action)
	}
	return nil
}

func (r *runner) save(ctx context.Context) error {
	res, err := r.target.Export(ctx)
	if res != nil {
		r.report.Exports = append(r.report.Exports, res)
	}
	if err != nil {
		return err
	}
	for _, pe := range res.Skipped {
		r.log.Warnf("replay: %v", pe)
	}
	r.log.Debugf("replay: saved %d bytes, annotated pages %v", len(res.PDF), res.Annotated)
	return nil
}

type discard struct{}

func (discard) Debugf(string, ...any) {}
func (discard) Warnf(string, ...any)  {}
