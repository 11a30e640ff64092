// Package replay drives an annotation session from a YAML script of input
// events, page navigation and saves. It is how strokes are recorded and
// reproduced without an interactive front end.
package replay

import (
	"errors"
	"fmt"
	"math"

	"github.com/alnah/go-pdfannotate/internal/yamlutil"
)

// Sentinel errors for script validation.
var (
	ErrParse              = errors.New("failed to parse replay script")
	ErrUnknownAction      = errors.New("unknown action")
	ErrMissingCoordinates = errors.New("missing coordinates")
	ErrShortStroke        = errors.New("stroke needs at least two points")
	ErrInvalidDisplay     = errors.New("invalid display rectangle")
	ErrNoSteps            = errors.New("script has no steps")
)

// Actions understood by Run.
const (
	ActionDown        = "down"
	ActionMove        = "move"
	ActionUp          = "up"
	ActionLeave       = "leave"
	ActionStroke      = "stroke"
	ActionTouchStart  = "touchstart"
	ActionTouchMove   = "touchmove"
	ActionTouchEnd    = "touchend"
	ActionTouchCancel = "touchcancel"
	ActionNext        = "next"
	ActionPrev        = "prev"
	ActionSave        = "save"
)

// Script is a parsed replay file.
type Script struct {
	Input   string   `yaml:"input"`
	Display *Display `yaml:"display"`
	Steps   []Step   `yaml:"steps"`
}

// Display is the on-screen rectangle events are expressed in. Without one,
// coordinates are backing pixels of the current page.
type Display struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Step is one scripted action.
type Step struct {
	Action string      `yaml:"action"`
	X      *float64    `yaml:"x"`
	Y      *float64    `yaml:"y"`
	Points [][]float64 `yaml:"points"`
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yamlutil.UnmarshalStrict(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	var s Script
	if err := yamlutil.ReadFileStrict(path, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &s, nil
}

// Validate checks every step and the display rectangle.
func (s *Script) Validate() error {
	if d := s.Display; d != nil {
		if d.Width < 0 || d.Height < 0 || !finite(d.Left, d.Top, d.Width, d.Height) {
			return fmt.Errorf("%w: %+v", ErrInvalidDisplay, *d)
		}
	}
	if len(s.Steps) == 0 {
		return ErrNoSteps
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Action {
	case ActionDown, ActionMove, ActionTouchStart, ActionTouchMove:
		if st.X == nil || st.Y == nil {
			return fmt.Errorf("%w: %s needs x and y", ErrMissingCoordinates, st.Action)
		}
		if !finite(*st.X, *st.Y) {
			return fmt.Errorf("%w: %s has non-finite coordinates", ErrMissingCoordinates, st.Action)
		}
	case ActionStroke:
		if len(st.Points) < 2 {
			return fmt.Errorf("%w: got %d", ErrShortStroke, len(st.Points))
		}
		for j, p := range st.Points {
			if len(p) != 2 || !finite(p...) {
				return fmt.Errorf("%w: point %d must be [x, y]", ErrMissingCoordinates, j+1)
			}
		}
	case ActionUp, ActionLeave, ActionTouchEnd, ActionTouchCancel,
		ActionNext, ActionPrev, ActionSave:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, st.Action)
	}
	return nil
}

// HasSave reports whether any step saves.
func (s *Script) HasSave() bool {
	for _, st := range s.Steps {
		if st.Action == ActionSave {
			return true
		}
	}
	return false
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
