// Package tui is the terminal front end: a page preview drawn with
// half-block cells, mouse strokes, keyboard navigation and saving.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	pdfannotate "github.com/alnah/go-pdfannotate"
)

// Rows outside the preview: header, status and two help lines.
const reservedRows = 4

// Options configures a Model.
type Options struct {
	File      string  // opened on start when set
	Scale     float64 // zero means pdfannotate.DefaultScale
	OutputDir string  // where annotated.pdf is written
	ShowHelp  bool    // start with the full help expanded
	Logger    pdfannotate.Logger
}

type mode int

const (
	modeView mode = iota
	modePicking
	modeAlert
)

type (
	loadedMsg    struct {
		name string
		err  error
	}
	navigatedMsg struct{ err error }
	savedMsg     struct {
		res *pdfannotate.ExportResult
		err error
	}
)

// Model is the annotator following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type Model struct {
	ctx     context.Context
	session *pdfannotate.Session
	alerts  *alertQueue
	keys    *KeyMap
	styles  *Styles
	help    help.Model
	picker  textinput.Model
	initial string

	mode        mode
	alert       string
	status      string
	statusStyle lipgloss.Style

	width, height int
	snap          pdfannotate.Snapshot
	layout        Layout
	frame         []string
	title         string
	drawing       bool
}

// Ensure Model implements tea.Model.
var _ tea.Model = (*Model)(nil)

// New creates the model and its session.
func New(ctx context.Context, opts Options) *Model {
	alerts := &alertQueue{}
	sessionOpts := []pdfannotate.Option{
		pdfannotate.WithAlerter(alerts),
		pdfannotate.WithDownloader(pdfannotate.DirDownloader{Dir: opts.OutputDir}),
		pdfannotate.WithLogger(opts.Logger),
	}
	if opts.Scale != 0 {
		sessionOpts = append(sessionOpts, pdfannotate.WithScale(opts.Scale))
	}

	ti := textinput.New()
	ti.Placeholder = "path/to/file.pdf"
	ti.CharLimit = 1024
	ti.Width = 50

	h := help.New()
	h.ShowAll = opts.ShowHelp

	s := DefaultStyles()
	return &Model{
		ctx:         ctx,
		session:     pdfannotate.NewSession(sessionOpts...),
		alerts:      alerts,
		keys:        DefaultKeyMap(),
		styles:      s,
		help:        h,
		picker:      ti,
		initial:     opts.File,
		statusStyle: s.Muted,
		status:      "press o to open a PDF",
		title:       s.Title.Render("pdfannotate"),
	}
}

// Session returns the underlying session.
func (m *Model) Session() *pdfannotate.Session { return m.session }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("pdfannotate")}
	if m.initial != "" {
		cmds = append(cmds, m.open(m.initial))
	}
	return tea.Batch(cmds...)
}

func (m *Model) open(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := pdfannotate.OpenFile(path)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{name: f.Name, err: m.session.Load(m.ctx, f)}
	}
}

func (m *Model) navigate(delta int) tea.Cmd {
	return func() tea.Msg {
		if delta < 0 {
			return navigatedMsg{err: m.session.Prev(m.ctx)}
		}
		return navigatedMsg{err: m.session.Next(m.ctx)}
	}
}

func (m *Model) save() tea.Cmd {
	return func() tea.Msg {
		res, err := m.session.Export(m.ctx)
		return savedMsg{res: res, err: err}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case loadedMsg:
		switch {
		case m.showPendingAlert():
		case msg.err != nil && !errors.Is(msg.err, pdfannotate.ErrBusy):
			m.showAlert(msg.err.Error())
		case msg.err != nil:
			m.setStatus(msg.err.Error(), m.styles.Warning)
		default:
			m.setStatus("opened "+msg.name, m.styles.Muted)
		}
		m.relayout()
		return m, nil

	case navigatedMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), m.styles.Warning)
		}
		m.relayout()
		return m, nil

	case savedMsg:
		m.saved(msg)
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}

	if m.mode == modePicking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAlert:
		// Alerts are modal.
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Confirm, m.keys.Cancel) {
			m.alert = ""
			m.mode = modeView
			m.showPendingAlert()
		}
		return m, nil

	case modePicking:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			path := strings.TrimSpace(m.picker.Value())
			m.picker.Blur()
			m.mode = modeView
			if path == "" {
				return m, nil
			}
			m.setStatus("opening "+path+"...", m.styles.Muted)
			return m, m.open(path)
		case key.Matches(msg, m.keys.Cancel):
			m.picker.Blur()
			m.mode = modeView
			return m, nil
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Open):
		m.mode = modePicking
		m.picker.Reset()
		return m, m.picker.Focus()
	case !m.snap.Loaded:
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		return m, m.navigate(-1)
	case key.Matches(msg, m.keys.Next):
		return m, m.navigate(1)
	case key.Matches(msg, m.keys.Save):
		m.setStatus("saving...", m.styles.Muted)
		return m, m.save()
	}
	return m, nil
}

// handleMouse maps left-button drags inside the preview to pointer events.
// Leaving the preview while drawing ends the stroke.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.mode != modeView || !m.snap.Loaded || m.layout.Cols == 0 {
		return
	}
	rect := m.layout.Rect()
	// Cell centers keep the mapping symmetric.
	x, y := float64(msg.X)+0.5, float64(msg.Y)+0.5
	inside := m.layout.Contains(msg.X, msg.Y)

	var ev pdfannotate.PointerEvent
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && inside:
		ev = pdfannotate.PointerEvent{Kind: pdfannotate.PointerDown, ClientX: x, ClientY: y}
	case msg.Action == tea.MouseActionMotion && m.drawing && inside:
		ev = pdfannotate.PointerEvent{Kind: pdfannotate.PointerMove, ClientX: x, ClientY: y}
	case msg.Action == tea.MouseActionMotion && m.drawing:
		ev = pdfannotate.PointerEvent{Kind: pdfannotate.PointerLeave}
	case msg.Action == tea.MouseActionRelease && m.drawing:
		ev = pdfannotate.PointerEvent{Kind: pdfannotate.PointerUp}
	default:
		return
	}
	// A dropped press starts nothing. Ending always clears: a page change
	// resets the surface to idle anyway.
	applied := m.session.Pointer(ev, rect)
	switch ev.Kind {
	case pdfannotate.PointerDown:
		m.drawing = applied
	case pdfannotate.PointerUp, pdfannotate.PointerLeave:
		m.drawing = false
	}
	if applied {
		m.refreshFrame()
	}
}

func (m *Model) saved(msg savedMsg) {
	if msg.res == nil || msg.err != nil {
		m.setStatus("save failed: "+msg.err.Error(), m.styles.Warning)
		return
	}
	status := "Saved " + msg.res.Path
	if n := len(msg.res.Skipped); n > 0 {
		pages := make([]string, n)
		for i, pe := range msg.res.Skipped {
			pages[i] = fmt.Sprint(pe.Page)
		}
		m.setStatus(status+" (skipped pages "+strings.Join(pages, ", ")+")", m.styles.Warning)
		return
	}
	m.setStatus(status, m.styles.Success)
}

func (m *Model) setStatus(text string, style lipgloss.Style) {
	m.status = text
	m.statusStyle = style
}

func (m *Model) showAlert(text string) {
	m.alert = text
	m.mode = modeAlert
}

// showPendingAlert displays the next queued session alert, if any.
func (m *Model) showPendingAlert() bool {
	text, ok := m.alerts.pop()
	if ok {
		m.showAlert(text)
	}
	return ok
}

// relayout fits the preview to the terminal and redraws it.
func (m *Model) relayout() {
	if !m.takeSnapshot() {
		return
	}
	m.layout = Layout{}
	if m.snap.Loaded {
		w, h := m.snap.Viewport.PixelSize()
		cols, rows := fit(w, h, m.width, m.height-reservedRows)
		m.layout = Layout{Left: max(0, (m.width-cols)/2), Top: 1, Cols: cols, Rows: rows}
	}
	m.draw()
}

// refreshFrame redraws the preview from fresh session state.
func (m *Model) refreshFrame() {
	if m.takeSnapshot() {
		m.draw()
	}
}

// takeSnapshot copies the session state for the view. Commands mutate the
// session off the main goroutine; while one is in flight the previous
// snapshot stays and the message that ends the command redraws.
func (m *Model) takeSnapshot() bool {
	snap, ok := m.session.Snapshot()
	if ok {
		m.snap = snap
	}
	return ok
}

// draw caches the header and preview for the current snapshot.
func (m *Model) draw() {
	m.title = m.header()
	if !m.snap.Loaded || m.layout.Cols == 0 {
		m.frame = nil
		return
	}
	m.frame = renderPreview(m.snap.Background, m.snap.Overlay, m.layout.Cols, m.layout.Rows)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.title)
	b.WriteString("\n")

	previewRows := max(0, m.height-reservedRows)
	switch {
	case m.mode == modeAlert:
		box := m.styles.Alert.Render(m.alert) + "\n" + m.styles.Muted.Render("enter to dismiss")
		b.WriteString(lipgloss.Place(m.width, previewRows, lipgloss.Center, lipgloss.Center, box))
	case len(m.frame) > 0:
		pad := strings.Repeat(" ", m.layout.Left)
		for i, line := range m.frame {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(pad + line)
		}
	default:
		b.WriteString(lipgloss.Place(m.width, previewRows, lipgloss.Center, lipgloss.Center, m.styles.Muted.Render("no document")))
	}
	b.WriteString("\n")

	if m.mode == modePicking {
		b.WriteString(m.styles.Input.Render("Open: ") + m.picker.View())
	} else {
		b.WriteString(m.statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) header() string {
	if !m.snap.Loaded {
		return m.styles.Title.Render("pdfannotate")
	}
	page := fmt.Sprintf("Page %d / %d", m.snap.Page, m.snap.PageCount)
	return m.styles.Title.Render(m.snap.FileName) + "  " + m.styles.Page.Render(page)
}
