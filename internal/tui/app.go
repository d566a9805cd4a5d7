// Package tui hosts the interactive playground: a real window
// collection rendered on a terminal-cell canvas, with mouse drags,
// layout switching and animated transitions. One terminal cell maps to
// one layout unit.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/floatwm/internal/geom"
	"github.com/1broseidon/floatwm/internal/gesture"
	"github.com/1broseidon/floatwm/internal/layout"
	"github.com/1broseidon/floatwm/internal/wm"
)

// Rows above the canvas; the status bar is a single line.
const contentTop = 1

// Grip band in cells for picking resize edges.
const edgeGrip = 1.5

// Options configures the playground.
type Options struct {
	// Transitions times switch and exit playback; the zero value takes
	// the collection defaults.
	Transitions wm.Transitions
	// FPS drives transition sampling and gesture frame delivery. Zero
	// falls back to 60.
	FPS    int
	Logger *slog.Logger
}

// preset pairs a layout policy with its display name. These are
// cell-scale counterparts of the daemon's pixel presets.
type preset struct {
	name   string
	policy layout.Layout
}

func cellPresets() []preset {
	clamped := layout.NewConstrained()
	clamped.SetConstraints(layout.SizeConstraints{
		MinWidth:         12,
		MinHeight:        4,
		SuggestionWidth:  34,
		SuggestionHeight: 10,
	})

	gutter := geom.Edges{Left: 1, Top: 1, Right: 1, Bottom: 1}
	grid2 := layout.NewGrid(2, 2)
	grid2.SetPadding(gutter)
	grid3 := layout.NewGrid(3, 3)
	grid3.SetPadding(gutter)

	dialog := layout.NewDialog(geom.Size{Width: 26, Height: 8})
	dialog.SetMargin(2)

	return []preset{
		{"floating", layout.NewBase()},
		{"clamped", clamped},
		{"grid-2x2", grid2},
		{"grid-3x3", grid3},
		{"dialog", dialog},
	}
}

// windowDrags is the gesture pair bound to one window, plus the grab
// state the resize start reads.
type windowDrags struct {
	move   *gesture.Drag
	resize *gesture.Drag
	grab   geom.Vector2
	edges  gesture.EdgeMask
}

// Model is the playground's bubbletea model. Everything mutates on the
// update goroutine, so the collection needs no locking here.
type Model struct {
	opts Options
	keys keyMap
	help help.Model

	source *layout.StaticSource
	col    *wm.Collection
	canvas *canvas
	sched  *gesture.ManualScheduler

	presets []preset
	active  int

	drags map[int]*windowDrags
	// capture is the drag holding the mouse until release.
	capture *gesture.Drag

	form *windowForm

	created int
	seeded  bool
	ticking bool

	width, height int
}

// New builds the playground model. Windows are seeded once the first
// terminal size arrives.
func New(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Transitions == (wm.Transitions{}) {
		opts.Transitions = wm.DefaultTransitions()
	}

	presets := cellPresets()
	cv := newCanvas(opts.Transitions.Switch)
	src := layout.NewStaticSource(geom.Rect{Width: 80, Height: 22})
	col := wm.NewCollection(wm.Config{
		Layout:      presets[0].policy,
		Renderer:    cv,
		Transitions: opts.Transitions,
		Logger:      opts.Logger,
	})
	col.BindSource(src)

	return Model{
		opts:    opts,
		keys:    defaultKeyMap(),
		help:    help.New(),
		source:  src,
		col:     col,
		canvas:  cv,
		sched:   &gesture.ManualScheduler{},
		presets: presets,
		drags:   make(map[int]*windowDrags),
	}
}

// Run launches the playground on the current terminal.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// frameMsg carries one animation frame tick.
type frameMsg time.Time

func (m Model) frame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// wake starts the frame ticker unless it is already running.
func (m *Model) wake() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return m.frame()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.syncArea()
		if !m.seeded && msg.Width > 0 && msg.Height > 0 {
			m.seeded = true
			m.seedWindows()
		}
		return m, m.wake()

	case frameMsg:
		m.sched.Fire()
		if m.canvas.Step(time.Time(msg)) || m.capture != nil {
			return m, m.frame()
		}
		m.ticking = false
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	}

	// Field components consume their own messages, cursor blinks
	// included.
	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.syncArea()
		return m, nil
	case key.Matches(msg, m.keys.NewWindow):
		m.form = newWindowForm(m.width, m.created+1)
		return m, m.form.form.Init()
	case key.Matches(msg, m.keys.CloseFront):
		m.closeFront()
		return m, m.wake()
	case key.Matches(msg, m.keys.CycleFront):
		m.cycleFront()
		return m, m.wake()
	case key.Matches(msg, m.keys.NextLayout):
		m.switchLayout(1)
		return m, m.wake()
	case key.Matches(msg, m.keys.PrevLayout):
		m.switchLayout(-1)
		return m, m.wake()
	}
	return m, nil
}

// updateForm routes input into the open form. Esc abandons it; a
// completed form spawns the window.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f
	}

	if m.form.form.State == huh.StateCompleted {
		name, title, size := m.form.values()
		m.form = nil
		m.spawn(name, title, size)
		return m, m.wake()
	}
	return m, cmd
}

// updateMouse drives the gesture pair under the pointer: left drags
// move, right or shift drags resize. The button routing happens here,
// so each drag sees a bare primary press the same way the daemon's
// modifier grabs deliver one.
func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	pos := geom.Vector2{X: float64(msg.X), Y: float64(msg.Y - contentTop)}

	switch msg.Action {
	case tea.MouseActionPress:
		if m.form != nil || m.capture != nil {
			return m, nil
		}
		w := m.windowAt(pos)
		if w == nil {
			return m, nil
		}
		d := m.drags[w.ID()]
		if d == nil {
			return m, nil
		}

		var target *gesture.Drag
		switch {
		case msg.Button == tea.MouseButtonRight || (msg.Button == tea.MouseButtonLeft && msg.Shift):
			target = d.resize
		case msg.Button == tea.MouseButtonLeft:
			target = d.move
		default:
			return m, nil
		}

		d.grab = pos
		if target.Press(pointerAt(pos)) {
			m.capture = target
			return m, m.wake()
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.capture != nil {
			m.capture.Move(pointerAt(pos))
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.capture != nil {
			m.capture.Release(pointerAt(pos))
			m.capture = nil
		}
		return m, nil
	}
	return m, nil
}

func pointerAt(pos geom.Vector2) gesture.Pointer {
	return gesture.Pointer{Pos: pos, Button: gesture.ButtonPrimary}
}

// windowAt hit-tests the stack front first against placed rects.
func (m *Model) windowAt(pos geom.Vector2) *wm.Window {
	ws := m.col.Windows()
	for i := len(ws) - 1; i >= 0; i-- {
		if ws[i].PixelRect().Contains(pos) {
			return ws[i]
		}
	}
	return nil
}

func (m *Model) switchLayout(step int) {
	n := len(m.presets)
	m.active = ((m.active+step)%n + n) % n
	m.col.SetLayout(m.presets[m.active].policy)
}

func (m *Model) closeFront() {
	ws := m.col.Windows()
	if len(ws) == 0 {
		return
	}
	w := ws[len(ws)-1]
	m.releaseDrags(w.ID())
	w.Destroy()
}

// cycleFront rotates the stack by raising the bottom window.
func (m *Model) cycleFront() {
	ws := m.col.Windows()
	if len(ws) < 2 {
		return
	}
	m.col.BringToFront(ws[0])
}

func (m *Model) releaseDrags(id int) {
	d := m.drags[id]
	if d == nil {
		return
	}
	delete(m.drags, id)
	if m.capture == d.move || m.capture == d.resize {
		m.capture = nil
	}
	d.move.Dispose()
	d.resize.Dispose()
}

// spawn creates, labels and places one window.
func (m *Model) spawn(name, title string, size geom.Size) {
	m.created++
	if title == "" {
		title = fmt.Sprintf("window %d", m.created)
	}

	opts := wm.WindowOptions{Key: name}
	if r, ok := m.seedRect(size); ok {
		opts.Rect = &r
	}
	w := m.col.NewWindow(opts)
	m.canvas.Label(w.ID(), title)
	m.bindDrags(w)
	w.Initialize()
}

// seedRect staggers a starting rect for the pixel-coordinate policies,
// fitted through the active layout. Cell and stateless policies derive
// their own placement.
func (m *Model) seedRect(size geom.Size) (geom.Rect, bool) {
	l := m.col.Layout()
	switch l.(type) {
	case *layout.Base, *layout.Constrained:
	default:
		return geom.Rect{}, false
	}

	area := m.source.Bounds()
	step := float64((m.created - 1) % 6)
	r := geom.Rect{
		X:      area.X + 2 + step*3,
		Y:      area.Y + 1 + step,
		Width:  size.Width,
		Height: size.Height,
	}
	return l.FitRect(r), true
}

func (m *Model) seedWindows() {
	m.spawn("alpha", "alpha", geom.Size{Width: 32, Height: 10})
	m.spawn("beta", "beta", geom.Size{Width: 26, Height: 8})
	m.spawn("gamma", "gamma", geom.Size{Width: 22, Height: 7})
}

// bindDrags wires the window's move and resize gestures. Both share the
// frame scheduler fired by the animation tick.
func (m *Model) bindDrags(w *wm.Window) {
	d := &windowDrags{}
	d.move = gesture.New(gesture.Config{
		Allow: func() bool { return w.Initialized() && w.ActiveLayout().Caps().Move },
		OnStart: func() {
			m.col.BringToFront(w)
			w.StartDrag()
		},
		OnFrame:   func(offset, delta geom.Vector2) { w.MoveBy(offset, delta) },
		OnEnd:     w.EndDrag,
		Scheduler: m.sched,
		Logger:    m.opts.Logger,
	})
	d.resize = gesture.New(gesture.Config{
		Allow: func() bool { return w.Initialized() && w.ActiveLayout().Caps().Resize },
		OnStart: func() {
			m.col.BringToFront(w)
			w.StartDrag()
			d.edges = gesture.PickEdges(w.PixelRect(), d.grab.X, d.grab.Y, edgeGrip)
		},
		OnFrame:   func(offset, _ geom.Vector2) { w.ResizeBy(d.edges.Apply(offset)) },
		OnEnd:     w.EndDrag,
		Scheduler: m.sched,
		Logger:    m.opts.Logger,
	})
	m.drags[w.ID()] = d
}

// syncArea publishes the canvas area to the size source; bound layouts
// re-derive through the break flow.
func (m *Model) syncArea() {
	next := geom.Rect{Width: float64(m.width), Height: float64(m.contentHeight())}
	if next == m.source.Bounds() {
		return
	}
	m.source.SetBounds(next)
}

func (m Model) contentHeight() int {
	h := m.height - contentTop - lipgloss.Height(m.helpView())
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	status := m.statusView()
	helpBar := m.helpView()
	contentH := m.contentHeight()

	var content string
	switch {
	case m.form != nil:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			m.form.form.View())
	case m.col.Len() == 0 && m.canvas.Empty():
		hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
			Render("n opens the new window form")
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, hint)
	default:
		content = m.canvas.Render(m.width, contentH, m.frontID())
	}

	return lipgloss.JoinVertical(lipgloss.Left, status, content, helpBar)
}

func (m Model) frontID() int {
	ws := m.col.Windows()
	if len(ws) == 0 {
		return -1
	}
	return ws[len(ws)-1].ID()
}

func (m Model) statusView() string {
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	parts := []string{
		dot + " floatwm playground",
		"layout:" + m.presets[m.active].name,
		fmt.Sprintf("windows:%d", m.col.Len()),
	}
	if ws := m.col.Windows(); len(ws) > 0 {
		if label, ok := m.canvas.labels[ws[len(ws)-1].ID()]; ok {
			parts = append(parts, "front:"+label)
		}
	}

	style := lipgloss.NewStyle().
		Width(m.width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(strings.Join(parts, "  "))
}

func (m Model) helpView() string {
	return lipgloss.NewStyle().Padding(0, 1).Render(m.help.View(m.keys))
}
