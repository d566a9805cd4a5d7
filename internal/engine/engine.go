// Package engine runs the window-management core against a live X11
// session: it adopts clients by class, renders placements through EWMH,
// binds pointer gestures and serves the IPC control surface.
//
// One mutex serializes the whole engine. X event callbacks, gesture
// frame deliveries and IPC connections all enter through it.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/geom"
	"github.com/1broseidon/floatwm/internal/gesture"
	"github.com/1broseidon/floatwm/internal/layout"
	"github.com/1broseidon/floatwm/internal/wm"
	"github.com/1broseidon/floatwm/internal/x11"
)

// Backend is the window-system surface the engine drives. *x11.Conn
// implements it; tests substitute a fake display.
type Backend interface {
	ListClients() ([]x11.Client, error)
	WindowTitle(win xproto.Window) string
	MoveResize(win xproto.Window, x, y, width, height int) error
	Raise(win xproto.Window) error
	Focus(win xproto.Window) error
	CloseWindow(win xproto.Window) error
	ActiveWindow() (xproto.Window, error)
	SetOpacity(win xproto.Window, opacity float64) error

	Monitors() ([]x11.Monitor, error)
	ActiveMonitor() (*x11.Monitor, error)
	MonitorWorkArea(name string) (*x11.Monitor, error)

	WatchRoot(hooks x11.RootHooks) error
	BindDrag(win xproto.Window, buttonStr string, hooks x11.DragHooks)
	DetachWindow(win xproto.Window)
}

// managed pairs an adopted X client with its engine window and the
// gesture state hanging off it.
type managed struct {
	xwin  xproto.Window
	win   *wm.Window
	class string

	// released short-circuits gesture callbacks without the engine
	// lock, so disposing a drag during release cannot deadlock.
	released atomic.Bool

	move   *gesture.Drag
	resize *gesture.Drag

	// Last grab position, read by the resize start under the lock.
	grabX, grabY int
	edges        gesture.EdgeMask

	overrideName string
	override     layout.Layout
}

// Options configures a new Engine.
type Options struct {
	Config  *config.Config
	Backend Backend
	Logger  *slog.Logger

	// ReloadConfig supplies a fresh configuration for Reload. Nil makes
	// Reload an error.
	ReloadConfig func() (*config.Config, error)
}

// Engine owns the daemon's window collection and everything feeding it.
type Engine struct {
	mu sync.Mutex

	cfg          *config.Config
	conn         Backend
	logger       *slog.Logger
	reloadConfig func() (*config.Config, error)

	col     *wm.Collection
	source  *layout.StaticSource
	layouts map[string]layout.Layout
	active  string

	render *renderer

	// sched overrides the gesture frame scheduler; nil uses a tick
	// scheduler at the configured frame rate.
	sched gesture.Scheduler

	windows map[xproto.Window]*managed
	xids    map[int]xproto.Window

	monitorName string
	workArea    geom.Rect

	startedAt time.Time
}

// New builds an engine around the given backend. The configuration must
// already be validated.
func New(opts Options) (*Engine, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if opts.Backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		cfg:          opts.Config,
		conn:         opts.Backend,
		logger:       logger,
		reloadConfig: opts.ReloadConfig,
		layouts:      buildLayouts(opts.Config),
		active:       opts.Config.DefaultLayout,
		source:       layout.NewStaticSource(geom.Rect{}),
		windows:      make(map[xproto.Window]*managed),
		xids:         make(map[int]xproto.Window),
		startedAt:    time.Now(),
	}
	current, ok := e.layouts[e.active]
	if !ok {
		return nil, fmt.Errorf("default layout %q is not defined", e.active)
	}

	e.render = newRenderer(opts.Backend, logger, opts.Config.Animation.FPS, e.xidFor)
	e.col = wm.NewCollection(wm.Config{
		Layout:      current,
		Renderer:    e.render,
		ZBase:       opts.Config.ZIndexBase,
		Transitions: TransitionsFrom(opts.Config.Animation),
		Logger:      logger,
	})
	e.col.BindSource(e.source)
	return e, nil
}

// xidFor resolves an engine window id to its X client. Only called
// while the engine lock is held.
func (e *Engine) xidFor(id int) (xproto.Window, bool) {
	xwin, ok := e.xids[id]
	return xwin, ok
}

// Start derives the initial work area, adopts the clients already on
// screen and subscribes to the root window. Call once before the event
// loop runs.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.syncMonitorLocked(); err != nil {
		return fmt.Errorf("derive work area: %w", err)
	}
	e.scanLocked()
	return e.conn.WatchRoot(x11.RootHooks{
		MapWindow:      e.onMapWindow,
		DestroyWindow:  e.onDestroyWindow,
		GeometryChange: e.onRootChange,
	})
}

// Stop disposes gestures and playback. Managed clients keep their last
// placement.
func (e *Engine) Stop() {
	e.mu.Lock()
	for _, m := range e.windows {
		m.released.Store(true)
		if m.move != nil {
			m.move.Dispose()
		}
		if m.resize != nil {
			m.resize.Dispose()
		}
		e.conn.DetachWindow(m.xwin)
	}
	e.mu.Unlock()
	e.render.stopAll()
}

// Reconcile adopts newly mapped clients, releases vanished ones and
// refreshes the tracked work area. The reconciler calls this on a
// timer; root events trigger the same passes directly.
func (e *Engine) Reconcile() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.syncMonitorLocked(); err != nil {
		e.logger.Warn("monitor sync failed", "error", err)
	}
	e.scanLocked()
}

func (e *Engine) onMapWindow(xproto.Window) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scanLocked()
}

func (e *Engine) onDestroyWindow(win xproto.Window) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m, ok := e.windows[win]; ok {
		e.releaseLocked(m)
	}
}

func (e *Engine) onRootChange() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.syncMonitorLocked(); err != nil {
		e.logger.Warn("monitor sync failed", "error", err)
	}
}

// syncMonitorLocked re-derives the tracked monitor's work area. The
// monitor is picked once at startup and then followed by name, so focus
// hopping between monitors never re-derives the collection.
func (e *Engine) syncMonitorLocked() error {
	var (
		mon *x11.Monitor
		err error
	)
	if e.monitorName == "" {
		mon, err = e.conn.ActiveMonitor()
	} else {
		mon, err = e.conn.MonitorWorkArea(e.monitorName)
	}
	if err != nil {
		return err
	}

	area := workAreaOf(mon, e.cfg.ScreenPadding)
	if mon.Name == e.monitorName && area == e.workArea {
		return nil
	}
	e.monitorName = mon.Name
	e.workArea = area
	e.source.SetBounds(area)
	e.logger.Info("work area set", "monitor", mon.Name,
		"x", int(area.X), "y", int(area.Y),
		"width", int(area.Width), "height", int(area.Height))
	return nil
}

// workAreaOf shrinks a monitor's work area by the configured screen
// padding.
func workAreaOf(mon *x11.Monitor, pad config.Margins) geom.Rect {
	return geom.Rect{
		X:      float64(mon.X + pad.Left),
		Y:      float64(mon.Y + pad.Top),
		Width:  float64(mon.Width - pad.Left - pad.Right),
		Height: float64(mon.Height - pad.Top - pad.Bottom),
	}
}

// scanLocked reconciles the collection against the X client list:
// matching clients not yet managed are adopted, managed windows whose
// client vanished are released.
func (e *Engine) scanLocked() {
	clients, err := e.conn.ListClients()
	if err != nil {
		e.logger.Warn("client scan failed", "error", err)
		return
	}

	seen := make(map[xproto.Window]bool, len(clients))
	for _, cl := range clients {
		if !e.cfg.Managed(cl.Class) {
			continue
		}
		seen[cl.Window] = true
		if _, ok := e.windows[cl.Window]; !ok {
			e.adoptLocked(cl)
		}
	}
	for xwin, m := range e.windows {
		if !seen[xwin] {
			e.releaseLocked(m)
		}
	}
}

func (e *Engine) adoptLocked(cl x11.Client) {
	rect := seedRect(e.col.Layout(), geom.Rect{
		X:      float64(cl.Rect.X),
		Y:      float64(cl.Rect.Y),
		Width:  float64(cl.Rect.Width),
		Height: float64(cl.Rect.Height),
	})
	w := e.col.NewWindow(wm.WindowOptions{Rect: rect})
	m := &managed{xwin: cl.Window, win: w, class: cl.Class}

	// The id must resolve before Initialize places the window.
	e.windows[cl.Window] = m
	e.xids[w.ID()] = cl.Window
	w.Initialize()
	e.bindGestures(m)
	e.logger.Info("window adopted", "xid", cl.Window, "id", w.ID(), "class", cl.Class)
}

// seedRect maps a client's on-screen rect into the layout's coordinate
// space. Only the pixel-coordinate policies can take it; cell and
// stateless policies derive their own placement.
func seedRect(l layout.Layout, px geom.Rect) *geom.Rect {
	switch l.(type) {
	case *layout.Base, *layout.Constrained:
		r := l.FitRect(px)
		return &r
	default:
		return nil
	}
}

func (e *Engine) releaseLocked(m *managed) {
	m.released.Store(true)
	if m.move != nil {
		m.move.Dispose()
	}
	if m.resize != nil {
		m.resize.Dispose()
	}
	e.conn.DetachWindow(m.xwin)
	e.clearOverrideLocked(m)

	delete(e.windows, m.xwin)
	delete(e.xids, m.win.ID())
	m.win.Destroy()
	e.logger.Info("window released", "xid", m.xwin, "id", m.win.ID())
}

func (e *Engine) clearOverrideLocked(m *managed) {
	if m.override == nil {
		return
	}
	if b, ok := m.override.(layout.Bindable); ok {
		b.Unbind()
	}
	m.override = nil
	m.overrideName = ""
}

func (e *Engine) setLayoutLocked(name string) error {
	l, ok := e.layouts[name]
	if !ok {
		return fmt.Errorf("unknown layout %q", name)
	}
	if name == e.active {
		return nil
	}
	e.col.SetLayout(l)
	e.active = name
	e.logger.Info("layout activated", "layout", name)
	return nil
}

// CycleLayout advances the collection layout through the configured
// cycle order, step positions forward (or backward when negative).
func (e *Engine) CycleLayout(step int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := nextName(e.cfg.CycleNames(), e.active, step)
	if next == "" {
		return
	}
	if err := e.setLayoutLocked(next); err != nil {
		e.logger.Warn("layout cycle failed", "layout", next, "error", err)
	}
}

// FrontActiveWindow raises the focused client to the top of the
// priority stack, if the engine manages it.
func (e *Engine) FrontActiveWindow() {
	e.mu.Lock()
	defer e.mu.Unlock()
	xwin, err := e.conn.ActiveWindow()
	if err != nil {
		e.logger.Warn("active window lookup failed", "error", err)
		return
	}
	m, ok := e.windows[xwin]
	if !ok {
		return
	}
	e.col.BringToFront(m.win)
}

// Reload fetches a fresh configuration and applies what can change at
// runtime: layout presets, animation timing, screen padding and the
// managed-class lists. Hotkey and gesture grabs keep their boot-time
// bindings until restart.
func (e *Engine) Reload() error {
	if e.reloadConfig == nil {
		return fmt.Errorf("reload is not supported")
	}
	cfg, err := e.reloadConfig()
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if bindingsChanged(e.cfg, cfg) {
		e.logger.Warn("hotkey and gesture changes take effect on restart")
	}

	e.cfg = cfg
	e.layouts = buildLayouts(cfg)
	active := e.active
	if _, ok := e.layouts[active]; !ok {
		active = cfg.DefaultLayout
	}
	e.col.SetTransitions(TransitionsFrom(cfg.Animation))
	e.render.setFPS(cfg.Animation.FPS)
	e.col.SetLayout(e.layouts[active])
	e.active = active

	if err := e.syncMonitorLocked(); err != nil {
		e.logger.Warn("monitor sync failed", "error", err)
	}
	e.scanLocked()
	e.logger.Info("configuration reloaded", "layout", e.active)
	return nil
}

func bindingsChanged(a, b *config.Config) bool {
	return a.CycleLayoutHotkey != b.CycleLayoutHotkey ||
		a.CycleLayoutReverseHotkey != b.CycleLayoutReverseHotkey ||
		a.FrontWindowHotkey != b.FrontWindowHotkey ||
		a.Gestures != b.Gestures
}
