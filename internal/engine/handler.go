package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/1broseidon/floatwm/internal/geom"
	"github.com/1broseidon/floatwm/internal/ipc"
	"github.com/1broseidon/floatwm/internal/layout"
	"github.com/1broseidon/floatwm/internal/wm"
)

// The engine is the daemon's ipc.Handler. Every command takes the
// engine lock, so IPC connections serialize against event callbacks and
// gesture frames.

func (e *Engine) Status() (*ipc.StatusData, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return &ipc.StatusData{
		ActiveLayout:  e.active,
		WindowCount:   e.col.Len(),
		Monitor:       e.monitorName,
		UptimeSeconds: int64(time.Since(e.startedAt).Seconds()),
		DaemonRunning: true,
	}, nil
}

func (e *Engine) Monitors() (*ipc.MonitorsData, error) {
	monitors, err := e.conn.Monitors()
	if err != nil {
		return nil, fmt.Errorf("list monitors: %w", err)
	}
	data := &ipc.MonitorsData{Monitors: make([]ipc.MonitorInfo, 0, len(monitors))}
	for _, mon := range monitors {
		data.Monitors = append(data.Monitors, ipc.MonitorInfo{
			ID:      mon.ID,
			Name:    mon.Name,
			X:       mon.X,
			Y:       mon.Y,
			Width:   mon.Width,
			Height:  mon.Height,
			Primary: mon.Primary,
		})
	}
	return data, nil
}

func (e *Engine) ListWindows() (*ipc.WindowsData, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	wins := e.col.Windows()
	data := &ipc.WindowsData{Windows: make([]ipc.WindowInfo, 0, len(wins))}
	for _, w := range wins {
		r := w.Rect()
		info := ipc.WindowInfo{
			ID:       w.ID(),
			Key:      w.Key(),
			Priority: w.Priority(),
			Layout:   e.layoutNameLocked(w),
			Override: w.HasOverride(),
			X:        r.X,
			Y:        r.Y,
			Width:    r.Width,
			Height:   r.Height,
		}
		px := w.PixelRect()
		info.PixelX, info.PixelY, info.PixelWidth, info.PixelHeight = px.Ints()
		if xwin, ok := e.xids[w.ID()]; ok {
			if m := e.windows[xwin]; m != nil {
				info.Class = m.class
			}
			info.Title = e.conn.WindowTitle(xwin)
		}
		data.Windows = append(data.Windows, info)
	}
	return data, nil
}

func (e *Engine) layoutNameLocked(w *wm.Window) string {
	if xwin, ok := e.xids[w.ID()]; ok {
		if m := e.windows[xwin]; m != nil && m.overrideName != "" {
			return m.overrideName
		}
	}
	return e.active
}

func (e *Engine) ListLayouts() (*ipc.LayoutsData, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.layouts))
	for name := range e.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return &ipc.LayoutsData{
		Layouts:       names,
		DefaultLayout: e.cfg.DefaultLayout,
		ActiveLayout:  e.active,
	}, nil
}

func (e *Engine) SetLayout(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.setLayoutLocked(name)
}

// SetWindowLayout installs a per-window layout override built from the
// named preset, or clears the override when the name is empty. Override
// instances bind to the work-area source independently of the
// collection, so they survive collection layout swaps.
func (e *Engine) SetWindowLayout(ref ipc.WindowRef, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, m, err := e.windowByRefLocked(ref)
	if err != nil {
		return err
	}

	if name == "" {
		w.SetLayout(nil)
		e.clearOverrideLocked(m)
		e.logger.Info("window override cleared", "id", w.ID())
		return nil
	}

	preset, ok := e.cfg.Layouts[name]
	if !ok {
		return fmt.Errorf("unknown layout %q", name)
	}
	next := buildLayout(preset)
	if b, ok := next.(layout.Bindable); ok {
		b.Bind(e.source)
	}
	e.clearOverrideLocked(m)
	w.SetLayout(next)
	m.override = next
	m.overrideName = name
	e.logger.Info("window override set", "id", w.ID(), "layout", name)
	return nil
}

// MoveWindow runs a synthetic move gesture: snapshot, one cumulative
// offset through the active layout, commit. Identical code path to an
// interactive drag, so clamping and grid quantization apply the same
// way.
func (e *Engine) MoveWindow(ref ipc.WindowRef, dx, dy float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, _, err := e.windowByRefLocked(ref)
	if err != nil {
		return err
	}
	if !w.ActiveLayout().Caps().Move {
		return fmt.Errorf("layout does not permit moving")
	}
	v := geom.Vector2{X: dx, Y: dy}
	w.StartDrag()
	w.MoveBy(v, v)
	w.EndDrag()
	return nil
}

// ResizeWindow runs a synthetic resize gesture with the given edge
// deltas.
func (e *Engine) ResizeWindow(ref ipc.WindowRef, left, top, right, bottom float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, _, err := e.windowByRefLocked(ref)
	if err != nil {
		return err
	}
	if !w.ActiveLayout().Caps().Resize {
		return fmt.Errorf("layout does not permit resizing")
	}
	w.StartDrag()
	w.ResizeBy(geom.Edges{Left: left, Top: top, Right: right, Bottom: bottom})
	w.EndDrag()
	return nil
}

func (e *Engine) FrontWindow(ref ipc.WindowRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, m, err := e.windowByRefLocked(ref)
	if err != nil {
		return err
	}
	e.col.BringToFront(w)
	if err := e.conn.Focus(m.xwin); err != nil {
		e.logger.Warn("focus failed", "xid", m.xwin, "error", err)
	}
	return nil
}

func (e *Engine) CloseWindow(ref ipc.WindowRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, m, err := e.windowByRefLocked(ref)
	if err != nil {
		return err
	}
	// Polite close; the window leaves the collection once the client is
	// actually destroyed.
	return e.conn.CloseWindow(m.xwin)
}

func (e *Engine) windowByRefLocked(ref ipc.WindowRef) (*wm.Window, *managed, error) {
	var (
		w  *wm.Window
		ok bool
	)
	if ref.Key != "" {
		if w, ok = e.col.GetWindowByKey(ref.Key); !ok {
			return nil, nil, fmt.Errorf("no window with key %q", ref.Key)
		}
	} else {
		if w, ok = e.col.GetWindow(ref.ID); !ok {
			return nil, nil, fmt.Errorf("no window with id %d", ref.ID)
		}
	}
	xwin, ok := e.xids[w.ID()]
	if !ok {
		return nil, nil, fmt.Errorf("window %d has no backing client", w.ID())
	}
	return w, e.windows[xwin], nil
}
