package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display.
type Monitor struct {
	ID      int
	Name    string
	X       int
	Y       int
	Width   int
	Height  int
	Primary bool
}

// Monitors retrieves all active monitors using XRandR.
func (c *Conn) Monitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		isPrimary := false
		for _, out := range info.Outputs {
			if out == primary {
				isPrimary = true
			}
		}
		if outInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(outInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:      i,
			Name:    name,
			X:       int(info.X),
			Y:       int(info.Y),
			Width:   int(info.Width),
			Height:  int(info.Height),
			Primary: isPrimary,
		})
	}

	return monitors, nil
}

// ActiveMonitor returns the monitor holding the focused window, falling
// back to the monitor under the pointer and then the first monitor. The
// returned geometry is reduced to the usable work area.
func (c *Conn) ActiveMonitor() (*Monitor, error) {
	monitors, err := c.Monitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	var active *Monitor
	if win, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && win != 0 {
		if r, ok := c.clientRect(win); ok {
			active = monitorAt(monitors, r.X+r.Width/2, r.Y+r.Height/2)
		}
	}
	if active == nil {
		if p, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
			active = monitorAt(monitors, int(p.RootX), int(p.RootY))
		}
	}
	if active == nil {
		active = &monitors[0]
	}

	work := *active
	c.applyWorkArea(&work)
	return &work, nil
}

// MonitorWorkArea returns the named monitor's work area, falling back to
// the primary monitor and then the first when the name is gone. Lets the
// daemon keep following one monitor across RandR reconfigurations.
func (c *Conn) MonitorWorkArea(name string) (*Monitor, error) {
	monitors, err := c.Monitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	pick := &monitors[0]
	for i := range monitors {
		if monitors[i].Name == name {
			pick = &monitors[i]
			break
		}
		if monitors[i].Primary {
			pick = &monitors[i]
		}
	}

	work := *pick
	c.applyWorkArea(&work)
	return &work, nil
}

func monitorAt(monitors []Monitor, x, y int) *Monitor {
	for i := range monitors {
		m := &monitors[i]
		if x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height {
			return m
		}
	}
	return nil
}

// span is a half-open pixel interval.
type span struct {
	lo, hi int
}

func (s span) overlaps(o span) bool {
	return max(s.lo, o.lo) < min(s.hi, o.hi)
}

// reserved accumulates per-edge insets carved out of a monitor.
type reserved struct {
	left, right, top, bottom int
}

// applyWorkArea shrinks mon to its usable area. Dock struts win when any
// dock publishes them; otherwise the EWMH work area for the current
// desktop is intersected with the monitor.
func (c *Conn) applyWorkArea(mon *Monitor) {
	if c.applyStruts(mon) {
		return
	}
	c.applyEWMHWorkarea(mon)
}

func (c *Conn) applyStruts(mon *Monitor) bool {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return false
	}
	rootW, rootH := int(rootGeom.Width), int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return false
	}

	var acc reserved
	for _, win := range clients {
		if !c.isDock(win) {
			continue
		}
		sp := c.strutFor(win, rootW, rootH)
		if sp == nil {
			continue
		}
		accumulateStrut(mon, rootW, rootH, sp, &acc)
	}

	if acc == (reserved{}) {
		return false
	}

	mon.X += acc.left
	mon.Y += acc.top
	mon.Width -= acc.left + acc.right
	mon.Height -= acc.top + acc.bottom
	mon.Width = max(mon.Width, 1)
	mon.Height = max(mon.Height, 1)
	return true
}

func (c *Conn) isDock(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// strutFor reads a dock's partial strut, widening a plain _NET_WM_STRUT
// to full-span partial ranges when that is all the dock publishes.
func (c *Conn) strutFor(win xproto.Window, rootW, rootH int) *ewmh.WmStrutPartial {
	if sp, err := ewmh.WmStrutPartialGet(c.XUtil, win); err == nil {
		return sp
	}
	s, err := ewmh.WmStrutGet(c.XUtil, win)
	if err != nil {
		return nil
	}
	return &ewmh.WmStrutPartial{
		Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
		LeftStartY: 0, LeftEndY: uint(rootH - 1),
		RightStartY: 0, RightEndY: uint(rootH - 1),
		TopStartX: 0, TopEndX: uint(rootW - 1),
		BottomStartX: 0, BottomEndX: uint(rootW - 1),
	}
}

// accumulateStrut folds one dock's strut into acc, counting only the
// part of each strut band that actually covers mon.
func accumulateStrut(mon *Monitor, rootW, rootH int, sp *ewmh.WmStrutPartial, acc *reserved) {
	monX := span{mon.X, mon.X + mon.Width}
	monY := span{mon.Y, mon.Y + mon.Height}

	if sp.Left > 0 && monX.overlaps(span{0, int(sp.Left)}) &&
		monY.overlaps(span{int(sp.LeftStartY), int(sp.LeftEndY) + 1}) {
		acc.left = max(acc.left, min(int(sp.Left), monX.hi)-monX.lo)
	}
	if sp.Right > 0 && monX.overlaps(span{rootW - int(sp.Right), rootW}) &&
		monY.overlaps(span{int(sp.RightStartY), int(sp.RightEndY) + 1}) {
		acc.right = max(acc.right, monX.hi-max(rootW-int(sp.Right), monX.lo))
	}
	if sp.Top > 0 && monY.overlaps(span{0, int(sp.Top)}) &&
		monX.overlaps(span{int(sp.TopStartX), int(sp.TopEndX) + 1}) {
		acc.top = max(acc.top, min(int(sp.Top), monY.hi)-monY.lo)
	}
	if sp.Bottom > 0 && monY.overlaps(span{rootH - int(sp.Bottom), rootH}) &&
		monX.overlaps(span{int(sp.BottomStartX), int(sp.BottomEndX) + 1}) {
		acc.bottom = max(acc.bottom, monY.hi-max(rootH-int(sp.Bottom), monY.lo))
	}
}

func (c *Conn) applyEWMHWorkarea(mon *Monitor) {
	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return
	}

	idx := 0
	if desktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(desktop) < len(workArea) {
		idx = int(desktop)
	}
	wa := workArea[idx]

	x1 := max(mon.X, int(wa.X))
	y1 := max(mon.Y, int(wa.Y))
	x2 := min(mon.X+mon.Width, int(wa.X)+int(wa.Width))
	y2 := min(mon.Y+mon.Height, int(wa.Y)+int(wa.Height))
	if x2 > x1 && y2 > y1 {
		mon.X, mon.Y = x1, y1
		mon.Width, mon.Height = x2-x1, y2-y1
	}
}
