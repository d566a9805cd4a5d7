package x11

import (
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// RootHooks receives the root window's event stream. MapWindow and
// DestroyWindow fire for top-level clients, GeometryChange when the
// root itself is reconfigured, which covers RandR screen changes. Any
// hook may be nil.
type RootHooks struct {
	MapWindow      func(win xproto.Window)
	DestroyWindow  func(win xproto.Window)
	GeometryChange func()
}

// WatchRoot subscribes hooks to the root window. Callbacks run on the X
// event loop goroutine.
func (c *Conn) WatchRoot(hooks RootHooks) error {
	masks := xproto.EventMaskSubstructureNotify | xproto.EventMaskStructureNotify
	if err := xwindow.New(c.XUtil, c.Root).Listen(masks); err != nil {
		return err
	}

	xevent.MapNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MapNotifyEvent) {
		if hooks.MapWindow != nil {
			hooks.MapWindow(ev.Window)
		}
	}).Connect(c.XUtil, c.Root)

	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		if hooks.DestroyWindow != nil {
			hooks.DestroyWindow(ev.Window)
		}
	}).Connect(c.XUtil, c.Root)

	xevent.ConfigureNotifyFun(func(xu *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		// SubstructureNotify redirects child configures here too; only
		// the root's own geometry matters.
		if ev.Window == c.Root && hooks.GeometryChange != nil {
			hooks.GeometryChange()
		}
	}).Connect(c.XUtil, c.Root)

	return nil
}

// DragHooks receives a pointer drag's lifecycle in root coordinates.
// Step and End fire only after Begin returned true.
type DragHooks struct {
	Begin func(rootX, rootY int) bool
	Step  func(rootX, rootY int)
	End   func(rootX, rootY int)
}

// BindDrag grabs buttonStr (xgbutil grammar, e.g. "Mod4-1") on win and
// routes the resulting pointer drag through hooks. Hooks run on the X
// event loop goroutine.
func (c *Conn) BindDrag(win xproto.Window, buttonStr string, hooks DragHooks) {
	mousebind.Drag(c.XUtil, c.XUtil.Dummy(), win, buttonStr, true,
		func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) (bool, xproto.Cursor) {
			if hooks.Begin == nil {
				return true, 0
			}
			return hooks.Begin(rootX, rootY), 0
		},
		func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
			if hooks.Step != nil {
				hooks.Step(rootX, rootY)
			}
		},
		func(xu *xgbutil.XUtil, rootX, rootY, eventX, eventY int) {
			if hooks.End != nil {
				hooks.End(rootX, rootY)
			}
		})
}

// DetachWindow removes every mouse binding and event callback attached
// to win. Called when a managed window is destroyed or released.
func (c *Conn) DetachWindow(win xproto.Window) {
	mousebind.Detach(c.XUtil, win)
	xevent.Detach(c.XUtil, win)
}

// GrabSequence translates a "super+shift+space" style descriptor into
// the xgbutil grammar ("Mod4-Shift-space"). Unknown tokens pass through
// unchanged so xgbutil reports them.
func GrabSequence(desc string) string {
	parts := strings.Split(desc, "+")
	for i, p := range parts {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "super":
			parts[i] = "Mod4"
		case "alt":
			parts[i] = "Mod1"
		case "ctrl":
			parts[i] = "Control"
		case "shift":
			parts[i] = "Shift"
		default:
			parts[i] = strings.TrimSpace(p)
		}
	}
	return strings.Join(parts, "-")
}

// DragButton builds the button grab string for a modifier descriptor and
// pointer button, e.g. ("super", 1) becomes "Mod4-1".
func DragButton(modifiers string, button int) string {
	mods := GrabSequence(modifiers)
	if mods == "" {
		return strconv.Itoa(button)
	}
	return mods + "-" + strconv.Itoa(button)
}
