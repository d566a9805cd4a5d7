package x11

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ClientRect is a window geometry in root coordinates.
type ClientRect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Client is one top-level window as the daemon sees it.
type Client struct {
	Window xproto.Window
	Class  string
	Title  string
	Rect   ClientRect
}

// ListClients returns the normal application windows on the current
// desktop, skipping docks, popups, and hidden or fullscreen windows.
func (c *Conn) ListClients() ([]Client, error) {
	wins, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("get client list: %w", err)
	}

	currentDesktop, desktopErr := ewmh.CurrentDesktopGet(c.XUtil)

	clients := make([]Client, 0, len(wins))
	for _, win := range wins {
		if !c.isNormalWindow(win) || c.isHiddenOrFullscreen(win) {
			continue
		}
		if desktopErr == nil {
			if d, err := ewmh.WmDesktopGet(c.XUtil, win); err == nil &&
				d != 0xFFFFFFFF && d != currentDesktop {
				continue
			}
		}
		rect, ok := c.clientRect(win)
		if !ok {
			continue
		}
		clients = append(clients, Client{
			Window: win,
			Class:  c.WindowClass(win),
			Title:  c.WindowTitle(win),
			Rect:   rect,
		})
	}

	sort.Slice(clients, func(i, j int) bool {
		return clients[i].Window < clients[j].Window
	})
	return clients, nil
}

// WindowClass returns the window's WM_CLASS class name, or "".
func (c *Conn) WindowClass(win xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, win)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

// WindowTitle returns the window's title, preferring _NET_WM_NAME over
// the ICCCM name.
func (c *Conn) WindowTitle(win xproto.Window) string {
	if title, err := ewmh.WmNameGet(c.XUtil, win); err == nil {
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if title, err := icccm.WmNameGet(c.XUtil, win); err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

// WindowRect returns the window's geometry in root coordinates.
func (c *Conn) WindowRect(win xproto.Window) (ClientRect, bool) {
	return c.clientRect(win)
}

func (c *Conn) clientRect(win xproto.Window) (ClientRect, bool) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return ClientRect{}, false
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), win, c.Root, 0, 0).Reply()
	if err != nil {
		return ClientRect{}, false
	}
	return ClientRect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, true
}

// MoveResize places a window at the given root-coordinate geometry,
// unmaximizing it first so the WM honors the request.
func (c *Conn) MoveResize(win xproto.Window, x, y, width, height int) error {
	c.unmaximize(win)

	if err := ewmh.MoveresizeWindow(c.XUtil, win, x, y, width, height); err != nil {
		// Some WMs reject the EWMH request; fall back to configuring
		// the window directly.
		xwindow.New(c.XUtil, win).MoveResize(x, y, width, height)
	}
	return nil
}

func (c *Conn) unmaximize(win xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			ewmh.WmStateReq(c.XUtil, win, 0, state)
		}
	}
}

// Raise moves the window to the top of the stacking order.
func (c *Conn) Raise(win xproto.Window) error {
	return xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		win,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check()
}

// Focus activates a window via _NET_ACTIVE_WINDOW. The client message is
// built manually; the xgbutil ewmh helper panics on this library version
// over a uint/int type assertion.
func (c *Conn) Focus(win xproto.Window) error {
	atom, err := c.internAtom("_NET_ACTIVE_WINDOW")
	if err != nil {
		return err
	}

	const sourceIndication = 2 // direct user action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}
	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// CloseWindow asks the client to close gracefully via WM_DELETE_WINDOW.
func (c *Conn) CloseWindow(win xproto.Window) error {
	deleteAtom, err := c.internAtom("WM_DELETE_WINDOW")
	if err != nil {
		return err
	}
	protocolsAtom, err := c.internAtom("WM_PROTOCOLS")
	if err != nil {
		return err
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   protocolsAtom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(deleteAtom), 0, 0, 0, 0}),
	}
	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		win,
		xproto.EventMaskNoEvent,
		string(ev.Bytes()),
	).Check()
}

// ActiveWindow returns the focused window, or 0.
func (c *Conn) ActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// SetOpacity sets _NET_WM_WINDOW_OPACITY, which compositors honor for
// whole-window fades. Full opacity removes the property again.
func (c *Conn) SetOpacity(win xproto.Window, opacity float64) error {
	if opacity >= 1 {
		atom, err := c.internAtom("_NET_WM_WINDOW_OPACITY")
		if err != nil {
			return err
		}
		return xproto.DeletePropertyChecked(c.XUtil.Conn(), win, atom).Check()
	}
	if opacity < 0 {
		opacity = 0
	}
	return xprop.ChangeProp32(c.XUtil, win, "_NET_WM_WINDOW_OPACITY", "CARDINAL",
		uint(opacity*0xffffffff))
}

func (c *Conn) internAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(c.XUtil.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern %s: %w", name, err)
	}
	return reply.Atom, nil
}

func (c *Conn) isNormalWindow(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return true
	}
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION",
			"_NET_WM_WINDOW_TYPE_TOOLTIP",
			"_NET_WM_WINDOW_TYPE_MENU",
			"_NET_WM_WINDOW_TYPE_DROPDOWN_MENU",
			"_NET_WM_WINDOW_TYPE_POPUP_MENU":
			return false
		}
	}
	return len(types) == 0
}

func (c *Conn) isHiddenOrFullscreen(win xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_HIDDEN", "_NET_WM_STATE_FULLSCREEN":
			return true
		}
	}
	return false
}
