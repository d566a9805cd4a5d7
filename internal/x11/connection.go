// Package x11 wraps the xgb/xgbutil connection and the window-system
// operations the daemon needs: monitor geometry, client enumeration,
// placement, stacking, and pointer drag plumbing.
package x11

import (
	"fmt"
	"os"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Conn manages the X11 connection and core X resources.
type Conn struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// Connect opens a connection to the X server. An empty display falls
// back to $DISPLAY; a non-empty xauthority overrides $XAUTHORITY before
// connecting.
func Connect(display, xauthority string) (*Conn, error) {
	if xauthority != "" {
		if err := os.Setenv("XAUTHORITY", xauthority); err != nil {
			return nil, fmt.Errorf("set XAUTHORITY: %w", err)
		}
	}

	var xu *xgbutil.XUtil
	var err error
	if display != "" {
		xu, err = xgbutil.NewConnDisplay(display)
	} else {
		xu, err = xgbutil.NewConn()
	}
	if err != nil {
		return nil, err
	}

	// Both binding modules are needed: keybind for global hotkeys,
	// mousebind for the drag grabs on managed windows.
	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	return &Conn{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// EventLoop starts the main X11 event loop (blocking).
func (c *Conn) EventLoop() {
	xevent.Main(c.XUtil)
}

// Quit asks the event loop to stop after the current event.
func (c *Conn) Quit() {
	xevent.Quit(c.XUtil)
}

// Close disconnects from the X server.
func (c *Conn) Close() {
	c.XUtil.Conn().Close()
}
