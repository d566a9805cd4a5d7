// Package mcp exposes daemon control as Model Context Protocol tools,
// so MCP clients can inspect and drive window placement through the
// daemon's IPC socket.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/floatwm/internal/ipc"
)

const (
	ServerName    = "floatwm"
	ServerVersion = "0.1.0"
)

// Daemon is the control surface the tools call. *ipc.Client implements
// it; tests substitute a recording stub.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	GetMonitors() (*ipc.MonitorsData, error)
	ListWindows() (*ipc.WindowsData, error)
	ListLayouts() (*ipc.LayoutsData, error)
	SetLayout(name string) error
	SetWindowLayout(ref ipc.WindowRef, name string) error
	MoveWindow(ref ipc.WindowRef, dx, dy float64) error
	ResizeWindow(ref ipc.WindowRef, left, top, right, bottom float64) error
	FrontWindow(ref ipc.WindowRef) error
	CloseWindow(ref ipc.WindowRef) error
}

// Server is the MCP server bridging tools onto the daemon.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
	logger    *slog.Logger
}

// NewServer builds the server and registers its tool set.
func NewServer(daemon Daemon, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{daemon: daemon, logger: logger}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP on stdio, blocking until the context is done or the
// transport closes.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Get daemon status: active layout, managed window count, tracked monitor and uptime.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List managed windows back to front with their geometry, layout and stacking priority. Window ids returned here feed the other window tools.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_layouts",
		Description: "List the configured layout presets plus the default and currently active one.",
	}, s.handleListLayouts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List the physical monitors with their geometry; the daemon tracks one of them.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_layout",
		Description: "Activate a layout preset for every managed window without a per-window override. Windows re-derive their placement under the new policy.",
	}, s.handleSetLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_window_layout",
		Description: "Install a per-window layout override, shielding that window from collection layout changes. An empty layout clears the override and rejoins the collection layout.",
	}, s.handleSetWindowLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window by a pixel delta. The move runs through the window's active layout, so bounds clamping and grid snapping apply exactly as they do for pointer drags.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize a window by per-edge pixel deltas. Size constraints and bounds clamping of the active layout apply; edges that are not given stay put.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Raise a window to the front of the stack and give it input focus.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Ask a window's client to close politely (WM_DELETE_WINDOW). The window stays managed until the client actually exits.",
	}, s.handleCloseWindow)
}
