package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/1broseidon/floatwm/internal/runtimepath"
)

// Handler executes IPC commands against the running daemon. All methods
// are invoked from connection goroutines; implementations serialize
// internally.
type Handler interface {
	Status() (*StatusData, error)
	Monitors() (*MonitorsData, error)
	ListWindows() (*WindowsData, error)
	ListLayouts() (*LayoutsData, error)
	SetLayout(name string) error
	SetWindowLayout(ref WindowRef, name string) error
	MoveWindow(ref WindowRef, dx, dy float64) error
	ResizeWindow(ref WindowRef, left, top, right, bottom float64) error
	FrontWindow(ref WindowRef) error
	CloseWindow(ref WindowRef) error
	Reload() error
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	handler      Handler
	logger       *slog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(handler Handler, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		handler:    handler,
		logger:     logger,
	}, nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string { return s.socketPath }

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("ipc server listening", "socket", s.socketPath)

	// Accept connections
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.logger.Error("ipc accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Error("ipc read error", "error", err)
		return
	}

	// Parse request
	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Handle command
	resp := s.handleCommand(req)

	// Send response
	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Error("ipc marshal error", "error", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Error("ipc write error", "error", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return dataResponse(s.handler.Status())
	case CommandGetMonitors:
		return dataResponse(s.handler.Monitors())
	case CommandListWindows:
		return dataResponse(s.handler.ListWindows())
	case CommandListLayouts:
		return dataResponse(s.handler.ListLayouts())
	case CommandSetLayout:
		return s.handleSetLayout(req.Payload)
	case CommandSetWindowLayout:
		return s.handleSetWindowLayout(req.Payload)
	case CommandMoveWindow:
		return s.handleMoveWindow(req.Payload)
	case CommandResizeWindow:
		return s.handleResizeWindow(req.Payload)
	case CommandFrontWindow:
		return s.handleFrontWindow(req.Payload)
	case CommandCloseWindow:
		return s.handleCloseWindow(req.Payload)
	case CommandReload:
		return emptyResponse(s.handler.Reload())
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleSetLayout(payload json.RawMessage) *Response {
	var p SetLayoutPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid set layout payload: %v", err))
	}
	if p.LayoutName == "" {
		return NewErrorResponse("layout_name is required")
	}
	return emptyResponse(s.handler.SetLayout(p.LayoutName))
}

func (s *Server) handleSetWindowLayout(payload json.RawMessage) *Response {
	var p SetWindowLayoutPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid window layout payload: %v", err))
	}
	return emptyResponse(s.handler.SetWindowLayout(p.Window, p.LayoutName))
}

func (s *Server) handleMoveWindow(payload json.RawMessage) *Response {
	var p MoveWindowPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid move payload: %v", err))
	}
	return emptyResponse(s.handler.MoveWindow(p.Window, p.DX, p.DY))
}

func (s *Server) handleResizeWindow(payload json.RawMessage) *Response {
	var p ResizeWindowPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid resize payload: %v", err))
	}
	return emptyResponse(s.handler.ResizeWindow(p.Window, p.Left, p.Top, p.Right, p.Bottom))
}

func (s *Server) handleFrontWindow(payload json.RawMessage) *Response {
	var p FrontWindowPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid front payload: %v", err))
	}
	return emptyResponse(s.handler.FrontWindow(p.Window))
}

func (s *Server) handleCloseWindow(payload json.RawMessage) *Response {
	var p CloseWindowPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid close payload: %v", err))
	}
	return emptyResponse(s.handler.CloseWindow(p.Window))
}

func dataResponse[T any](data T, err error) *Response {
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, merr := NewOKResponse(data)
	if merr != nil {
		return NewErrorResponse(merr.Error())
	}
	return resp
}

func emptyResponse(err error) *Response {
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
