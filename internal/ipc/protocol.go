package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus       CommandType = "GET_STATUS"
	CommandGetMonitors     CommandType = "GET_MONITORS"
	CommandListWindows     CommandType = "LIST_WINDOWS"
	CommandListLayouts     CommandType = "LIST_LAYOUTS"
	CommandSetLayout       CommandType = "SET_LAYOUT"
	CommandSetWindowLayout CommandType = "SET_WINDOW_LAYOUT"
	CommandMoveWindow      CommandType = "MOVE_WINDOW"
	CommandResizeWindow    CommandType = "RESIZE_WINDOW"
	CommandFrontWindow     CommandType = "FRONT_WINDOW"
	CommandCloseWindow     CommandType = "CLOSE_WINDOW"
	CommandReload          CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	ActiveLayout  string `json:"active_layout"`
	WindowCount   int    `json:"window_count"`
	Monitor       string `json:"monitor"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DaemonRunning bool   `json:"daemon_running"`
}

// MonitorInfo represents information about a single monitor
type MonitorInfo struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Primary bool   `json:"primary,omitempty"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// WindowInfo describes one managed window.
type WindowInfo struct {
	ID       int    `json:"id"`
	Key      string `json:"key,omitempty"`
	Class    string `json:"class,omitempty"`
	Title    string `json:"title,omitempty"`
	Priority int    `json:"priority"`
	Layout   string `json:"layout"`
	Override bool   `json:"override,omitempty"`

	// Layout-local rect.
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// On-screen pixel rect.
	PixelX      int `json:"pixel_x"`
	PixelY      int `json:"pixel_y"`
	PixelWidth  int `json:"pixel_width"`
	PixelHeight int `json:"pixel_height"`
}

// WindowsData represents the data returned by LIST_WINDOWS
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

type LayoutsData struct {
	Layouts       []string `json:"layouts"`
	DefaultLayout string   `json:"default_layout"`
	ActiveLayout  string   `json:"active_layout"`
}

// WindowRef selects a window by id or, when Key is set, by its alias.
type WindowRef struct {
	ID  int    `json:"id,omitempty"`
	Key string `json:"key,omitempty"`
}

type SetLayoutPayload struct {
	LayoutName string `json:"layout_name"`
}

// SetWindowLayoutPayload installs a per-window layout override. An empty
// layout name clears the override.
type SetWindowLayoutPayload struct {
	Window     WindowRef `json:"window"`
	LayoutName string    `json:"layout_name,omitempty"`
}

type MoveWindowPayload struct {
	Window WindowRef `json:"window"`
	DX     float64   `json:"dx"`
	DY     float64   `json:"dy"`
}

type ResizeWindowPayload struct {
	Window WindowRef `json:"window"`
	Left   float64   `json:"left,omitempty"`
	Top    float64   `json:"top,omitempty"`
	Right  float64   `json:"right,omitempty"`
	Bottom float64   `json:"bottom,omitempty"`
}

type FrontWindowPayload struct {
	Window WindowRef `json:"window"`
}

type CloseWindowPayload struct {
	Window WindowRef `json:"window"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
