package mcp

// StatusInput is the input for the get_status tool.
type StatusInput struct{}

// StatusOutput is the output for the get_status tool.
type StatusOutput struct {
	ActiveLayout  string `json:"active_layout"`
	WindowCount   int    `json:"window_count"`
	Monitor       string `json:"monitor"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowSummary describes one managed window.
type WindowSummary struct {
	ID       int    `json:"id"`
	Key      string `json:"key,omitempty"`
	Class    string `json:"class,omitempty"`
	Title    string `json:"title,omitempty"`
	Layout   string `json:"layout"`
	Override bool   `json:"override"`
	Priority int    `json:"priority"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	PixelX      int `json:"pixel_x"`
	PixelY      int `json:"pixel_y"`
	PixelWidth  int `json:"pixel_width"`
	PixelHeight int `json:"pixel_height"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	// Windows are ordered back to front; the last entry is on top.
	Windows []WindowSummary `json:"windows"`
}

// ListLayoutsInput is the input for the list_layouts tool.
type ListLayoutsInput struct{}

// ListLayoutsOutput is the output for the list_layouts tool.
type ListLayoutsOutput struct {
	Layouts       []string `json:"layouts"`
	DefaultLayout string   `json:"default_layout"`
	ActiveLayout  string   `json:"active_layout"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorSummary describes one physical monitor.
type MonitorSummary struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Primary bool   `json:"primary"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorSummary `json:"monitors"`
}

// SetLayoutInput is the input for the set_layout tool.
type SetLayoutInput struct {
	Layout string `json:"layout" jsonschema:"required,Layout preset name to activate (see list_layouts)"`
}

// SetLayoutOutput is the output for the set_layout tool.
type SetLayoutOutput struct {
	ActiveLayout string `json:"active_layout"`
}

// WindowRefInput identifies the target window by id or key.
type WindowRefInput struct {
	WindowID int    `json:"window_id,omitempty" jsonschema:"Window id from list_windows"`
	Key      string `json:"key,omitempty" jsonschema:"Window key alias; takes precedence over window_id when set"`
}

// SetWindowLayoutInput is the input for the set_window_layout tool.
type SetWindowLayoutInput struct {
	WindowRefInput
	Layout string `json:"layout,omitempty" jsonschema:"Layout preset name for the per-window override; empty clears the override"`
}

// SetWindowLayoutOutput is the output for the set_window_layout tool.
type SetWindowLayoutOutput struct {
	Layout  string `json:"layout"`
	Cleared bool   `json:"cleared,omitempty"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	WindowRefInput
	DX float64 `json:"dx" jsonschema:"Horizontal delta in pixels, positive moves right"`
	DY float64 `json:"dy" jsonschema:"Vertical delta in pixels, positive moves down"`
}

// MoveWindowOutput reports the window's rect after the move.
type MoveWindowOutput struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ResizeWindowInput is the input for the resize_window tool.
type ResizeWindowInput struct {
	WindowRefInput
	Left   float64 `json:"left,omitempty" jsonschema:"Left edge delta in pixels, positive moves the edge right"`
	Top    float64 `json:"top,omitempty" jsonschema:"Top edge delta in pixels, positive moves the edge down"`
	Right  float64 `json:"right,omitempty" jsonschema:"Right edge delta in pixels, positive moves the edge right"`
	Bottom float64 `json:"bottom,omitempty" jsonschema:"Bottom edge delta in pixels, positive moves the edge down"`
}

// ResizeWindowOutput reports the window's rect after the resize.
type ResizeWindowOutput struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FocusWindowInput is the input for the focus_window tool.
type FocusWindowInput struct {
	WindowRefInput
}

// FocusWindowOutput is the output for the focus_window tool.
type FocusWindowOutput struct {
	Fronted bool `json:"fronted"`
}

// CloseWindowInput is the input for the close_window tool.
type CloseWindowInput struct {
	WindowRefInput
}

// CloseWindowOutput is the output for the close_window tool.
type CloseWindowOutput struct {
	// Requested means the close was delivered; the window leaves the
	// managed set once the client actually exits.
	Requested bool `json:"requested"`
}
