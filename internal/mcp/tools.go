package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/floatwm/internal/ipc"
)

func (in WindowRefInput) ref() ipc.WindowRef {
	return ipc.WindowRef{ID: in.WindowID, Key: in.Key}
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ StatusInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	st, err := s.daemon.GetStatus()
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{
		ActiveLayout:  st.ActiveLayout,
		WindowCount:   st.WindowCount,
		Monitor:       st.Monitor,
		UptimeSeconds: st.UptimeSeconds,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	wd, err := s.daemon.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	out := ListWindowsOutput{Windows: make([]WindowSummary, 0, len(wd.Windows))}
	for _, info := range wd.Windows {
		out.Windows = append(out.Windows, WindowSummary{
			ID:          info.ID,
			Key:         info.Key,
			Class:       info.Class,
			Title:       info.Title,
			Layout:      info.Layout,
			Override:    info.Override,
			Priority:    info.Priority,
			X:           info.X,
			Y:           info.Y,
			Width:       info.Width,
			Height:      info.Height,
			PixelX:      info.PixelX,
			PixelY:      info.PixelY,
			PixelWidth:  info.PixelWidth,
			PixelHeight: info.PixelHeight,
		})
	}
	return nil, out, nil
}

func (s *Server) handleListLayouts(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListLayoutsInput) (*mcpsdk.CallToolResult, ListLayoutsOutput, error) {
	ld, err := s.daemon.ListLayouts()
	if err != nil {
		return nil, ListLayoutsOutput{}, err
	}
	return nil, ListLayoutsOutput{
		Layouts:       ld.Layouts,
		DefaultLayout: ld.DefaultLayout,
		ActiveLayout:  ld.ActiveLayout,
	}, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	md, err := s.daemon.GetMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}
	out := ListMonitorsOutput{Monitors: make([]MonitorSummary, 0, len(md.Monitors))}
	for _, mon := range md.Monitors {
		out.Monitors = append(out.Monitors, MonitorSummary{
			ID:      mon.ID,
			Name:    mon.Name,
			X:       mon.X,
			Y:       mon.Y,
			Width:   mon.Width,
			Height:  mon.Height,
			Primary: mon.Primary,
		})
	}
	return nil, out, nil
}

func (s *Server) handleSetLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args SetLayoutInput) (*mcpsdk.CallToolResult, SetLayoutOutput, error) {
	if err := s.daemon.SetLayout(args.Layout); err != nil {
		return nil, SetLayoutOutput{}, err
	}
	s.logger.Info("layout activated via mcp", "layout", args.Layout)
	return nil, SetLayoutOutput{ActiveLayout: args.Layout}, nil
}

func (s *Server) handleSetWindowLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args SetWindowLayoutInput) (*mcpsdk.CallToolResult, SetWindowLayoutOutput, error) {
	if err := s.daemon.SetWindowLayout(args.ref(), args.Layout); err != nil {
		return nil, SetWindowLayoutOutput{}, err
	}
	if args.Layout == "" {
		return nil, SetWindowLayoutOutput{Cleared: true}, nil
	}
	return nil, SetWindowLayoutOutput{Layout: args.Layout}, nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, MoveWindowOutput, error) {
	ref := args.ref()
	if err := s.daemon.MoveWindow(ref, args.DX, args.DY); err != nil {
		return nil, MoveWindowOutput{}, err
	}
	info, _ := s.windowAfter(ref)
	return nil, MoveWindowOutput{X: info.X, Y: info.Y, Width: info.Width, Height: info.Height}, nil
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, ResizeWindowOutput, error) {
	ref := args.ref()
	if err := s.daemon.ResizeWindow(ref, args.Left, args.Top, args.Right, args.Bottom); err != nil {
		return nil, ResizeWindowOutput{}, err
	}
	info, _ := s.windowAfter(ref)
	return nil, ResizeWindowOutput{X: info.X, Y: info.Y, Width: info.Width, Height: info.Height}, nil
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args FocusWindowInput) (*mcpsdk.CallToolResult, FocusWindowOutput, error) {
	if err := s.daemon.FrontWindow(args.ref()); err != nil {
		return nil, FocusWindowOutput{}, err
	}
	return nil, FocusWindowOutput{Fronted: true}, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args CloseWindowInput) (*mcpsdk.CallToolResult, CloseWindowOutput, error) {
	if err := s.daemon.CloseWindow(args.ref()); err != nil {
		return nil, CloseWindowOutput{}, err
	}
	return nil, CloseWindowOutput{Requested: true}, nil
}

// windowAfter refetches a window to report its rect after a mutation.
// The mutation has already succeeded, so a failed refetch degrades to a
// zero rect rather than an error.
func (s *Server) windowAfter(ref ipc.WindowRef) (ipc.WindowInfo, bool) {
	wd, err := s.daemon.ListWindows()
	if err != nil {
		s.logger.Debug("window refetch failed", "error", err)
		return ipc.WindowInfo{}, false
	}
	for _, info := range wd.Windows {
		if ref.Key != "" {
			if info.Key == ref.Key {
				return info, true
			}
			continue
		}
		if info.ID == ref.ID {
			return info, true
		}
	}
	return ipc.WindowInfo{}, false
}
