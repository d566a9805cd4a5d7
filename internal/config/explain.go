package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	display
//	log_level
//	z_index_base
//	default_layout
//	cycle_layout_hotkey
//	screen_padding.top
//	manage_classes
//	animation.switch_ms
//	gestures.move_modifier
//	layouts.<name>.kind
//	layouts.<name>.grid.cols
//	layouts.<name>.sizes.min_width
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path file source wins.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}

	// Otherwise infer from category.
	if strings.HasPrefix(path, "layouts.") {
		name := layoutNameFromPath(path)
		base := ""
		if name != "" {
			base = res.LayoutBases[name]
		}
		return value, Source{Kind: SourceBuiltin, Name: base}, nil
	}

	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func layoutNameFromPath(path string) string {
	parts := strings.Split(path, ".")
	if len(parts) < 2 {
		return ""
	}
	if parts[0] != "layouts" {
		return ""
	}
	return parts[1]
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	switch parts[0] {
	case "display":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.Display, nil
	case "xauthority":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.XAuthority, nil
	case "log_level":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.LogLevel, nil
	case "z_index_base":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.ZIndexBase, nil
	case "manage_classes":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.ManageClasses, nil
	case "ignore_classes":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.IgnoreClasses, nil
	case "default_layout":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.DefaultLayout, nil
	case "cycle_order":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.CycleOrder, nil
	case "cycle_layout_hotkey":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.CycleLayoutHotkey, nil
	case "cycle_layout_reverse_hotkey":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.CycleLayoutReverseHotkey, nil
	case "front_window_hotkey":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.FrontWindowHotkey, nil
	case "screen_padding":
		if len(parts) == 1 {
			return cfg.ScreenPadding, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return lookupMargins(cfg.ScreenPadding, parts[1], path)
	case "animation":
		if len(parts) == 1 {
			return cfg.Animation, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "enabled":
			return cfg.Animation.Enabled, nil
		case "switch_ms":
			return cfg.Animation.SwitchMS, nil
		case "exit_ms":
			return cfg.Animation.ExitMS, nil
		case "easing":
			return cfg.Animation.Easing, nil
		case "fps":
			return cfg.Animation.FPS, nil
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	case "gestures":
		if len(parts) == 1 {
			return cfg.Gestures, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "move_modifier":
			return cfg.Gestures.MoveModifier, nil
		case "resize_modifier":
			return cfg.Gestures.ResizeModifier, nil
		case "frame_rate_hz":
			return cfg.Gestures.FrameRateHz, nil
		case "edge_grip":
			return cfg.Gestures.EdgeGrip, nil
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	case "layouts":
		if len(parts) < 2 {
			return cfg.Layouts, nil
		}
		name := parts[1]
		preset, ok := cfg.Layouts[name]
		if !ok {
			return nil, fmt.Errorf("unknown layout %q", name)
		}
		if len(parts) == 2 {
			return preset, nil
		}
		switch parts[2] {
		case "kind":
			if len(parts) != 3 {
				return nil, fmt.Errorf("unknown path: %s", path)
			}
			return preset.Kind, nil
		case "padding":
			if len(parts) == 3 {
				return preset.Padding, nil
			}
			if len(parts) != 4 {
				return nil, fmt.Errorf("unknown path: %s", path)
			}
			return lookupMargins(preset.Padding, parts[3], path)
		case "sizes":
			if len(parts) == 3 {
				return preset.Sizes, nil
			}
			if len(parts) != 4 {
				return nil, fmt.Errorf("unknown path: %s", path)
			}
			switch parts[3] {
			case "min_width":
				return preset.Sizes.MinWidth, nil
			case "min_height":
				return preset.Sizes.MinHeight, nil
			case "max_width":
				return preset.Sizes.MaxWidth, nil
			case "max_height":
				return preset.Sizes.MaxHeight, nil
			case "preferred_width":
				return preset.Sizes.PreferredWidth, nil
			case "preferred_height":
				return preset.Sizes.PreferredHeight, nil
			default:
				return nil, fmt.Errorf("unknown path: %s", path)
			}
		case "grid":
			if len(parts) == 3 {
				return preset.Grid, nil
			}
			if len(parts) != 4 {
				return nil, fmt.Errorf("unknown path: %s", path)
			}
			switch parts[3] {
			case "cols":
				return preset.Grid.Cols, nil
			case "rows":
				return preset.Grid.Rows, nil
			default:
				return nil, fmt.Errorf("unknown path: %s", path)
			}
		case "dialog":
			if len(parts) == 3 {
				return preset.Dialog, nil
			}
			if len(parts) != 4 {
				return nil, fmt.Errorf("unknown path: %s", path)
			}
			switch parts[3] {
			case "width":
				return preset.Dialog.Width, nil
			case "height":
				return preset.Dialog.Height, nil
			case "margin":
				return preset.Dialog.Margin, nil
			default:
				return nil, fmt.Errorf("unknown path: %s", path)
			}
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}

func lookupMargins(m Margins, field string, path string) (any, error) {
	switch field {
	case "top":
		return m.Top, nil
	case "bottom":
		return m.Bottom, nil
	case "left":
		return m.Left, nil
	case "right":
		return m.Right, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
