package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawMargins struct {
	Top    *int `yaml:"top"`
	Bottom *int `yaml:"bottom"`
	Left   *int `yaml:"left"`
	Right  *int `yaml:"right"`
}

type RawSizeRange struct {
	MinWidth        *int `yaml:"min_width"`
	MinHeight       *int `yaml:"min_height"`
	MaxWidth        *int `yaml:"max_width"`
	MaxHeight       *int `yaml:"max_height"`
	PreferredWidth  *int `yaml:"preferred_width"`
	PreferredHeight *int `yaml:"preferred_height"`
}

type RawGridSpec struct {
	Cols *int `yaml:"cols"`
	Rows *int `yaml:"rows"`
}

type RawDialogSpec struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
	Margin *int `yaml:"margin"`
}

type RawLayoutPreset struct {
	Inherits *string        `yaml:"inherits"`
	Kind     *LayoutKind    `yaml:"kind"`
	Padding  *RawMargins    `yaml:"padding"`
	Sizes    *RawSizeRange  `yaml:"sizes"`
	Grid     *RawGridSpec   `yaml:"grid"`
	Dialog   *RawDialogSpec `yaml:"dialog"`
}

type RawAnimationConfig struct {
	Enabled  *bool   `yaml:"enabled"`
	SwitchMS *int    `yaml:"switch_ms"`
	ExitMS   *int    `yaml:"exit_ms"`
	Easing   *string `yaml:"easing"`
	FPS      *int    `yaml:"fps"`
}

type RawGestureConfig struct {
	MoveModifier   *string `yaml:"move_modifier"`
	ResizeModifier *string `yaml:"resize_modifier"`
	FrameRateHz    *int    `yaml:"frame_rate_hz"`
	EdgeGrip       *int    `yaml:"edge_grip"`
}

type RawConfig struct {
	Include    IncludeList `yaml:"include"`
	Display    *string     `yaml:"display"`
	XAuthority *string     `yaml:"xauthority"`

	LogLevel   *string `yaml:"log_level"`
	ZIndexBase *int    `yaml:"z_index_base"`

	ManageClasses []string `yaml:"manage_classes"`
	IgnoreClasses []string `yaml:"ignore_classes"`

	ScreenPadding *RawMargins `yaml:"screen_padding"`

	DefaultLayout *string                    `yaml:"default_layout"`
	Layouts       map[string]RawLayoutPreset `yaml:"layouts"`
	CycleOrder    []string                   `yaml:"cycle_order"`

	CycleLayoutHotkey        *string `yaml:"cycle_layout_hotkey"`
	CycleLayoutReverseHotkey *string `yaml:"cycle_layout_reverse_hotkey"`
	FrontWindowHotkey        *string `yaml:"front_window_hotkey"`

	Animation *RawAnimationConfig `yaml:"animation"`
	Gestures  *RawGestureConfig   `yaml:"gestures"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.ZIndexBase != nil {
		out.ZIndexBase = overlay.ZIndexBase
	}
	if overlay.ManageClasses != nil {
		out.ManageClasses = overlay.ManageClasses
	}
	if overlay.IgnoreClasses != nil {
		out.IgnoreClasses = overlay.IgnoreClasses
	}
	if overlay.ScreenPadding != nil {
		if out.ScreenPadding == nil {
			out.ScreenPadding = &RawMargins{}
		}
		merged := mergeRawMargins(*out.ScreenPadding, *overlay.ScreenPadding)
		out.ScreenPadding = &merged
	}
	if overlay.DefaultLayout != nil {
		out.DefaultLayout = overlay.DefaultLayout
	}

	if overlay.Layouts != nil {
		if out.Layouts == nil {
			out.Layouts = make(map[string]RawLayoutPreset, len(overlay.Layouts))
		}
		for name, preset := range overlay.Layouts {
			base, ok := out.Layouts[name]
			if !ok {
				out.Layouts[name] = preset
				continue
			}
			out.Layouts[name] = mergeRawLayoutPreset(base, preset)
		}
	}
	if overlay.CycleOrder != nil {
		out.CycleOrder = overlay.CycleOrder
	}

	if overlay.CycleLayoutHotkey != nil {
		out.CycleLayoutHotkey = overlay.CycleLayoutHotkey
	}
	if overlay.CycleLayoutReverseHotkey != nil {
		out.CycleLayoutReverseHotkey = overlay.CycleLayoutReverseHotkey
	}
	if overlay.FrontWindowHotkey != nil {
		out.FrontWindowHotkey = overlay.FrontWindowHotkey
	}

	if overlay.Animation != nil {
		if out.Animation == nil {
			out.Animation = &RawAnimationConfig{}
		}
		if overlay.Animation.Enabled != nil {
			out.Animation.Enabled = overlay.Animation.Enabled
		}
		if overlay.Animation.SwitchMS != nil {
			out.Animation.SwitchMS = overlay.Animation.SwitchMS
		}
		if overlay.Animation.ExitMS != nil {
			out.Animation.ExitMS = overlay.Animation.ExitMS
		}
		if overlay.Animation.Easing != nil {
			out.Animation.Easing = overlay.Animation.Easing
		}
		if overlay.Animation.FPS != nil {
			out.Animation.FPS = overlay.Animation.FPS
		}
	}

	if overlay.Gestures != nil {
		if out.Gestures == nil {
			out.Gestures = &RawGestureConfig{}
		}
		if overlay.Gestures.MoveModifier != nil {
			out.Gestures.MoveModifier = overlay.Gestures.MoveModifier
		}
		if overlay.Gestures.ResizeModifier != nil {
			out.Gestures.ResizeModifier = overlay.Gestures.ResizeModifier
		}
		if overlay.Gestures.FrameRateHz != nil {
			out.Gestures.FrameRateHz = overlay.Gestures.FrameRateHz
		}
		if overlay.Gestures.EdgeGrip != nil {
			out.Gestures.EdgeGrip = overlay.Gestures.EdgeGrip
		}
	}

	return out
}

func mergeRawMargins(base RawMargins, overlay RawMargins) RawMargins {
	out := base
	if overlay.Top != nil {
		out.Top = overlay.Top
	}
	if overlay.Bottom != nil {
		out.Bottom = overlay.Bottom
	}
	if overlay.Left != nil {
		out.Left = overlay.Left
	}
	if overlay.Right != nil {
		out.Right = overlay.Right
	}
	return out
}

func mergeRawSizeRange(base RawSizeRange, overlay RawSizeRange) RawSizeRange {
	out := base
	if overlay.MinWidth != nil {
		out.MinWidth = overlay.MinWidth
	}
	if overlay.MinHeight != nil {
		out.MinHeight = overlay.MinHeight
	}
	if overlay.MaxWidth != nil {
		out.MaxWidth = overlay.MaxWidth
	}
	if overlay.MaxHeight != nil {
		out.MaxHeight = overlay.MaxHeight
	}
	if overlay.PreferredWidth != nil {
		out.PreferredWidth = overlay.PreferredWidth
	}
	if overlay.PreferredHeight != nil {
		out.PreferredHeight = overlay.PreferredHeight
	}
	return out
}

func mergeRawGridSpec(base RawGridSpec, overlay RawGridSpec) RawGridSpec {
	out := base
	if overlay.Cols != nil {
		out.Cols = overlay.Cols
	}
	if overlay.Rows != nil {
		out.Rows = overlay.Rows
	}
	return out
}

func mergeRawDialogSpec(base RawDialogSpec, overlay RawDialogSpec) RawDialogSpec {
	out := base
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.Margin != nil {
		out.Margin = overlay.Margin
	}
	return out
}

func mergeRawLayoutPreset(base RawLayoutPreset, overlay RawLayoutPreset) RawLayoutPreset {
	out := base
	if overlay.Inherits != nil {
		out.Inherits = overlay.Inherits
	}
	if overlay.Kind != nil {
		out.Kind = overlay.Kind
	}
	if overlay.Padding != nil {
		if out.Padding == nil {
			out.Padding = &RawMargins{}
		}
		merged := mergeRawMargins(*out.Padding, *overlay.Padding)
		out.Padding = &merged
	}
	if overlay.Sizes != nil {
		if out.Sizes == nil {
			out.Sizes = &RawSizeRange{}
		}
		merged := mergeRawSizeRange(*out.Sizes, *overlay.Sizes)
		out.Sizes = &merged
	}
	if overlay.Grid != nil {
		if out.Grid == nil {
			out.Grid = &RawGridSpec{}
		}
		merged := mergeRawGridSpec(*out.Grid, *overlay.Grid)
		out.Grid = &merged
	}
	if overlay.Dialog != nil {
		if out.Dialog == nil {
			out.Dialog = &RawDialogSpec{}
		}
		merged := mergeRawDialogSpec(*out.Dialog, *overlay.Dialog)
		out.Dialog = &merged
	}
	return out
}
