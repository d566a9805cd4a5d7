package config

import (
	"fmt"
	"strings"
)

// ValidationError carries the YAML path of the offending value and, when
// the value came from a file, its position.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig merges raw values over the defaults. The second
// return value maps each layout name to the builtin it is based on.
func BuildEffectiveConfig(raw RawConfig) (*Config, map[string]string, error) {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = *raw.XAuthority
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.ZIndexBase != nil {
		cfg.ZIndexBase = *raw.ZIndexBase
	}
	if raw.ManageClasses != nil {
		cfg.ManageClasses = raw.ManageClasses
	}
	if raw.IgnoreClasses != nil {
		cfg.IgnoreClasses = raw.IgnoreClasses
	}
	if raw.ScreenPadding != nil {
		cfg.ScreenPadding = Margins{
			Top:    derefInt(raw.ScreenPadding.Top, 0),
			Bottom: derefInt(raw.ScreenPadding.Bottom, 0),
			Left:   derefInt(raw.ScreenPadding.Left, 0),
			Right:  derefInt(raw.ScreenPadding.Right, 0),
		}
	}
	if raw.DefaultLayout != nil {
		cfg.DefaultLayout = *raw.DefaultLayout
	}
	if raw.CycleOrder != nil {
		cfg.CycleOrder = raw.CycleOrder
	}

	if raw.CycleLayoutHotkey != nil {
		cfg.CycleLayoutHotkey = *raw.CycleLayoutHotkey
	}
	if raw.CycleLayoutReverseHotkey != nil {
		cfg.CycleLayoutReverseHotkey = *raw.CycleLayoutReverseHotkey
	}
	if raw.FrontWindowHotkey != nil {
		cfg.FrontWindowHotkey = *raw.FrontWindowHotkey
	}

	if raw.Animation != nil {
		if raw.Animation.Enabled != nil {
			cfg.Animation.Enabled = *raw.Animation.Enabled
		}
		if raw.Animation.SwitchMS != nil {
			cfg.Animation.SwitchMS = *raw.Animation.SwitchMS
		}
		if raw.Animation.ExitMS != nil {
			cfg.Animation.ExitMS = *raw.Animation.ExitMS
		}
		if raw.Animation.Easing != nil {
			cfg.Animation.Easing = *raw.Animation.Easing
		}
		if raw.Animation.FPS != nil {
			cfg.Animation.FPS = *raw.Animation.FPS
		}
	}

	if raw.Gestures != nil {
		if raw.Gestures.MoveModifier != nil {
			cfg.Gestures.MoveModifier = *raw.Gestures.MoveModifier
		}
		if raw.Gestures.ResizeModifier != nil {
			cfg.Gestures.ResizeModifier = *raw.Gestures.ResizeModifier
		}
		if raw.Gestures.FrameRateHz != nil {
			cfg.Gestures.FrameRateHz = *raw.Gestures.FrameRateHz
		}
		if raw.Gestures.EdgeGrip != nil {
			cfg.Gestures.EdgeGrip = *raw.Gestures.EdgeGrip
		}
	}

	layoutBases, err := applyLayouts(cfg, raw)
	if err != nil {
		return nil, nil, err
	}

	return cfg, layoutBases, nil
}

func applyLayouts(cfg *Config, raw RawConfig) (map[string]string, error) {
	builtin := BuiltinLayouts()

	// Start with built-ins.
	cfg.Layouts = make(map[string]LayoutPreset, len(builtin))
	for name, preset := range builtin {
		cfg.Layouts[name] = preset
	}

	layoutBases := make(map[string]string)
	for name := range cfg.Layouts {
		layoutBases[name] = name
	}

	// Apply user preset patches.
	for name, patch := range raw.Layouts {
		baseName, basePreset, err := selectPresetBase(name, patch, builtin)
		if err != nil {
			return nil, err
		}

		merged := mergePresetPatch(basePreset, patch)
		if err := validatePreset(&merged); err != nil {
			return nil, &ValidationError{Path: "layouts." + name, Err: err}
		}

		cfg.Layouts[name] = merged
		layoutBases[name] = baseName
	}

	return layoutBases, nil
}

func selectPresetBase(name string, patch RawLayoutPreset, builtin map[string]LayoutPreset) (string, LayoutPreset, error) {
	ref := ""
	if patch.Inherits != nil {
		ref = strings.TrimSpace(*patch.Inherits)
	}

	baseName := DefaultBuiltinLayout
	if _, ok := builtin[name]; ok {
		baseName = name
	}

	if ref != "" {
		const prefix = "builtin:"
		if !strings.HasPrefix(ref, prefix) {
			return "", LayoutPreset{}, &ValidationError{
				Path: "layouts." + name + ".inherits",
				Err:  fmt.Errorf("inherits must be %q-prefixed (builtin-only), got %q", prefix, ref),
			}
		}
		baseName = strings.TrimSpace(strings.TrimPrefix(ref, prefix))
	}

	basePreset, ok := builtin[baseName]
	if !ok {
		return "", LayoutPreset{}, &ValidationError{
			Path: "layouts." + name + ".inherits",
			Err:  fmt.Errorf("unknown builtin layout %q", baseName),
		}
	}

	return baseName, basePreset, nil
}

func mergePresetPatch(base LayoutPreset, patch RawLayoutPreset) LayoutPreset {
	out := base

	if patch.Kind != nil {
		out.Kind = *patch.Kind
	}
	if patch.Padding != nil {
		if patch.Padding.Top != nil {
			out.Padding.Top = *patch.Padding.Top
		}
		if patch.Padding.Bottom != nil {
			out.Padding.Bottom = *patch.Padding.Bottom
		}
		if patch.Padding.Left != nil {
			out.Padding.Left = *patch.Padding.Left
		}
		if patch.Padding.Right != nil {
			out.Padding.Right = *patch.Padding.Right
		}
	}
	if patch.Sizes != nil {
		out.Sizes = SizeRange{
			MinWidth:        derefInt(patch.Sizes.MinWidth, base.Sizes.MinWidth),
			MinHeight:       derefInt(patch.Sizes.MinHeight, base.Sizes.MinHeight),
			MaxWidth:        derefInt(patch.Sizes.MaxWidth, base.Sizes.MaxWidth),
			MaxHeight:       derefInt(patch.Sizes.MaxHeight, base.Sizes.MaxHeight),
			PreferredWidth:  derefInt(patch.Sizes.PreferredWidth, base.Sizes.PreferredWidth),
			PreferredHeight: derefInt(patch.Sizes.PreferredHeight, base.Sizes.PreferredHeight),
		}
	}
	if patch.Grid != nil {
		out.Grid = GridSpec{
			Cols: derefInt(patch.Grid.Cols, base.Grid.Cols),
			Rows: derefInt(patch.Grid.Rows, base.Grid.Rows),
		}
	}
	if patch.Dialog != nil {
		out.Dialog = DialogSpec{
			Width:  derefInt(patch.Dialog.Width, base.Dialog.Width),
			Height: derefInt(patch.Dialog.Height, base.Dialog.Height),
			Margin: derefInt(patch.Dialog.Margin, base.Dialog.Margin),
		}
	}

	return out
}

func derefInt(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
