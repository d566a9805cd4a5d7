package config

import (
	"fmt"
	"sort"
	"strings"
)

// Margins represents inset adjustments in pixels.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// LayoutKind selects the placement policy a preset builds.
type LayoutKind string

const (
	LayoutFloating    LayoutKind = "floating"    // Free-form, windows keep whatever rect they are given.
	LayoutConstrained LayoutKind = "constrained" // Clamped to the monitor work area with size limits.
	LayoutGrid        LayoutKind = "grid"        // Constrained placement snapped to a cell grid.
	LayoutDialog      LayoutKind = "dialog"      // Single centered rect, no move/resize.
)

// SizeRange bounds window sizes in a constrained preset. Zero maximums
// mean unlimited.
type SizeRange struct {
	MinWidth        int `yaml:"min_width"`
	MinHeight       int `yaml:"min_height"`
	MaxWidth        int `yaml:"max_width"`
	MaxHeight       int `yaml:"max_height"`
	PreferredWidth  int `yaml:"preferred_width"`
	PreferredHeight int `yaml:"preferred_height"`
}

// GridSpec defines the cell grid of a grid preset.
type GridSpec struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// DialogSpec defines the centered rect of a dialog preset.
type DialogSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Margin int `yaml:"margin"`
}

// LayoutPreset is one named layout configuration.
type LayoutPreset struct {
	Kind    LayoutKind `yaml:"kind"`
	Padding Margins    `yaml:"padding"`
	Sizes   SizeRange  `yaml:"sizes,omitempty"`
	Grid    GridSpec   `yaml:"grid,omitempty"`
	Dialog  DialogSpec `yaml:"dialog,omitempty"`
}

// AnimationConfig tunes window transitions.
type AnimationConfig struct {
	// Enabled turns switch/exit transitions on or off entirely.
	Enabled bool `yaml:"enabled"`
	// SwitchMS is the duration of layout-switch glides in milliseconds.
	SwitchMS int `yaml:"switch_ms"`
	// ExitMS is the duration of the close fade in milliseconds.
	ExitMS int `yaml:"exit_ms"`
	// Easing is one of: linear, ease, ease-in, ease-out, ease-in-out.
	Easing string `yaml:"easing"`
	// FPS caps playback frames per second.
	FPS int `yaml:"fps"`
}

// GestureConfig tunes pointer-driven move and resize.
type GestureConfig struct {
	// MoveModifier is the held modifier that turns a primary-button drag
	// into a window move, e.g. "super".
	MoveModifier string `yaml:"move_modifier"`
	// ResizeModifier turns a primary-button drag into an edge resize.
	ResizeModifier string `yaml:"resize_modifier"`
	// FrameRateHz caps gesture frame delivery.
	FrameRateHz int `yaml:"frame_rate_hz"`
	// EdgeGrip is the pixel band near a window edge that selects that
	// edge for resizing.
	EdgeGrip int `yaml:"edge_grip"`
}

// Config is the effective daemon configuration after defaults, includes
// and overrides are merged.
type Config struct {
	Display    string `yaml:"display,omitempty"`
	XAuthority string `yaml:"xauthority,omitempty"`

	LogLevel   string `yaml:"log_level"`
	ZIndexBase int    `yaml:"z_index_base"`

	// ManageClasses limits adoption to the listed WM_CLASS values; empty
	// means every mappable client is managed.
	ManageClasses []string `yaml:"manage_classes,omitempty"`
	// IgnoreClasses are never adopted even when ManageClasses is empty.
	IgnoreClasses []string `yaml:"ignore_classes,omitempty"`

	// ScreenPadding insets the monitor work area before layouts see it.
	ScreenPadding Margins `yaml:"screen_padding"`

	DefaultLayout string                  `yaml:"default_layout"`
	Layouts       map[string]LayoutPreset `yaml:"layouts"`
	// CycleOrder names the presets the cycle hotkeys walk through; empty
	// falls back to all preset names sorted.
	CycleOrder []string `yaml:"cycle_order,omitempty"`

	CycleLayoutHotkey        string `yaml:"cycle_layout_hotkey"`
	CycleLayoutReverseHotkey string `yaml:"cycle_layout_reverse_hotkey"`
	FrontWindowHotkey        string `yaml:"front_window_hotkey"`

	Animation AnimationConfig `yaml:"animation"`
	Gestures  GestureConfig   `yaml:"gestures"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		ZIndexBase:    0,
		ScreenPadding: Margins{},
		DefaultLayout: DefaultBuiltinLayout,
		Layouts:       BuiltinLayouts(),

		CycleLayoutHotkey:        "super+space",
		CycleLayoutReverseHotkey: "super+shift+space",
		FrontWindowHotkey:        "super+f",

		Animation: AnimationConfig{
			Enabled:  true,
			SwitchMS: 220,
			ExitMS:   150,
			Easing:   "ease-in-out",
			FPS:      60,
		},
		Gestures: GestureConfig{
			MoveModifier:   "super",
			ResizeModifier: "super+shift",
			FrameRateHz:    60,
			EdgeGrip:       16,
		},
	}
}

// CycleNames returns the layout names the cycle hotkeys walk, in order.
func (c *Config) CycleNames() []string {
	if len(c.CycleOrder) > 0 {
		out := make([]string, len(c.CycleOrder))
		copy(out, c.CycleOrder)
		return out
	}
	names := make([]string, 0, len(c.Layouts))
	for name := range c.Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Managed reports whether a window with the given WM_CLASS should be
// adopted.
func (c *Config) Managed(class string) bool {
	for _, ignored := range c.IgnoreClasses {
		if strings.EqualFold(ignored, class) {
			return false
		}
	}
	if len(c.ManageClasses) == 0 {
		return true
	}
	for _, managed := range c.ManageClasses {
		if strings.EqualFold(managed, class) {
			return true
		}
	}
	return false
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warning": true,
	"error":   true,
}

var validEasings = map[string]bool{
	"linear":      true,
	"ease":        true,
	"ease-in":     true,
	"ease-out":    true,
	"ease-in-out": true,
}

// Validate checks the effective config for semantic errors.
func (c *Config) Validate() error {
	if !validLogLevels[c.LogLevel] {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.ZIndexBase < 0 {
		return &ValidationError{Path: "z_index_base", Err: fmt.Errorf("z_index_base must be >= 0")}
	}
	if c.ScreenPadding.Top < 0 || c.ScreenPadding.Bottom < 0 || c.ScreenPadding.Left < 0 || c.ScreenPadding.Right < 0 {
		return &ValidationError{Path: "screen_padding", Err: fmt.Errorf("screen_padding values must be >= 0")}
	}
	for _, class := range c.ManageClasses {
		if strings.TrimSpace(class) == "" {
			return &ValidationError{Path: "manage_classes", Err: fmt.Errorf("manage_classes contains an empty class name")}
		}
	}
	for _, class := range c.IgnoreClasses {
		if strings.TrimSpace(class) == "" {
			return &ValidationError{Path: "ignore_classes", Err: fmt.Errorf("ignore_classes contains an empty class name")}
		}
	}

	if len(c.Layouts) == 0 {
		return &ValidationError{Path: "layouts", Err: fmt.Errorf("layouts must not be empty")}
	}
	if c.DefaultLayout == "" {
		return &ValidationError{Path: "default_layout", Err: fmt.Errorf("default_layout is required")}
	}
	if _, ok := c.Layouts[c.DefaultLayout]; !ok {
		return &ValidationError{Path: "default_layout", Err: fmt.Errorf("default_layout %q not found in layouts", c.DefaultLayout)}
	}
	for _, name := range c.CycleOrder {
		if _, ok := c.Layouts[name]; !ok {
			return &ValidationError{Path: "cycle_order", Err: fmt.Errorf("cycle_order entry %q not found in layouts", name)}
		}
	}
	names := sortedKeys(c.Layouts)
	for _, name := range names {
		preset := c.Layouts[name]
		if err := validatePreset(&preset); err != nil {
			return &ValidationError{Path: "layouts." + name, Err: err}
		}
	}

	if c.Animation.SwitchMS < 0 {
		return &ValidationError{Path: "animation.switch_ms", Err: fmt.Errorf("switch_ms must be >= 0")}
	}
	if c.Animation.ExitMS < 0 {
		return &ValidationError{Path: "animation.exit_ms", Err: fmt.Errorf("exit_ms must be >= 0")}
	}
	if !validEasings[c.Animation.Easing] {
		return &ValidationError{Path: "animation.easing", Err: fmt.Errorf("easing must be one of: linear, ease, ease-in, ease-out, ease-in-out")}
	}
	if c.Animation.FPS < 1 || c.Animation.FPS > 240 {
		return &ValidationError{Path: "animation.fps", Err: fmt.Errorf("fps must be between 1 and 240")}
	}

	if strings.TrimSpace(c.Gestures.MoveModifier) == "" {
		return &ValidationError{Path: "gestures.move_modifier", Err: fmt.Errorf("move_modifier is required")}
	}
	if err := validateModifier(c.Gestures.MoveModifier); err != nil {
		return &ValidationError{Path: "gestures.move_modifier", Err: err}
	}
	if strings.TrimSpace(c.Gestures.ResizeModifier) == "" {
		return &ValidationError{Path: "gestures.resize_modifier", Err: fmt.Errorf("resize_modifier is required")}
	}
	if err := validateModifier(c.Gestures.ResizeModifier); err != nil {
		return &ValidationError{Path: "gestures.resize_modifier", Err: err}
	}
	if modifierKey(c.Gestures.MoveModifier) == modifierKey(c.Gestures.ResizeModifier) {
		return &ValidationError{Path: "gestures.resize_modifier", Err: fmt.Errorf("resize_modifier must differ from move_modifier")}
	}
	if c.Gestures.FrameRateHz < 1 || c.Gestures.FrameRateHz > 240 {
		return &ValidationError{Path: "gestures.frame_rate_hz", Err: fmt.Errorf("frame_rate_hz must be between 1 and 240")}
	}
	if c.Gestures.EdgeGrip < 1 {
		return &ValidationError{Path: "gestures.edge_grip", Err: fmt.Errorf("edge_grip must be >= 1")}
	}

	if err := validateHotkey(c.CycleLayoutHotkey); err != nil {
		return &ValidationError{Path: "cycle_layout_hotkey", Err: err}
	}
	if err := validateHotkey(c.CycleLayoutReverseHotkey); err != nil {
		return &ValidationError{Path: "cycle_layout_reverse_hotkey", Err: err}
	}
	if err := validateHotkey(c.FrontWindowHotkey); err != nil {
		return &ValidationError{Path: "front_window_hotkey", Err: err}
	}

	return nil
}

func validatePreset(p *LayoutPreset) error {
	switch p.Kind {
	case LayoutFloating, LayoutConstrained, LayoutGrid, LayoutDialog:
	case "":
		return fmt.Errorf("kind is required")
	default:
		return fmt.Errorf("kind must be one of: floating, constrained, grid, dialog")
	}

	if p.Padding.Top < 0 || p.Padding.Bottom < 0 || p.Padding.Left < 0 || p.Padding.Right < 0 {
		return fmt.Errorf("padding values must be >= 0")
	}

	if err := validateSizeRange(p.Sizes); err != nil {
		return err
	}

	if p.Kind == LayoutGrid {
		if p.Grid.Cols < 1 {
			return fmt.Errorf("grid.cols must be >= 1")
		}
		if p.Grid.Rows < 1 {
			return fmt.Errorf("grid.rows must be >= 1")
		}
	}

	if p.Kind == LayoutDialog {
		if p.Dialog.Width < 1 {
			return fmt.Errorf("dialog.width must be >= 1")
		}
		if p.Dialog.Height < 1 {
			return fmt.Errorf("dialog.height must be >= 1")
		}
		if p.Dialog.Margin < 0 {
			return fmt.Errorf("dialog.margin must be >= 0")
		}
	}

	return nil
}

func validateSizeRange(s SizeRange) error {
	if s.MinWidth < 0 || s.MinHeight < 0 || s.MaxWidth < 0 || s.MaxHeight < 0 {
		return fmt.Errorf("sizes must be >= 0")
	}
	if s.MaxWidth > 0 && s.MinWidth > s.MaxWidth {
		return fmt.Errorf("sizes.min_width %d exceeds max_width %d", s.MinWidth, s.MaxWidth)
	}
	if s.MaxHeight > 0 && s.MinHeight > s.MaxHeight {
		return fmt.Errorf("sizes.min_height %d exceeds max_height %d", s.MinHeight, s.MaxHeight)
	}
	if s.PreferredWidth > 0 {
		if s.PreferredWidth < s.MinWidth {
			return fmt.Errorf("sizes.preferred_width %d below min_width %d", s.PreferredWidth, s.MinWidth)
		}
		if s.MaxWidth > 0 && s.PreferredWidth > s.MaxWidth {
			return fmt.Errorf("sizes.preferred_width %d exceeds max_width %d", s.PreferredWidth, s.MaxWidth)
		}
	}
	if s.PreferredHeight > 0 {
		if s.PreferredHeight < s.MinHeight {
			return fmt.Errorf("sizes.preferred_height %d below min_height %d", s.PreferredHeight, s.MinHeight)
		}
		if s.MaxHeight > 0 && s.PreferredHeight > s.MaxHeight {
			return fmt.Errorf("sizes.preferred_height %d exceeds max_height %d", s.PreferredHeight, s.MaxHeight)
		}
	}
	return nil
}

var validModifierTokens = map[string]bool{
	"super": true,
	"alt":   true,
	"ctrl":  true,
	"shift": true,
}

// validateModifier accepts "mod" or "mod+mod" drag-modifier descriptors.
func validateModifier(spec string) error {
	for _, tok := range strings.Split(strings.ToLower(spec), "+") {
		if !validModifierTokens[strings.TrimSpace(tok)] {
			return fmt.Errorf("unknown modifier %q", tok)
		}
	}
	return nil
}

// modifierKey canonicalizes a descriptor so differently ordered combos
// compare equal.
func modifierKey(spec string) string {
	toks := strings.Split(strings.ToLower(spec), "+")
	for i := range toks {
		toks[i] = strings.TrimSpace(toks[i])
	}
	sort.Strings(toks)
	return strings.Join(toks, "+")
}

// validateHotkey accepts "mod+mod+key" descriptors with at least one
// modifier. Empty means the hotkey is unbound.
func validateHotkey(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(spec), "+")
	if len(parts) < 2 {
		return fmt.Errorf("hotkey %q needs at least one modifier", spec)
	}
	for _, mod := range parts[:len(parts)-1] {
		if !validModifierTokens[strings.TrimSpace(mod)] {
			return fmt.Errorf("unknown modifier %q in hotkey %q", mod, spec)
		}
	}
	if strings.TrimSpace(parts[len(parts)-1]) == "" {
		return fmt.Errorf("hotkey %q is missing a key", spec)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
