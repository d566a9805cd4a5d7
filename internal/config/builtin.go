package config

// DefaultBuiltinLayout is the preset used when the config names none.
const DefaultBuiltinLayout = "floating"

// BuiltinLayouts returns the built-in preset library.
//
// These are always available without being defined in YAML; user presets
// may patch them or inherit from them by name.
func BuiltinLayouts() map[string]LayoutPreset {
	return map[string]LayoutPreset{
		"floating": {
			Kind: LayoutFloating,
		},
		"clamped": {
			Kind: LayoutConstrained,
			Sizes: SizeRange{
				MinWidth:        320,
				MinHeight:       240,
				PreferredWidth:  720,
				PreferredHeight: 480,
			},
		},
		"grid-2x2": {
			Kind:    LayoutGrid,
			Grid:    GridSpec{Cols: 2, Rows: 2},
			Padding: Margins{Top: 4, Bottom: 4, Left: 4, Right: 4},
		},
		"grid-3x3": {
			Kind:    LayoutGrid,
			Grid:    GridSpec{Cols: 3, Rows: 3},
			Padding: Margins{Top: 4, Bottom: 4, Left: 4, Right: 4},
		},
		"dialog": {
			Kind:   LayoutDialog,
			Dialog: DialogSpec{Width: 480, Height: 320, Margin: 32},
		},
	}
}
