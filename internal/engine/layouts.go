package engine

import (
	"time"

	"github.com/1broseidon/floatwm/internal/anim"
	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/geom"
	"github.com/1broseidon/floatwm/internal/layout"
	"github.com/1broseidon/floatwm/internal/wm"
)

// buildLayouts instantiates every configured preset.
func buildLayouts(cfg *config.Config) map[string]layout.Layout {
	out := make(map[string]layout.Layout, len(cfg.Layouts))
	for name, preset := range cfg.Layouts {
		out[name] = buildLayout(preset)
	}
	return out
}

// buildLayout turns one preset into a live policy instance.
func buildLayout(p config.LayoutPreset) layout.Layout {
	switch p.Kind {
	case config.LayoutConstrained:
		l := layout.NewConstrained()
		l.SetConstraints(constraintsFrom(p.Sizes))
		l.SetPadding(edgesFrom(p.Padding))
		return l
	case config.LayoutGrid:
		l := layout.NewGrid(p.Grid.Cols, p.Grid.Rows)
		if p.Sizes != (config.SizeRange{}) {
			// Grid sizes are cell counts; keep the one-cell floor.
			sc := constraintsFrom(p.Sizes)
			sc.MinWidth = max(sc.MinWidth, 1)
			sc.MinHeight = max(sc.MinHeight, 1)
			l.SetConstraints(sc)
		}
		l.SetPadding(edgesFrom(p.Padding))
		return l
	case config.LayoutDialog:
		l := layout.NewDialog(geom.Size{
			Width:  float64(p.Dialog.Width),
			Height: float64(p.Dialog.Height),
		})
		l.SetMargin(float64(p.Dialog.Margin))
		l.SetPadding(edgesFrom(p.Padding))
		return l
	default:
		l := layout.NewBase()
		l.SetPadding(edgesFrom(p.Padding))
		return l
	}
}

func constraintsFrom(s config.SizeRange) layout.SizeConstraints {
	return layout.SizeConstraints{
		MinWidth:         float64(s.MinWidth),
		MinHeight:        float64(s.MinHeight),
		MaxWidth:         float64(s.MaxWidth),
		MaxHeight:        float64(s.MaxHeight),
		SuggestionWidth:  float64(s.PreferredWidth),
		SuggestionHeight: float64(s.PreferredHeight),
	}
}

func edgesFrom(m config.Margins) geom.Edges {
	return geom.Edges{
		Left:   float64(m.Left),
		Top:    float64(m.Top),
		Right:  float64(m.Right),
		Bottom: float64(m.Bottom),
	}
}

// TransitionsFrom maps the animation config onto collection timings.
// Disabled animation keeps the easing but zeroes the durations, which
// every playback path treats as an immediate placement.
func TransitionsFrom(a config.AnimationConfig) wm.Transitions {
	easing := easingByName(a.Easing)
	t := wm.Transitions{
		Switch: anim.Spec{Easing: easing},
		Exit:   anim.Spec{Easing: easing},
	}
	if a.Enabled {
		t.Switch.Duration = time.Duration(a.SwitchMS) * time.Millisecond
		t.Exit.Duration = time.Duration(a.ExitMS) * time.Millisecond
	}
	return t
}

// easingByName maps config easing names onto curves. Unknown names fall
// back to linear.
func easingByName(name string) anim.Easing {
	switch name {
	case "ease":
		return anim.Ease
	case "ease-in":
		return anim.EaseIn
	case "ease-out":
		return anim.EaseOut
	case "ease-in-out":
		return anim.EaseInOut
	default:
		return anim.Linear
	}
}

// nextName walks step positions through names from active, wrapping at
// both ends. An active name not in the list starts the walk at the
// front.
func nextName(names []string, active string, step int) string {
	if len(names) == 0 {
		return ""
	}
	idx := -1
	for i, n := range names {
		if n == active {
			idx = i
			break
		}
	}
	if idx < 0 {
		return names[0]
	}
	idx = ((idx+step)%len(names) + len(names)) % len(names)
	return names[idx]
}
