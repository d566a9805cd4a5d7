// Package anim describes window transitions as keyframe lists with a
// duration and easing curve. The engine only ever builds these
// descriptors; playing them back on a rendering surface is the host's
// job, with At as the shared sampling helper.
package anim

import (
	"time"

	"github.com/1broseidon/floatwm/internal/geom"
)

// Keyframe is one sampled window state: placement plus the visual
// accents hosts may honor.
type Keyframe struct {
	Rect    geom.Rect
	Opacity float64
	Scale   float64
}

// Spec is the timing half of a transition.
type Spec struct {
	Duration time.Duration
	Easing   Easing
}

// Transition is an ordered keyframe list played over Duration with
// Easing applied to the whole run.
type Transition struct {
	Keyframes []Keyframe
	Duration  time.Duration
	Easing    Easing
}

// IsZero reports whether the transition describes no playback at all.
func (t Transition) IsZero() bool {
	return len(t.Keyframes) == 0 || t.Duration <= 0
}

// Movement builds a two-frame glide from one placement to another.
func Movement(from, to geom.Rect, spec Spec) Transition {
	return Transition{
		Keyframes: []Keyframe{
			{Rect: from, Opacity: 1, Scale: 1},
			{Rect: to, Opacity: 1, Scale: 1},
		},
		Duration: spec.Duration,
		Easing:   spec.Easing,
	}
}

// Enter builds an appear transition: the window fades and grows into
// place.
func Enter(at geom.Rect, spec Spec) Transition {
	return Transition{
		Keyframes: []Keyframe{
			{Rect: at, Opacity: 0, Scale: 0.92},
			{Rect: at, Opacity: 1, Scale: 1},
		},
		Duration: spec.Duration,
		Easing:   spec.Easing,
	}
}

// Exit builds a disappear transition played on a window's detached
// visual after destruction.
func Exit(from geom.Rect, spec Spec) Transition {
	return Transition{
		Keyframes: []Keyframe{
			{Rect: from, Opacity: 1, Scale: 1},
			{Rect: from, Opacity: 0, Scale: 0.92},
		},
		Duration: spec.Duration,
		Easing:   spec.Easing,
	}
}

// At samples the transition at progress p in [0,1], easing applied.
// Between adjacent keyframes every field interpolates linearly.
func (t Transition) At(p float64) Keyframe {
	if len(t.Keyframes) == 0 {
		return Keyframe{Opacity: 1, Scale: 1}
	}
	if len(t.Keyframes) == 1 {
		return t.Keyframes[0]
	}
	if p <= 0 {
		return t.Keyframes[0]
	}
	if p >= 1 {
		return t.Keyframes[len(t.Keyframes)-1]
	}

	eased := t.Easing.Eval(p)
	span := eased * float64(len(t.Keyframes)-1)
	i := int(span)
	if i >= len(t.Keyframes)-1 {
		i = len(t.Keyframes) - 2
	}
	f := span - float64(i)
	return lerpFrame(t.Keyframes[i], t.Keyframes[i+1], f)
}

func lerpFrame(a, b Keyframe, f float64) Keyframe {
	return Keyframe{
		Rect: geom.Rect{
			X:      lerp(a.Rect.X, b.Rect.X, f),
			Y:      lerp(a.Rect.Y, b.Rect.Y, f),
			Width:  lerp(a.Rect.Width, b.Rect.Width, f),
			Height: lerp(a.Rect.Height, b.Rect.Height, f),
		},
		Opacity: lerp(a.Opacity, b.Opacity, f),
		Scale:   lerp(a.Scale, b.Scale, f),
	}
}

func lerp(a, b, f float64) float64 { return a + (b-a)*f }
