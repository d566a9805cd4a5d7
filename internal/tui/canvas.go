package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/floatwm/internal/anim"
	"github.com/1broseidon/floatwm/internal/geom"
)

// canvas is the playground's rendering surface: one layer per window,
// painted back to front onto a rune grid at one terminal cell per
// layout unit. It implements wm.Renderer. Transitions are sampled
// against the clock on frame steps instead of running on their own
// goroutines, so the whole canvas stays on the update loop.
type canvas struct {
	layers map[int]*layer
	labels map[int]string

	// appear times the fade-in played on a layer's first placement.
	appear anim.Spec
	now    func() time.Time
}

// layer is one window's visual state. frame is the currently displayed
// sample; between playbacks it sits at the final placement.
type layer struct {
	id    int
	z     int
	frame anim.Keyframe
	play  *playback
	// gone marks a release remnant, dropped once its playback ends.
	gone bool
}

type playback struct {
	tr    anim.Transition
	start time.Time
}

func newCanvas(appear anim.Spec) *canvas {
	return &canvas{
		layers: make(map[int]*layer),
		labels: make(map[int]string),
		appear: appear,
		now:    time.Now,
	}
}

// Label sets the text drawn across the window's center row.
func (c *canvas) Label(id int, text string) { c.labels[id] = text }

// Empty reports whether nothing is left to draw, remnants included.
func (c *canvas) Empty() bool { return len(c.layers) == 0 }

// Apply places the window at rect immediately. A layer's first
// placement plays the appear transition instead of popping in.
func (c *canvas) Apply(id int, rect geom.Rect, z int) {
	l, ok := c.layers[id]
	if !ok {
		l = &layer{id: id}
		c.layers[id] = l
		l.z = z
		l.frame = anim.Keyframe{Rect: rect, Opacity: 1, Scale: 1}
		if c.appear.Duration > 0 {
			l.play = &playback{tr: anim.Enter(rect, c.appear), start: c.now()}
			l.frame = l.play.tr.At(0)
		}
		return
	}
	l.z = z
	l.gone = false
	l.play = nil
	l.frame = anim.Keyframe{Rect: rect, Opacity: 1, Scale: 1}
}

// Play starts tr for the window, replacing any running playback. The
// layer settles at the transition's final frame.
func (c *canvas) Play(id int, tr anim.Transition, z int) {
	l, ok := c.layers[id]
	if !ok {
		l = &layer{id: id}
		c.layers[id] = l
	}
	l.z = z
	l.gone = false
	if tr.IsZero() {
		l.play = nil
		l.frame = tr.At(1)
		return
	}
	l.play = &playback{tr: tr, start: c.now()}
	l.frame = tr.At(0)
}

// Release turns the layer into a fading remnant, or drops it outright
// when there is nothing to play.
func (c *canvas) Release(id int, tr anim.Transition) {
	delete(c.labels, id)
	l, ok := c.layers[id]
	if !ok {
		return
	}
	if tr.IsZero() {
		delete(c.layers, id)
		return
	}
	l.gone = true
	l.play = &playback{tr: tr, start: c.now()}
	l.frame = tr.At(0)
}

// Step advances every playback to now and reports whether any is still
// running. Finished remnants drop off the canvas here.
func (c *canvas) Step(now time.Time) bool {
	running := false
	for id, l := range c.layers {
		if l.play == nil {
			continue
		}
		p := float64(now.Sub(l.play.start)) / float64(l.play.tr.Duration)
		if p >= 1 {
			l.frame = l.play.tr.At(1)
			l.play = nil
			if l.gone {
				delete(c.layers, id)
			}
			continue
		}
		if p < 0 {
			p = 0
		}
		l.frame = l.play.tr.At(p)
		running = true
	}
	return running
}

// Cell styles resolved per layer at paint time.
const (
	cellBlank = iota
	cellBack
	cellFront
	cellFaded
)

var (
	backStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	frontStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	fadedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Faint(true)
)

// Render draws every layer onto a width×height grid, lower z first so
// the top of the stack overdraws, and styles the window identified by
// front as the active one.
func (c *canvas) Render(width, height, front int) string {
	runes, styles := c.paint(width, height, front)

	lines := make([]string, height)
	for y := 0; y < height; y++ {
		lines[y] = styleRow(runes[y], styles[y])
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// paint rasterizes the layers. Kept separate from Render so tests can
// assert on bare cells.
func (c *canvas) paint(width, height, front int) ([][]rune, [][]uint8) {
	runes := make([][]rune, height)
	styles := make([][]uint8, height)
	for y := range runes {
		runes[y] = make([]rune, width)
		styles[y] = make([]uint8, width)
		for x := range runes[y] {
			runes[y][x] = ' '
		}
	}

	for _, l := range c.sorted() {
		style := uint8(cellBack)
		switch {
		case l.gone || l.frame.Opacity < 1:
			style = cellFaded
		case l.id == front:
			style = cellFront
		}
		c.drawLayer(runes, styles, l, style)
	}
	return runes, styles
}

// sorted returns the layers bottom first. Remnants keep the z they died
// with; ids break ties so repaints are stable.
func (c *canvas) sorted() []*layer {
	ls := make([]*layer, 0, len(c.layers))
	for _, l := range c.layers {
		ls = append(ls, l)
	}
	sort.Slice(ls, func(i, j int) bool {
		if ls[i].z != ls[j].z {
			return ls[i].z < ls[j].z
		}
		return ls[i].id < ls[j].id
	})
	return ls
}

func (c *canvas) drawLayer(runes [][]rune, styles [][]uint8, l *layer, style uint8) {
	x, y, w, h := frameRect(l.frame).Ints()
	if w < 2 || h < 2 {
		return
	}
	x2, y2 := x+w-1, y+h-1

	set := func(px, py int, r rune) {
		if py < 0 || py >= len(runes) || px < 0 || px >= len(runes[py]) {
			return
		}
		runes[py][px] = r
		styles[py][px] = style
	}

	for py := y + 1; py < y2; py++ {
		for px := x + 1; px < x2; px++ {
			set(px, py, ' ')
		}
	}
	for px := x; px <= x2; px++ {
		set(px, y, '─')
		set(px, y2, '─')
	}
	for py := y; py <= y2; py++ {
		set(x, py, '│')
		set(x2, py, '│')
	}
	set(x, y, '┌')
	set(x2, y, '┐')
	set(x, y2, '└')
	set(x2, y2, '┘')

	label := c.labels[l.id]
	if label == "" || w < 4 {
		return
	}
	text := []rune(label)
	if len(text) > w-2 {
		text = text[:w-2]
	}
	cy := (y + y2) / 2
	cx := (x+x2)/2 - len(text)/2
	for i, r := range text {
		set(cx+i, cy, r)
	}
}

// frameRect folds the sample's scale into its rect around the center,
// the same mapping the daemon renderer applies on screen.
func frameRect(k anim.Keyframe) geom.Rect {
	rect := k.Rect
	if k.Scale > 0 && k.Scale != 1 {
		ctr := rect.Center()
		w, h := rect.Width*k.Scale, rect.Height*k.Scale
		rect = geom.Rect{X: ctr.X - w/2, Y: ctr.Y - h/2, Width: w, Height: h}
	}
	return rect
}

// styleRow renders one grid row, grouping runs of the same style so the
// escape overhead stays proportional to the number of windows crossed.
func styleRow(runes []rune, styles []uint8) string {
	var b strings.Builder
	var run []rune
	current := uint8(cellBlank)

	flush := func() {
		if len(run) == 0 {
			return
		}
		seg := string(run)
		switch current {
		case cellBack:
			seg = backStyle.Render(seg)
		case cellFront:
			seg = frontStyle.Render(seg)
		case cellFaded:
			seg = fadedStyle.Render(seg)
		}
		b.WriteString(seg)
		run = run[:0]
	}

	for i, r := range runes {
		if styles[i] != current {
			flush()
			current = styles[i]
		}
		run = append(run, r)
	}
	flush()
	return b.String()
}
