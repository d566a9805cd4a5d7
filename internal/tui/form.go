package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/floatwm/internal/geom"
)

const (
	defaultWindowWidth  = 30
	defaultWindowHeight = 9
)

// windowForm is the overlay collecting the fields for a new window.
type windowForm struct {
	form *huh.Form

	fTitle  string
	fKey    string
	fWidth  string
	fHeight string
}

// newWindowForm builds the form pre-filled for the seq-th window.
func newWindowForm(width, seq int) *windowForm {
	f := &windowForm{
		fTitle:  fmt.Sprintf("window %d", seq),
		fWidth:  strconv.Itoa(defaultWindowWidth),
		fHeight: strconv.Itoa(defaultWindowHeight),
	}

	w := width - 4
	if w < 40 {
		w = 40
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Description("Text drawn across the window").
				Value(&f.fTitle),

			huh.NewInput().
				Key("key").
				Title("Key").
				Description("Optional registry alias").
				Value(&f.fKey),

			huh.NewInput().
				Key("width").
				Title("Width").
				Description("Cells; the active layout may re-derive it").
				Value(&f.fWidth),

			huh.NewInput().
				Key("height").
				Title("Height").
				Value(&f.fHeight),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	return f
}

// values parses the submitted fields. Sizes that fail to parse or fall
// below the drawable minimum keep their defaults.
func (f *windowForm) values() (key, title string, size geom.Size) {
	size = geom.Size{Width: defaultWindowWidth, Height: defaultWindowHeight}
	if v, err := strconv.Atoi(strings.TrimSpace(f.fWidth)); err == nil && v >= 4 {
		size.Width = float64(v)
	}
	if v, err := strconv.Atoi(strings.TrimSpace(f.fHeight)); err == nil && v >= 3 {
		size.Height = float64(v)
	}
	return strings.TrimSpace(f.fKey), strings.TrimSpace(f.fTitle), size
}
