package tui

import (
	"testing"

	"github.com/1broseidon/floatwm/internal/geom"
)

func TestWindowFormDefaults(t *testing.T) {
	f := newWindowForm(80, 3)
	name, title, size := f.values()
	if name != "" {
		t.Fatalf("key defaulted to %q", name)
	}
	if title != "window 3" {
		t.Fatalf("title = %q", title)
	}
	if size != (geom.Size{Width: defaultWindowWidth, Height: defaultWindowHeight}) {
		t.Fatalf("size = %+v", size)
	}
}

func TestWindowFormParsesFields(t *testing.T) {
	f := newWindowForm(80, 1)
	f.fKey = " scratch "
	f.fTitle = " notes "
	f.fWidth = "18"
	f.fHeight = "6"

	name, title, size := f.values()
	if name != "scratch" || title != "notes" {
		t.Fatalf("trimmed fields = %q, %q", name, title)
	}
	if size != (geom.Size{Width: 18, Height: 6}) {
		t.Fatalf("size = %+v", size)
	}
}

// Sizes below the drawable minimum or unparsable keep the defaults.
func TestWindowFormRejectsBadSizes(t *testing.T) {
	f := newWindowForm(80, 1)
	f.fWidth = "2"
	f.fHeight = "tall"

	_, _, size := f.values()
	if size != (geom.Size{Width: defaultWindowWidth, Height: defaultWindowHeight}) {
		t.Fatalf("size = %+v", size)
	}
}
