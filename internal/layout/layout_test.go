package layout

import (
	"testing"

	"github.com/1broseidon/floatwm/internal/geom"
)

func TestBaseCascadeKeyedByRegistryIndex(t *testing.T) {
	b := NewBase()
	b.AddWindow(7)
	b.AddWindow(9)
	b.AddWindow(12)

	tests := []struct {
		name string
		id   int
		want geom.Rect
	}{
		// Placement follows registry position, not the raw id: window 9
		// sits at index 1, one cascade step in.
		{"index 0", 7, geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}},
		{"index 1", 9, geom.Rect{X: 36, Y: 36, Width: 100, Height: 100}},
		{"index 2", 12, geom.Rect{X: 72, Y: 72, Width: 100, Height: 100}},
		// An unbound id lands on the next free slot.
		{"unbound id", 99, geom.Rect{X: 108, Y: 108, Width: 100, Height: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.InitializeRect(tt.id)
			if got != tt.want {
				t.Fatalf("InitializeRect(%d) = %+v, want %+v", tt.id, got, tt.want)
			}
		})
	}
}

func TestBaseCascadeAfterRemoval(t *testing.T) {
	b := NewBase()
	b.AddWindow(0)
	b.AddWindow(1)
	b.AddWindow(2)
	b.RemoveWindow(1)

	// Window 2 moved up to index 1 when window 1 left the registry.
	got := b.InitializeRect(2)
	want := geom.Rect{X: 36, Y: 36, Width: 100, Height: 100}
	if got != want {
		t.Fatalf("InitializeRect(2) after removal = %+v, want %+v", got, want)
	}
}

func TestBaseMoveAndResize(t *testing.T) {
	b := NewBase()
	r := geom.Rect{X: 10, Y: 10, Width: 100, Height: 100}

	moved := b.Move(r, geom.Vector2{X: 30, Y: -5}, geom.Vector2{X: 1, Y: -1})
	if want := (geom.Rect{X: 40, Y: 5, Width: 100, Height: 100}); moved != want {
		t.Fatalf("Move = %+v, want %+v", moved, want)
	}

	resized := b.Resize(r, geom.Edges{Left: 10, Bottom: 20})
	if want := (geom.Rect{X: 20, Y: 10, Width: 90, Height: 120}); resized != want {
		t.Fatalf("Resize = %+v, want %+v", resized, want)
	}
}

func TestBaseFitRectIsIdentity(t *testing.T) {
	b := NewBase()
	r := geom.Rect{X: -500, Y: 9000, Width: 12000, Height: 3}
	if got := b.FitRect(r); got != r {
		t.Fatalf("FitRect = %+v, want %+v", got, r)
	}
}

func TestRestoreIsOneShot(t *testing.T) {
	b := NewBase()
	r := geom.Rect{X: 10, Y: 10, Width: 50, Height: 50}

	b.StoreRect(3, r)
	got, ok := b.TakeStoredRect(3)
	if !ok || got != r {
		t.Fatalf("TakeStoredRect = %+v, %v, want %+v, true", got, ok, r)
	}

	// The arena clears on read.
	if _, ok := b.TakeStoredRect(3); ok {
		t.Fatalf("second TakeStoredRect returned a rect, want none")
	}
}

func TestRestoreDisabledByCap(t *testing.T) {
	b := newBase(Caps{Move: true, Resize: true})
	b.StoreRect(3, geom.Rect{X: 1, Y: 1, Width: 1, Height: 1})
	if _, ok := b.TakeStoredRect(3); ok {
		t.Fatalf("restore produced a rect with the cap disabled")
	}
}

func TestDropStoredRect(t *testing.T) {
	b := NewBase()
	b.StoreRect(5, geom.Rect{X: 1, Y: 2, Width: 3, Height: 4})
	b.DropStoredRect(5)
	if _, ok := b.TakeStoredRect(5); ok {
		t.Fatalf("dropped rect still present")
	}
}

func TestPixelRectAppliesPaddingInward(t *testing.T) {
	b := NewBase()
	b.SetPadding(geom.Edges{Left: 8, Top: 4, Right: 8, Bottom: 12})

	got := b.PixelRect(geom.Rect{X: 100, Y: 100, Width: 200, Height: 150})
	want := geom.Rect{X: 108, Y: 104, Width: 184, Height: 134}
	if got != want {
		t.Fatalf("PixelRect = %+v, want %+v", got, want)
	}
}

func TestSetPaddingPublishesUpdate(t *testing.T) {
	b := NewBase()
	updates, breaks := 0, 0
	b.Updates().Subscribe(func(Change) { updates++ })
	b.Breaks().Subscribe(func(Change) { breaks++ })

	b.SetPadding(geom.Edges{Left: 4})
	if updates != 1 || breaks != 0 {
		t.Fatalf("updates = %d, breaks = %d, want 1, 0", updates, breaks)
	}
}

func TestAddWindowIsIdempotent(t *testing.T) {
	b := NewBase()
	b.AddWindow(1)
	b.AddWindow(1)
	if got := b.Windows(); len(got) != 1 {
		t.Fatalf("registry = %v, want one entry", got)
	}
}

func TestStaticSourceWatch(t *testing.T) {
	src := NewStaticSource(geom.Rect{Width: 100, Height: 100})

	var got geom.Rect
	cancel := src.Watch(func(r geom.Rect) { got = r })

	next := geom.Rect{Width: 300, Height: 200}
	src.SetBounds(next)
	if got != next {
		t.Fatalf("watcher saw %+v, want %+v", got, next)
	}
	if src.Bounds() != next {
		t.Fatalf("Bounds = %+v, want %+v", src.Bounds(), next)
	}

	cancel()
	src.SetBounds(geom.Rect{Width: 1, Height: 1})
	if got != next {
		t.Fatalf("canceled watcher still fired")
	}
}
