package geom

import "testing"

func TestResizeEdges(t *testing.T) {
	r := Rect{X: 100, Y: 100, Width: 200, Height: 150}

	tests := []struct {
		name  string
		edges Edges
		want  Rect
	}{
		// Left edge moved 10 right: origin shifts, width shrinks.
		{"left inward", Edges{Left: 10}, Rect{X: 110, Y: 100, Width: 190, Height: 150}},
		// Left edge moved 10 left: origin shifts back, width grows.
		{"left outward", Edges{Left: -10}, Rect{X: 90, Y: 100, Width: 210, Height: 150}},
		// Right edge moved 30 right: far edge extends.
		{"right outward", Edges{Right: 30}, Rect{X: 100, Y: 100, Width: 230, Height: 150}},
		{"top outward", Edges{Top: -20}, Rect{X: 100, Y: 80, Width: 200, Height: 170}},
		{"bottom inward", Edges{Bottom: -50}, Rect{X: 100, Y: 100, Width: 200, Height: 100}},
		// Opposite edges moved equally: pure translation.
		{"translate via edges", Edges{Left: 15, Right: 15}, Rect{X: 115, Y: 100, Width: 200, Height: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resize(tt.edges)
			if got != tt.want {
				t.Fatalf("Resize(%+v) = %+v, want %+v", tt.edges, got, tt.want)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 50, Height: 60}
	got := r.Translate(Vector2{X: -10, Y: 5})
	want := Rect{X: 0, Y: 25, Width: 50, Height: 60}
	if got != want {
		t.Fatalf("Translate = %+v, want %+v", got, want)
	}
}

func TestInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 80}
	got := r.Inset(8)
	want := Rect{X: 8, Y: 8, Width: 84, Height: 64}
	if got != want {
		t.Fatalf("Inset(8) = %+v, want %+v", got, want)
	}

	// Negative inset grows the rect back.
	if back := got.Inset(-8); back != r {
		t.Fatalf("Inset(-8) = %+v, want %+v", back, r)
	}
}

func TestContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}

	tests := []struct {
		name string
		p    Vector2
		want bool
	}{
		{"interior", Vector2{X: 15, Y: 15}, true},
		{"origin corner", Vector2{X: 10, Y: 10}, true},
		{"far corner excluded", Vector2{X: 30, Y: 30}, false},
		{"right edge excluded", Vector2{X: 30, Y: 15}, false},
		{"outside left", Vector2{X: 9, Y: 15}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Fatalf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	// Overlapping corner: 40x30 region.
	b := Rect{X: 60, Y: 70, Width: 100, Height: 100}
	got := a.Intersect(b)
	want := Rect{X: 60, Y: 70, Width: 40, Height: 30}
	if got != want {
		t.Fatalf("Intersect = %+v, want %+v", got, want)
	}

	// Disjoint rects intersect to the zero rect.
	c := Rect{X: 200, Y: 0, Width: 50, Height: 50}
	if got := a.Intersect(c); got != (Rect{}) {
		t.Fatalf("disjoint Intersect = %+v, want zero rect", got)
	}
}

func TestInts(t *testing.T) {
	r := Rect{X: 10.4, Y: 10.5, Width: 99.6, Height: 100.49}
	x, y, w, h := r.Ints()
	if x != 10 || y != 11 || w != 100 || h != 100 {
		t.Fatalf("Ints = (%d,%d,%d,%d), want (10,11,100,100)", x, y, w, h)
	}
}
