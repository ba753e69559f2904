package state

import "testing"

func TestNormalizeBoxIsDirectionIndependent(t *testing.T) {
	a := Point{X: 10, Y: 10}
	b := Point{X: 100, Y: 80}
	want := Area{X: 10, Y: 10, Width: 90, Height: 70}

	corners := [][2]Point{
		{a, b},
		{b, a},
		{{X: 10, Y: 80}, {X: 100, Y: 10}},
		{{X: 100, Y: 10}, {X: 10, Y: 80}},
	}
	for _, c := range corners {
		if got := NormalizeBox(c[0], c[1]); got != want {
			t.Errorf("NormalizeBox(%+v, %+v) = %+v, want %+v", c[0], c[1], got, want)
		}
	}
}

func TestShapeFor(t *testing.T) {
	anchor := Point{X: 100, Y: 80}
	pointer := Point{X: 10, Y: 10}

	rect := ShapeFor(KindRectangle, anchor, pointer).(Rect)
	if rect != (Rect{Origin: Point{X: 10, Y: 10}, W: 90, H: 70}) {
		t.Errorf("rect = %+v", rect)
	}
	ellipse := ShapeFor(KindEllipse, anchor, pointer).(Ellipse)
	if ellipse != (Ellipse{Origin: Point{X: 10, Y: 10}, RX: 45, RY: 35}) {
		t.Errorf("ellipse = %+v", ellipse)
	}
	line := ShapeFor(KindLine, anchor, pointer).(Line)
	if line.From != anchor || line.To != pointer {
		t.Errorf("line = %+v", line)
	}
	if g := ShapeFor(KindFreehand, anchor, pointer); g != nil {
		t.Errorf("freehand has no drag geometry, got %+v", g)
	}
}

func TestAreaClamp(t *testing.T) {
	a := Area{Width: 1280, Height: 720}
	tests := []struct{ in, want Point }{
		{Point{X: 5, Y: 5}, Point{X: 5, Y: 5}},
		{Point{X: -1, Y: 900}, Point{X: 0, Y: 720}},
		{Point{X: 2000, Y: -3}, Point{X: 1280, Y: 0}},
	}
	for _, tt := range tests {
		if got := a.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
