package state

// Area represents a rectangular region of the board
type Area struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// NormalizeBox returns the box spanned by two corners, whatever the drag
// direction: top-left is the component-wise minimum and the size is the
// absolute difference.
func NormalizeBox(anchor, pointer Point) Area {
	return Area{
		X:      min(anchor.X, pointer.X),
		Y:      min(anchor.Y, pointer.Y),
		Width:  abs(pointer.X - anchor.X),
		Height: abs(pointer.Y - anchor.Y),
	}
}

func (a Area) Origin() Point { return Point{X: a.X, Y: a.Y} }

// Clamp moves p onto the nearest point inside a.
func (a Area) Clamp(p Point) Point {
	return Point{
		X: clamp(p.X, a.X, a.X+a.Width),
		Y: clamp(p.Y, a.Y, a.Y+a.Height),
	}
}

// ShapeFor builds the geometry of kind dragged from anchor to pointer.
// Ellipses are inscribed in the dragged box.
func ShapeFor(kind Kind, anchor, pointer Point) Geometry {
	switch kind {
	case KindRectangle:
		box := NormalizeBox(anchor, pointer)
		return Rect{Origin: box.Origin(), W: box.Width, H: box.Height}
	case KindEllipse:
		box := NormalizeBox(anchor, pointer)
		return Ellipse{Origin: box.Origin(), RX: box.Width / 2, RY: box.Height / 2}
	case KindLine:
		return Line{From: anchor, To: pointer}
	}
	return nil
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
