package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Kind tags the geometry carried by an Object.
type Kind uint8

const (
	KindFreehand Kind = iota + 1
	KindRectangle
	KindEllipse
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindFreehand:
		return "path"
	case KindRectangle:
		return "rect"
	case KindEllipse:
		return "ellipse"
	case KindLine:
		return "line"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

var ErrUnknownKind = errors.New("unknown object kind")

func parseKind(s string) (Kind, error) {
	switch s {
	case "path":
		return KindFreehand, nil
	case "rect":
		return KindRectangle, nil
	case "ellipse":
		return KindEllipse, nil
	case "line":
		return KindLine, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Geometry is implemented only by Freehand, Rect, Ellipse and Line.
type Geometry interface {
	Kind() Kind
	geometry()
}

type Freehand struct {
	Points []Point
}

type Rect struct {
	Origin Point
	W, H   float32
}

// Ellipse is described by its bounding box top-left corner and its radii.
type Ellipse struct {
	Origin Point
	RX, RY float32
}

type Line struct {
	From, To Point
}

func (Freehand) Kind() Kind { return KindFreehand }
func (Rect) Kind() Kind     { return KindRectangle }
func (Ellipse) Kind() Kind  { return KindEllipse }
func (Line) Kind() Kind     { return KindLine }

func (Freehand) geometry() {}
func (Rect) geometry()     {}
func (Ellipse) geometry()  {}
func (Line) geometry()     {}

type Style struct {
	Stroke string  `json:"stroke"`
	Width  float32 `json:"width"`
	Fill   string  `json:"fill,omitempty"`
}

// Object is a drawn stroke or shape. Interactive is runtime state owned by
// the surface and never serialized.
type Object struct {
	ID          string
	Style       Style
	Interactive bool
	Geometry    Geometry
}

func (o Object) Kind() Kind {
	if o.Geometry == nil {
		return 0
	}
	return o.Geometry.Kind()
}

// Clone returns a copy that shares no memory with o.
func (o Object) Clone() Object {
	if f, ok := o.Geometry.(Freehand); ok {
		pts := make([]Point, len(f.Points))
		copy(pts, f.Points)
		o.Geometry = Freehand{Points: pts}
	}
	return o
}

func newObject(g Geometry, style Style) Object {
	return Object{
		ID:       uuid.NewString(),
		Style:    style,
		Geometry: g,
	}
}

func NewFreehand(points []Point, stroke string, width float32) Object {
	pts := make([]Point, len(points))
	copy(pts, points)
	return newObject(Freehand{Points: pts}, Style{Stroke: stroke, Width: width})
}

func NewRect(origin Point, w, h float32, stroke string, width float32) Object {
	return newObject(Rect{Origin: origin, W: w, H: h}, shapeStyle(stroke, width))
}

func NewEllipse(origin Point, rx, ry float32, stroke string, width float32) Object {
	return newObject(Ellipse{Origin: origin, RX: rx, RY: ry}, shapeStyle(stroke, width))
}

func NewLine(from, to Point, stroke string, width float32) Object {
	return newObject(Line{From: from, To: to}, Style{Stroke: stroke, Width: width})
}

func shapeStyle(stroke string, width float32) Style {
	return Style{Stroke: stroke, Width: width, Fill: Transparent}
}

// Patch is a partial update applied by Surface.SetProperties. Nil fields are
// left untouched.
type Patch struct {
	Geometry    Geometry
	Style       *Style
	Interactive *bool
}

// NonInteractive is the patch that locks an object against direct manipulation.
func NonInteractive() Patch {
	f := false
	return Patch{Interactive: &f}
}

// wireObject is the flat JSON form of an Object.
type wireObject struct {
	ID     string  `json:"id"`
	Kind   string  `json:"kind"`
	Style  Style   `json:"style"`
	Points []Point `json:"points,omitempty"`
	X      float32 `json:"x,omitempty"`
	Y      float32 `json:"y,omitempty"`
	W      float32 `json:"w,omitempty"`
	H      float32 `json:"h,omitempty"`
	RX     float32 `json:"rx,omitempty"`
	RY     float32 `json:"ry,omitempty"`
	X2     float32 `json:"x2,omitempty"`
	Y2     float32 `json:"y2,omitempty"`
}

func (o Object) MarshalJSON() ([]byte, error) {
	w := wireObject{ID: o.ID, Style: o.Style}
	switch g := o.Geometry.(type) {
	case Freehand:
		w.Points = g.Points
	case Rect:
		w.X, w.Y, w.W, w.H = g.Origin.X, g.Origin.Y, g.W, g.H
	case Ellipse:
		w.X, w.Y, w.RX, w.RY = g.Origin.X, g.Origin.Y, g.RX, g.RY
	case Line:
		w.X, w.Y, w.X2, w.Y2 = g.From.X, g.From.Y, g.To.X, g.To.Y
	default:
		return nil, fmt.Errorf("marshal object %s: %w", o.ID, ErrUnknownKind)
	}
	w.Kind = o.Geometry.Kind().String()
	return json.Marshal(w)
}

func (o *Object) UnmarshalJSON(data []byte) error {
	var w wireObject
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, err := parseKind(w.Kind)
	if err != nil {
		return err
	}
	o.ID = w.ID
	o.Style = w.Style
	switch kind {
	case KindFreehand:
		o.Geometry = Freehand{Points: w.Points}
	case KindRectangle:
		o.Geometry = Rect{Origin: Point{w.X, w.Y}, W: w.W, H: w.H}
	case KindEllipse:
		o.Geometry = Ellipse{Origin: Point{w.X, w.Y}, RX: w.RX, RY: w.RY}
	case KindLine:
		o.Geometry = Line{From: Point{w.X, w.Y}, To: Point{w.X2, w.Y2}}
	}
	return nil
}
