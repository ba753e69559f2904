package ui

import (
	"image/color"
	"math"
	"sync"

	"SketchBoard/internal/state"
	"SketchBoard/internal/surface"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/gogpu/gg"
)

const gridSize float32 = 50

var gridColor = color.NRGBA{R: 220, G: 220, B: 220, A: 100}

// BoardWidget displays a Scene and feeds it pointer input. Drawing policy
// lives in the session; the widget only translates fyne events.
type BoardWidget struct {
	widget.BaseWidget
	scene *surface.Scene

	mu       sync.Mutex
	showGrid bool
	pressed  bool
	panning  bool
	last     fyne.Position

	stopRender func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(scene *surface.Scene, showGrid bool) *BoardWidget {
	b := &BoardWidget{
		scene:    scene,
		showGrid: showGrid,
	}
	b.ExtendBaseWidget(b)
	b.stopRender = scene.OnRender(b.Refresh)
	return b
}

func (b *BoardWidget) ShowGrid() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.showGrid
}

func (b *BoardWidget) SetShowGrid(show bool) {
	b.mu.Lock()
	b.showGrid = show
	b.mu.Unlock()
	b.Refresh()
}

// Detach stops repainting on scene renders.
func (b *BoardWidget) Detach() {
	if b.stopRender != nil {
		b.stopRender()
		b.stopRender = nil
	}
}

func pointerEvent(pos fyne.Position, btn desktop.MouseButton) surface.PointerEvent {
	ev := surface.PointerEvent{Position: state.Point{X: pos.X, Y: pos.Y}}
	if btn&desktop.MouseButtonPrimary != 0 {
		ev.Buttons |= surface.ButtonPrimary
	}
	if btn&desktop.MouseButtonSecondary != 0 {
		ev.Buttons |= surface.ButtonSecondary
	}
	return ev
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	b.last = e.Position
	if e.Button == desktop.MouseButtonSecondary {
		b.panning = true
		return
	}
	b.pressed = true
	b.scene.PointerDown(pointerEvent(e.Position, e.Button))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	b.panning = false
	if !b.pressed {
		return
	}
	b.pressed = false
	b.scene.PointerUp(pointerEvent(e.Position, e.Button))
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.panning {
		b.scene.Pan(e.Dragged.DX, e.Dragged.DY)
		return
	}
	if !b.pressed {
		return
	}
	b.last = e.Position
	b.scene.PointerMove(pointerEvent(e.Position, desktop.MouseButtonPrimary))
}

// DragEnd finishes a drag whose mouse-up went elsewhere.
func (b *BoardWidget) DragEnd() {
	b.panning = false
	if !b.pressed {
		return
	}
	b.pressed = false
	b.scene.PointerUp(pointerEvent(b.last, desktop.MouseButtonPrimary))
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseOut()                   {}

// MouseMoved is a no-op: pressed movement already arrives through Dragged.
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.scene.Pan(e.Scrolled.DX, e.Scrolled.DY)
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	size       fyne.Size
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	scene := r.board.scene
	offset := scene.Offset()
	r.background.FillColor = toColor(scene.Background())

	objects := []fyne.CanvasObject{r.background}
	if r.board.ShowGrid() {
		objects = append(objects, gridLines(r.size, offset)...)
	}
	for _, obj := range scene.Objects() {
		objects = append(objects, drawObject(obj, offset)...)
	}
	if live, ok := scene.Live(); ok {
		objects = append(objects, drawObject(live, offset)...)
	}
	return objects
}

func (r *boardWidgetRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.size = size
	r.background.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func drawObject(obj state.Object, offset state.Point) []fyne.CanvasObject {
	stroke := toColor(obj.Style.Stroke)
	at := func(p state.Point) fyne.Position {
		return fyne.NewPos(p.X+offset.X, p.Y+offset.Y)
	}

	switch geo := obj.Geometry.(type) {
	case state.Freehand:
		segments := make([]fyne.CanvasObject, 0, len(geo.Points))
		for i := 1; i < len(geo.Points); i++ {
			segment := canvas.NewLine(stroke)
			segment.StrokeWidth = obj.Style.Width
			segment.Position1 = at(geo.Points[i-1])
			segment.Position2 = at(geo.Points[i])
			segments = append(segments, segment)
		}
		return segments
	case state.Rect:
		rect := canvas.NewRectangle(fill(obj.Style.Fill))
		rect.StrokeColor = stroke
		rect.StrokeWidth = obj.Style.Width
		rect.Move(at(geo.Origin))
		rect.Resize(fyne.NewSize(geo.W, geo.H))
		return []fyne.CanvasObject{rect}
	case state.Ellipse:
		circle := canvas.NewCircle(fill(obj.Style.Fill))
		circle.StrokeColor = stroke
		circle.StrokeWidth = obj.Style.Width
		circle.Position1 = at(geo.Origin)
		circle.Position2 = at(state.Point{X: geo.Origin.X + 2*geo.RX, Y: geo.Origin.Y + 2*geo.RY})
		return []fyne.CanvasObject{circle}
	case state.Line:
		line := canvas.NewLine(stroke)
		line.StrokeWidth = obj.Style.Width
		line.Position1 = at(geo.From)
		line.Position2 = at(geo.To)
		return []fyne.CanvasObject{line}
	}
	return nil
}

func gridLines(size fyne.Size, offset state.Point) []fyne.CanvasObject {
	var lines []fyne.CanvasObject
	startX := mod(offset.X, gridSize)
	startY := mod(offset.Y, gridSize)

	for x := startX; x < size.Width; x += gridSize {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(x, 0)
		line.Position2 = fyne.NewPos(x, size.Height)
		line.StrokeWidth = 0.5
		lines = append(lines, line)
	}
	for y := startY; y < size.Height; y += gridSize {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(0, y)
		line.Position2 = fyne.NewPos(size.Width, y)
		line.StrokeWidth = 0.5
		lines = append(lines, line)
	}
	return lines
}

func mod(v, m float32) float32 {
	r := float32(math.Mod(float64(v), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

func toColor(hex string) color.Color {
	return gg.Hex(hex).Color()
}

func fill(hex string) color.Color {
	if hex == "" || hex == state.Transparent {
		return color.Transparent
	}
	return toColor(hex)
}
