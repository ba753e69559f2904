// Package tools interprets pointer input according to the active drawing tool.
package tools

import (
	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
	"SketchBoard/internal/surface"
)

type Mode int

const (
	Idle Mode = iota
	FreehandDrawing
	ShapeDragging
)

func (m Mode) String() string {
	switch m {
	case FreehandDrawing:
		return "freehand"
	case ShapeDragging:
		return "dragging"
	}
	return "idle"
}

// Widths are the stroke widths used by each family of tools.
type Widths struct {
	Pen    float32
	Eraser float32
	Shape  float32
}

var DefaultWidths = Widths{Pen: 2, Eraser: 16, Shape: 2}

// Machine turns pointer events into drawn objects on a surface. Pen and
// eraser delegate to the surface's freehand capture; shape tools bind their
// own pointer handlers and drag out a live object until pointer-up.
type Machine struct {
	surface surface.Surface
	widths  Widths

	tool      Tool
	color     string
	mode      Mode
	unbind    func()
	suspended bool

	kind   state.Kind
	anchor state.Point
	live   string

	// OnCommit runs after a shape drag is finalized.
	OnCommit func()
}

var _ surface.PointerHandler = (*Machine)(nil)

func NewMachine(s surface.Surface, widths Widths) *Machine {
	return &Machine{
		surface: s,
		widths:  widths,
		color:   state.DefaultStroke,
	}
}

func (m *Machine) Tool() Tool    { return m.tool }
func (m *Machine) Color() string { return m.color }
func (m *Machine) Mode() Mode    { return m.mode }

// InProgress reports whether id is the shape currently being dragged.
func (m *Machine) InProgress(id string) bool {
	return id != "" && id == m.live
}

// Activate switches to tool. Bindings of the previous tool are released and
// an unfinished drag is dropped without a commit. Every object on the
// surface is then locked against direct manipulation.
func (m *Machine) Activate(tool Tool, color string) {
	if m.surface == nil {
		return
	}
	m.release()
	m.tool, m.color = tool, color
	if m.suspended {
		m.mode = Idle
		return
	}

	if tool.Freehand() {
		m.surface.SetFreehand(m.brush())
		m.mode = FreehandDrawing
	} else {
		m.surface.SetFreehand(nil)
		if _, ok := tool.ShapeKind(); ok {
			m.unbind = m.surface.BindPointer(m)
		}
		m.mode = Idle
	}
	surface.LockAll(m.surface)
	m.surface.Render()
	logging.Logger().Debug("tool activated", "tool", tool, "color", color)
}

// SetColor changes the stroke colour. The freehand brush picks it up
// immediately; shape tools read it on the next pointer-down.
func (m *Machine) SetColor(color string) {
	m.color = color
	if m.surface != nil && !m.suspended && m.tool.Freehand() {
		m.surface.SetFreehand(m.brush())
	}
}

func (m *Machine) brush() *surface.Brush {
	if m.tool == Eraser {
		return &surface.Brush{Color: m.surface.Background(), Width: m.widths.Eraser}
	}
	return &surface.Brush{Color: m.color, Width: m.widths.Pen}
}

func (m *Machine) PointerDown(ev surface.PointerEvent) {
	if m.surface == nil || m.suspended || m.mode == ShapeDragging || !ev.Primary() {
		return
	}
	kind, ok := m.tool.ShapeKind()
	if !ok {
		return
	}
	p := m.surface.PointerPosition(ev)

	var obj state.Object
	switch kind {
	case state.KindRectangle:
		obj = state.NewRect(p, 0, 0, m.color, m.widths.Shape)
	case state.KindEllipse:
		obj = state.NewEllipse(p, 0, 0, m.color, m.widths.Shape)
	case state.KindLine:
		obj = state.NewLine(p, p, m.color, m.widths.Shape)
	}
	m.kind, m.anchor, m.live = kind, p, obj.ID
	m.mode = ShapeDragging
	m.surface.Add(obj)
	m.surface.Render()
}

func (m *Machine) PointerMove(ev surface.PointerEvent) {
	if m.surface == nil || m.mode != ShapeDragging {
		return
	}
	p := m.surface.PointerPosition(ev)
	m.surface.SetProperties(m.live, state.Patch{Geometry: state.ShapeFor(m.kind, m.anchor, p)})
	m.surface.Render()
}

// PointerUp keeps the last geometry applied by PointerMove and commits. A
// drag that never moved leaves a zero-size object behind.
func (m *Machine) PointerUp(ev surface.PointerEvent) {
	if m.surface == nil || m.mode != ShapeDragging {
		return
	}
	id := m.live
	m.live = ""
	m.mode = Idle
	m.surface.SetProperties(id, state.NonInteractive())
	m.surface.Render()
	logging.Logger().Debug("shape finished", "kind", m.kind, "id", id)
	if m.OnCommit != nil {
		m.OnCommit()
	}
}

// Cancel drops an unfinished drag, removing its object from the surface.
// It reports whether there was one.
func (m *Machine) Cancel() bool {
	if m.surface == nil || m.mode != ShapeDragging {
		return false
	}
	m.surface.Remove(m.live)
	m.live = ""
	m.mode = Idle
	m.surface.Render()
	return true
}

// Suspend drops any unfinished drag and ignores input until Resume. Tool
// and colour changes made meanwhile are remembered.
func (m *Machine) Suspend() {
	if m.surface == nil || m.suspended {
		return
	}
	m.release()
	m.surface.SetFreehand(nil)
	m.mode = Idle
	m.suspended = true
	logging.Logger().Debug("tool input suspended", "tool", m.tool)
}

// Resume re-activates the current tool after Suspend.
func (m *Machine) Resume() {
	if !m.suspended {
		return
	}
	m.suspended = false
	m.Activate(m.tool, m.color)
}

// Detach releases all surface bindings. The machine ignores input afterwards.
func (m *Machine) Detach() {
	if m.surface == nil {
		return
	}
	m.release()
	m.surface.SetFreehand(nil)
	m.mode = Idle
	m.surface = nil
}

func (m *Machine) release() {
	if m.Cancel() {
		logging.Logger().Debug("drag cancelled", "tool", m.tool)
	}
	if m.unbind != nil {
		m.unbind()
		m.unbind = nil
	}
}
