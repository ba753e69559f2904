// Package surface defines the boundary between the drawing core and the
// engine that stores and paints drawn objects, and provides Scene, an
// in-memory implementation of it.
package surface

import "SketchBoard/internal/state"

type EventKind int

const (
	EventAdded EventKind = iota + 1
	EventRemoved
	EventModified
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventModified:
		return "modified"
	case EventCleared:
		return "cleared"
	}
	return "unknown"
}

// Event is a change observation. ObjectID is empty for EventCleared.
type Event struct {
	Kind     EventKind
	ObjectID string
}

type Observer func(Event)

// Button is a bit set of pressed pointer buttons.
type Button uint8

const (
	ButtonPrimary Button = 1 << iota
	ButtonSecondary
)

// PointerEvent is a raw input event in widget coordinates.
type PointerEvent struct {
	Position state.Point
	Buttons  Button
}

func (e PointerEvent) Primary() bool { return e.Buttons&ButtonPrimary != 0 }

type PointerHandler interface {
	PointerDown(ev PointerEvent)
	PointerMove(ev PointerEvent)
	PointerUp(ev PointerEvent)
}

// Brush configures native freehand capture.
type Brush struct {
	Color string
	Width float32
}

// Surface is everything the drawing core needs from the rendering engine.
type Surface interface {
	Add(obj state.Object)
	Remove(id string)
	Clear(background string)
	SetProperties(id string, p state.Patch)
	PointerPosition(ev PointerEvent) state.Point

	// Snapshot serializes the scene without runtime-only object flags.
	Snapshot() state.Snapshot
	// Restore replaces the scene with snap and calls onComplete once the
	// load has finished, which may be after Restore returns.
	Restore(snap state.Snapshot, onComplete func())

	ForEachObject(fn func(obj state.Object))
	Background() string
	Render()

	Subscribe(fn Observer) (cancel func())
	BindPointer(h PointerHandler) (unbind func())
	// SetFreehand turns native freehand capture on, or off when b is nil.
	SetFreehand(b *Brush)
}

// LockAll marks every object on s as non-interactive.
func LockAll(s Surface) {
	s.ForEachObject(func(obj state.Object) {
		if obj.Interactive {
			s.SetProperties(obj.ID, state.NonInteractive())
		}
	})
}
