// Package history records scene snapshots and replays them for undo and redo.
package history

import (
	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
	"SketchBoard/internal/surface"
)

// Manager keeps a linear history of committed snapshots. past is oldest
// first and its last entry is the current state; future[0] is the next redo.
type Manager struct {
	surface surface.Surface
	past    []state.Snapshot
	future  []state.Snapshot

	limit  int
	ignore func(surface.Event) bool

	unsubscribe func()
	restoring   bool

	// OnChange runs after every change to either stack.
	OnChange func()
}

type Option func(*Manager)

// WithLimit keeps at most n snapshots in past, dropping the oldest first.
// Zero means unbounded.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.limit = n
		}
	}
}

// WithIgnore skips commits for surface events matching fn, typically changes
// to an object that is still being drawn.
func WithIgnore(fn func(surface.Event) bool) Option {
	return func(m *Manager) { m.ignore = fn }
}

func New(s surface.Surface, opts ...Option) *Manager {
	m := &Manager{surface: s}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach starts committing a snapshot whenever the surface reports an
// object added or removed. It is a no-op when already attached.
func (m *Manager) Attach() {
	if m.surface == nil || m.unsubscribe != nil {
		return
	}
	m.unsubscribe = m.surface.Subscribe(m.observe)
}

// Detach stops observing the surface.
func (m *Manager) Detach() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Manager) attached() bool { return m.unsubscribe != nil }

func (m *Manager) observe(ev surface.Event) {
	switch ev.Kind {
	case surface.EventAdded, surface.EventRemoved:
	default:
		return
	}
	if m.ignore != nil && m.ignore(ev) {
		return
	}
	m.Capture()
}

// Capture commits the surface's current scene. A scene that failed to
// serialize is not recorded.
func (m *Manager) Capture() {
	if m.surface == nil || m.restoring {
		return
	}
	snap := m.surface.Snapshot()
	if snap.IsZero() {
		logging.Logger().Warn("history capture skipped: empty snapshot")
		return
	}
	m.Commit(snap)
}

// Commit appends snap to past and invalidates future.
func (m *Manager) Commit(snap state.Snapshot) {
	m.past = append(m.past, snap)
	if m.limit > 0 && len(m.past) > m.limit {
		m.past = append(m.past[:0:0], m.past[len(m.past)-m.limit:]...)
	}
	m.future = nil
	logging.Logger().Debug("history commit", "seq", snap.Seq(), "past", len(m.past))
	m.changed()
}

// Undo restores the snapshot before the current one. It needs at least two
// entries in past and reports whether it did anything.
func (m *Manager) Undo() bool {
	if m.surface == nil || m.restoring || len(m.past) < 2 {
		return false
	}
	top := m.past[len(m.past)-1]
	m.past = m.past[:len(m.past)-1]
	m.future = append([]state.Snapshot{top}, m.future...)
	target := m.past[len(m.past)-1]
	logging.Logger().Info("undo", "seq", target.Seq(), "past", len(m.past), "future", len(m.future))
	m.restore(target)
	return true
}

// Redo reapplies future[0]. It reports whether there was anything to redo.
func (m *Manager) Redo() bool {
	if m.surface == nil || m.restoring || len(m.future) == 0 {
		return false
	}
	next := m.future[0]
	m.future = m.future[1:]
	m.past = append(m.past, next)
	logging.Logger().Info("redo", "seq", next.Seq(), "past", len(m.past), "future", len(m.future))
	m.restore(next)
	return true
}

// Clear empties the surface onto background and commits the empty scene, so
// the clear itself can be undone.
func (m *Manager) Clear(background string) {
	if m.surface == nil || m.restoring {
		return
	}
	m.surface.Clear(background)
	m.surface.Render()
	m.Capture()
}

// Reset forgets both stacks without touching the surface.
func (m *Manager) Reset() {
	m.past, m.future = nil, nil
	logging.Logger().Info("history reset")
	m.changed()
}

// restore loads snap with change observation switched off until the surface
// reports the load complete, then locks the restored objects.
func (m *Manager) restore(snap state.Snapshot) {
	resume := m.attached()
	m.Detach()
	m.restoring = true
	m.changed()
	m.surface.Restore(snap, func() {
		surface.LockAll(m.surface)
		m.surface.Render()
		m.restoring = false
		if resume {
			m.Attach()
		}
		m.changed()
	})
}

func (m *Manager) changed() {
	if m.OnChange != nil {
		m.OnChange()
	}
}

func (m *Manager) Past() []state.Snapshot   { return append([]state.Snapshot(nil), m.past...) }
func (m *Manager) Future() []state.Snapshot { return append([]state.Snapshot(nil), m.future...) }

func (m *Manager) CanUndo() bool   { return !m.restoring && len(m.past) >= 2 }
func (m *Manager) CanRedo() bool   { return !m.restoring && len(m.future) > 0 }
func (m *Manager) Restoring() bool { return m.restoring }
