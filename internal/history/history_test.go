package history

import (
	"bytes"
	"testing"

	"SketchBoard/internal/state"
	"SketchBoard/internal/surface"
)

func newAttached(t *testing.T, opts ...Option) (*surface.Scene, *Manager) {
	t.Helper()
	s := surface.NewScene(1280, 720)
	m := New(s, opts...)
	m.Attach()
	t.Cleanup(m.Detach)
	return s, m
}

func addLine(s *surface.Scene, x float32) state.Object {
	obj := state.NewLine(state.Point{}, state.Point{X: x, Y: x}, state.DefaultStroke, 2)
	s.Add(obj)
	return obj
}

func assertLocked(t *testing.T, s *surface.Scene) {
	t.Helper()
	for _, obj := range s.Objects() {
		if obj.Interactive {
			t.Errorf("object %s is interactive", obj.ID)
		}
	}
}

func TestCommitsAreMonotonic(t *testing.T) {
	s, m := newAttached(t)
	for i := 1; i <= 5; i++ {
		addLine(s, float32(i))
		if len(m.Past()) != i || len(m.Future()) != 0 {
			t.Fatalf("after %d commits past=%d future=%d", i, len(m.Past()), len(m.Future()))
		}
	}
}

func TestUndoRedoBoundariesAreNoOps(t *testing.T) {
	s, m := newAttached(t)
	if m.Undo() || m.Redo() {
		t.Fatal("empty history should not undo or redo")
	}

	addLine(s, 1)
	before := s.Snapshot()
	if m.Undo() {
		t.Fatal("undo with a single snapshot should be a no-op")
	}
	if m.Redo() {
		t.Fatal("redo with empty future should be a no-op")
	}
	if len(m.Past()) != 1 || len(m.Future()) != 0 {
		t.Errorf("past=%d future=%d, want 1/0", len(m.Past()), len(m.Future()))
	}
	if !bytes.Equal(before.Bytes(), s.Snapshot().Bytes()) {
		t.Error("scene changed on a no-op undo")
	}
}

func TestUndoThenRedoRestoresScene(t *testing.T) {
	s, m := newAttached(t)
	addLine(s, 1)
	addLine(s, 2)
	addLine(s, 3)
	before := s.Snapshot()

	if !m.Undo() {
		t.Fatal("undo refused")
	}
	if n := len(s.Objects()); n != 2 {
		t.Fatalf("after undo scene has %d objects, want 2", n)
	}
	assertLocked(t, s)

	if !m.Redo() {
		t.Fatal("redo refused")
	}
	if !bytes.Equal(before.Bytes(), s.Snapshot().Bytes()) {
		t.Errorf("redo did not restore the scene:\n%s\n%s", before.Bytes(), s.Snapshot().Bytes())
	}
	if len(m.Past()) != 3 || len(m.Future()) != 0 {
		t.Errorf("past=%d future=%d, want 3/0", len(m.Past()), len(m.Future()))
	}
	assertLocked(t, s)
}

func TestUndoMovesTopToFrontOfFuture(t *testing.T) {
	s, m := newAttached(t)
	addLine(s, 1)
	addLine(s, 2)
	addLine(s, 3)
	past := m.Past()

	m.Undo()
	m.Undo()
	future := m.Future()
	if len(future) != 2 {
		t.Fatalf("future len = %d, want 2", len(future))
	}
	if future[0].Seq() != past[1].Seq() || future[1].Seq() != past[2].Seq() {
		t.Errorf("future order = %d,%d want %d,%d", future[0].Seq(), future[1].Seq(), past[1].Seq(), past[2].Seq())
	}
}

func TestCommitAfterUndoClearsFuture(t *testing.T) {
	s, m := newAttached(t)
	addLine(s, 1)
	addLine(s, 2)
	m.Undo()
	if len(m.Future()) != 1 {
		t.Fatalf("future len = %d, want 1", len(m.Future()))
	}

	addLine(s, 3)
	if len(m.Future()) != 0 {
		t.Errorf("future len = %d after new commit, want 0", len(m.Future()))
	}
	if len(m.Past()) != 2 {
		t.Errorf("past len = %d, want 2", len(m.Past()))
	}
}

func TestRestoreDoesNotRecommit(t *testing.T) {
	s, m := newAttached(t)
	addLine(s, 1)
	addLine(s, 2)
	addLine(s, 3)

	m.Undo()
	m.Undo()
	m.Redo()
	if len(m.Past()) != 2 || len(m.Future()) != 1 {
		t.Fatalf("past=%d future=%d, want 2/1", len(m.Past()), len(m.Future()))
	}
	if s.Observers() != 1 {
		t.Errorf("observer count = %d after restores, want 1", s.Observers())
	}
}

func TestSuppressionSpansDeferredRestore(t *testing.T) {
	var pending []func()
	s := surface.NewScene(100, 100, surface.WithDeferredRestore(func(step func()) {
		pending = append(pending, step)
	}))
	m := New(s)
	m.Attach()

	addLine(s, 1)
	addLine(s, 2)
	m.Undo()
	if !m.Restoring() || m.CanUndo() || m.CanRedo() {
		t.Fatal("manager should report a pending restore")
	}
	if s.Observers() != 0 {
		t.Fatal("commit observer still attached during restore")
	}

	// Anything arriving before the load completes is not a user change.
	addLine(s, 9)
	if m.Redo() || m.Undo() {
		t.Error("undo/redo should wait for the pending restore")
	}
	if len(m.Past()) != 1 || len(m.Future()) != 1 {
		t.Fatalf("past=%d future=%d during restore, want 1/1", len(m.Past()), len(m.Future()))
	}

	pending[0]()
	if m.Restoring() || s.Observers() != 1 {
		t.Fatal("observer not reattached after completion")
	}
	assertLocked(t, s)

	addLine(s, 3)
	if len(m.Past()) != 2 || len(m.Future()) != 0 {
		t.Errorf("past=%d future=%d after new stroke, want 2/0", len(m.Past()), len(m.Future()))
	}
}

func TestIgnoreFilter(t *testing.T) {
	var live string
	s, m := newAttached(t, WithIgnore(func(ev surface.Event) bool { return ev.ObjectID == live }))

	obj := state.NewRect(state.Point{}, 0, 0, state.DefaultStroke, 2)
	live = obj.ID
	s.Add(obj)
	s.SetProperties(obj.ID, state.Patch{Geometry: state.Rect{W: 10, H: 10}})
	if len(m.Past()) != 0 {
		t.Fatalf("in-progress object committed %d snapshots", len(m.Past()))
	}
	live = ""
	m.Capture()
	if len(m.Past()) != 1 {
		t.Errorf("past len = %d, want 1", len(m.Past()))
	}
}

func TestModifiedEventsDoNotCommit(t *testing.T) {
	s, m := newAttached(t)
	obj := addLine(s, 1)
	s.SetProperties(obj.ID, state.Patch{Geometry: state.Line{To: state.Point{X: 7, Y: 7}}})
	if len(m.Past()) != 1 {
		t.Errorf("past len = %d, want 1", len(m.Past()))
	}
}

func TestClearIsUndoable(t *testing.T) {
	s, m := newAttached(t)
	addLine(s, 1)
	addLine(s, 2)
	m.Undo()

	m.Clear(state.DefaultBackground)
	if len(s.Objects()) != 0 {
		t.Fatal("clear left objects behind")
	}
	if len(m.Past()) != 2 || len(m.Future()) != 0 {
		t.Fatalf("past=%d future=%d after clear, want 2/0", len(m.Past()), len(m.Future()))
	}

	m.Undo()
	if n := len(s.Objects()); n != 1 {
		t.Errorf("undo of clear restored %d objects, want 1", n)
	}
}

func TestReset(t *testing.T) {
	s, m := newAttached(t)
	addLine(s, 1)
	addLine(s, 2)
	m.Undo()
	m.Reset()
	if len(m.Past()) != 0 || len(m.Future()) != 0 {
		t.Fatalf("past=%d future=%d after reset", len(m.Past()), len(m.Future()))
	}
	if len(s.Objects()) != 1 {
		t.Error("reset must not touch the scene")
	}
}

func TestLimitDropsOldest(t *testing.T) {
	s, m := newAttached(t, WithLimit(3))
	for i := 1; i <= 5; i++ {
		addLine(s, float32(i))
	}
	past := m.Past()
	if len(past) != 3 {
		t.Fatalf("past len = %d, want 3", len(past))
	}
	if past[0].Seq() >= past[1].Seq() || past[1].Seq() >= past[2].Seq() {
		t.Errorf("past not in commit order: %d %d %d", past[0].Seq(), past[1].Seq(), past[2].Seq())
	}
	m.Undo()
	m.Undo()
	if m.Undo() {
		t.Error("undo went past the retained history")
	}
	if n := len(s.Objects()); n != 3 {
		t.Errorf("oldest retained state has %d objects, want 3", n)
	}
}

func TestOnChange(t *testing.T) {
	s, m := newAttached(t)
	calls := 0
	m.OnChange = func() { calls++ }
	addLine(s, 1)
	addLine(s, 2)
	m.Undo()
	if calls < 3 {
		t.Errorf("OnChange ran %d times, want at least 3", calls)
	}
}

func TestCaptureSkipsUnencodableScene(t *testing.T) {
	s, m := newAttached(t)
	addLine(s, 1)

	// An object without geometry cannot be serialized.
	s.Add(state.Object{ID: "broken"})
	if len(m.Past()) != 1 {
		t.Fatalf("past len = %d, want 1", len(m.Past()))
	}
	for _, snap := range m.Past() {
		if snap.IsZero() {
			t.Error("empty snapshot recorded")
		}
	}
}
