// Package session ties the active tool, the active colour and the undo
// history to one drawing surface.
package session

import (
	"SketchBoard/internal/history"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
	"SketchBoard/internal/surface"
	"SketchBoard/internal/tools"
)

type Options struct {
	Tool         tools.Tool
	Color        string
	Background   string
	Widths       tools.Widths
	HistoryLimit int
}

func DefaultOptions() Options {
	return Options{
		Tool:       tools.Pen,
		Color:      state.DefaultStroke,
		Background: state.DefaultBackground,
		Widths:     tools.DefaultWidths,
	}
}

// Session is the single drawing session of the application. All methods are
// expected to run on the UI goroutine.
type Session struct {
	surface    surface.Surface
	machine    *tools.Machine
	history    *history.Manager
	background string

	onChange []func()
}

func New(s surface.Surface, opts Options) *Session {
	if opts.Tool == "" {
		opts.Tool = tools.Pen
	}
	if opts.Color == "" {
		opts.Color = state.DefaultStroke
	}
	if opts.Background == "" {
		opts.Background = state.DefaultBackground
	}
	if opts.Widths == (tools.Widths{}) {
		opts.Widths = tools.DefaultWidths
	}
	sess := &Session{
		surface:    s,
		background: opts.Background,
	}
	sess.machine = tools.NewMachine(s, opts.Widths)
	sess.history = history.New(s,
		history.WithLimit(opts.HistoryLimit),
		history.WithIgnore(func(ev surface.Event) bool {
			return sess.machine.InProgress(ev.ObjectID)
		}),
	)
	sess.machine.OnCommit = sess.history.Capture
	sess.history.OnChange = sess.historyChanged
	sess.history.Attach()
	sess.machine.Activate(opts.Tool, opts.Color)
	logging.Logger().Info("session started", "tool", opts.Tool, "color", opts.Color)
	return sess
}

// Ready reports whether the session still has a surface to drive.
func (s *Session) Ready() bool { return s.surface != nil }

func (s *Session) Tool() tools.Tool {
	return s.machine.Tool()
}

func (s *Session) Color() string {
	return s.machine.Color()
}

func (s *Session) Mode() tools.Mode {
	return s.machine.Mode()
}

func (s *Session) History() *history.Manager {
	return s.history
}

func (s *Session) SelectTool(t tools.Tool) {
	if !s.Ready() {
		return
	}
	s.machine.Activate(t, s.machine.Color())
	logging.Logger().Info("tool selected", "tool", t)
	s.notify()
}

// SelectColor validates and applies a hex colour.
func (s *Session) SelectColor(color string) error {
	c, err := state.ParseColor(color)
	if err != nil {
		return err
	}
	if !s.Ready() {
		return nil
	}
	s.machine.SetColor(c)
	logging.Logger().Info("color selected", "color", c)
	s.notify()
	return nil
}

func (s *Session) Undo() {
	if !s.Ready() {
		return
	}
	s.machine.Cancel()
	s.history.Undo()
}

func (s *Session) Redo() {
	if !s.Ready() {
		return
	}
	s.machine.Cancel()
	s.history.Redo()
}

// Clear wipes the board onto the session background and records it in
// history.
func (s *Session) Clear() {
	if !s.Ready() {
		return
	}
	s.machine.Cancel()
	s.history.Clear(s.background)
	s.refreshBrush()
}

// Reset drops the undo history, e.g. when a fresh board is loaded.
func (s *Session) Reset() {
	if !s.Ready() {
		return
	}
	s.machine.Cancel()
	s.history.Reset()
}

// Snapshot returns the current board.
func (s *Session) Snapshot() state.Snapshot {
	if !s.Ready() {
		return state.Snapshot{}
	}
	return s.surface.Snapshot()
}

// OnChange registers fn to run after any command or commit.
func (s *Session) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

// Close releases every hook the session holds on the surface. Later calls
// are no-ops.
func (s *Session) Close() {
	if !s.Ready() {
		return
	}
	s.machine.Detach()
	s.history.Detach()
	s.surface = nil
	s.onChange = nil
	logging.Logger().Info("session closed")
}

// historyChanged holds tool input for as long as a restore is loading, then
// re-activates the tool against the restored scene.
func (s *Session) historyChanged() {
	if s.Ready() {
		if s.history.Restoring() {
			s.machine.Suspend()
		} else {
			s.machine.Resume()
		}
	}
	s.notify()
}

// refreshBrush keeps the eraser painting with the current background, which
// a clear may have changed.
func (s *Session) refreshBrush() {
	if s.machine.Tool() == tools.Eraser {
		s.machine.SetColor(s.machine.Color())
	}
}

func (s *Session) notify() {
	for _, fn := range s.onChange {
		fn()
	}
}
