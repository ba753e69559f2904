package ui

import (
	"log"

	"SketchBoard/internal/config"
	"SketchBoard/internal/session"
	"SketchBoard/internal/surface"
	"SketchBoard/internal/tools"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
)

// Board bundles the pieces of one drawing window.
type Board struct {
	Scene   *surface.Scene
	Session *session.Session
	Widget  *BoardWidget
	Toolbar *Toolbar
}

// NewBoard builds a scene, a session and its widgets from cfg. Restores are
// queued onto the fyne main goroutine through schedule.
func NewBoard(cfg *config.Config, schedule func(step func())) *Board {
	scene := surface.NewScene(cfg.Board.Width, cfg.Board.Height,
		surface.WithBackground(cfg.Board.Background),
		surface.WithDeferredRestore(schedule),
	)
	sess := session.New(scene, session.Options{
		Tool:         tools.Tool(cfg.Drawing.Tool),
		Color:        cfg.Drawing.Color,
		Background:   cfg.Board.Background,
		Widths:       cfg.Widths(),
		HistoryLimit: cfg.HistoryLimit,
	})
	board := NewBoardWidget(scene, cfg.Board.ShowGrid)
	return &Board{
		Scene:   scene,
		Session: sess,
		Widget:  board,
		Toolbar: NewToolbar(sess, board),
	}
}

// Close detaches the session and the widget from the scene.
func (b *Board) Close() {
	b.Session.Close()
	b.Widget.Detach()
}

func RunApp(cfg *config.Config) {
	myApp := app.New()
	myWindow := myApp.NewWindow("SketchBoard")
	myWindow.Resize(fyne.NewSize(cfg.Board.Width, cfg.Board.Height+60))

	board := NewBoard(cfg, fyne.Do)
	board.Toolbar.OnExport = func() {
		page := board.Scene.Bounds()
		ShowExportDialog(myWindow, board.Session.Snapshot(), page.Width, page.Height, board.Toolbar.SetStatus)
	}

	undo := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redo := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}
	myWindow.Canvas().AddShortcut(undo, func(fyne.Shortcut) { board.Session.Undo() })
	myWindow.Canvas().AddShortcut(redo, func(fyne.Shortcut) { board.Session.Redo() })

	content := container.NewBorder(board.Toolbar.CanvasObject(), board.Toolbar.Status(), nil, nil, board.Widget)
	myWindow.SetContent(content)
	myWindow.SetOnClosed(func() {
		log.Println("[App] Window closed")
		board.Close()
	})
	log.Printf("[App] Starting with tool=%s color=%s", cfg.Drawing.Tool, cfg.Drawing.Color)
	myWindow.ShowAndRun()
}
