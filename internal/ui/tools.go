package ui

import (
	"image/color"
	"log"
	"strings"

	"SketchBoard/internal/session"
	"SketchBoard/internal/state"
	"SketchBoard/internal/tools"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Hex      string
	OnTapped func(hex string)
}

func newColorSwatch(hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Hex: hex, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(toColor(s.Hex))
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Hex)
	}
}

// Toolbar drives a session: tool choice, palette, history commands and the
// export button.
type Toolbar struct {
	session *session.Session
	board   *BoardWidget

	tools    *widget.RadioGroup
	undo     *widget.Button
	redo     *widget.Button
	clear    *widget.Button
	grid     *widget.Check
	status   *widget.Label
	presence *widget.Label

	// OnExport runs when the export button is tapped.
	OnExport func()
}

// presenceText labels the local participant by the first block of the
// session id.
func presenceText(sessionID string) string {
	short, _, _ := strings.Cut(sessionID, "-")
	return "1 participant (you: " + short + ")"
}

func toolLabel(t tools.Tool) string {
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

func NewToolbar(sess *session.Session, board *BoardWidget) *Toolbar {
	tb := &Toolbar{
		session:  sess,
		board:    board,
		status:   widget.NewLabel("Ready"),
		presence: widget.NewLabel(presenceText(board.scene.SessionID())),
	}

	labels := make([]string, len(tools.All))
	for i, t := range tools.All {
		labels[i] = toolLabel(t)
	}
	tb.tools = widget.NewRadioGroup(labels, func(label string) {
		t, err := tools.ParseTool(label)
		if err != nil {
			return
		}
		if t != sess.Tool() {
			sess.SelectTool(t)
		}
	})
	tb.tools.Horizontal = true
	tb.tools.Required = true
	tb.tools.SetSelected(toolLabel(sess.Tool()))

	tb.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), sess.Undo)
	tb.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), sess.Redo)
	tb.clear = widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), sess.Clear)
	tb.grid = widget.NewCheck("Grid", board.SetShowGrid)
	tb.grid.SetChecked(board.ShowGrid())

	sess.OnChange(tb.sync)
	tb.sync()
	return tb
}

func (tb *Toolbar) selectColor(hex string) {
	if err := tb.session.SelectColor(hex); err != nil {
		log.Printf("[UI] Rejected colour %q: %v", hex, err)
		tb.SetStatus("Invalid colour")
		return
	}
	tb.SetStatus("Colour " + hex)
}

// sync mirrors session state into the controls.
func (tb *Toolbar) sync() {
	h := tb.session.History()
	enable(tb.undo, h.CanUndo())
	enable(tb.redo, h.CanRedo())
	if label := toolLabel(tb.session.Tool()); tb.tools.Selected != label {
		tb.tools.SetSelected(label)
	}
}

func enable(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}

func (tb *Toolbar) SetStatus(text string) {
	tb.status.SetText(text)
}

func (tb *Toolbar) Status() *widget.Label {
	return tb.status
}

// CanvasObject lays the toolbar out as a single row.
func (tb *Toolbar) CanvasObject() fyne.CanvasObject {
	swatches := container.NewHBox()
	for _, hex := range state.Palette {
		swatches.Add(newColorSwatch(hex, tb.selectColor))
	}

	exportButton := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
		if tb.OnExport != nil {
			tb.OnExport()
		}
	})

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb.tools,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		swatches,
		widget.NewSeparator(),
		tb.undo,
		tb.redo,
		tb.clear,
		tb.grid,
		exportButton,
		layout.NewSpacer(),
		tb.presence,
	)
}
