package tools

import (
	"errors"
	"fmt"
	"strings"

	"SketchBoard/internal/state"
)

// Tool is the active interaction mode.
type Tool string

const (
	Pen       Tool = "pen"
	Eraser    Tool = "eraser"
	Rectangle Tool = "rectangle"
	Ellipse   Tool = "ellipse"
	Line      Tool = "line"
)

// All lists the tools in toolbar order.
var All = []Tool{Pen, Eraser, Rectangle, Ellipse, Line}

var ErrUnknownTool = errors.New("unknown tool")

func ParseTool(s string) (Tool, error) {
	t := Tool(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range All {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, s)
}

// Freehand reports whether the tool draws through native freehand capture.
func (t Tool) Freehand() bool {
	return t == Pen || t == Eraser
}

// ShapeKind returns the object kind a shape tool drags out.
func (t Tool) ShapeKind() (state.Kind, bool) {
	switch t {
	case Rectangle:
		return state.KindRectangle, true
	case Ellipse:
		return state.KindEllipse, true
	case Line:
		return state.KindLine, true
	}
	return 0, false
}
