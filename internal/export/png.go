package export

import (
	"fmt"
	"io"

	"SketchBoard/internal/state"

	"github.com/gogpu/gg"
)

// PNG rasterises snap onto a width by height pixel image.
func PNG(w io.Writer, snap state.Snapshot, width, height int) error {
	doc, err := snap.Document()
	if err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export png: %w", ErrEmptyPage)
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(doc.Background))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	for _, obj := range doc.Objects {
		if !trace(dc, obj.Geometry) {
			continue
		}
		dc.SetHexColor(obj.Style.Stroke)
		dc.SetLineWidth(float64(obj.Style.Width))
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("export png: stroke %s: %w", obj.ID, err)
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return nil
}

// trace adds the outline of geo to the current path. It reports false when
// there is nothing to stroke.
func trace(dc *gg.Context, geo state.Geometry) bool {
	switch geo := geo.(type) {
	case state.Freehand:
		if len(geo.Points) < 2 {
			return false
		}
		dc.MoveTo(float64(geo.Points[0].X), float64(geo.Points[0].Y))
		for _, pt := range geo.Points[1:] {
			dc.LineTo(float64(pt.X), float64(pt.Y))
		}
	case state.Rect:
		dc.DrawRectangle(float64(geo.Origin.X), float64(geo.Origin.Y), float64(geo.W), float64(geo.H))
	case state.Ellipse:
		cx, cy := center(geo)
		dc.DrawEllipse(cx, cy, float64(geo.RX), float64(geo.RY))
	case state.Line:
		dc.DrawLine(float64(geo.From.X), float64(geo.From.Y), float64(geo.To.X), float64(geo.To.Y))
	default:
		return false
	}
	return true
}
