package export

import (
	"fmt"
	"io"

	"SketchBoard/internal/state"

	"github.com/jung-kurt/gofpdf"
)

// PDF writes snap as a single-page vector PDF of width by height points.
func PDF(w io.Writer, snap state.Snapshot, width, height float64) error {
	doc, err := snap.Document()
	if err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export pdf: %w", ErrEmptyPage)
	}

	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	r, g, b := rgb(doc.Background)
	p.SetFillColor(r, g, b)
	p.Rect(0, 0, width, height, "F")

	for _, obj := range doc.Objects {
		r, g, b := rgb(obj.Style.Stroke)
		p.SetDrawColor(r, g, b)
		p.SetLineWidth(float64(obj.Style.Width))

		switch geo := obj.Geometry.(type) {
		case state.Freehand:
			for i := 1; i < len(geo.Points); i++ {
				p.Line(
					float64(geo.Points[i-1].X), float64(geo.Points[i-1].Y),
					float64(geo.Points[i].X), float64(geo.Points[i].Y),
				)
			}
		case state.Rect:
			p.Rect(float64(geo.Origin.X), float64(geo.Origin.Y), float64(geo.W), float64(geo.H), "D")
		case state.Ellipse:
			cx, cy := center(geo)
			p.Ellipse(cx, cy, float64(geo.RX), float64(geo.RY), 0, "D")
		case state.Line:
			p.Line(float64(geo.From.X), float64(geo.From.Y), float64(geo.To.X), float64(geo.To.Y))
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}
