// Package export renders board snapshots to files.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"SketchBoard/internal/state"

	"github.com/gogpu/gg"
)

var (
	ErrEmptyPage     = errors.New("page size must be positive")
	ErrUnknownFormat = errors.New("unknown export format")
)

// Write renders snap in the format named by ext, ".pdf" or ".png".
func Write(w io.Writer, ext string, snap state.Snapshot, width, height float32) error {
	switch strings.ToLower(ext) {
	case ".pdf":
		return PDF(w, snap, float64(width), float64(height))
	case ".png":
		return PNG(w, snap, int(width), int(height))
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}

func rgb(hex string) (r, g, b int) {
	c := gg.Hex(hex)
	return int(c.R*255 + 0.5), int(c.G*255 + 0.5), int(c.B*255 + 0.5)
}

func center(e state.Ellipse) (x, y float64) {
	return float64(e.Origin.X + e.RX), float64(e.Origin.Y + e.RY)
}
