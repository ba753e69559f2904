package state

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultBackground = "#ffffff"
	DefaultStroke     = "#000000"
	Transparent       = "transparent"
)

// Palette is the fixed set of swatches offered by the toolbar.
var Palette = []string{
	"#000000", "#ff0000", "#00ff00", "#0000ff",
	"#ffff00", "#ff00ff", "#00ffff", "#ffffff",
}

var ErrInvalidColor = errors.New("invalid color")

// ParseColor accepts #rgb or #rrggbb (the # is optional) and returns the
// canonical lowercase #rrggbb form.
func ParseColor(s string) (string, error) {
	hex := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	for _, c := range hex {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	}
	switch len(hex) {
	case 3:
		return "#" + string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}), nil
	case 6:
		return "#" + hex, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
}
