package export

import (
	"bytes"
	"errors"
	"image/png"
	"testing"

	"SketchBoard/internal/state"
)

func sample(t *testing.T) state.Snapshot {
	t.Helper()
	doc := state.Document{
		Background: "#ffffff",
		Objects: []state.Object{
			state.NewFreehand([]state.Point{{X: 5, Y: 5}, {X: 40, Y: 20}, {X: 60, Y: 50}}, "#e53935", 2),
			state.NewRect(state.Point{X: 10, Y: 10}, 90, 70, "#000000", 2),
			state.NewEllipse(state.Point{X: 20, Y: 20}, 30, 15, "#1e88e5", 2),
			state.NewLine(state.Point{}, state.Point{X: 50, Y: 50}, "#43a047", 2),
		},
	}
	snap, err := state.EncodeSnapshot(1, doc)
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, sample(t), 120, 90); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 90 {
		t.Errorf("bounds = %v", b)
	}
	// Far corner is untouched background.
	r, g, b, _ := img.At(119, 89).RGBA()
	if r>>8 != 0xff || g>>8 != 0xff || b>>8 != 0xff {
		t.Errorf("background pixel = %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, sample(t), 1280, 720); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not look like a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestEmptyPage(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, sample(t), 0, 10); !errors.Is(err, ErrEmptyPage) {
		t.Errorf("PDF err = %v", err)
	}
	if err := PNG(&buf, sample(t), 10, 0); !errors.Is(err, ErrEmptyPage) {
		t.Errorf("PNG err = %v", err)
	}
}

func TestWrite(t *testing.T) {
	snap := sample(t)

	var buf bytes.Buffer
	if err := Write(&buf, ".PDF", snap, 200, 100); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("pdf output missing header")
	}

	buf.Reset()
	if err := Write(&buf, ".png", snap, 200, 100); err != nil {
		t.Fatalf("png: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("png output does not decode: %v", err)
	}

	if err := Write(&buf, ".json", snap, 10, 10); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("json err = %v", err)
	}
}

func TestRGB(t *testing.T) {
	r, g, b := rgb("#1e88e5")
	if r != 0x1e || g != 0x88 || b != 0xe5 {
		t.Errorf("rgb = %d,%d,%d", r, g, b)
	}
}
