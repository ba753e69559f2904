package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"SketchBoard/internal/state"
	"SketchBoard/internal/tools"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable that overrides the config location.
const EnvPath = "SKETCHBOARD_CONFIG"

// Board holds the drawing surface settings.
type Board struct {
	Width      float32 `toml:"width"`
	Height     float32 `toml:"height"`
	Background string  `toml:"background"`
	ShowGrid   bool    `toml:"show_grid"`
}

// Drawing holds the initial tool, colour and stroke widths.
type Drawing struct {
	Tool        string  `toml:"tool"`
	Color       string  `toml:"color"`
	PenWidth    float32 `toml:"pen_width"`
	EraserWidth float32 `toml:"eraser_width"`
	ShapeWidth  float32 `toml:"shape_width"`
}

// Config holds the application configuration.
type Config struct {
	LogLevel     string  `toml:"log_level"`
	HistoryLimit int     `toml:"history_limit"`
	Board        Board   `toml:"board"`
	Drawing      Drawing `toml:"drawing"`
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Board: Board{
			Width:      1280,
			Height:     720,
			Background: state.DefaultBackground,
		},
		Drawing: Drawing{
			Tool:        string(tools.Pen),
			Color:       state.DefaultStroke,
			PenWidth:    tools.DefaultWidths.Pen,
			EraserWidth: tools.DefaultWidths.Eraser,
			ShapeWidth:  tools.DefaultWidths.Shape,
		},
	}
}

// Parse reads TOML from r on top of the defaults and validates the result.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config location: $SKETCHBOARD_CONFIG if set, otherwise
// sketchboard/config.toml under the user config directory.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sketchboard.toml"
	}
	return filepath.Join(dir, "sketchboard", "config.toml")
}

// Validate normalises colours and tool names and rejects values the board
// cannot use.
func (c *Config) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("board size %vx%v must be positive", c.Board.Width, c.Board.Height)
	}
	bg, err := state.ParseColor(c.Board.Background)
	if err != nil {
		return fmt.Errorf("board.background: %w", err)
	}
	c.Board.Background = bg

	col, err := state.ParseColor(c.Drawing.Color)
	if err != nil {
		return fmt.Errorf("drawing.color: %w", err)
	}
	c.Drawing.Color = col

	tool, err := tools.ParseTool(c.Drawing.Tool)
	if err != nil {
		return fmt.Errorf("drawing.tool: %w", err)
	}
	c.Drawing.Tool = string(tool)

	if c.Drawing.PenWidth <= 0 || c.Drawing.EraserWidth <= 0 || c.Drawing.ShapeWidth <= 0 {
		return errors.New("stroke widths must be positive")
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit %d must not be negative", c.HistoryLimit)
	}
	return nil
}

// Widths returns the configured stroke widths.
func (c *Config) Widths() tools.Widths {
	return tools.Widths{
		Pen:    c.Drawing.PenWidth,
		Eraser: c.Drawing.EraserWidth,
		Shape:  c.Drawing.ShapeWidth,
	}
}

// String implements fmt.Stringer and returns the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return ""
	}
	return buf.String()
}
