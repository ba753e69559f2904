package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"SketchBoard/internal/config"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/state"
	"SketchBoard/internal/tools"
	"SketchBoard/internal/ui"
)

func main() {
	configPath := flag.String("config", config.Path(), "path to the TOML config file")
	tool := flag.String("tool", "", "initial tool: pen, eraser, rectangle, ellipse or line")
	color := flag.String("color", "", "initial stroke colour as #rrggbb")
	logLevel := flag.String("log-level", "", "log level: debug, info, warn or error")
	grid := flag.Bool("grid", false, "show the background grid")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := applyFlags(cfg, *tool, *color, *logLevel, *grid); err != nil {
		log.Fatalf("Invalid flag: %v", err)
	}

	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})))
	log.Printf("Starting SketchBoard (config %s)", *configPath)
	ui.RunApp(cfg)
}

// applyFlags overrides cfg with any flags given on the command line.
func applyFlags(cfg *config.Config, tool, color, level string, grid bool) error {
	if tool != "" {
		t, err := tools.ParseTool(tool)
		if err != nil {
			return err
		}
		cfg.Drawing.Tool = string(t)
	}
	if color != "" {
		c, err := state.ParseColor(color)
		if err != nil {
			return err
		}
		cfg.Drawing.Color = c
	}
	if level != "" {
		cfg.LogLevel = level
	}
	if grid {
		cfg.Board.ShowGrid = true
	}
	return nil
}
