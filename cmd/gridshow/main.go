package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"pixgrid/pkg/config"
	"pixgrid/pkg/js"
	"pixgrid/pkg/layout"
	"pixgrid/pkg/resource"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	width := flag.Int("w", 0, "viewport width in pixels (overrides config)")
	height := flag.Int("h", 0, "viewport height in pixels (overrides config)")
	columns := flag.Int("cols", 0, "number of grid columns (overrides config)")
	source := flag.String("source", "colors", "data set: colors or photos")
	linear := flag.Bool("linear", false, "lay items out as a single column list")
	captions := flag.Bool("captions", false, "draw photo titles")
	scroll := flag.String("scroll", "", "comma separated scroll distances applied in order")
	script := flag.String("script", "", "JavaScript scroll scenario to run")
	output := flag.String("o", "grid.png", "output PNG file path")
	textOut := flag.Bool("text", false, "also print the viewport as terminal cells")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gridshow [flags]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	layout.SetLogger(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Viewport.Width = *width
	}
	if *height > 0 {
		cfg.Viewport.Height = *height
	}
	if *columns > 0 {
		cfg.Grid.Columns = *columns
	}
	src, err := resource.ParseSource(*source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	distances, err := parseScroll(*scroll)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	g, err := resource.NewGrid(ctx, cfg, resource.Options{
		Source:   src,
		Linear:   *linear,
		Captions: *captions,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building grid: %v\n", err)
		os.Exit(1)
	}

	for _, dy := range distances {
		scrolled := g.View.ScrollBy(dy)
		logger.Debug("scrolled", "dy", dy, "scrolled", scrolled)
	}

	if *script != "" {
		dir := filepath.Dir(*output)
		engine := js.New(g.View, js.Options{
			Logger: logger,
			Images: g.Loader,
			Snapshot: func(name string) error {
				path := filepath.Join(dir, name+".png")
				fmt.Fprintf(os.Stderr, "Snapshot %s\n", path)
				return g.Snapshot(ctx, path)
			},
		})
		if err := engine.RunFile(*script); err != nil {
			fmt.Fprintf(os.Stderr, "Error running script: %v\n", err)
			os.Exit(1)
		}
	}

	if err := g.Snapshot(ctx, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	if *textOut {
		fmt.Println(g.RenderText())
	}
	fmt.Fprintf(os.Stderr, "Saved to %s\n", *output)
	fmt.Fprintf(os.Stderr, "%s\n", g.Status())
}

// parseScroll parses "150,-20,300".
func parseScroll(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		dy, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid scroll distance %q: %w", part, err)
		}
		out = append(out, dy)
	}
	return out, nil
}
