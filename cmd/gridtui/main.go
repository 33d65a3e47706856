package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pixgrid/pkg/config"
	"pixgrid/pkg/layout"
	"pixgrid/pkg/resource"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	source := flag.String("source", "colors", "data set: colors or photos")
	linear := flag.Bool("linear", false, "lay items out as a single column list")
	logPath := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	// the terminal belongs to the UI, so logs only go to a file
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "gridtui")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
	layout.SetLogger(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	src, err := resource.ParseSource(*source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	g, err := resource.NewGrid(context.Background(), cfg, resource.Options{Source: src, Linear: *linear, Logger: logger})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building grid: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(g), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
