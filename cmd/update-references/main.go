package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pixgrid/pkg/config"
	"pixgrid/pkg/resource"
	"pixgrid/pkg/visualtest"
)

// Simple tool to generate or check reference snapshots of the colour grid.
func main() {
	configPath := flag.String("config", "", "TOML config file")
	dir := flag.String("dir", "testdata/references", "reference image directory")
	check := flag.Bool("check", false, "compare against the references instead of writing them")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: update-references [flags]\n\nScenarios:")
		for _, s := range visualtest.DefaultScenarios {
			fmt.Fprintf(os.Stderr, " %s", s.Name)
		}
		fmt.Fprintf(os.Stderr, "\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	g, err := resource.NewGrid(ctx, cfg, resource.Options{Source: resource.SourceColors})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building grid: %v\n", err)
		os.Exit(1)
	}

	if *check {
		failed, err := visualtest.CheckReferences(ctx, g, *dir, visualtest.DefaultScenarios, visualtest.DefaultOptions())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(failed) > 0 {
			fmt.Fprintf(os.Stderr, "Snapshots differ: %v\n", failed)
			os.Exit(1)
		}
		fmt.Println("✓ All snapshots match")
		return
	}

	if err := visualtest.UpdateReferences(ctx, g, *dir, visualtest.DefaultScenarios); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ %d reference images written to %s\n", len(visualtest.DefaultScenarios), *dir)
}
