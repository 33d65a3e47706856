package visualtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"pixgrid/pkg/resource"
)

// Scenario is a named scroll position of a grid.
type Scenario struct {
	Name   string
	Scroll []int
}

// DefaultScenarios cover the top, a mid-row offset and the end of the list.
var DefaultScenarios = []Scenario{
	{Name: "top"},
	{Name: "mid-row", Scroll: []int{150}},
	{Name: "end", Scroll: []int{100000}},
	{Name: "round-trip", Scroll: []int{400, -400}},
}

// Apply scrolls g from the top through s.
func (s Scenario) Apply(g *resource.Grid) {
	g.View.ScrollToTop()
	for _, dy := range s.Scroll {
		g.View.ScrollBy(dy)
	}
}

// ReferencePath is where the reference image of s lives under dir.
func (s Scenario) ReferencePath(dir string) string {
	return filepath.Join(dir, s.Name+".png")
}

// UpdateReferences renders every scenario of g into dir.
func UpdateReferences(ctx context.Context, g *resource.Grid, dir string, scenarios []Scenario) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, s := range scenarios {
		s.Apply(g)
		if err := g.Snapshot(ctx, s.ReferencePath(dir)); err != nil {
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}
	}
	return nil
}

// CheckReferences renders every scenario of g and compares it with the
// reference in dir. It returns the names of the scenarios that differ.
func CheckReferences(ctx context.Context, g *resource.Grid, dir string, scenarios []Scenario, opts CompareOptions) ([]string, error) {
	var failed []string
	for _, s := range scenarios {
		s.Apply(g)
		img, err := g.RenderLoaded(ctx)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		expected, err := loadPNG(s.ReferencePath(dir))
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		res, err := CompareImages(img, expected, opts)
		if err != nil || !res.Match {
			failed = append(failed, s.Name)
		}
	}
	return failed, nil
}
