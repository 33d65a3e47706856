package resource

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"pixgrid/pkg/adapter"
	"pixgrid/pkg/config"
	"pixgrid/pkg/images"
	"pixgrid/pkg/layout"
	"pixgrid/pkg/render"
	"pixgrid/pkg/view"
)

// Grid is a configured RecyclerView together with its adapter and renderers.
// Commands drive it; it is not safe for concurrent use.
type Grid struct {
	View     *view.RecyclerView
	Photos   *adapter.Photos // nil unless the source is photos
	Loader   *images.Loader
	Renderer *render.Renderer
	Term     render.TermRenderer

	logger *slog.Logger
}

// Options select what a Grid shows.
type Options struct {
	Source   Source
	Linear   bool
	Captions bool
	Logger   *slog.Logger
}

// NewGrid builds a grid from cfg. For the photo source the list is fetched
// before it returns.
func NewGrid(ctx context.Context, cfg config.Config, opts Options) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	loader, err := images.NewLoader(images.Options{
		Entries: cfg.Images.MemoryCacheEntries,
		Workers: cfg.Images.PrefetchWorkers,
		Logger:  opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	rv := view.NewRecyclerView(cfg.Viewport.Width, cfg.Viewport.Height)
	rv.SetPadding(view.Padding{Top: cfg.Viewport.PaddingTop, Bottom: cfg.Viewport.PaddingBottom})
	rv.SetItemViewCacheSize(cfg.CacheSize())
	rv.Recycler().SetMaxPool(cfg.Recycler.MaxPool)
	if cfg.Grid.Spacing > 0 {
		rv.AddItemDecoration(view.SpacingDecoration(cfg.Grid.Spacing))
	}
	if opts.Linear {
		rv.SetLayoutManager(layout.NewLinearLayoutManager())
	} else {
		rv.SetLayoutManager(layout.NewGridLayoutManager(cfg.Grid.Columns))
	}

	g := &Grid{
		View:     rv,
		Loader:   loader,
		Renderer: render.NewRenderer(cfg.Viewport.Width, cfg.Viewport.Height),
		Term:     render.TermRenderer{CellWidth: 8, CellHeight: 16},
		logger:   opts.Logger,
	}

	switch opts.Source {
	case SourcePhotos:
		list, err := FetchPhotos(ctx, PhotoService(cfg.Photos))
		if err != nil {
			return nil, err
		}
		g.Photos = adapter.NewPhotos(list, loader)
		g.Photos.Captions = opts.Captions
		rv.SetAdapter(g.Photos)
	case SourceColors, "":
		rv.SetAdapter(adapter.NewColors(adapter.MaterialColors))
	default:
		return nil, fmt.Errorf("unknown source %q", opts.Source)
	}
	g.logger.Debug("grid ready", "source", opts.Source, "items", rv.ItemCount(), "children", rv.ChildCount())
	return g, nil
}

// Render paints the current viewport.
func (g *Grid) Render() image.Image {
	g.Renderer.Resize(g.View.Width(), g.View.Height())
	g.Renderer.Render(g.View)
	return g.Renderer.Image()
}

// RenderText returns the viewport drawn with terminal cells.
func (g *Grid) RenderText() string {
	return g.Term.Render(g.View)
}

// LoadImages loads the images the last render asked for and reports whether
// a new render would show more.
func (g *Grid) LoadImages(ctx context.Context) (bool, error) {
	if g.Photos == nil {
		return false, nil
	}
	return g.Photos.LoadPending(ctx)
}

// RenderLoaded renders, loads whatever was missing and renders again, so the
// result shows every image that could be loaded.
func (g *Grid) RenderLoaded(ctx context.Context) (image.Image, error) {
	g.Render()
	changed, err := g.LoadImages(ctx)
	if err != nil {
		return nil, err
	}
	if changed {
		g.Render()
	}
	return g.Renderer.Image(), nil
}

// Snapshot writes the fully loaded viewport to path as PNG.
func (g *Grid) Snapshot(ctx context.Context, path string) error {
	if _, err := g.RenderLoaded(ctx); err != nil {
		return err
	}
	if err := g.Renderer.SavePNG(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// Reload drops every image held in memory, forgets failed loads and lays the
// data out again, so the next render fetches what it shows.
func (g *Grid) Reload() {
	g.Loader.Purge()
	if g.Photos != nil {
		g.Photos.ResetFailed()
	}
	g.View.NotifyDataSetChanged()
	g.logger.Debug("grid reloaded", "children", g.View.ChildCount())
}

// Status is a one-line summary of the visible window, recycler and image cache.
func (g *Grid) Status() string {
	s := g.View.Recycler().Stats()
	decoded, cropped := g.Loader.Len()
	return fmt.Sprintf("items %d-%d of %d | views %d | created %d bound %d | cache hits %d | images %d/%d",
		g.View.FirstVisiblePosition(), g.View.LastVisiblePosition(), g.View.ItemCount(),
		g.View.ChildCount(), s.Created, s.Bound, s.CacheHits, decoded, cropped)
}
