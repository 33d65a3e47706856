package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pixgrid/pkg/config"
	"pixgrid/pkg/layout"
	"pixgrid/pkg/resource"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	source := flag.String("source", "photos", "data set: colors or photos")
	linear := flag.Bool("linear", false, "lay items out as a single column list")
	verbose := flag.Bool("v", false, "debug logging")
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
	src, err := resource.ParseSource(*source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("pixgrid")
	w.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)))

	status := widget.NewLabel("Loading " + string(src) + "...")
	progress := widget.NewProgressBarInfinite()
	w.SetContent(container.NewBorder(nil, status, nil, nil, progress))

	go func() {
		g, err := resource.NewGrid(context.Background(), cfg, resource.Options{
			Source:   src,
			Linear:   *linear,
			Captions: true,
			Logger:   logger,
		})
		fyne.Do(func() {
			if err != nil {
				log.Printf("gridview: %v", err)
				progress.Stop()
				status.SetText("Error: " + err.Error())
				return
			}
			view := newGridView(g, func() { status.SetText(g.Status()) })
			w.SetContent(container.NewBorder(nil, status, nil, nil, view))
			w.Canvas().SetOnTypedKey(view.TypedKey)
			status.SetText(g.Status())
		})
	}()

	w.ShowAndRun()
}

// gridView shows a resource.Grid and scrolls it with the mouse wheel and keys.
type gridView struct {
	widget.BaseWidget

	grid     *resource.Grid
	img      *canvas.Image
	onChange func()
	loading  atomic.Bool
}

func newGridView(g *resource.Grid, onChange func()) *gridView {
	v := &gridView{grid: g, onChange: onChange}
	v.img = canvas.NewImageFromImage(g.Render())
	v.img.FillMode = canvas.ImageFillOriginal
	v.img.ScaleMode = canvas.ImageScalePixels
	v.ExtendBaseWidget(v)
	return v
}

func (v *gridView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

func (v *gridView) MinSize() fyne.Size {
	return fyne.NewSize(64, 64)
}

func (v *gridView) Resize(size fyne.Size) {
	v.BaseWidget.Resize(size)
	width, height := int(size.Width), int(size.Height)
	if width <= 0 || height <= 0 {
		return
	}
	v.grid.View.Resize(width, height)
	v.redraw()
}

// Scrolled implements fyne.Scrollable.
func (v *gridView) Scrolled(ev *fyne.ScrollEvent) {
	v.scroll(int(-ev.Scrolled.DY))
}

func (v *gridView) TypedKey(ev *fyne.KeyEvent) {
	page := v.grid.View.Height()
	switch ev.Name {
	case fyne.KeyDown:
		v.scroll(40)
	case fyne.KeyUp:
		v.scroll(-40)
	case fyne.KeyPageDown, fyne.KeySpace:
		v.scroll(page)
	case fyne.KeyPageUp:
		v.scroll(-page)
	case fyne.KeyHome:
		v.grid.View.ScrollToTop()
		v.redraw()
	case fyne.KeyR:
		v.grid.Reload()
		v.redraw()
	}
}

func (v *gridView) scroll(dy int) {
	if dy == 0 || v.grid.View.ScrollBy(dy) == 0 {
		return
	}
	v.redraw()
}

func (v *gridView) redraw() {
	v.img.Image = v.grid.Render()
	v.img.Refresh()
	if v.onChange != nil {
		v.onChange()
	}
	v.loadImages()
}

// loadImages fetches what the last frame was missing off the UI goroutine
// and redraws once it arrives.
func (v *gridView) loadImages() {
	if v.grid.Photos == nil || v.grid.Photos.Pending() == 0 || v.loading.Swap(true) {
		return
	}
	go func() {
		changed, err := v.grid.LoadImages(context.Background())
		if err != nil {
			log.Printf("gridview: loading images: %v", err)
		}
		fyne.Do(func() {
			v.loading.Store(false)
			if changed {
				v.redraw()
			}
		})
	}()
}
