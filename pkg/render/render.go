package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"pixgrid/pkg/view"
)

// Painter is implemented by view holders that draw their own content.
// r is the view's content bounds in viewport coordinates; drawing is clipped to it.
type Painter interface {
	Paint(dc *gg.Context, r image.Rectangle)
}

// Renderer rasterises the attached children of a RecyclerView.
type Renderer struct {
	context *gg.Context

	Background    color.Color
	ShowScrollbar bool
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		context:       gg.NewContext(width, height),
		Background:    color.White,
		ShowScrollbar: true,
	}
}

// Resize replaces the canvas when the size changes.
func (r *Renderer) Resize(width, height int) {
	if r.context.Width() == width && r.context.Height() == height {
		return
	}
	r.context = gg.NewContext(width, height)
}

// Render paints rv's children in child order.
func (r *Renderer) Render(rv *view.RecyclerView) {
	r.context.SetColor(r.Background)
	r.context.Clear()

	for _, child := range rv.Children() {
		b := child.Bounds()
		if b.Empty() || !b.Overlaps(r.context.Image().Bounds()) {
			continue
		}
		p, ok := child.Holder.(Painter)
		if !ok {
			r.drawPlaceholder(b)
			continue
		}
		r.context.Push()
		r.context.DrawRectangle(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()))
		r.context.Clip()
		p.Paint(r.context, b)
		r.context.ResetClip()
		r.context.Pop()
	}

	if r.ShowScrollbar {
		r.drawScrollbarIndicator(rv)
	}
}

// drawPlaceholder marks a child nothing knows how to paint.
func (r *Renderer) drawPlaceholder(b image.Rectangle) {
	x, y := float64(b.Min.X), float64(b.Min.Y)
	w, h := float64(b.Dx()), float64(b.Dy())
	r.context.SetRGB(0.9, 0.9, 0.9) // Light gray background
	r.context.DrawRectangle(x, y, w, h)
	r.context.Fill()

	r.context.SetRGB(0.5, 0.5, 0.5)
	r.context.SetLineWidth(2)
	r.context.DrawLine(x, y, x+w, y+h)
	r.context.DrawLine(x+w, y, x, y+h)
	r.context.Stroke()
}

const scrollbarWidth = 6.0

// drawScrollbarIndicator draws a thumb on the right edge whose extent is the
// share of adapter positions currently attached.
func (r *Renderer) drawScrollbarIndicator(rv *view.RecyclerView) {
	total := rv.ItemCount()
	first, last := rv.FirstVisiblePosition(), rv.LastVisiblePosition()
	if total == 0 || first < 0 || (first == 0 && last == total-1) {
		return
	}
	height := float64(r.context.Height())
	top := height * float64(first) / float64(total)
	thumb := max(height*float64(last-first+1)/float64(total), 2*scrollbarWidth)
	top = min(top, height-thumb)

	r.context.SetRGBA(0, 0, 0, 0.35)
	r.context.DrawRoundedRectangle(float64(r.context.Width())-scrollbarWidth-2, top, scrollbarWidth, thumb, scrollbarWidth/2)
	r.context.Fill()
}

// Image returns the canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}
