package adapter

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"pixgrid/pkg/text"
	"pixgrid/pkg/view"
)

// MaterialColors is the palette of the colour list sample.
var MaterialColors = []color.RGBA{
	rgb(0xe51c23),
	rgb(0xe91e63),
	rgb(0x9c27b0),
	rgb(0x673ab7),
	rgb(0x3f51b5),
	rgb(0x5677fc),
	rgb(0x03a9f4),
	rgb(0x00bcd4),
	rgb(0x009688),
	rgb(0x259b24),
	rgb(0x8bc34a),
	rgb(0x8bc34a),
	rgb(0xcddc39),
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// DefaultItemHeight is the height of a colour card in a list.
const DefaultItemHeight = 96

// Colors shows one rounded card per colour, labelled with its hex value.
type Colors struct {
	colors     []color.RGBA
	ItemHeight int
	Radius     float64
}

func NewColors(colors []color.RGBA) *Colors {
	return &Colors{colors: colors, ItemHeight: DefaultItemHeight, Radius: 8}
}

func (a *Colors) ItemCount() int {
	return len(a.colors)
}

func (a *Colors) CreateView(rv *view.RecyclerView) *view.View {
	return view.New(rv.NewLayoutParams(), &ColorHolder{height: a.ItemHeight, radius: a.Radius})
}

func (a *Colors) BindView(v *view.View, position int) {
	h := v.Holder.(*ColorHolder)
	h.Color = a.colors[position]
	h.Label = ColorLabel(h.Color)
}

// ColorLabel formats c as #RRGGBB.
func ColorLabel(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ColorHolder is the view holder of a colour card.
type ColorHolder struct {
	Color color.RGBA
	Label string

	height int
	radius float64
}

// IntrinsicSize lets wrap-content lists size the card.
func (h *ColorHolder) IntrinsicSize() (int, int) {
	return 0, h.height
}

func (h *ColorHolder) Paint(dc *gg.Context, r image.Rectangle) {
	x, y := float64(r.Min.X), float64(r.Min.Y)
	w, ht := float64(r.Dx()), float64(r.Dy())
	dc.SetColor(h.Color)
	dc.DrawRoundedRectangle(x, y, w, ht, h.radius)
	dc.Fill()

	dc.SetColor(labelColor(h.Color))
	dc.DrawStringAnchored(text.Ellipsize(dc, h.Label, w-2*h.radius), x+w/2, y+ht/2, 0.5, 0.5)
}

func (h *ColorHolder) Swatch() (string, color.Color) {
	return h.Label, h.Color
}

func labelColor(c color.RGBA) color.Color {
	if 299*int(c.R)+587*int(c.G)+114*int(c.B) > 128*1000 {
		return color.Black
	}
	return color.White
}
