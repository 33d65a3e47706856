package view

import (
	"image"

	"pixgrid/pkg/layout"
)

// View is a single child of a RecyclerView. Adapters keep their per-item
// payload in Holder.
type View struct {
	id     int
	params layout.LayoutParams

	// Holder is the adapter's view holder; set once by Adapter.CreateView.
	Holder any

	position       int
	itemID         int64
	bound          bool
	measuredWidth  int
	measuredHeight int
	left, top      int
	right, bottom  int
	insets         Insets
}

// Insets are the space item decorations reserve around a child.
type Insets struct {
	Left, Top, Right, Bottom int
}

// New returns an unbound view with the given layout params.
func New(params layout.LayoutParams, holder any) *View {
	return &View{params: params, Holder: holder, position: layout.NoPosition}
}

func (v *View) LayoutParams() *layout.LayoutParams {
	return &v.params
}

// ID identifies the view instance for its whole life, across rebinds.
func (v *View) ID() int {
	return v.id
}

// Position returns the adapter position the view is bound to, or layout.NoPosition.
func (v *View) Position() int {
	return v.position
}

func (v *View) MeasuredWidth() int {
	return v.measuredWidth
}

func (v *View) MeasuredHeight() int {
	return v.measuredHeight
}

// Bounds returns the content bounds in host coordinates.
func (v *View) Bounds() image.Rectangle {
	return image.Rect(v.left, v.top, v.right, v.bottom)
}

func (v *View) setFrame(left, top, right, bottom int) {
	v.left, v.top, v.right, v.bottom = left, top, right, bottom
}

func (v *View) offsetVertical(dy int) {
	v.top += dy
	v.bottom += dy
}
