package layout

import "math"

// Direction in which new chunks are appended to the attached children.
const (
	LayoutStart = -1
	LayoutEnd   = 1
)

// Direction in which the adapter is traversed.
const (
	ItemDirectionHead = -1
	ItemDirectionTail = 1
)

// ScrollingOffsetNaN marks a RenderState that was not configured by a scroll.
const ScrollingOffsetNaN = math.MinInt

// RenderState keeps the temporary state of a fill pass. It holds nothing once
// the pass completes; managers keep one around and reset it per call.
type RenderState struct {
	// Offset is the pixel coordinate where the next chunk starts.
	Offset int

	// Available is the number of pixels left to fill in the layout direction.
	Available int

	// CurrentPosition is the adapter position of the next item.
	CurrentPosition int

	// LayoutDirection is LayoutStart or LayoutEnd.
	LayoutDirection int

	// ItemDirection is ItemDirectionHead or ItemDirectionTail.
	ItemDirection int

	// ScrollingOffset is the amount of scroll that can happen without creating
	// a new view. ScrollingOffsetNaN outside of scrolling.
	ScrollingOffset int
}

// HasMore reports whether CurrentPosition is a valid adapter position.
func (rs *RenderState) HasMore(itemCount int) bool {
	return rs.CurrentPosition >= 0 && rs.CurrentPosition < itemCount
}

// Next returns the view for CurrentPosition and advances to the following item.
// The position advances even when the recycler cannot supply a view.
func (rs *RenderState) Next(r Recycler) (View, bool) {
	v, ok := r.ViewForPosition(rs.CurrentPosition)
	rs.CurrentPosition += rs.ItemDirection
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// tracksScrolling reports whether the state was configured by a scroll.
func (rs *RenderState) tracksScrolling() bool {
	return rs.ScrollingOffset != ScrollingOffsetNaN
}

// foldOverdraw moves a negative Available into ScrollingOffset so recycling
// keeps the rows that still cover the overdrawn space.
func (rs *RenderState) foldOverdraw() {
	if rs.Available < 0 {
		rs.ScrollingOffset += rs.Available
	}
}
