package layout

import "log/slog"

// chunkFunc lays out the next chunk (a row or a single item) described by rs
// and returns the number of pixels it consumed along the scroll axis.
type chunkFunc func(r Recycler, rs *RenderState, s State) int

// filler holds the fill, recycle and scroll machinery shared by the managers.
// The concrete manager supplies the chunk primitive.
type filler struct {
	name        string
	host        Host
	renderState RenderState
	layoutChunk chunkFunc
}

func (f *filler) Attach(h Host) {
	f.host = h
}

func (f *filler) CanScrollVertically() bool {
	return true
}

func (f *filler) GenerateDefaultLayoutParams() LayoutParams {
	return LayoutParams{Width: MatchParent, Height: MatchParent}
}

// OnLayoutChildren lays children out from scratch, starting at the first attached
// child when there is one, otherwise at item 0 below the top padding.
func (f *filler) OnLayoutChildren(r Recycler, s State) {
	if f.host == nil {
		return
	}
	anchorCoordinate, anchorPosition := f.host.PaddingTop(), 0
	if f.host.ChildCount() > 0 {
		ref := f.childClosestToStart()
		anchorCoordinate = f.decoratedVerticalStart(ref)
		anchorPosition = f.host.Position(ref)
	}
	itemCount := s.ItemCount()
	if anchorPosition >= itemCount {
		anchorPosition = 0
		anchorCoordinate = f.host.PaddingTop()
	}
	log().Debug("layout children",
		slog.String("manager", f.name),
		slog.Int("anchorPosition", anchorPosition),
		slog.Int("anchorCoordinate", anchorCoordinate),
		slog.Int("itemCount", itemCount))

	f.host.DetachAndScrapAttachedViews(r)

	f.updateRenderStateToFillEnd(anchorPosition, anchorCoordinate)
	filled := f.fill(r, &f.renderState, s)

	log().Debug("layout children done",
		slog.String("manager", f.name),
		slog.Int("filled", filled),
		slog.Int("children", f.host.ChildCount()))
}

// ScrollVerticallyBy scrolls by dy pixels and returns the distance actually
// scrolled, which is 0 when there is nothing more to show in that direction.
func (f *filler) ScrollVerticallyBy(dy int, r Recycler, s State) int {
	return f.scrollBy(dy, r, s)
}

func (f *filler) scrollBy(dy int, r Recycler, s State) int {
	if f.host == nil || f.host.ChildCount() == 0 || dy == 0 {
		return 0
	}
	layoutDirection := LayoutEnd
	if dy < 0 {
		layoutDirection = LayoutStart
	}
	absDy := dy
	if absDy < 0 {
		absDy = -absDy
	}
	f.updateRenderStateForScroll(layoutDirection, absDy)
	freeScroll := f.renderState.ScrollingOffset
	consumed := freeScroll + f.fill(r, &f.renderState, s)
	if f.host.ChildCount() == 0 {
		log().Warn("scroll recycled every child", slog.String("manager", f.name), slog.Int("dy", dy))
		return 0
	}

	// Extra distance past the last (or before the first) child that uncovers
	// the padding at that edge.
	var paddingOffset int
	if layoutDirection == LayoutEnd {
		paddingOffset = f.host.PaddingBottom() - (f.end() - f.decoratedVerticalEnd(f.childClosestToEnd()))
	} else {
		paddingOffset = f.host.PaddingTop() - f.decoratedVerticalStart(f.childClosestToStart())
	}
	if consumed <= paddingOffset {
		consumed = paddingOffset
	}
	if consumed <= 0 {
		log().Debug("no more items to scroll", slog.String("manager", f.name), slog.Int("dy", dy))
		return 0
	}
	scrolled := dy
	if absDy > consumed {
		scrolled = layoutDirection * consumed
	}
	f.host.OffsetChildrenVertical(-scrolled)
	log().Debug("scroll",
		slog.String("manager", f.name),
		slog.Int("dy", dy),
		slog.Int("scrolled", scrolled),
		slog.Int("children", f.host.ChildCount()))
	return scrolled
}

// fill fills the space described by rs and returns the number of pixels added.
func (f *filler) fill(r Recycler, rs *RenderState, s State) int {
	if rs.tracksScrolling() {
		if rs.Available < 0 {
			rs.ScrollingOffset += rs.Available
			rs.Available = 0
		}
		f.recycleByRenderState(r, rs)
	}
	start := rs.Available
	for rs.Available > 0 && rs.HasMore(s.ItemCount()) {
		consumed := f.layoutChunk(r, rs, s)
		if consumed <= 0 {
			break
		}
		rs.Available -= consumed
		rs.Offset += consumed * rs.LayoutDirection

		if rs.tracksScrolling() {
			rs.ScrollingOffset += consumed
			rs.foldOverdraw()
			f.recycleByRenderState(r, rs)
		}
	}
	filled := start - rs.Available
	log().Debug("fill",
		slog.String("manager", f.name),
		slog.Int("filled", filled),
		slog.Int("available", rs.Available),
		slog.Int("position", rs.CurrentPosition))
	return filled
}

// recycleByRenderState recycles from the edge that trails the new content.
func (f *filler) recycleByRenderState(r Recycler, rs *RenderState) {
	before := f.host.ChildCount()
	if rs.LayoutDirection == LayoutStart {
		f.recycleViewsFromEnd(r, rs.ScrollingOffset)
	} else {
		f.recycleViewsFromStart(r, rs.ScrollingOffset)
	}
	log().Debug("recycle",
		slog.String("manager", f.name),
		slog.Int("recycled", before-f.host.ChildCount()),
		slog.Int("dt", rs.ScrollingOffset))
}

// recycleViewsFromStart releases the leading children that end at or above
// start+dt. Children are added a row at a time, so the scan stops at the first
// child that is still visible.
func (f *filler) recycleViewsFromStart(r Recycler, dt int) {
	if dt < 0 {
		log().Warn("recycle from start called with a negative bound", slog.String("manager", f.name), slog.Int("dt", dt))
		dt = 0
	}
	limit := f.start() + dt
	for f.host.ChildCount() > 0 {
		child := f.host.ChildAt(0)
		if f.decoratedVerticalEnd(child) > limit {
			return
		}
		f.host.RemoveAndRecycleViewAt(0, r)
	}
}

// recycleViewsFromEnd releases the trailing children that start at or below
// end-dt.
func (f *filler) recycleViewsFromEnd(r Recycler, dt int) {
	if dt < 0 {
		log().Warn("recycle from end called with a negative bound", slog.String("manager", f.name), slog.Int("dt", dt))
		dt = 0
	}
	limit := f.end() - dt
	for i := f.host.ChildCount() - 1; i >= 0; i-- {
		child := f.host.ChildAt(i)
		if f.decoratedVerticalStart(child) < limit {
			return
		}
		f.host.RemoveAndRecycleViewAt(i, r)
	}
}

// updateRenderStateForScroll prepares a scroll of requiredSpace pixels.
// Space already covered by the edge child is consumed by translation first.
func (f *filler) updateRenderStateForScroll(layoutDirection, requiredSpace int) {
	rs := &f.renderState
	rs.LayoutDirection = layoutDirection

	var child View
	var fastScrollSpace int
	if layoutDirection == LayoutEnd {
		child = f.childClosestToEnd()
		rs.ItemDirection = ItemDirectionTail
		rs.Offset = f.decoratedVerticalEnd(child)
		fastScrollSpace = rs.Offset - f.end()
	} else {
		child = f.childClosestToStart()
		rs.ItemDirection = ItemDirectionHead
		rs.Offset = f.decoratedVerticalStart(child)
		fastScrollSpace = f.start() - rs.Offset
	}
	rs.CurrentPosition = f.host.Position(child) + rs.ItemDirection
	if fastScrollSpace >= requiredSpace {
		rs.Available = 0
		rs.ScrollingOffset = requiredSpace
	} else {
		rs.Available = requiredSpace - fastScrollSpace
		rs.ScrollingOffset = fastScrollSpace
	}
}

// updateRenderStateToFillEnd prepares a top to bottom fill from position at offset.
func (f *filler) updateRenderStateToFillEnd(position, offset int) {
	f.renderState = RenderState{
		Offset:          offset,
		Available:       f.end() - offset,
		CurrentPosition: position,
		LayoutDirection: LayoutEnd,
		ItemDirection:   ItemDirectionTail,
		ScrollingOffset: ScrollingOffsetNaN,
	}
}

func (f *filler) childClosestToStart() View {
	return f.host.ChildAt(0)
}

func (f *filler) childClosestToEnd() View {
	return f.host.ChildAt(f.host.ChildCount() - 1)
}

// decoratedVerticalStart is the top of the child's decorated bounds including its margin.
func (f *filler) decoratedVerticalStart(v View) int {
	return f.host.DecoratedTop(v) - v.LayoutParams().TopMargin
}

// decoratedVerticalEnd is the bottom of the child's decorated bounds including its margin.
func (f *filler) decoratedVerticalEnd(v View) int {
	return f.host.DecoratedBottom(v) + v.LayoutParams().BottomMargin
}

func (f *filler) start() int {
	return 0
}

func (f *filler) end() int {
	return f.host.Height()
}
