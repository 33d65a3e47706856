package layout

import "log/slog"

// LinearLayoutManager stacks items vertically, one full-width child per chunk,
// each as tall as its measured height.
type LinearLayoutManager struct {
	filler
}

func NewLinearLayoutManager() *LinearLayoutManager {
	l := &LinearLayoutManager{}
	l.filler.name = "linear"
	l.filler.layoutChunk = l.layoutItem
	return l
}

func (l *LinearLayoutManager) GenerateDefaultLayoutParams() LayoutParams {
	return LayoutParams{Width: MatchParent, Height: WrapContent}
}

func (l *LinearLayoutManager) MeasureChildWithMargins(v View, widthUsed, heightUsed int) {
	l.host.MeasureChildWithMargins(v, widthUsed, heightUsed)
}

// layoutItem lays out the next item. It returns 0 when the item is missing or
// measures to no height, which ends the fill.
func (l *LinearLayoutManager) layoutItem(r Recycler, rs *RenderState, s State) int {
	view, ok := rs.Next(r)
	if !ok {
		return 0
	}
	if rs.LayoutDirection == LayoutStart {
		l.host.AddView(view, 0)
	} else {
		l.host.AddView(view, -1)
	}
	l.MeasureChildWithMargins(view, 0, 0)

	lp := view.LayoutParams()
	consumed := l.host.DecoratedMeasuredHeight(view) + lp.TopMargin + lp.BottomMargin
	left := l.host.PaddingLeft() + lp.LeftMargin
	right := left + l.host.DecoratedMeasuredWidth(view)
	var top, bottom int
	if rs.LayoutDirection == LayoutStart {
		bottom = rs.Offset - lp.BottomMargin
		top = rs.Offset - consumed + lp.TopMargin
	} else {
		top = rs.Offset + lp.TopMargin
		bottom = rs.Offset + consumed - lp.BottomMargin
	}
	l.host.LayoutDecorated(view, left, top, right, bottom)
	if consumed <= 0 {
		log().Warn("item has no height", slog.Int("position", l.host.Position(view)))
		return 0
	}
	return consumed
}
