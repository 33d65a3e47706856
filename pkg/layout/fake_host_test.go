package layout

type fakeView struct {
	lp       LayoutParams
	position int

	measuredWidth  int
	measuredHeight int

	left, top, right, bottom int
}

func (v *fakeView) LayoutParams() *LayoutParams { return &v.lp }

// fakeHost is a minimal host with no decorations.
type fakeHost struct {
	width, height int
	paddingTop    int
	paddingBottom int

	children []*fakeView
}

func (h *fakeHost) Width() int         { return h.width }
func (h *fakeHost) Height() int        { return h.height }
func (h *fakeHost) PaddingLeft() int   { return 0 }
func (h *fakeHost) PaddingTop() int    { return h.paddingTop }
func (h *fakeHost) PaddingRight() int  { return 0 }
func (h *fakeHost) PaddingBottom() int { return h.paddingBottom }
func (h *fakeHost) ChildCount() int    { return len(h.children) }

func (h *fakeHost) ChildAt(i int) View { return h.children[i] }

func (h *fakeHost) AddView(v View, index int) {
	fv := v.(*fakeView)
	if index < 0 || index >= len(h.children) {
		h.children = append(h.children, fv)
		return
	}
	h.children = append(h.children, nil)
	copy(h.children[index+1:], h.children[index:])
	h.children[index] = fv
}

func (h *fakeHost) RemoveAndRecycleViewAt(i int, r Recycler) {
	v := h.children[i]
	h.children = append(h.children[:i], h.children[i+1:]...)
	r.RecycleView(v)
}

func (h *fakeHost) DetachAndScrapAttachedViews(r Recycler) {
	for i := len(h.children) - 1; i >= 0; i-- {
		h.RemoveAndRecycleViewAt(i, r)
	}
}

func (h *fakeHost) Position(v View) int { return v.(*fakeView).position }

func (h *fakeHost) MeasureChildWithMargins(v View, widthUsed, heightUsed int) {
	fv := v.(*fakeView)
	fv.measuredWidth = fv.lp.Width
	fv.measuredHeight = fv.lp.Height
	if fv.lp.Width == MatchParent {
		fv.measuredWidth = h.width - widthUsed - fv.lp.LeftMargin - fv.lp.RightMargin
	}
}

func (h *fakeHost) LayoutDecorated(v View, l, t, r, b int) {
	fv := v.(*fakeView)
	fv.left, fv.top, fv.right, fv.bottom = l, t, r, b
}

func (h *fakeHost) DecoratedLeft(v View) int           { return v.(*fakeView).left }
func (h *fakeHost) DecoratedTop(v View) int            { return v.(*fakeView).top }
func (h *fakeHost) DecoratedRight(v View) int          { return v.(*fakeView).right }
func (h *fakeHost) DecoratedBottom(v View) int         { return v.(*fakeView).bottom }
func (h *fakeHost) DecoratedMeasuredWidth(v View) int  { return v.(*fakeView).measuredWidth }
func (h *fakeHost) DecoratedMeasuredHeight(v View) int { return v.(*fakeView).measuredHeight }

func (h *fakeHost) OffsetChildrenVertical(dy int) {
	for _, c := range h.children {
		c.top += dy
		c.bottom += dy
	}
}

func (h *fakeHost) positions() []int {
	out := make([]int, len(h.children))
	for i, c := range h.children {
		out[i] = c.position
	}
	return out
}

// fakeRecycler hands out fresh views and remembers what went back.
type fakeRecycler struct {
	itemCount int
	missing   map[int]bool
	// hint is applied to every new view to check that managers override it.
	hint LayoutParams

	requested int
	recycled  []int
}

func (r *fakeRecycler) ItemCount() int { return r.itemCount }

func (r *fakeRecycler) ViewForPosition(position int) (View, bool) {
	r.requested++
	if position < 0 || position >= r.itemCount || r.missing[position] {
		return nil, false
	}
	return &fakeView{lp: r.hint, position: position}, true
}

func (r *fakeRecycler) RecycleView(v View) {
	r.recycled = append(r.recycled, v.(*fakeView).position)
}

func newGrid(columns, width, height int, items int) (*GridLayoutManager, *fakeHost, *fakeRecycler) {
	h := &fakeHost{width: width, height: height}
	r := &fakeRecycler{itemCount: items}
	g := NewGridLayoutManager(columns)
	g.Attach(h)
	return g, h, r
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
