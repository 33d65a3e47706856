package view

import (
	"pixgrid/pkg/layout"
)

// Padding around the content area of a RecyclerView.
type Padding struct {
	Left, Top, Right, Bottom int
}

// RecyclerView is a scrolling container that shows a window of adapter items.
// It owns the attached children and serialises every layout and scroll call;
// it is not safe for concurrent use.
type RecyclerView struct {
	width   int
	height  int
	padding Padding

	adapter       Adapter
	layoutManager layout.LayoutManager
	recycler      *Recycler
	decorations   []ItemDecoration

	children []*View
	nextID   int
	busy     bool
}

// NewRecyclerView creates an empty container of the given size.
func NewRecyclerView(width, height int) *RecyclerView {
	rv := &RecyclerView{width: width, height: height}
	rv.recycler = newRecycler(rv)
	return rv
}

// SetPadding sets the padding and lays children out again.
func (rv *RecyclerView) SetPadding(p Padding) {
	rv.padding = p
	rv.Layout()
}

// SetLayoutManager attaches lm and lays the current adapter out with it.
func (rv *RecyclerView) SetLayoutManager(lm layout.LayoutManager) {
	rv.removeAllViews()
	rv.layoutManager = lm
	if lm != nil {
		lm.Attach(rv)
	}
	rv.Layout()
}

func (rv *RecyclerView) LayoutManager() layout.LayoutManager {
	return rv.layoutManager
}

// SetAdapter swaps the adapter. Views of the previous adapter are discarded.
func (rv *RecyclerView) SetAdapter(a Adapter) {
	rv.removeAllViews()
	old := rv.recycler
	rv.recycler = newRecycler(rv)
	rv.recycler.cacheSize, rv.recycler.maxPool = old.cacheSize, old.maxPool
	rv.adapter = a
	rv.Layout()
}

func (rv *RecyclerView) Adapter() Adapter {
	return rv.adapter
}

// SetItemViewCacheSize sets the number of recently recycled views kept bound.
func (rv *RecyclerView) SetItemViewCacheSize(n int) {
	rv.recycler.SetCacheSize(n)
}

func (rv *RecyclerView) Recycler() *Recycler {
	return rv.recycler
}

func (rv *RecyclerView) AddItemDecoration(d ItemDecoration) {
	rv.decorations = append(rv.decorations, d)
	rv.Layout()
}

// NotifyDataSetChanged lays the data out again from the current first visible
// item. Every view is rebound unless the adapter has stable ids, in which case
// views are matched to their item by id and keep their binding.
func (rv *RecyclerView) NotifyDataSetChanged() {
	if _, stable := rv.adapter.(StableIDs); !stable {
		for _, c := range rv.children {
			c.bound = false
		}
		rv.recycler.invalidate()
	}
	rv.Layout()
}

// Resize changes the viewport size and lays children out again.
func (rv *RecyclerView) Resize(width, height int) {
	if width == rv.width && height == rv.height {
		return
	}
	rv.width, rv.height = width, height
	rv.Layout()
}

// Layout runs a full layout pass.
func (rv *RecyclerView) Layout() {
	if rv.layoutManager == nil || rv.busy {
		return
	}
	rv.busy = true
	defer func() { rv.busy = false }()

	if rv.adapter == nil {
		rv.removeAllViews()
		return
	}
	rv.layoutManager.OnLayoutChildren(rv.recycler, rv)
	rv.recycler.clearScrap()
}

// ScrollBy scrolls the content by dy pixels and returns the distance scrolled.
func (rv *RecyclerView) ScrollBy(dy int) int {
	if rv.layoutManager == nil || rv.adapter == nil || rv.busy || !rv.layoutManager.CanScrollVertically() {
		return 0
	}
	rv.busy = true
	defer func() { rv.busy = false }()
	return rv.layoutManager.ScrollVerticallyBy(dy, rv.recycler, rv)
}

// ScrollToTop scrolls back until the first item is fully shown.
func (rv *RecyclerView) ScrollToTop() {
	for rv.ScrollBy(-rv.height) != 0 {
	}
}

// Children returns the attached children, topmost first. The slice must not be modified.
func (rv *RecyclerView) Children() []*View {
	return rv.children
}

// FirstVisiblePosition returns the adapter position of the topmost child.
func (rv *RecyclerView) FirstVisiblePosition() int {
	if len(rv.children) == 0 {
		return layout.NoPosition
	}
	return rv.children[0].position
}

// LastVisiblePosition returns the adapter position of the bottommost child.
func (rv *RecyclerView) LastVisiblePosition() int {
	if len(rv.children) == 0 {
		return layout.NoPosition
	}
	return rv.children[len(rv.children)-1].position
}

// ItemCount implements layout.State.
func (rv *RecyclerView) ItemCount() int {
	if rv.adapter == nil {
		return 0
	}
	return rv.adapter.ItemCount()
}

// NewLayoutParams returns the layout manager's default params for a new view.
func (rv *RecyclerView) NewLayoutParams() layout.LayoutParams {
	if rv.layoutManager == nil {
		return layout.LayoutParams{Width: layout.WrapContent, Height: layout.WrapContent}
	}
	return rv.layoutManager.GenerateDefaultLayoutParams()
}

func (rv *RecyclerView) removeAllViews() {
	for i := len(rv.children) - 1; i >= 0; i-- {
		rv.RemoveAndRecycleViewAt(i, rv.recycler)
	}
}

// layout.Host

func (rv *RecyclerView) Width() int         { return rv.width }
func (rv *RecyclerView) Height() int        { return rv.height }
func (rv *RecyclerView) PaddingLeft() int   { return rv.padding.Left }
func (rv *RecyclerView) PaddingTop() int    { return rv.padding.Top }
func (rv *RecyclerView) PaddingRight() int  { return rv.padding.Right }
func (rv *RecyclerView) PaddingBottom() int { return rv.padding.Bottom }
func (rv *RecyclerView) ChildCount() int    { return len(rv.children) }

func (rv *RecyclerView) ChildAt(index int) layout.View {
	return rv.children[index]
}

func (rv *RecyclerView) AddView(lv layout.View, index int) {
	v := lv.(*View)
	if index < 0 || index >= len(rv.children) {
		rv.children = append(rv.children, v)
		return
	}
	rv.children = append(rv.children, nil)
	copy(rv.children[index+1:], rv.children[index:])
	rv.children[index] = v
}

func (rv *RecyclerView) RemoveAndRecycleViewAt(index int, r layout.Recycler) {
	v := rv.children[index]
	copy(rv.children[index:], rv.children[index+1:])
	rv.children[len(rv.children)-1] = nil
	rv.children = rv.children[:len(rv.children)-1]
	r.RecycleView(v)
}

// DetachAndScrapAttachedViews parks every child in the recycler's scrap so the
// following layout pass can reuse them without rebinding.
func (rv *RecyclerView) DetachAndScrapAttachedViews(layout.Recycler) {
	for _, v := range rv.children {
		rv.recycler.scrapView(v)
	}
	clear(rv.children)
	rv.children = rv.children[:0]
}

func (rv *RecyclerView) Position(lv layout.View) int {
	return lv.(*View).position
}

// MeasureChildWithMargins measures a child against the content area left after
// padding, margins, decorations and the used space.
func (rv *RecyclerView) MeasureChildWithMargins(lv layout.View, widthUsed, heightUsed int) {
	v := lv.(*View)
	v.insets = rv.itemDecorInsets(v)
	lp := v.params
	widthUsed += v.insets.Left + v.insets.Right
	heightUsed += v.insets.Top + v.insets.Bottom

	availWidth := rv.width - rv.padding.Left - rv.padding.Right - lp.LeftMargin - lp.RightMargin - widthUsed
	availHeight := rv.height - rv.padding.Top - rv.padding.Bottom - lp.TopMargin - lp.BottomMargin - heightUsed

	intrinsicWidth, intrinsicHeight := 0, 0
	if s, ok := v.Holder.(interface{ IntrinsicSize() (int, int) }); ok {
		intrinsicWidth, intrinsicHeight = s.IntrinsicSize()
	}
	v.measuredWidth = resolveSize(lp.Width, availWidth, intrinsicWidth)
	if hw, ok := v.Holder.(HeightForWidth); ok && lp.Height == layout.WrapContent {
		intrinsicHeight = hw.HeightForWidth(v.measuredWidth)
	}
	v.measuredHeight = resolveSize(lp.Height, availHeight, intrinsicHeight)
}

func resolveSize(hint, available, intrinsic int) int {
	switch {
	case hint >= 0:
		return hint
	case hint == layout.MatchParent:
		return max(available, 0)
	default:
		return max(min(intrinsic, available), 0)
	}
}

func (rv *RecyclerView) itemDecorInsets(v *View) Insets {
	var out Insets
	for _, d := range rv.decorations {
		in := d.ItemOffsets(v, rv)
		out.Left += in.Left
		out.Top += in.Top
		out.Right += in.Right
		out.Bottom += in.Bottom
	}
	return out
}

// LayoutDecorated places a child so that its decorated bounds are (l, t, r, b).
func (rv *RecyclerView) LayoutDecorated(lv layout.View, left, top, right, bottom int) {
	v := lv.(*View)
	in := v.insets
	v.setFrame(left+in.Left, top+in.Top, right-in.Right, bottom-in.Bottom)
}

func (rv *RecyclerView) DecoratedLeft(lv layout.View) int {
	v := lv.(*View)
	return v.left - v.insets.Left
}

func (rv *RecyclerView) DecoratedTop(lv layout.View) int {
	v := lv.(*View)
	return v.top - v.insets.Top
}

func (rv *RecyclerView) DecoratedRight(lv layout.View) int {
	v := lv.(*View)
	return v.right + v.insets.Right
}

func (rv *RecyclerView) DecoratedBottom(lv layout.View) int {
	v := lv.(*View)
	return v.bottom + v.insets.Bottom
}

func (rv *RecyclerView) DecoratedMeasuredWidth(lv layout.View) int {
	v := lv.(*View)
	return v.measuredWidth + v.insets.Left + v.insets.Right
}

func (rv *RecyclerView) DecoratedMeasuredHeight(lv layout.View) int {
	v := lv.(*View)
	return v.measuredHeight + v.insets.Top + v.insets.Bottom
}

func (rv *RecyclerView) OffsetChildrenVertical(dy int) {
	for _, v := range rv.children {
		v.offsetVertical(dy)
	}
}
