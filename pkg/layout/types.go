package layout

// Size hints understood by a host when measuring a child.
const (
	MatchParent = -1
	WrapContent = -2
	NoPosition  = -1
)

// LayoutParams are the sizing hints and margins attached to every child view.
// Layout managers may overwrite Width and Height before measuring.
type LayoutParams struct {
	Width  int
	Height int

	LeftMargin   int
	TopMargin    int
	RightMargin  int
	BottomMargin int
}

// View is an opaque child handle owned by the host and handed out by the recycler.
type View interface {
	LayoutParams() *LayoutParams
}

// State describes the data set of the current layout pass.
type State interface {
	// ItemCount must be read again on every pass; it may change between passes.
	ItemCount() int
}

// Recycler materialises views for adapter positions and takes them back.
type Recycler interface {
	// ViewForPosition returns false when the position no longer maps to an item.
	ViewForPosition(position int) (View, bool)
	RecycleView(v View)
}

// Host is the view group a layout manager arranges children in.
// All edges are in host coordinates; decorated edges include item decoration
// insets but not margins.
type Host interface {
	Width() int
	Height() int
	PaddingLeft() int
	PaddingTop() int
	PaddingRight() int
	PaddingBottom() int

	ChildCount() int
	ChildAt(index int) View
	// AddView attaches v at index; a negative index appends.
	AddView(v View, index int)
	RemoveAndRecycleViewAt(index int, r Recycler)
	DetachAndScrapAttachedViews(r Recycler)
	Position(v View) int

	MeasureChildWithMargins(v View, widthUsed, heightUsed int)
	LayoutDecorated(v View, left, top, right, bottom int)
	DecoratedLeft(v View) int
	DecoratedTop(v View) int
	DecoratedRight(v View) int
	DecoratedBottom(v View) int
	DecoratedMeasuredWidth(v View) int
	DecoratedMeasuredHeight(v View) int

	OffsetChildrenVertical(dy int)
}

// LayoutManager positions children of a Host and scrolls them.
type LayoutManager interface {
	Attach(h Host)
	GenerateDefaultLayoutParams() LayoutParams
	CanScrollVertically() bool
	OnLayoutChildren(r Recycler, s State)
	ScrollVerticallyBy(dy int, r Recycler, s State) int
	MeasureChildWithMargins(v View, widthUsed, heightUsed int)
}
