package view

// Adapter supplies the data set a RecyclerView displays.
type Adapter interface {
	ItemCount() int
	// CreateView returns a new, unbound view.
	CreateView(rv *RecyclerView) *View
	// BindView binds v to the item at position.
	BindView(v *View, position int)
}

// StableIDs is implemented by adapters whose items carry stable identifiers.
// The recycler then matches scrapped and cached views by id, so a view whose
// item only moved keeps its binding across NotifyDataSetChanged.
type StableIDs interface {
	ItemID(position int) int64
}

// HeightForWidth is implemented by holders whose wrapped height depends on the
// width they are measured at.
type HeightForWidth interface {
	HeightForWidth(width int) int
}

// ItemDecoration reserves space around children.
type ItemDecoration interface {
	ItemOffsets(v *View, rv *RecyclerView) Insets
}

// SpacingDecoration insets every child by the same amount on all sides.
type SpacingDecoration int

func (d SpacingDecoration) ItemOffsets(*View, *RecyclerView) Insets {
	s := int(d)
	return Insets{Left: s, Top: s, Right: s, Bottom: s}
}
