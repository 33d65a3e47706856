package layout

import "log/slog"

// GridLayoutManager lays items out in rows of square cells. The cell side is
// the host width divided by the column count, and every child is measured to
// that size whatever its own layout params ask for.
type GridLayoutManager struct {
	filler
	columns int
}

// NewGridLayoutManager returns a grid with a fixed number of columns.
// Values below 1 are treated as 1.
func NewGridLayoutManager(columns int) *GridLayoutManager {
	if columns < 1 {
		columns = 1
	}
	g := &GridLayoutManager{columns: columns}
	g.filler.name = "grid"
	g.filler.layoutChunk = g.layoutRow
	return g
}

// Columns returns the column count the grid was created with.
func (g *GridLayoutManager) Columns() int {
	return g.columns
}

// CellSize returns the side of a cell for the current host width.
func (g *GridLayoutManager) CellSize() int {
	if g.host == nil {
		return 0
	}
	return g.host.Width() / g.columns
}

// layoutRow lays out a single row. It always reports a full cell height, even
// for a partial last row or a row cut short by a missing item. A host narrower
// than the column count has no room for a cell, so nothing is laid out.
func (g *GridLayoutManager) layoutRow(r Recycler, rs *RenderState, s State) int {
	cellSize := g.CellSize()
	if cellSize <= 0 {
		log().Warn("host too narrow for the grid",
			slog.Int("width", g.host.Width()),
			slog.Int("columns", g.columns))
		return 0
	}
	backward := rs.LayoutDirection == LayoutStart
	var top, bottom int
	if backward {
		bottom = rs.Offset
		top = bottom - cellSize
	} else {
		top = rs.Offset
		bottom = top + cellSize
	}

	for placed := 0; placed < g.columns && rs.HasMore(s.ItemCount()); placed++ {
		column := rs.CurrentPosition % g.columns
		left := cellSize * column
		right := left + cellSize

		view, ok := rs.Next(r)
		if !ok {
			break
		}
		if backward {
			g.host.AddView(view, 0)
		} else {
			g.host.AddView(view, -1)
		}
		g.MeasureChildWithMargins(view, 0, 0)

		lp := view.LayoutParams()
		g.host.LayoutDecorated(view,
			left+lp.LeftMargin, top+lp.TopMargin,
			right-lp.RightMargin, bottom-lp.BottomMargin)
	}
	return cellSize
}

// MeasureChildWithMargins forces the child to a square cell.
func (g *GridLayoutManager) MeasureChildWithMargins(v View, widthUsed, heightUsed int) {
	size := g.CellSize()
	lp := v.LayoutParams()
	lp.Width = size
	lp.Height = size
	g.host.MeasureChildWithMargins(v, widthUsed, heightUsed)
}
