package view

import (
	"image"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixgrid/pkg/layout"
)

type testHolder struct {
	label         string
	width, height int
}

func (h *testHolder) IntrinsicSize() (int, int) { return h.width, h.height }

type testAdapter struct {
	n      int
	height int
	onBind func(v *View, position int)
}

func (a *testAdapter) ItemCount() int { return a.n }

func (a *testAdapter) CreateView(rv *RecyclerView) *View {
	return New(rv.NewLayoutParams(), &testHolder{width: 10, height: a.height})
}

func (a *testAdapter) BindView(v *View, position int) {
	v.Holder.(*testHolder).label = strconv.Itoa(position)
	if a.onBind != nil {
		a.onBind(v, position)
	}
}

func newGridView(t *testing.T, width, height, columns, items int) *RecyclerView {
	t.Helper()
	rv := NewRecyclerView(width, height)
	rv.SetLayoutManager(layout.NewGridLayoutManager(columns))
	rv.SetAdapter(&testAdapter{n: items})
	return rv
}

func positions(rv *RecyclerView) []int {
	out := make([]int, len(rv.Children()))
	for i, c := range rv.Children() {
		out[i] = c.Position()
	}
	return out
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// accounted checks that every view the recycler created is attached, cached,
// pooled or was dropped.
func accounted(t *testing.T, rv *RecyclerView) {
	t.Helper()
	r := rv.Recycler()
	s := r.Stats()
	assert.Equal(t, s.Created, rv.ChildCount()+len(r.CachedPositions())+r.PoolSize()+s.Dropped)
}

func TestRecyclerView_GridLayout(t *testing.T) {
	rv := newGridView(t, 300, 300, 3, 10)

	require.Equal(t, seq(0, 8), positions(rv))
	assert.Equal(t, image.Rect(100, 100, 200, 200), rv.Children()[4].Bounds())
	assert.Equal(t, 100, rv.Children()[4].MeasuredWidth())
	assert.Equal(t, "4", rv.Children()[4].Holder.(*testHolder).label)
	assert.Equal(t, 0, rv.FirstVisiblePosition())
	assert.Equal(t, 8, rv.LastVisiblePosition())
	accounted(t, rv)
}

func TestRecyclerView_ScrollScenario(t *testing.T) {
	rv := newGridView(t, 300, 300, 3, 10)
	rv.SetItemViewCacheSize(3)

	assert.Equal(t, 100, rv.ScrollBy(150))
	assert.Equal(t, seq(3, 9), positions(rv))
	assert.Equal(t, []int{0, 1, 2}, rv.Recycler().CachedPositions())
	assert.Equal(t, 0, rv.ScrollBy(150))
	accounted(t, rv)
}

func TestRecyclerView_CacheAvoidsRebind(t *testing.T) {
	rv := newGridView(t, 300, 300, 3, 30)
	rv.SetItemViewCacheSize(6)

	require.Equal(t, 150, rv.ScrollBy(150))
	s := rv.Recycler().Stats()
	assert.Equal(t, 15, s.Created)
	assert.Equal(t, 15, s.Bound)

	require.Equal(t, -150, rv.ScrollBy(-150))
	s = rv.Recycler().Stats()
	assert.Equal(t, 3, s.CacheHits)
	assert.Equal(t, 15, s.Bound, "views coming back from the cache keep their binding")
	assert.Equal(t, seq(0, 8), positions(rv))
	assert.Equal(t, []int{14, 13, 12, 11, 10, 9}, rv.Recycler().CachedPositions())
	accounted(t, rv)
}

func TestRecyclerView_CacheOverflowGoesToPool(t *testing.T) {
	rv := newGridView(t, 300, 300, 3, 30)

	rv.ScrollBy(150)
	assert.Equal(t, []int{1, 2}, rv.Recycler().CachedPositions())
	assert.Zero(t, rv.Recycler().PoolSize(), "the evicted view went straight into the next row")
	assert.Equal(t, 14, rv.Recycler().Stats().Created)

	rv.ScrollBy(100)
	assert.Equal(t, seq(6, 17), positions(rv))
	assert.Equal(t, []int{4, 5}, rv.Recycler().CachedPositions())
	assert.Equal(t, 14, rv.Recycler().Stats().Created)
	accounted(t, rv)
}

func TestRecyclerView_PoolLimit(t *testing.T) {
	rv := newGridView(t, 300, 300, 3, 300)
	rv.SetItemViewCacheSize(0)
	rv.Recycler().SetMaxPool(2)

	rv.ScrollBy(2000)
	assert.LessOrEqual(t, rv.Recycler().PoolSize(), 2)
	assert.Positive(t, rv.Recycler().Stats().Dropped)
	accounted(t, rv)
}

func TestRecyclerView_LayoutTwiceReusesScrap(t *testing.T) {
	rv := newGridView(t, 300, 300, 3, 30)
	rv.ScrollBy(170)

	before := append([]*View(nil), rv.Children()...)
	bounds := make([]image.Rectangle, len(before))
	for i, c := range before {
		bounds[i] = c.Bounds()
	}
	bound := rv.Recycler().Stats().Bound

	rv.Layout()
	rv.Layout()

	require.Equal(t, len(before), rv.ChildCount())
	for i, c := range rv.Children() {
		assert.Same(t, before[i], c)
		assert.Equal(t, bounds[i], c.Bounds())
	}
	assert.Equal(t, bound, rv.Recycler().Stats().Bound)
	assert.Equal(t, 2*len(before), rv.Recycler().Stats().ScrapHits)
	accounted(t, rv)
}

func TestRecyclerView_NotifyDataSetChangedRebinds(t *testing.T) {
	a := &testAdapter{n: 30}
	rv := NewRecyclerView(300, 300)
	rv.SetLayoutManager(layout.NewGridLayoutManager(3))
	rv.SetAdapter(a)
	bound := rv.Recycler().Stats().Bound

	rv.NotifyDataSetChanged()
	assert.Equal(t, bound+9, rv.Recycler().Stats().Bound)
	assert.Equal(t, seq(0, 8), positions(rv))

	a.n = 4
	rv.NotifyDataSetChanged()
	assert.Equal(t, seq(0, 3), positions(rv))
	accounted(t, rv)
}

func TestRecyclerView_EmptyAdapter(t *testing.T) {
	rv := newGridView(t, 300, 300, 3, 0)
	assert.Zero(t, rv.ChildCount())
	assert.Equal(t, layout.NoPosition, rv.FirstVisiblePosition())
	assert.Zero(t, rv.ScrollBy(100))
	assert.Zero(t, rv.ScrollBy(-100))
}

func TestRecyclerView_NoAdapterOrManager(t *testing.T) {
	rv := NewRecyclerView(300, 300)
	rv.Layout()
	assert.Zero(t, rv.ScrollBy(10))

	rv.SetAdapter(&testAdapter{n: 10})
	assert.Zero(t, rv.ChildCount())
	assert.Equal(t, 10, rv.ItemCount())
}

func TestRecyclerView_Decorations(t *testing.T) {
	rv := newGridView(t, 300, 300, 3, 30)
	rv.AddItemDecoration(SpacingDecoration(4))

	c := rv.Children()[0]
	assert.Equal(t, image.Rect(4, 4, 96, 96), c.Bounds())
	assert.Equal(t, 0, rv.DecoratedTop(c))
	assert.Equal(t, 100, rv.DecoratedBottom(c))
	assert.Equal(t, 108, rv.DecoratedMeasuredWidth(c))

	require.Equal(t, 150, rv.ScrollBy(150))
	assert.Equal(t, 3, rv.FirstVisiblePosition())
}

func TestRecyclerView_Padding(t *testing.T) {
	rv := NewRecyclerView(300, 300)
	rv.SetPadding(Padding{Top: 20, Bottom: 50})
	rv.SetLayoutManager(layout.NewGridLayoutManager(3))
	rv.SetAdapter(&testAdapter{n: 10})

	assert.Equal(t, 20, rv.Children()[0].Bounds().Min.Y)
	assert.Zero(t, rv.ScrollBy(-10))

	// Last row ends at 420 and must come to rest at 250.
	assert.Equal(t, 170, rv.ScrollBy(500))
	assert.Equal(t, 250, rv.Children()[rv.ChildCount()-1].Bounds().Max.Y)
}

func TestRecyclerView_Resize(t *testing.T) {
	rv := newGridView(t, 300, 300, 3, 30)
	rv.Resize(600, 300)

	assert.Equal(t, seq(0, 5), positions(rv))
	assert.Equal(t, image.Rect(200, 0, 400, 200), rv.Children()[1].Bounds())
	accounted(t, rv)
}

func TestRecyclerView_LinearWrapContent(t *testing.T) {
	rv := NewRecyclerView(200, 100)
	rv.SetLayoutManager(layout.NewLinearLayoutManager())
	rv.SetAdapter(&testAdapter{n: 13, height: 30})

	require.Equal(t, seq(0, 3), positions(rv))
	assert.Equal(t, image.Rect(0, 30, 200, 60), rv.Children()[1].Bounds())

	assert.Equal(t, 290, rv.ScrollBy(1000))
	assert.Equal(t, 12, rv.LastVisiblePosition())
	assert.Equal(t, 100, rv.Children()[rv.ChildCount()-1].Bounds().Max.Y)

	rv.ScrollToTop()
	assert.Equal(t, 0, rv.FirstVisiblePosition())
	assert.Equal(t, 0, rv.Children()[0].Bounds().Min.Y)
	accounted(t, rv)
}

func TestRecyclerView_ReentrantCallsAreIgnored(t *testing.T) {
	var rv *RecyclerView
	var nested []int
	a := &testAdapter{n: 30}
	a.onBind = func(*View, int) {
		nested = append(nested, rv.ScrollBy(10))
		rv.Layout()
	}
	rv = NewRecyclerView(300, 300)
	rv.SetLayoutManager(layout.NewGridLayoutManager(3))
	rv.SetAdapter(a)

	require.Len(t, nested, 9)
	for _, n := range nested {
		assert.Zero(t, n)
	}
	assert.Equal(t, seq(0, 8), positions(rv))
}

func TestRecyclerView_SetAdapterKeepsCacheSettings(t *testing.T) {
	rv := newGridView(t, 300, 300, 3, 30)
	rv.SetItemViewCacheSize(6)
	rv.SetAdapter(&testAdapter{n: 30})

	rv.ScrollBy(150)
	rv.ScrollBy(-150)
	assert.Equal(t, 3, rv.Recycler().Stats().CacheHits)
}

type stableAdapter struct {
	*testAdapter
	ids []int64
}

func (a *stableAdapter) ItemID(position int) int64 { return a.ids[position] }

func TestRecyclerView_StableIDsKeepBindingAcrossDataSetChange(t *testing.T) {
	ids := make([]int64, 30)
	for i := range ids {
		ids[i] = int64(100 + i)
	}
	a := &stableAdapter{testAdapter: &testAdapter{n: 30}, ids: ids}
	rv := NewRecyclerView(300, 300)
	rv.SetLayoutManager(layout.NewGridLayoutManager(3))
	rv.SetAdapter(a)

	before := append([]*View(nil), rv.Children()...)
	bound := rv.Recycler().Stats().Bound

	rv.NotifyDataSetChanged()
	assert.Equal(t, bound, rv.Recycler().Stats().Bound)
	for i, c := range rv.Children() {
		assert.Same(t, before[i], c)
	}

	// Three new items at the front push the old ones down one row.
	a.ids = append([]int64{1, 2, 3}, a.ids...)
	a.n = 33
	rv.NotifyDataSetChanged()

	require.Equal(t, seq(0, 8), positions(rv))
	assert.Equal(t, bound+3, rv.Recycler().Stats().Bound)
	for i := 0; i < 6; i++ {
		moved := rv.Children()[i+3]
		assert.Same(t, before[i], moved)
		assert.Equal(t, i+3, moved.Position())
	}
	assert.Equal(t, []int{7, 8}, rv.Recycler().CachedPositions())
	accounted(t, rv)
}

type squareHolder struct{}

func (squareHolder) HeightForWidth(width int) int { return width / 2 }

type squareAdapter struct{ n int }

func (a squareAdapter) ItemCount() int { return a.n }

func (a squareAdapter) CreateView(rv *RecyclerView) *View {
	return New(rv.NewLayoutParams(), squareHolder{})
}

func (a squareAdapter) BindView(*View, int) {}

func TestRecyclerView_HeightForWidth(t *testing.T) {
	rv := NewRecyclerView(200, 250)
	rv.SetLayoutManager(layout.NewLinearLayoutManager())
	rv.SetAdapter(squareAdapter{n: 20})

	require.Equal(t, seq(0, 2), positions(rv))
	assert.Equal(t, image.Rect(0, 100, 200, 200), rv.Children()[1].Bounds())
	assert.Equal(t, 100, rv.ScrollBy(100))
}
