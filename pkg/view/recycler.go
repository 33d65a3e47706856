package view

import "pixgrid/pkg/layout"

// Default sizes of the recycler's two reuse levels.
const (
	DefaultCacheSize = 2
	DefaultMaxPool   = 16
)

// RecyclerStats counts what the recycler did since it was created.
type RecyclerStats struct {
	Created   int
	Bound     int
	ScrapHits int
	CacheHits int
	Dropped   int
}

// Recycler hands views to the layout manager and takes them back.
//
// Released views first go to a small cache of still-bound views, so an item
// that scrolls back in right away does not need a rebind. Views evicted from
// the cache are unbound and kept in a pool for any position.
type Recycler struct {
	rv *RecyclerView

	scrap []*View
	cache []*View
	pool  []*View

	cacheSize int
	maxPool   int
	stats     RecyclerStats
}

func newRecycler(rv *RecyclerView) *Recycler {
	return &Recycler{rv: rv, cacheSize: DefaultCacheSize, maxPool: DefaultMaxPool}
}

// SetCacheSize sets how many bound views are kept for reuse at the same position.
func (r *Recycler) SetCacheSize(n int) {
	if n < 0 {
		n = 0
	}
	r.cacheSize = n
	r.trimCache()
}

// SetMaxPool limits the number of unbound views kept around.
func (r *Recycler) SetMaxPool(n int) {
	if n < 0 {
		n = 0
	}
	r.maxPool = n
	if len(r.pool) > n {
		r.stats.Dropped += len(r.pool) - n
		r.pool = r.pool[:n]
	}
}

func (r *Recycler) Stats() RecyclerStats {
	return r.stats
}

// CachedPositions returns the positions of the bound views in the cache, oldest first.
func (r *Recycler) CachedPositions() []int {
	out := make([]int, len(r.cache))
	for i, v := range r.cache {
		out[i] = v.position
	}
	return out
}

// PoolSize returns the number of unbound views waiting for reuse.
func (r *Recycler) PoolSize() int {
	return len(r.pool)
}

// ViewForPosition implements layout.Recycler.
func (r *Recycler) ViewForPosition(position int) (layout.View, bool) {
	v := r.viewForPosition(position)
	if v == nil {
		return nil, false
	}
	return v, true
}

func (r *Recycler) viewForPosition(position int) *View {
	adapter := r.rv.adapter
	if adapter == nil || position < 0 || position >= adapter.ItemCount() {
		return nil
	}
	match := func(v *View) bool { return v.position == position }
	if ids, ok := adapter.(StableIDs); ok {
		id := ids.ItemID(position)
		match = func(v *View) bool { return v.bound && v.itemID == id }
	}
	if v := take(&r.scrap, match); v != nil {
		r.stats.ScrapHits++
		r.reuse(v, position)
		return v
	}
	if v := take(&r.cache, match); v != nil {
		r.stats.CacheHits++
		r.reuse(v, position)
		return v
	}
	var v *View
	if n := len(r.pool); n > 0 {
		v = r.pool[n-1]
		r.pool[n-1] = nil
		r.pool = r.pool[:n-1]
	} else {
		v = adapter.CreateView(r.rv)
		r.rv.nextID++
		v.id = r.rv.nextID
		r.stats.Created++
	}
	r.bind(v, position)
	return v
}

// reuse prepares a scrapped or cached view for position. A view matched by
// stable id may have moved; it keeps its binding.
func (r *Recycler) reuse(v *View, position int) {
	if !v.bound {
		r.bind(v, position)
		return
	}
	v.position = position
}

func (r *Recycler) bind(v *View, position int) {
	r.rv.adapter.BindView(v, position)
	v.position = position
	if ids, ok := r.rv.adapter.(StableIDs); ok {
		v.itemID = ids.ItemID(position)
	}
	v.bound = true
	r.stats.Bound++
}

// RecycleView implements layout.Recycler. The view must already be detached.
func (r *Recycler) RecycleView(lv layout.View) {
	v := lv.(*View)
	if !v.bound || r.cacheSize == 0 {
		r.putPool(v)
		return
	}
	r.cache = append(r.cache, v)
	r.trimCache()
}

func (r *Recycler) trimCache() {
	for len(r.cache) > r.cacheSize {
		oldest := r.cache[0]
		r.cache = r.cache[1:]
		r.putPool(oldest)
	}
}

func (r *Recycler) putPool(v *View) {
	v.bound = false
	v.position = layout.NoPosition
	if len(r.pool) >= r.maxPool {
		r.stats.Dropped++
		return
	}
	r.pool = append(r.pool, v)
}

// scrapView parks an attached view during a layout pass.
func (r *Recycler) scrapView(v *View) {
	r.scrap = append(r.scrap, v)
}

// clearScrap releases the scrapped views the layout pass did not reuse.
func (r *Recycler) clearScrap() {
	scrap := r.scrap
	r.scrap = nil
	for _, v := range scrap {
		r.RecycleView(v)
	}
}

// invalidate unbinds every cached view after a data set change.
func (r *Recycler) invalidate() {
	cache := r.cache
	r.cache = nil
	for _, v := range cache {
		r.putPool(v)
	}
}

// take removes and returns the first view in views that match accepts.
func take(views *[]*View, match func(*View) bool) *View {
	s := *views
	for i, v := range s {
		if match(v) {
			*views = append(s[:i], s[i+1:]...)
			return v
		}
	}
	return nil
}
