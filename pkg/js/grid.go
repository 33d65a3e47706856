package js

import (
	"errors"

	"github.com/dop251/goja"

	"pixgrid/pkg/layout"
	"pixgrid/pkg/view"
)

// gridContext holds the bindings of the `grid` global. It keeps one proxy
// per view so a child seen twice is the same JS object (=== holds across
// calls as long as the view stays alive).
type gridContext struct {
	vm       *goja.Runtime
	rv       *view.RecyclerView
	snapshot SnapshotFunc
	images   ImageCache
	cache    map[*view.View]*goja.Object
}

func registerGrid(vm *goja.Runtime, rv *view.RecyclerView, opts Options) *gridContext {
	ctx := &gridContext{
		vm:       vm,
		rv:       rv,
		snapshot: opts.Snapshot,
		images:   opts.Images,
		cache:    make(map[*view.View]*goja.Object),
	}

	grid := vm.NewObject()
	grid.Set("scrollBy", func(call goja.FunctionCall) goja.Value {
		dy := ctx.intArg(call, 0, "scrollBy")
		return vm.ToValue(rv.ScrollBy(dy))
	})
	grid.Set("scrollToTop", func(goja.FunctionCall) goja.Value {
		rv.ScrollToTop()
		return goja.Undefined()
	})
	grid.Set("layout", func(goja.FunctionCall) goja.Value {
		rv.Layout()
		return goja.Undefined()
	})
	grid.Set("notifyDataSetChanged", func(goja.FunctionCall) goja.Value {
		rv.NotifyDataSetChanged()
		return goja.Undefined()
	})
	grid.Set("resize", func(call goja.FunctionCall) goja.Value {
		w := ctx.intArg(call, 0, "resize")
		h := ctx.intArg(call, 1, "resize")
		if w <= 0 || h <= 0 {
			panic(vm.NewTypeError("resize: width and height must be positive"))
		}
		rv.Resize(w, h)
		return goja.Undefined()
	})
	grid.Set("itemCount", func(goja.FunctionCall) goja.Value {
		return vm.ToValue(rv.ItemCount())
	})
	grid.Set("childCount", func(goja.FunctionCall) goja.Value {
		return vm.ToValue(rv.ChildCount())
	})
	grid.Set("firstVisible", func(goja.FunctionCall) goja.Value {
		return vm.ToValue(rv.FirstVisiblePosition())
	})
	grid.Set("lastVisible", func(goja.FunctionCall) goja.Value {
		return vm.ToValue(rv.LastVisiblePosition())
	})
	grid.Set("children", func(goja.FunctionCall) goja.Value {
		return ctx.childArray()
	})
	grid.Set("positions", func(goja.FunctionCall) goja.Value {
		out := make([]any, rv.ChildCount())
		for i, c := range rv.Children() {
			out[i] = c.Position()
		}
		return vm.NewArray(out...)
	})
	grid.Set("stats", func(goja.FunctionCall) goja.Value {
		return ctx.stats()
	})
	grid.Set("snapshot", func(call goja.FunctionCall) goja.Value {
		if ctx.snapshot == nil {
			panic(vm.NewGoError(errNoSnapshot))
		}
		name := "snapshot"
		if len(call.Arguments) > 0 {
			name = call.Arguments[0].String()
		}
		if err := ctx.snapshot(name); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	})
	grid.DefineAccessorProperty("width", vm.ToValue(func() int { return rv.Width() }), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	grid.DefineAccessorProperty("height", vm.ToValue(func() int { return rv.Height() }), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	grid.DefineAccessorProperty("columns", vm.ToValue(func() int {
		if g, ok := rv.LayoutManager().(*layout.GridLayoutManager); ok {
			return g.Columns()
		}
		return 1
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	vm.Set("grid", grid)
	return ctx
}

var errNoSnapshot = errors.New("grid.snapshot: no snapshot target configured")

func (ctx *gridContext) intArg(call goja.FunctionCall, i int, fn string) int {
	if len(call.Arguments) <= i {
		panic(ctx.vm.NewTypeError("Failed to execute '" + fn + "': missing argument"))
	}
	return int(call.Arguments[i].ToInteger())
}

func (ctx *gridContext) childArray() goja.Value {
	children := ctx.rv.Children()
	items := make([]any, len(children))
	for i, c := range children {
		items[i] = ctx.childProxy(c)
	}
	return ctx.vm.NewArray(items...)
}

// childProxy returns a live view of v: its properties read the view's
// current state on every access.
func (ctx *gridContext) childProxy(v *view.View) *goja.Object {
	if obj, ok := ctx.cache[v]; ok {
		return obj
	}
	vm := ctx.vm
	obj := vm.NewObject()
	prop := func(name string, get func() int) {
		obj.DefineAccessorProperty(name, vm.ToValue(get), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}
	prop("id", v.ID)
	prop("position", v.Position)
	prop("left", func() int { return v.Bounds().Min.X })
	prop("top", func() int { return v.Bounds().Min.Y })
	prop("right", func() int { return v.Bounds().Max.X })
	prop("bottom", func() int { return v.Bounds().Max.Y })
	prop("width", v.MeasuredWidth)
	prop("height", v.MeasuredHeight)
	ctx.cache[v] = obj
	return obj
}

func (ctx *gridContext) stats() goja.Value {
	r := ctx.rv.Recycler()
	s := r.Stats()
	obj := ctx.vm.NewObject()
	obj.Set("created", s.Created)
	obj.Set("bound", s.Bound)
	obj.Set("scrapHits", s.ScrapHits)
	obj.Set("cacheHits", s.CacheHits)
	obj.Set("dropped", s.Dropped)
	obj.Set("pooled", r.PoolSize())
	obj.Set("cached", len(r.CachedPositions()))
	if ctx.images != nil {
		decoded, cropped := ctx.images.Len()
		obj.Set("images", decoded)
		obj.Set("crops", cropped)
	}
	return obj
}
