package adapter

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"

	"pixgrid/pkg/images"
	"pixgrid/pkg/photos"
	"pixgrid/pkg/text"
	"pixgrid/pkg/view"
)

// PrimaryColor fills photo cells until their image is loaded.
var PrimaryColor = rgb(0x3f51b5)

// Photos shows a grid of photos. Images are cropped to the size a cell is
// measured at, which is only known once the cell is painted; painting never
// blocks and records what is missing for LoadPending.
type Photos struct {
	photos []photos.Photo
	loader *images.Loader

	// Captions draws title and author over the bottom of each photo.
	Captions bool

	mu      sync.Mutex
	pending map[request]struct{}
	failed  map[request]struct{}
}

type request struct {
	uri  string
	w, h int
}

func NewPhotos(list []photos.Photo, loader *images.Loader) *Photos {
	return &Photos{
		photos:  list,
		loader:  loader,
		pending: map[request]struct{}{},
		failed:  map[request]struct{}{},
	}
}

func (a *Photos) ItemCount() int {
	return len(a.photos)
}

// ItemID implements view.StableIDs.
func (a *Photos) ItemID(position int) int64 {
	return a.photos[position].ID
}

func (a *Photos) CreateView(rv *view.RecyclerView) *view.View {
	return view.New(rv.NewLayoutParams(), &PhotoHolder{adapter: a})
}

func (a *Photos) BindView(v *view.View, position int) {
	v.Holder.(*PhotoHolder).Photo = a.photos[position]
}

func (a *Photos) want(r request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, failed := a.failed[r]; !failed {
		a.pending[r] = struct{}{}
	}
}

func (a *Photos) hasFailed(r request) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.failed[r]
	return ok
}

// Pending reports the number of images painting asked for that are not loaded yet.
func (a *Photos) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// ResetFailed forgets failed and outstanding loads so the next paint asks again.
func (a *Photos) ResetFailed() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.failed)
	clear(a.pending)
}

// LoadPending loads every image painting asked for since the last call.
// It reports whether anything new became available.
func (a *Photos) LoadPending(ctx context.Context) (bool, error) {
	a.mu.Lock()
	batch := a.pending
	a.pending = map[request]struct{}{}
	a.mu.Unlock()
	if len(batch) == 0 {
		return false, nil
	}

	// group by size so each group is one prefetch
	bySize := map[[2]int][]string{}
	for r := range batch {
		k := [2]int{r.w, r.h}
		bySize[k] = append(bySize[k], r.uri)
	}
	for size, uris := range bySize {
		if err := a.loader.Prefetch(ctx, uris, size[0], size[1]); err != nil {
			return false, err
		}
	}

	loaded := false
	a.mu.Lock()
	for r := range batch {
		if _, ok := a.loader.Cached(r.uri, r.w, r.h); ok {
			loaded = true
		} else {
			a.failed[r] = struct{}{}
		}
	}
	a.mu.Unlock()
	return loaded, nil
}

// PhotoHolder is the view holder of a photo cell.
type PhotoHolder struct {
	Photo   photos.Photo
	adapter *Photos

	swatchURI string
	swatch    color.Color
}

// HeightForWidth makes a wrapped photo cell square, as in a single column list.
func (h *PhotoHolder) HeightForWidth(width int) int {
	return width
}

func (h *PhotoHolder) Paint(dc *gg.Context, r image.Rectangle) {
	req := request{h.Photo.ImageURL, r.Dx(), r.Dy()}
	img, ok := h.adapter.loader.Cached(req.uri, req.w, req.h)
	if ok {
		dc.DrawImage(img, r.Min.X, r.Min.Y)
		if h.adapter.Captions {
			h.paintCaption(dc, r)
		}
		return
	}

	dc.SetColor(PrimaryColor)
	dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	dc.Fill()
	if h.adapter.hasFailed(req) {
		dc.SetColor(color.White)
		dc.DrawStringAnchored("x", float64(r.Min.X+r.Dx()/2), float64(r.Min.Y+r.Dy()/2), 0.5, 0.5)
		return
	}
	if req.uri != "" {
		h.adapter.want(req)
	}
}

const captionPadding = 4

func (h *PhotoHolder) paintCaption(dc *gg.Context, r image.Rectangle) {
	lines := text.BreakIntoLines(dc, h.Caption(), float64(r.Dx()-2*captionPadding), 2)
	if len(lines) == 0 {
		return
	}
	lineHeight := dc.FontHeight() * 1.2
	strip := float64(len(lines))*lineHeight + 2*captionPadding
	bottom := float64(r.Max.Y)
	dc.SetRGBA(0, 0, 0, 0.55)
	dc.DrawRectangle(float64(r.Min.X), bottom-strip, float64(r.Dx()), strip)
	dc.Fill()

	dc.SetColor(color.White)
	for i, line := range lines {
		y := bottom - strip + captionPadding + float64(i)*lineHeight
		dc.DrawStringAnchored(line, float64(r.Min.X+captionPadding), y, 0, 1)
	}
}

// Swatch shows the photo's average colour once the image is in memory.
func (h *PhotoHolder) Swatch() (string, color.Color) {
	if h.Photo.ImageURL == "" {
		return h.Photo.Name, PrimaryColor
	}
	if h.swatchURI == h.Photo.ImageURL {
		return h.Photo.Name, h.swatch
	}
	if img, ok := h.adapter.loader.Cached(h.Photo.ImageURL, 0, 0); ok {
		h.swatchURI, h.swatch = h.Photo.ImageURL, images.CenterCrop(img, 1, 1).At(0, 0)
		return h.Photo.Name, h.swatch
	}
	h.adapter.want(request{uri: h.Photo.ImageURL})
	return h.Photo.Name, PrimaryColor
}

// Caption is the photo's title and author.
func (h *PhotoHolder) Caption() string {
	if h.Photo.User.Fullname == "" {
		return h.Photo.Name
	}
	return h.Photo.Name + " by " + h.Photo.User.Fullname
}
