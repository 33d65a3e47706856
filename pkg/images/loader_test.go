package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func solidPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

// createTestPNGDataURI creates a small 2x2 red PNG as a data URI.
func createTestPNGDataURI(t *testing.T) string {
	encoded := base64.StdEncoding.EncodeToString(solidPNG(t, 2, 2, color.RGBA{255, 0, 0, 255}))
	return "data:image/png;base64," + encoded
}

type fakeFetcher struct {
	mu    sync.Mutex
	calls map[string]int
	body  map[string][]byte
	delay time.Duration
	count atomic.Int32
}

func (f *fakeFetcher) Fetch(ctx context.Context, uri string) ([]byte, string, error) {
	f.count.Add(1)
	f.mu.Lock()
	f.calls[uri]++
	body, ok := f.body[uri]
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, "", ctx.Err()
		}
	}
	if !ok {
		return nil, "", errors.New("not found")
	}
	return body, "image/png", nil
}

func newFakeFetcher(bodies map[string][]byte) *fakeFetcher {
	return &fakeFetcher{calls: map[string]int{}, body: bodies}
}

func TestIsDataURI(t *testing.T) {
	if !IsDataURI("data:image/png;base64,abc") {
		t.Error("expected true for data URI")
	}
	if IsDataURI("/path/to/file.png") {
		t.Error("expected false for file path")
	}
	if IsDataURI("") {
		t.Error("expected false for empty string")
	}
}

func TestLoadImageFromDataURI(t *testing.T) {
	img, err := LoadImageFromDataURI(createTestPNGDataURI(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 2 {
		t.Errorf("expected 2x2 image, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestLoadImageFromDataURI_Invalid(t *testing.T) {
	tests := []string{
		"not-a-data-uri",
		"data:image/png;base64", // no comma
		"data:image/png;base64,!!!invalid-base64!!!",
		"data:image/png;base64,aGVsbG8=", // valid base64 but not an image
	}
	for _, uri := range tests {
		_, err := LoadImageFromDataURI(uri)
		if err == nil {
			t.Errorf("expected error for %q", uri)
		}
	}
}

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blue.png")
	if err := os.WriteFile(path, solidPNG(t, 4, 3, color.RGBA{0, 0, 255, 255}), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := NewLoader(Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, uri := range []string{path, "file://" + path} {
		img, err := l.Load(context.Background(), uri)
		if err != nil {
			t.Fatalf("Load(%q): %v", uri, err)
		}
		if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
			t.Errorf("unexpected bounds %v", img.Bounds())
		}
	}
	if _, err := l.Load(context.Background(), filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoader_NetworkCachesAndShares(t *testing.T) {
	const uri = "https://img.example.com/1.png"
	f := newFakeFetcher(map[string][]byte{uri: solidPNG(t, 8, 4, color.White)})
	f.delay = 20 * time.Millisecond
	l, err := NewLoader(Options{Fetcher: f})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Load(context.Background(), uri); err != nil {
				t.Errorf("load: %v", err)
			}
		}()
	}
	wg.Wait()
	if n := f.calls[uri]; n != 1 {
		t.Errorf("expected one fetch for concurrent loads, got %d", n)
	}

	if _, err := l.Load(context.Background(), "https://img.example.com/404.png"); err == nil {
		t.Error("expected error for failed fetch")
	}
}

func TestLoader_CroppedCacheKeyIncludesSize(t *testing.T) {
	const uri = "https://img.example.com/1.png"
	f := newFakeFetcher(map[string][]byte{uri: solidPNG(t, 8, 4, color.White)})
	l, err := NewLoader(Options{Fetcher: f})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := l.Cached(uri, 10, 10); ok {
		t.Fatal("nothing should be cached yet")
	}
	a, err := l.LoadCropped(context.Background(), uri, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	b, err := l.LoadCropped(context.Background(), uri, 20, 5)
	if err != nil {
		t.Fatal(err)
	}
	if a.Bounds() != image.Rect(0, 0, 10, 10) || b.Bounds() != image.Rect(0, 0, 20, 5) {
		t.Errorf("unexpected crop sizes %v %v", a.Bounds(), b.Bounds())
	}
	if got, ok := l.Cached(uri, 10, 10); !ok || got != a {
		t.Error("expected 10x10 crop to be cached")
	}
	if f.calls[uri] != 1 {
		t.Errorf("expected source to be fetched once, got %d", f.calls[uri])
	}
	if d, c := l.Len(); d != 1 || c != 2 {
		t.Errorf("expected 1 decoded and 2 cropped, got %d and %d", d, c)
	}
	l.Purge()
	if d, c := l.Len(); d != 0 || c != 0 {
		t.Errorf("expected empty caches after purge, got %d and %d", d, c)
	}
}

func TestLoader_EvictsLeastRecentlyUsed(t *testing.T) {
	bodies := map[string][]byte{}
	uris := []string{"https://x/1.png", "https://x/2.png", "https://x/3.png"}
	for _, u := range uris {
		bodies[u] = solidPNG(t, 2, 2, color.Black)
	}
	f := newFakeFetcher(bodies)
	l, err := NewLoader(Options{Entries: 2, Fetcher: f})
	if err != nil {
		t.Fatal(err)
	}
	for _, u := range uris {
		if _, err := l.Load(context.Background(), u); err != nil {
			t.Fatal(err)
		}
	}
	if _, ok := l.Cached(uris[0], 0, 0); ok {
		t.Error("expected oldest entry to be evicted")
	}
	if _, err := l.Load(context.Background(), uris[0]); err != nil {
		t.Fatal(err)
	}
	if f.calls[uris[0]] != 2 {
		t.Errorf("expected evicted image to be fetched again, got %d fetches", f.calls[uris[0]])
	}
}

func TestLoader_Prefetch(t *testing.T) {
	bodies := map[string][]byte{}
	var uris []string
	for _, u := range []string{"https://x/a.png", "https://x/b.png", "https://x/c.png"} {
		bodies[u] = solidPNG(t, 6, 6, color.Black)
		uris = append(uris, u)
	}
	uris = append(uris, "https://x/missing.png")
	f := newFakeFetcher(bodies)
	l, err := NewLoader(Options{Workers: 2, Fetcher: f})
	if err != nil {
		t.Fatal(err)
	}

	if err := l.Prefetch(context.Background(), uris, 3, 3); err != nil {
		t.Fatalf("prefetch: %v", err)
	}
	for _, u := range uris[:3] {
		if _, ok := l.Cached(u, 3, 3); !ok {
			t.Errorf("expected %s to be prefetched", u)
		}
	}

	before := f.count.Load()
	if err := l.Prefetch(context.Background(), uris[:3], 3, 3); err != nil {
		t.Fatal(err)
	}
	if f.count.Load() != before {
		t.Error("cached images must not be fetched again")
	}
}

func TestLoader_PrefetchCancelled(t *testing.T) {
	f := newFakeFetcher(map[string][]byte{"https://x/a.png": solidPNG(t, 2, 2, color.Black)})
	f.delay = time.Second
	l, err := NewLoader(Options{Fetcher: f})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := l.Prefetch(ctx, []string{"https://x/a.png"}, 2, 2); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
