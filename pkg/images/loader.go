package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/url"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	stdnet "pixgrid/std/net"
)

// Fetcher retrieves the raw bytes behind a network URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (body []byte, contentType string, err error)
}

type netFetcher struct{}

func (netFetcher) Fetch(ctx context.Context, uri string) ([]byte, string, error) {
	return stdnet.Fetch(ctx, uri)
}

// Loader loads and decodes images from data URIs, HTTP(S) URLs and local
// files, and keeps recently used results in bounded memory caches.
// It is safe for concurrent use.
type Loader struct {
	fetcher Fetcher
	workers int
	logger  *slog.Logger

	decoded *lru.Cache[string, image.Image]
	cropped *lru.Cache[cropKey, image.Image]
	group   singleflight.Group
}

// cropKey includes the target size so one source can be cached at several sizes.
type cropKey struct {
	uri  string
	w, h int
}

// Options configure a Loader. Zero values select defaults.
type Options struct {
	Entries int
	Workers int
	Fetcher Fetcher
	Logger  *slog.Logger
}

// NewLoader returns a Loader.
func NewLoader(opts Options) (*Loader, error) {
	if opts.Entries <= 0 {
		opts.Entries = 128
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Fetcher == nil {
		opts.Fetcher = netFetcher{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	decoded, err := lru.New[string, image.Image](opts.Entries)
	if err != nil {
		return nil, fmt.Errorf("creating image cache: %w", err)
	}
	cropped, err := lru.New[cropKey, image.Image](opts.Entries)
	if err != nil {
		return nil, fmt.Errorf("creating image cache: %w", err)
	}
	return &Loader{
		fetcher: opts.Fetcher,
		workers: opts.Workers,
		logger:  opts.Logger,
		decoded: decoded,
		cropped: cropped,
	}, nil
}

// Load returns the decoded image at uri. Concurrent loads of the same uri
// share one fetch.
func (l *Loader) Load(ctx context.Context, uri string) (image.Image, error) {
	if img, ok := l.decoded.Get(uri); ok {
		return img, nil
	}
	v, err, _ := l.group.Do(uri, func() (any, error) {
		if img, ok := l.decoded.Get(uri); ok {
			return img, nil
		}
		img, err := l.load(ctx, uri)
		if err != nil {
			return nil, err
		}
		l.decoded.Add(uri, img)
		return img, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(image.Image), nil
}

func (l *Loader) load(ctx context.Context, uri string) (image.Image, error) {
	switch {
	case IsDataURI(uri):
		return LoadImageFromDataURI(uri)
	case stdnet.IsNetworkURL(uri):
		body, _, err := l.fetcher.Fetch(ctx, uri)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", uri, err)
		}
		return img, nil
	default:
		return decodeFile(strings.TrimPrefix(uri, "file://"))
	}
}

func decodeFile(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// LoadCropped returns the image at uri centre-cropped to w x h. A zero size
// returns the image unchanged.
func (l *Loader) LoadCropped(ctx context.Context, uri string, w, h int) (image.Image, error) {
	if w <= 0 || h <= 0 {
		return l.Load(ctx, uri)
	}
	key := cropKey{uri, w, h}
	if img, ok := l.cropped.Get(key); ok {
		return img, nil
	}
	src, err := l.Load(ctx, uri)
	if err != nil {
		return nil, err
	}
	img := CenterCrop(src, w, h)
	l.cropped.Add(key, img)
	return img, nil
}

// Cached returns the cropped image if it is already in memory. It never blocks
// on I/O and is what painters use while a load is in flight.
func (l *Loader) Cached(uri string, w, h int) (image.Image, bool) {
	if w <= 0 || h <= 0 {
		return l.decoded.Get(uri)
	}
	return l.cropped.Get(cropKey{uri, w, h})
}

// Prefetch loads and crops uris with at most the configured number of
// concurrent workers. Individual failures are logged and skipped; only
// cancellation of ctx is returned.
func (l *Loader) Prefetch(ctx context.Context, uris []string, w, h int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for _, uri := range uris {
		if _, ok := l.Cached(uri, w, h); ok {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := l.LoadCropped(ctx, uri, w, h); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				l.logger.Warn("prefetching image", "uri", redactURI(uri), "err", err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Len reports the number of decoded and cropped images held in memory.
func (l *Loader) Len() (decoded, cropped int) {
	return l.decoded.Len(), l.cropped.Len()
}

// Purge drops every cached image.
func (l *Loader) Purge() {
	l.decoded.Purge()
	l.cropped.Purge()
}

// IsDataURI reports whether s is a data: URI.
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// LoadImageFromDataURI decodes a base64 data URI such as
// "data:image/png;base64,....".
func LoadImageFromDataURI(uri string) (image.Image, error) {
	if !IsDataURI(uri) {
		return nil, fmt.Errorf("not a data URI")
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI: missing comma")
	}
	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding data URI payload: %w", err)
		}
		data = b
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding data URI payload: %w", err)
		}
		data = []byte(s)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding data URI image: %w", err)
	}
	return img, nil
}

func redactURI(uri string) string {
	if IsDataURI(uri) && len(uri) > 32 {
		return uri[:32] + "..."
	}
	return uri
}
