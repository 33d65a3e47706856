package resource

import (
	"context"
	"fmt"
	"sync"

	"pixgrid/pkg/config"
	"pixgrid/pkg/photos"
)

// Source names the data set a grid shows.
type Source string

const (
	SourceColors Source = "colors"
	SourcePhotos Source = "photos"
)

// ParseSource validates a -source flag value.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceColors, SourcePhotos:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown source %q (want %q or %q)", s, SourceColors, SourcePhotos)
}

// sharedPhotos survives across grids so reopening a viewer does not refetch.
var (
	sharedMu     sync.Mutex
	sharedPhotos = map[string]*photos.Cached{}
)

// PhotoService returns the photo list service configured by cfg: a local
// file when photos.file is set, the HTTP API otherwise. Either is memoised
// for the life of the process.
func PhotoService(cfg config.PhotosConfig) photos.Service {
	key := cfg.File
	var svc photos.Service = photos.File(cfg.File)
	if cfg.File == "" {
		c := photos.NewClient(cfg.Endpoint, cfg.ConsumerKey, cfg.Timeout.Duration)
		c.Query = photos.Query{
			Feature:   cfg.Feature,
			Sort:      cfg.Sort,
			ImageSize: cfg.ImageSize,
			PerPage:   cfg.PerPage,
		}
		svc = c
		key = fmt.Sprintf("%s|%s|%s|%s|%d|%d|%s", cfg.Endpoint, cfg.ConsumerKey,
			cfg.Feature, cfg.Sort, cfg.ImageSize, cfg.PerPage, cfg.Timeout.Duration)
	}
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if cached, ok := sharedPhotos[key]; ok {
		return cached
	}
	cached := &photos.Cached{Service: svc}
	sharedPhotos[key] = cached
	return cached
}

// FetchPhotos lists photos, wrapping failures with a hint for the user.
func FetchPhotos(ctx context.Context, svc photos.Service) ([]photos.Photo, error) {
	list, err := svc.PopularPhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get photos, check the connection or set photos.file: %w", err)
	}
	return list, nil
}
