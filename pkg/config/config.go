package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ConsumerKeyEnv overrides photos.consumer_key when set.
const ConsumerKeyEnv = "PIXGRID_CONSUMER_KEY"

// Config is the on-disk configuration of the pixgrid tools.
type Config struct {
	Grid     GridConfig     `toml:"grid"`
	Viewport ViewportConfig `toml:"viewport"`
	Recycler RecyclerConfig `toml:"recycler"`
	Photos   PhotosConfig   `toml:"photos"`
	Images   ImagesConfig   `toml:"images"`
}

type GridConfig struct {
	Columns int `toml:"columns"`
	// Spacing is the inset applied around every cell.
	Spacing int `toml:"spacing"`
}

type ViewportConfig struct {
	Width         int `toml:"width"`
	Height        int `toml:"height"`
	PaddingTop    int `toml:"padding_top"`
	PaddingBottom int `toml:"padding_bottom"`
}

type RecyclerConfig struct {
	// ItemViewCacheSize of 0 means one row's worth of views.
	ItemViewCacheSize int `toml:"item_view_cache_size"`
	MaxPool           int `toml:"max_pool"`
}

type PhotosConfig struct {
	Endpoint    string   `toml:"endpoint"`
	ConsumerKey string   `toml:"consumer_key"`
	Feature     string   `toml:"feature"`
	Sort        string   `toml:"sort"`
	ImageSize   int      `toml:"image_size"`
	PerPage     int      `toml:"rpp"`
	Timeout     Duration `toml:"timeout"`
	// File, when set, is a local JSON response used instead of the endpoint.
	File string `toml:"file"`
}

type ImagesConfig struct {
	MemoryCacheEntries int `toml:"memory_cache_entries"`
	PrefetchWorkers    int `toml:"prefetch_workers"`
}

// Duration is a time.Duration written as a string such as "30s" in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", b, err)
	}
	d.Duration = v
	return nil
}

// Default returns the configuration of the photo grid sample.
func Default() Config {
	return Config{
		Grid: GridConfig{Columns: 3},
		Viewport: ViewportConfig{
			Width:  720,
			Height: 1280,
		},
		Recycler: RecyclerConfig{MaxPool: 16},
		Photos: PhotosConfig{
			Endpoint:  "https://api.500px.com",
			Feature:   "popular",
			Sort:      "rating",
			ImageSize: 4,
			PerPage:   99,
			Timeout:   Duration{30 * time.Second},
		},
		Images: ImagesConfig{
			MemoryCacheEntries: 128,
			PrefetchWorkers:    4,
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// The consumer key environment variable wins over the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}
	if key := os.Getenv(ConsumerKeyEnv); key != "" {
		cfg.Photos.ConsumerKey = key
	}
	return cfg, cfg.Validate()
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Grid.Columns < 1:
		return fmt.Errorf("grid.columns must be at least 1, got %d", c.Grid.Columns)
	case c.Grid.Spacing < 0:
		return fmt.Errorf("grid.spacing must not be negative, got %d", c.Grid.Spacing)
	case c.Viewport.Width < 1 || c.Viewport.Height < 1:
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	case c.Grid.Columns > c.Viewport.Width:
		return fmt.Errorf("grid.columns %d leaves no room for a cell in a %dpx wide viewport", c.Grid.Columns, c.Viewport.Width)
	case c.Viewport.PaddingTop < 0 || c.Viewport.PaddingBottom < 0:
		return errors.New("viewport padding must not be negative")
	case c.Recycler.ItemViewCacheSize < 0 || c.Recycler.MaxPool < 0:
		return errors.New("recycler sizes must not be negative")
	case c.Images.MemoryCacheEntries < 1:
		return fmt.Errorf("images.memory_cache_entries must be at least 1, got %d", c.Images.MemoryCacheEntries)
	case c.Images.PrefetchWorkers < 1:
		return fmt.Errorf("images.prefetch_workers must be at least 1, got %d", c.Images.PrefetchWorkers)
	}
	return nil
}

// CacheSize is the recycler cache size to use; by default one row is kept
// so the row recycled last can come back without a rebind.
func (c Config) CacheSize() int {
	if c.Recycler.ItemViewCacheSize > 0 {
		return c.Recycler.ItemViewCacheSize
	}
	return c.Grid.Columns
}

// Encode writes c as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
