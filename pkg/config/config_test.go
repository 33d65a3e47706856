package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pixgrid.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(ConsumerKeyEnv, "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Grid.Columns != 3 {
		t.Errorf("expected 3 columns, got %d", cfg.Grid.Columns)
	}
	if cfg.CacheSize() != 3 {
		t.Errorf("expected cache size to follow columns, got %d", cfg.CacheSize())
	}
	if cfg.Photos.Timeout.Duration != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.Photos.Timeout)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Setenv(ConsumerKeyEnv, "")
	path := writeConfig(t, `
[grid]
columns = 4
spacing = 2

[viewport]
width = 400
height = 300
padding_bottom = 48

[recycler]
item_view_cache_size = 6

[photos]
consumer_key = "from-file"
timeout = "5s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Grid.Columns != 4 || cfg.Grid.Spacing != 2 {
		t.Errorf("grid not loaded: %+v", cfg.Grid)
	}
	if cfg.Viewport.Width != 400 || cfg.Viewport.Height != 300 || cfg.Viewport.PaddingBottom != 48 {
		t.Errorf("viewport not loaded: %+v", cfg.Viewport)
	}
	if cfg.CacheSize() != 6 {
		t.Errorf("expected cache size 6, got %d", cfg.CacheSize())
	}
	if cfg.Photos.ConsumerKey != "from-file" {
		t.Errorf("expected consumer key from file, got %q", cfg.Photos.ConsumerKey)
	}
	if cfg.Photos.Timeout.Duration != 5*time.Second {
		t.Errorf("expected 5s, got %v", cfg.Photos.Timeout)
	}
	// untouched sections keep their defaults
	if cfg.Photos.Endpoint != "https://api.500px.com" || cfg.Images.PrefetchWorkers != 4 {
		t.Errorf("defaults lost: %+v %+v", cfg.Photos, cfg.Images)
	}
}

func TestLoad_EnvironmentWins(t *testing.T) {
	t.Setenv(ConsumerKeyEnv, "from-env")
	path := writeConfig(t, "[photos]\nconsumer_key = \"from-file\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Photos.ConsumerKey != "from-env" {
		t.Errorf("expected env key, got %q", cfg.Photos.ConsumerKey)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(ConsumerKeyEnv, "")
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[grid\ncolumns = 3", "parsing config"},
		{"zero columns", "[grid]\ncolumns = 0", "grid.columns"},
		{"columns wider than viewport", "[grid]\ncolumns = 800", "no room for a cell"},
		{"negative spacing", "[grid]\nspacing = -1", "grid.spacing"},
		{"bad viewport", "[viewport]\nwidth = 0", "viewport"},
		{"bad duration", "[photos]\ntimeout = \"soon\"", "parsing config"},
		{"no cache", "[images]\nmemory_cache_entries = 0", "memory_cache_entries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestEncode_RoundTrips(t *testing.T) {
	cfg := Default()
	cfg.Grid.Columns = 5
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), "columns = 5") {
		t.Errorf("expected columns in output:\n%s", data)
	}
	if !strings.Contains(string(data), "timeout = '30s'") && !strings.Contains(string(data), `timeout = "30s"`) {
		t.Errorf("expected textual timeout in output:\n%s", data)
	}
}
