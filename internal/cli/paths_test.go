package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	c := &CLI{}
	dir := c.cacheDir()

	if dir == "" {
		t.Fatal("cacheDir() returned empty string")
	}
	if filepath.Base(dir) != appName {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestCacheDirConfigured(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		configured string
		want       string
	}{
		{"/var/cache/gallery", "/var/cache/gallery"},
		{"~/gallery-cache", filepath.Join(home, "gallery-cache")},
	}
	for _, tt := range tests {
		c := &CLI{Config: Config{CacheDir: tt.configured}}
		if got := c.cacheDir(); got != tt.want {
			t.Errorf("cacheDir() with %q = %q, want %q", tt.configured, got, tt.want)
		}
	}
}

func TestConfigPaths(t *testing.T) {
	paths := configPaths()
	if len(paths) != 2 {
		t.Fatalf("configPaths() = %v, want 2 entries", paths)
	}
	if !strings.HasSuffix(paths[0], filepath.Join(appName, "config.toml")) {
		t.Errorf("user config = %q", paths[0])
	}
	// The working directory file loads last and wins.
	if paths[1] != "gallery.toml" {
		t.Errorf("local config = %q, want gallery.toml", paths[1])
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derive from manifest", "", "photos/gallery.json", "photos/gallery"},
		{"derive from directory", "", "photos/", "photos"},
		{"strip format extension", "out/sheet.svg", "in.json", "out/sheet"},
		{"keep unknown extension", "out/sheet.v2", "in.json", "out/sheet.v2"},
		{"no extension", "out/sheet", "in.json", "out/sheet"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimLayoutSuffix(t *testing.T) {
	tests := map[string]string{
		"trip.layout": "trip",
		"trip":        "trip",
		"a.layout.b":  "a.layout.b",
	}
	for in, want := range tests {
		if got := trimLayoutSuffix(in); got != want {
			t.Errorf("trimLayoutSuffix(%q) = %q, want %q", in, got, want)
		}
	}
}
