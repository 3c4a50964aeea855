package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/sorttrace/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("cacheDir() = %q, should be under home %q", dir, home)
	}

	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestFileCacheDirPrefersConfig(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := &CLI{cfg: config.Default()}
	c.cfg.Cache.Dir = "/srv/sorttrace-cache"
	dir, err := c.fileCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/srv/sorttrace-cache" {
		t.Errorf("fileCacheDir() = %q, want the configured dir", dir)
	}

	c.cfg.Cache.Dir = ""
	dir, err = c.fileCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(dir) != appName {
		t.Errorf("fileCacheDir() = %q, want the XDG cache dir", dir)
	}
}

func TestNewCacheBackends(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	ctx := t.Context()

	tests := []struct {
		name    string
		backend string
		noCache bool
		want    string
	}{
		{"file", config.BackendFile, false, "*cache.FileCache"},
		{"none", config.BackendNone, false, "*cache.NullCache"},
		{"no-cache flag", config.BackendFile, true, "*cache.NullCache"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(os.Stderr, LogInfo)
			c.cfg = config.Default()
			c.cfg.Cache.Backend = tt.backend
			c.noCache = tt.noCache

			store, keyer, err := c.newCache(ctx)
			if err != nil {
				t.Fatal(err)
			}
			defer store.Close()
			if keyer == nil {
				t.Error("keyer is nil")
			}
			if got := fmt.Sprintf("%T", store); got != tt.want {
				t.Errorf("cache = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewCacheRedisBadURL(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.cfg = config.Default()
	c.cfg.Cache.Backend = config.BackendRedis
	c.cfg.Cache.RedisURL = "not-a-url"
	if _, _, err := c.newCache(t.Context()); err == nil {
		t.Error("expected an error for a malformed redis url")
	}
}
