package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/sorttrace/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Interval() != 120*time.Millisecond {
		t.Errorf("Interval() = %v, want 120ms", cfg.Interval())
	}
	if cfg.TTL() != 7*24*time.Hour {
		t.Errorf("TTL() = %v", cfg.TTL())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Input.Size != DefaultInputSize {
		t.Errorf("Input.Size = %d, want default", cfg.Input.Size)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[animation]
interval_ms = 40

[input]
size = 20
values = [5, 4, 3]

[sweep]
sizes = [100, 1000]

[cache]
backend = "redis"
redis_url = "redis://cache:6379/2"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Animation.IntervalMS != 40 || cfg.Input.Size != 20 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Input.Values) != 3 || len(cfg.Sweep.Sizes) != 2 {
		t.Errorf("values=%v sizes=%v", cfg.Input.Values, cfg.Sweep.Sizes)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisURL != "redis://cache:6379/2" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	// Untouched sections keep defaults.
	if cfg.Sweep.MaxValue != 10_000 || cfg.Server.Addr != ":8080" {
		t.Errorf("defaults lost: sweep=%+v server=%+v", cfg.Sweep, cfg.Server)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[animation\ninterval_ms = 1"},
		{"unknown key", "[animation]\nspeed = 3"},
		{"interval too slow", "[animation]\ninterval_ms = 5000"},
		{"size too large", "[input]\nsize = 601"},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
		{"empty redis url", "[cache]\nbackend = \"redis\"\nredis_url = \"\""},
		{"sweep range", "[sweep]\nmin_size = 50\nmax_size = 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "sorttrace", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestInputMaxValue(t *testing.T) {
	cfg := Default()
	if got := cfg.InputMaxValue(8); got != 40 {
		t.Errorf("InputMaxValue(8) = %d, want 40", got)
	}
	cfg.Input.MaxValue = 99
	if got := cfg.InputMaxValue(8); got != 99 {
		t.Errorf("InputMaxValue(8) = %d, want 99", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "interval_ms = 120") {
		t.Errorf("encoded config missing interval:\n%s", buf.String())
	}
	cfg, err := Load(writeConfig(t, buf.String()))
	if err != nil {
		t.Fatalf("reloading encoded config: %v", err)
	}
	if cfg.Animation.IntervalMS != DefaultIntervalMS {
		t.Errorf("IntervalMS = %d after round trip", cfg.Animation.IntervalMS)
	}
}
