package cache

import (
	"context"
	stderrors "errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/sorttrace/pkg/errors"
)

var errTransient = stderrors.New("connection reset")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get = (%v, %v, %v), want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := c.Get(ctx, "sweep:x"); hit {
		t.Fatal("empty cache reported a hit")
	}
	if err := c.Set(ctx, "sweep:x", []byte(`{"rows":[]}`), 0); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "sweep:x")
	if err != nil || !hit {
		t.Fatalf("Get = (%v, %v), want hit", hit, err)
	}
	if string(data) != `{"rows":[]}` {
		t.Errorf("Get data = %s", data)
	}

	if err := c.Delete(ctx, "sweep:x"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "sweep:x"); hit {
		t.Error("hit after Delete")
	}
	if err := c.Delete(ctx, "sweep:x"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("fresh entry missed")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry hit")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry was not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry Get = (%v, %v), want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir still has %d entries", len(entries))
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash is not deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs share a hash")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	a := k.SweepKey(SweepKeyOpts{Sizes: []int{100, 1000}, MaxValue: 10000, Seed: 1})
	b := k.SweepKey(SweepKeyOpts{Sizes: []int{100, 1000}, MaxValue: 10000, Seed: 2})
	if a == b {
		t.Error("different seeds produced the same sweep key")
	}
	if a != k.SweepKey(SweepKeyOpts{Sizes: []int{100, 1000}, MaxValue: 10000, Seed: 1}) {
		t.Error("SweepKey is not deterministic")
	}
	if !strings.HasPrefix(a, "sweep:") {
		t.Errorf("SweepKey = %q, want sweep: prefix", a)
	}

	r1 := k.RenderKey([]int{3, 1, 2}, RenderKeyOpts{Algorithm: "quick", Format: "svg", Step: -1})
	r2 := k.RenderKey([]int{3, 1, 2}, RenderKeyOpts{Algorithm: "quick", Format: "dot", Step: -1})
	if r1 == r2 {
		t.Error("different formats produced the same render key")
	}
	if !strings.HasPrefix(r1, "render:quick:svg:") {
		t.Errorf("RenderKey = %q", r1)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(nil, "sorttrace:")
	opts := SweepKeyOpts{RandomLists: 5, MinSize: 100, MaxSize: 10000, MaxValue: 10000}
	want := "sorttrace:" + NewDefaultKeyer().SweepKey(opts)
	if got := scoped.SweepKey(opts); got != want {
		t.Errorf("SweepKey = %q, want %q", got, want)
	}
	if got := scoped.RenderKey(nil, RenderKeyOpts{Algorithm: "merge", Format: "dot"}); !strings.HasPrefix(got, "sorttrace:render:merge:dot:") {
		t.Errorf("RenderKey = %q", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
	err := Retryable(errTransient)
	if !IsRetryable(err) {
		t.Error("IsRetryable(Retryable(err)) = false")
	}
	if err.Error() != errTransient.Error() {
		t.Errorf("message = %q", err.Error())
	}
	if !stderrors.Is(err, errTransient) {
		t.Error("Retryable does not unwrap")
	}
	if IsRetryable(errTransient) {
		t.Error("plain error reported retryable")
	}
}

func shortRetries(t *testing.T) {
	t.Helper()
	oldDelay := retryDelay
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = oldDelay })
}

func TestRetryWithBackoff(t *testing.T) {
	shortRetries(t)
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error { calls++; return errTransient })
	if err != errTransient || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errTransient)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry then succeed: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(errTransient) })
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, func() error { return Retryable(errTransient) })
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRedisRetryClassification(t *testing.T) {
	if retryable(nil) != nil {
		t.Error("retryable(nil) != nil")
	}
	if IsRetryable(retryable(context.Canceled)) {
		t.Error("context.Canceled marked retryable")
	}
	if !IsRetryable(retryable(errTransient)) {
		t.Error("transient error not marked retryable")
	}
}

func TestNewRedisCacheBadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-url://")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}
