package session

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/sorttrace/pkg/errors"
	"github.com/matzehuels/sorttrace/pkg/mergetrace"
)

func TestSessionPullsWholeTrace(t *testing.T) {
	s, err := New([]int{3, 1, 2}, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(s.ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", s.ID, err)
	}

	events := 0
	for {
		_, err := s.Next()
		if err == mergetrace.ErrEndOfTrace {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		events++
	}

	st := s.State()
	if st.Pulled != events || !st.Done {
		t.Errorf("state = %+v after %d events", st, events)
	}
	if !slices.Equal(st.Array, []int{1, 2, 3}) || !slices.Equal(st.Input, []int{3, 1, 2}) {
		t.Errorf("array=%v input=%v", st.Array, st.Input)
	}
}

func TestSessionConcurrentPulls(t *testing.T) {
	values := make([]int, 64)
	for i := range values {
		values[i] = 64 - i
	}
	s, err := New(values, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	total := 0
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if _, err := s.Next(); err != nil {
					return
				}
				mu.Lock()
				total++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	st := s.State()
	if st.Pulled != total {
		t.Errorf("pulled %d, counted %d", st.Pulled, total)
	}
	if !slices.IsSorted(st.Array) {
		t.Errorf("array not sorted: %v", st.Array)
	}
}

func TestNewRejectsTooManyValues(t *testing.T) {
	_, err := New(make([]int, errors.MaxValues+1), 0)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s, _ := New([]int{2, 1}, time.Minute)

	if _, err := store.Get(ctx, s.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get before Set = %v", err)
	}
	if err := store.Set(ctx, s); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, s.ID)
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d after Delete", store.Len())
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	short, _ := New([]int{1}, time.Second)
	long, _ := New([]int{1}, time.Hour)
	_ = store.Set(ctx, short)
	_ = store.Set(ctx, long)

	now = now.Add(time.Minute)
	if _, err := store.Get(ctx, short.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("expired Get = %v", err)
	}
	_ = store.Set(ctx, short)
	n, err := store.Cleanup(ctx)
	if err != nil || n != 1 {
		t.Errorf("Cleanup() = %d, %v; want 1", n, err)
	}
	if _, err := store.Get(ctx, long.ID); err != nil {
		t.Errorf("live session lost: %v", err)
	}
}
