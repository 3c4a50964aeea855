// Package session keeps live merge sort traces for API clients.
//
// A merge trace is pull based: the client asks for one event at a time and
// the generator stays suspended in between. A Session owns one generator and
// the array it sorts; a Store indexes sessions by id and expires idle ones.
//
//	store := session.NewMemoryStore()
//	sess, err := session.New(values, session.DefaultTTL)
//	store.Set(ctx, sess)
//
//	ev, err := sess.Next()   // one event per call
//
// Sessions live in process memory because a suspended generator cannot be
// serialized.
package session

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/sorttrace/pkg/errors"
	"github.com/matzehuels/sorttrace/pkg/mergetrace"
)

// DefaultTTL is how long an untouched session survives.
const DefaultTTL = 30 * time.Minute

// Session is one merge trace in progress. Its methods are safe for concurrent
// use; pulls are serialized.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	ttl       time.Duration
	expiresAt time.Time
	input     []int
	array     []int
	gen       *mergetrace.Generator[int]
}

// State is a point-in-time view of a session.
type State struct {
	ID        string    `json:"id"`
	Input     []int     `json:"input"`
	Array     []int     `json:"array"`
	Pulled    int       `json:"pulled"`
	Done      bool      `json:"done"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New starts a merge trace over a copy of values.
func New(values []int, ttl time.Duration) (*Session, error) {
	if len(values) > errors.MaxValues {
		return nil, errors.New(errors.ErrCodeInvalidInput, "too many values (max %d)", errors.MaxValues)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	gen, arr := mergetrace.Begin(values)
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ttl:       ttl,
		expiresAt: now.Add(ttl),
		input:     slices.Clone(values),
		array:     arr,
		gen:       gen,
	}, nil
}

// Next pulls one event and extends the session's lifetime. At the end of
// the trace it returns mergetrace.ErrEndOfTrace.
func (s *Session) Next() (mergetrace.Event[int], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = time.Now().Add(s.ttl)
	return s.gen.Next()
}

// State returns a copy of the session's current state. Array holds only
// committed writes.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:        s.ID,
		Input:     slices.Clone(s.input),
		Array:     slices.Clone(s.array),
		Pulled:    s.gen.Pulled(),
		Done:      s.gen.Done(),
		ExpiresAt: s.expiresAt,
	}
}

// IsExpired reports whether the session has been idle past its TTL.
func (s *Session) IsExpired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.After(s.expiresAt)
}

// Store indexes sessions by id.
type Store interface {
	// Get returns the session, or a SESSION_NOT_FOUND error if it does not
	// exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and reports how many were removed.
	Cleanup(ctx context.Context) (int, error)
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
}
