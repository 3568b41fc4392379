// Package session provides per-sender mutable state storage for the
// game modules.
package session

import "sync"

// Store keeps one session value per sender identity, created lazily on
// first access. The map is guarded so sessions for different senders
// can be faulted in concurrently; the contents of a session are only
// mutated while the dispatcher holds that sender's lock, so they need
// no locking of their own. Sessions are reset between rounds rather
// than removed.
type Store[T any] struct {
	mu       sync.Mutex
	sessions map[string]T
	newFn    func() T
}

// NewStore creates a Store whose sessions are built by newFn.
func NewStore[T any](newFn func() T) *Store[T] {
	return &Store[T]{
		sessions: make(map[string]T),
		newFn:    newFn,
	}
}

// Get returns the sender's session, creating it if absent.
func (s *Store[T]) Get(sender string) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sender]
	if !ok {
		sess = s.newFn()
		s.sessions[sender] = sess
	}
	return sess
}

// Len returns the number of senders with a session.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
