// Package fetch guards shared state that is refreshed by overlapping network
// calls. Responses can arrive in any order; only the newest-issued request may
// land its result.
package fetch

import "sync"

// Latest is a generation-guarded slot. Begin hands out a generation token
// before a fetch is issued; Commit stores the result only while that token is
// still the newest one, so a slow response from an earlier request cannot
// overwrite the result of a later one.
type Latest[T any] struct {
	mu    sync.Mutex
	gen   uint64
	value T
	set   bool
}

// Begin registers a new fetch and returns its generation token. Calling Begin
// implicitly stales every earlier in-flight fetch.
func (l *Latest[T]) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	return l.gen
}

// Commit stores value for the fetch identified by gen. It reports false and
// discards the value when a newer generation has already begun.
func (l *Latest[T]) Commit(gen uint64, value T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return false
	}
	l.value = value
	l.set = true
	return true
}

// Value returns the newest committed value. The second return is false until
// a first Commit lands.
func (l *Latest[T]) Value() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.set
}
