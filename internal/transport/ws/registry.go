package ws

import (
	"sync"
)

// Handle is a live connection as the registry sees it: an enqueue target.
// Enqueue must not block; it reports whether the data was accepted.
type Handle interface {
	Enqueue(data []byte) bool
}

// Registry is the process-local map from logical identity (username) to the
// live connection bound to it. All mutation goes through Bind/Unbind under
// the write lock; Resolve never mutates.
type Registry struct {
	mu         sync.RWMutex
	byIdentity map[string]Handle
}

func NewRegistry() *Registry {
	return &Registry{
		byIdentity: make(map[string]Handle),
	}
}

// Bind installs or replaces the mapping for identity. A connection already
// bound to the same identity is silently superseded: last writer wins, no
// conflict signal, no multi-device fan-out.
func (r *Registry) Bind(identity string, h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byIdentity[identity] = h
}

// Resolve returns the connection currently bound to identity. Absence is
// normal, not an error.
func (r *Registry) Resolve(identity string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.byIdentity[identity]
	return h, ok
}

// Unbind removes whichever identity currently maps to h. Idempotent and
// safe on handles that were never bound. An identity superseded by a newer
// connection is left alone: the stale handle no longer owns the entry.
func (r *Registry) Unbind(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for identity, bound := range r.byIdentity {
		if bound == h {
			delete(r.byIdentity, identity)
		}
	}
}

// Len reports the number of bound identities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byIdentity)
}
