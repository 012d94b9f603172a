// Package topic holds the process-wide record of which discussion topic is
// under moderation. The bot moderates a single topic at a time; an admin
// command points the registry at it and may repoint it later.
package topic

import "sync"

// Registry is a concurrency-safe cell holding the moderated topic ID.
// The zero value means no topic is registered yet.
type Registry struct {
	mu  sync.RWMutex
	id  int
	set bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Set registers id as the moderated topic, overwriting any previous value.
func (r *Registry) Set(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.id = id
	r.set = true
}

// Get returns the moderated topic ID and whether one has been set.
func (r *Registry) Get() (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.id, r.set
}
