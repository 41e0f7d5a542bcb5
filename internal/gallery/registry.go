package gallery

import (
	"fmt"
	"sync"

	"infiniship/internal/ship"
)

type session struct {
	name string
	g    *Gallery
}

// Registry tracks open galleries by user name. A user's gallery is kept when
// they disconnect and handed back, pages and selection intact, when they
// return.
type Registry struct {
	src ship.SeedSource

	mu     sync.Mutex
	online map[string]session
	saved  map[string]*Gallery // keyed by user name
	seq    int
}

// NewRegistry returns an empty registry. New galleries draw fresh ships from src.
func NewRegistry(src ship.SeedSource) *Registry {
	return &Registry{
		src:    src,
		online: make(map[string]session),
		saved:  make(map[string]*Gallery),
	}
}

// Join registers a session for name and returns its id and gallery. A name
// that is already online gets a suffixed id and a gallery of its own.
func (r *Registry) Join(name string) (string, *Gallery) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := name
	if _, online := r.online[id]; online {
		r.seq++
		id = fmt.Sprintf("%s_%04d", name, r.seq)
	}

	g, ok := r.saved[name]
	if ok {
		delete(r.saved, name)
	} else {
		g = New(r.src, ship.SeedsForName(name))
	}

	r.online[id] = session{name: name, g: g}
	return id, g
}

// Leave saves the session's gallery under its user name and unregisters it.
func (r *Registry) Leave(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.online[id]; ok {
		r.saved[s.name] = s.g
		delete(r.online, id)
	}
}

// Online returns the number of open sessions.
func (r *Registry) Online() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.online)
}
