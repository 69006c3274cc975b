package events

import (
	"errors"
	"sync"

	"github.com/polyfeed/polyfeed/models"
)

var ErrRegistryFull = errors.New("injected url registry is full")

// URLRegistry holds the set of extra feed URLs the poller fetches alongside
// the primary feed. It is an explicit in-process object, created once at
// module init and handed to whoever needs it; state does not survive a
// restart. Safe for concurrent use.
type URLRegistry struct {
	mu      sync.RWMutex
	entries map[string]models.InjectedURL
	order   []string
	maxSize int
}

func NewURLRegistry(maxSize int) *URLRegistry {
	return &URLRegistry{
		entries: make(map[string]models.InjectedURL),
		maxSize: maxSize,
	}
}

// Add registers a URL. Re-adding the same URL is a no-op returning the
// existing entry, so callers can submit blindly.
func (r *URLRegistry) Add(entry models.InjectedURL) (models.InjectedURL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[entry.ID]; ok {
		return existing, nil
	}
	if r.maxSize > 0 && len(r.entries) >= r.maxSize {
		return models.InjectedURL{}, ErrRegistryFull
	}

	r.entries[entry.ID] = entry
	r.order = append(r.order, entry.ID)
	return entry, nil
}

// Remove deletes a URL by id, reporting whether it was present.
func (r *URLRegistry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// List returns registered URLs in insertion order.
func (r *URLRegistry) List() []models.InjectedURL {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.InjectedURL, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

func (r *URLRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
