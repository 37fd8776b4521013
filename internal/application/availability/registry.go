// Package availability tracks which backends may currently answer queries.
//
// A backend is available when its credential is configured and it is not
// inside the error cooldown that follows a failed call.
package availability

import (
	"sync"
	"time"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/ports"
)

type record struct {
	credential    string
	hasError      bool
	lastErrorTime time.Time
	errorCount    int
}

// Registry holds per-backend credentials and error state.
// Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	clock    ports.Clock
	cooldown time.Duration
	records  map[domain.Backend]*record
}

// NewRegistry builds an empty registry. A zero cooldown uses the 30 minute default.
func NewRegistry(clock ports.Clock, cooldown time.Duration) *Registry {
	if cooldown <= 0 {
		cooldown = domain.DefaultErrorCooldown
	}
	r := &Registry{
		clock:    clock,
		cooldown: cooldown,
		records:  make(map[domain.Backend]*record, len(domain.Backends)),
	}
	for _, b := range domain.Backends {
		r.records[b] = &record{}
	}
	return r
}

// LoadCredentials replaces the stored keys with the given set.
func (r *Registry) LoadCredentials(creds domain.Credentials) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range domain.Backends {
		r.recordFor(b).credential = creds.For(b)
	}
}

// SetCredential stores or clears (blank key) one backend's key.
func (r *Registry) SetCredential(backend domain.Backend, key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordFor(backend).credential = domain.Credentials{
		WeatherKey:    key,
		GenerativeKey: key,
	}.For(backend)
}

// Credential returns the key for a backend, blank when none is configured.
func (r *Registry) Credential(backend domain.Backend) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rec, ok := r.records[backend]; ok {
		return rec.credential
	}
	return ""
}

// IsAvailable reports whether the classifier may route to backend now.
func (r *Registry) IsAvailable(backend domain.Backend) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[backend]
	if !ok {
		return false
	}
	return r.available(backend, rec, r.clock.Now())
}

// MarkError records a failed call and starts the cooldown.
func (r *Registry) MarkError(backend domain.Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.recordFor(backend)
	rec.hasError = true
	rec.lastErrorTime = r.clock.Now()
	rec.errorCount++
}

// Reset clears the error state. The credential is kept.
func (r *Registry) Reset(backend domain.Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.recordFor(backend)
	*rec = record{credential: rec.credential}
}

// Snapshot returns the status of every backend in declaration order.
func (r *Registry) Snapshot() []domain.BackendStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := r.clock.Now()
	out := make([]domain.BackendStatus, 0, len(domain.Backends))
	for _, b := range domain.Backends {
		rec := r.records[b]
		out = append(out, domain.BackendStatus{
			Backend:        b,
			HasCredential:  rec.credential != "",
			HasRecentError: rec.hasError,
			LastErrorTime:  rec.lastErrorTime,
			ErrorCount:     rec.errorCount,
			Available:      r.available(b, rec, now),
		})
	}
	return out
}

// Cooldown returns the configured error window.
func (r *Registry) Cooldown() time.Duration {
	return r.cooldown
}

func (r *Registry) available(backend domain.Backend, rec *record, now time.Time) bool {
	if rec.hasError && now.Sub(rec.lastErrorTime) < r.cooldown {
		return false
	}
	if !backend.RequiresCredential() {
		return true
	}
	return rec.credential != ""
}

// recordFor must be called with the write lock held.
func (r *Registry) recordFor(backend domain.Backend) *record {
	rec, ok := r.records[backend]
	if !ok {
		rec = &record{}
		r.records[backend] = rec
	}
	return rec
}
