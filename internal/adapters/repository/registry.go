package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/okian/laborconnect/internal/domain/model"
	"github.com/okian/laborconnect/pkg/metrics"
)

var _ Registry = (*InMemoryRegistry)(nil)

// InMemoryRegistry is an append-only, mutex-guarded worker list.
//
// Inserts take the write lock. Readers take the read lock and copy out the
// matching entries, so a caller never observes a partially appended worker.
type InMemoryRegistry struct {
	mu        sync.RWMutex
	workers   []model.Worker
	available int
}

// NewInMemoryRegistry creates an empty registry.
func NewInMemoryRegistry(_ context.Context) *InMemoryRegistry {
	metrics.UpdateRegistryWorkers(0)
	metrics.UpdateRegistryAvailableWorkers(0)
	return &InMemoryRegistry{}
}

// Insert always succeeds. No uniqueness check is made on Name.
func (r *InMemoryRegistry) Insert(_ context.Context, w model.Worker) model.Worker {
	w.ID = uuid.NewString()

	r.mu.Lock()
	r.workers = append(r.workers, w)
	if w.Available {
		r.available++
	}
	total, available := len(r.workers), r.available
	r.mu.Unlock()

	metrics.RecordWorkerRegistered()
	metrics.UpdateRegistryWorkers(total)
	metrics.UpdateRegistryAvailableWorkers(available)
	return w
}

// FilterBySkillAndAvailability implements Registry.
func (r *InMemoryRegistry) FilterBySkillAndAvailability(_ context.Context, skill string) []model.Worker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Worker
	for i := range r.workers {
		if r.workers[i].Available && r.workers[i].Skill == skill {
			out = append(out, r.workers[i])
		}
	}
	return out
}

// Len implements Registry.
func (r *InMemoryRegistry) Len(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workers)
}

// CountAvailable returns how many registered workers are available.
func (r *InMemoryRegistry) CountAvailable(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.available
}

// Skills returns the number of available workers per skill, keyed by skill.
func (r *InMemoryRegistry) Skills(_ context.Context) map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int)
	for i := range r.workers {
		if r.workers[i].Available {
			out[r.workers[i].Skill]++
		}
	}
	return out
}
