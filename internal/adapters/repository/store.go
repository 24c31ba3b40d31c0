// Package repository holds the worker registry.
package repository

import (
	"context"

	"github.com/okian/laborconnect/internal/domain/model"
)

// Registry owns the registered workers.
type Registry interface {
	// Insert appends a worker and returns the stored copy with its assigned ID.
	Insert(ctx context.Context, w model.Worker) model.Worker

	// FilterBySkillAndAvailability returns, in insertion order, every worker whose
	// skill equals skill exactly and who is available. The slice is owned by the caller.
	FilterBySkillAndAvailability(ctx context.Context, skill string) []model.Worker

	// Len returns the number of registered workers.
	Len(ctx context.Context) int

	// CountAvailable returns how many registered workers are available.
	CountAvailable(ctx context.Context) int

	// Skills returns the number of available workers per skill.
	Skills(ctx context.Context) map[string]int
}
