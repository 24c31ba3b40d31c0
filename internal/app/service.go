// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/laborconnect/internal/adapters/repository"
	"github.com/okian/laborconnect/internal/domain/dedupe"
	"github.com/okian/laborconnect/internal/domain/matching"
	"github.com/okian/laborconnect/internal/domain/model"
	"github.com/okian/laborconnect/internal/domain/scoring"
	"github.com/okian/laborconnect/pkg/logger"
	"github.com/okian/laborconnect/pkg/metrics"
)

const defaultDedupeSize = 50_000

// Service owns the worker registry and the match engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	registry repository.Registry
	engine   *matching.Engine
	deduper  dedupe.Deduper

	// Configuration
	dedupeSize    int
	scoringOpts   []scoring.Option
	externalStore bool

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRegistry injects the registry. Without it Start creates an empty one.
func WithRegistry(r repository.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.registry = r
			s.externalStore = true
		}
	}
}

// WithDedupeSize sets the size of the idempotency-key cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithScoringWeights sets the weight of rating, experience, jobs and proximity.
func WithScoringWeights(rating, experience, jobs, proximity float64) Option {
	return func(s *Service) {
		s.scoringOpts = append(s.scoringOpts, scoring.WithWeights(rating, experience, jobs, proximity))
	}
}

// WithScoringNormalizers sets the divisors used to normalize each attribute.
func WithScoringNormalizers(maxRating, experienceScale, jobsScale, proximityRadiusKm float64) Option {
	return func(s *Service) {
		s.scoringOpts = append(s.scoringOpts, scoring.WithNormalizers(maxRating, experienceScale, jobsScale, proximityRadiusKm))
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize: defaultDedupeSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting matching service...")

	if s.registry == nil {
		s.registry = repository.NewInMemoryRegistry(ctx)
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.engine = matching.NewEngine(s.registry,
		matching.WithScorer(scoring.NewPolicy(s.scoringOpts...)),
	)

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Bool("injectedRegistry", s.externalStore),
		logger.Int("workers", s.registry.Len(ctx)),
	)

	return nil
}

// Stop marks the service as stopped. Registered workers stay in the registry
// until the process exits.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "matching service stopped")
}

func (s *Service) components() (repository.Registry, *matching.Engine, dedupe.Deduper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, nil, nil, ErrNotStarted
	}
	return s.registry, s.engine, s.deduper, nil
}

// Register stores w and returns the stored copy. When idempotencyKey is not
// empty and was already used, the first registration is returned with
// duplicate=true and nothing is inserted.
func (s *Service) Register(ctx context.Context, idempotencyKey string, w model.Worker) (model.Worker, bool, error) {
	registry, _, deduper, err := s.components()
	if err != nil {
		return model.Worker{}, false, err
	}

	if idempotencyKey != "" {
		rec, seen := deduper.SeenAndRecord(ctx, idempotencyKey)
		if seen {
			if rec.Pending {
				return model.Worker{}, false, ErrRequestInFlight
			}
			metrics.RecordRegistrationDuplicate()
			s.logger.Debug(ctx, "duplicate registration",
				logger.String("idempotencyKey", idempotencyKey),
				logger.String("id", rec.Worker.ID),
			)
			return rec.Worker, true, nil
		}
		if err := ctx.Err(); err != nil {
			deduper.Unrecord(ctx, idempotencyKey)
			return model.Worker{}, false, fmt.Errorf("register %q: %w", w.Name, err)
		}
	}

	stored := registry.Insert(ctx, w)
	if idempotencyKey != "" {
		deduper.Complete(ctx, idempotencyKey, stored)
	}

	s.logger.Info(ctx, "worker registered",
		logger.String("id", stored.ID),
		logger.String("name", stored.Name),
		logger.String("skill", stored.Skill),
		logger.Bool("available", stored.Available),
	)
	return stored, false, nil
}

// Search ranks available workers with the given skill around the user's position.
func (s *Service) Search(ctx context.Context, skill string, userLat, userLon float64) ([]model.MatchResult, error) {
	_, engine, _, err := s.components()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := engine.Search(ctx, skill, userLat, userLon)
	elapsed := time.Since(start)

	metrics.RecordSearch(len(results), float64(elapsed.Microseconds())/1000)
	s.logger.Debug(ctx, "search served",
		logger.String("skill", skill),
		logger.Float64("userLat", userLat),
		logger.Float64("userLon", userLon),
		logger.Int("results", len(results)),
		logger.String("elapsed", elapsed.String()),
	)
	return results, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":    s.started,
		"dedupeSize": s.dedupeSize,
	}

	if s.started {
		total := s.registry.Len(ctx)
		available := s.registry.CountAvailable(ctx)

		stats["totalWorkers"] = total
		stats["availableWorkers"] = available
		stats["skills"] = s.registry.Skills(ctx)
		stats["idempotencyKeys"] = s.deduper.Size()

		metrics.UpdateRegistryWorkers(total)
		metrics.UpdateRegistryAvailableWorkers(available)
	}

	return stats
}
