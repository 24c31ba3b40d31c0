// Package matching ranks registered workers against a search request.
package matching

import (
	"context"
	"math"
	"sort"

	"github.com/okian/laborconnect/internal/domain/geo"
	"github.com/okian/laborconnect/internal/domain/model"
	"github.com/okian/laborconnect/internal/domain/scoring"
)

// scoreDecimals is the number of decimal digits kept in MatchResult.Score.
const scoreDecimals = 3

// Candidates supplies the workers eligible for a skill.
type Candidates interface {
	FilterBySkillAndAvailability(ctx context.Context, skill string) []model.Worker
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithScorer sets the scoring policy.
func WithScorer(s scoring.Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// Engine is the MatchEngine.
type Engine struct {
	candidates Candidates
	scorer     scoring.Scorer
}

// NewEngine creates an engine over the given candidate source.
func NewEngine(candidates Candidates, opts ...Option) *Engine {
	e := &Engine{
		candidates: candidates,
		scorer:     scoring.NewPolicy(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Search returns every available worker with the given skill, scored against
// the user's position and sorted by score descending. Equal scores keep
// insertion order. An unknown skill yields an empty, non-nil slice.
func (e *Engine) Search(ctx context.Context, skill string, userLat, userLon float64) []model.MatchResult {
	workers := e.candidates.FilterBySkillAndAvailability(ctx, skill)

	results := make([]model.MatchResult, 0, len(workers))
	for i := range workers {
		w := &workers[i]
		distance := geo.DistanceKm(userLat, userLon, w.Latitude, w.Longitude)
		raw := e.scorer.Score(scoring.Input{
			Rating:        w.Rating,
			Experience:    w.Experience,
			CompletedJobs: w.CompletedJobs,
			DistanceKm:    distance,
		})

		results = append(results, model.MatchResult{
			Name:          w.Name,
			Skill:         w.Skill,
			Experience:    w.Experience,
			Rating:        w.Rating,
			CompletedJobs: w.CompletedJobs,
			Score:         Round(raw, scoreDecimals),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// Round rounds x to the given number of decimal digits, halves away from zero.
func Round(x float64, decimals int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}
