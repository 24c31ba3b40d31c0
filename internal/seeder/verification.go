package seeder

import (
	"context"
	"fmt"

	"github.com/okian/laborconnect/pkg/logger"
)

// verifyResults checks a search response against the generated population:
// scores never increase, every match has the searched skill, every available
// worker appears and no unavailable one does.
func verifyResults(ctx context.Context, cfg *Config, workers []Worker, results []MatchResult) error {
	for i, r := range results {
		if r.Skill != cfg.Skill {
			return fmt.Errorf("%w: result %d has skill %q, want %q", ErrVerification, i, r.Skill, cfg.Skill)
		}
		if i > 0 && r.Score > results[i-1].Score {
			return fmt.Errorf("%w: result %d scores %.3f above result %d (%.3f)",
				ErrVerification, i, r.Score, i-1, results[i-1].Score)
		}
	}

	returned := make(map[string]struct{}, len(results))
	for _, r := range results {
		returned[r.Name] = struct{}{}
	}
	for _, w := range workers {
		_, found := returned[w.Name]
		switch {
		case w.Available && !found:
			return fmt.Errorf("%w: available worker %s missing from results", ErrVerification, w.Name)
		case !w.Available && found:
			return fmt.Errorf("%w: unavailable worker %s returned", ErrVerification, w.Name)
		}
	}

	displayTopMatches(ctx, results)
	logger.Get().Info(ctx, "results verified", logger.Int("matches", len(results)))
	return nil
}

// displayTopMatches logs the best few matches.
func displayTopMatches(ctx context.Context, results []MatchResult) {
	topN := 10
	if len(results) < topN {
		topN = len(results)
	}
	for i := 0; i < topN; i++ {
		r := results[i]
		logger.Get().Info(ctx, "top match",
			logger.Int("position", i+1),
			logger.String("name", r.Name),
			logger.Float64("rating", r.Rating),
			logger.Int("experience", r.Experience),
			logger.Int("completedJobs", r.CompletedJobs),
			logger.Float64("score", r.Score),
		)
	}
}
