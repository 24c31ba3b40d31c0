package seeder

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/laborconnect/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	filePermission      = 0600
)

// Run seeds the service and verifies a search over the seeded workers.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting worker seeding",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.NumWorkers),
		logger.Int("concurrency", cfg.Concurrency),
		logger.String("skill", cfg.Skill),
		logger.String("timeout", cfg.Timeout.String()),
	)

	client := NewClient(cfg.BaseURL, cfg.Timeout)
	if err := client.Ping(ctx); err != nil {
		return stats, fmt.Errorf("service check failed: %w", err)
	}

	workers := generateWorkers(ctx, cfg, stats)

	if err := registerWorkers(ctx, cfg, client, workers, stats); err != nil {
		return stats, err
	}
	if stats.WorkersFailed > 0 {
		return stats, fmt.Errorf("%w: %d registrations failed", ErrVerification, stats.WorkersFailed)
	}

	results, err := client.SearchWorkers(ctx, cfg.Skill, cfg.Latitude, cfg.Longitude)
	if err != nil {
		return stats, fmt.Errorf("search failed: %w", err)
	}
	stats.MatchesReturned = len(results)

	if err := verifyResults(ctx, cfg, workers, results); err != nil {
		return stats, err
	}

	if cfg.OutputFile != "" {
		if err := saveWorkersToFile(ctx, cfg.OutputFile, workers); err != nil {
			logger.Get().Warn(ctx, "failed to save workers to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	return stats, nil
}

// saveWorkersToFile writes the generated workers as a JSON array.
func saveWorkersToFile(ctx context.Context, filename string, workers []Worker) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(workers, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal workers: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "workers saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var successRate, perSecond float64
	if stats.WorkersGenerated > 0 {
		successRate = float64(stats.WorkersRegistered) / float64(stats.WorkersGenerated) * percentageMultiple
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.WorkersGenerated) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("workersGenerated", stats.WorkersGenerated),
		logger.Int("workersAvailable", stats.WorkersAvailable),
		logger.Int("workersRegistered", stats.WorkersRegistered),
		logger.Int("workersDuplicate", stats.WorkersDuplicate),
		logger.Int("workersFailed", stats.WorkersFailed),
		logger.Int("matchesReturned", stats.MatchesReturned),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("registrationsPerSecond", perSecond),
	)
}
