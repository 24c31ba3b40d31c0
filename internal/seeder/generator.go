package seeder

import (
	"context"
	"crypto/rand"
	"math"
	"math/big"

	"github.com/google/uuid"
	"github.com/okian/laborconnect/pkg/logger"
)

const randomFloatDivisor = 1_000_000

// randomInt returns a uniform integer in [0, n).
func randomInt(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// randomFloat returns a uniform float64 in [0, 1).
func randomFloat() float64 {
	return float64(randomInt(randomFloatDivisor)) / randomFloatDivisor
}

// generateWorkers creates cfg.NumWorkers workers with unique names scattered
// around the search origin. The last worker is always off duty so the run can
// check that unavailable workers never match.
func generateWorkers(ctx context.Context, cfg *Config, stats *Stats) []Worker {
	workers := make([]Worker, cfg.NumWorkers)
	for i := range workers {
		workers[i] = generateWorker(cfg)
	}
	if n := len(workers); n > 1 {
		workers[n-1].Available = false
	}

	for _, w := range workers {
		if w.Available {
			stats.WorkersAvailable++
		}
	}
	stats.WorkersGenerated = len(workers)

	logger.Get().Info(ctx, "generated workers",
		logger.Int("count", stats.WorkersGenerated),
		logger.Int("available", stats.WorkersAvailable),
		logger.String("skill", cfg.Skill),
	)
	return workers
}

func generateWorker(cfg *Config) Worker {
	lat, lon := scatter(cfg.Latitude, cfg.Longitude, cfg.SpreadKm)
	return Worker{
		Name:          "worker-" + uuid.NewString()[:8],
		Skill:         cfg.Skill,
		Experience:    randomInt(maxExperience + 1),
		Rating:        float64(randomInt(ratingSteps)) / 10,
		CompletedJobs: randomInt(maxCompletedJobs + 1),
		Latitude:      lat,
		Longitude:     lon,
		Available:     randomInt(availableOdds) != 0,
	}
}

// scatter returns a point up to spreadKm away from (lat, lon), kept inside
// the valid coordinate ranges.
func scatter(lat, lon, spreadKm float64) (float64, float64) {
	if spreadKm <= 0 {
		return lat, lon
	}
	r := spreadKm * math.Sqrt(randomFloat()) / kmPerDegree
	theta := 2 * math.Pi * randomFloat()

	dLat := r * math.Sin(theta)
	dLon := r * math.Cos(theta)
	if c := math.Cos(lat * math.Pi / 180); c > 1e-6 {
		dLon /= c
	}

	return math.Max(-90, math.Min(90, lat+dLat)), math.Remainder(lon+dLon, 360)
}
