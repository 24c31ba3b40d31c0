package seeder

import "time"

// Defaults used by the run command.
const (
	DefaultBaseURL     = "http://localhost:8000"
	DefaultNumWorkers  = 1000
	DefaultSkill       = "plumbing"
	DefaultSpreadKm    = 60.0
	DefaultTimeout     = 30 * time.Second
	DefaultRunTimeout  = 10 * time.Minute
	concurrencyPerCPU  = 2
	percentageMultiple = 100
)

// Generated attribute ranges.
const (
	maxExperience    = 20
	maxCompletedJobs = 120
	maxRating        = 5.0
	ratingSteps      = 51 // 0.0 .. 5.0 in tenths
	availableOdds    = 4  // one in availableOdds workers is off duty
	kmPerDegree      = 111.195
)
