// Package seeder registers a synthetic worker population against a running
// LaborConnect service and checks that searches rank it correctly.
package seeder

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumWorkers  int           // Number of workers to generate
	Concurrency int           // Number of concurrent registrations
	Skill       string        // Skill assigned to every generated worker
	Latitude    float64       // Search origin latitude
	Longitude   float64       // Search origin longitude
	SpreadKm    float64       // Workers are placed within this distance of the origin
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Optional JSON dump of the generated workers
	Verbose     bool          // Log every registration
}

// Worker is the registration payload sent to /add_worker.
type Worker struct {
	Name          string  `json:"name"`
	Skill         string  `json:"skill"`
	Experience    int     `json:"experience"`
	Rating        float64 `json:"rating"`
	CompletedJobs int     `json:"completed_jobs"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Available     bool    `json:"available"`
}

// MatchResult is one entry of a /search_workers response.
type MatchResult struct {
	Name          string  `json:"name"`
	Skill         string  `json:"skill"`
	Experience    int     `json:"experience"`
	Rating        float64 `json:"rating"`
	CompletedJobs int     `json:"completed_jobs"`
	Score         float64 `json:"score"`
}

// AckResponse is the /add_worker acknowledgement.
type AckResponse struct {
	Message   string `json:"message"`
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds run statistics.
type Stats struct {
	WorkersGenerated  int
	WorkersAvailable  int
	WorkersRegistered int
	WorkersDuplicate  int
	WorkersFailed     int
	MatchesReturned   int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
