// Package model contains domain models passed between layers.
package model

// Worker is a registered labor profile. Values are immutable once stored.
type Worker struct {
	ID            string  // assigned by the registry on insert
	Name          string  // display name, not unique
	Skill         string  // exact-match, case-sensitive filter key
	Experience    int     // years of experience
	Rating        float64 // 0..5
	CompletedJobs int
	Latitude      float64
	Longitude     float64
	Available     bool
}

// MatchResult is one ranked row of a search. It is computed per query and never stored.
type MatchResult struct {
	Name          string  `json:"name"`
	Skill         string  `json:"skill"`
	Experience    int     `json:"experience"`
	Rating        float64 `json:"rating"`
	CompletedJobs int     `json:"completed_jobs"`
	Score         float64 `json:"score"`
}
