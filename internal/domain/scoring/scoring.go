// Package scoring computes the composite match score for a worker.
package scoring

// Default weights and normalizers. The weights sum to 1.
const (
	defaultRatingWeight     = 0.4
	defaultExperienceWeight = 0.2
	defaultJobsWeight       = 0.2
	defaultProximityWeight  = 0.2

	defaultMaxRating         = 5.0
	defaultExperienceScale   = 10.0
	defaultJobsScale         = 50.0
	defaultProximityRadiusKm = 50.0
)

// Option applies a configuration option to the Policy.
type Option func(*Policy)

// WithWeights sets the weight of each normalized term. Negative weights are ignored.
func WithWeights(rating, experience, jobs, proximity float64) Option {
	return func(p *Policy) {
		if rating < 0 || experience < 0 || jobs < 0 || proximity < 0 {
			return
		}
		p.ratingWeight = rating
		p.experienceWeight = experience
		p.jobsWeight = jobs
		p.proximityWeight = proximity
	}
}

// WithNormalizers sets the divisors used to normalize each attribute.
// Non-positive values keep the current setting.
func WithNormalizers(maxRating, experienceScale, jobsScale, proximityRadiusKm float64) Option {
	return func(p *Policy) {
		if maxRating > 0 {
			p.maxRating = maxRating
		}
		if experienceScale > 0 {
			p.experienceScale = experienceScale
		}
		if jobsScale > 0 {
			p.jobsScale = jobsScale
		}
		if proximityRadiusKm > 0 {
			p.proximityRadiusKm = proximityRadiusKm
		}
	}
}

// Input holds the worker attributes and the precomputed distance.
type Input struct {
	Rating        float64
	Experience    int
	CompletedJobs int
	DistanceKm    float64
}

// Scorer computes a score from an input.
type Scorer interface {
	Score(in Input) float64
}

// Policy is the weighted-sum ScoringPolicy. None of the normalized terms is
// clamped, so the result is a ranking heuristic and may fall outside [0,1].
type Policy struct {
	ratingWeight     float64
	experienceWeight float64
	jobsWeight       float64
	proximityWeight  float64

	maxRating         float64
	experienceScale   float64
	jobsScale         float64
	proximityRadiusKm float64
}

// NewPolicy creates a policy with the default weights and normalizers.
func NewPolicy(opts ...Option) *Policy {
	p := &Policy{
		ratingWeight:      defaultRatingWeight,
		experienceWeight:  defaultExperienceWeight,
		jobsWeight:        defaultJobsWeight,
		proximityWeight:   defaultProximityWeight,
		maxRating:         defaultMaxRating,
		experienceScale:   defaultExperienceScale,
		jobsScale:         defaultJobsScale,
		proximityRadiusKm: defaultProximityRadiusKm,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Score returns the unrounded composite score.
func (p *Policy) Score(in Input) float64 {
	normalizedRating := in.Rating / p.maxRating
	normalizedExperience := float64(in.Experience) / p.experienceScale
	normalizedJobs := float64(in.CompletedJobs) / p.jobsScale
	proximity := 1 - in.DistanceKm/p.proximityRadiusKm

	return p.ratingWeight*normalizedRating +
		p.experienceWeight*normalizedExperience +
		p.jobsWeight*normalizedJobs +
		p.proximityWeight*proximity
}

// Score evaluates the default policy.
func Score(rating float64, experience, completedJobs int, distanceKm float64) float64 {
	return defaultPolicy.Score(Input{
		Rating:        rating,
		Experience:    experience,
		CompletedJobs: completedJobs,
		DistanceKm:    distanceKm,
	})
}

var defaultPolicy = NewPolicy()
