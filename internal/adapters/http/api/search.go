package api

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	service "github.com/okian/laborconnect/internal/app"
	"github.com/okian/laborconnect/internal/domain/model"
)

// SearchDependencies defines the interface for worker search.
type SearchDependencies interface {
	Search(ctx context.Context, skill string, userLat, userLon float64) ([]model.MatchResult, error)
}

// SearchHandler handles search requests.
type SearchHandler struct {
	deps SearchDependencies
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(deps SearchDependencies) *SearchHandler {
	return &SearchHandler{deps: deps}
}

type searchQuery struct {
	skill   string
	userLat float64
	userLon float64
}

func parseSearchQuery(q url.Values) (searchQuery, error) {
	if !q.Has("skill") {
		return searchQuery{}, errors.New("missing skill")
	}
	lat, err := parseCoordinate(q, "user_lat", maxLatitude)
	if err != nil {
		return searchQuery{}, err
	}
	lon, err := parseCoordinate(q, "user_lon", maxLongitude)
	if err != nil {
		return searchQuery{}, err
	}
	return searchQuery{skill: q.Get("skill"), userLat: lat, userLon: lon}, nil
}

func parseCoordinate(q url.Values, name string, limit float64) (float64, error) {
	if !q.Has(name) {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.ParseFloat(q.Get(name), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	if math.Abs(v) > limit {
		return 0, fmt.Errorf("%s must be between %g and %g", name, -limit, limit)
	}
	return v, nil
}

// HandleSearch handles GET /search_workers?skill=S&user_lat=LAT&user_lon=LON requests.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	const op = "api.search_workers"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q, err := parseSearchQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	results, err := h.deps.Search(r.Context(), q.skill, q.userLat, q.userLon)
	if err != nil {
		if errors.Is(err, service.ErrNotStarted) {
			writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if results == nil {
		results = []model.MatchResult{}
	}
	writeJSON(w, http.StatusOK, results)
}
