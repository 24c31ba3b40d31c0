package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strings"

	service "github.com/okian/laborconnect/internal/app"
	"github.com/okian/laborconnect/internal/domain/model"
)

// IdempotencyKeyHeader lets clients retry a registration safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// Accepted input ranges.
const (
	minRating        = 0.0
	defaultMaxRating = 5.0
	maxLatitude      = 90.0
	maxLongitude     = 180.0
)

// RegisterDependencies defines the interface for worker registration.
type RegisterDependencies interface {
	Register(ctx context.Context, idempotencyKey string, w model.Worker) (model.Worker, bool, error)
}

// RegisterHandler handles worker registration requests.
type RegisterHandler struct {
	deps         RegisterDependencies
	maxBodyBytes int64
	maxRating    float64
}

// NewRegisterHandler creates a new registration handler. Ratings are accepted
// in [0, maxRating].
func NewRegisterHandler(deps RegisterDependencies, maxBodyBytes int64, maxRating float64) *RegisterHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	if maxRating <= 0 {
		maxRating = defaultMaxRating
	}
	return &RegisterHandler{deps: deps, maxBodyBytes: maxBodyBytes, maxRating: maxRating}
}

// availability accepts a JSON boolean or the integers 0 and 1.
type availability bool

func (a *availability) UnmarshalJSON(b []byte) error {
	switch strings.TrimSpace(string(b)) {
	case "true", "1":
		*a = true
	case "false", "0":
		*a = false
	default:
		return fmt.Errorf("available must be a boolean or 0/1, got %s", b)
	}
	return nil
}

// registerRequest mirrors the POST /add_worker payload. Pointers tell a
// missing field apart from its zero value.
type registerRequest struct {
	Name          *string       `json:"name"`
	Skill         *string       `json:"skill"`
	Experience    *int          `json:"experience"`
	Rating        *float64      `json:"rating"`
	CompletedJobs *int          `json:"completed_jobs"`
	Latitude      *float64      `json:"latitude"`
	Longitude     *float64      `json:"longitude"`
	Available     *availability `json:"available"`
}

func (r *registerRequest) validate(maxRating float64) error {
	switch {
	case r.Name == nil:
		return errors.New("missing name")
	case r.Skill == nil:
		return errors.New("missing skill")
	case r.Experience == nil:
		return errors.New("missing experience")
	case r.Rating == nil:
		return errors.New("missing rating")
	case r.CompletedJobs == nil:
		return errors.New("missing completed_jobs")
	case r.Latitude == nil:
		return errors.New("missing latitude")
	case r.Longitude == nil:
		return errors.New("missing longitude")
	case r.Available == nil:
		return errors.New("missing available")
	}

	switch {
	case strings.TrimSpace(*r.Name) == "":
		return errors.New("name must not be empty")
	case *r.Experience < 0:
		return errors.New("experience must not be negative")
	case *r.CompletedJobs < 0:
		return errors.New("completed_jobs must not be negative")
	case *r.Rating < minRating || *r.Rating > maxRating:
		return fmt.Errorf("rating must be between %g and %g", minRating, maxRating)
	case math.Abs(*r.Latitude) > maxLatitude:
		return fmt.Errorf("latitude must be between %g and %g", -maxLatitude, maxLatitude)
	case math.Abs(*r.Longitude) > maxLongitude:
		return fmt.Errorf("longitude must be between %g and %g", -maxLongitude, maxLongitude)
	}
	return nil
}

func (r *registerRequest) worker() model.Worker {
	return model.Worker{
		Name:          *r.Name,
		Skill:         *r.Skill,
		Experience:    *r.Experience,
		Rating:        *r.Rating,
		CompletedJobs: *r.CompletedJobs,
		Latitude:      *r.Latitude,
		Longitude:     *r.Longitude,
		Available:     bool(*r.Available),
	}
}

type registerResponse struct {
	Message   string `json:"message"`
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// HandleRegister handles POST /add_worker requests.
func (h *RegisterHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_worker"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", NewKind(op, ErrUnsupportedMedia))
			return
		}
	}

	var req registerRequest
	if err := decodeSingleObject(http.MaxBytesReader(w, r.Body, h.maxBodyBytes), &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large", WrapKind(op, ErrBodyTooLarge, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(h.maxRating); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
	stored, duplicate, err := h.deps.Register(r.Context(), key, req.worker())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestInFlight):
			writeError(w, http.StatusConflict, "conflict", WrapKind(op, ErrConflict, err))
		case errors.Is(err, service.ErrNotStarted):
			writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}

	writeJSON(w, http.StatusOK, registerResponse{
		Message:   fmt.Sprintf("Worker %s added successfully", stored.Name),
		ID:        stored.ID,
		Duplicate: duplicate,
	})
}

// decodeSingleObject decodes exactly one JSON value from body. Anything but
// whitespace after it is an error.
func decodeSingleObject(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return errors.New("request body must contain a single JSON object")
	}
}
