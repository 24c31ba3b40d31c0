package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/laborconnect/pkg/logger"
	"golang.org/x/sync/errgroup"
)

const idempotencyKeyHeader = "Idempotency-Key"

// Sentinel errors for the seeding client.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrVerification     = errors.New("verification failed")
)

// Client talks to a LaborConnect service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Ping checks that the service answers on "/".
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("connect to service: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: ping returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

// AddWorker registers w under the given idempotency key.
func (c *Client) AddWorker(ctx context.Context, key string, w Worker) (AckResponse, error) {
	body, err := json.Marshal(w)
	if err != nil {
		return AckResponse{}, fmt.Errorf("marshal worker: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/add_worker", bytes.NewReader(body))
	if err != nil {
		return AckResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}

	var ack AckResponse
	if err := c.do(req, &ack); err != nil {
		return AckResponse{}, err
	}
	return ack, nil
}

// SearchWorkers returns the ranked matches for skill around (lat, lon).
func (c *Client) SearchWorkers(ctx context.Context, skill string, lat, lon float64) ([]MatchResult, error) {
	q := url.Values{}
	q.Set("skill", skill)
	q.Set("user_lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("user_lon", strconv.FormatFloat(lon, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search_workers?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var results []MatchResult
	if err := c.do(req, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrUnexpectedStatus, req.Method, req.URL.Path, resp.StatusCode, bytes.TrimSpace(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// registerWorkers submits workers with at most cfg.Concurrency requests in
// flight. Individual failures are counted, not returned.
func registerWorkers(ctx context.Context, cfg *Config, client *Client, workers []Worker, stats *Stats) error {
	logger.Get().Info(ctx, "registering workers",
		logger.Int("count", len(workers)),
		logger.Int("concurrency", cfg.Concurrency),
	)

	var registered, duplicate, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for _, w := range workers {
		w := w
		g.Go(func() error {
			ack, err := client.AddWorker(gctx, uuid.NewString(), w)
			switch {
			case err != nil:
				failed.Add(1)
				logger.Get().Warn(gctx, "registration failed", logger.String("name", w.Name), logger.Error(err))
			case ack.Duplicate:
				duplicate.Add(1)
			default:
				registered.Add(1)
				if cfg.Verbose {
					logger.Get().Debug(gctx, "worker registered", logger.String("name", w.Name), logger.String("id", ack.ID))
				}
			}
			return gctx.Err()
		})
	}
	err := g.Wait()

	stats.WorkersRegistered = int(registered.Load())
	stats.WorkersDuplicate = int(duplicate.Load())
	stats.WorkersFailed = int(failed.Load())

	logger.Get().Info(ctx, "registration completed",
		logger.Int("registered", stats.WorkersRegistered),
		logger.Int("duplicate", stats.WorkersDuplicate),
		logger.Int("failed", stats.WorkersFailed),
	)
	if err != nil {
		return fmt.Errorf("register workers: %w", err)
	}
	return nil
}
