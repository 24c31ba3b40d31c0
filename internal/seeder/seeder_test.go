package seeder

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/laborconnect/internal/adapters/http/api"
	service "github.com/okian/laborconnect/internal/app"
	"github.com/okian/laborconnect/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// newTestService starts a matching service behind an httptest server.
func newTestService() (*httptest.Server, func()) {
	svc := service.New()
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	ts := httptest.NewServer(mux)
	return ts, func() {
		ts.Close()
		svc.Stop()
	}
}

func testConfig(url string) *Config {
	return &Config{
		BaseURL:     url,
		NumWorkers:  200,
		Concurrency: 8,
		Skill:       "plumbing",
		Latitude:    12.9716,
		Longitude:   77.5946,
		SpreadKm:    DefaultSpreadKm,
		Timeout:     5 * time.Second,
	}
}

func TestRun(t *testing.T) {
	Convey("Given a running matching service", t, func() {
		ts, cleanup := newTestService()
		defer cleanup()

		Convey("When seeding it with workers", func() {
			cfg := testConfig(ts.URL)
			cfg.OutputFile = filepath.Join(t.TempDir(), "out", "workers.json")
			stats, err := Run(context.Background(), cfg)

			Convey("Then every worker should be registered and verified", func() {
				So(err, ShouldBeNil)
				So(stats.WorkersGenerated, ShouldEqual, 200)
				So(stats.WorkersRegistered, ShouldEqual, 200)
				So(stats.WorkersFailed, ShouldEqual, 0)
				So(stats.MatchesReturned, ShouldEqual, stats.WorkersAvailable)
				So(stats.WorkersAvailable, ShouldBeLessThan, 200)
			})

			Convey("And the generated workers should be saved", func() {
				data, readErr := os.ReadFile(cfg.OutputFile)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"completed_jobs"`)
			})
		})
	})

	Convey("Given a service that is down", t, func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		Convey("Then the run should fail the service check", func() {
			_, err := Run(context.Background(), testConfig(ts.URL))
			So(errors.Is(err, ErrUnexpectedStatus), ShouldBeTrue)
		})
	})
}

func TestVerifyResults(t *testing.T) {
	Convey("Given a generated population", t, func() {
		ctx := context.Background()
		cfg := &Config{Skill: "plumbing"}
		workers := []Worker{
			{Name: "a", Skill: "plumbing", Available: true},
			{Name: "b", Skill: "plumbing", Available: true},
			{Name: "c", Skill: "plumbing", Available: false},
		}

		Convey("When results are ordered and complete", func() {
			results := []MatchResult{
				{Name: "b", Skill: "plumbing", Score: 0.9},
				{Name: "other", Skill: "plumbing", Score: 0.9},
				{Name: "a", Skill: "plumbing", Score: 0.1},
			}
			So(verifyResults(ctx, cfg, workers, results), ShouldBeNil)
		})

		Convey("When scores increase", func() {
			results := []MatchResult{
				{Name: "a", Skill: "plumbing", Score: 0.1},
				{Name: "b", Skill: "plumbing", Score: 0.9},
			}
			So(errors.Is(verifyResults(ctx, cfg, workers, results), ErrVerification), ShouldBeTrue)
		})

		Convey("When an unavailable worker is returned", func() {
			results := []MatchResult{
				{Name: "a", Skill: "plumbing", Score: 0.9},
				{Name: "b", Skill: "plumbing", Score: 0.5},
				{Name: "c", Skill: "plumbing", Score: 0.1},
			}
			err := verifyResults(ctx, cfg, workers, results)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "unavailable worker c")
		})

		Convey("When an available worker is missing", func() {
			results := []MatchResult{{Name: "a", Skill: "plumbing", Score: 0.9}}
			err := verifyResults(ctx, cfg, workers, results)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "worker b missing")
		})

		Convey("When a result has another skill", func() {
			results := []MatchResult{{Name: "a", Skill: "welding", Score: 0.9}}
			So(verifyResults(ctx, cfg, workers, results), ShouldNotBeNil)
		})
	})
}

func TestGenerateWorkers(t *testing.T) {
	Convey("Given a generation config", t, func() {
		cfg := testConfig("")
		cfg.Latitude, cfg.Longitude = 89.9, 179.9
		stats := &Stats{}
		workers := generateWorkers(context.Background(), cfg, stats)

		Convey("Then workers should be valid and uniquely named", func() {
			So(workers, ShouldHaveLength, cfg.NumWorkers)
			So(workers[len(workers)-1].Available, ShouldBeFalse)

			names := make(map[string]struct{})
			for _, w := range workers {
				names[w.Name] = struct{}{}
				So(w.Skill, ShouldEqual, "plumbing")
				So(w.Rating, ShouldBeBetweenOrEqual, 0.0, maxRating)
				So(w.Experience, ShouldBeBetweenOrEqual, 0, maxExperience)
				So(w.CompletedJobs, ShouldBeBetweenOrEqual, 0, maxCompletedJobs)
				So(w.Latitude, ShouldBeBetweenOrEqual, -90.0, 90.0)
				So(w.Longitude, ShouldBeBetweenOrEqual, -180.0, 180.0)
			}
			So(names, ShouldHaveLength, cfg.NumWorkers)
			So(stats.WorkersGenerated, ShouldEqual, cfg.NumWorkers)
		})
	})
}

func TestRootCommand(t *testing.T) {
	Convey("Given the seed-workers command", t, func() {
		ts, cleanup := newTestService()
		defer cleanup()

		var out bytes.Buffer
		cmd := NewRootCommand()
		cmd.SetOut(&out)
		cmd.SetErr(&out)

		Convey("When run against a live service", func() {
			cmd.SetArgs([]string{"run", "--url", ts.URL, "--workers", "25", "--concurrency", "4", "--skill", "carpentry", "--json"})
			err := cmd.ExecuteContext(context.Background())

			Convey("Then it should succeed and log the summary", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldContainSubstring, `"msg":"final statistics"`)
			})
		})

		Convey("When flags are invalid", func() {
			cmd.SetArgs([]string{"run", "--url", ts.URL, "--workers", "0"})
			err := cmd.ExecuteContext(context.Background())
			So(errors.Is(err, ErrInvalidFlags), ShouldBeTrue)
		})

		Convey("When the latitude is out of range", func() {
			cmd.SetArgs([]string{"run", "--url", ts.URL, "--lat", "91"})
			err := cmd.ExecuteContext(context.Background())
			So(errors.Is(err, ErrInvalidFlags), ShouldBeTrue)
		})
	})
}
