package seeder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/okian/laborconnect/pkg/logger"
	"github.com/spf13/cobra"
)

// ErrInvalidFlags is returned when run flags cannot describe a valid run.
var ErrInvalidFlags = errors.New("invalid flags")

// NewRootCommand builds the seed-workers command tree.
func NewRootCommand() *cobra.Command {
	var (
		jsonLogs bool
		verbose  bool
	)

	root := &cobra.Command{
		Use:           "seed-workers",
		Short:         "Seed a LaborConnect service with synthetic workers and verify search ranking",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			format := logger.FormatText
			if jsonLogs {
				format = logger.FormatJSON
			}
			if err := logger.InitWithFormat(cmd.OutOrStdout(), format); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if verbose {
				return logger.SetLevelString("debug")
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "json format for logging")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose/debug output")

	root.AddCommand(newRunCommand(&verbose))
	return root
}

func newRunCommand(verbose *bool) *cobra.Command {
	cfg := &Config{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Register workers concurrently, then search and verify the ranking",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.Verbose = *verbose
			if err := validate(cfg); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), DefaultRunTimeout)
			defer cancel()

			_, err := Run(ctx, cfg)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.BaseURL, "url", DefaultBaseURL, "base URL of the service")
	flags.IntVar(&cfg.NumWorkers, "workers", DefaultNumWorkers, "number of workers to register")
	flags.IntVar(&cfg.Concurrency, "concurrency", runtime.NumCPU()*concurrencyPerCPU, "concurrent registrations")
	flags.StringVar(&cfg.Skill, "skill", DefaultSkill, "skill assigned to every generated worker")
	flags.Float64Var(&cfg.Latitude, "lat", 0, "search origin latitude")
	flags.Float64Var(&cfg.Longitude, "lon", 0, "search origin longitude")
	flags.Float64Var(&cfg.SpreadKm, "spread-km", DefaultSpreadKm, "scatter workers within this distance of the origin")
	flags.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "HTTP request timeout")
	flags.StringVarP(&cfg.OutputFile, "output", "o", "", "write generated workers to this JSON file")

	return cmd
}

func validate(cfg *Config) error {
	switch {
	case cfg.NumWorkers <= 0:
		return fmt.Errorf("%w: --workers must be positive", ErrInvalidFlags)
	case cfg.Concurrency <= 0:
		return fmt.Errorf("%w: --concurrency must be positive", ErrInvalidFlags)
	case cfg.Skill == "":
		return fmt.Errorf("%w: --skill must not be empty", ErrInvalidFlags)
	case cfg.Latitude < -90 || cfg.Latitude > 90:
		return fmt.Errorf("%w: --lat must be between -90 and 90", ErrInvalidFlags)
	case cfg.Longitude < -180 || cfg.Longitude > 180:
		return fmt.Errorf("%w: --lon must be between -180 and 180", ErrInvalidFlags)
	}
	return nil
}

// Main runs the command tree and returns the process exit code.
func Main(ctx context.Context) int {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("seed-workers: " + err.Error() + "\n")
		return 1
	}
	return 0
}
