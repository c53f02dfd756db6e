package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/de-tools/boutique-reports/pkg/adapters"
	"github.com/de-tools/boutique-reports/pkg/models/api"
	"github.com/de-tools/boutique-reports/pkg/models/domain"
	"github.com/de-tools/boutique-reports/pkg/models/store"
	"github.com/de-tools/boutique-reports/pkg/store/duckdb/snapshot"
	"github.com/rs/zerolog"
)

const defaultInterval = time.Hour

var ErrNoReportTypes = errors.New("no report types to capture")

// Generator fetches one report, untyped but shape checked.
type Generator interface {
	GenerateChecked(ctx context.Context, t domain.ReportType, filters domain.Filters) (*api.ReportByTypeResponse, error)
}

// Runner periodically fetches a fixed set of reports and archives them,
// one transaction per round.
type Runner struct {
	generator Generator
	archive   snapshot.Store
	types     []domain.ReportType
	done      chan struct{}
	progress  chan RunnerProgress
	config    RunnerConfig
}

type RunnerConfig struct {
	Interval time.Duration
	// Rounds stops the runner after that many rounds; zero runs until
	// the context is cancelled.
	Rounds int
	Now    func() time.Time
}

type RunnerProgress struct {
	Round          int
	Captured       int
	Failed         int
	LastCapturedAt time.Time
}

func NewRunner(
	generator Generator,
	archive snapshot.Store,
	types []domain.ReportType,
	config RunnerConfig,
) (*Runner, error) {
	if len(types) == 0 {
		return nil, ErrNoReportTypes
	}
	if config.Interval <= 0 {
		config.Interval = defaultInterval
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Runner{
		generator: generator,
		archive:   archive,
		types:     types,
		done:      make(chan struct{}),
		progress:  make(chan RunnerProgress, 100),
		config:    config,
	}, nil
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Int("report_types", len(r.types)).Logger()
	defer close(r.done)
	defer close(r.progress)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for round := 1; ; round++ {
		progress := r.capture(logger.WithContext(ctx), round)
		select {
		case r.progress <- progress:
		default:
			logger.Warn().Int("round", round).Msg("progress dropped, nobody is listening")
		}

		if r.config.Rounds > 0 && round >= r.config.Rounds {
			return
		}

		select {
		case <-ctx.Done():
			logger.Info().Msg("report capture stopped")
			return
		case <-ticker.C:
		}
	}
}

func (r *Runner) capture(ctx context.Context, round int) RunnerProgress {
	logger := zerolog.Ctx(ctx)
	fetchedAt := r.config.Now()
	progress := RunnerProgress{Round: round, LastCapturedAt: fetchedAt}

	snaps := make([]store.ReportSnapshot, 0, len(r.types))
	for _, t := range r.types {
		resp, err := r.generator.GenerateChecked(ctx, t, domain.Filters{})
		if err != nil {
			logger.Error().Err(err).Str("report_type", t.String()).Msg("failed to fetch report")
			progress.Failed++
			continue
		}

		snap, err := adapters.MapRawReportToSnapshot(t, domain.Filters{}, resp.Report, fetchedAt)
		if err != nil {
			logger.Error().Err(err).Str("report_type", t.String()).Msg("failed to map report")
			progress.Failed++
			continue
		}
		snaps = append(snaps, snap)
	}

	if len(snaps) == 0 {
		return progress
	}
	if err := r.archive.SaveAll(ctx, snaps); err != nil {
		logger.Error().Err(err).Int("round", round).Msg("failed to archive reports")
		progress.Failed += len(snaps)
		return progress
	}

	progress.Captured = len(snaps)
	logger.Info().Int("round", round).Int("captured", progress.Captured).Msg("reports captured")
	return progress
}
