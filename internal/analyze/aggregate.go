// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/paper-radar/internal/fetch"
	"github.com/pdiddy/paper-radar/internal/reputation"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// defaultWorkers bounds the per-window paper-processing pool.
const defaultWorkers = 15

// Partition splits the monthsBack months preceding base into whole
// calendar-month windows, most recent first. Windows anchor to month
// boundaries, so base's own partial month is excluded.
func Partition(base time.Time, monthsBack int) []fetch.Window {
	anchor := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, time.UTC)
	windows := make([]fetch.Window, 0, monthsBack)
	for i := 0; i < monthsBack; i++ {
		windows = append(windows, fetch.Window{
			Start: anchor.AddDate(0, -(i + 1), 0),
			End:   anchor.AddDate(0, -i, 0),
		})
	}
	return windows
}

// Aggregator drives a whole run: one window at a time, papers within a
// window in parallel. Windows stay sequential so total outstanding network
// concurrency is bounded by one window's pool plus the global reputation
// semaphore.
type Aggregator struct {
	Fetcher  *fetch.Fetcher
	Pipeline *Pipeline

	// Cache, when set, is flushed at each window boundary.
	Cache *reputation.Cache

	Log zerolog.Logger
}

// Run produces the full report for params. It returns an error only for
// invalid parameters or cancellation between windows; window-level
// failures are recorded on their buckets and the run continues.
func (a *Aggregator) Run(ctx context.Context, params types.RunParams) (*types.Report, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	workers := params.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	runStart := time.Now()
	report := &types.Report{}

	for _, w := range Partition(params.BaseDate, params.MonthsBack) {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		bucket := a.runWindow(ctx, w, params, workers)
		report.Buckets = append(report.Buckets, bucket)

		report.Performance.PapersFound += bucket.Performance.PapersFound
		report.Performance.PapersProcessed += bucket.Performance.PapersProcessed
		report.Performance.Errors += bucket.Performance.Errors

		if a.Cache != nil {
			if err := a.Cache.Flush(); err != nil {
				a.Log.Warn().Err(err).Msg("cache flush at window boundary failed")
			}
		}
	}

	total := time.Since(runStart).Seconds()
	report.Performance.TotalTime = total
	report.Performance.AverageTimePerPaper = total / float64(max(report.Performance.PapersProcessed, 1))
	return report, nil
}

// runWindow fetches and processes one calendar month.
func (a *Aggregator) runWindow(ctx context.Context, w fetch.Window, params types.RunParams, workers int) types.MonthBucket {
	start := time.Now()
	log := a.Log.With().Str("month", w.Key()).Logger()

	records, err := a.Fetcher.Fetch(ctx, params.Fields, w, params.MaxPapersPerMonth)
	if err != nil {
		werr := &WindowError{Month: w.Key(), Err: err}
		log.Error().Err(werr).Msg("window failed")
		return types.MonthBucket{
			Key: w.Key(),
			Err: werr.Error(),
			Performance: types.WindowPerformance{
				ProcessingTime:      time.Since(start).Seconds(),
				Errors:              1,
				AverageTimePerPaper: time.Since(start).Seconds(),
			},
		}
	}

	rows := make([]*types.ReportRow, len(records))
	var errCount int32

	var g errgroup.Group
	g.SetLimit(workers)
	for i := range records {
		i := i // per-iteration copy; required under a pre-1.22 go directive
		g.Go(func() error {
			row, perr := a.Pipeline.Process(ctx, records[i], i)
			if perr != nil {
				atomic.AddInt32(&errCount, 1)
				log.Error().Err(perr).Msg("paper dropped")
				return nil
			}
			rows[i] = &row
			return nil
		})
	}
	g.Wait()

	// Collect in retrieval order so the stable sort's tie-break is the
	// original index.
	papers := make([]types.ReportRow, 0, len(records))
	for _, r := range rows {
		if r != nil {
			papers = append(papers, *r)
		}
	}
	processed := len(papers)

	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].Total > papers[j].Total
	})
	if len(papers) > params.MaxPapersPerMonth {
		papers = papers[:params.MaxPapersPerMonth]
	}

	elapsed := time.Since(start).Seconds()
	perf := types.WindowPerformance{
		ProcessingTime:      elapsed,
		PapersFound:         len(records),
		PapersProcessed:     processed,
		Errors:              int(errCount),
		AverageTimePerPaper: elapsed / float64(max(processed, 1)),
	}
	log.Info().
		Int("found", perf.PapersFound).
		Int("processed", perf.PapersProcessed).
		Int("errors", perf.Errors).
		Float64("seconds", elapsed).
		Msg("window complete")

	return types.MonthBucket{Key: w.Key(), Papers: papers, Performance: perf}
}
