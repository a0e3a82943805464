// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-radar/internal/analyze"
	"github.com/pdiddy/paper-radar/internal/archive"
	"github.com/pdiddy/paper-radar/internal/arxiv"
	"github.com/pdiddy/paper-radar/internal/config"
	"github.com/pdiddy/paper-radar/internal/fetch"
	"github.com/pdiddy/paper-radar/internal/reputation"
	"github.com/pdiddy/paper-radar/internal/scoring"
	"github.com/pdiddy/paper-radar/pkg/types"
)

const (
	defaultMonths       = 3
	defaultMaxPapers    = 20
	defaultBatchSize    = 15
	defaultLookupWorker = 10
	defaultUserAgent    = "paper-radar/0.1"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Fetch, score, and rank recent papers for a set of fields",
	Long: `Analyze queries arXiv for papers matching the given fields over the
last N whole calendar months, enriches each paper's first author with
Semantic Scholar impact data, scores relevance and commercial signals, and
emits a ranked report bucketed by month.

Individual paper failures are dropped and counted; a failed month is
reported on its bucket. The command exits 0 as long as the run itself
completes.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSlice("fields", nil, "topical fields to search for (required)")
	analyzeCmd.Flags().Int("months", defaultMonths, "number of whole calendar months to analyze")
	analyzeCmd.Flags().Int("max-papers", defaultMaxPapers, "maximum papers kept per month")
	analyzeCmd.Flags().Int("batch-size", defaultBatchSize, "concurrent paper workers per month")
	analyzeCmd.Flags().String("base-date", "", "anchor date YYYY-MM-DD (default today; its partial month is excluded)")
	analyzeCmd.Flags().Bool("team-authors", false, "score the first five authors' combined impact instead of the first author")
	analyzeCmd.Flags().String("out", "", "output file (default stdout)")
	analyzeCmd.Flags().String("format", "json", "output format: json or yaml")
	analyzeCmd.Flags().Bool("archive", false, "record the run to the SQLite archive")
	analyzeCmd.Flags().String("api-key", "", "Semantic Scholar API key (default: .secrets/semantic-scholar-api-key)")
	analyzeCmd.Flags().String("keywords", "keywords.json", "keyword weights file")
	analyzeCmd.Flags().String("commercial", "commercial_metrics.json", "commercial metric tables file")
	analyzeCmd.Flags().String("cache-file", "", "reputation cache file (default: ~/.cache/paper-radar/hindex_cache.json)")
	analyzeCmd.Flags().String("archive-db", "", "run archive database (default: ~/.cache/paper-radar/runs.db)")
	analyzeCmd.MarkFlagRequired("fields")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fields, _ := cmd.Flags().GetStringSlice("fields")
	months, _ := cmd.Flags().GetInt("months")
	maxPapers, _ := cmd.Flags().GetInt("max-papers")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	teamAuthors, _ := cmd.Flags().GetBool("team-authors")

	baseDate := time.Now().UTC()
	if raw, _ := cmd.Flags().GetString("base-date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fmt.Errorf("parsing --base-date: %w", err)
		}
		baseDate = parsed
	}

	params := types.RunParams{
		Fields:            fields,
		MonthsBack:        months,
		MaxPapersPerMonth: maxPapers,
		Workers:           batchSize,
		BaseDate:          baseDate,
		TeamAuthors:       teamAuthors,
	}

	engine, known, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	cachePath, _ := cmd.Flags().GetString("cache-file")
	if cachePath == "" {
		cachePath = filepath.Join(cacheDir(), "hindex_cache.json")
	}
	cache := reputation.OpenCache(cachePath, log)

	apiKey, _ := cmd.Flags().GetString("api-key")
	client := &reputation.Client{
		APIKey:    secretDefault("semantic-scholar-api-key", apiKey),
		UserAgent: defaultUserAgent,
	}
	resolver := reputation.NewResolver(client, cache, known, defaultLookupWorker, log)

	index := arxiv.New(arxiv.Config{UserAgent: defaultUserAgent})
	agg := &analyze.Aggregator{
		Fetcher:  &fetch.Fetcher{Index: index, Log: log},
		Pipeline: &analyze.Pipeline{Engine: engine, Resolver: resolver, Team: teamAuthors, Log: log},
		Cache:    cache,
		Log:      log,
	}

	report, err := agg.Run(ctx, params)
	if err != nil {
		return err
	}
	if err := cache.Flush(); err != nil {
		log.Warn().Err(err).Msg("final cache flush failed")
	}

	if archiveRun, _ := cmd.Flags().GetBool("archive"); archiveRun {
		if err := recordRun(ctx, cmd, params, report); err != nil {
			log.Warn().Err(err).Msg("archiving run failed")
		}
	}

	return writeReport(cmd, report)
}

// buildEngine loads the keyword and commercial tables, compiles the
// scorer, and returns the prominent-author list for the resolver. An
// unparsable table degrades to the minimal built-in tables so the run
// still proceeds.
func buildEngine(cmd *cobra.Command) (*scoring.Engine, map[string]int, error) {
	keywordsPath, _ := cmd.Flags().GetString("keywords")
	commercialPath, _ := cmd.Flags().GetString("commercial")
	store := config.NewStore(keywordsPath, commercialPath, log)

	keywords, err := store.KeywordWeights()
	if err != nil {
		var lerr *config.LoadError
		if !errors.As(err, &lerr) {
			return nil, nil, err
		}
		log.Warn().Err(err).Msg("keyword table unusable, using minimal defaults")
		keywords = config.MinimalKeywords()
	}

	tables, err := store.CommercialTables()
	if err != nil {
		var lerr *config.LoadError
		if !errors.As(err, &lerr) {
			return nil, nil, err
		}
		log.Warn().Err(err).Msg("commercial tables unusable, using minimal defaults")
		tables = config.MinimalCommercial()
	}

	engine, err := scoring.New(keywords, tables)
	if err != nil {
		return nil, nil, err
	}
	return engine, tables.KnownAuthors, nil
}

func recordRun(ctx context.Context, cmd *cobra.Command, params types.RunParams, report *types.Report) error {
	dbPath, _ := cmd.Flags().GetString("archive-db")
	if dbPath == "" {
		dbPath = filepath.Join(cacheDir(), "runs.db")
	}
	store, err := archive.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Record(ctx, params, report)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Archived run %s\n", id)
	return nil
}

func writeReport(cmd *cobra.Command, report *types.Report) error {
	var out io.Writer = os.Stdout
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json", "":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(report)
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}
