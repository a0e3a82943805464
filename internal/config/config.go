// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads and memoizes the keyword-weight and
// commercial-signal tables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-radar/pkg/types"
)

// LoadError reports a configuration file that exists but cannot be parsed.
// Callers substitute the minimal in-memory defaults and continue the run.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store serves the keyword and commercial tables: loaded once, cached for
// the process lifetime, read-only in the hot path. A missing file is
// bootstrapped from the built-in defaults and written back; a corrupt file
// yields a *LoadError without caching anything.
type Store struct {
	keywordsPath   string
	commercialPath string
	log            zerolog.Logger

	mu       sync.Mutex
	keywords map[string]float64
	tables   *types.CommercialTables
}

// NewStore creates a Store reading from the given file paths.
func NewStore(keywordsPath, commercialPath string, log zerolog.Logger) *Store {
	return &Store{
		keywordsPath:   keywordsPath,
		commercialPath: commercialPath,
		log:            log,
	}
}

// KeywordWeights returns the keyword→weight relevance table.
func (s *Store) KeywordWeights() (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.keywords != nil {
		return s.keywords, nil
	}

	var loaded map[string]float64
	if err := s.loadOrBootstrap(s.keywordsPath, &loaded, DefaultKeywords()); err != nil {
		return nil, err
	}
	s.keywords = loaded
	return s.keywords, nil
}

// CommercialTables returns the patent/industry/sector/known-author tables.
func (s *Store) CommercialTables() (*types.CommercialTables, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tables != nil {
		return s.tables, nil
	}

	var loaded types.CommercialTables
	if err := s.loadOrBootstrap(s.commercialPath, &loaded, DefaultCommercialTables()); err != nil {
		return nil, err
	}
	s.tables = &loaded
	return s.tables, nil
}

// Invalidate clears the memoized tables so the next call reloads from disk.
// Operability only; nothing in the pipeline depends on reloads.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords = nil
	s.tables = nil
}

// loadOrBootstrap reads path into dst. When the file is absent it writes
// def back to disk and decodes from that instead.
func (s *Store) loadOrBootstrap(path string, dst any, def any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.log.Info().Str("path", path).Msg("config file missing, writing defaults")
		data, err = json.MarshalIndent(def, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling default config: %w", err)
		}
		if werr := os.WriteFile(path, data, 0o644); werr != nil {
			// The defaults still serve this run even if the write-back fails.
			s.log.Warn().Err(werr).Str("path", path).Msg("could not persist default config")
		}
	} else if err != nil {
		return &LoadError{Path: path, Err: err}
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return &LoadError{Path: path, Err: err}
	}
	return nil
}

// MinimalKeywords is the in-memory fallback when the keyword file exists
// but cannot be parsed.
func MinimalKeywords() map[string]float64 {
	return map[string]float64{
		"machine learning": 5,
		"deep learning":    5,
		"neural network":   4,
	}
}

// MinimalCommercial is the in-memory fallback when the commercial file
// exists but cannot be parsed. Empty tables score every paper at zero
// commercial signal rather than aborting the run.
func MinimalCommercial() *types.CommercialTables {
	return &types.CommercialTables{
		PatentKeywords:   map[string]float64{},
		IndustryKeywords: map[string]float64{},
		MarketSectors:    map[string]float64{},
		KnownAuthors:     map[string]int{},
	}
}
