// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// CommercialTables holds the commercial-signal vocabulary. The on-disk
// format matches commercial_metrics.json.
type CommercialTables struct {
	// PatentKeywords maps patent-indicating terms to weights.
	PatentKeywords map[string]float64 `json:"patent_keywords" yaml:"patent_keywords"`

	// IndustryKeywords maps industry-adoption terms to weights.
	IndustryKeywords map[string]float64 `json:"industry_keywords" yaml:"industry_keywords"`

	// MarketSectors maps sector names to weights. Sector matches are
	// reported by name; the weights are reserved for a commercial-weighted
	// ranking variant.
	MarketSectors map[string]float64 `json:"market_sectors" yaml:"market_sectors"`

	// KnownAuthors maps prominent author names to their h-indices. Matches
	// here short-circuit the network reputation lookup.
	KnownAuthors map[string]int `json:"prominent_authors" yaml:"prominent_authors"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	// Level is the minimum level: trace, debug, info, warn, or error.
	Level string `json:"level" yaml:"level"`

	// Format is "console" for human-readable output or "json".
	Format string `json:"format" yaml:"format"`
}

// RunParams are the typed parameters of one analysis run, as parsed from
// the CLI surface.
type RunParams struct {
	// Fields are the user-supplied title search terms.
	Fields []string `json:"fields" yaml:"fields" validate:"required,min=1,dive,required"`

	// MonthsBack is the number of whole calendar months to analyze.
	MonthsBack int `json:"months_back" yaml:"months_back" validate:"min=1,max=24"`

	// MaxPapersPerMonth caps the ranked rows kept per month bucket.
	MaxPapersPerMonth int `json:"max_papers_per_month" yaml:"max_papers_per_month" validate:"min=1,max=500"`

	// Workers bounds the per-window paper-processing pool.
	Workers int `json:"workers" yaml:"workers" validate:"min=1,max=64"`

	// BaseDate anchors the month partition. Its own partial month is
	// excluded from the windows.
	BaseDate time.Time `json:"base_date" yaml:"base_date" validate:"required"`

	// TeamAuthors enables the multi-author resolution variant (first 5
	// authors, log-scaled aggregate score).
	TeamAuthors bool `json:"team_authors" yaml:"team_authors"`
}

var validate = validator.New()

// Validate checks the parameter ranges before a run starts.
func (p RunParams) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid run parameters: %w", err)
	}
	return nil
}
