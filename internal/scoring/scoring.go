// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring computes the relevance, commercial, and author scores.
// Every method is pure and safe for concurrent use; patterns are compiled
// once at construction.
package scoring

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"github.com/pdiddy/paper-radar/pkg/types"
)

const (
	// relevanceCalibration divides the raw keyword total before scaling
	// to [0,5].
	relevanceCalibration = 10

	// commercialCalibration divides the raw patent and industry totals
	// before scaling to [0,5].
	commercialCalibration = 15
)

// term is one compiled vocabulary entry.
type term struct {
	name   string
	weight float64
	re     *regexp.Regexp
}

// Engine scores paper text against the configured vocabularies.
type Engine struct {
	relevance []term
	patent    []term
	industry  []term
	sectors   []term
}

// New compiles the keyword and commercial tables into an Engine. Terms are
// matched whole-word and case-insensitively; they are ordered
// alphabetically so matched-tag lists are deterministic.
func New(keywords map[string]float64, tables *types.CommercialTables) (*Engine, error) {
	e := &Engine{}
	var err error
	if e.relevance, err = compileTerms(keywords); err != nil {
		return nil, fmt.Errorf("compiling keyword table: %w", err)
	}
	if tables != nil {
		if e.patent, err = compileTerms(tables.PatentKeywords); err != nil {
			return nil, fmt.Errorf("compiling patent table: %w", err)
		}
		if e.industry, err = compileTerms(tables.IndustryKeywords); err != nil {
			return nil, fmt.Errorf("compiling industry table: %w", err)
		}
		if e.sectors, err = compileTerms(tables.MarketSectors); err != nil {
			return nil, fmt.Errorf("compiling sector table: %w", err)
		}
	}
	return e, nil
}

func compileTerms(m map[string]float64) ([]term, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	terms := make([]term, 0, len(names))
	for _, name := range names {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("term %q: %w", name, err)
		}
		terms = append(terms, term{name: name, weight: m[name], re: re})
	}
	return terms, nil
}

func clamp5(v float64) float64 {
	return math.Min(5, v)
}

// Relevance counts whole-word keyword occurrences in text, accumulates
// count×weight, and scales the total to [0,5]. It also returns the matched
// keywords.
func (e *Engine) Relevance(text string) (float64, []string) {
	var total float64
	var tags []string
	for _, t := range e.relevance {
		n := len(t.re.FindAllStringIndex(text, -1))
		if n > 0 {
			total += float64(n) * t.weight
			tags = append(tags, t.name)
		}
	}
	return clamp5(total / relevanceCalibration * 5), tags
}

// presence sums the weights of terms appearing at least once in text.
func presence(terms []term, text string) (float64, []string) {
	var total float64
	var tags []string
	for _, t := range terms {
		if t.re.MatchString(text) {
			total += t.weight
			tags = append(tags, t.name)
		}
	}
	return total, tags
}

// PatentPotential scores presence-based patent-keyword matches to [0,5].
func (e *Engine) PatentPotential(text string) (float64, []string) {
	total, tags := presence(e.patent, text)
	return clamp5(total / commercialCalibration * 5), tags
}

// IndustryRelevance scores presence-based industry-keyword matches to [0,5].
func (e *Engine) IndustryRelevance(text string) (float64, []string) {
	total, tags := presence(e.industry, text)
	return clamp5(total / commercialCalibration * 5), tags
}

// SectorMatches returns the market sectors named in text.
func (e *Engine) SectorMatches(text string) []string {
	_, tags := presence(e.sectors, text)
	return tags
}

// AuthorScore maps a single author's h-index to [0,5].
func AuthorScore(hIndex int) float64 {
	if hIndex <= 0 {
		return 0
	}
	return clamp5(float64(hIndex) / 100 * 5)
}

// TeamScore maps the summed h-index of up to five authors to [0,5] on a
// log scale, so very high totals saturate rather than dominate.
func TeamScore(totalHIndex int) float64 {
	if totalHIndex <= 0 {
		return 0
	}
	return clamp5(math.Log(1+float64(totalHIndex)) * 1.5)
}

// Total combines relevance and author scores into the ranking score.
func Total(relevance, author float64) float64 {
	return 0.7*relevance + 0.3*author
}

// Commercial combines the commercial sub-scores. It is reported alongside
// Total but never folded into it.
func Commercial(patent, industry float64, sectorCount int) float64 {
	return patent + industry + clamp5(float64(sectorCount))
}
