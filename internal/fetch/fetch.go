// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves paper records from the literature index for one
// month window: it builds the query, over-fetches, and re-filters by date
// client-side because the index's own boundary filtering is unreliable.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-radar/internal/arxiv"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// defaultOverFetch is how many times maxResults the index is asked for
// before client-side date filtering.
const defaultOverFetch = 5

// IndexClient is the read-only retrieval contract on the literature index.
type IndexClient interface {
	Search(ctx context.Context, query string, maxResults int) ([]arxiv.Entry, error)
}

// Window is one calendar month: inclusive start, exclusive end.
type Window struct {
	Start time.Time
	End   time.Time
}

// Key returns the bucket key in "YYYY-MM" form.
func (w Window) Key() string { return w.Start.Format("2006-01") }

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// BuildQuery constructs the index query for fields within w: a title-term
// disjunction (user fields first, then the default vocabulary, deduped and
// capped), an abstract-term disjunction, a category disjunction, and the
// submission-date range.
func BuildQuery(fields []string, w Window) string {
	titleTerms := mergeTerms(fields, defaultTitleTerms)

	quotedTitle := make([]string, len(titleTerms))
	for i, t := range titleTerms {
		quotedTitle[i] = fmt.Sprintf("ti:%q", t)
	}
	abstractTerms := defaultAbstractTerms[:maxAbstractTerms]
	quotedAbstract := make([]string, len(abstractTerms))
	for i, t := range abstractTerms {
		quotedAbstract[i] = fmt.Sprintf("abs:%q", t)
	}
	cats := make([]string, len(defaultCategories))
	for i, c := range defaultCategories {
		cats[i] = "cat:" + c
	}

	dateFilter := fmt.Sprintf("submittedDate:[%s0000 TO %s2359]",
		w.Start.Format("20060102"), w.End.Format("20060102"))

	return fmt.Sprintf("((%s) OR (%s)) AND (%s) AND %s",
		strings.Join(quotedTitle, " OR "),
		strings.Join(quotedAbstract, " OR "),
		strings.Join(cats, " OR "),
		dateFilter)
}

// mergeTerms places user fields first, appends defaults, dedups
// case-insensitively, and caps the total at maxTitleTerms.
func mergeTerms(fields, defaults []string) []string {
	seen := make(map[string]bool)
	var merged []string
	add := func(term string) {
		term = strings.TrimSpace(term)
		if term == "" {
			return
		}
		key := strings.ToLower(term)
		if seen[key] || len(merged) >= maxTitleTerms {
			return
		}
		seen[key] = true
		merged = append(merged, term)
	}

	if len(fields) > maxUserFields {
		fields = fields[:maxUserFields]
	}
	for _, f := range fields {
		add(f)
	}
	for _, d := range defaults {
		add(d)
	}
	return merged
}

// Fetcher drives one window's retrieval against the index.
type Fetcher struct {
	Index IndexClient

	// OverFetch multiplies maxResults on the index request. Zero means the
	// default factor of 5.
	OverFetch int

	Log zerolog.Logger
}

// Fetch returns up to maxResults records submitted within w, in the
// index's own descending-submission-date order. Ranking happens later;
// this stage never re-orders.
func (f *Fetcher) Fetch(ctx context.Context, fields []string, w Window, maxResults int) ([]types.PaperRecord, error) {
	over := f.OverFetch
	if over <= 0 {
		over = defaultOverFetch
	}

	query := BuildQuery(fields, w)
	f.Log.Debug().Str("month", w.Key()).Str("query", query).Msg("querying literature index")

	entries, err := f.Index.Search(ctx, query, maxResults*over)
	if err != nil {
		return nil, fmt.Errorf("searching index for %s: %w", w.Key(), err)
	}

	var records []types.PaperRecord
	for _, e := range entries {
		rec, ok := entryToRecord(e)
		if !ok {
			continue
		}
		// The index's date filter is unreliable at the boundary; enforce the
		// window strictly here.
		if !w.Contains(rec.Published) {
			continue
		}
		records = append(records, rec)
		if len(records) == maxResults {
			break
		}
	}

	f.Log.Info().Str("month", w.Key()).
		Int("retrieved", len(entries)).
		Int("in_window", len(records)).
		Msg("fetched papers")
	return records, nil
}

// entryToRecord converts one Atom entry into a PaperRecord. Entries with
// an unparsable ID or published date are skipped.
func entryToRecord(e arxiv.Entry) (types.PaperRecord, bool) {
	id := e.ArxivID()
	if id == "" {
		return types.PaperRecord{}, false
	}
	published, err := time.Parse(time.RFC3339, e.Published)
	if err != nil {
		return types.PaperRecord{}, false
	}
	updated, err := time.Parse(time.RFC3339, e.Updated)
	if err != nil {
		updated = published
	}

	authors := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}
	categories := make([]string, 0, len(e.Categories))
	for _, c := range e.Categories {
		if c.Term != "" {
			categories = append(categories, c.Term)
		}
	}

	return types.PaperRecord{
		ID:              e.ID,
		ArxivID:         id,
		Title:           strings.TrimSpace(e.Title),
		Abstract:        strings.TrimSpace(e.Summary),
		Authors:         authors,
		Published:       published,
		Updated:         updated,
		PrimaryCategory: e.PrimaryCategory.Term,
		Categories:      categories,
		DOI:             strings.TrimSpace(e.DOI),
		PDFURL:          e.PDFURL(),
	}, true
}
