// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze turns raw paper records into the ranked, month-bucketed
// report: the per-paper pipeline and the month aggregator.
package analyze

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/paper-radar/internal/reputation"
	"github.com/pdiddy/paper-radar/internal/scoring"
	"github.com/pdiddy/paper-radar/pkg/types"
)

// Pipeline builds one report row from one raw record: sanitize, summarize,
// score, and enrich with the first author's reputation.
type Pipeline struct {
	Engine   *scoring.Engine
	Resolver *reputation.Resolver

	// Team enables the multi-author variant: the first five authors are
	// resolved and their summed h-index feeds the log-scaled team score.
	Team bool

	Log zerolog.Logger
}

// Process converts rec into a ReportRow. Any panic inside the sequence is
// recovered at this boundary and converted to a *ProcessingError; a single
// paper's failure never aborts the batch.
func (p *Pipeline) Process(ctx context.Context, rec types.PaperRecord, idx int) (row types.ReportRow, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ProcessingError{Index: idx, Title: rec.Title, Err: fmt.Errorf("panic: %v", r)}
			p.Log.Error().Int("paper", idx).Str("title", rec.Title).Msgf("pipeline panic: %v", r)
		}
	}()

	title := Sanitize(rec.Title)
	abstract := Sanitize(rec.Abstract)
	authors := make([]string, len(rec.Authors))
	for i, a := range rec.Authors {
		authors[i] = Sanitize(a)
	}

	text := title + " " + abstract
	relevance, tags := p.Engine.Relevance(text)
	patent, _ := p.Engine.PatentPotential(text)
	industry, _ := p.Engine.IndustryRelevance(text)
	sectors := p.Engine.SectorMatches(text)

	var rep types.AuthorReputation
	var authorScore float64
	if p.Team {
		var totalH int
		rep, totalH = p.Resolver.ResolveTeam(ctx, authors)
		authorScore = scoring.TeamScore(totalH)
	} else {
		rep = p.Resolver.ResolveFirst(ctx, authors)
		authorScore = scoring.AuthorScore(rep.HIndex)
	}

	firstAuthor := ""
	if len(authors) > 0 {
		firstAuthor = authors[0]
	}

	row = types.ReportRow{
		Title:           title,
		Authors:         authors,
		FirstAuthor:     firstAuthor,
		Summary:         abstract,
		Published:       rec.Published.Format("2006-01-02"),
		Updated:         rec.Updated.Format("2006-01-02"),
		Link:            rec.ID,
		PDFURL:          rec.PDFURL,
		DOI:             rec.DOI,
		PrimaryCategory: rec.PrimaryCategory,
		Categories:      rec.Categories,
		SummaryBullets:  SummaryBullets(abstract),
		HIndex:          rep.HIndex,
		Citations:       rep.Citations,

		AuthorProvenance: rep.Provenance,
		AuthorURL:        rep.ProfileURL,
		LinkedInSearch:   linkedInSearchURL(firstAuthor),

		ScoreBreakdown: types.ScoreBreakdown{
			Relevance:     relevance,
			RelevanceTags: tags,
			Patent:        patent,
			Industry:      industry,
			Sectors:       sectors,
			Commercial:    scoring.Commercial(patent, industry, len(sectors)),
			Author:        authorScore,
			Total:         scoring.Total(relevance, authorScore),
		},
	}
	return row, nil
}

// linkedInSearchURL builds a web search URL for the author's LinkedIn
// profile, spaces replaced by plus signs.
func linkedInSearchURL(author string) string {
	if author == "" {
		return ""
	}
	return "https://www.google.com/search?q=linkedin+" + strings.ReplaceAll(author, " ", "+")
}
