// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"go.yaml.in/yaml/v3"
)

// ReportRow is the finished, presentation-ready record for one paper.
// Rows are immutable after the pipeline assembles them; within a month
// bucket they are ordered by Total descending with retrieval order as
// the tie-break.
type ReportRow struct {
	Title           string   `json:"title" yaml:"title"`
	Authors         []string `json:"authors" yaml:"authors"`
	FirstAuthor     string   `json:"first_author" yaml:"first_author"`
	Summary         string   `json:"summary" yaml:"summary"`
	Published       string   `json:"published" yaml:"published"`
	Updated         string   `json:"updated" yaml:"updated"`
	Link            string   `json:"link" yaml:"link"`
	PDFURL          string   `json:"pdf_url" yaml:"pdf_url"`
	DOI             string   `json:"doi,omitempty" yaml:"doi,omitempty"`
	PrimaryCategory string   `json:"primary_category,omitempty" yaml:"primary_category,omitempty"`
	Categories      []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// SummaryBullets holds up to three result-bearing sentences from the
	// abstract, in original order.
	SummaryBullets []string `json:"summary_bullets" yaml:"summary_bullets"`

	// HIndex and Citations come from the resolved first-author reputation.
	HIndex    int `json:"h_index" yaml:"h_index"`
	Citations int `json:"citations,omitempty" yaml:"citations,omitempty"`

	// AuthorProvenance records how the author reputation was obtained.
	AuthorProvenance Provenance `json:"author_provenance,omitempty" yaml:"author_provenance,omitempty"`

	// AuthorURL links to the first author's reputation-service profile.
	AuthorURL string `json:"author_url,omitempty" yaml:"author_url,omitempty"`

	// LinkedInSearch is a web search URL for the first author's LinkedIn.
	LinkedInSearch string `json:"linkedin_search" yaml:"linkedin_search"`

	ScoreBreakdown `yaml:",inline"`
}

// WindowPerformance holds the counters for one month window.
type WindowPerformance struct {
	// ProcessingTime is the window's wall time in seconds.
	ProcessingTime float64 `json:"processing_time" yaml:"processing_time"`

	// PapersFound counts records retrieved after the date filter.
	PapersFound int `json:"papers_found" yaml:"papers_found"`

	// PapersProcessed counts records that produced a report row.
	PapersProcessed int `json:"papers_processed" yaml:"papers_processed"`

	// Errors counts records dropped by per-paper failures, plus one for a
	// failed window fetch.
	Errors int `json:"errors" yaml:"errors"`

	// AverageTimePerPaper is ProcessingTime / max(PapersProcessed, 1).
	AverageTimePerPaper float64 `json:"average_time_per_paper" yaml:"average_time_per_paper"`
}

// RunPerformance aggregates window counters across a whole run.
type RunPerformance struct {
	TotalTime           float64 `json:"total_time" yaml:"total_time"`
	PapersFound         int     `json:"papers_found" yaml:"papers_found"`
	PapersProcessed     int     `json:"papers_processed" yaml:"papers_processed"`
	Errors              int     `json:"errors" yaml:"errors"`
	AverageTimePerPaper float64 `json:"average_time_per_paper" yaml:"average_time_per_paper"`
}

// MonthBucket holds the ranked rows and counters for one calendar month.
type MonthBucket struct {
	// Key is the month in "YYYY-MM" form.
	Key string `json:"month" yaml:"month"`

	// Papers is ordered by total score descending, retrieval order on ties.
	Papers []ReportRow `json:"papers" yaml:"papers"`

	Performance WindowPerformance `json:"performance" yaml:"performance"`

	// Err is set when the window failed at orchestration level; the bucket
	// then carries no papers.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the final output of a run: month buckets in most-recent-first
// window order plus run-level performance. It serializes as an object keyed
// by "YYYY-MM" with a trailing "performance" key.
type Report struct {
	Buckets     []MonthBucket
	Performance RunPerformance
}

// round2 rounds to 2 decimal places. Applied only at the serialization
// boundary so internal combinations never compound rounding error.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (r ReportRow) rounded() ReportRow {
	r.Relevance = round2(r.Relevance)
	r.Patent = round2(r.Patent)
	r.Industry = round2(r.Industry)
	r.Commercial = round2(r.Commercial)
	r.Author = round2(r.Author)
	r.Total = round2(r.Total)
	return r
}

// MarshalJSON emits the row with scores rounded to 2 decimal places.
func (r ReportRow) MarshalJSON() ([]byte, error) {
	type alias ReportRow
	return json.Marshal(alias(r.rounded()))
}

// MarshalYAML emits the row with scores rounded to 2 decimal places.
func (r ReportRow) MarshalYAML() (any, error) {
	type alias ReportRow
	return alias(r.rounded()), nil
}

func (p WindowPerformance) rounded() WindowPerformance {
	p.ProcessingTime = round2(p.ProcessingTime)
	p.AverageTimePerPaper = round2(p.AverageTimePerPaper)
	return p
}

// MarshalJSON emits the counters with durations rounded to 2 decimal places.
func (p WindowPerformance) MarshalJSON() ([]byte, error) {
	type alias WindowPerformance
	return json.Marshal(alias(p.rounded()))
}

// MarshalYAML emits the counters with durations rounded to 2 decimal places.
func (p WindowPerformance) MarshalYAML() (any, error) {
	type alias WindowPerformance
	return alias(p.rounded()), nil
}

func (p RunPerformance) rounded() RunPerformance {
	p.TotalTime = round2(p.TotalTime)
	p.AverageTimePerPaper = round2(p.AverageTimePerPaper)
	return p
}

// MarshalJSON emits the totals with durations rounded to 2 decimal places.
func (p RunPerformance) MarshalJSON() ([]byte, error) {
	type alias RunPerformance
	return json.Marshal(alias(p.rounded()))
}

// MarshalYAML emits the totals with durations rounded to 2 decimal places.
func (p RunPerformance) MarshalYAML() (any, error) {
	type alias RunPerformance
	return alias(p.rounded()), nil
}

// bucketBody is the serialized value under each month key.
type bucketBody struct {
	Papers      []ReportRow       `json:"papers" yaml:"papers"`
	Performance WindowPerformance `json:"performance" yaml:"performance"`
	Err         string            `json:"error,omitempty" yaml:"error,omitempty"`
}

func (b MonthBucket) body() bucketBody {
	papers := b.Papers
	if papers == nil {
		papers = []ReportRow{}
	}
	return bucketBody{Papers: papers, Performance: b.Performance, Err: b.Err}
}

// MarshalJSON emits month keys in window order followed by "performance".
// encoding/json maps would sort keys alphabetically, so the object is
// assembled by hand.
func (r Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, b := range r.Buckets {
		key, err := json.Marshal(b.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(b.body())
		if err != nil {
			return nil, fmt.Errorf("marshaling bucket %s: %w", b.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		buf.WriteByte(',')
	}
	perf, err := json.Marshal(r.Performance)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"performance":`)
	buf.Write(perf)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits the same ordered document as MarshalJSON.
func (r Report) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	appendPair := func(key string, value any) error {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(key); err != nil {
			return err
		}
		valNode := &yaml.Node{}
		if err := valNode.Encode(value); err != nil {
			return err
		}
		root.Content = append(root.Content, keyNode, valNode)
		return nil
	}

	for _, b := range r.Buckets {
		if err := appendPair(b.Key, b.body()); err != nil {
			return nil, fmt.Errorf("encoding bucket %s: %w", b.Key, err)
		}
	}
	if err := appendPair("performance", r.Performance); err != nil {
		return nil, err
	}
	return root, nil
}
