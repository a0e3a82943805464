// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-radar pipeline.
package types

import "time"

// PaperRecord holds the metadata of one paper as retrieved from the
// literature index. Records are immutable once constructed: the fetch stage
// builds them and the per-paper pipeline only reads them.
type PaperRecord struct {
	// ID is the canonical entry URL from the index (e.g. "http://arxiv.org/abs/2301.07041v1").
	ID string `json:"id" yaml:"id"`

	// ArxivID is the bare arXiv identifier with any version suffix removed.
	ArxivID string `json:"arxiv_id" yaml:"arxiv_id"`

	// Title is the paper title as returned by the source, unnormalized.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract as returned by the source, unnormalized.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists author names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the submission timestamp.
	Published time.Time `json:"published" yaml:"published"`

	// Updated is the last revision timestamp.
	Updated time.Time `json:"updated" yaml:"updated"`

	// PrimaryCategory is the primary subject classification (e.g. "cs.LG").
	PrimaryCategory string `json:"primary_category,omitempty" yaml:"primary_category,omitempty"`

	// Categories lists all subject classifications.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// DOI is the Digital Object Identifier, when the source provides one.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// PDFURL is the derived link to the full-text PDF.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`
}

// FirstAuthor returns the first author name, or "" for an empty author list.
func (p PaperRecord) FirstAuthor() string {
	if len(p.Authors) == 0 {
		return ""
	}
	return p.Authors[0]
}
