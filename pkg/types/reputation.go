// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Provenance records how an AuthorReputation value was obtained.
type Provenance string

const (
	// ProvenanceKnownList marks a record synthesized from the configured
	// prominent-author table, without any network lookup.
	ProvenanceKnownList Provenance = "known-list"

	// ProvenanceCacheHit marks a record served from the persistent cache.
	ProvenanceCacheHit Provenance = "cache-hit"

	// ProvenanceFresh marks a record obtained from the reputation service
	// during this run.
	ProvenanceFresh Provenance = "freshly-queried"

	// ProvenanceDefault marks a zero-valued fallback record returned after
	// a failed or empty lookup.
	ProvenanceDefault Provenance = "lookup-failed-default"
)

// AuthorReputation summarizes one author's published impact. The reputation
// cache owns mutation; everything else treats records as read-only values.
type AuthorReputation struct {
	// Name is the author name as resolved (the cache key is the queried name,
	// which may differ in casing or diacritics).
	Name string `json:"name" yaml:"name"`

	// HIndex is the author's h-index, the impact measure behind the author
	// score. Zero when unknown.
	HIndex int `json:"h_index" yaml:"h_index"`

	// PaperCount is the author's total publication count.
	PaperCount int `json:"paper_count" yaml:"paper_count"`

	// Citations is the author's total citation count.
	Citations int `json:"citations,omitempty" yaml:"citations,omitempty"`

	// ProfileURL links to the author's reputation-service profile.
	ProfileURL string `json:"profile_url,omitempty" yaml:"profile_url,omitempty"`

	// Provenance records how this value was obtained.
	Provenance Provenance `json:"provenance,omitempty" yaml:"provenance,omitempty"`
}
