// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ScoreBreakdown holds every sub-score computed for one paper. Sub-scores
// are clamped to [0,5] by the scoring engine before they land here; values
// keep full float precision — rounding happens only when a report is
// serialized.
type ScoreBreakdown struct {
	// Relevance is the keyword-weighted topical score, scaled to [0,5].
	Relevance float64 `json:"relevance_score" yaml:"relevance_score"`

	// RelevanceTags lists the configured keywords matched at least once.
	RelevanceTags []string `json:"tags" yaml:"tags"`

	// Patent is the patent-potential score, scaled to [0,5].
	Patent float64 `json:"patent_potential" yaml:"patent_potential"`

	// Industry is the industry-relevance score, scaled to [0,5].
	Industry float64 `json:"industry_relevance" yaml:"industry_relevance"`

	// Sectors lists the matched market-sector names.
	Sectors []string `json:"market_sectors" yaml:"market_sectors"`

	// Commercial is Patent + Industry + min(5, len(Sectors)). It is reported
	// alongside Total but never folded into it.
	Commercial float64 `json:"total_commercial" yaml:"total_commercial"`

	// Author is the author-impact score derived from the h-index, [0,5].
	Author float64 `json:"author_score" yaml:"author_score"`

	// Total is the ranking score: 0.7*Relevance + 0.3*Author.
	Total float64 `json:"total_score" yaml:"total_score"`
}
