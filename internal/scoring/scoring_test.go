// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"math"
	"strings"
	"testing"

	"github.com/pdiddy/paper-radar/pkg/types"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	keywords := map[string]float64{
		"machine learning": 5,
		"neural network":   4,
		"ai":               4,
	}
	tables := &types.CommercialTables{
		PatentKeywords:   map[string]float64{"novel": 3, "invention": 4, "system": 2},
		IndustryKeywords: map[string]float64{"commercial": 3, "market": 2, "real-world": 2},
		MarketSectors:    map[string]float64{"healthcare": 3, "fintech": 4},
	}
	e, err := New(keywords, tables)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestRelevanceWholeWordMatching(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name      string
		text      string
		wantScore float64
		wantTags  []string
	}{
		{"no match", "quantum computing survey", 0, nil},
		{"single match", "advances in machine learning", 2.5, []string{"machine learning"}},
		{"count scales", "machine learning and more machine learning", 5, []string{"machine learning"}},
		{"substring does not match", "brainy networks", 0, nil},
		{"ai as whole word only", "airplane maintenance", 0, nil},
		{"ai whole word", "ai for science", 2.0, []string{"ai"}},
		{"case insensitive", "Machine Learning Systems", 2.5, []string{"machine learning"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, tags := e.Relevance(tt.text)
			if math.Abs(score-tt.wantScore) > 1e-9 {
				t.Errorf("Relevance(%q) score = %v, want %v", tt.text, score, tt.wantScore)
			}
			if len(tags) != len(tt.wantTags) {
				t.Fatalf("Relevance(%q) tags = %v, want %v", tt.text, tags, tt.wantTags)
			}
			for i := range tags {
				if tags[i] != tt.wantTags[i] {
					t.Errorf("tag[%d] = %q, want %q", i, tags[i], tt.wantTags[i])
				}
			}
		})
	}
}

func TestRelevanceRangeAndMonotonicity(t *testing.T) {
	e := testEngine(t)

	// Score is clamped to [0,5] and non-decreasing in occurrence count.
	prev := -1.0
	for n := 0; n < 20; n++ {
		text := strings.TrimSpace(strings.Repeat("neural network ", n))
		score, _ := e.Relevance(text)
		if score < 0 || score > 5 {
			t.Fatalf("score %v out of [0,5] at n=%d", score, n)
		}
		if score < prev {
			t.Fatalf("score decreased from %v to %v at n=%d", prev, score, n)
		}
		prev = score
	}
}

func TestRelevanceIdempotent(t *testing.T) {
	e := testEngine(t)
	text := "novel machine learning system for healthcare ai"

	s1, tags1 := e.Relevance(text)
	s2, tags2 := e.Relevance(text)
	if s1 != s2 {
		t.Errorf("scores differ across calls: %v vs %v", s1, s2)
	}
	if strings.Join(tags1, ",") != strings.Join(tags2, ",") {
		t.Errorf("tags differ across calls: %v vs %v", tags1, tags2)
	}
}

func TestPatentPotentialPresenceBased(t *testing.T) {
	e := testEngine(t)

	// Presence-based: repeating a term does not raise the score.
	once, _ := e.PatentPotential("a novel system")
	twice, _ := e.PatentPotential("a novel novel system")
	if once != twice {
		t.Errorf("patent score is count-sensitive: %v vs %v", once, twice)
	}

	want := (3.0 + 2.0) / 15 * 5
	if math.Abs(once-want) > 1e-9 {
		t.Errorf("patent score = %v, want %v", once, want)
	}
}

func TestIndustryRelevanceAndSectors(t *testing.T) {
	e := testEngine(t)

	score, tags := e.IndustryRelevance("commercial real-world deployment for the market")
	want := (3.0 + 2.0 + 2.0) / 15 * 5
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("industry score = %v, want %v", score, want)
	}
	if len(tags) != 3 {
		t.Errorf("industry tags = %v, want 3 entries", tags)
	}

	sectors := e.SectorMatches("fintech and healthcare applications")
	if len(sectors) != 2 || sectors[0] != "fintech" || sectors[1] != "healthcare" {
		t.Errorf("sectors = %v, want [fintech healthcare]", sectors)
	}
}

func TestAuthorScore(t *testing.T) {
	tests := []struct {
		hIndex int
		want   float64
	}{
		{0, 0},
		{-3, 0},
		{50, 2.5},
		{100, 5},
		{130, 5},
	}
	for _, tt := range tests {
		if got := AuthorScore(tt.hIndex); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AuthorScore(%d) = %v, want %v", tt.hIndex, got, tt.want)
		}
	}
}

func TestTeamScore(t *testing.T) {
	if got := TeamScore(0); got != 0 {
		t.Errorf("TeamScore(0) = %v, want 0", got)
	}
	want := math.Log(1+120.0) * 1.5
	if want > 5 {
		want = 5
	}
	if got := TeamScore(120); math.Abs(got-want) > 1e-9 {
		t.Errorf("TeamScore(120) = %v, want %v", got, want)
	}
	// Very large teams saturate at 5.
	if got := TeamScore(100000); got != 5 {
		t.Errorf("TeamScore(100000) = %v, want 5", got)
	}
}

func TestTotalWeights(t *testing.T) {
	if got := Total(4, 2); math.Abs(got-(0.7*4+0.3*2)) > 1e-9 {
		t.Errorf("Total(4,2) = %v", got)
	}
}

func TestCommercialCombination(t *testing.T) {
	if got := Commercial(2, 1.5, 3); math.Abs(got-6.5) > 1e-9 {
		t.Errorf("Commercial = %v, want 6.5", got)
	}
	// Sector contribution caps at 5.
	if got := Commercial(0, 0, 12); got != 5 {
		t.Errorf("Commercial sector cap = %v, want 5", got)
	}
}

func TestNewWithNilTables(t *testing.T) {
	e, err := New(map[string]float64{"ai": 4}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	score, tags := e.PatentPotential("a novel invention")
	if score != 0 || tags != nil {
		t.Errorf("empty tables should score 0, got %v %v", score, tags)
	}
}
