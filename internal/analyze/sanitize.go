// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"html"
	"strings"
)

// resultMarkers are the terms a sentence must contain to qualify as a
// summary bullet.
var resultMarkers = []string{
	"novel", "propose", "improve", "develop", "achieve", "experiment", "result",
}

// maxBullets caps the summary bullets kept per paper.
const maxBullets = 3

// Sanitize normalizes loosely-escaped source text: HTML entities are
// decoded, newlines become spaces, control characters are stripped, and
// whitespace runs collapse to single spaces.
func Sanitize(text string) string {
	text = html.UnescapeString(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\r':
			// dropped
		case r == '\n':
			b.WriteRune(' ')
		case isControl(r):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// isControl reports the control ranges stripped from source text:
// U+0000–U+0008, U+000B, U+000C, U+000E–U+001F, and U+007F–U+009F.
func isControl(r rune) bool {
	switch {
	case r <= 0x08:
		return true
	case r == 0x0B || r == 0x0C:
		return true
	case r >= 0x0E && r <= 0x1F:
		return true
	case r >= 0x7F && r <= 0x9F:
		return true
	}
	return false
}

// SummaryBullets selects up to three result-bearing sentences from the
// abstract, preserving original order: sentences longer than 20 characters
// that mention at least one result marker.
func SummaryBullets(abstract string) []string {
	var bullets []string
	for _, sentence := range strings.Split(abstract, ". ") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 20 {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, marker := range resultMarkers {
			if strings.Contains(lower, marker) {
				bullets = append(bullets, sentence)
				break
			}
		}
		if len(bullets) == maxBullets {
			break
		}
	}
	return bullets
}
