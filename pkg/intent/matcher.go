package intent

import (
	"strings"
)

// KnowledgeEntry pairs a set of trigger keywords with a canned response.
type KnowledgeEntry struct {
	Keywords []string
	Response string
}

// Matcher scores free-text queries against a fixed knowledge base.
// Declaration order of entries is the tie-break: the first entry reaching
// the best score wins.
type Matcher struct {
	entries []KnowledgeEntry
}

func NewMatcher(entries []KnowledgeEntry) *Matcher {
	return &Matcher{entries: entries}
}

// Normalize lowercases the text and strips everything outside [a-z0-9\s].
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Match returns the best-matching response, or "" when nothing scores.
//
// Scoring: a keyword phrase contained verbatim in the normalized query is
// worth 3 points per phrase word; otherwise each phrase word present in the
// query's word list is worth 1 point. A best score below 1 yields no match.
func (m *Matcher) Match(query string) (string, bool) {
	normalized := Normalize(query)
	words := strings.Fields(normalized)

	wordSet := make(map[string]struct{}, len(words))
	for _, w := range words {
		wordSet[w] = struct{}{}
	}

	bestScore := 0
	bestResponse := ""

	for _, entry := range m.entries {
		score := 0
		for _, keyword := range entry.Keywords {
			kwNorm := Normalize(keyword)
			if kwNorm == "" {
				continue
			}
			kwWords := strings.Fields(kwNorm)
			if strings.Contains(normalized, kwNorm) {
				score += len(kwWords) * 3
				continue
			}
			for _, kw := range kwWords {
				if _, ok := wordSet[kw]; ok {
					score++
				}
			}
		}
		if score > bestScore {
			bestScore = score
			bestResponse = entry.Response
		}
	}

	if bestScore < 1 {
		return "", false
	}
	return bestResponse, true
}
