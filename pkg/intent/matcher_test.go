package intent

import (
	"testing"
)

func testEntries() []KnowledgeEntry {
	return []KnowledgeEntry{
		{
			Keywords: []string{"job", "jobs", "latest jobs"},
			Response: "jobs response",
		},
		{
			Keywords: []string{"price", "pricing", "plan"},
			Response: "pricing response",
		},
		{
			Keywords: []string{"contact", "support"},
			Response: "support response",
		},
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "HELLO World", "hello world"},
		{"strips punctuation", "what's the price?!", "whats the price"},
		{"keeps digits", "plan 100 credits", "plan 100 credits"},
		{"trims", "  hi  ", "hi"},
		{"only symbols", "?!#$", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	m := NewMatcher(testEntries())

	tests := []struct {
		name      string
		query     string
		wantFound bool
		wantResp  string
	}{
		{
			name:      "exact phrase hit",
			query:     "show me the latest jobs please",
			wantFound: true,
			wantResp:  "jobs response",
		},
		{
			name:      "single word overlap",
			query:     "how much does a plan cost",
			wantFound: true,
			wantResp:  "pricing response",
		},
		{
			name:      "punctuation ignored",
			query:     "Pricing???",
			wantFound: true,
			wantResp:  "pricing response",
		},
		{
			name:      "no overlap yields none",
			query:     "completely unrelated gibberish",
			wantFound: false,
		},
		{
			name:      "empty query yields none",
			query:     "",
			wantFound: false,
		},
		{
			name:      "whitespace only yields none",
			query:     "   \t  ",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, found := m.Match(tt.query)
			if found != tt.wantFound {
				t.Fatalf("Match(%q) found = %v, want %v", tt.query, found, tt.wantFound)
			}
			if found && resp != tt.wantResp {
				t.Errorf("Match(%q) = %q, want %q", tt.query, resp, tt.wantResp)
			}
		})
	}
}

func TestMatchTieBreakKeepsFirstEntry(t *testing.T) {
	m := NewMatcher([]KnowledgeEntry{
		{Keywords: []string{"alpha"}, Response: "first"},
		{Keywords: []string{"alpha"}, Response: "second"},
	})

	resp, found := m.Match("alpha")
	if !found {
		t.Fatal("expected a match")
	}
	if resp != "first" {
		t.Errorf("tie should keep the earlier entry, got %q", resp)
	}
}

func TestMatchPhraseBonusBeatsWordOverlap(t *testing.T) {
	m := NewMatcher([]KnowledgeEntry{
		{Keywords: []string{"score resume"}, Response: "loose"},
		{Keywords: []string{"resume score"}, Response: "phrase"},
	})

	// The first entry's phrase is not a substring, so it only collects 1 point
	// per overlapping word (2 total); the second gets the 3x phrase bonus (6),
	// so declaration order does not save the first entry.
	resp, found := m.Match("check my resume score")
	if !found {
		t.Fatal("expected a match")
	}
	if resp != "phrase" {
		t.Errorf("phrase bonus should win, got %q", resp)
	}
}
