package credibility

import "strings"

// DefaultScore is returned for empty or entirely unrecognized source names.
const DefaultScore = 50

// Entry pairs one normalized table key (a domain or a display name) with its
// trust score. A domain and its aliases map to identical scores.
type Entry struct {
	Key   string
	Score int
}

// Table resolves a source name to a 0-100 trust score. It is built once at
// startup and read-only afterwards. Entries keep their insertion order
// because substring resolution takes the first match in table order.
type Table struct {
	entries []Entry
	exact   map[string]int
}

// New builds a table from the given entries. Keys are lowercased; a repeated
// key keeps its first score.
func New(entries []Entry) *Table {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		exact:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Key))
		if key == "" {
			continue
		}
		if _, dup := t.exact[key]; dup {
			continue
		}
		t.exact[key] = e.Score
		t.entries = append(t.entries, Entry{Key: key, Score: e.Score})
	}
	return t
}

// Default returns the built-in table. Ordering is deliberate: higher tiers
// first, so substring resolution prefers the more specific, more trusted key.
func Default() *Table {
	return New([]Entry{
		{"reuters.com", 98}, {"reuters", 98},
		{"ap.org", 97}, {"apnews.com", 97}, {"associated press", 97},
		{"bbc.com", 96}, {"bbc.co.uk", 96}, {"bbc", 96},
		{"npr.org", 95}, {"npr", 95},
		{"pbs.org", 94}, {"pbs", 94},
		{"nytimes.com", 88}, {"nytimes", 88},
		{"washingtonpost.com", 87}, {"washington post", 87},
		{"wsj.com", 86}, {"wall street journal", 86},
		{"economist.com", 85}, {"economist", 85},
		{"time.com", 84}, {"time", 84},
		{"cnn.com", 83}, {"cnn", 83},
		{"abcnews.go.com", 82}, {"abc news", 82},
		{"cbsnews.com", 81}, {"cbs news", 81},
		{"nbcnews.com", 80}, {"nbc news", 80},
		{"usatoday.com", 78}, {"usa today", 78},
		{"foxnews.com", 75}, {"fox news", 75},
		{"msnbc.com", 74}, {"msnbc", 74},
		{"huffpost.com", 72}, {"huffington post", 72},
		{"vox.com", 71}, {"vox", 71},
		{"theguardian.com", 68}, {"guardian", 68},
		{"independent.co.uk", 65}, {"independent", 65},
		{"telegraph.co.uk", 64}, {"telegraph", 64},
		{"dailymail.co.uk", 62}, {"daily mail", 62},
		{"forbes.com", 58}, {"forbes", 58},
		{"businessinsider.com", 55}, {"business insider", 55},
		{"techcrunch.com", 54}, {"techcrunch", 54},
		{"buzzfeed.com", 52}, {"buzzfeed", 52},
	})
}

// WithOverrides returns a copy of the table with extra entries appended
// after the existing ones, in the order given.
func (t *Table) WithOverrides(extra []Entry) *Table {
	merged := make([]Entry, 0, len(t.entries)+len(extra))
	merged = append(merged, t.entries...)
	merged = append(merged, extra...)
	return New(merged)
}

// Score resolves a source name to a trust score. Resolution order: exact
// case-insensitive match, substring match in either direction (first table
// entry wins), keyword fallback, default. It always returns a value.
func (t *Table) Score(source string) int {
	name := strings.ToLower(strings.TrimSpace(source))
	if name == "" {
		return DefaultScore
	}

	if score, ok := t.exact[name]; ok {
		return score
	}

	for _, e := range t.entries {
		if strings.Contains(name, e.Key) || strings.Contains(e.Key, name) {
			return e.Score
		}
	}

	if containsAny(name, "news", "times", "post", "journal", "tribune") {
		return 65
	}
	if containsAny(name, "blog", "medium", "substack") {
		return 45
	}

	return DefaultScore
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
