package analyze

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sgribkov/newsvet/internal/model"
)

// phraseRe matches maximal runs of lowercase words. Titles are lowercased
// before matching, so a run is broken only by digits and punctuation.
var phraseRe = regexp.MustCompile(`\b[a-z]+(?:\s+[a-z]+)*\b`)

// Consistency measures phrase overlap across the deduplicated article set.
// A single source cannot corroborate itself, so fewer than two results is
// always low confidence.
func Consistency(results []model.Article) model.Consistency {
	if len(results) < 2 {
		return model.Consistency{
			Level:   "low",
			Score:   30,
			Details: "Only one source found",
		}
	}

	phraseCounts := make(map[string]int)
	for _, r := range results {
		for _, phrase := range phraseRe.FindAllString(strings.ToLower(r.Title), -1) {
			if len(phrase) > 3 {
				phraseCounts[phrase]++
			}
		}
	}

	consistent := 0
	for _, count := range phraseCounts {
		if count > 1 {
			consistent++
		}
	}

	total := len(results)
	var score int
	var level string
	switch {
	case total >= 5 && consistent >= 3:
		score, level = 90, "high"
	case total >= 3 && consistent >= 2:
		score, level = 70, "medium"
	default:
		score, level = 50, "low"
	}

	return model.Consistency{
		Level:   level,
		Score:   score,
		Details: fmt.Sprintf("%d key phrases consistent across %d sources", consistent, total),
	}
}

// NoSources is the fixed consistency result for the zero-source case.
func NoSources() model.Consistency {
	return model.Consistency{
		Level:   "none",
		Score:   0,
		Details: "No sources found",
	}
}
