// Package dedupe merges the raw adapter result lists into the unique,
// credibility-ranked set consumed by the analyzers.
package dedupe

import (
	"sort"
	"strings"

	"github.com/sgribkov/newsvet/internal/model"
)

// minTitleLength is the shortest normalized title worth keeping. Shorter
// strings are almost always feed noise (section labels, "Live", timestamps).
const minTitleLength = 10

// Dedupe filters candidates in arrival order, dropping empty or too-short
// titles and case-insensitive repeats, then sorts the survivors by
// credibility descending. The sort is stable so ties keep arrival order,
// which is deterministic because adapters run in a fixed order.
func Dedupe(candidates []model.Article) []model.Article {
	seen := make(map[string]struct{}, len(candidates))
	unique := make([]model.Article, 0, len(candidates))

	for _, c := range candidates {
		title := strings.ToLower(strings.TrimSpace(c.Title))
		if len(title) <= minTitleLength {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		unique = append(unique, c)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Credibility > unique[j].Credibility
	})

	return unique
}

// AverageCredibility returns the arithmetic mean credibility of the set,
// or 0 for an empty set.
func AverageCredibility(results []model.Article) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r.Credibility
	}
	return float64(sum) / float64(len(results))
}
