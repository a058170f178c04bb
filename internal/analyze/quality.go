// Package analyze implements the lexical sub-analyses run against a claim
// and against the deduplicated article set: content quality, cross-source
// consistency, and fact-check heuristics. All signals are surface-level;
// there is no semantic understanding here.
package analyze

import (
	"regexp"
	"strings"

	"github.com/sgribkov/newsvet/internal/model"
)

var (
	numberRe = regexp.MustCompile(`\d+`)
	dateRe   = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	nameRe   = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)

	emotionalRe    = regexp.MustCompile(`\b(amazing|incredible|shocking|terrible|wonderful|horrible|fantastic|awful)\b`)
	exaggerationRe = regexp.MustCompile(`\b(always|never|everyone|nobody|completely|absolutely|totally|entirely)\b`)

	attributionWords = []string{"according to", "said", "reported", "announced", "confirmed"}
)

// Quality scores the claim text itself for verifiable and sensational
// markers. It is independent of any fetched articles. The score is the sum
// of fixed feature bonuses, capped at 100.
func Quality(text string) model.ContentAnalysis {
	lower := strings.ToLower(text)

	a := model.ContentAnalysis{
		Length:            len(text),
		HasNumbers:        numberRe.MatchString(text),
		HasDates:          dateRe.MatchString(lower),
		HasNames:          nameRe.MatchString(text),
		HasQuotes:         strings.Count(text, `"`) >= 2,
		HasSources:        containsAnyWord(lower, attributionWords),
		EmotionalLanguage: len(emotionalRe.FindAllString(lower, -1)),
		ExaggerationWords: len(exaggerationRe.FindAllString(lower, -1)),
	}

	score := 0
	if a.HasNumbers {
		score += 15
	}
	if a.HasDates {
		score += 15
	}
	if a.HasNames {
		score += 15
	}
	if a.HasQuotes {
		score += 15
	}
	if a.HasSources {
		score += 15
	}
	if a.EmotionalLanguage < 3 {
		score += 10
	}
	if a.ExaggerationWords < 2 {
		score += 10
	}
	if a.Length > 50 {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	a.QualityScore = score

	return a
}

func containsAnyWord(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
