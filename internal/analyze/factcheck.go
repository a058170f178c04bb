package analyze

import (
	"regexp"
	"strings"
)

// Each detector contributes at most one point no matter how many times it
// matches; red-flag families likewise count once per family, not per
// occurrence.
var (
	verifiableRe = regexp.MustCompile(`\b\d+%|\b\d+\s+(million|billion|thousand)\b`)
	specificRe   = regexp.MustCompile(`\b\d{1,2}:\d{2}\b|\b\d{1,2}:\d{2}\s*(am|pm)\b`)
	attributedRe = regexp.MustCompile(`\b(according to|said|reported|announced|confirmed)\b`)

	redFlagFamilies = []*regexp.Regexp{
		regexp.MustCompile(`\b(conspiracy|cover-up|secret|hidden|suppressed)\b`),
		regexp.MustCompile(`\b100%|\b(guaranteed|definitely|absolutely)\b`),
		regexp.MustCompile(`\b(urgent|breaking|exclusive|shocking)\b`),
		regexp.MustCompile(`\b(they don't want you to know|mainstream media won't report)\b`),
	}
)

// FactCheckResult breaks down the fact-check heuristics for one claim.
type FactCheckResult struct {
	VerifiableClaims       int `json:"verifiable_claims"`
	SpecificDetails        int `json:"specific_details"`
	AttributableStatements int `json:"attributable_statements"`
	RedFlags               int `json:"red_flags"`
	Score                  int `json:"fact_score"`
}

// FactCheck pattern-matches the claim text for verifiable-claim and red-flag
// markers. Fetched articles play no part in this score.
func FactCheck(text string) FactCheckResult {
	lower := strings.ToLower(text)

	var r FactCheckResult
	if verifiableRe.MatchString(lower) {
		r.VerifiableClaims = 1
	}
	if specificRe.MatchString(lower) {
		r.SpecificDetails = 1
	}
	if attributedRe.MatchString(lower) {
		r.AttributableStatements = 1
	}
	for _, family := range redFlagFamilies {
		if family.MatchString(lower) {
			r.RedFlags++
		}
	}

	score := r.VerifiableClaims*20 + r.SpecificDetails*20 + r.AttributableStatements*20 - r.RedFlags*15
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	r.Score = score

	return r
}
