package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sgribkov/newsvet/internal/model"
)

// RenderJSON writes the verification payload as indented JSON.
func RenderJSON(w io.Writer, v *model.Verification) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderText writes a human-readable summary of the verification.
func RenderText(w io.Writer, claim string, v *model.Verification, summary string) {
	fmt.Fprintf(w, "Claim: %s\n", claim)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "Verdict:     %s\n", v.Verdict.Verdict)
	fmt.Fprintf(w, "Confidence:  %s\n", v.Verdict.Confidence)
	fmt.Fprintf(w, "Score:       %.1f/100\n", v.Verdict.FinalScore)
	fmt.Fprintf(w, "Explanation: %s\n", v.Verdict.Explanation)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Source credibility:  %.1f\n", v.Analysis.SourceCredibility)
	fmt.Fprintf(w, "Consistency:         %d (%s, %s)\n",
		v.Analysis.CrossSourceConsistency.Score,
		v.Analysis.CrossSourceConsistency.Level,
		v.Analysis.CrossSourceConsistency.Details)
	fmt.Fprintf(w, "Fact-check score:    %d\n", v.Analysis.FactCheckingScore)
	fmt.Fprintf(w, "Content quality:     %d\n", v.Analysis.ContentQuality)
	fmt.Fprintf(w, "Sources found:       %d\n", v.Analysis.SourceCount)

	if len(v.TopSources) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Top sources:")
		for _, src := range v.TopSources {
			fmt.Fprintf(w, "  [%d] %s - %s\n", src.Credibility, src.Source, src.Title)
			if src.URL != "" {
				fmt.Fprintf(w, "      %s\n", src.URL)
			}
		}
	}

	if summary != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Summary: %s\n", summary)
	}
}

// RenderHeadlines writes the live headlines list.
func RenderHeadlines(w io.Writer, headlines []model.Headline) {
	for i, h := range headlines {
		fmt.Fprintf(w, "%2d. %s (%s)\n", i+1, h.Title, h.Source)
		if h.Prediction != nil {
			fmt.Fprintf(w, "    prediction: %s (%.0f%%)\n", h.Prediction.Label, h.Prediction.Confidence*100)
		}
	}
}
