// Package llm generates an optional natural-language summary of a finished
// verification. The summary is presentation only and never feeds back into
// scoring.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/sgribkov/newsvet/internal/model"
)

// Summarizer turns a verification result into a short plain-language
// explanation.
type Summarizer struct {
	client *openai.Client
	model  string
}

// NewSummarizer creates a summarizer. Returns nil when no API key is
// configured, which callers treat as the feature being off.
func NewSummarizer(cfg model.LLMConfig) *Summarizer {
	if cfg.APIKey == "" {
		return nil
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	return &Summarizer{
		client: openai.NewClientWithConfig(clientConfig),
		model:  modelName,
	}
}

// Summarize produces a short summary of the verification outcome.
func (s *Summarizer) Summarize(ctx context.Context, claim string, v *model.Verification) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: 300,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize news verification results. Be factual and concise. Only reference the sources listed in the prompt.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(claim, v),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summarize: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildPrompt lays out the verdict, scores, and matched sources for the
// model to restate.
func buildPrompt(claim string, v *model.Verification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Claim: %s\n", claim)
	fmt.Fprintf(&b, "Verdict: %s (confidence %s, score %.1f/100)\n", v.Verdict.Verdict, v.Verdict.Confidence, v.Verdict.FinalScore)
	fmt.Fprintf(&b, "Source credibility: %.1f, consistency: %d, fact-check: %d, content quality: %d, sources: %d\n",
		v.Analysis.SourceCredibility,
		v.Analysis.CrossSourceConsistency.Score,
		v.Analysis.FactCheckingScore,
		v.Analysis.ContentQuality,
		v.Analysis.SourceCount)

	if len(v.TopSources) > 0 {
		b.WriteString("Matched sources:\n")
		for _, src := range v.TopSources {
			fmt.Fprintf(&b, "- %s: %s\n", src.Source, src.Title)
		}
	}

	b.WriteString("\nWrite 2-3 sentences explaining this outcome to a general reader.")
	return b.String()
}
