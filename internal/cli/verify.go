package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sgribkov/newsvet/internal/model"
	"github.com/sgribkov/newsvet/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	outJSON       bool
	timeout       time.Duration
	userAgent     string
	maxBytes      int64
	noCache       bool
	newsAPIKey    string
	strategy      string
	classifierURL string
	llmEnabled    bool
	llmModel      string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <claim>",
	Short: "Verify a news claim against live sources",
	Long: `Verify searches NewsAPI, Google News, Reuters and BBC for the claim,
deduplicates the results, and scores source credibility, cross-source
consistency, fact-check signals and content quality into one verdict.

Example:
  newsvet verify "Federal Reserve raises interest rates"
  newsvet verify --json "Federal Reserve raises interest rates"
  newsvet verify --llm "Federal Reserve raises interest rates"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Output flags
	verifyCmd.Flags().BoolVar(&outJSON, "json", false, "print the full verification payload as JSON")

	// HTTP flags
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall verification timeout")
	verifyCmd.Flags().StringVar(&userAgent, "ua", "newsvet/0.1 (+https://github.com/sgribkov/newsvet)", "HTTP User-Agent")
	verifyCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read per request")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the query cache (force fresh searches)")

	// Source flags
	verifyCmd.Flags().StringVar(&newsAPIKey, "newsapi-key", "", "NewsAPI key (default: NEWSAPI_KEY env var)")
	verifyCmd.Flags().StringVar(&strategy, "strategy", "bonus", "verdict aggregation strategy (bonus, normalized)")
	verifyCmd.Flags().StringVar(&classifierURL, "classifier-url", "", "base URL of the external ML classifier service")

	// LLM flags
	verifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an LLM summary of the verdict")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// buildConfig assembles runtime configuration from defaults, flags and
// environment. Shared by verify, batch and serve.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.Cache.Enabled = !noCache
	cfg.Verdict.Strategy = strategy
	cfg.Classifier.BaseURL = classifierURL
	cfg.Output.Verbose = verbose

	cfg.Sources.NewsAPIKey = newsAPIKey
	if cfg.Sources.NewsAPIKey == "" {
		cfg.Sources.NewsAPIKey = viper.GetString("newsapi_key")
	}
	if cfg.Sources.NewsAPIKey == "" {
		cfg.Sources.NewsAPIKey = os.Getenv("NEWSAPI_KEY")
	}

	if llmEnabled {
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	claim := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", claim)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.New(cfg)

	result, err := p.Verify(ctx, claim)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	if outJSON {
		return pipeline.RenderJSON(os.Stdout, result)
	}

	var summary string
	if llmEnabled {
		summary = p.Summarize(ctx, claim, result)
	}

	pipeline.RenderText(os.Stdout, claim, result, summary)
	return nil
}
