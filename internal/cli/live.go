package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sgribkov/newsvet/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	liveJSON    bool
	liveTimeout time.Duration
)

// liveCmd represents the live command
var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Fetch current top headlines",
	Long: `Live pulls the current top stories from Google News and, when a
classifier service is configured, attaches an ML prediction to each.

Example:
  newsvet live
  newsvet live --json
  newsvet live --classifier-url http://localhost:8000`,
	Args: cobra.NoArgs,
	RunE: runLive,
}

func init() {
	rootCmd.AddCommand(liveCmd)

	liveCmd.Flags().BoolVar(&liveJSON, "json", false, "print headlines as JSON")
	liveCmd.Flags().DurationVar(&liveTimeout, "timeout", 30*time.Second, "fetch timeout")
	liveCmd.Flags().StringVar(&classifierURL, "classifier-url", "", "base URL of the external ML classifier service")
}

func runLive(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), liveTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.HTTP.Timeout = liveTimeout

	p := pipeline.New(cfg)

	headlines, err := p.LiveNews(ctx)
	if err != nil {
		return fmt.Errorf("fetch live news: %w", err)
	}

	if liveJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(headlines)
	}

	pipeline.RenderHeadlines(os.Stdout, headlines)
	return nil
}
