package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sgribkov/newsvet/internal/pipeline"
	"github.com/sgribkov/newsvet/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple claims from a file in parallel",
	Long: `Batch reads claims from a file (one per line, # comments and blank
lines skipped) and verifies them concurrently.

Example:
  newsvet batch claims.txt
  newsvet batch claims.txt --concurrency 8 --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 4, "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&newsAPIKey, "newsapi-key", "", "NewsAPI key (default: NEWSAPI_KEY env var)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the query cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Timeout:    %v\n", batchTimeout)
	fmt.Fprintln(os.Stderr)

	p := pipeline.New(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", result.Text, result.Error)
			continue
		}

		successCount++
		v := result.Verification
		fmt.Printf("%-14s %5.1f  %s\n", v.Verdict.Verdict, v.Verdict.FinalScore, result.Text)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Total:    %d claims\n", len(results))
	fmt.Fprintf(os.Stderr, "Success:  %d\n", successCount)
	fmt.Fprintf(os.Stderr, "Failures: %d\n", failureCount)

	return nil
}
