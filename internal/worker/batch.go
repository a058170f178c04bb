package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sgribkov/newsvet/internal/model"
)

// Verifier runs one verification. It is satisfied by the pipeline; the
// narrow interface keeps this package independent of it.
type Verifier interface {
	Verify(ctx context.Context, text string) (*model.Verification, error)
}

// VerifyJob verifies a single claim text.
type VerifyJob struct {
	Text     string
	Verifier Verifier
}

// Execute runs the verification and wraps the outcome.
func (j *VerifyJob) Execute(ctx context.Context) Result {
	verification, err := j.Verifier.Verify(ctx, j.Text)
	return &VerifyResult{
		Text:         j.Text,
		Verification: verification,
		Error:        err,
	}
}

// VerifyResult is the outcome of one batch item.
type VerifyResult struct {
	Text         string
	Verification *model.Verification
	Error        error
}

// GetError returns the error from the verification, if any.
func (r *VerifyResult) GetError() error {
	return r.Error
}

// BatchProcessor verifies many claims concurrently through a worker pool.
type BatchProcessor struct {
	verifier    Verifier
	concurrency int
}

// NewBatchProcessor creates a batch processor running at the given
// concurrency.
func NewBatchProcessor(verifier Verifier, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		verifier:    verifier,
		concurrency: concurrency,
	}
}

// ProcessClaims verifies all claims concurrently. Results come back in
// completion order; each carries its claim text.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*VerifyResult {
	if len(claims) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, text := range claims {
		pool.Submit(&VerifyJob{
			Text:     text,
			Verifier: b.verifier,
		})
	}

	results := pool.Wait()

	verifyResults := make([]*VerifyResult, len(results))
	for i, result := range results {
		verifyResults[i] = result.(*VerifyResult)
	}

	return verifyResults
}

// ProcessFile reads claims from a file (one per line) and verifies them
// concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*VerifyResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads claim texts from a file, one per line. Blank
// lines, comments, and repeats are skipped.
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
