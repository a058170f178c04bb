// Package sources implements the news source adapters. Each adapter queries
// one external feed and emits candidate articles; transport and parse
// failures surface as errors that the pipeline treats as an empty result.
package sources

import (
	"context"

	"github.com/sgribkov/newsvet/internal/model"
)

// Source is one queryable news feed. Search returns the candidate articles
// matching the query; records missing a title are skipped inside the adapter.
type Source interface {
	// Name is the origin tag stamped on every article the adapter emits.
	Name() string
	Search(ctx context.Context, query string) ([]model.Article, error)
}
