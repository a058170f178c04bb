package sources

import (
	"context"
	"strings"

	"github.com/sgribkov/newsvet/internal/credibility"
	"github.com/sgribkov/newsvet/internal/model"
)

// bbcFeeds are the fixed top-stories feeds the adapter reads. None of them
// is query-parameterized, which is why this adapter filters by relevance.
var bbcFeeds = []string{
	"https://feeds.bbci.co.uk/news/rss.xml",
	"https://feeds.bbci.co.uk/news/world/rss.xml",
	"https://feeds.bbci.co.uk/news/technology/rss.xml",
}

// BBC reads the fixed BBC top-stories feeds and keeps only items relevant to
// the query. Relevance filtering lives here rather than in the pipeline
// because adapters backed by query-parameterized endpoints must not apply it.
type BBC struct {
	client      *Client
	credibility int
	maxPerFeed  int
	feeds       []string
}

// NewBBC creates the BBC adapter. maxPerFeed caps how many relevant items
// each sub-feed may contribute.
func NewBBC(client *Client, table *credibility.Table, maxPerFeed int) *BBC {
	if maxPerFeed <= 0 {
		maxPerFeed = 5
	}
	return &BBC{
		client:      client,
		credibility: table.Score("bbc.co.uk"),
		maxPerFeed:  maxPerFeed,
		feeds:       bbcFeeds,
	}
}

// Name returns the origin tag for BBC articles.
func (s *BBC) Name() string { return "BBC News" }

// Search reads every configured feed and emits items whose title contains at
// least one query token.
func (s *BBC) Search(ctx context.Context, query string) ([]model.Article, error) {
	tokens := strings.Fields(strings.ToLower(query))

	var articles []model.Article
	var lastErr error
	for _, feedURL := range s.feeds {
		feed, err := fetchRSSFeed(ctx, s.client, feedURL)
		if err != nil {
			// A single unreachable sub-feed must not hide the others.
			lastErr = err
			continue
		}

		kept := 0
		for _, item := range feed.Items {
			if item == nil || strings.TrimSpace(item.Title) == "" {
				continue
			}
			if !titleMatchesQuery(item.Title, tokens) {
				continue
			}
			articles = append(articles, model.Article{
				Title:       item.Title,
				Source:      "BBC News",
				URL:         item.Link,
				PublishedAt: item.PubDate,
				Credibility: s.credibility,
				Via:         s.Name(),
			})
			kept++
			if kept >= s.maxPerFeed {
				break
			}
		}
	}

	if len(articles) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return articles, nil
}

// titleMatchesQuery reports whether any query token appears in the title.
func titleMatchesQuery(title string, tokens []string) bool {
	lower := strings.ToLower(title)
	for _, token := range tokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
