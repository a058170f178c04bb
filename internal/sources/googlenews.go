package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	rssparser "github.com/mmcdole/gofeed/rss"

	"github.com/sgribkov/newsvet/internal/credibility"
	"github.com/sgribkov/newsvet/internal/model"
)

const (
	googleNewsSearchURL = "https://news.google.com/rss/search"
	googleNewsTopURL    = "https://news.google.com/rss"
)

// GoogleNews queries the Google News search RSS feed. The feed wraps items
// from many outlets, so credibility comes from each item's source element.
type GoogleNews struct {
	client     *Client
	table      *credibility.Table
	maxResults int
	searchURL  string
	topURL     string
}

// NewGoogleNews creates the Google News adapter.
func NewGoogleNews(client *Client, table *credibility.Table, maxResults int) *GoogleNews {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &GoogleNews{
		client:     client,
		table:      table,
		maxResults: maxResults,
		searchURL:  googleNewsSearchURL,
		topURL:     googleNewsTopURL,
	}
}

// Name returns the origin tag for Google News articles.
func (s *GoogleNews) Name() string { return "Google News" }

// Search runs the query against the search RSS feed. The RSS-level parser is
// used directly because the outlet name lives in the item's <source> element,
// which the generic feed abstraction drops.
func (s *GoogleNews) Search(ctx context.Context, query string) ([]model.Article, error) {
	feedURL := s.searchURL + "?q=" + url.QueryEscape(query)
	feed, err := fetchRSSFeed(ctx, s.client, feedURL)
	if err != nil {
		return nil, fmt.Errorf("google news: %w", err)
	}

	articles := make([]model.Article, 0, s.maxResults)
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		name := "Unknown"
		if item.Source != nil && item.Source.Title != "" {
			name = item.Source.Title
		}
		articles = append(articles, model.Article{
			Title:       item.Title,
			Source:      name,
			URL:         item.Link,
			PublishedAt: item.PubDate,
			Credibility: s.table.Score(name),
			Via:         s.Name(),
		})
		if len(articles) >= s.maxResults {
			break
		}
	}
	return articles, nil
}

// TopStories fetches the current top-stories feed for the live headlines
// endpoint.
func (s *GoogleNews) TopStories(ctx context.Context) ([]model.Headline, error) {
	feed, err := fetchRSSFeed(ctx, s.client, s.topURL)
	if err != nil {
		return nil, fmt.Errorf("google news: %w", err)
	}

	headlines := make([]model.Headline, 0, s.maxResults)
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}
		name := "Unknown"
		if item.Source != nil && item.Source.Title != "" {
			name = item.Source.Title
		}
		headlines = append(headlines, model.Headline{
			Title:       item.Title,
			Source:      name,
			URL:         item.Link,
			PublishedAt: item.PubDate,
		})
		if len(headlines) >= s.maxResults {
			break
		}
	}
	return headlines, nil
}

// fetchRSSFeed fetches and parses one RSS document. The RSS-level parser is
// shared by every feed-backed adapter.
func fetchRSSFeed(ctx context.Context, client *Client, feedURL string) (*rssparser.Feed, error) {
	body, err := client.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	parser := &rssparser.Parser{}
	feed, err := parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return feed, nil
}
