package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sgribkov/newsvet/internal/credibility"
	"github.com/sgribkov/newsvet/internal/model"
)

const newsAPIBaseURL = "https://newsapi.org/v2/everything"

// NewsAPI queries the NewsAPI /v2/everything endpoint. It is only
// constructed when an API key is configured.
type NewsAPI struct {
	client     *Client
	apiKey     string
	table      *credibility.Table
	maxResults int
	baseURL    string
}

// NewNewsAPI creates the NewsAPI adapter.
func NewNewsAPI(client *Client, apiKey string, table *credibility.Table, maxResults int) *NewsAPI {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &NewsAPI{
		client:     client,
		apiKey:     apiKey,
		table:      table,
		maxResults: maxResults,
		baseURL:    newsAPIBaseURL,
	}
}

// Name returns the origin tag for NewsAPI articles.
func (s *NewsAPI) Name() string { return "NewsAPI" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search runs the query against NewsAPI, scoring each article's outlet
// against the credibility table.
func (s *NewsAPI) Search(ctx context.Context, query string) ([]model.Article, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", s.apiKey)
	params.Set("language", "en")
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", strconv.Itoa(s.maxResults))

	body, err := s.client.Get(ctx, s.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}

	var payload newsAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("newsapi: decode response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi: status %q", payload.Status)
	}

	articles := make([]model.Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		if strings.TrimSpace(item.Title) == "" {
			continue
		}
		name := item.Source.Name
		if name == "" {
			name = "Unknown"
		}
		articles = append(articles, model.Article{
			Title:       item.Title,
			Source:      name,
			URL:         item.URL,
			PublishedAt: item.PublishedAt,
			Credibility: s.table.Score(name),
			Via:         s.Name(),
		})
		if len(articles) >= s.maxResults {
			break
		}
	}
	return articles, nil
}
