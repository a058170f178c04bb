package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sgribkov/newsvet/internal/credibility"
	"github.com/sgribkov/newsvet/internal/model"
	"github.com/sgribkov/newsvet/internal/util"
)

const reutersSiteURL = "https://www.reuters.com"

// Reuters scrapes the Reuters search page for article links. The only outlet
// it can ever emit is Reuters itself, so credibility is resolved once from
// the table instead of per article.
type Reuters struct {
	client      *Client
	robots      *util.RobotsChecker
	credibility int
	maxResults  int
	siteURL     string
}

// NewReuters creates the Reuters adapter. A nil robots checker disables the
// robots.txt gate.
func NewReuters(client *Client, robots *util.RobotsChecker, table *credibility.Table, maxResults int) *Reuters {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Reuters{
		client:      client,
		robots:      robots,
		credibility: table.Score("reuters.com"),
		maxResults:  maxResults,
		siteURL:     reutersSiteURL,
	}
}

// Name returns the origin tag for Reuters articles.
func (s *Reuters) Name() string { return "Reuters" }

// Search scrapes the search results page, keeping anchors that point at
// article pages. Scraping is skipped entirely when robots.txt disallows the
// search path.
func (s *Reuters) Search(ctx context.Context, query string) ([]model.Article, error) {
	searchURL := s.siteURL + "/search/news?blob=" + url.QueryEscape(query)

	if s.robots != nil && !s.robots.Allowed(ctx, searchURL) {
		return nil, nil
	}

	body, err := s.client.Get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("reuters: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("reuters: parse page: %w", err)
	}

	articles := make([]model.Article, 0, s.maxResults)
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		title := strings.TrimSpace(sel.Text())
		if !strings.Contains(href, "/article/") || title == "" {
			return true
		}

		link := href
		if strings.HasPrefix(link, "/") {
			link = s.siteURL + link
		}

		articles = append(articles, model.Article{
			Title:       title,
			Source:      "Reuters",
			URL:         link,
			Credibility: s.credibility,
			Via:         s.Name(),
		})
		return len(articles) < s.maxResults
	})

	return articles, nil
}
