package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sgribkov/newsvet/internal/credibility"
	"github.com/sgribkov/newsvet/internal/util"
)

const reutersSearchPage = `<!DOCTYPE html>
<html><body>
<nav><a href="/world/">World</a></nav>
<div class="results">
	<a href="/article/infrastructure-senate-idUSKBN1234">Senate passes infrastructure bill in rare bipartisan vote</a>
	<a href="/article/infrastructure-market-idUSKBN5678">Markets rally on infrastructure deal</a>
	<a href="/companies/">Companies</a>
	<a href="/article/empty-idUSKBN9999">   </a>
	<a href="https://www.reuters.com/article/infrastructure-eu-idUSKBN0001">EU weighs its own infrastructure package</a>
</div>
</body></html>`

func TestReuters_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("blob"); got != "infrastructure bill" {
			t.Errorf("blob = %q", got)
		}
		_, _ = w.Write([]byte(reutersSearchPage))
	}))
	defer server.Close()

	adapter := NewReuters(NewClient(testHTTPConfig(), nil), nil, credibility.Default(), 10)
	adapter.siteURL = server.URL

	articles, err := adapter.Search(context.Background(), "infrastructure bill")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	// Only anchors with /article/ hrefs and non-empty text survive.
	if len(articles) != 3 {
		t.Fatalf("Expected 3 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Senate passes infrastructure bill in rare bipartisan vote" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Source != "Reuters" {
		t.Errorf("Source = %q", first.Source)
	}
	if first.Credibility != 98 {
		t.Errorf("Credibility = %d, want the table's reuters.com score", first.Credibility)
	}
	if first.Via != "Reuters" {
		t.Errorf("Via = %q", first.Via)
	}

	// Relative hrefs are resolved against the site root.
	if !strings.HasPrefix(first.URL, server.URL+"/article/") {
		t.Errorf("URL = %q, want prefix %s/article/", first.URL, server.URL)
	}
	// Absolute hrefs pass through untouched.
	if articles[2].URL != "https://www.reuters.com/article/infrastructure-eu-idUSKBN0001" {
		t.Errorf("URL = %q", articles[2].URL)
	}
}

func TestReuters_RobotsDisallowed(t *testing.T) {
	var searched bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /search/\n"))
			return
		}
		searched = true
		_, _ = w.Write([]byte(reutersSearchPage))
	}))
	defer server.Close()

	robots := util.NewRobotsChecker("newsvet/0.1 (+https://github.com/sgribkov/newsvet)", 5*time.Second)
	adapter := NewReuters(NewClient(testHTTPConfig(), nil), robots, credibility.Default(), 10)
	adapter.siteURL = server.URL

	articles, err := adapter.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("Expected no articles when robots.txt disallows the search path, got %d", len(articles))
	}
	if searched {
		t.Error("Search page was fetched despite robots.txt disallow")
	}
}

func TestReuters_CapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b strings.Builder
		b.WriteString("<html><body>")
		for i := 0; i < 20; i++ {
			b.WriteString(`<a href="/article/story-id`)
			b.WriteByte(byte('a' + i))
			b.WriteString(`">A perfectly reasonable headline</a>`)
		}
		b.WriteString("</body></html>")
		_, _ = w.Write([]byte(b.String()))
	}))
	defer server.Close()

	adapter := NewReuters(NewClient(testHTTPConfig(), nil), nil, credibility.Default(), 10)
	adapter.siteURL = server.URL

	articles, err := adapter.Search(context.Background(), "headline")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(articles) != 10 {
		t.Errorf("Expected cap of 10 articles, got %d", len(articles))
	}
}
