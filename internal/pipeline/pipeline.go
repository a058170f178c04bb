// Package pipeline orchestrates a complete verification: source fan-out,
// deduplication, the three analyzers, and the verdict.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/sgribkov/newsvet/internal/analyze"
	"github.com/sgribkov/newsvet/internal/cache"
	"github.com/sgribkov/newsvet/internal/classifier"
	"github.com/sgribkov/newsvet/internal/credibility"
	"github.com/sgribkov/newsvet/internal/dedupe"
	"github.com/sgribkov/newsvet/internal/llm"
	"github.com/sgribkov/newsvet/internal/model"
	"github.com/sgribkov/newsvet/internal/sources"
	"github.com/sgribkov/newsvet/internal/util"
	"github.com/sgribkov/newsvet/internal/verdict"
	"github.com/sgribkov/newsvet/internal/worker"
)

// ErrEmptyText rejects verification requests with no claim text. It is the
// only caller error the pipeline produces.
var ErrEmptyText = errors.New("no text provided")

// topSourcesLimit caps how many matched articles the payload carries.
const topSourcesLimit = 5

// Pipeline runs verifications. It is safe for concurrent use: all fields
// are set once at construction.
// headlineSource serves the live top-stories feed. Satisfied by the Google
// News adapter.
type headlineSource interface {
	TopStories(ctx context.Context) ([]model.Headline, error)
}

type Pipeline struct {
	config     *model.Config
	sources    []sources.Source
	live       headlineSource
	memo       cache.Cache
	strategy   verdict.Strategy
	classifier classifier.Classifier
	summarizer *llm.Summarizer
}

// New wires the pipeline from configuration. Adapter order here is fixed;
// downstream deduplication depends on it for reproducible tie-breaks.
func New(cfg *model.Config) *Pipeline {
	table := credibility.Default()
	if len(cfg.Credibility.Overrides) > 0 {
		extra := make([]credibility.Entry, 0, len(cfg.Credibility.Overrides))
		for _, o := range cfg.Credibility.Overrides {
			extra = append(extra, credibility.Entry{Key: o.Source, Score: o.Score})
		}
		table = table.WithOverrides(extra)
	}

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	for domain, rps := range cfg.RateLimit.DomainRates {
		limiter.SetDomainRate(domain, rps, 0)
	}
	client := sources.NewClient(cfg.HTTP, limiter)

	google := sources.NewGoogleNews(client, table, cfg.Sources.MaxPerSource)

	var srcs []sources.Source
	if cfg.Sources.NewsAPIKey != "" {
		srcs = append(srcs, sources.NewNewsAPI(client, cfg.Sources.NewsAPIKey, table, cfg.Sources.MaxPerSource))
	}
	if cfg.Sources.GoogleNews {
		srcs = append(srcs, google)
	}
	if cfg.Sources.Reuters {
		var robots *util.RobotsChecker
		if cfg.Sources.RespectRobotsTxt {
			robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
		}
		srcs = append(srcs, sources.NewReuters(client, robots, table, cfg.Sources.MaxPerSource))
	}
	if cfg.Sources.BBC {
		srcs = append(srcs, sources.NewBBC(client, table, cfg.Sources.MaxPerFeed))
	}

	var memo cache.Cache
	if cfg.Cache.Enabled {
		memo = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	}

	var cls classifier.Classifier
	if c := classifier.NewHTTPClassifier(cfg.Classifier.BaseURL, cfg.Classifier.Timeout); c != nil {
		cls = c
	}

	return &Pipeline{
		config:     cfg,
		sources:    srcs,
		live:       google,
		memo:       memo,
		strategy:   verdict.ParseStrategy(cfg.Verdict.Strategy),
		classifier: cls,
		summarizer: llm.NewSummarizer(cfg.LLM),
	}
}

// Classifier exposes the optional ML classifier, nil when absent.
func (p *Pipeline) Classifier() classifier.Classifier {
	return p.classifier
}

// Verify runs the full verification for one claim text.
func (p *Pipeline) Verify(ctx context.Context, text string) (*model.Verification, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	key := cache.Key(text)
	if p.memo != nil {
		if raw, ok := p.memo.Get(key, p.config.Cache.TTL); ok {
			var v model.Verification
			if err := json.Unmarshal(raw, &v); err == nil {
				p.logf("cache hit for query")
				return &v, nil
			}
		}
	}

	unique := dedupe.Dedupe(p.search(ctx, text))
	v := p.assemble(text, unique)

	if p.memo != nil {
		if raw, err := json.Marshal(v); err == nil {
			p.memo.Put(key, raw)
		}
	}
	return v, nil
}

// search fans out to every adapter concurrently. Each adapter runs under its
// own timeout; when the request deadline elapses first, whatever has
// completed by then is used. Results are concatenated in adapter
// declaration order regardless of completion order.
func (p *Pipeline) search(ctx context.Context, query string) []model.Article {
	var mu sync.Mutex
	slots := make([][]model.Article, len(p.sources))

	var wg sync.WaitGroup
	for i, src := range p.sources {
		wg.Add(1)
		go func(idx int, s sources.Source) {
			defer wg.Done()

			sctx := ctx
			if p.config.Concurrency.SourceTimeout > 0 {
				var cancel context.CancelFunc
				sctx, cancel = context.WithTimeout(ctx, p.config.Concurrency.SourceTimeout)
				defer cancel()
			}

			articles, err := s.Search(sctx, query)
			if err != nil {
				// Fail-soft: a broken adapter contributes nothing.
				p.logf("%s: %v", s.Name(), err)
				return
			}

			mu.Lock()
			slots[idx] = articles
			mu.Unlock()
		}(i, src)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}

	mu.Lock()
	defer mu.Unlock()
	var all []model.Article
	for _, batch := range slots {
		all = append(all, batch...)
	}
	return all
}

// assemble computes the analyzer scores and builds the result payload.
func (p *Pipeline) assemble(text string, unique []model.Article) *model.Verification {
	quality := analyze.Quality(text)
	fact := analyze.FactCheck(text)

	if len(unique) == 0 {
		return &model.Verification{
			Success: true,
			Verdict: verdict.Unverified(),
			Analysis: model.AnalysisBreakdown{
				SourceCredibility:      0,
				CrossSourceConsistency: analyze.NoSources(),
				FactCheckingScore:      fact.Score,
				ContentQuality:         quality.QualityScore,
				SourceCount:            0,
			},
			TopSources:      []model.Article{},
			ContentAnalysis: quality,
		}
	}

	avg := dedupe.AverageCredibility(unique)
	consistency := analyze.Consistency(unique)
	result := verdict.Aggregate(p.strategy, avg, consistency.Score, fact.Score, quality.QualityScore, len(unique))

	top := unique
	if len(top) > topSourcesLimit {
		top = top[:topSourcesLimit]
	}

	return &model.Verification{
		Success: true,
		Verdict: result,
		Analysis: model.AnalysisBreakdown{
			SourceCredibility:      math.Round(avg*10) / 10,
			CrossSourceConsistency: consistency,
			FactCheckingScore:      fact.Score,
			ContentQuality:         quality.QualityScore,
			SourceCount:            len(unique),
		},
		TopSources:      top,
		ContentAnalysis: quality,
	}
}

// Summarize produces the optional plain-language summary of a verification.
// It returns "" when the summarizer is not configured.
func (p *Pipeline) Summarize(ctx context.Context, claim string, v *model.Verification) string {
	if p.summarizer == nil {
		return ""
	}
	summary, err := p.summarizer.Summarize(ctx, claim, v)
	if err != nil {
		p.logf("summary: %v", err)
		return ""
	}
	return summary
}

// LiveNews fetches the current top headlines, attaching classifier
// predictions when the classifier is configured. A failed prediction leaves
// that headline without one.
func (p *Pipeline) LiveNews(ctx context.Context) ([]model.Headline, error) {
	headlines, err := p.live.TopStories(ctx)
	if err != nil {
		return nil, fmt.Errorf("live news: %w", err)
	}

	if p.classifier != nil {
		for i := range headlines {
			prediction, err := p.classifier.Predict(ctx, headlines[i].Title)
			if err != nil {
				p.logf("predict %q: %v", headlines[i].Title, err)
				continue
			}
			headlines[i].Prediction = prediction
		}
	}

	return headlines, nil
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.config != nil && p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
