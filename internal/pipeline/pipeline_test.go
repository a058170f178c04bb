package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sgribkov/newsvet/internal/cache"
	"github.com/sgribkov/newsvet/internal/model"
	"github.com/sgribkov/newsvet/internal/sources"
	"github.com/sgribkov/newsvet/internal/verdict"
)

type stubSource struct {
	name     string
	articles []model.Article
	err      error
	delay    time.Duration
	calls    int32
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Search(ctx context.Context, query string) ([]model.Article, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.articles, nil
}

func testPipeline(srcs ...sources.Source) *Pipeline {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return &Pipeline{
		config:   cfg,
		sources:  srcs,
		strategy: verdict.StrategyBonus,
	}
}

// confirmedArticles builds n distinct titles sharing three key phrases, from
// outlets whose scores average 95.
func confirmedArticles(via string) []model.Article {
	scores := []int{98, 97, 96, 95, 94, 90}
	articles := make([]model.Article, len(scores))
	for i, score := range scores {
		articles[i] = model.Article{
			Title:       fmt.Sprintf("Fed raises rates %d to fight inflation %d analysts said", i, i),
			Source:      fmt.Sprintf("Outlet %d", i),
			URL:         fmt.Sprintf("https://example.com/%d", i),
			Credibility: score,
			Via:         via,
		}
	}
	return articles
}

func TestVerify_WellConfirmedClaim(t *testing.T) {
	articles := confirmedArticles("Stub")
	p := testPipeline(
		&stubSource{name: "A", articles: articles[:3]},
		&stubSource{name: "B", articles: articles[3:]},
	)

	claim := "Federal Reserve raises rates by 25% according to officials on March 16, 2022"
	v, err := p.Verify(context.Background(), claim)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if !v.Success {
		t.Error("Expected success")
	}
	if v.Verdict.Verdict != model.VerdictTrue {
		t.Errorf("Verdict = %q, want TRUE", v.Verdict.Verdict)
	}
	if v.Verdict.Confidence != model.ConfidenceHigh {
		t.Errorf("Confidence = %q, want HIGH", v.Verdict.Confidence)
	}

	// cred 95*0.30 + cons 90*0.25 + fact 40*0.25 + qual 85*0.15 + bonus 25.
	if v.Verdict.FinalScore != 98.8 {
		t.Errorf("FinalScore = %v, want 98.8", v.Verdict.FinalScore)
	}

	if v.Analysis.SourceCredibility != 95.0 {
		t.Errorf("SourceCredibility = %v, want 95.0", v.Analysis.SourceCredibility)
	}
	if v.Analysis.SourceCount != 6 {
		t.Errorf("SourceCount = %d, want 6", v.Analysis.SourceCount)
	}
	if v.Analysis.CrossSourceConsistency.Level != "high" || v.Analysis.CrossSourceConsistency.Score != 90 {
		t.Errorf("Consistency = %+v", v.Analysis.CrossSourceConsistency)
	}
	if v.Analysis.FactCheckingScore != 40 {
		t.Errorf("FactCheckingScore = %d, want 40", v.Analysis.FactCheckingScore)
	}
	if v.Analysis.ContentQuality != 85 {
		t.Errorf("ContentQuality = %d, want 85", v.Analysis.ContentQuality)
	}

	// Top sources cap at 5 of the 6, ordered by credibility.
	if len(v.TopSources) != 5 {
		t.Fatalf("TopSources length = %d, want 5", len(v.TopSources))
	}
	if v.TopSources[0].Credibility != 98 {
		t.Errorf("TopSources[0].Credibility = %d, want 98", v.TopSources[0].Credibility)
	}

	if !v.ContentAnalysis.HasNumbers || !v.ContentAnalysis.HasDates || !v.ContentAnalysis.HasSources {
		t.Errorf("ContentAnalysis features = %+v", v.ContentAnalysis)
	}
}

func TestVerify_NoSources(t *testing.T) {
	p := testPipeline(&stubSource{name: "A"})

	claim := "SHOCKING: Scientists don't want you to know this secret cure, 100% guaranteed"
	v, err := p.Verify(context.Background(), claim)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if !v.Success {
		t.Error("Expected success even with no matches")
	}
	if v.Verdict.Verdict != model.VerdictUnverified {
		t.Errorf("Verdict = %q, want UNVERIFIED", v.Verdict.Verdict)
	}
	if v.Verdict.Confidence != model.ConfidenceLow || v.Verdict.FinalScore != 0 {
		t.Errorf("Confidence/FinalScore = %q/%v", v.Verdict.Confidence, v.Verdict.FinalScore)
	}
	if v.Analysis.CrossSourceConsistency.Level != "none" || v.Analysis.CrossSourceConsistency.Score != 0 {
		t.Errorf("Consistency = %+v", v.Analysis.CrossSourceConsistency)
	}
	if v.Analysis.CrossSourceConsistency.Details != "No sources found" {
		t.Errorf("Details = %q", v.Analysis.CrossSourceConsistency.Details)
	}
	if v.Analysis.SourceCredibility != 0 || v.Analysis.SourceCount != 0 {
		t.Errorf("Analysis = %+v", v.Analysis)
	}

	// The claim text is still analyzed: 100% counts as verifiable but the
	// three red-flag families wipe the score out.
	if v.Analysis.FactCheckingScore != 0 {
		t.Errorf("FactCheckingScore = %d, want 0", v.Analysis.FactCheckingScore)
	}
	if len(v.TopSources) != 0 {
		t.Errorf("TopSources = %v, want empty", v.TopSources)
	}
	if v.TopSources == nil {
		t.Error("TopSources must be an empty slice, not nil")
	}
}

func TestVerify_EmptyText(t *testing.T) {
	p := testPipeline(&stubSource{name: "A"})

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := p.Verify(context.Background(), text); !errors.Is(err, ErrEmptyText) {
			t.Errorf("Verify(%q) error = %v, want ErrEmptyText", text, err)
		}
	}
}

func TestVerify_FailingAdapterDegradesToEmpty(t *testing.T) {
	articles := confirmedArticles("Stub")
	p := testPipeline(
		&stubSource{name: "broken", err: errors.New("boom")},
		&stubSource{name: "healthy", articles: articles},
	)

	v, err := p.Verify(context.Background(), "Federal Reserve raises rates by 25% according to officials on March 16, 2022")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if v.Analysis.SourceCount != 6 {
		t.Errorf("SourceCount = %d, want 6 from the healthy adapter", v.Analysis.SourceCount)
	}
}

func TestVerify_DeadlineProceedsWithCompleted(t *testing.T) {
	articles := confirmedArticles("Stub")
	p := testPipeline(
		&stubSource{name: "fast", articles: articles},
		&stubSource{name: "slow", delay: 5 * time.Second},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	start := time.Now()
	v, err := p.Verify(ctx, "Federal Reserve raises rates by 25% according to officials on March 16, 2022")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Verify took %v, should return at the deadline", elapsed)
	}
	if v.Analysis.SourceCount != 6 {
		t.Errorf("SourceCount = %d, want 6 from the fast adapter", v.Analysis.SourceCount)
	}
}

func TestVerify_AdapterOrderIsStableForTies(t *testing.T) {
	// Equal credibility everywhere: final order must be adapter declaration
	// order, independent of completion order.
	first := []model.Article{{Title: "Alpha event coverage begins", Credibility: 80, Via: "First"}}
	second := []model.Article{{Title: "Beta event coverage begins", Credibility: 80, Via: "Second"}}

	p := testPipeline(
		&stubSource{name: "First", articles: first, delay: 50 * time.Millisecond},
		&stubSource{name: "Second", articles: second},
	)

	v, err := p.Verify(context.Background(), "event coverage")
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if len(v.TopSources) != 2 {
		t.Fatalf("TopSources length = %d, want 2", len(v.TopSources))
	}
	if v.TopSources[0].Via != "First" || v.TopSources[1].Via != "Second" {
		t.Errorf("Order = %s, %s; want First, Second", v.TopSources[0].Via, v.TopSources[1].Via)
	}
}

type stubHeadlines struct {
	headlines []model.Headline
	err       error
}

func (s *stubHeadlines) TopStories(ctx context.Context) ([]model.Headline, error) {
	return s.headlines, s.err
}

type stubClassifier struct {
	err error
}

func (s *stubClassifier) Predict(ctx context.Context, text string) (*model.Prediction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.Prediction{Label: "real", Confidence: 0.8}, nil
}

func TestLiveNews(t *testing.T) {
	p := testPipeline()
	p.live = &stubHeadlines{headlines: []model.Headline{
		{Title: "Top story one", Source: "Reuters"},
		{Title: "Top story two", Source: "BBC News"},
	}}

	headlines, err := p.LiveNews(context.Background())
	if err != nil {
		t.Fatalf("LiveNews failed: %v", err)
	}
	if len(headlines) != 2 {
		t.Fatalf("Expected 2 headlines, got %d", len(headlines))
	}
	// No classifier configured: no predictions attached.
	if headlines[0].Prediction != nil {
		t.Error("Expected no prediction without a classifier")
	}
}

func TestLiveNews_WithClassifier(t *testing.T) {
	p := testPipeline()
	p.live = &stubHeadlines{headlines: []model.Headline{{Title: "Top story one"}}}
	p.classifier = &stubClassifier{}

	headlines, err := p.LiveNews(context.Background())
	if err != nil {
		t.Fatalf("LiveNews failed: %v", err)
	}
	if headlines[0].Prediction == nil || headlines[0].Prediction.Label != "real" {
		t.Errorf("Prediction = %+v, want label real", headlines[0].Prediction)
	}
}

func TestLiveNews_ClassifierFailureTolerated(t *testing.T) {
	p := testPipeline()
	p.live = &stubHeadlines{headlines: []model.Headline{{Title: "Top story one"}}}
	p.classifier = &stubClassifier{err: errors.New("unavailable")}

	headlines, err := p.LiveNews(context.Background())
	if err != nil {
		t.Fatalf("LiveNews failed: %v", err)
	}
	if headlines[0].Prediction != nil {
		t.Error("Expected no prediction when the classifier fails")
	}
}

func TestVerify_CacheHit(t *testing.T) {
	src := &stubSource{name: "A", articles: confirmedArticles("Stub")}
	p := testPipeline(src)
	p.config.Cache.Enabled = true
	p.config.Cache.TTL = time.Minute
	p.memo = cache.NewMemoryCache(time.Minute, 10)

	claim := "Federal Reserve raises rates by 25% according to officials on March 16, 2022"

	v1, err := p.Verify(context.Background(), claim)
	if err != nil {
		t.Fatalf("first Verify failed: %v", err)
	}
	v2, err := p.Verify(context.Background(), claim)
	if err != nil {
		t.Fatalf("second Verify failed: %v", err)
	}

	if atomic.LoadInt32(&src.calls) != 1 {
		t.Errorf("adapter called %d times, want 1 (second hit served from cache)", src.calls)
	}
	if v1.Verdict.FinalScore != v2.Verdict.FinalScore {
		t.Errorf("cached result differs: %v vs %v", v1.Verdict.FinalScore, v2.Verdict.FinalScore)
	}

	// A different claim misses the cache.
	if _, err := p.Verify(context.Background(), "Another claim entirely about sports results"); err != nil {
		t.Fatalf("third Verify failed: %v", err)
	}
	if atomic.LoadInt32(&src.calls) != 2 {
		t.Errorf("adapter called %d times, want 2", src.calls)
	}
}
