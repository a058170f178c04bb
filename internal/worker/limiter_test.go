package worker

import (
	"context"
	"testing"
)

func TestLimiter_New(t *testing.T) {
	if l := NewLimiter(10, 5); l.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", l.defaultBurst)
	}
	if l := NewLimiter(10, -1); l.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "http://other.example.org"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_ExhaustsTokensPerDomain(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "http://example.com"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// The burst token is spent, so an immediate check fails.
	if limiter.Allow(url) {
		t.Error("expected allow to fail with exhausted tokens")
	}

	// Another domain keeps its own budget.
	if !limiter.Allow("http://other.example.org") {
		t.Error("expected allow for other domain")
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	limiter.SetDomainRate("slow.example.com", 0.1, 1)

	if !limiter.Allow("http://slow.example.com") {
		t.Error("first request should pass on the burst token")
	}
	if limiter.Allow("http://slow.example.com") {
		t.Error("second request should be limited")
	}
	if !limiter.Allow("http://fast.example.com") {
		t.Error("uncustomized domain should use the default rate")
	}
}

func TestExtractDomain(t *testing.T) {
	domain, err := extractDomain("http://example.com/foo")
	if err != nil {
		t.Fatalf("extractDomain failed: %v", err)
	}
	if domain != "example.com" {
		t.Errorf("expected example.com, got %s", domain)
	}

	if _, err := extractDomain("::invalid"); err == nil {
		t.Error("expected error for invalid URL")
	}
}
