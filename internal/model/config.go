package model

import "time"

// Config is the complete runtime configuration, constructed once at startup
// and passed by reference into the pipeline. Nothing mutates it afterwards.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Sources     SourcesConfig     `yaml:"sources" mapstructure:"sources"`
	Credibility CredibilityConfig `yaml:"credibility" mapstructure:"credibility"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Verdict     VerdictConfig     `yaml:"verdict" mapstructure:"verdict"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Classifier  ClassifierConfig  `yaml:"classifier" mapstructure:"classifier"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls the shared outbound HTTP client.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// SourcesConfig enables and parameterizes the individual source adapters.
type SourcesConfig struct {
	NewsAPIKey       string `yaml:"newsapi_key" mapstructure:"newsapi_key"`
	GoogleNews       bool   `yaml:"google_news" mapstructure:"google_news"`
	Reuters          bool   `yaml:"reuters" mapstructure:"reuters"`
	BBC              bool   `yaml:"bbc" mapstructure:"bbc"`
	MaxPerSource     int    `yaml:"max_per_source" mapstructure:"max_per_source"`
	MaxPerFeed       int    `yaml:"max_per_feed" mapstructure:"max_per_feed"` // cap for fixed multi-feed adapters
	RespectRobotsTxt bool   `yaml:"respect_robots_txt" mapstructure:"respect_robots_txt"`
}

// CredibilityConfig overrides or extends the built-in source trust table.
// Entries are appended after the defaults in the order given.
type CredibilityConfig struct {
	Overrides []CredibilityOverride `yaml:"overrides,omitempty" mapstructure:"overrides"`
}

// CredibilityOverride maps one source key (domain or display name) to a score.
type CredibilityOverride struct {
	Source string `yaml:"source" mapstructure:"source"`
	Score  int    `yaml:"score" mapstructure:"score"`
}

// CacheConfig controls the query-result memo.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL        time.Duration `yaml:"ttl" mapstructure:"ttl"`
	MaxEntries int           `yaml:"max_entries" mapstructure:"max_entries"`
}

// VerdictConfig selects the aggregation strategy. "bonus" uses the plain
// weighted sum with a capped source-count bonus; "normalized" scales the
// source count to 0-100 under weights summing to 1.0.
type VerdictConfig struct {
	Strategy string `yaml:"strategy" mapstructure:"strategy"`
}

// RateLimitConfig bounds outbound request rates per feed domain.
type RateLimitConfig struct {
	RequestsPerSecond float64            `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int                `yaml:"burst" mapstructure:"burst"`
	DomainRates       map[string]float64 `yaml:"domain_rates,omitempty" mapstructure:"domain_rates"`
}

// ConcurrencyConfig bounds the adapter fan-out and batch processing.
type ConcurrencyConfig struct {
	SourceTimeout time.Duration `yaml:"source_timeout" mapstructure:"source_timeout"`
	BatchWorkers  int           `yaml:"batch_workers" mapstructure:"batch_workers"`
}

// ClassifierConfig points at the external ML classifier service. Empty base
// URL means the classifier is absent and verification runs without it.
type ClassifierConfig struct {
	BaseURL string        `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LLMConfig configures the optional verdict summarizer. It never affects
// scoring; an empty API key disables it.
type LLMConfig struct {
	APIKey  string `yaml:"api_key,omitempty" mapstructure:"api_key"`
	Model   string `yaml:"model" mapstructure:"model"`
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "newsvet/0.1 (+https://github.com/sgribkov/newsvet)",
			MaxBodyBytes: 2_000_000,
		},
		Sources: SourcesConfig{
			GoogleNews:       true,
			Reuters:          true,
			BBC:              true,
			MaxPerSource:     10,
			MaxPerFeed:       5,
			RespectRobotsTxt: true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 1000,
		},
		Verdict: VerdictConfig{
			Strategy: "bonus",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Concurrency: ConcurrencyConfig{
			SourceTimeout: 10 * time.Second,
			BatchWorkers:  4,
		},
		Classifier: ClassifierConfig{
			Timeout: 10 * time.Second,
		},
		LLM: LLMConfig{
			Model: "gpt-4o-mini",
		},
	}
}
