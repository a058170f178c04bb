package model

// Article is one candidate result emitted by a single source adapter.
// Adapters construct it at fetch time; nothing downstream mutates it.
type Article struct {
	Title       string `json:"title"`
	Source      string `json:"source"`                 // Display name of the outlet, "Unknown" if the feed omits it
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`           // Free-form, exactly as the feed reported it
	Credibility int    `json:"credibility"`            // 0-100, assigned via the credibility table
	Via         string `json:"api_source"`             // Adapter that produced the record
}

// Headline is one entry of the live top-stories feed, with an optional
// classifier prediction attached per item.
type Headline struct {
	Title       string      `json:"title"`
	Source      string      `json:"source"`
	URL         string      `json:"url"`
	PublishedAt string      `json:"published_at"`
	Prediction  *Prediction `json:"ml_prediction,omitempty"`
}

// Prediction is the output of the external ML classifier. The classifier is
// an optional collaborator; verification never depends on it.
type Prediction struct {
	Label           string  `json:"prediction"`
	Confidence      float64 `json:"confidence"`
	ProbabilityReal float64 `json:"probability_real"`
	ProbabilityFake float64 `json:"probability_fake"`
}
