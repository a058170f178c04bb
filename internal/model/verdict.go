package model

// VerdictLabel is the terminal categorical outcome of a verification.
type VerdictLabel string

const (
	VerdictTrue        VerdictLabel = "TRUE"
	VerdictLikelyTrue  VerdictLabel = "LIKELY TRUE"
	VerdictUncertain   VerdictLabel = "UNCERTAIN"
	VerdictLikelyFalse VerdictLabel = "LIKELY FALSE"
	VerdictUnverified  VerdictLabel = "UNVERIFIED"
)

// Confidence qualifies how much weight the verdict carries.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Verdict is the combined outcome: category, confidence, the weighted score
// and a fixed human-readable explanation for the score band.
type Verdict struct {
	Verdict     VerdictLabel `json:"verdict"`
	Confidence  Confidence   `json:"confidence"`
	FinalScore  float64      `json:"final_score"`
	Explanation string       `json:"explanation"`
}

// Consistency reports lexical agreement across the deduplicated article set.
type Consistency struct {
	Level   string `json:"consistency"` // "none", "low", "medium", "high"
	Score   int    `json:"score"`
	Details string `json:"details"`
}

// ContentAnalysis holds the lexical features extracted from the claim text
// plus the quality score they add up to.
type ContentAnalysis struct {
	Length            int  `json:"length"`
	HasNumbers        bool `json:"has_numbers"`
	HasDates          bool `json:"has_dates"`
	HasNames          bool `json:"has_names"`
	HasQuotes         bool `json:"has_quotes"`
	HasSources        bool `json:"has_sources"`
	EmotionalLanguage int  `json:"emotional_language"`
	ExaggerationWords int  `json:"exaggeration_words"`
	QualityScore      int  `json:"quality_score"`
}

// AnalysisBreakdown is the per-signal score summary in the result payload.
type AnalysisBreakdown struct {
	SourceCredibility      float64     `json:"source_credibility"`
	CrossSourceConsistency Consistency `json:"cross_source_consistency"`
	FactCheckingScore      int         `json:"fact_checking_score"`
	ContentQuality         int         `json:"content_quality"`
	SourceCount            int         `json:"source_count"`
}

// Verification is the complete result of one verification request. Field
// names are the contract surface consumed by callers.
type Verification struct {
	Success         bool              `json:"success"`
	Verdict         Verdict           `json:"verdict"`
	Analysis        AnalysisBreakdown `json:"analysis"`
	TopSources      []Article         `json:"top_sources"`
	ContentAnalysis ContentAnalysis   `json:"content_analysis"`
}
