package model

// SummaryResult is what the pipeline returns to its callers.
type SummaryResult struct {
	Summary            string         `json:"summary"`
	ModelUsed          string         `json:"model_used"`
	DocumentType       DocumentType   `json:"document_type"`
	CompressionRatio   float64        `json:"compression_ratio"`
	CompletenessPassed bool           `json:"completeness_passed"`
	Coverage           CoverageReport `json:"coverage"`
	Cached             bool           `json:"cached"`
}

// SummaryRecord is the persisted history entry for one summarization.
type SummaryRecord struct {
	ID                 string     `json:"id"`
	SourceKind         SourceKind `json:"source_kind"`
	Title              string     `json:"title"`
	SourceURL          string     `json:"source_url,omitempty"`
	FileKey            string     `json:"file_key,omitempty"`
	InputChars         int        `json:"input_chars"`
	Summary            string     `json:"summary"`
	ModelUsed          string     `json:"model_used"`
	CompressionRatio   float64    `json:"compression_ratio"`
	CompletenessPassed bool       `json:"completeness_passed"`
	Ctime              int64      `json:"ctime"`
}

// Article is the readable content extracted from a fetched web page.
type Article struct {
	Title       string `json:"title"`
	Byline      string `json:"byline"`
	SiteName    string `json:"site_name"`
	PublishDate string `json:"publish_date"`
	Text        string `json:"text"`
	TopImage    string `json:"top_image"`
}

// KeywordReport is the TF-IDF view of one document.
type KeywordReport struct {
	TopTerms       []ScoredTerm `json:"top_terms"`
	KeySentences   []string     `json:"key_sentences"`
	WordCount      int          `json:"word_count"`
	SentenceCount  int          `json:"sentence_count"`
	AvgSentenceLen float64      `json:"avg_sentence_len"`
}

type ScoredTerm struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}
