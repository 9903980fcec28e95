package model

type DocumentType string

const (
	DocTypeResearch    DocumentType = "research"
	DocTypeBusiness    DocumentType = "business"
	DocTypeTechnical   DocumentType = "technical"
	DocTypeArticle     DocumentType = "article"
	DocTypeGeneral     DocumentType = "general"
	DocTypeCoverLetter DocumentType = "cover_letter"
	DocTypeNews        DocumentType = "news"
)

type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

type LengthBucket string

const (
	LengthShort  LengthBucket = "short"
	LengthMedium LengthBucket = "medium"
	LengthLong   LengthBucket = "long"
)

type SourceKind string

const (
	SourceText SourceKind = "text"
	SourceURL  SourceKind = "url"
	SourceFile SourceKind = "file"
)

// Document is the classifier's view of one input text. It is built once
// per request and not mutated afterwards.
type Document struct {
	RawText      string       `json:"-"`
	CleanedText  string       `json:"-"`
	Length       int          `json:"length"`
	Type         DocumentType `json:"type"`
	Complexity   Complexity   `json:"complexity"`
	LengthBucket LengthBucket `json:"length_bucket"`
	HasEquations bool         `json:"has_equations"`
	HasCitations bool         `json:"has_citations"`
	HasCode      bool         `json:"has_code"`
}
