package summarize

import (
	"regexp"

	"github.com/briefly-ai/briefly/internal/model"
)

// Classification thresholds. The decision tree in Classify depends on
// these exact values; tune here, not inline.
const (
	businessTermThreshold   = 3
	complexityHighSignals   = 3
	complexityMediumSignals = 1
	longDocChars            = 10000
	mediumDocChars          = 3000
)

type signalCategory string

const (
	sigBusiness    signalCategory = "business"
	sigAbstract    signalCategory = "abstract"
	sigMethodology signalCategory = "methodology"
	sigResults     signalCategory = "results"
	sigReferences  signalCategory = "references"
	sigCitations   signalCategory = "citations"
	sigEquations   signalCategory = "equations"
	sigCode        signalCategory = "code"
)

type signalPattern struct {
	re       *regexp.Regexp
	category signalCategory
	weight   int
}

// signalTable drives classification. Adding a pattern never changes the
// shape of the decision tree, only the counts feeding it.
var signalTable = []signalPattern{
	// Domain vocabulary.
	{regexp.MustCompile(`(?i)\b(revenue|profit|quarterly|fiscal|stakeholder|shareholder)\b`), sigBusiness, 1},
	{regexp.MustCompile(`(?i)\b(market(ing| share)?|sales (growth|target|forecast)|business (plan|model|strategy))\b`), sigBusiness, 1},
	{regexp.MustCompile(`(?i)\b(roi|kpi|ebitda|cash flow|balance sheet|income statement)\b`), sigBusiness, 1},
	{regexp.MustCompile(`(?i)\b(management|executive|board of directors|merger|acquisition)\b`), sigBusiness, 1},

	// Structural markers of scholarly writing.
	{regexp.MustCompile(`(?im)^\s*abstract\b`), sigAbstract, 1},
	{regexp.MustCompile(`(?im)^\s*(methodology|methods?|materials and methods)\b`), sigMethodology, 1},
	{regexp.MustCompile(`(?im)^\s*(results?|findings|evaluation)\b`), sigResults, 1},
	{regexp.MustCompile(`(?im)^\s*(references|bibliography|works cited)\b`), sigReferences, 1},

	// Citations.
	{regexp.MustCompile(`\[\d+(?:\s*[,–-]\s*\d+)*\]`), sigCitations, 1},
	{regexp.MustCompile(`\([A-Z][A-Za-z'’-]+(?:\s+et al\.?)?,?\s+\d{4}[a-z]?\)`), sigCitations, 1},
	{regexp.MustCompile(`(?i)\bet al\.`), sigCitations, 1},

	// Equations.
	{regexp.MustCompile(`\$[^$\n]+\$`), sigEquations, 1},
	{regexp.MustCompile(`[∑∫∂√≈≤≥±∞∇]`), sigEquations, 1},
	{regexp.MustCompile(`\\(?:frac|sum|int|alpha|beta|gamma|sigma|theta)\b`), sigEquations, 1},

	// Code-like tokens.
	{regexp.MustCompile("```|~~~"), sigCode, 1},
	{regexp.MustCompile(`(?m)^\s*(func|def|class|public|private|import|package|#include)\s`), sigCode, 1},
	{regexp.MustCompile(`\b\w+\(\)\s*[{;]`), sigCode, 1},
	{regexp.MustCompile(`(?i)\b(if|for|while)\s*\(.*\)\s*\{`), sigCode, 1},
}

type signals struct {
	counts map[signalCategory]int
}

func (s signals) count(c signalCategory) int {
	return s.counts[c]
}

func (s signals) has(c signalCategory) bool {
	return s.counts[c] > 0
}

func collectSignals(text string) signals {
	counts := make(map[signalCategory]int, 8)
	for _, sp := range signalTable {
		matches := sp.re.FindAllStringIndex(text, -1)
		if len(matches) == 0 {
			continue
		}
		counts[sp.category] += len(matches) * sp.weight
	}
	return signals{counts: counts}
}

// Classify inspects text and infers document type, complexity and
// length bucket. Total and deterministic: the same text always produces
// the same Document. The priority order of the type rules is load
// bearing and must not be reordered.
func Classify(text string) model.Document {
	sig := collectSignals(text)

	structural := 0
	for _, c := range []signalCategory{sigEquations, sigCitations, sigCode, sigMethodology, sigResults} {
		if sig.has(c) {
			structural++
		}
	}
	complexity := model.ComplexityLow
	switch {
	case structural >= complexityHighSignals:
		complexity = model.ComplexityHigh
	case structural >= complexityMediumSignals:
		complexity = model.ComplexityMedium
	}

	var docType model.DocumentType
	switch {
	case sig.count(sigBusiness) > businessTermThreshold:
		docType = model.DocTypeBusiness
	case sig.has(sigAbstract) && sig.has(sigMethodology) && sig.has(sigResults) && sig.has(sigReferences):
		docType = model.DocTypeResearch
	case sig.has(sigCode) || sig.has(sigEquations) || complexity == model.ComplexityHigh:
		docType = model.DocTypeTechnical
	case sig.has(sigAbstract) || sig.has(sigCitations):
		docType = model.DocTypeArticle
	default:
		docType = model.DocTypeGeneral
	}

	bucket := model.LengthShort
	switch {
	case len(text) > longDocChars:
		bucket = model.LengthLong
	case len(text) > mediumDocChars:
		bucket = model.LengthMedium
	}

	return model.Document{
		CleanedText:  text,
		Length:       len(text),
		Type:         docType,
		Complexity:   complexity,
		LengthBucket: bucket,
		HasEquations: sig.has(sigEquations),
		HasCitations: sig.has(sigCitations),
		HasCode:      sig.has(sigCode),
	}
}
