package summarize

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/briefly-ai/briefly/internal/model"
)

// Boilerplate lines removed in the light pass. Matched per line so the
// document's line structure survives for section chunking.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(all rights reserved|copyright\s*(©|\(c\))?\s*\d{4}.*)$`),
	regexp.MustCompile(`(?i)^\s*©\s*\d{4}.*$`),
	regexp.MustCompile(`(?i)^\s*(subscribe( to our newsletter)?|sign up for .*newsletter.*)$`),
	regexp.MustCompile(`(?i)^\s*(contact us|contact:.*|for more information,? (visit|contact).*)$`),
	regexp.MustCompile(`(?i)^\s*(follow us on (twitter|facebook|linkedin|instagram).*)$`),
	regexp.MustCompile(`(?i)^\s*(terms of (use|service)|privacy policy)\s*$`),
	regexp.MustCompile(`(?i)^\s*advertisement\s*$`),
	regexp.MustCompile(`(?i)^\s*(share this (article|story)|read more:?.*)$`),
}

// Content-aware removals applied after classification.
var (
	numberedCitationRe  = regexp.MustCompile(`\[\d+(?:\s*[,–-]\s*\d+)*\]`)
	authorYearRe        = regexp.MustCompile(`\((?:[A-Z][A-Za-z'’-]+(?:\s+(?:et al\.?|and|&)\s*[A-Z]?[A-Za-z'’-]*)?,?\s+\d{4}[a-z]?(?:;\s*)?)+\)`)
	inlineEquationRe    = regexp.MustCompile(`\$[^$\n]+\$|\\\([^)]*\\\)|\\\[[^\]]*\\\]`)
	codeFenceRe         = regexp.MustCompile("(?s)```.*?```|~~~.*?~~~")
	horizontalSpaceRe   = regexp.MustCompile(`[ \t]+`)
	blankRunRe          = regexp.MustCompile(`\n{3,}`)
	trailingLineSpaceRe = regexp.MustCompile(`[ \t]+\n`)
)

// Normalize is the light first pass run before classification: unicode
// compatibility folding, boilerplate line removal, whitespace collapse.
// Pure and idempotent; empty input yields empty output.
func Normalize(text string) string {
	text = norm.NFKC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isBoilerplateLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	text = strings.Join(kept, "\n")

	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	text = trailingLineSpaceRe.ReplaceAllString(text, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// NormalizeForType is the content-aware second pass. Citation markers
// add noise to abstractive models on scholarly text; raw equations and
// code fences derail them on technical text.
func NormalizeForType(text string, docType model.DocumentType) string {
	switch docType {
	case model.DocTypeResearch, model.DocTypeArticle:
		text = numberedCitationRe.ReplaceAllString(text, "")
		text = authorYearRe.ReplaceAllString(text, "")
		text = inlineEquationRe.ReplaceAllString(text, "")
	case model.DocTypeTechnical:
		text = codeFenceRe.ReplaceAllString(text, "")
		text = inlineEquationRe.ReplaceAllString(text, "")
	}
	return Normalize(text)
}

func isBoilerplateLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, re := range boilerplatePatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}
