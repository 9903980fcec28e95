package summarize

import (
	"regexp"
	"strings"

	"github.com/briefly-ai/briefly/internal/model"
)

// Coverage a summary must retain per critical category before the
// validator reports a pass.
const coverageThreshold = 0.7

// Pattern families for checkpoint extraction. Extraction runs
// identically over source and summary so the two sides are comparable.
var (
	keyPointRe = regexp.MustCompile(`(?i)[^.!?\n]*\b(important|significant|key|main|primary|essential|crucial|critical|major|fundamental|conclude[sd]?|finding[s]?|demonstrate[sd]?|show(?:s|ed|n)?)\b[^.!?\n]*[.!?]?`)

	entityRe   = regexp.MustCompile(`\b[A-Z][a-zA-Z0-9]+(?:\s+[A-Z][a-zA-Z0-9]+){0,3}\b`)
	techTermRe = regexp.MustCompile(`\b(?:AI|API|ML|NLP|GPU|CPU|IoT|SaaS|SQL|HTTP|REST|DNA|RNA|CRISPR|LLM)\b`)
	relationRe = regexp.MustCompile(`(?i)\b(because|due to|leads? to|results? in|caused by|correlat\w+|associated with|depends? on|driven by|attributed to)\b`)
	metricRe   = regexp.MustCompile(`\d+(?:\.\d+)?\s*(?:%|percent)|\$\s?\d[\d,]*(?:\.\d+)?\s*(?:million|billion|trillion)?|\b\d[\d,]*(?:\.\d+)?\s+(?:million|billion|trillion|users|people|participants|patients|samples|years|months|days)\b`)
	contextRe  = regexp.MustCompile(`(?i)\b(however|although|despite|in contrast|whereas|meanwhile|previously|subsequently|historically|before \d{4}|after \d{4}|since \d{4}|during the|by \d{4})\b`)
)

// Cap on indicator sentences kept per side so a long source does not
// drown the comparison.
const sentenceCap = 12

// ExtractCheckpoint pulls the key information out of a text: indicator
// sentences, named entities, causal links, numeric metrics and temporal
// or contrastive context markers.
func ExtractCheckpoint(text string) model.ContentCheckpoint {
	return model.ContentCheckpoint{
		KeyPoints:     uniqueMatches(keyPointRe.FindAllString(text, sentenceCap)),
		Entities:      extractEntities(text),
		Relationships: uniqueMatches(relationRe.FindAllString(text, -1)),
		Metrics:       uniqueMatches(metricRe.FindAllString(text, -1)),
		Context:       uniqueMatches(contextRe.FindAllString(text, -1)),
	}
}

func extractEntities(text string) []string {
	matches := entityRe.FindAllString(text, -1)
	matches = append(matches, techTermRe.FindAllString(text, -1)...)
	filtered := matches[:0]
	for _, m := range matches {
		// Sentence-initial single words are usually not entities.
		if !strings.Contains(m, " ") && len(m) < 4 && !techTermRe.MatchString(m) {
			continue
		}
		filtered = append(filtered, m)
	}
	return uniqueMatches(filtered)
}

func uniqueMatches(matches []string) []string {
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		key := strings.ToLower(strings.TrimSpace(m))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(m))
	}
	return out
}

// Validate compares summary checkpoints against source checkpoints.
// Ratios are summary count over source count, capped at 1; a category
// empty in the source is vacuously covered. The overall pass requires
// key points, entities and metrics each at or above the threshold.
// Advisory only: callers surface the report, they do not fail on it.
func Validate(source, summary model.ContentCheckpoint) model.CoverageReport {
	report := model.CoverageReport{
		KeyPointRatio:     coverageRatio(source.KeyPoints, summary.KeyPoints),
		EntityRatio:       coverageRatio(source.Entities, summary.Entities),
		RelationshipRatio: coverageRatio(source.Relationships, summary.Relationships),
		MetricRatio:       coverageRatio(source.Metrics, summary.Metrics),
		ContextRatio:      coverageRatio(source.Context, summary.Context),
	}
	report.Passed = report.KeyPointRatio >= coverageThreshold &&
		report.EntityRatio >= coverageThreshold &&
		report.MetricRatio >= coverageThreshold
	return report
}

func coverageRatio(source, summary []string) float64 {
	if len(source) == 0 {
		return 1
	}
	ratio := float64(len(summary)) / float64(len(source))
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}
