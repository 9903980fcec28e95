package summarize

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/briefly-ai/briefly/internal/model"
	appErr "github.com/briefly-ai/briefly/internal/pkg/errors"
)

// How much of the text participates in the cache fingerprint. Prefix
// plus total length is cheap and collision-safe enough for an advisory
// cache.
const fingerprintPrefix = 512

// Pipeline wires normalize, classify, select, summarize and validate
// into the single entry point callers use. The result cache is an
// injected collaborator: a nil cache disables caching and a miss only
// ever means recomputation.
type Pipeline struct {
	driver *Driver
	cache  *expirable.LRU[string, model.SummaryResult]
}

func NewPipeline(driver *Driver, cache *expirable.LRU[string, model.SummaryResult]) *Pipeline {
	return &Pipeline{driver: driver, cache: cache}
}

// ProduceSummary runs the full pipeline over raw text. It fails fast on
// empty or whitespace-only input before any classification or backend
// work happens.
func (p *Pipeline) ProduceSummary(ctx context.Context, rawText string, kind model.SourceKind) (model.SummaryResult, error) {
	if strings.TrimSpace(rawText) == "" {
		return model.SummaryResult{}, appErr.ErrEmptyInput
	}

	key := fingerprint(rawText, kind)
	if p.cache != nil {
		if cached, ok := p.cache.Get(key); ok {
			logutil.GetLogger(ctx).Debug("summary cache hit", zap.String("source_kind", string(kind)))
			cached.Cached = true
			return cached, nil
		}
	}

	cleaned := Normalize(rawText)
	doc := Classify(cleaned)
	doc.RawText = rawText
	doc.CleanedText = NormalizeForType(cleaned, doc.Type)
	doc.Length = len(doc.CleanedText)

	profile := SelectProfile(doc)
	logutil.GetLogger(ctx).Info("document routed",
		zap.String("source_kind", string(kind)),
		zap.String("type", string(doc.Type)),
		zap.String("complexity", string(doc.Complexity)),
		zap.String("length_bucket", string(doc.LengthBucket)),
		zap.String("profile", profile.Name),
	)

	summary, err := p.driver.Summarize(ctx, doc, profile)
	if err != nil {
		return model.SummaryResult{}, fmt.Errorf("summarize %s document: %w", doc.Type, err)
	}

	report := Validate(ExtractCheckpoint(doc.CleanedText), ExtractCheckpoint(summary))
	result := model.SummaryResult{
		Summary:            summary,
		ModelUsed:          profile.ModelID,
		DocumentType:       doc.Type,
		CompressionRatio:   compressionRatio(summary, doc.CleanedText),
		CompletenessPassed: report.Passed,
		Coverage:           report,
	}
	if p.cache != nil {
		p.cache.Add(key, result)
	}
	return result, nil
}

func fingerprint(text string, kind model.SourceKind) string {
	prefix := text
	if len(prefix) > fingerprintPrefix {
		prefix = prefix[:fingerprintPrefix]
	}
	hash := sha256.Sum256([]byte(prefix))
	return fmt.Sprintf("%s:%d:%s", kind, len(text), hex.EncodeToString(hash[:]))
}
