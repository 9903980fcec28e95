package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/briefly-ai/briefly/internal/backend"
	"github.com/briefly-ai/briefly/internal/model"
)

// ErrAllAttemptsFailed wraps the last underlying cause once every
// backend attempt for a call has been exhausted.
var ErrAllAttemptsFailed = errors.New("all summarization attempts failed")

const (
	defaultMaxDepth            = 2
	defaultCompressionTarget   = 0.4
	defaultCompressionAttempts = 2
	defaultCallRetries         = 2
	defaultMaxConcurrency      = 4
	defaultCallTimeout         = 60 * time.Second
	// Each compression retry tightens the effective compression factor
	// by this multiplier.
	compressionTightening = 0.6
	// Rough chars-per-token estimate used to scale generation lengths
	// to the chunk at hand.
	charsPerToken = 4
	minScaledLen  = 16
)

type DriverConfig struct {
	MaxDepth            int           `json:"max_depth"`
	CompressionTarget   float64       `json:"compression_target"`
	CompressionAttempts int           `json:"compression_attempts"`
	CallRetries         int           `json:"call_retries"`
	MaxConcurrency      int           `json:"max_concurrency"`
	CallTimeoutSeconds  int           `json:"call_timeout_seconds"`
	Chunker             ChunkerConfig `json:"chunker"`
}

func (c DriverConfig) withDefaults() DriverConfig {
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaultMaxDepth
	}
	if c.CompressionTarget <= 0 || c.CompressionTarget >= 1 {
		c.CompressionTarget = defaultCompressionTarget
	}
	if c.CompressionAttempts <= 0 {
		c.CompressionAttempts = defaultCompressionAttempts
	}
	if c.CallRetries <= 0 {
		c.CallRetries = defaultCallRetries
	}
	if c.MaxConcurrency <= 0 {
		c.MaxConcurrency = defaultMaxConcurrency
	}
	return c
}

func (c DriverConfig) callTimeout() time.Duration {
	if c.CallTimeoutSeconds > 0 {
		return time.Duration(c.CallTimeoutSeconds) * time.Second
	}
	return defaultCallTimeout
}

// Driver runs the chunk / summarize / merge / recurse loop against one
// backend provider.
type Driver struct {
	provider backend.Provider
	cfg      DriverConfig
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewDriver(provider backend.Provider, cfg DriverConfig) *Driver {
	return &Driver{
		provider: provider,
		cfg:      cfg.withDefaults(),
		sleep:    sleepCtx,
	}
}

// Summarize produces a summary of text under the given profile. It
// retries at the top level with a tighter compression factor while the
// output stays above the configured compression target.
func (d *Driver) Summarize(ctx context.Context, doc model.Document, profile model.ModelProfile) (string, error) {
	logger := logutil.GetLogger(ctx).With(
		zap.String("profile", profile.Name),
		zap.String("model", profile.ModelID),
		zap.Int("input_chars", len(doc.CleanedText)),
	)
	factor := profile.CompressionFactor
	var summary string
	var err error
	for attempt := 0; attempt < d.cfg.CompressionAttempts; attempt++ {
		summary, err = d.summarizeAtDepth(ctx, doc, profile, factor, 0)
		if err != nil {
			return "", err
		}
		ratio := compressionRatio(summary, doc.CleanedText)
		if ratio <= d.cfg.CompressionTarget {
			return summary, nil
		}
		logger.Info("summary above compression target, tightening",
			zap.Float64("ratio", ratio),
			zap.Float64("target", d.cfg.CompressionTarget),
			zap.Int("attempt", attempt+1),
		)
		factor *= compressionTightening
	}
	return summary, nil
}

// summarizeAtDepth is the recursive core. Base case: at the depth limit
// or when the text fits a single chunk, one backend call with
// length-scaled parameters. Otherwise: one backend call per chunk,
// fanned out concurrently, partials joined in chunk order, recurse.
func (d *Driver) summarizeAtDepth(ctx context.Context, doc model.Document, profile model.ModelProfile, factor float64, depth int) (string, error) {
	job := model.SummarizationJob{
		Source:  &doc,
		Profile: profile,
		Chunks:  ChunkDocument(doc.CleanedText, doc, d.cfg.Chunker),
		Depth:   depth,
	}
	if len(job.Chunks) == 0 {
		return "", fmt.Errorf("no chunks produced for %d chars", len(doc.CleanedText))
	}

	if depth >= d.cfg.MaxDepth || len(job.Chunks) == 1 {
		return d.callBackend(ctx, profile, job.Chunks[0].Text, factor)
	}

	logutil.GetLogger(ctx).Debug("fanning out chunk summaries",
		zap.Int("chunks", len(job.Chunks)),
		zap.Int("depth", depth),
	)

	job.PartialSummaries = make([]string, len(job.Chunks))
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(d.cfg.MaxConcurrency)
	for _, chunk := range job.Chunks {
		eg.Go(func() error {
			partial, err := d.callBackend(gctx, profile, chunk.Text, factor)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", chunk.SequenceIndex, err)
			}
			job.PartialSummaries[chunk.SequenceIndex] = partial
			return nil
		})
	}
	// Any chunk failure aborts the job: a merged summary silently
	// missing one section is worse than an explicit error.
	if err := eg.Wait(); err != nil {
		return "", err
	}

	merged := model.Document{
		CleanedText:  strings.Join(job.PartialSummaries, " "),
		Type:         doc.Type,
		Complexity:   doc.Complexity,
		LengthBucket: doc.LengthBucket,
	}
	merged.Length = len(merged.CleanedText)
	return d.summarizeAtDepth(ctx, merged, profile, factor, depth+1)
}

// callBackend makes one provider call with bounded retries for
// rate-limit, model-warming and timeout failures. Auth and other
// client errors surface immediately.
func (d *Driver) callBackend(ctx context.Context, profile model.ModelProfile, text string, factor float64) (string, error) {
	params := scaleParams(profile, len(text), factor)
	var lastErr error
	for attempt := 0; attempt <= d.cfg.CallRetries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, d.cfg.callTimeout())
		summary, err := d.provider.Summarize(callCtx, profile.ModelID, text, params)
		cancel()
		if err == nil {
			return summary, nil
		}
		lastErr = err
		if !backend.Retryable(err) {
			return "", err
		}
		if attempt == d.cfg.CallRetries {
			break
		}
		delay := backend.RetryDelay(err)
		logutil.GetLogger(ctx).Warn("backend call failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)
		if err := d.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %w", ErrAllAttemptsFailed, lastErr)
}

// scaleParams derives generation lengths from the input size so a short
// chunk is not asked for a 500-token summary, clamped to the profile's
// absolute bounds.
func scaleParams(profile model.ModelProfile, inputChars int, factor float64) model.GenerationParams {
	params := profile.Params()
	tokens := inputChars / charsPerToken
	scaledMax := int(float64(tokens) * factor)
	if scaledMax > profile.MaxLength {
		scaledMax = profile.MaxLength
	}
	if scaledMax < minScaledLen {
		scaledMax = minScaledLen
	}
	scaledMin := scaledMax / 3
	if scaledMin > profile.MinLength {
		scaledMin = profile.MinLength
	}
	if scaledMin < 1 {
		scaledMin = 1
	}
	if scaledMin >= scaledMax {
		scaledMin = scaledMax / 2
	}
	params.MaxLength = scaledMax
	params.MinLength = scaledMin
	return params
}

func compressionRatio(summary, original string) float64 {
	if len(original) == 0 {
		return 0
	}
	return float64(len(summary)) / float64(len(original))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
