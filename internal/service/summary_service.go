package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/briefly-ai/briefly/internal/analyze"
	"github.com/briefly-ai/briefly/internal/extract"
	"github.com/briefly-ai/briefly/internal/filestore"
	"github.com/briefly-ai/briefly/internal/model"
	appErr "github.com/briefly-ai/briefly/internal/pkg/errors"
	"github.com/briefly-ai/briefly/internal/repo"
	"github.com/briefly-ai/briefly/internal/summarize"
)

const maxTitleLen = 120

type SummaryService struct {
	pipeline      *summarize.Pipeline
	fetcher       *extract.Fetcher
	analyzer      *analyze.Analyzer
	history       *repo.HistoryRepo
	files         filestore.Store
	maxInputChars int
}

func NewSummaryService(
	pipeline *summarize.Pipeline,
	fetcher *extract.Fetcher,
	analyzer *analyze.Analyzer,
	history *repo.HistoryRepo,
	files filestore.Store,
	maxInputChars int,
) *SummaryService {
	return &SummaryService{
		pipeline:      pipeline,
		fetcher:       fetcher,
		analyzer:      analyzer,
		history:       history,
		files:         files,
		maxInputChars: maxInputChars,
	}
}

// SummarizeText summarizes raw pasted text and records the run.
func (s *SummaryService) SummarizeText(ctx context.Context, input string) (*model.SummaryResult, *model.SummaryRecord, error) {
	text, err := s.cleanInput(input)
	if err != nil {
		return nil, nil, err
	}
	result, err := s.pipeline.ProduceSummary(ctx, text, model.SourceText)
	if err != nil {
		return nil, nil, err
	}
	record := s.saveRecord(ctx, &result, model.SummaryRecord{
		SourceKind: model.SourceText,
		Title:      deriveTitle(text),
		InputChars: len(text),
	})
	return &result, record, nil
}

// SummarizeURL fetches the article behind a url, summarizes its text and
// records the run. The extracted article metadata rides along so callers
// can show title and byline.
func (s *SummaryService) SummarizeURL(ctx context.Context, rawURL string) (*model.SummaryResult, *model.Article, *model.SummaryRecord, error) {
	article, err := s.fetcher.FetchArticle(ctx, rawURL)
	if err != nil {
		return nil, nil, nil, err
	}
	text, err := s.cleanInput(article.Text)
	if err != nil {
		return nil, nil, nil, err
	}
	result, err := s.pipeline.ProduceSummary(ctx, text, model.SourceURL)
	if err != nil {
		return nil, nil, nil, err
	}
	record := s.saveRecord(ctx, &result, model.SummaryRecord{
		SourceKind: model.SourceURL,
		Title:      article.Title,
		SourceURL:  rawURL,
		InputChars: len(text),
	})
	return &result, article, record, nil
}

// SummarizeFile extracts text from an uploaded document, stores the
// original in the file store and summarizes the text. Supported formats
// are pdf, markdown and plain text.
func (s *SummaryService) SummarizeFile(ctx context.Context, filename string, r io.Reader, size int64) (*model.SummaryResult, *model.SummaryRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	title, text, err := extractFileText(filename, data)
	if err != nil {
		return nil, nil, err
	}
	text, err = s.cleanInput(text)
	if err != nil {
		return nil, nil, err
	}

	key := newID() + strings.ToLower(filepath.Ext(filename))
	if err := s.files.Save(ctx, key, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, nil, fmt.Errorf("save upload: %w", err)
	}

	result, err := s.pipeline.ProduceSummary(ctx, text, model.SourceFile)
	if err != nil {
		return nil, nil, err
	}
	if title == "" {
		title = filepath.Base(filename)
	}
	record := s.saveRecord(ctx, &result, model.SummaryRecord{
		SourceKind: model.SourceFile,
		Title:      title,
		FileKey:    key,
		InputChars: len(text),
	})
	return &result, record, nil
}

// AnalyzeKeywords runs the tf-idf view over a text without summarizing.
func (s *SummaryService) AnalyzeKeywords(ctx context.Context, input string) (*model.KeywordReport, error) {
	_ = ctx
	text, err := s.cleanInput(input)
	if err != nil {
		return nil, err
	}
	report := s.analyzer.AnalyzeDocument(text)
	return &report, nil
}

func (s *SummaryService) ListHistory(ctx context.Context, sourceKind string, limit, offset uint) ([]model.SummaryRecord, int, error) {
	records, err := s.history.List(ctx, sourceKind, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.history.Count(ctx, sourceKind)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (s *SummaryService) GetRecord(ctx context.Context, id string) (*model.SummaryRecord, error) {
	return s.history.GetByID(ctx, id)
}

// DeleteRecord removes a history entry together with its stored upload.
func (s *SummaryService) DeleteRecord(ctx context.Context, id string) error {
	rec, err := s.history.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.FileKey != "" {
		if err := s.files.Delete(ctx, rec.FileKey); err != nil {
			logutil.GetLogger(ctx).Warn("failed to delete stored file",
				zap.String("file_key", rec.FileKey), zap.Error(err))
		}
	}
	return s.history.Delete(ctx, id)
}

// OpenFile serves a stored upload back to the caller.
func (s *SummaryService) OpenFile(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.files.Open(ctx, key)
}

// PurgeHistoryBefore drops records older than the cutoff along with
// their stored uploads.
func (s *SummaryService) PurgeHistoryBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	keys, err := s.history.ListFileKeysOlderThan(ctx, cutoff.UnixMilli())
	if err != nil {
		return 0, err
	}
	for _, key := range keys {
		if err := s.files.Delete(ctx, key); err != nil {
			logutil.GetLogger(ctx).Warn("failed to delete expired file",
				zap.String("file_key", key), zap.Error(err))
		}
	}
	return s.history.DeleteOlderThan(ctx, cutoff.UnixMilli())
}

func (s *SummaryService) saveRecord(ctx context.Context, result *model.SummaryResult, rec model.SummaryRecord) *model.SummaryRecord {
	rec.ID = newID()
	rec.Summary = result.Summary
	rec.ModelUsed = result.ModelUsed
	rec.CompressionRatio = result.CompressionRatio
	rec.CompletenessPassed = result.CompletenessPassed
	rec.Ctime = time.Now().UnixMilli()
	if err := s.history.Create(ctx, &rec); err != nil {
		// History is best-effort: the summary is still returned.
		logutil.GetLogger(ctx).Warn("failed to persist summary record",
			zap.String("source_kind", string(rec.SourceKind)), zap.Error(err))
	}
	return &rec
}

func (s *SummaryService) cleanInput(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", appErr.ErrEmptyInput
	}
	if s.maxInputChars > 0 && len(trimmed) > s.maxInputChars {
		return "", fmt.Errorf("%w: input exceeds %d characters", appErr.ErrInputTooLarge, s.maxInputChars)
	}
	return trimmed, nil
}

func extractFileText(filename string, data []byte) (title string, text string, err error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extract.ExtractPDFText(bytes.NewReader(data))
	case ".md", ".markdown":
		return "", extract.MarkdownToText(string(data)), nil
	case ".txt", ".text":
		return "", string(data), nil
	default:
		return "", "", fmt.Errorf("%w: unsupported file type %q", appErr.ErrUnsupportedDoc, filepath.Ext(filename))
	}
}

func deriveTitle(text string) string {
	line := text
	if idx := strings.IndexAny(line, "\n"); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if len(line) > maxTitleLen {
		line = line[:maxTitleLen]
	}
	return line
}
