package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/briefly-ai/briefly/internal/model"
)

type ProviderEntry struct {
	Name     string
	Provider Provider
	// ModelID overrides the caller's model id; prompt-based fallbacks
	// carry their own model name.
	ModelID string
}

type groupProvider struct {
	items []ProviderEntry
}

// NewGroupProvider chains providers in order. Auth failures do not fall
// through: a misconfigured key should surface, not be papered over by a
// different backend silently producing a different style of summary.
func NewGroupProvider(items []ProviderEntry) Provider {
	if len(items) == 0 {
		return nil
	}
	if len(items) == 1 && items[0].ModelID == "" {
		return items[0].Provider
	}
	return &groupProvider{items: items}
}

func (g *groupProvider) Name() string {
	names := make([]string, 0, len(g.items))
	for _, item := range g.items {
		if item.Name == "" {
			continue
		}
		names = append(names, item.Name)
	}
	return strings.Join(names, "|")
}

func (g *groupProvider) Summarize(ctx context.Context, modelID string, text string, params model.GenerationParams) (string, error) {
	var lastErr error
	for i, item := range g.items {
		if item.Provider == nil {
			continue
		}
		id := modelID
		if item.ModelID != "" {
			id = item.ModelID
		}
		res, err := item.Provider.Summarize(ctx, id, text, params)
		if err == nil {
			return res, nil
		}
		if errors.Is(err, ErrAuth) {
			return "", err
		}
		lastErr = err
		logutil.GetLogger(ctx).Warn("backend provider failed",
			zap.Int("index", i),
			zap.String("name", item.Name),
			zap.String("model", id),
			zap.Error(err),
		)
	}
	if lastErr == nil {
		return "", fmt.Errorf("backend provider not configured")
	}
	return "", lastErr
}
