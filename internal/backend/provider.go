package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/briefly-ai/briefly/internal/model"
)

// Provider is one summarization backend. ModelID selects a concrete
// pretrained model hosted by the provider.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, modelID string, text string, params model.GenerationParams) (string, error)
}

// Invoker binds a provider to a fixed model so callers only deal with
// text and generation parameters.
type Invoker interface {
	Invoke(ctx context.Context, modelID string, text string, params model.GenerationParams) (string, error)
}

type ProviderFactory func(args interface{}) (Provider, error)

var registry = map[string]ProviderFactory{}

func Register(name string, factory ProviderFactory) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || factory == nil {
		return
	}
	registry[key] = factory
}

func NewProvider(name string, args interface{}) (Provider, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("backend.provider is required")
	}
	factory := registry[key]
	if factory == nil {
		return nil, fmt.Errorf("unsupported backend provider: %s", name)
	}
	return factory(args)
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("provider config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode provider config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode provider config: %w", err)
	}
	return nil
}
