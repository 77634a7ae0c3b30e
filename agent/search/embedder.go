package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	contractx "github.com/tanpawarit/kopibot/agent/contract"
)

// Embedder maps texts to vectors. Implementations must return one vector per
// input text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Config holds embedding API settings. The API key is optional: product
// search is a feature that degrades to disabled when no key is configured.
type Config struct {
	APIKey  string        `envconfig:"API_KEY" split_words:"true"`
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.openai.com/v1"`
	Model   string        `envconfig:"MODEL" split_words:"true" default:"text-embedding-3-small"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

func (c Config) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// NewEmbedder builds an OpenAI-backed embedder from the config.
func (c Config) NewEmbedder() (*OpenAIEmbedder, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("%w: embeddings api key is required", contractx.ErrValidation)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(c.APIKey)),
	}
	if trimmed := strings.TrimRight(c.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if c.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(c.Timeout))
	}

	client := openaisdk.NewClient(opts...)
	return NewOpenAIEmbedder(&client, c.Model)
}

// OpenAIEmbedder calls the embeddings endpoint of an OpenAI-compatible API.
type OpenAIEmbedder struct {
	client *openaisdk.Client
	model  string
}

var _ Embedder = (*OpenAIEmbedder)(nil)

func NewOpenAIEmbedder(client *openaisdk.Client, model string) (*OpenAIEmbedder, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: embeddings client is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%w: embeddings model is required", contractx.ErrValidation)
	}
	return &OpenAIEmbedder{client: client, model: strings.TrimSpace(model)}, nil
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
		Model: openaisdk.EmbeddingModel(e.model),
		Input: openaisdk.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("embed %d texts: %w", len(texts), err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: want %d, got %d", len(texts), len(resp.Data))
	}

	// The API reports each vector's position explicitly, so order by index
	// rather than trusting response order.
	vectors := make([][]float64, len(texts))
	for _, item := range resp.Data {
		i := int(item.Index)
		if i < 0 || i >= len(vectors) {
			return nil, fmt.Errorf("embedding index out of range: %d", i)
		}
		vectors[i] = item.Embedding
	}
	return vectors, nil
}
