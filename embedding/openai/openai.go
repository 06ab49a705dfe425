// Package openai provides an embedding.Embedder backed by the OpenAI
// embeddings API (or any OpenAI-compatible endpoint via WithBaseURL).
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/jonwraymond/semcache/embedding"
)

// Embedder generates embeddings through the OpenAI API.
type Embedder struct {
	client openai.Client
	model  string
	dims   int
}

// New creates an OpenAI embedder for the given model and dimensionality.
// opts are passed to the underlying client (API key, base URL, etc.);
// by default the client reads OPENAI_API_KEY from the environment.
func New(model string, dims int, opts ...option.RequestOption) (*Embedder, error) {
	if dims <= 0 {
		return nil, embedding.ErrInvalidDimensions
	}
	return &Embedder{
		client: openai.NewClient(opts...),
		model:  model,
		dims:   dims,
	}, nil
}

// Embed implements embedding.Embedder.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:          openai.EmbeddingModel(e.model),
		Input:          openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Dimensions:     openai.Int(int64(e.dims)),
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, embedding.ErrEmptyResponse
	}

	src := resp.Data[0].Embedding
	vec := make([]float32, len(src))
	for i, v := range src {
		vec[i] = float32(v)
	}
	return vec, nil
}

// Dimensions implements embedding.Embedder.
func (e *Embedder) Dimensions() int {
	return e.dims
}

// Ensure Embedder implements embedding.Embedder
var _ embedding.Embedder = (*Embedder)(nil)
