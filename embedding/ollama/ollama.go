// Package ollama provides an embedding.Embedder backed by a local or
// remote Ollama server.
package ollama

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"

	"github.com/jonwraymond/semcache/embedding"
)

// Embedder generates embeddings through the Ollama embed endpoint.
type Embedder struct {
	client *api.Client
	model  string
	dims   int
}

// New creates an Ollama embedder using the environment-configured client
// (OLLAMA_HOST, defaulting to localhost:11434).
func New(model string, dims int) (*Embedder, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("ollama: failed to create client: %w", err)
	}
	return NewWithClient(client, model, dims)
}

// NewWithClient creates an Ollama embedder with an injected API client.
func NewWithClient(client *api.Client, model string, dims int) (*Embedder, error) {
	if dims <= 0 {
		return nil, embedding.ErrInvalidDimensions
	}
	return &Embedder{client: client, model: model, dims: dims}, nil
}

// Embed implements embedding.Embedder.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Embed(ctx, &api.EmbedRequest{
		Model: e.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama: embedding request failed: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, embedding.ErrEmptyResponse
	}
	return resp.Embeddings[0], nil
}

// Dimensions implements embedding.Embedder.
func (e *Embedder) Dimensions() int {
	return e.dims
}

// Ensure Embedder implements embedding.Embedder
var _ embedding.Embedder = (*Embedder)(nil)
