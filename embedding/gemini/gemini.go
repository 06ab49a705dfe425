// Package gemini provides an embedding.Embedder backed by the Gemini API.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/jonwraymond/semcache/embedding"
)

// Embedder generates embeddings through the Gemini embed-content endpoint.
type Embedder struct {
	client *genai.Client
	model  string
	dims   int
}

// New creates a Gemini embedder. Credentials come from the environment
// (GEMINI_API_KEY / GOOGLE_API_KEY) via the genai client defaults.
func New(ctx context.Context, model string, dims int) (*Embedder, error) {
	if dims <= 0 {
		return nil, embedding.ErrInvalidDimensions
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	return &Embedder{client: client, model: model, dims: dims}, nil
}

// Embed implements embedding.Embedder.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	dims := int32(e.dims)
	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), &genai.EmbedContentConfig{
		OutputDimensionality: &dims,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: embedding request failed: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, embedding.ErrEmptyResponse
	}
	return resp.Embeddings[0].Values, nil
}

// Dimensions implements embedding.Embedder.
func (e *Embedder) Dimensions() int {
	return e.dims
}

// Ensure Embedder implements embedding.Embedder
var _ embedding.Embedder = (*Embedder)(nil)
