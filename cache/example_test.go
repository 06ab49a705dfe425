package cache_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/semcache/cache"
	"github.com/jonwraymond/semcache/embedding"
)

// exampleEmbedder maps a few known phrasings to fixed vectors so the
// examples run without a real model. Paraphrases share a direction.
func exampleEmbedder() embedding.Embedder {
	vectors := map[string][]float32{
		"what is the capital of france?":  {1, 0},
		"capital city of france?":         {1, 0},
		"how do goroutines get scheduled": {0, 1},
	}
	e, _ := embedding.NewFunc(2, func(_ context.Context, text string) ([]float32, error) {
		if v, ok := vectors[text]; ok {
			return v, nil
		}
		return []float32{0, 0}, nil
	})
	return e
}

func ExampleNew() {
	c, err := cache.New(exampleEmbedder(), cache.WithMaxSize(100))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	stats := c.Stats(context.Background())
	fmt.Println("entries:", stats.Entries)
	fmt.Println("max size:", stats.MaxSize)
	fmt.Println("threshold:", stats.SimilarityThreshold)
	// Output:
	// entries: 0
	// max size: 100
	// threshold: 0.95
}

func ExampleCache_Lookup() {
	c, _ := cache.New(exampleEmbedder())
	ctx := context.Background()
	params := cache.Params{Temperature: 0.2, MaxTokens: 256}

	c.Store(ctx, "What is the capital of France?", params, "Paris.")

	// A paraphrase with the same parameters hits.
	response, ok := c.Lookup(ctx, "Capital city of France?", params)
	fmt.Println("paraphrase hit:", ok, response)

	// The same text at a different temperature misses.
	_, ok = c.Lookup(ctx, "What is the capital of France?", cache.Params{Temperature: 0.9, MaxTokens: 256})
	fmt.Println("different params hit:", ok)
	// Output:
	// paraphrase hit: true Paris.
	// different params hit: false
}

func ExampleNewMiddleware() {
	c, _ := cache.New(exampleEmbedder())
	mw := cache.NewMiddleware(c)
	ctx := context.Background()
	params := cache.Params{Temperature: 0.2, MaxTokens: 256}

	computeCalls := 0
	generate := func(_ context.Context, _ string, _ cache.Params) (string, error) {
		computeCalls++
		return "They are multiplexed onto OS threads.", nil
	}

	_, _ = mw.Execute(ctx, "how do goroutines get scheduled", params, generate)
	_, _ = mw.Execute(ctx, "how do goroutines get scheduled", params, generate)

	fmt.Println("compute calls:", computeCalls)
	// Output:
	// compute calls: 1
}
