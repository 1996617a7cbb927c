package generator

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"

	"schemagen/internal/analyzer"
	"schemagen/internal/cache"
	"schemagen/internal/schema"
)

// Generator coordinates the cache, analyzer, and assembler behind the single
// operation page-rendering collaborators call. Its contract: Generate never
// fails; the worst case is the minimal fallback Article.
type Generator struct {
	cache    cache.Store
	analyzer *analyzer.Analyzer
	disabled bool
	group    singleflight.Group
}

// New creates a generator. When disabled is set, every call skips the cache
// and the LLM and returns the fallback schema directly.
func New(store cache.Store, a *analyzer.Analyzer, disabled bool) *Generator {
	return &Generator{cache: store, analyzer: a, disabled: disabled}
}

// Generate returns the JSON-LD for a page, reusing the cached graph when the
// content has not meaningfully changed. Concurrent calls for the same URL
// share one generation, so a page is never analyzed twice at once.
func (g *Generator) Generate(ctx context.Context, input *schema.PageInput) json.RawMessage {
	if g.disabled {
		return marshal(schema.Assemble(input, nil))
	}

	result, _, _ := g.group.Do(input.URL, func() (interface{}, error) {
		return g.generate(ctx, input), nil
	})
	return result.(json.RawMessage)
}

func (g *Generator) generate(ctx context.Context, input *schema.PageInput) json.RawMessage {
	if cached, ok := g.cache.Lookup(input.URL, input.DateModified, input.Content); ok {
		return cached
	}

	analysis, err := g.analyzer.Analyze(ctx, input.Title, input.URL, input.Content)
	if err != nil {
		if !errors.Is(err, analyzer.ErrUnavailable) {
			log.Printf("Warning: analysis failed for %s: %v", input.URL, err)
		}
		analysis = nil
	}

	result := marshal(schema.Assemble(input, analysis))

	// Best-effort: a failed write still returns the fresh schema.
	if err := g.cache.Put(input.URL, result, input.DateModified, input.Content); err != nil {
		log.Printf("Warning: failed to cache schema for %s: %v", input.URL, err)
	}

	return result
}

func marshal(graph any) json.RawMessage {
	data, err := json.Marshal(graph)
	if err != nil {
		log.Printf("Warning: failed to encode schema: %v", err)
		return json.RawMessage(`{"@context":"https://schema.org","@type":"Article"}`)
	}
	return data
}
