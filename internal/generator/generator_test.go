package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"schemagen/internal/analyzer"
	"schemagen/internal/cache"
	"schemagen/internal/llm"
	"schemagen/internal/schema"
)

const analysisReply = `{
  "contentType": "article",
  "mainEntities": [{"name": "Example App", "type": "product"}],
  "questions": [{"question": "Is it free?", "answer": "Yes."}],
  "steps": [],
  "definitions": [],
  "keywords": ["example"],
  "estimatedReadTime": "PT2M",
  "hasTables": false,
  "hasImages": false,
  "hasComparisons": false
}`

type countingProvider struct {
	mu    sync.Mutex
	calls int
	gate  chan struct{}
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Complete(ctx context.Context, systemPrompt, userPrompt string, opts llm.Options) (string, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if p.gate != nil {
		select {
		case <-p.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return analysisReply, nil
}

func (p *countingProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// spyStore records every call so tests can assert the cache was bypassed.
type spyStore struct {
	lookups int
	puts    int
}

func (s *spyStore) Lookup(url, contentModified string, pageContent string) (json.RawMessage, bool) {
	s.lookups++
	return nil, false
}

func (s *spyStore) Put(url string, schemaJSON json.RawMessage, contentModified string, pageContent string) error {
	s.puts++
	return nil
}

func (s *spyStore) Clear() error { return nil }

// failingStore simulates a broken cache backend.
type failingStore struct{}

func (failingStore) Lookup(url, contentModified string, pageContent string) (json.RawMessage, bool) {
	return nil, false
}

func (failingStore) Put(url string, schemaJSON json.RawMessage, contentModified string, pageContent string) error {
	return errors.New("disk full")
}

func (failingStore) Clear() error { return nil }

func testInput() *schema.PageInput {
	return &schema.PageInput{
		URL:           "https://example.com/blog/post",
		Title:         "A Post",
		Content:       "<p>Original content.</p>",
		DatePublished: "2026-01-05T10:00:00Z",
		DateModified:  "2026-01-10T09:00:00Z",
		Site:          schema.Site{Name: "Example Apps", URL: "https://example.com"},
	}
}

func fileStore(t *testing.T) cache.Store {
	t.Helper()
	store, err := cache.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return store
}

func TestGenerateIdempotentWithWarmCache(t *testing.T) {
	provider := &countingProvider{}
	gen := New(fileStore(t), analyzer.New(llm.NewClient(provider)), false)

	first := gen.Generate(context.Background(), testInput())
	second := gen.Generate(context.Background(), testInput())

	if provider.count() != 1 {
		t.Errorf("LLM called %d times, want 1 (second call must hit cache)", provider.count())
	}
	if !bytes.Equal(first, second) {
		t.Error("cached result must be byte-identical to the original")
	}
}

func TestGenerateRegeneratesOnContentChange(t *testing.T) {
	provider := &countingProvider{}
	gen := New(fileStore(t), analyzer.New(llm.NewClient(provider)), false)

	gen.Generate(context.Background(), testInput())

	changed := testInput()
	changed.Content = "<p>Rewritten content.</p>" // dateModified unchanged
	gen.Generate(context.Background(), changed)

	if provider.count() != 2 {
		t.Errorf("LLM called %d times, want 2 after content change", provider.count())
	}
}

func TestGenerateRegeneratesOnNewerDate(t *testing.T) {
	provider := &countingProvider{}
	gen := New(fileStore(t), analyzer.New(llm.NewClient(provider)), false)

	gen.Generate(context.Background(), testInput())

	// The fingerprint alone would still match, so build a case where only the
	// timestamp signals the change.
	updated := testInput()
	updated.DateModified = "2026-02-01T09:00:00Z"
	gen.Generate(context.Background(), updated)

	if provider.count() != 2 {
		t.Errorf("LLM called %d times, want 2 after newer dateModified", provider.count())
	}
}

func TestGenerateDisabledBypassesCacheAndLLM(t *testing.T) {
	provider := &countingProvider{}
	store := &spyStore{}
	gen := New(store, analyzer.New(llm.NewClient(provider)), true)

	result := gen.Generate(context.Background(), testInput())

	if provider.count() != 0 {
		t.Error("disabled generator must not call the LLM")
	}
	if store.lookups != 0 || store.puts != 0 {
		t.Errorf("disabled generator must not touch the cache (lookups=%d puts=%d)", store.lookups, store.puts)
	}

	var flat map[string]any
	if err := json.Unmarshal(result, &flat); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, hasGraph := flat["@graph"]; hasGraph {
		t.Error("disabled output must be the flat fallback, not a graph")
	}
	if flat["@type"] != "Article" {
		t.Errorf("@type = %v, want Article", flat["@type"])
	}
}

func TestGenerateNoCredentialFallback(t *testing.T) {
	gen := New(fileStore(t), analyzer.New(llm.NewDisabledClient()), false)

	result := gen.Generate(context.Background(), testInput())

	var flat map[string]any
	if err := json.Unmarshal(result, &flat); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if flat["headline"] != "A Post" {
		t.Errorf("headline = %v", flat["headline"])
	}
	if flat["datePublished"] != "2026-01-05T10:00:00Z" || flat["dateModified"] != "2026-01-10T09:00:00Z" {
		t.Error("fallback must carry both dates")
	}
	publisher, ok := flat["publisher"].(map[string]any)
	if !ok || publisher["name"] != "Example Apps" {
		t.Errorf("publisher = %v, want site name", flat["publisher"])
	}
}

func TestGenerateSurvivesStoreFailure(t *testing.T) {
	provider := &countingProvider{}
	gen := New(failingStore{}, analyzer.New(llm.NewClient(provider)), false)

	result := gen.Generate(context.Background(), testInput())
	if len(result) == 0 {
		t.Fatal("store failure must not affect the returned schema")
	}

	var graph map[string]any
	if err := json.Unmarshal(result, &graph); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := graph["@graph"]; !ok {
		t.Error("expected full graph despite cache write failure")
	}
}

func TestGenerateTimeoutDegradesToFallback(t *testing.T) {
	provider := &countingProvider{gate: make(chan struct{})} // never released
	client := llm.NewClient(provider).WithTimeout(20 * time.Millisecond)
	gen := New(fileStore(t), analyzer.New(client), false)

	result := gen.Generate(context.Background(), testInput())

	var flat map[string]any
	if err := json.Unmarshal(result, &flat); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, hasGraph := flat["@graph"]; hasGraph {
		t.Error("timed-out analysis must degrade to the flat fallback")
	}
	if flat["headline"] != "A Post" {
		t.Errorf("headline = %v", flat["headline"])
	}
}

func TestGenerateDeduplicatesConcurrentSameURL(t *testing.T) {
	gate := make(chan struct{})
	provider := &countingProvider{gate: gate}
	gen := New(fileStore(t), analyzer.New(llm.NewClient(provider)), false)

	var wg sync.WaitGroup
	results := make([]json.RawMessage, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = gen.Generate(context.Background(), testInput())
		}(i)
	}

	time.Sleep(50 * time.Millisecond) // let both calls reach the flight group
	close(gate)
	wg.Wait()

	if provider.count() != 1 {
		t.Errorf("LLM called %d times, want 1 for concurrent same-URL calls", provider.count())
	}
	if !bytes.Equal(results[0], results[1]) {
		t.Error("concurrent callers must receive the same schema")
	}
}
