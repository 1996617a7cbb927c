package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"schemagen/internal/analyzer"
	"schemagen/internal/cache"
	"schemagen/internal/generator"
	"schemagen/internal/llm"
	"schemagen/internal/schema"
)

func main() {
	var (
		help          bool
		pagesDir      string
		outDir        string
		cacheDir      string
		boltPath      string
		openrouterKey string
		ollamaURL     string
		model         string
		disable       bool
		clearCache    bool
		workers       int
	)

	flag.BoolVar(&help, "help", false, "Show help message")
	flag.BoolVar(&help, "h", false, "Show help message (shorthand)")
	flag.StringVar(&pagesDir, "pages", "./pages", "Directory of page descriptor JSON files")
	flag.StringVar(&outDir, "out", "./out", "Output directory for .jsonld files")
	flag.StringVar(&cacheDir, "cache", "./.schemagen-cache", "Cache directory for generated schemas")
	flag.StringVar(&boltPath, "bolt", "", "Use a bbolt file at this path instead of the directory cache")
	flag.StringVar(&openrouterKey, "openrouter-key", os.Getenv("OPENROUTER_API_KEY"), "OpenRouter API key (can also use OPENROUTER_API_KEY env var)")
	flag.StringVar(&ollamaURL, "ollama-url", os.Getenv("OLLAMA_URL"), "Ollama server URL for local generation (can also use OLLAMA_URL env var)")
	flag.StringVar(&model, "model", "", "Model identifier (provider default when empty)")
	flag.BoolVar(&disable, "disable", os.Getenv("SCHEMAGEN_DISABLE") != "", "Skip analysis and emit fallback schemas only (can also set SCHEMAGEN_DISABLE)")
	flag.BoolVar(&clearCache, "clear-cache", false, "Delete all cached schemas before generating")
	flag.IntVar(&workers, "workers", 4, "Number of pages to process concurrently")
	flag.Parse()

	if help {
		fmt.Println("schemagen - schema.org JSON-LD generator")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  %s [flags]\n", os.Args[0])
		fmt.Println()
		fmt.Println("Flags:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Environment Variables:")
		fmt.Println("  OPENROUTER_API_KEY   OpenRouter API key")
		fmt.Println("  OLLAMA_URL           Ollama server URL")
		fmt.Println("  SCHEMAGEN_DISABLE    Disable LLM analysis entirely")
		os.Exit(0)
	}

	store := openStore(boltPath, cacheDir)
	if closer, ok := store.(io.Closer); ok {
		defer closer.Close()
	}

	if clearCache {
		if err := store.Clear(); err != nil {
			log.Fatalf("Failed to clear cache: %v", err)
		}
		log.Println("Cache cleared")
	}

	client := buildClient(openrouterKey, ollamaURL, model)
	gen := generator.New(store, analyzer.New(client), disable)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	entries, err := os.ReadDir(pagesDir)
	if err != nil {
		log.Fatalf("Failed to read pages directory: %v", err)
	}

	group, ctx := errgroup.WithContext(context.Background())
	group.SetLimit(workers)

	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		processed++

		name := entry.Name()
		group.Go(func() error {
			if err := processPage(ctx, gen, filepath.Join(pagesDir, name), outDir); err != nil {
				log.Printf("Warning: skipping %s: %v", name, err)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
	log.Printf("Generated schemas for %d pages", processed)
}

// openStore selects the cache backend: a bbolt file when requested, otherwise
// one JSON file per page in a directory.
func openStore(boltPath, cacheDir string) cache.Store {
	if boltPath != "" {
		store, err := cache.OpenBolt(boltPath)
		if err != nil {
			log.Fatalf("Failed to open cache database: %v", err)
		}
		return store
	}

	store, err := cache.NewFileStore(cacheDir)
	if err != nil {
		log.Fatalf("Failed to open cache directory: %v", err)
	}
	return store
}

// buildClient picks an LLM backend from the configured credentials. Having
// none is a supported mode: every page gets the minimal fallback schema.
func buildClient(openrouterKey, ollamaURL, model string) *llm.Client {
	if openrouterKey != "" {
		log.Println("Using OpenRouter for content analysis")
		return llm.NewClient(llm.NewOpenRouter(openrouterKey, model))
	}

	if ollamaURL != "" {
		provider, err := llm.NewOllama(ollamaURL, model)
		if err != nil {
			log.Printf("Warning: failed to initialize Ollama client: %v", err)
			return llm.NewDisabledClient()
		}
		log.Println("Using Ollama for content analysis")
		return llm.NewClient(provider)
	}

	log.Println("No LLM credentials configured; emitting fallback schemas only")
	return llm.NewDisabledClient()
}

func processPage(ctx context.Context, gen *generator.Generator, path, outDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read page descriptor: %w", err)
	}

	var input schema.PageInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("invalid page descriptor: %w", err)
	}
	if input.URL == "" {
		return fmt.Errorf("page descriptor is missing a url")
	}

	result := gen.Generate(ctx, &input)

	outName := strings.TrimSuffix(filepath.Base(path), ".json") + ".jsonld"
	if err := os.WriteFile(filepath.Join(outDir, outName), result, 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	return nil
}
