package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"schemagen/internal/content"
	"schemagen/internal/llm"
)

// ErrUnavailable signals that no LLM backend is configured. It is an expected
// steady state, not a failure: callers fall back to the minimal schema.
var ErrUnavailable = errors.New("llm client is not configured")

const systemPrompt = `You are a content analyzer for a structured-data (schema.org) generator. Analyze the provided page content and extract:
1. The content type: one of article, howto, faq, definition, comparison, guide, documentation
2. The main entities the content is about (people, organizations, products, concepts)
3. Question/answer pairs suitable for an FAQ block
4. Ordered steps, if the content is instructional
5. Terms the content explicitly defines
6. 5-10 keywords
7. An estimated reading time as an ISO-8601 duration (e.g. "PT5M")

Output ONLY a JSON object with this exact structure, no prose and no markdown fencing:
{
  "contentType": "article",
  "mainEntities": [{"name": "...", "type": "...", "description": "..."}],
  "questions": [{"question": "...", "answer": "..."}],
  "steps": [{"name": "...", "text": "..."}],
  "definitions": [{"term": "...", "definition": "..."}],
  "keywords": ["..."],
  "estimatedReadTime": "PT5M",
  "hasTables": false,
  "hasImages": false,
  "hasComparisons": false
}

Omit nothing: use empty arrays when a section does not apply. Only extract questions that are actually answered in the content. Only report steps when the content walks through a procedure.`

// Analyzer turns raw page content into a ContentAnalysis via the LLM.
type Analyzer struct {
	llm *llm.Client
}

// New creates an analyzer backed by the given client.
func New(client *llm.Client) *Analyzer {
	return &Analyzer{llm: client}
}

// Analyze classifies the page content. It returns ErrUnavailable without any
// network call when the client is disabled; every other error means the model
// produced nothing usable this time. Both are recoverable conditions.
func (a *Analyzer) Analyze(ctx context.Context, title, url, rawContent string) (*ContentAnalysis, error) {
	if !a.llm.Enabled() {
		return nil, ErrUnavailable
	}

	text := content.Truncate(content.Normalize(rawContent), content.MaxPromptChars)
	userPrompt := fmt.Sprintf("Analyze this content:\n\nTitle: %s\nURL: %s\n\nContent:\n%s", title, url, text)

	response := a.llm.Complete(ctx, userPrompt, systemPrompt, llm.Options{
		MaxTokens:   2000,
		Temperature: 0.2,
	})
	if response == "" {
		return nil, fmt.Errorf("no analysis returned for %s", url)
	}

	payload := extractJSON(response)

	if err := validateAnalysis(payload); err != nil {
		return nil, fmt.Errorf("analysis for %s failed validation: %w", url, err)
	}

	var analysis ContentAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis for %s: %w", url, err)
	}

	analysis.ContentType = ParseContentType(string(analysis.ContentType))
	analysis.normalizeLists()
	return &analysis, nil
}

// extractJSON recovers the JSON object from a model reply that may be wrapped
// in markdown fences or surrounding prose despite instructions.
func extractJSON(response string) string {
	s := strings.TrimSpace(response)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}

	if !strings.HasPrefix(s, "{") {
		start := strings.Index(s, "{")
		end := strings.LastIndex(s, "}")
		if start >= 0 && end > start {
			s = s[start : end+1]
		}
	}

	return s
}
