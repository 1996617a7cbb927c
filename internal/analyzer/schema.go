package analyzer

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// analysisSchemaJSON is the shape contract for model output. The prompt asks
// for bare JSON, but nothing stops a model from returning the wrong structure;
// anything that fails this schema is treated as "no analysis".
const analysisSchemaJSON = `{
  "type": "object",
  "required": ["contentType"],
  "properties": {
    "contentType": {"type": "string"},
    "mainEntities": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"},
          "type": {"type": "string"},
          "description": {"type": "string"}
        }
      }
    },
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["question", "answer"],
        "properties": {
          "question": {"type": "string"},
          "answer": {"type": "string"}
        }
      }
    },
    "steps": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text"],
        "properties": {
          "name": {"type": "string"},
          "text": {"type": "string"}
        }
      }
    },
    "definitions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["term", "definition"],
        "properties": {
          "term": {"type": "string"},
          "definition": {"type": "string"}
        }
      }
    },
    "keywords": {"type": "array", "items": {"type": "string"}},
    "estimatedReadTime": {"type": "string"},
    "hasTables": {"type": "boolean"},
    "hasImages": {"type": "boolean"},
    "hasComparisons": {"type": "boolean"}
  }
}`

var analysisSchema = mustCompileAnalysisSchema()

func mustCompileAnalysisSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(analysisSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid analysis schema: %v", err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("analysis.json", doc); err != nil {
		panic(fmt.Sprintf("failed to add analysis schema: %v", err))
	}

	schema, err := compiler.Compile("analysis.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile analysis schema: %v", err))
	}
	return schema
}

// validateAnalysis checks the raw model payload against the shape contract
// before it is decoded into a ContentAnalysis.
func validateAnalysis(payload string) error {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(payload))
	if err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	if err := analysisSchema.Validate(doc); err != nil {
		return err
	}
	return nil
}
