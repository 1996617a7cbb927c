package analyzer

import "strings"

// ContentType classifies what kind of page the model saw.
type ContentType string

const (
	TypeArticle       ContentType = "article"
	TypeHowTo         ContentType = "howto"
	TypeFAQ           ContentType = "faq"
	TypeDefinition    ContentType = "definition"
	TypeComparison    ContentType = "comparison"
	TypeGuide         ContentType = "guide"
	TypeDocumentation ContentType = "documentation"
)

// ParseContentType converts a model-supplied string to a ContentType,
// defaulting to article for anything unrecognized.
func ParseContentType(s string) ContentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "howto", "how-to", "how_to":
		return TypeHowTo
	case "faq":
		return TypeFAQ
	case "definition":
		return TypeDefinition
	case "comparison":
		return TypeComparison
	case "guide":
		return TypeGuide
	case "documentation", "docs":
		return TypeDocumentation
	default:
		return TypeArticle
	}
}

// Entity is a notable thing the content is about.
type Entity struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Question is one question/answer pair found in the content.
type Question struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Step is one instruction in a how-to sequence.
type Step struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Definition is a term the content defines.
type Definition struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ContentAnalysis is the model's structured interpretation of page content.
// It is produced fresh per cache miss and never persisted on its own.
type ContentAnalysis struct {
	ContentType       ContentType  `json:"contentType"`
	MainEntities      []Entity     `json:"mainEntities"`
	Questions         []Question   `json:"questions"`
	Steps             []Step       `json:"steps"`
	Definitions       []Definition `json:"definitions"`
	Keywords          []string     `json:"keywords"`
	EstimatedReadTime string       `json:"estimatedReadTime"`
	HasTables         bool         `json:"hasTables"`
	HasImages         bool         `json:"hasImages"`
	HasComparisons    bool         `json:"hasComparisons"`
}

// normalizeLists replaces nil slices with empty ones so downstream length
// checks never see a missing array.
func (a *ContentAnalysis) normalizeLists() {
	if a.MainEntities == nil {
		a.MainEntities = []Entity{}
	}
	if a.Questions == nil {
		a.Questions = []Question{}
	}
	if a.Steps == nil {
		a.Steps = []Step{}
	}
	if a.Definitions == nil {
		a.Definitions = []Definition{}
	}
	if a.Keywords == nil {
		a.Keywords = []string{}
	}
}
