package schema

// JSON-LD node types emitted into the @graph. Optional fields carry omitempty
// so an absent value stays absent in the output rather than becoming null.

// Graph is the JSON-LD envelope: an ordered list of typed nodes.
type Graph struct {
	Context string `json:"@context"`
	Nodes   []any  `json:"@graph"`
}

// Ref is an @id reference to another node in the graph.
type Ref struct {
	ID string `json:"@id"`
}

// ImageObject is a schema.org image node.
type ImageObject struct {
	Type    string `json:"@type"`
	URL     string `json:"url"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Person is a schema.org person node.
type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// Organization is a schema.org organization node.
type Organization struct {
	Type string       `json:"@type"`
	ID   string       `json:"@id,omitempty"`
	Name string       `json:"name"`
	URL  string       `json:"url,omitempty"`
	Logo *ImageObject `json:"logo,omitempty"`
}

// Thing is a generic typed entity used for an article's "about" entries.
type Thing struct {
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Article is the primary node for non-instructional content. It doubles as
// the flat fallback object, in which case Context is set and Publisher holds
// an inline Organization instead of a Ref.
type Article struct {
	Context          string       `json:"@context,omitempty"`
	Type             string       `json:"@type"`
	ID               string       `json:"@id,omitempty"`
	Headline         string       `json:"headline"`
	Description      string       `json:"description,omitempty"`
	Image            *ImageObject `json:"image,omitempty"`
	DatePublished    string       `json:"datePublished,omitempty"`
	DateModified     string       `json:"dateModified,omitempty"`
	Author           *Person      `json:"author,omitempty"`
	Publisher        any          `json:"publisher,omitempty"`
	MainEntityOfPage *Ref         `json:"mainEntityOfPage,omitempty"`
	ArticleSection   string       `json:"articleSection,omitempty"`
	Keywords         string       `json:"keywords,omitempty"`
	About            []Thing      `json:"about,omitempty"`
	TimeRequired     string       `json:"timeRequired,omitempty"`
}

// HowToStep is one ordered step of a HowTo node.
type HowToStep struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name,omitempty"`
	Text     string `json:"text"`
}

// HowTo is the primary node for instructional content.
type HowTo struct {
	Type          string       `json:"@type"`
	ID            string       `json:"@id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Image         *ImageObject `json:"image,omitempty"`
	DatePublished string       `json:"datePublished,omitempty"`
	DateModified  string       `json:"dateModified,omitempty"`
	Step          []HowToStep  `json:"step"`
	TotalTime     string       `json:"totalTime,omitempty"`
}

// Answer is the accepted answer of a Question node.
type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// QuestionNode is one question of a FAQPage.
type QuestionNode struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

// FAQPage groups the question/answer pairs extracted from the content.
type FAQPage struct {
	Type       string         `json:"@type"`
	ID         string         `json:"@id"`
	MainEntity []QuestionNode `json:"mainEntity"`
}

// DefinedTerm is one term the content defines.
type DefinedTerm struct {
	Type        string `json:"@type"`
	ID          string `json:"@id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListItem is one entry of a BreadcrumbList.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// BreadcrumbList carries a page's ancestry trail.
type BreadcrumbList struct {
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// WebPage describes the page itself and links it to the site.
type WebPage struct {
	Type       string          `json:"@type"`
	ID         string          `json:"@id"`
	URL        string          `json:"url"`
	Name       string          `json:"name,omitempty"`
	IsPartOf   *Ref            `json:"isPartOf,omitempty"`
	Breadcrumb *BreadcrumbList `json:"breadcrumb,omitempty"`
}
