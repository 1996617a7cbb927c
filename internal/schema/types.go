package schema

// Site identifies the publishing site in emitted nodes.
type Site struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// Image describes a page's featured image.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Alt    string `json:"alt,omitempty"`
}

// Breadcrumb is one entry of a page's ancestry trail, in order.
type Breadcrumb struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PageInput is one page's worth of CMS content plus site identity. URL is the
// canonical identity of the page and the cache key: the same URL with
// different content is a content change, never a new page.
type PageInput struct {
	URL           string       `json:"url"`
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	Excerpt       string       `json:"excerpt,omitempty"`
	Author        string       `json:"author,omitempty"`
	DatePublished string       `json:"datePublished"`
	DateModified  string       `json:"dateModified"`
	Category      string       `json:"category,omitempty"`
	Image         *Image       `json:"featuredImage,omitempty"`
	Breadcrumbs   []Breadcrumb `json:"breadcrumbs,omitempty"`
	Site          Site         `json:"site"`
}
