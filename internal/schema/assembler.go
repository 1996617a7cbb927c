package schema

import (
	"fmt"
	"strings"

	"schemagen/internal/analyzer"
)

const schemaContext = "https://schema.org"

// Assemble deterministically maps an analysis plus page metadata into a
// schema.org graph. A nil analysis yields the minimal fallback: a flat
// Article object without a @graph wrapper. Node order and @id values are
// fixed so regenerating the same input diffs cleanly.
func Assemble(input *PageInput, analysis *analyzer.ContentAnalysis) any {
	if analysis == nil {
		return fallbackArticle(input)
	}

	var nodes []any

	if analysis.ContentType == analyzer.TypeHowTo && len(analysis.Steps) > 0 {
		nodes = append(nodes, howToNode(input, analysis))
	} else {
		nodes = append(nodes, articleNode(input, analysis))
	}

	if len(analysis.Questions) > 0 {
		nodes = append(nodes, faqNode(input, analysis.Questions))
	}

	for i, def := range analysis.Definitions {
		nodes = append(nodes, &DefinedTerm{
			Type:        "DefinedTerm",
			ID:          fmt.Sprintf("%s#term-%d", input.URL, i),
			Name:        def.Term,
			Description: def.Definition,
		})
	}

	nodes = append(nodes, webPageNode(input))
	nodes = append(nodes, organizationNode(input.Site))

	return &Graph{Context: schemaContext, Nodes: nodes}
}

// fallbackArticle is the degraded-but-valid output used when no analysis is
// available: the page always ships some structured data.
func fallbackArticle(input *PageInput) *Article {
	article := &Article{
		Context:       schemaContext,
		Type:          "Article",
		Headline:      input.Title,
		Description:   input.Excerpt,
		DatePublished: input.DatePublished,
		DateModified:  input.DateModified,
		Publisher:     inlineOrganization(input.Site),
	}
	if input.Author != "" {
		article.Author = &Person{Type: "Person", Name: input.Author}
	}
	return article
}

func articleNode(input *PageInput, analysis *analyzer.ContentAnalysis) *Article {
	article := &Article{
		Type:             "Article",
		ID:               input.URL + "#article",
		Headline:         input.Title,
		Description:      description(input, analysis),
		DatePublished:    input.DatePublished,
		DateModified:     input.DateModified,
		Publisher:        &Ref{ID: input.Site.URL + "#organization"},
		MainEntityOfPage: &Ref{ID: input.URL},
		ArticleSection:   input.Category,
		Keywords:         strings.Join(analysis.Keywords, ", "),
		TimeRequired:     analysis.EstimatedReadTime,
	}

	if input.Image != nil {
		article.Image = imageObject(input.Image)
	}
	if input.Author != "" {
		article.Author = &Person{Type: "Person", Name: input.Author}
	}
	for _, entity := range analysis.MainEntities {
		article.About = append(article.About, Thing{
			Type:        entityType(entity.Type),
			Name:        entity.Name,
			Description: entity.Description,
		})
	}

	return article
}

func howToNode(input *PageInput, analysis *analyzer.ContentAnalysis) *HowTo {
	howTo := &HowTo{
		Type:          "HowTo",
		ID:            input.URL + "#howto",
		Name:          input.Title,
		Description:   description(input, analysis),
		DatePublished: input.DatePublished,
		DateModified:  input.DateModified,
		TotalTime:     analysis.EstimatedReadTime,
	}
	if input.Image != nil {
		howTo.Image = imageObject(input.Image)
	}
	for i, step := range analysis.Steps {
		howTo.Step = append(howTo.Step, HowToStep{
			Type:     "HowToStep",
			Position: i + 1,
			Name:     step.Name,
			Text:     step.Text,
		})
	}
	return howTo
}

func faqNode(input *PageInput, questions []analyzer.Question) *FAQPage {
	faq := &FAQPage{
		Type: "FAQPage",
		ID:   input.URL + "#faq",
	}
	for _, q := range questions {
		faq.MainEntity = append(faq.MainEntity, QuestionNode{
			Type:           "Question",
			Name:           q.Question,
			AcceptedAnswer: Answer{Type: "Answer", Text: q.Answer},
		})
	}
	return faq
}

func webPageNode(input *PageInput) *WebPage {
	page := &WebPage{
		Type:     "WebPage",
		ID:       input.URL,
		URL:      input.URL,
		Name:     input.Title,
		IsPartOf: &Ref{ID: input.Site.URL + "#website"},
	}
	if len(input.Breadcrumbs) > 0 {
		trail := &BreadcrumbList{Type: "BreadcrumbList"}
		for i, crumb := range input.Breadcrumbs {
			trail.ItemListElement = append(trail.ItemListElement, ListItem{
				Type:     "ListItem",
				Position: i + 1,
				Name:     crumb.Name,
				Item:     crumb.URL,
			})
		}
		page.Breadcrumb = trail
	}
	return page
}

func organizationNode(site Site) *Organization {
	org := &Organization{
		Type: "Organization",
		ID:   site.URL + "#organization",
		Name: site.Name,
		URL:  site.URL,
	}
	if site.LogoURL != "" {
		org.Logo = &ImageObject{Type: "ImageObject", URL: site.LogoURL}
	}
	return org
}

func inlineOrganization(site Site) *Organization {
	org := &Organization{
		Type: "Organization",
		Name: site.Name,
		URL:  site.URL,
	}
	if site.LogoURL != "" {
		org.Logo = &ImageObject{Type: "ImageObject", URL: site.LogoURL}
	}
	return org
}

func imageObject(img *Image) *ImageObject {
	return &ImageObject{
		Type:    "ImageObject",
		URL:     img.URL,
		Width:   img.Width,
		Height:  img.Height,
		Caption: img.Alt,
	}
}

// description prefers the page excerpt, falling back to a sentence built from
// the extracted entities so the primary node is never without one.
func description(input *PageInput, analysis *analyzer.ContentAnalysis) string {
	if input.Excerpt != "" {
		return input.Excerpt
	}

	var names []string
	for _, entity := range analysis.MainEntities {
		if entity.Name != "" {
			names = append(names, entity.Name)
		}
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("An article about %s.", names[0])
	default:
		return fmt.Sprintf("An article about %s and %s.",
			strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
	}
}

// entityType maps a model-supplied entity type to a schema.org type.
func entityType(typeStr string) string {
	switch strings.ToLower(strings.TrimSpace(typeStr)) {
	case "person":
		return "Person"
	case "organization", "org", "company":
		return "Organization"
	case "product", "app", "software":
		return "Product"
	case "place", "location":
		return "Place"
	case "event":
		return "Event"
	default:
		return "Thing"
	}
}
