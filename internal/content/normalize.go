package content

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxPromptChars bounds how much normalized content is sent to the model.
const MaxPromptChars = 15000

var (
	scriptRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// Normalize reduces raw page HTML to the plain text the model would see:
// script and style blocks are dropped, remaining tags stripped, and runs of
// whitespace collapsed to a single space. The cache fingerprint is computed
// over this same text, so cosmetic markup edits do not invalidate entries.
func Normalize(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return normalizeFallback(html)
	}
	doc.Find("script, style").Remove()
	return collapse(doc.Text())
}

// normalizeFallback strips markup with regular expressions when the HTML is
// too mangled for the parser.
func normalizeFallback(html string) string {
	html = scriptRe.ReplaceAllString(html, "")
	html = styleRe.ReplaceAllString(html, "")
	html = tagRe.ReplaceAllString(html, " ")
	html = decodeEntities(html)
	return collapse(html)
}

func collapse(text string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// decodeEntities handles the entities that show up in practice in CMS output.
func decodeEntities(text string) string {
	replacements := []struct{ from, to string }{
		{"&nbsp;", " "},
		{"&amp;", "&"},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&quot;", "\""},
		{"&#39;", "'"},
		{"&rsquo;", "'"},
		{"&lsquo;", "'"},
		{"&rdquo;", "\""},
		{"&ldquo;", "\""},
	}
	for _, r := range replacements {
		text = strings.ReplaceAll(text, r.from, r.to)
	}
	return text
}

// Truncate cuts text to at most max characters, marking the cut so the model
// knows the content continues.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "\n[content truncated]"
}
