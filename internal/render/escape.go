package render

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// EscapeText HTML-escapes user text. No raw user input may reach a rendered
// fragment without passing through here.
func EscapeText(s string) string {
	return html.EscapeString(s)
}

// MultilineHTML escapes user text and converts newlines to <br/> so
// free-text fields keep their line structure inside table cells and
// paragraphs.
func MultilineHTML(s string) string {
	escaped := EscapeText(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "<br/>")
	escaped = strings.ReplaceAll(escaped, "\n", "<br/>")
	return escaped
}

var stripPolicy = bluemonday.StrictPolicy()

// StripTags removes all markup from an HTML fragment, returning escaped
// text content only.
func StripTags(fragment string) string {
	return stripPolicy.Sanitize(fragment)
}

// fragmentPolicy is the restricted tag vocabulary every plan fragment must
// satisfy: headings, paragraphs, lists and tables, plus inline emphasis and
// line breaks. Anything else is dropped.
var fragmentPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"h1", "h2", "h3", "h4",
		"p", "br",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tr", "th", "td",
		"b", "strong", "em", "i",
	)
	return p
}()

// SanitizeFragment reduces arbitrary HTML to the restricted plan fragment
// vocabulary. Remote-generated output passes through here before preview or
// export.
func SanitizeFragment(fragment string) string {
	return fragmentPolicy.Sanitize(fragment)
}
