// Package textutil holds the string shaping shared by the context builder,
// validator, fallback engine, and response cache.
package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const Ellipsis = "..."

var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "td": true, "th": true, "section": true, "article": true,
	"header": true, "footer": true, "blockquote": true, "pre": true,
}

// StripHTML returns the text content of s with tags removed and entities decoded.
// Script and style bodies are dropped; block elements become whitespace.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				skip++
			}
			if blockTags[tag] {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			if blockTags[tag] {
				b.WriteByte(' ')
			}
		}
	}
}

// CollapseWhitespace replaces runs of whitespace with a single space and trims.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Clean strips HTML and collapses whitespace.
func Clean(s string) string {
	return CollapseWhitespace(StripHTML(s))
}

// NormalizeMessage lowercases, collapses whitespace and trims.
func NormalizeMessage(s string) string {
	return strings.ToLower(CollapseWhitespace(s))
}

// Truncate hard-cuts s to limit runes, appending an ellipsis when cut.
// The ellipsis counts toward the limit.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	if limit <= len(Ellipsis) {
		return string(r[:limit])
	}
	return strings.TrimRight(string(r[:limit-len(Ellipsis)]), " ") + Ellipsis
}

// TruncateAtSentence cuts s to at most limit runes. When a sentence end
// ('.', '?' or '!') falls within the final 20% of the window the cut is made
// right after it; otherwise the text is hard-truncated with an ellipsis.
func TruncateAtSentence(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	window := r[:limit]
	floor := limit - limit/5
	for i := len(window) - 1; i >= floor-1 && i >= 0; i-- {
		switch window[i] {
		case '.', '?', '!':
			return string(window[:i+1])
		}
	}
	return Truncate(s, limit)
}

var titleCaser = cases.Title(language.English)

// SectionTitle turns a section key such as "company_info" into "Company Info".
func SectionTitle(section string) string {
	return titleCaser.String(strings.ReplaceAll(strings.TrimSpace(section), "_", " "))
}
