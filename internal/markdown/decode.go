// Package markdown decodes the HTML fragments carried by API descriptions
// into plain markdown suitable for annotation comments.
package markdown

import (
	"html"
	"regexp"
	"strings"
)

var (
	breakPattern     = regexp.MustCompile(`(?i)<br\s*/?>`)
	paragraphClose   = regexp.MustCompile(`(?i)</p>`)
	paragraphOpen    = regexp.MustCompile(`(?i)<p[^>]*>`)
	listItemPattern  = regexp.MustCompile(`(?i)<li[^>]*>`)
	listItemClose    = regexp.MustCompile(`(?i)</li>`)
	codePattern      = regexp.MustCompile(`(?is)<code[^>]*>(.*?)</code>`)
	boldPattern      = regexp.MustCompile(`(?is)<(?:b|strong)>(.*?)</(?:b|strong)>`)
	italicPattern    = regexp.MustCompile(`(?is)<(?:i|em)>(.*?)</(?:i|em)>`)
	remainingTags    = regexp.MustCompile(`(?s)<[^>]*>`)
	blankRunPattern  = regexp.MustCompile(`\n{3,}`)
	trailingSpaces   = regexp.MustCompile(`[ \t]+\n`)
)

// Decode converts an HTML description fragment to markdown text. Unknown
// tags are stripped rather than escaped; the result never gains content the
// input did not carry.
func Decode(s string) string {
	if s == "" {
		return ""
	}

	s = breakPattern.ReplaceAllString(s, "\n")
	s = paragraphClose.ReplaceAllString(s, "\n\n")
	s = paragraphOpen.ReplaceAllString(s, "")
	s = listItemPattern.ReplaceAllString(s, "- ")
	s = listItemClose.ReplaceAllString(s, "\n")
	s = codePattern.ReplaceAllString(s, "`$1`")
	s = boldPattern.ReplaceAllString(s, "**$1**")
	s = italicPattern.ReplaceAllString(s, "*$1*")
	s = remainingTags.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = trailingSpaces.ReplaceAllString(s, "\n")
	s = blankRunPattern.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// FirstLine returns the first non-empty line of a decoded description,
// used for single-line annotation briefs.
func FirstLine(s string) string {
	for _, line := range strings.Split(Decode(s), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
