// Package markdown converts captured highlight HTML into a lightweight
// Markdown rendition. It is a fixed rule chain over the handful of inline
// and block elements a highlight snippet can contain, not a general
// converter: unknown tags are stripped and their text kept.
package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	headingRe  = regexp.MustCompile(`(?is)<h([1-6])[^>]*>(.*?)</h[1-6]>`)
	strongRe   = regexp.MustCompile(`(?is)<(strong|b)[^>]*>(.*?)</(strong|b)>`)
	emRe       = regexp.MustCompile(`(?is)<(em|i)[^>]*>(.*?)</(em|i)>`)
	linkRe     = regexp.MustCompile(`(?is)<a[^>]*href="([^"]*)"[^>]*>(.*?)</a>`)
	brRe       = regexp.MustCompile(`(?i)<br\s*/?>`)
	paraRe     = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	tagRe      = regexp.MustCompile(`<[^>]*>`)
	blankRunRe = regexp.MustCompile(`\n\s*\n`)
)

// FromHTML rewrites an HTML snippet as Markdown. The rules run in a fixed
// order so that block structure (headings, paragraphs) is resolved before
// the generic tag strip removes everything else.
func FromHTML(html string) string {
	s := headingRe.ReplaceAllStringFunc(html, func(m string) string {
		sub := headingRe.FindStringSubmatch(m)
		level, _ := strconv.Atoi(sub[1])
		return strings.Repeat("#", level) + " " + strings.TrimSpace(sub[2])
	})
	s = strongRe.ReplaceAllString(s, "**$2**")
	s = emRe.ReplaceAllString(s, "*$2*")
	s = linkRe.ReplaceAllString(s, "[$2]($1)")
	s = brRe.ReplaceAllString(s, "\n")
	s = paraRe.ReplaceAllString(s, "$1\n\n")
	s = tagRe.ReplaceAllString(s, "")
	s = blankRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
