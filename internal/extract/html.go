package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// block-level closings become line breaks so per-line parsing still sees
	// one size per line after tags are stripped
	breakTagRe = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|li|tr|h[1-6]|table|ul|ol)>`)
	anyTagRe   = regexp.MustCompile(`<[^>]*>`)
)

// Flatten converts a product descriptionHtml into plain text, turning
// block-level boundaries into newlines. Invalid or tag-free input passes
// through unchanged.
func Flatten(html string) string {
	if !strings.Contains(html, "<") {
		return html
	}

	withBreaks := breakTagRe.ReplaceAllString(html, "\n")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(withBreaks))
	if err != nil {
		// fall back to a crude strip so extraction still gets a chance
		return anyTagRe.ReplaceAllString(withBreaks, " ")
	}
	return doc.Text()
}
