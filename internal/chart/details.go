package chart

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// detail is one "Label: content" bullet rendered under the table
type detail struct {
	Label   string
	Content string
}

type detailPattern struct {
	label string
	re    *regexp.Regexp
	// skipPrefixes filters matches whose label is really part of a longer
	// phrase (plain "length:" must not swallow "sleeve length:")
	skipPrefixes []string
}

var detailPatterns = []detailPattern{
	{label: "Features:", re: regexp.MustCompile(`features:\s*([^\n]*)`)},
	{label: "Sheer:", re: regexp.MustCompile(`sheer:\s*([^\n]*)`)},
	{label: "Stretch:", re: regexp.MustCompile(`stretch:\s*([^\n]*)`)},
	{label: "Material:", re: regexp.MustCompile(`(?:material composition:|material:|fabric:)\s*([^\n]*)`)},
	{label: "Pattern:", re: regexp.MustCompile(`(?:pattern type:|pattern:)\s*([^\n]*)`)},
	{label: "Style:", re: regexp.MustCompile(`style:\s*([^\n]*)`)},
	{label: "Neckline:", re: regexp.MustCompile(`neckline:\s*([^\n]*)`)},
	{label: "Length:", re: regexp.MustCompile(`length:\s*([^\n]*)`), skipPrefixes: []string{"top ", "sleeve "}},
	{label: "Sleeve Length:", re: regexp.MustCompile(`sleeve length:\s*([^\n]*)`)},
	{label: "Sleeve Type:", re: regexp.MustCompile(`sleeve type:\s*([^\n]*)`)},
	{label: "Care:", re: regexp.MustCompile(`(?:care instructions:|care:)\s*([^\n]*)`)},
	{label: "Fit:", re: regexp.MustCompile(`fit:\s*([^\n]*)`)},
	{label: "Color:", re: regexp.MustCompile(`color:\s*([^\n]*)`)},
	{label: "Season:", re: regexp.MustCompile(`(?:season:|occasion:)\s*([^\n]*)`)},
}

// extractDetails pulls "label: value" product facts out of the description
// for the bullet list under the chart table
func extractDetails(description string) []detail {
	text := strings.ToLower(description)

	var details []detail
	for _, p := range detailPatterns {
		m := findDetail(text, p)
		if m == "" {
			continue
		}
		details = append(details, detail{Label: p.label, Content: capitalize(m)})
	}
	return details
}

func findDetail(text string, p detailPattern) string {
	for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
		if skippedPrefix(text, loc[0], p.skipPrefixes) {
			continue
		}
		content := strings.TrimSpace(text[loc[2]:loc[3]])
		if content != "" {
			return content
		}
	}
	return ""
}

func skippedPrefix(text string, start int, prefixes []string) bool {
	for _, pre := range prefixes {
		if start >= len(pre) && strings.HasSuffix(text[:start], pre) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
