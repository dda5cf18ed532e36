package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jafarshop/sizecharts/internal/domain"
)

// DefaultMinPairs is the minimum total (size, measurement) pair count below
// which an extraction result is discarded as noise. It is a heuristic
// threshold, kept tunable rather than hardcoded into the pipeline.
const DefaultMinPairs = 2

// sizeKeywords gates extraction: a description mentioning none of these
// cannot contain a size chart and is rejected without running the patterns.
var sizeKeywords = []string{
	"size", "measurement", "bust", "waist", "chest", "length", "hip", "shoulder",
	"sizing", "guide", "dimensions", "insole", "shaft",
}

// validMeasurements is the canonical measurement-name vocabulary. A captured
// name is kept only if it contains one of these substrings; anything else is
// dropped even when numerically well-formed. False negatives are preferred
// over garbage columns.
var validMeasurements = []string{
	"bust", "chest", "waist", "hip", "length", "shoulder", "sleeve", "neck", "inseam",
	"rise", "thigh", "knee", "ankle", "front length", "back length", "sleeve length",
	"shoulder width", "chest width", "waist width", "hip width", "bust width",
	"top length", "outseam", "insole length", "shaft height", "heel height", "calf",
}

// blockKeywords mark a section after which block-based matching is focused
var blockKeywords = []string{
	"product measurements:", "measurements:", "size guide:", "sizing:", "dimensions:",
}

const (
	// longest alternatives first: Go regexp alternation is leftmost-first,
	// so "inches" must be tried before "in" to be captured whole
	unitsPattern  = `(?:inches|inch|in|"|centimeters|centimeter|cm)`
	sizeIndicator = `(?:one size|x{0,3}[sml]|[0-9]{1,2}xl|[2-6]xl|[0-9]{1,2}x|[0-9]{1,2})`
)

var (
	measureRe = regexp.MustCompile(`([a-z][a-z\s/]*?)\s*[:：-]?\s*(\d*\.?\d+)\s*(` + unitsPattern + `)`)
	lineRe    = regexp.MustCompile(`^\s*(` + sizeIndicator + `)\s*[:：-]\s*(.*)`)
	blockRe   = regexp.MustCompile(`(` + sizeIndicator + `)\s*[:：-]?\s*((?:[a-z][a-z\s/]*?[:：-]?\s*\d*\.?\d+\s*` + unitsPattern + `\s*,?\s*)+)`)

	// whitespace except newline; newlines separate the line strategy's input
	horizSpaceRe = regexp.MustCompile(`[^\S\n]+`)
	newlineRunRe = regexp.MustCompile(`\n+`)
)

// Extractor turns free-text product descriptions into structured size charts.
// Extraction is pure and best-effort: descriptions vary wildly in structure,
// so two independent strategies run over the normalized text and their
// results merge. It never fails; an unusable description yields an empty chart.
type Extractor struct {
	minPairs int
}

// NewExtractor creates an extractor. minPairs below 1 falls back to DefaultMinPairs.
func NewExtractor(minPairs int) *Extractor {
	if minPairs < 1 {
		minPairs = DefaultMinPairs
	}
	return &Extractor{minPairs: minPairs}
}

// Extract parses a description (HTML or plain text) into a size chart.
// Returns an empty chart when nothing usable is found.
func (e *Extractor) Extract(description string) *domain.SizeChart {
	chart := domain.NewSizeChart()

	text := normalize(Flatten(description))

	if !containsAny(text, sizeKeywords) {
		return chart
	}

	// Strategy 1: line-based, e.g. "s: bust 34 in, length 25 in"
	for _, line := range strings.Split(text, "\n") {
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		size := strings.ToUpper(strings.TrimSpace(m[1]))
		addMeasurements(chart, size, strings.TrimSpace(m[2]))
	}

	// Strategy 2: block-based, scoped to the text after a section header
	// like "measurements:" when one is present
	textBlock := text
	for _, keyword := range blockKeywords {
		if idx := strings.Index(text, keyword); idx >= 0 {
			textBlock = text[idx+len(keyword):]
			break
		}
	}

	for _, m := range blockRe.FindAllStringSubmatch(textBlock, -1) {
		size := strings.ToUpper(strings.TrimSpace(m[1]))
		addMeasurements(chart, size, m[2])
	}

	chart.Prune()
	if chart.TotalPairs() < e.minPairs {
		return domain.NewSizeChart()
	}
	return chart
}

// addMeasurements scans a fragment for "<name> <number> <unit>" occurrences
// and records the vocabulary-approved ones under the given size.
func addMeasurements(chart *domain.SizeChart, size, fragment string) {
	for _, found := range measureRe.FindAllStringSubmatch(fragment, -1) {
		name := horizSpaceRe.ReplaceAllString(strings.TrimSpace(found[1]), " ")
		value := found[2]
		unit := found[3]
		if !nameInVocabulary(name) {
			continue
		}
		chart.Add(size, titleCase(name), value+" "+unit)
	}
}

func nameInVocabulary(name string) bool {
	for _, vm := range validMeasurements {
		if strings.Contains(name, vm) {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// normalize lowercases and canonicalizes the text: fullwidth colons become
// ASCII, common HTML entities become literals, runs of horizontal whitespace
// collapse to single spaces while newlines survive for the line strategy.
func normalize(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.ReplaceAll(t, "：", ":")
	// the HTML parser decodes &nbsp; to U+00A0, which ASCII \s never matches
	t = strings.ReplaceAll(t, "\u00a0", " ")
	t = strings.ReplaceAll(t, "&nbsp;", " ")
	t = strings.ReplaceAll(t, "&amp;", "&")
	t = horizSpaceRe.ReplaceAllString(t, " ")
	t = newlineRunRe.ReplaceAllString(t, "\n")
	return t
}

// titleCase uppercases the first rune of each word ("sleeve length" ->
// "Sleeve Length")
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
