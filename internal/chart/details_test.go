package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detailByLabel(details []detail, label string) (detail, bool) {
	for _, d := range details {
		if d.Label == label {
			return d, true
		}
	}
	return detail{}, false
}

func TestExtractDetails(t *testing.T) {
	description := "Material: 95% cotton, 5% spandex\n" +
		"Pattern Type: floral\n" +
		"Length: regular\n" +
		"Sleeve Length: long sleeve\n" +
		"Care Instructions: machine wash cold"

	details := extractDetails(description)

	material, ok := detailByLabel(details, "Material:")
	require.True(t, ok)
	assert.Equal(t, "95% cotton, 5% spandex", material.Content)

	pattern, ok := detailByLabel(details, "Pattern:")
	require.True(t, ok)
	assert.Equal(t, "Floral", pattern.Content)

	length, ok := detailByLabel(details, "Length:")
	require.True(t, ok)
	assert.Equal(t, "Regular", length.Content, "plain length must not pick up the sleeve length value")

	sleeve, ok := detailByLabel(details, "Sleeve Length:")
	require.True(t, ok)
	assert.Equal(t, "Long sleeve", sleeve.Content)

	care, ok := detailByLabel(details, "Care:")
	require.True(t, ok)
	assert.Equal(t, "Machine wash cold", care.Content)
}

func TestExtractDetailsSkipsPrefixedLength(t *testing.T) {
	details := extractDetails("Sleeve Length: long sleeve\nTop Length: cropped")

	_, ok := detailByLabel(details, "Length:")
	assert.False(t, ok, "length occurrences inside longer phrases are not standalone details")

	sleeve, ok := detailByLabel(details, "Sleeve Length:")
	require.True(t, ok)
	assert.Equal(t, "Long sleeve", sleeve.Content)
}

func TestExtractDetailsOrderFollowsPatternList(t *testing.T) {
	details := extractDetails("Fit: relaxed\nMaterial: linen")

	require.Len(t, details, 2)
	assert.Equal(t, "Material:", details[0].Label, "bullets keep the fixed pattern order, not text order")
	assert.Equal(t, "Fit:", details[1].Label)
}

func TestExtractDetailsEmpty(t *testing.T) {
	assert.Empty(t, extractDetails("A lovely top with no labeled facts."))
	assert.Empty(t, extractDetails(""))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Machine wash", capitalize("machine wash"))
	assert.Equal(t, "", capitalize(""))
	// first rune may be multi-byte
	assert.Equal(t, "Élégant", capitalize("élégant"))
}
