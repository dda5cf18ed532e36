package extract

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLineBased(t *testing.T) {
	e := NewExtractor(DefaultMinPairs)

	chart := e.Extract("S: bust 34 in, length 25 in\nM: bust 36 in, length 26 in")

	require.False(t, chart.IsEmpty())
	assert.Equal(t, []string{"S", "M"}, chart.Sizes())
	assert.Equal(t, "34 in", chart.Get("S", "Bust"))
	assert.Equal(t, "25 in", chart.Get("S", "Length"))
	assert.Equal(t, "36 in", chart.Get("M", "Bust"))
	assert.Equal(t, "26 in", chart.Get("M", "Length"))
	assert.Equal(t, 4, chart.TotalPairs())
}

func TestExtractBlockBased(t *testing.T) {
	e := NewExtractor(DefaultMinPairs)

	chart := e.Extract("Product Measurements: S - bust 34 in, waist 26 in M - bust 36 in, waist 28 in")

	require.False(t, chart.IsEmpty())
	assert.Equal(t, "34 in", chart.Get("S", "Bust"))
	assert.Equal(t, "28 in", chart.Get("M", "Waist"))
}

func TestExtractKeywordGate(t *testing.T) {
	e := NewExtractor(DefaultMinPairs)

	tests := []struct {
		name string
		text string
	}{
		{"no size content", "This is a lovely cotton t-shirt, machine washable."},
		{"empty", ""},
		{"numbers but no keywords", "Pack of 3. Model is 5 feet 9."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart := e.Extract(tt.text)
			assert.True(t, chart.IsEmpty())
			assert.Equal(t, 0, chart.TotalPairs())
		})
	}
}

func TestExtractVocabularyFilter(t *testing.T) {
	e := NewExtractor(DefaultMinPairs)

	// "foobar" is syntactically well-formed but not a recognized measurement
	chart := e.Extract("Size Guide:\nS: foobar 34 in, bust 34 in, length 25 in")

	require.False(t, chart.IsEmpty())
	for _, size := range chart.Sizes() {
		for name := range chart.Measurements(size) {
			assert.NotContains(t, name, "Foobar")
		}
	}
	assert.Equal(t, "34 in", chart.Get("S", "Bust"))
}

func TestExtractMinPairsPruning(t *testing.T) {
	e := NewExtractor(DefaultMinPairs)

	// a single (size, measurement) pair is below the usable threshold
	chart := e.Extract("Size Guide: ONE SIZE - waist 30 in")
	assert.True(t, chart.IsEmpty())

	// the threshold is tunable
	loose := NewExtractor(1)
	chart = loose.Extract("Size Guide: ONE SIZE - waist 30 in")
	require.False(t, chart.IsEmpty())
	assert.Equal(t, "30 in", chart.Get("ONE SIZE", "Waist"))
}

func TestExtractDeterminism(t *testing.T) {
	e := NewExtractor(DefaultMinPairs)
	text := "Measurements: S: bust 34 in, hip 36 in M: bust 36 in, hip 38 in"

	first := e.Extract(text)
	second := e.Extract(text)

	assert.Equal(t, first.Sizes(), second.Sizes())
	for _, size := range first.Sizes() {
		if !reflect.DeepEqual(first.Measurements(size), second.Measurements(size)) {
			t.Fatalf("extraction not deterministic for size %s", size)
		}
	}
}

func TestExtractUnits(t *testing.T) {
	e := NewExtractor(1)

	tests := []struct {
		name  string
		text  string
		size  string
		mname string
		want  string
	}{
		{"inches kept verbatim", "sizing:\nM: bust 36 inches", "M", "Bust", "36 inches"},
		{"cm kept verbatim", "sizing:\nM: bust 91 cm", "M", "Bust", "91 cm"},
		{"decimal values", "sizing:\nM: bust 36.5 in", "M", "Bust", "36.5 in"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart := e.Extract(tt.text)
			require.False(t, chart.IsEmpty(), "expected measurements in %q", tt.text)
			assert.Equal(t, tt.want, chart.Get(tt.size, tt.mname))
		})
	}
}

func TestExtractSizeLabels(t *testing.T) {
	e := NewExtractor(1)

	tests := []struct {
		label string
		want  string
	}{
		{"s", "S"},
		{"xl", "XL"},
		{"xxl", "XXL"},
		{"2xl", "2XL"},
		{"one size", "ONE SIZE"},
		{"12", "12"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			chart := e.Extract("size guide:\n" + tt.label + ": bust 34 in")
			require.False(t, chart.IsEmpty())
			assert.Contains(t, chart.Sizes(), tt.want)
		})
	}
}

func TestExtractFullwidthColonAndEntities(t *testing.T) {
	e := NewExtractor(DefaultMinPairs)

	chart := e.Extract("size guide:\nS： bust&nbsp;34 in, length 25 in")

	require.False(t, chart.IsEmpty())
	assert.Equal(t, "34 in", chart.Get("S", "Bust"))
	assert.Equal(t, "25 in", chart.Get("S", "Length"))
}

func TestExtractNonBreakingSpacesInHTML(t *testing.T) {
	e := NewExtractor(DefaultMinPairs)

	// inside markup the parser decodes &nbsp; to U+00A0 rather than leaving
	// the entity text behind
	html := "<p>Size Guide:</p><p>S: bust&nbsp;34 in, length&nbsp;25 in</p>"
	chart := e.Extract(html)

	require.False(t, chart.IsEmpty())
	assert.Equal(t, "34 in", chart.Get("S", "Bust"))
	assert.Equal(t, "25 in", chart.Get("S", "Length"))

	// the raw rune form, as stored descriptions sometimes carry it
	chart = e.Extract("size guide:\nM: bust\u00a036 in, length\u00a026 in")
	require.False(t, chart.IsEmpty())
	assert.Equal(t, "36 in", chart.Get("M", "Bust"))
}

func TestExtractMultiWordNames(t *testing.T) {
	e := NewExtractor(DefaultMinPairs)

	chart := e.Extract("measurements:\nM: sleeve length 22 in, shoulder width 16 in")

	require.False(t, chart.IsEmpty())
	assert.Equal(t, "22 in", chart.Get("M", "Sleeve Length"))
	assert.Equal(t, "16 in", chart.Get("M", "Shoulder Width"))
}

func TestExtractFromHTMLDescription(t *testing.T) {
	e := NewExtractor(DefaultMinPairs)

	html := "<p>A relaxed summer top.</p><p>Size Guide:</p><ul><li>S: bust 34 in, length 25 in</li><li>M: bust 36 in, length 26 in</li></ul>"
	chart := e.Extract(html)

	require.False(t, chart.IsEmpty())
	assert.Equal(t, "34 in", chart.Get("S", "Bust"))
	assert.Equal(t, "26 in", chart.Get("M", "Length"))
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "S: bust 34 in", "S: bust 34 in"},
		{"br becomes newline", "S: bust 34 in<br>M: bust 36 in", "S: bust 34 in\nM: bust 36 in"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Flatten(tt.in))
		})
	}
}

func TestNormalizePreservesNewlines(t *testing.T) {
	got := normalize("S:  bust   34 in\n\n\nM: bust 36 in")
	assert.Equal(t, "s: bust 34 in\nm: bust 36 in", got)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Sleeve Length", titleCase("sleeve length"))
	assert.Equal(t, "Bust", titleCase("bust"))
	// first rune may be multi-byte
	assert.Equal(t, "Épaule", titleCase("épaule"))
}
