package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeChartOrderAndCounts(t *testing.T) {
	c := NewSizeChart()
	assert.True(t, c.IsEmpty())

	c.Add("M", "Bust", "36 in")
	c.Add("S", "Bust", "34 in")
	c.Add("M", "Length", "26 in")

	assert.Equal(t, []string{"M", "S"}, c.Sizes(), "sizes keep first-seen order")
	assert.Equal(t, 3, c.TotalPairs())
	assert.Equal(t, "36 in", c.Get("M", "Bust"))
	assert.Equal(t, "", c.Get("XL", "Bust"))
	assert.False(t, c.IsEmpty())
}

func TestSizeChartLaterWriteWins(t *testing.T) {
	c := NewSizeChart()
	c.Add("S", "Bust", "34 in")
	c.Add("S", "Bust", "35 in")

	assert.Equal(t, "35 in", c.Get("S", "Bust"))
	assert.Equal(t, 1, c.TotalPairs())
}

func TestSizeChartPrune(t *testing.T) {
	c := NewSizeChart()
	c.Add("S", "Bust", "34 in")
	c.sizes = append(c.sizes, "GHOST")
	c.data["GHOST"] = map[string]string{}

	c.Prune()
	assert.Equal(t, []string{"S"}, c.Sizes())
	assert.Nil(t, c.Measurements("GHOST"))
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, OutcomeOf(ChartResult{Success: true}))
	assert.Equal(t, OutcomeSkipped, OutcomeOf(ChartResult{Skipped: true}))
	assert.Equal(t, OutcomeSkipped, OutcomeOf(ChartResult{Skipped: true, Success: false}))
	assert.Equal(t, OutcomeFailed, OutcomeOf(ChartResult{Error: "boom"}))
}
