package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductImage is an image already attached to a product
type ProductImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// Product is a read-only snapshot of a Shopify product as fetched at the
// start of a processing run. The core never mutates it; new images are
// attached through the Admin API.
type Product struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Handle          string         `json:"handle"`
	DescriptionHTML string         `json:"descriptionHtml"`
	Images          []ProductImage `json:"images"`
}

// SizeChart is the structured result of measurement extraction:
// size label -> measurement name -> "<number> <unit>".
// Size insertion order is preserved so rendered rows follow first-seen order.
type SizeChart struct {
	sizes []string
	data  map[string]map[string]string
}

// NewSizeChart creates an empty size chart
func NewSizeChart() *SizeChart {
	return &SizeChart{data: make(map[string]map[string]string)}
}

// Add records a measurement value under a size label. Later writes win on
// name collision within a size.
func (c *SizeChart) Add(size, name, value string) {
	if _, ok := c.data[size]; !ok {
		c.sizes = append(c.sizes, size)
		c.data[size] = make(map[string]string)
	}
	c.data[size][name] = value
}

// Sizes returns size labels in first-seen order
func (c *SizeChart) Sizes() []string {
	out := make([]string, len(c.sizes))
	copy(out, c.sizes)
	return out
}

// Get returns the value for a size/measurement pair, or "" if absent
func (c *SizeChart) Get(size, name string) string {
	return c.data[size][name]
}

// Measurements returns the measurement map for a size (nil if the size is absent)
func (c *SizeChart) Measurements(size string) map[string]string {
	return c.data[size]
}

// TotalPairs counts (size, measurement) pairs across the whole chart
func (c *SizeChart) TotalPairs() int {
	n := 0
	for _, m := range c.data {
		n += len(m)
	}
	return n
}

// IsEmpty reports whether the chart holds no sizes at all
func (c *SizeChart) IsEmpty() bool {
	return len(c.sizes) == 0
}

// Prune drops sizes whose measurement map ended up empty
func (c *SizeChart) Prune() {
	kept := c.sizes[:0]
	for _, size := range c.sizes {
		if len(c.data[size]) > 0 {
			kept = append(kept, size)
		} else {
			delete(c.data, size)
		}
	}
	c.sizes = kept
}

// ChartResult is the per-product outcome of a processing run
type ChartResult struct {
	ProductID     string `json:"productId"`
	ProductTitle  string `json:"productTitle"`
	Success       bool   `json:"success"`
	Skipped       bool   `json:"skipped"`
	ImageUploaded bool   `json:"imageUploaded"`
	Error         string `json:"error,omitempty"`
}

// ChartRun records one invocation of batch processing
type ChartRun struct {
	ID           uuid.UUID
	Scope        RunScope
	CollectionID *string
	Status       RunStatus
	Total        int
	Successful   int
	Skipped      int
	Failed       int
	StartedAt    time.Time
	CompletedAt  *time.Time
}

// ChartRunResult is a persisted per-product result within a run
type ChartRunResult struct {
	ID           uuid.UUID
	RunID        uuid.UUID
	ProductID    string
	ProductTitle string
	Outcome      ResultOutcome
	Error        *string
	CreatedAt    time.Time
}
