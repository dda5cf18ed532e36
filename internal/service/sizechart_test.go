package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/sizecharts/internal/chart"
	"github.com/jafarshop/sizecharts/internal/domain"
)

const chartDescription = "Size Guide:\nS: bust 34 in, length 25 in\nM: bust 36 in, length 26 in"

type upload struct {
	productID string
	altText   string
	png       []byte
}

// fakeGateway answers HasSizeChartImage from its own upload record, so a
// second pass over the same products behaves like the live catalog would.
type fakeGateway struct {
	existing  map[string]bool
	uploads   []upload
	uploadErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{existing: make(map[string]bool)}
}

func (g *fakeGateway) HasSizeChartImage(_ context.Context, productID string) bool {
	return g.existing[productID]
}

func (g *fakeGateway) UploadImage(_ context.Context, productID string, png []byte, altText string) error {
	if g.uploadErr != nil {
		return g.uploadErr
	}
	g.uploads = append(g.uploads, upload{productID: productID, altText: altText, png: png})
	g.existing[productID] = true
	return nil
}

type fakeRenderer struct {
	png []byte
	err error
}

func (r *fakeRenderer) Render(*domain.SizeChart, domain.Product, chart.StyleConfig) ([]byte, error) {
	return r.png, r.err
}

type panicRenderer struct{}

func (panicRenderer) Render(*domain.SizeChart, domain.Product, chart.StyleConfig) ([]byte, error) {
	panic("backend exploded")
}

func newTestService(gateway ProductGateway, renderer chart.Renderer) *SizeChartService {
	return NewSizeChartService(gateway, renderer, Options{
		ProductDelay: time.Millisecond,
	}, zap.NewNop())
}

func TestProcessProductSuccess(t *testing.T) {
	gateway := newFakeGateway()
	svc := newTestService(gateway, &fakeRenderer{png: []byte("png-bytes")})

	product := domain.Product{ID: "gid://shopify/Product/1", Title: "Summer Top", DescriptionHTML: chartDescription}
	result := svc.ProcessProduct(context.Background(), product)

	assert.True(t, result.Success)
	assert.True(t, result.ImageUploaded)
	assert.False(t, result.Skipped)
	assert.Empty(t, result.Error)
	assert.Equal(t, product.ID, result.ProductID)
	assert.Equal(t, product.Title, result.ProductTitle)

	require.Len(t, gateway.uploads, 1)
	assert.Equal(t, product.ID, gateway.uploads[0].productID)
	assert.Equal(t, "Size Chart - Summer Top", gateway.uploads[0].altText)
	assert.Equal(t, []byte("png-bytes"), gateway.uploads[0].png)
}

func TestProcessProductSkipsExisting(t *testing.T) {
	gateway := newFakeGateway()
	gateway.existing["gid://shopify/Product/1"] = true
	svc := newTestService(gateway, &fakeRenderer{png: []byte("png")})

	result := svc.ProcessProduct(context.Background(), domain.Product{
		ID: "gid://shopify/Product/1", Title: "Summer Top", DescriptionHTML: chartDescription,
	})

	assert.True(t, result.Skipped)
	assert.False(t, result.Success)
	assert.Equal(t, "Already has size chart image", result.Error)
	assert.Empty(t, gateway.uploads, "skipped product must not upload")
}

func TestProcessProductNoData(t *testing.T) {
	gateway := newFakeGateway()
	svc := newTestService(gateway, &fakeRenderer{png: []byte("png")})

	result := svc.ProcessProduct(context.Background(), domain.Product{
		ID: "gid://shopify/Product/2", Title: "Plain Tee",
		DescriptionHTML: "A comfortable cotton tee in classic colors.",
	})

	assert.False(t, result.Success)
	assert.False(t, result.Skipped)
	assert.Equal(t, "No size chart data found in description", result.Error)
	assert.Empty(t, gateway.uploads)
}

func TestProcessProductRenderFailure(t *testing.T) {
	tests := []struct {
		name     string
		renderer chart.Renderer
	}{
		{"renderer error", &fakeRenderer{err: errors.New("font missing")}},
		{"empty bytes", &fakeRenderer{png: nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := newFakeGateway()
			svc := newTestService(gateway, tt.renderer)

			result := svc.ProcessProduct(context.Background(), domain.Product{
				ID: "gid://shopify/Product/3", Title: "Summer Top", DescriptionHTML: chartDescription,
			})

			assert.False(t, result.Success)
			assert.Equal(t, "Failed to create size chart image", result.Error)
			assert.Empty(t, gateway.uploads)
		})
	}
}

func TestProcessProductUploadFailure(t *testing.T) {
	gateway := newFakeGateway()
	gateway.uploadErr = errors.New("throttled")
	svc := newTestService(gateway, &fakeRenderer{png: []byte("png")})

	result := svc.ProcessProduct(context.Background(), domain.Product{
		ID: "gid://shopify/Product/4", Title: "Summer Top", DescriptionHTML: chartDescription,
	})

	assert.False(t, result.Success)
	assert.False(t, result.ImageUploaded)
	assert.Equal(t, "Failed to upload image to Shopify", result.Error)
}

func TestProcessProductRecoversPanic(t *testing.T) {
	gateway := newFakeGateway()
	svc := newTestService(gateway, panicRenderer{})

	result := svc.ProcessProduct(context.Background(), domain.Product{
		ID: "gid://shopify/Product/5", Title: "Summer Top", DescriptionHTML: chartDescription,
	})

	assert.False(t, result.Success)
	assert.False(t, result.ImageUploaded)
	assert.True(t, strings.HasPrefix(result.Error, "Processing error: "), "got %q", result.Error)
	assert.Contains(t, result.Error, "backend exploded")
}

func TestProcessProductsOrderAndCompleteness(t *testing.T) {
	gateway := newFakeGateway()
	gateway.existing["gid://shopify/Product/2"] = true
	svc := newTestService(gateway, &fakeRenderer{png: []byte("png")})

	products := []domain.Product{
		{ID: "gid://shopify/Product/1", Title: "Summer Top", DescriptionHTML: chartDescription},
		{ID: "gid://shopify/Product/2", Title: "Winter Coat", DescriptionHTML: chartDescription},
		{ID: "gid://shopify/Product/3", Title: "Plain Tee", DescriptionHTML: "No measurements here."},
	}

	var progress []string
	results := svc.ProcessProducts(context.Background(), products, func(completed, total int) {
		progress = append(progress, fmt.Sprintf("%d/%d", completed, total))
	})

	require.Len(t, results, len(products), "one result per input, failures included")
	for i, r := range results {
		assert.Equal(t, products[i].ID, r.ProductID, "results must keep input order")
	}
	assert.True(t, results[0].Success)
	assert.True(t, results[1].Skipped)
	assert.Equal(t, "No size chart data found in description", results[2].Error)
	assert.Equal(t, []string{"1/3", "2/3", "3/3"}, progress)
}

func TestProcessProductsFailureDoesNotAbortBatch(t *testing.T) {
	gateway := newFakeGateway()
	svc := newTestService(gateway, panicRenderer{})

	products := []domain.Product{
		{ID: "gid://shopify/Product/1", Title: "A", DescriptionHTML: chartDescription},
		{ID: "gid://shopify/Product/2", Title: "B", DescriptionHTML: chartDescription},
	}
	results := svc.ProcessProducts(context.Background(), products, nil)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Contains(t, r.Error, "Processing error:")
	}
}

func TestProcessProductsPacesFirstGap(t *testing.T) {
	gateway := newFakeGateway()
	svc := NewSizeChartService(gateway, &fakeRenderer{png: []byte("png")}, Options{
		ProductDelay: 60 * time.Millisecond,
	}, zap.NewNop())

	products := []domain.Product{
		{ID: "gid://shopify/Product/1", Title: "A", DescriptionHTML: chartDescription},
		{ID: "gid://shopify/Product/2", Title: "B", DescriptionHTML: chartDescription},
	}
	start := time.Now()
	results := svc.ProcessProducts(context.Background(), products, nil)
	elapsed := time.Since(start)

	require.Len(t, results, 2)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond,
		"the gap before the second product must already be paced")
}

func TestProcessProductsSecondRunSkipsUploaded(t *testing.T) {
	gateway := newFakeGateway()
	svc := newTestService(gateway, &fakeRenderer{png: []byte("png")})

	products := []domain.Product{
		{ID: "gid://shopify/Product/1", Title: "Summer Top", DescriptionHTML: chartDescription},
		{ID: "gid://shopify/Product/2", Title: "Linen Dress", DescriptionHTML: chartDescription},
	}

	first := svc.ProcessProducts(context.Background(), products, nil)
	for _, r := range first {
		assert.True(t, r.Success)
	}
	require.Len(t, gateway.uploads, 2)

	second := svc.ProcessProducts(context.Background(), products, nil)
	for _, r := range second {
		assert.True(t, r.Skipped)
		assert.Equal(t, "Already has size chart image", r.Error)
	}
	assert.Len(t, gateway.uploads, 2, "rerun must not upload again")
}
