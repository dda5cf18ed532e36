package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jafarshop/sizecharts/internal/chart"
	"github.com/jafarshop/sizecharts/internal/domain"
	"github.com/jafarshop/sizecharts/internal/extract"
)

// ProductGateway is the per-product catalog surface the pipeline needs
type ProductGateway interface {
	HasSizeChartImage(ctx context.Context, productID string) bool
	UploadImage(ctx context.Context, productID string, png []byte, altText string) error
}

// ProgressFunc reports batch progress after each processed product
type ProgressFunc func(completed, total int)

// Options tunes the pipeline. Zero values fall back to defaults.
type Options struct {
	Style        chart.StyleConfig
	MinPairs     int
	ProductDelay time.Duration // pause between products in a batch
}

// SizeChartService coordinates the per-product pipeline (skip-if-exists ->
// extract -> render -> upload) and runs batches strictly sequentially so the
// Admin API rate budget holds and result order stays deterministic.
type SizeChartService struct {
	gateway   ProductGateway
	renderer  chart.Renderer
	extractor *extract.Extractor
	style     chart.StyleConfig
	limiter   *rate.Limiter
	minPairs  int
	logger    *zap.Logger
}

// NewSizeChartService creates the orchestrator
func NewSizeChartService(gateway ProductGateway, renderer chart.Renderer, opts Options, logger *zap.Logger) *SizeChartService {
	minPairs := opts.MinPairs
	if minPairs < 1 {
		minPairs = extract.DefaultMinPairs
	}
	delay := opts.ProductDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	// the bucket starts full; drain it so the very first inter-product gap
	// is paced like the rest
	limiter := rate.NewLimiter(rate.Every(delay), 1)
	limiter.Allow()
	return &SizeChartService{
		gateway:   gateway,
		renderer:  renderer,
		extractor: extract.NewExtractor(minPairs),
		style:     opts.Style,
		limiter:   limiter,
		minPairs:  minPairs,
		logger:    logger,
	}
}

// ProcessProduct runs the pipeline for one product. It never lets a failure
// escape: every outcome, including a panic inside a rendering backend, is
// captured into the returned result.
func (s *SizeChartService) ProcessProduct(ctx context.Context, product domain.Product) (result domain.ChartResult) {
	result = domain.ChartResult{
		ProductID:    product.ID,
		ProductTitle: product.Title,
	}
	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.ImageUploaded = false
			result.Error = fmt.Sprintf("Processing error: %v", r)
			s.logger.Error("Recovered panic while processing product",
				zap.String("product_id", product.ID), zap.Any("panic", r))
		}
	}()

	if s.gateway.HasSizeChartImage(ctx, product.ID) {
		result.Skipped = true
		result.Error = "Already has size chart image"
		return result
	}

	sizeChart := s.extractor.Extract(product.DescriptionHTML)
	if sizeChart.IsEmpty() {
		result.Error = "No size chart data found in description"
		return result
	}

	// The extractor prunes below-threshold charts itself; this re-check is a
	// contract boundary kept in case a different extractor is swapped in.
	if sizeChart.TotalPairs() < s.minPairs {
		result.Error = fmt.Sprintf("Insufficient measurements found (need at least %d)", s.minPairs)
		return result
	}

	png, err := s.renderer.Render(sizeChart, product, s.style)
	if err != nil || len(png) == 0 {
		if err != nil {
			s.logger.Warn("Size chart render failed",
				zap.String("product_id", product.ID), zap.Error(err))
		}
		result.Error = "Failed to create size chart image"
		return result
	}

	altText := fmt.Sprintf("Size Chart - %s", product.Title)
	if err := s.gateway.UploadImage(ctx, product.ID, png, altText); err != nil {
		s.logger.Warn("Size chart upload failed",
			zap.String("product_id", product.ID), zap.Error(err))
		result.Error = "Failed to upload image to Shopify"
		return result
	}

	result.Success = true
	result.ImageUploaded = true
	return result
}

// ProcessProducts processes products one at a time, in input order, with a
// pause between products. One product's failure never aborts the batch: the
// returned slice always holds exactly one result per input, in input order.
func (s *SizeChartService) ProcessProducts(ctx context.Context, products []domain.Product, onProgress ProgressFunc) []domain.ChartResult {
	s.logger.Info("Starting sequential size chart batch", zap.Int("products", len(products)))

	results := make([]domain.ChartResult, 0, len(products))
	for i, product := range products {
		results = append(results, s.ProcessProduct(ctx, product))

		if onProgress != nil {
			onProgress(i+1, len(products))
		}

		if i < len(products)-1 {
			// a canceled context just skips the pause; the remaining products
			// still get their (failing) results so the batch stays complete
			_ = s.limiter.Wait(ctx)
		}
	}

	successful, skipped := 0, 0
	for _, r := range results {
		switch {
		case r.Success:
			successful++
		case r.Skipped:
			skipped++
		}
	}
	s.logger.Info("Completed size chart batch",
		zap.Int("products", len(products)),
		zap.Int("successful", successful),
		zap.Int("skipped", skipped),
		zap.Int("failed", len(results)-successful-skipped))

	return results
}
