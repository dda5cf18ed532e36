package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jafarshop/sizecharts/internal/catalog"
	"github.com/jafarshop/sizecharts/internal/chart"
	"github.com/jafarshop/sizecharts/internal/config"
	"github.com/jafarshop/sizecharts/internal/domain"
	"github.com/jafarshop/sizecharts/internal/extract"
	"github.com/jafarshop/sizecharts/internal/service"
	"github.com/jafarshop/sizecharts/internal/shopify"
)

func main() {
	collectionID := flag.String("collection", "", "Shopify collection GID to process (default: whole store)")
	dryRun := flag.Bool("dry-run", false, "extract and report only, no rendering or uploads")
	limit := flag.Int("limit", 0, "process at most N products (0 = all)")
	flag.Parse()

	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, logger)
	gateway := catalog.NewGateway(client, time.Duration(cfg.Processing.PageDelayMs)*time.Millisecond, logger)

	ctx := context.Background()

	fmt.Println("🔍 Fetching products from Shopify...")
	var products []domain.Product
	if *collectionID != "" {
		products, err = gateway.ListCollectionProducts(ctx, *collectionID)
	} else {
		products, err = gateway.ListProducts(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Product listing incomplete (%v), continuing with %d products\n", err, len(products))
	}
	if *limit > 0 && len(products) > *limit {
		products = products[:*limit]
	}
	fmt.Printf("Found %d products\n", len(products))

	if *dryRun {
		runDryRun(cfg, products)
		return
	}

	style := chart.StyleWithOverrides(cfg.Chart.BrandName, cfg.Chart.MainColor, cfg.Chart.HeaderBg, cfg.Chart.LogoPath)
	charts := service.NewSizeChartService(gateway, chart.NewPNGRenderer(), service.Options{
		Style:        style,
		MinPairs:     cfg.Processing.MinPairs,
		ProductDelay: time.Duration(cfg.Processing.ProductDelayMs) * time.Millisecond,
	}, logger)

	results := charts.ProcessProducts(ctx, products, func(completed, total int) {
		fmt.Printf("  [%d/%d] processed\n", completed, total)
	})

	successful, skipped, failed := 0, 0, 0
	for _, r := range results {
		switch {
		case r.Success:
			successful++
		case r.Skipped:
			skipped++
		default:
			failed++
			fmt.Printf("  ❌ %s: %s\n", r.ProductTitle, r.Error)
		}
	}
	fmt.Printf("Done: ✅ %d successful, ⏭️ %d skipped, ❌ %d failed\n", successful, skipped, failed)
}

// runDryRun reports what extraction would find without touching Shopify
func runDryRun(cfg *config.Config, products []domain.Product) {
	extractor := extract.NewExtractor(cfg.Processing.MinPairs)

	found := 0
	for _, p := range products {
		sizeChart := extractor.Extract(p.DescriptionHTML)
		if sizeChart.IsEmpty() {
			continue
		}
		found++
		fmt.Printf("  📏 %s: %d sizes, %d measurements\n", p.Title, len(sizeChart.Sizes()), sizeChart.TotalPairs())
		for _, size := range sizeChart.Sizes() {
			fmt.Printf("     %s: %v\n", size, sizeChart.Measurements(size))
		}
	}
	fmt.Printf("Dry run: %d of %d products have usable size data\n", found, len(products))
}
