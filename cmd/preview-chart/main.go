package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jafarshop/sizecharts/internal/chart"
	"github.com/jafarshop/sizecharts/internal/config"
	"github.com/jafarshop/sizecharts/internal/domain"
	"github.com/jafarshop/sizecharts/internal/extract"
	"github.com/jafarshop/sizecharts/internal/shopify"
)

// ProductQuery fetches one product's description for local chart preview
const ProductQuery = `
query getProduct($id: ID!) {
  product(id: $id) {
    id
    title
    handle
    descriptionHtml
  }
}
`

func main() {
	out := flag.String("out", "size-chart.png", "output PNG path")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: preview-chart [-out file.png] <product-id>")
		fmt.Fprintln(os.Stderr, "  product-id may be numeric or a full gid://shopify/Product/... id")
		os.Exit(1)
	}
	productID := flag.Arg(0)
	if !strings.HasPrefix(productID, "gid://") {
		productID = "gid://shopify/Product/" + productID
	}

	// Load .env if present
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := shopify.NewClient(cfg.Shopify, logger)
	ctx := context.Background()

	fmt.Printf("🔍 Fetching product %s...\n", productID)
	resp, err := client.Execute(ctx, ProductQuery, map[string]interface{}{"id": productID})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to query Shopify: %v\n", err)
		os.Exit(1)
	}

	var result struct {
		Product *struct {
			ID              string `json:"id"`
			Title           string `json:"title"`
			Handle          string `json:"handle"`
			DescriptionHTML string `json:"descriptionHtml"`
		} `json:"product"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse response: %v\n", err)
		os.Exit(1)
	}
	if result.Product == nil {
		fmt.Fprintf(os.Stderr, "❌ Product not found: %s\n", productID)
		os.Exit(1)
	}

	product := domain.Product{
		ID:              result.Product.ID,
		Title:           result.Product.Title,
		Handle:          result.Product.Handle,
		DescriptionHTML: result.Product.DescriptionHTML,
	}

	extractor := extract.NewExtractor(cfg.Processing.MinPairs)
	sizeChart := extractor.Extract(product.DescriptionHTML)
	if sizeChart.IsEmpty() {
		fmt.Printf("⚠️  No size chart data found in %q\n", product.Title)
		fmt.Println("The description needs lines like \"S: bust 34 in, length 25 in\".")
		os.Exit(1)
	}

	fmt.Printf("✅ Extracted %d measurements across %d sizes:\n", sizeChart.TotalPairs(), len(sizeChart.Sizes()))
	table := chart.BuildTable(sizeChart)
	fmt.Println("  " + strings.Join(table.Headers, " | "))
	for _, row := range table.Rows {
		fmt.Println("  " + strings.Join(row, " | "))
	}

	style := chart.StyleWithOverrides(cfg.Chart.BrandName, cfg.Chart.MainColor, cfg.Chart.HeaderBg, cfg.Chart.LogoPath)
	png, err := chart.NewPNGRenderer().Render(sizeChart, product, style)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render chart: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, png, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("🖼️  Wrote %s (%d bytes)\n", *out, len(png))
	fmt.Println("Review the image, then run generate-charts to upload charts store-wide.")
}
