package catalog

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/jafarshop/sizecharts/internal/domain"
	"github.com/jafarshop/sizecharts/internal/shopify"
)

// pageSize is the Shopify products-per-page maximum
const pageSize = 250

// Gateway is the thin adapter the pipeline uses to talk to the Shopify
// product catalog: existing-image checks, paginated product reads and image
// uploads. Page fetches are paced by a token bucket so the Admin API's
// ~2 req/s budget is respected.
type Gateway struct {
	client  *shopify.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewGateway creates a gateway. pageDelay is the minimum spacing between
// paginated product fetches.
func NewGateway(client *shopify.Client, pageDelay time.Duration, logger *zap.Logger) *Gateway {
	if pageDelay <= 0 {
		pageDelay = 600 * time.Millisecond
	}
	// drain the initial token so the gap after the first page is paced too
	limiter := rate.NewLimiter(rate.Every(pageDelay), 1)
	limiter.Allow()
	return &Gateway{
		client:  client,
		limiter: limiter,
		logger:  logger,
	}
}

type imageNode struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type imageConnection struct {
	Edges []struct {
		Node imageNode `json:"node"`
	} `json:"edges"`
}

type productNode struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Handle          string          `json:"handle"`
	DescriptionHTML string          `json:"descriptionHtml"`
	Images          imageConnection `json:"images"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type productConnection struct {
	PageInfo pageInfo `json:"pageInfo"`
	Edges    []struct {
		Node productNode `json:"node"`
	} `json:"edges"`
}

// HasSizeChartImage reports whether any of the product's first 10 images
// carries "size chart" in its alt text. A fetch failure fails open to false:
// a transient read error should not permanently block chart generation for
// the product, at the cost of a possible duplicate upload.
func (g *Gateway) HasSizeChartImage(ctx context.Context, productID string) bool {
	variables := map[string]interface{}{
		"id":    productID,
		"first": 10,
	}
	resp, err := g.client.Execute(ctx, shopify.ProductImagesQuery, variables)
	if err != nil {
		g.logger.Warn("Existing size chart check failed, proceeding as if absent",
			zap.String("product_id", productID), zap.Error(err))
		return false
	}

	var result struct {
		Product *struct {
			Images imageConnection `json:"images"`
		} `json:"product"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		g.logger.Warn("Existing size chart check: parse failed, proceeding as if absent",
			zap.String("product_id", productID), zap.Error(err))
		return false
	}
	if result.Product == nil {
		return false
	}
	for _, edge := range result.Product.Images.Edges {
		if strings.Contains(strings.ToLower(edge.Node.AltText), "size chart") {
			return true
		}
	}
	return false
}

// UploadImage attaches a PNG to the product as a base64 attachment with the
// given alt text. Shopify user errors surface as an error carrying the first
// message.
func (g *Gateway) UploadImage(ctx context.Context, productID string, png []byte, altText string) error {
	variables := map[string]interface{}{
		"productId": productID,
		"image": shopify.ImageInput{
			Attachment: base64.StdEncoding.EncodeToString(png),
			AltText:    altText,
		},
	}
	resp, err := g.client.Execute(ctx, shopify.ProductImageCreateMutation, variables)
	if err != nil {
		return fmt.Errorf("productImageCreate: %w", err)
	}

	var result struct {
		ProductImageCreate struct {
			Image *struct {
				ID  string `json:"id"`
				URL string `json:"url"`
			} `json:"image"`
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"productImageCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("parse productImageCreate response: %w", err)
	}
	if len(result.ProductImageCreate.UserErrors) > 0 {
		return fmt.Errorf("productImageCreate userErrors: %s", result.ProductImageCreate.UserErrors[0].Message)
	}
	if result.ProductImageCreate.Image == nil {
		return fmt.Errorf("productImageCreate returned no image")
	}
	g.logger.Info("Uploaded size chart image",
		zap.String("product_id", productID),
		zap.String("image_url", result.ProductImageCreate.Image.URL))
	return nil
}

// ListProducts fetches every product in the store. A page failure stops
// pagination and returns what was accumulated so far together with the error.
func (g *Gateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	cursor := ""

	for {
		variables := map[string]interface{}{"first": pageSize}
		if cursor != "" {
			variables["after"] = cursor
		}
		resp, err := g.client.Execute(ctx, shopify.ProductsQuery, variables)
		if err != nil {
			return products, fmt.Errorf("fetch products page: %w", err)
		}

		var result struct {
			Products productConnection `json:"products"`
		}
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return products, fmt.Errorf("parse products page: %w", err)
		}

		products = appendPage(products, result.Products)

		if !result.Products.PageInfo.HasNextPage || result.Products.PageInfo.EndCursor == "" {
			break
		}
		cursor = result.Products.PageInfo.EndCursor

		if err := g.limiter.Wait(ctx); err != nil {
			return products, fmt.Errorf("page rate limit wait: %w", err)
		}
	}

	g.logger.Info("Fetched products", zap.Int("count", len(products)))
	return products, nil
}

// ListCollectionProducts fetches every product of one collection, with the
// same pagination and partial-result semantics as ListProducts.
func (g *Gateway) ListCollectionProducts(ctx context.Context, collectionID string) ([]domain.Product, error) {
	var products []domain.Product
	cursor := ""

	for {
		variables := map[string]interface{}{
			"id":    collectionID,
			"first": pageSize,
		}
		if cursor != "" {
			variables["after"] = cursor
		}
		resp, err := g.client.Execute(ctx, shopify.CollectionProductsQuery, variables)
		if err != nil {
			return products, fmt.Errorf("fetch collection products page: %w", err)
		}

		var result struct {
			Collection *struct {
				Products productConnection `json:"products"`
			} `json:"collection"`
		}
		if err := json.Unmarshal(resp.Data, &result); err != nil {
			return products, fmt.Errorf("parse collection products page: %w", err)
		}
		if result.Collection == nil {
			return products, fmt.Errorf("collection not found: %s", collectionID)
		}

		products = appendPage(products, result.Collection.Products)

		if !result.Collection.Products.PageInfo.HasNextPage || result.Collection.Products.PageInfo.EndCursor == "" {
			break
		}
		cursor = result.Collection.Products.PageInfo.EndCursor

		if err := g.limiter.Wait(ctx); err != nil {
			return products, fmt.Errorf("page rate limit wait: %w", err)
		}
	}

	g.logger.Info("Fetched collection products",
		zap.String("collection_id", collectionID), zap.Int("count", len(products)))
	return products, nil
}

func appendPage(products []domain.Product, page productConnection) []domain.Product {
	for _, edge := range page.Edges {
		p := domain.Product{
			ID:              edge.Node.ID,
			Title:           edge.Node.Title,
			Handle:          edge.Node.Handle,
			DescriptionHTML: edge.Node.DescriptionHTML,
		}
		for _, img := range edge.Node.Images.Edges {
			p.Images = append(p.Images, domain.ProductImage{
				ID:      img.Node.ID,
				URL:     img.Node.URL,
				AltText: img.Node.AltText,
			})
		}
		products = append(products, p)
	}
	return products
}
