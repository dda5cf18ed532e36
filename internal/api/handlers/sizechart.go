package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/sizecharts/internal/chart"
	"github.com/jafarshop/sizecharts/internal/domain"
	"github.com/jafarshop/sizecharts/internal/extract"
	"github.com/jafarshop/sizecharts/internal/service"
	apperrors "github.com/jafarshop/sizecharts/pkg/errors"
)

type startRunRequest struct {
	Scope        string `json:"scope" binding:"required"`
	CollectionID string `json:"collectionId"`
}

// HandleStartRun kicks off a background chart run over the store or one collection
func HandleStartRun(runs *service.RunService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req startRunRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		scope := domain.RunScope(req.Scope)
		run, err := runs.StartRun(c.Request.Context(), scope, req.CollectionID)
		if err != nil {
			logger.Warn("Failed to start chart run", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"runId":     run.ID.String(),
			"scope":     run.Scope,
			"status":    run.Status,
			"startedAt": run.StartedAt,
		})
	}
}

// HandleGetRun returns a run with its per-product results
func HandleGetRun(runs *service.RunService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
			return
		}

		run, results, err := runs.GetRun(c.Request.Context(), id)
		if err != nil {
			if _, ok := err.(*apperrors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to load chart run", zap.String("run_id", id.String()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run"})
			return
		}

		type resultView struct {
			ProductID    string `json:"productId"`
			ProductTitle string `json:"productTitle"`
			Outcome      string `json:"outcome"`
			Error        string `json:"error,omitempty"`
		}
		views := make([]resultView, 0, len(results))
		for _, r := range results {
			v := resultView{
				ProductID:    r.ProductID,
				ProductTitle: r.ProductTitle,
				Outcome:      string(r.Outcome),
			}
			if r.Error != nil {
				v.Error = *r.Error
			}
			views = append(views, v)
		}

		c.JSON(http.StatusOK, gin.H{
			"runId":       run.ID.String(),
			"scope":       run.Scope,
			"status":      run.Status,
			"total":       run.Total,
			"successful":  run.Successful,
			"skipped":     run.Skipped,
			"failed":      run.Failed,
			"startedAt":   run.StartedAt,
			"completedAt": run.CompletedAt,
			"results":     views,
		})
	}
}

// HandleListRuns returns recent runs, newest first
func HandleListRuns(runs *service.RunService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := runs.ListRuns(c.Request.Context(), 50)
		if err != nil {
			logger.Error("Failed to list chart runs", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"runs": list})
	}
}

type previewRequest struct {
	DescriptionHTML string `json:"descriptionHtml" binding:"required"`
	MinPairs        int    `json:"minPairs"`
}

// HandlePreview extracts measurements from a pasted description and returns
// them with an HTML table preview, without touching Shopify
func HandlePreview(style chart.StyleConfig, logger *zap.Logger) gin.HandlerFunc {
	htmlRenderer := chart.NewHTMLRenderer()

	return func(c *gin.Context) {
		var req previewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		extractor := extract.NewExtractor(req.MinPairs)
		sizeChart := extractor.Extract(req.DescriptionHTML)
		if sizeChart.IsEmpty() {
			c.JSON(http.StatusOK, gin.H{
				"found":        false,
				"measurements": gin.H{},
			})
			return
		}

		measurements := make(map[string]map[string]string, len(sizeChart.Sizes()))
		for _, size := range sizeChart.Sizes() {
			measurements[size] = sizeChart.Measurements(size)
		}

		html, err := htmlRenderer.Render(sizeChart, domain.Product{}, style)
		if err != nil {
			logger.Warn("Preview HTML render failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render preview"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"found":        true,
			"sizes":        sizeChart.Sizes(),
			"measurements": measurements,
			"totalPairs":   sizeChart.TotalPairs(),
			"tableHtml":    string(html),
		})
	}
}
