package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/sizecharts/internal/domain"
	"github.com/jafarshop/sizecharts/internal/repository"
)

// Catalog is the full catalog surface a run needs: the per-product gateway
// plus paginated listings
type Catalog interface {
	ProductGateway
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCollectionProducts(ctx context.Context, collectionID string) ([]domain.Product, error)
}

// RunService starts batch runs, executes them in the background and records
// run history so merchants can inspect skipped/failed products afterwards.
type RunService struct {
	charts  *SizeChartService
	catalog Catalog
	repos   *repository.Repositories
	logger  *zap.Logger
}

// NewRunService creates the run coordinator. repos may be nil, in which case
// runs execute without history persistence.
func NewRunService(charts *SizeChartService, catalog Catalog, repos *repository.Repositories, logger *zap.Logger) *RunService {
	return &RunService{
		charts:  charts,
		catalog: catalog,
		repos:   repos,
		logger:  logger,
	}
}

// StartRun records a RUNNING chart run and executes it in the background.
// The returned run carries the id callers poll for status.
func (s *RunService) StartRun(ctx context.Context, scope domain.RunScope, collectionID string) (*domain.ChartRun, error) {
	if !scope.IsValid() {
		return nil, fmt.Errorf("invalid run scope: %s", scope)
	}
	if scope == domain.RunScopeCollection && collectionID == "" {
		return nil, fmt.Errorf("collection scope requires a collection id")
	}

	run := &domain.ChartRun{
		ID:        uuid.New(),
		Scope:     scope,
		Status:    domain.RunStatusRunning,
		StartedAt: time.Now(),
	}
	if collectionID != "" {
		run.CollectionID = &collectionID
	}

	if s.repos != nil {
		if err := s.repos.ChartRuns.CreateRun(ctx, run); err != nil {
			return nil, fmt.Errorf("create run record: %w", err)
		}
	}

	// a batch outlives the HTTP request that started it
	go s.executeRun(context.Background(), run)

	return run, nil
}

// ExecuteRun lists the products in scope and processes them synchronously.
// StartRun wraps it in a goroutine.
func (s *RunService) ExecuteRun(ctx context.Context, run *domain.ChartRun, onProgress ProgressFunc) []domain.ChartResult {
	products, err := s.listProducts(ctx, run)
	if err != nil {
		// a broken listing cannot be retried mid-stream; process whatever
		// pages were accumulated before the failure
		s.logger.Warn("Product listing incomplete, processing partial list",
			zap.String("run_id", run.ID.String()),
			zap.Int("products", len(products)),
			zap.Error(err))
	}
	if len(products) == 0 && err != nil {
		run.Status = domain.RunStatusFailed
		now := time.Now()
		run.CompletedAt = &now
		s.persistRun(ctx, run)
		return nil
	}

	results := s.charts.ProcessProducts(ctx, products, onProgress)

	if s.repos != nil {
		for _, r := range results {
			s.persistResult(ctx, run.ID, r)
		}
	}

	run.Total = len(results)
	for _, r := range results {
		switch domain.OutcomeOf(r) {
		case domain.OutcomeSuccess:
			run.Successful++
		case domain.OutcomeSkipped:
			run.Skipped++
		default:
			run.Failed++
		}
	}
	run.Status = domain.RunStatusCompleted
	now := time.Now()
	run.CompletedAt = &now
	s.persistRun(ctx, run)

	return results
}

func (s *RunService) executeRun(ctx context.Context, run *domain.ChartRun) {
	s.ExecuteRun(ctx, run, nil)
}

// GetRun returns a run with its per-product results
func (s *RunService) GetRun(ctx context.Context, id uuid.UUID) (*domain.ChartRun, []*domain.ChartRunResult, error) {
	if s.repos == nil {
		return nil, nil, fmt.Errorf("run history is not configured")
	}
	run, err := s.repos.ChartRuns.GetRun(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	results, err := s.repos.ChartRuns.ListResults(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return run, results, nil
}

// ListRuns returns recent runs, newest first
func (s *RunService) ListRuns(ctx context.Context, limit int) ([]*domain.ChartRun, error) {
	if s.repos == nil {
		return nil, fmt.Errorf("run history is not configured")
	}
	return s.repos.ChartRuns.ListRuns(ctx, limit)
}

func (s *RunService) listProducts(ctx context.Context, run *domain.ChartRun) ([]domain.Product, error) {
	if run.Scope == domain.RunScopeCollection && run.CollectionID != nil {
		return s.catalog.ListCollectionProducts(ctx, *run.CollectionID)
	}
	return s.catalog.ListProducts(ctx)
}

func (s *RunService) persistRun(ctx context.Context, run *domain.ChartRun) {
	if s.repos == nil {
		return
	}
	if err := s.repos.ChartRuns.UpdateRun(ctx, run); err != nil {
		s.logger.Warn("Failed to persist run update",
			zap.String("run_id", run.ID.String()), zap.Error(err))
	}
}

func (s *RunService) persistResult(ctx context.Context, runID uuid.UUID, result domain.ChartResult) {
	record := &domain.ChartRunResult{
		RunID:        runID,
		ProductID:    result.ProductID,
		ProductTitle: result.ProductTitle,
		Outcome:      domain.OutcomeOf(result),
	}
	if result.Error != "" {
		errMsg := result.Error
		record.Error = &errMsg
	}
	if err := s.repos.ChartRuns.AddResult(ctx, record); err != nil {
		s.logger.Warn("Failed to persist run result",
			zap.String("run_id", runID.String()),
			zap.String("product_id", result.ProductID),
			zap.Error(err))
	}
}
