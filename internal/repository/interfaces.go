package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jafarshop/sizecharts/internal/domain"
)

// ChartRunRepository persists processing runs and their per-product results
type ChartRunRepository interface {
	CreateRun(ctx context.Context, run *domain.ChartRun) error
	UpdateRun(ctx context.Context, run *domain.ChartRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*domain.ChartRun, error)
	ListRuns(ctx context.Context, limit int) ([]*domain.ChartRun, error)
	AddResult(ctx context.Context, result *domain.ChartRunResult) error
	ListResults(ctx context.Context, runID uuid.UUID) ([]*domain.ChartRunResult, error)
}

// Repositories bundles all repositories
type Repositories struct {
	ChartRuns ChartRunRepository
}
