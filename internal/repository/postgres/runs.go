package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/sizecharts/internal/domain"
	"github.com/jafarshop/sizecharts/pkg/errors"
)

type chartRunRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewChartRunRepository creates a new chart run repository
func NewChartRunRepository(db *sql.DB, logger *zap.Logger) *chartRunRepository {
	return &chartRunRepository{
		db:     db,
		logger: logger,
	}
}

func (r *chartRunRepository) CreateRun(ctx context.Context, run *domain.ChartRun) error {
	query := `
		INSERT INTO chart_runs (
			id, scope, collection_id, status, total, successful, skipped, failed, started_at, completed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Scope,
		run.CollectionID,
		run.Status,
		run.Total,
		run.Successful,
		run.Skipped,
		run.Failed,
		run.StartedAt,
		run.CompletedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create chart run", zap.Error(err))
		return err
	}
	return nil
}

func (r *chartRunRepository) UpdateRun(ctx context.Context, run *domain.ChartRun) error {
	query := `
		UPDATE chart_runs
		SET status = $2, total = $3, successful = $4, skipped = $5, failed = $6, completed_at = $7
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Status,
		run.Total,
		run.Successful,
		run.Skipped,
		run.Failed,
		run.CompletedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update chart run", zap.Error(err))
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &errors.ErrNotFound{Resource: "chart run", ID: run.ID.String()}
	}
	return nil
}

func (r *chartRunRepository) GetRun(ctx context.Context, id uuid.UUID) (*domain.ChartRun, error) {
	query := `
		SELECT id, scope, collection_id, status, total, successful, skipped, failed, started_at, completed_at
		FROM chart_runs
		WHERE id = $1
	`

	run := &domain.ChartRun{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID,
		&run.Scope,
		&run.CollectionID,
		&run.Status,
		&run.Total,
		&run.Successful,
		&run.Skipped,
		&run.Failed,
		&run.StartedAt,
		&run.CompletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "chart run", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get chart run", zap.Error(err))
		return nil, err
	}
	return run, nil
}

func (r *chartRunRepository) ListRuns(ctx context.Context, limit int) ([]*domain.ChartRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `
		SELECT id, scope, collection_id, status, total, successful, skipped, failed, started_at, completed_at
		FROM chart_runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list chart runs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.ChartRun
	for rows.Next() {
		run := &domain.ChartRun{}
		if err := rows.Scan(
			&run.ID,
			&run.Scope,
			&run.CollectionID,
			&run.Status,
			&run.Total,
			&run.Successful,
			&run.Skipped,
			&run.Failed,
			&run.StartedAt,
			&run.CompletedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (r *chartRunRepository) AddResult(ctx context.Context, result *domain.ChartRunResult) error {
	query := `
		INSERT INTO chart_run_results (
			id, run_id, product_id, product_title, outcome, error, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		result.ID,
		result.RunID,
		result.ProductID,
		result.ProductTitle,
		result.Outcome,
		result.Error,
		result.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to add chart run result", zap.Error(err))
		return err
	}
	return nil
}

func (r *chartRunRepository) ListResults(ctx context.Context, runID uuid.UUID) ([]*domain.ChartRunResult, error) {
	query := `
		SELECT id, run_id, product_id, product_title, outcome, error, created_at
		FROM chart_run_results
		WHERE run_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		r.logger.Error("Failed to list chart run results", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var results []*domain.ChartRunResult
	for rows.Next() {
		res := &domain.ChartRunResult{}
		if err := rows.Scan(
			&res.ID,
			&res.RunID,
			&res.ProductID,
			&res.ProductTitle,
			&res.Outcome,
			&res.Error,
			&res.CreatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
