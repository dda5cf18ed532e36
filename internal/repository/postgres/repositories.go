package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/jafarshop/sizecharts/internal/repository"
)

// NewRepositories creates all repositories backed by the given database
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		ChartRuns: NewChartRunRepository(db, logger),
	}
}
