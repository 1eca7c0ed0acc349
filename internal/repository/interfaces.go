// Package repository persists and retrieves computed complexity runs.
package repository

import (
	"context"

	"github.com/planqa/aperture/internal/domain"
)

// ResultRepo stores completed metric runs for QA history.
type ResultRepo interface {
	SaveRun(ctx context.Context, run *domain.Run) error
	GetRun(ctx context.Context, id string) (*domain.Run, error)
	// ListRuns returns recent runs, newest first, without their metric
	// rows. planLabel filters to a single plan when non-empty.
	ListRuns(ctx context.Context, planLabel string, limit int) ([]*domain.Run, error)
}
