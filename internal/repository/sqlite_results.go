package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/planqa/aperture/internal/domain"
)

// SQLiteResultRepo implements ResultRepo using a SQLite database.
type SQLiteResultRepo struct {
	db *sql.DB
}

// NewSQLiteResultRepo creates a new SQLiteResultRepo.
func NewSQLiteResultRepo(db *sql.DB) *SQLiteResultRepo {
	return &SQLiteResultRepo{db: db}
}

func (r *SQLiteResultRepo) SaveRun(ctx context.Context, run *domain.Run) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, plan_label, source_file, created_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.PlanLabel, run.SourceFile, run.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, pm := range run.PlanMetrics {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO plan_metrics (run_id, metric, unit, value) VALUES (?, ?, ?, ?)`,
			run.ID, pm.Metric, pm.Unit, pm.Value,
		)
		if err != nil {
			return fmt.Errorf("inserting plan metric %s: %w", pm.Metric, err)
		}
	}

	for _, bm := range run.BeamMetrics {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO beam_metrics (run_id, beam_name, delivery_type, beam_mu, metric, value)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, bm.BeamName, string(bm.DeliveryType), bm.BeamMU, bm.Metric, bm.Value,
		)
		if err != nil {
			return fmt.Errorf("inserting beam metric %s/%s: %w", bm.BeamName, bm.Metric, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	committed = true
	return nil
}

func (r *SQLiteResultRepo) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, plan_label, source_file, created_at FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT metric, unit, value FROM plan_metrics WHERE run_id = ? ORDER BY metric`, id)
	if err != nil {
		return nil, fmt.Errorf("loading plan metrics: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var pm domain.PlanMetricValue
		if err := rows.Scan(&pm.Metric, &pm.Unit, &pm.Value); err != nil {
			return nil, fmt.Errorf("scanning plan metric: %w", err)
		}
		run.PlanMetrics = append(run.PlanMetrics, pm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan metrics: %w", err)
	}

	beamRows, err := r.db.QueryContext(ctx,
		`SELECT beam_name, delivery_type, beam_mu, metric, value
		 FROM beam_metrics WHERE run_id = ? ORDER BY beam_name, metric`, id)
	if err != nil {
		return nil, fmt.Errorf("loading beam metrics: %w", err)
	}
	defer beamRows.Close()
	for beamRows.Next() {
		var bm domain.BeamMetricValue
		var deliveryType string
		if err := beamRows.Scan(&bm.BeamName, &deliveryType, &bm.BeamMU, &bm.Metric, &bm.Value); err != nil {
			return nil, fmt.Errorf("scanning beam metric: %w", err)
		}
		bm.DeliveryType = domain.DeliveryType(deliveryType)
		run.BeamMetrics = append(run.BeamMetrics, bm)
	}
	if err := beamRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating beam metrics: %w", err)
	}

	return run, nil
}

func (r *SQLiteResultRepo) ListRuns(ctx context.Context, planLabel string, limit int) ([]*domain.Run, error) {
	query := `SELECT id, plan_label, source_file, created_at FROM runs`
	args := []any{}
	if planLabel != "" {
		query += ` WHERE plan_label = ?`
		args = append(args, planLabel)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var createdAt string
	if err := row.Scan(&run.ID, &run.PlanLabel, &run.SourceFile, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found")
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing run timestamp: %w", err)
	}
	run.CreatedAt = t
	return &run, nil
}
