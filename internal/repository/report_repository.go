package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// ReportRepository persists the per-staff task status projection.
type ReportRepository interface {
	// UpsertForUser replaces the single projection row for a staff member.
	UpsertForUser(ctx context.Context, report *domain.TaskStatusReport) error
	List(ctx context.Context) ([]domain.TaskStatusReport, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates the repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) UpsertForUser(ctx context.Context, report *domain.TaskStatusReport) error {
	const query = `
        INSERT INTO task_status_reports (user_id, user_name, status, reported_at)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (user_id) DO UPDATE
        SET user_name=EXCLUDED.user_name, status=EXCLUDED.status, reported_at=EXCLUDED.reported_at
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		report.UserID,
		report.UserName,
		report.Status,
		report.Timestamp,
	).Scan(&report.ID)
}

func (r *reportRepository) List(ctx context.Context) ([]domain.TaskStatusReport, error) {
	const query = `
        SELECT id, user_id, user_name, status, reported_at
        FROM task_status_reports
        ORDER BY reported_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TaskStatusReport
	for rows.Next() {
		var report domain.TaskStatusReport
		if err := rows.Scan(
			&report.ID,
			&report.UserID,
			&report.UserName,
			&report.Status,
			&report.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}
