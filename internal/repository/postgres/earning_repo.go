package postgres

import (
	"context"
	"time"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const earningSelect = `SELECT e.id, e.worker_id, e.job_id, j.title, e.amount, e.currency, e.status, e.paid_at, e.created_at
	FROM earnings e
	LEFT JOIN jobs j ON j.id = e.job_id`

type earningRepo struct {
	db *pgxpool.Pool
}

func NewEarningRepository(db *pgxpool.Pool) domain.EarningRepository {
	return &earningRepo{db: db}
}

func scanEarning(row rowScanner) (*domain.Earning, error) {
	var e domain.Earning
	if err := row.Scan(&e.ID, &e.WorkerID, &e.JobID, &e.JobTitle, &e.Amount, &e.Currency, &e.Status, &e.PaidAt, &e.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &e, nil
}

func (r *earningRepo) Create(ctx context.Context, e *domain.Earning) error {
	query := `INSERT INTO earnings (worker_id, job_id, amount, currency, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return mapError(r.db.QueryRow(ctx, query, e.WorkerID, e.JobID, e.Amount, e.Currency, e.Status, e.CreatedAt).Scan(&e.ID))
}

func (r *earningRepo) GetByID(ctx context.Context, id int64) (*domain.Earning, error) {
	return scanEarning(r.db.QueryRow(ctx, earningSelect+` WHERE e.id = $1`, id))
}

func (r *earningRepo) ListByWorker(ctx context.Context, workerID string, limit, offset int) ([]domain.Earning, int64, error) {
	rows, err := r.db.Query(ctx, earningSelect+` WHERE e.worker_id = $1 ORDER BY e.created_at DESC, e.id DESC LIMIT $2 OFFSET $3`,
		workerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var earnings []domain.Earning
	for rows.Next() {
		e, err := scanEarning(rows)
		if err != nil {
			return nil, 0, err
		}
		earnings = append(earnings, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM earnings WHERE worker_id = $1`, workerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return earnings, total, nil
}

// Summary totals in a single pass; currency is the most recent one used
func (r *earningRepo) Summary(ctx context.Context, workerID string, since time.Time) (*domain.EarningsSummary, error) {
	query := `SELECT
		COALESCE(SUM(amount), 0),
		COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0),
		COALESCE(SUM(amount) FILTER (WHERE status = 'pending'), 0),
		COALESCE(SUM(amount) FILTER (WHERE created_at >= $2), 0),
		COUNT(*),
		COALESCE((SELECT currency FROM earnings WHERE worker_id = $1 ORDER BY created_at DESC LIMIT 1), '')
	FROM earnings WHERE worker_id = $1`
	var s domain.EarningsSummary
	err := r.db.QueryRow(ctx, query, workerID, since).Scan(&s.Total, &s.Paid, &s.Pending, &s.Last30Days, &s.Count, &s.Currency)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *earningRepo) MarkPaid(ctx context.Context, id int64, paidAt time.Time) error {
	return affected(r.db.Exec(ctx, `UPDATE earnings SET status = 'paid', paid_at = $2 WHERE id = $1 AND status <> 'paid'`, id, paidAt))
}
