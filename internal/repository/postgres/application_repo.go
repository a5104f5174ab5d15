package postgres

import (
	"context"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationSelect = `SELECT a.id, a.job_id, a.worker_id, a.cover_letter, a.proposed_rate, a.status, a.created_at, a.updated_at,
	u.full_name, u.email, j.title
	FROM applications a
	JOIN users u ON u.id = a.worker_id
	JOIN jobs j ON j.id = a.job_id`

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplication(row rowScanner) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(&a.ID, &a.JobID, &a.WorkerID, &a.CoverLetter, &a.ProposedRate, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		&a.WorkerName, &a.WorkerEmail, &a.JobTitle)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *applicationRepo) list(ctx context.Context, where string, arg interface{}) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, applicationSelect+where+` ORDER BY a.created_at DESC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// Create inserts a new application
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (job_id, worker_id, cover_letter, proposed_rate, status)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	return mapError(r.db.QueryRow(ctx, query, app.JobID, app.WorkerID, app.CoverLetter, app.ProposedRate, app.Status).
		Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt))
}

// GetByID retrieves an application by ID
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	return scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
}

// GetByJobID retrieves all applications for a job
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	return r.list(ctx, ` WHERE a.job_id = $1`, jobID)
}

// GetByWorkerID retrieves all applications submitted by a worker
func (r *applicationRepo) GetByWorkerID(ctx context.Context, workerID string) ([]domain.Application, error) {
	return r.list(ctx, ` WHERE a.worker_id = $1`, workerID)
}

// CheckExists checks if a worker already applied to a job
func (r *applicationRepo) CheckExists(ctx context.Context, jobID int64, workerID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND worker_id = $2)`, jobID, workerID).Scan(&exists)
	return exists, err
}

// UpdateStatus updates the status of an application
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return affected(r.db.Exec(ctx, `UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`, id, status))
}

// Accept hires the applicant. The job must still be open; a concurrent hire
// makes the job update affect no rows and the transaction rolls back.
func (r *applicationRepo) Accept(ctx context.Context, app *domain.Application) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var agreed *float64
	if app.ProposedRate > 0 {
		rate := app.ProposedRate
		agreed = &rate
	}
	tag, err := tx.Exec(ctx,
		`UPDATE jobs SET status = 'in_progress', hired_worker_id = $2, agreed_amount = COALESCE($3, budget_max), updated_at = NOW()
         WHERE id = $1 AND status = 'open'`,
		app.JobID, app.WorkerID, agreed)
	if err := affected(tag, err); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE applications SET status = 'accepted', updated_at = NOW() WHERE id = $1`, app.ID); err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`UPDATE applications SET status = 'rejected', updated_at = NOW()
         WHERE job_id = $1 AND id <> $2 AND status IN ('pending', 'shortlisted')`,
		app.JobID, app.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes an application
func (r *applicationRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id))
}
