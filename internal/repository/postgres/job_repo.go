package postgres

import (
	"context"
	"strings"
	"time"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const jobColumns = `j.id, j.hirer_id, u.full_name, j.title, j.description, j.category_id, j.required_skills,
	j.budget_min, j.budget_max, j.location, j.status, j.hired_worker_id, j.agreed_amount, j.completed_at,
	j.created_at, j.updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(&j.ID, &j.HirerID, &j.HirerName, &j.Title, &j.Description, &j.CategoryID, pq.Array(&j.RequiredSkills),
		&j.BudgetMin, &j.BudgetMax, &j.Location, &j.Status, &j.HiredWorkerID, &j.AgreedAmount, &j.CompletedAt,
		&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	return &j, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (hirer_id, title, description, category_id, required_skills, budget_min, budget_max, location, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		job.HirerID, job.Title, job.Description, job.CategoryID, pq.Array(job.RequiredSkills), job.BudgetMin, job.BudgetMax,
		job.Location, job.Status, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
	return mapError(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j JOIN users u ON u.id = j.hirer_id WHERE j.id = $1`
	return scanJob(r.db.QueryRow(ctx, query, id))
}

// Fetch lists jobs newest first
func (r *jobRepo) Fetch(ctx context.Context, f domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	var w whereBuilder
	if f.Status != "" {
		w.add("j.status = ?", f.Status)
	}
	if f.HirerID != "" {
		w.add("j.hirer_id = ?", f.HirerID)
	}
	if f.CategoryID > 0 {
		w.add("j.category_id = ?", f.CategoryID)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		w.add("(j.title ILIKE ? OR j.description ILIKE ?)", likePattern(q), likePattern(q))
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		w.add("j.location ILIKE ?", likePattern(loc))
	}

	from := ` FROM jobs j JOIN users u ON u.id = j.hirer_id`
	suffix, args := w.page(limit, offset)
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+from+w.clause()+` ORDER BY j.created_at DESC, j.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+from+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $2,
		description = $3,
		category_id = $4,
		required_skills = $5,
		budget_min = $6,
		budget_max = $7,
		location = $8,
		updated_at = $9
	WHERE id = $1`
	return affected(r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.CategoryID, pq.Array(job.RequiredSkills),
		job.BudgetMin, job.BudgetMax, job.Location, job.UpdatedAt,
	))
}

func (r *jobRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id))
}

func (r *jobRepo) SetStatus(ctx context.Context, id int64, status string) error {
	return affected(r.db.Exec(ctx, `UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1`, id, status))
}

// Complete closes an in-progress job, bumps the worker's completed count
// and records the earning in one transaction.
func (r *jobRepo) Complete(ctx context.Context, id int64, completedAt time.Time, earning *domain.Earning) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE jobs SET status = 'completed', completed_at = $2, updated_at = $2 WHERE id = $1 AND status = 'in_progress'`,
		id, completedAt)
	if err := affected(tag, err); err != nil {
		return err
	}

	if earning != nil {
		_, err = tx.Exec(ctx,
			`UPDATE worker_profiles SET completed_jobs = completed_jobs + 1, updated_at = $2 WHERE user_id = $1`,
			earning.WorkerID, completedAt)
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO earnings (worker_id, job_id, amount, currency, status, created_at)
             VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			earning.WorkerID, earning.JobID, earning.Amount, earning.Currency, earning.Status, earning.CreatedAt,
		).Scan(&earning.ID)
		if err != nil {
			return mapError(err)
		}
	}

	return tx.Commit(ctx)
}
