package postgres

import (
	"context"
	"fmt"
	"strings"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// rankScoreSQL mirrors the ranking formula applied in the usecase so that
// ORDER BY and LIMIT/OFFSET paginate over the same order users see.
const rankScoreSQL = `((0.35 * LEAST(GREATEST(wp.rating_avg / 5.0, 0), 1)
	+ 0.20 * LEAST(wp.rating_count, 50) / 50.0
	+ 0.20 * LEAST(wp.completed_jobs, 100) / 100.0
	+ 0.15 * LEAST(GREATEST(wp.profile_completeness / 100.0, 0), 1)
	+ 0.10 * CASE WHEN wp.is_verified THEN 1 ELSE 0 END)
	* CASE wp.availability_status WHEN 'busy' THEN 0.7 WHEN 'unavailable' THEN 0.4 ELSE 1 END)`

const workerColumns = `wp.user_id, u.full_name, u.avatar_url, wp.headline, wp.bio, wp.hourly_rate, wp.currency,
	wp.location, wp.years_experience, wp.languages, wp.availability_status, wp.rating_avg, wp.rating_count,
	wp.completed_jobs, wp.profile_completeness, wp.is_verified, wp.created_at, wp.updated_at`

type workerRepo struct {
	db *pgxpool.Pool
}

func NewWorkerRepository(db *pgxpool.Pool) domain.WorkerRepository {
	return &workerRepo{db: db}
}

func scanWorker(row rowScanner) (*domain.WorkerProfile, error) {
	var p domain.WorkerProfile
	err := row.Scan(
		&p.UserID, &p.FullName, &p.AvatarURL, &p.Headline, &p.Bio, &p.HourlyRate, &p.Currency,
		&p.Location, &p.YearsExperience, pq.Array(&p.Languages), &p.AvailabilityStatus, &p.RatingAvg, &p.RatingCount,
		&p.CompletedJobs, &p.ProfileCompleteness, &p.IsVerified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

const insertProfileSQL = `INSERT INTO worker_profiles (user_id, headline, bio, hourly_rate, currency, location, years_experience,
                  languages, availability_status)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
              RETURNING created_at, updated_at`

func profileArgs(p *domain.WorkerProfile) []interface{} {
	return []interface{}{
		p.UserID, p.Headline, p.Bio, p.HourlyRate, p.Currency, p.Location, p.YearsExperience,
		pq.Array(p.Languages), p.AvailabilityStatus,
	}
}

func (r *workerRepo) CreateProfile(ctx context.Context, p *domain.WorkerProfile) error {
	err := r.db.QueryRow(ctx, insertProfileSQL, profileArgs(p)...).Scan(&p.CreatedAt, &p.UpdatedAt)
	return mapError(err)
}

func (r *workerRepo) GetProfile(ctx context.Context, userID string) (*domain.WorkerProfile, error) {
	query := `SELECT ` + workerColumns + `
              FROM worker_profiles wp
              JOIN users u ON u.id = wp.user_id
              WHERE wp.user_id = $1 AND u.role = 'worker'`
	return scanWorker(r.db.QueryRow(ctx, query, userID))
}

func (r *workerRepo) UpdateProfile(ctx context.Context, p *domain.WorkerProfile) error {
	query := `UPDATE worker_profiles SET
		headline = $2,
		bio = $3,
		hourly_rate = $4,
		currency = $5,
		location = $6,
		years_experience = $7,
		languages = $8,
		availability_status = $9,
		updated_at = $10
	WHERE user_id = $1`
	return affected(r.db.Exec(ctx, query,
		p.UserID, p.Headline, p.Bio, p.HourlyRate, p.Currency, p.Location, p.YearsExperience,
		pq.Array(p.Languages), p.AvailabilityStatus, p.UpdatedAt,
	))
}

func workerOrderBy(sort string) string {
	switch sort {
	case domain.SortRating:
		return "wp.rating_avg DESC, wp.rating_count DESC, wp.user_id ASC"
	case domain.SortRateAsc:
		return "wp.hourly_rate ASC, wp.user_id ASC"
	case domain.SortRateDesc:
		return "wp.hourly_rate DESC, wp.user_id ASC"
	case domain.SortNewest:
		return "wp.created_at DESC, wp.user_id ASC"
	default:
		return rankScoreSQL + " DESC, wp.rating_count DESC, wp.user_id ASC"
	}
}

// Search filters visible workers and orders them in SQL
func (r *workerRepo) Search(ctx context.Context, f domain.WorkerFilter, limit, offset int) ([]domain.WorkerProfile, int64, error) {
	var w whereBuilder
	w.add("u.role = 'worker'")
	w.add("u.is_disabled = false")

	if q := strings.TrimSpace(f.Query); q != "" {
		w.add("(u.full_name ILIKE ? OR wp.headline ILIKE ? OR wp.bio ILIKE ?)", likePattern(q), likePattern(q), likePattern(q))
	}
	if s := strings.TrimSpace(f.Skill); s != "" {
		w.add("EXISTS (SELECT 1 FROM worker_skills ws WHERE ws.worker_id = wp.user_id AND ws.skill_name ILIKE ?)", likePattern(s))
	}
	if f.CategoryID > 0 {
		w.add("EXISTS (SELECT 1 FROM worker_skills ws WHERE ws.worker_id = wp.user_id AND ws.category_id = ?)", f.CategoryID)
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		w.add("wp.location ILIKE ?", likePattern(loc))
	}
	if f.MinRate != nil {
		w.add("wp.hourly_rate >= ?", *f.MinRate)
	}
	if f.MaxRate != nil {
		w.add("wp.hourly_rate <= ?", *f.MaxRate)
	}
	if f.MinRating != nil {
		w.add("wp.rating_avg >= ?", *f.MinRating)
	}
	if f.Availability != "" {
		w.add("wp.availability_status = ?", f.Availability)
	}
	if f.Verified != nil {
		w.add("wp.is_verified = ?", *f.Verified)
	}

	from := ` FROM worker_profiles wp JOIN users u ON u.id = wp.user_id`
	suffix, args := w.page(limit, offset)
	query := fmt.Sprintf("SELECT %s%s%s ORDER BY %s%s", workerColumns, from, w.clause(), workerOrderBy(f.Sort), suffix)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var profiles []domain.WorkerProfile
	for rows.Next() {
		p, err := scanWorker(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*)"+from+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *workerRepo) SetCompleteness(ctx context.Context, userID string, completeness int) error {
	_, err := r.db.Exec(ctx, `UPDATE worker_profiles SET profile_completeness = $2 WHERE user_id = $1`, userID, completeness)
	return err
}

func (r *workerRepo) SetVerified(ctx context.Context, userID string, verified bool) error {
	return affected(r.db.Exec(ctx, `UPDATE worker_profiles SET is_verified = $2, updated_at = NOW() WHERE user_id = $1`, userID, verified))
}

// RecomputeRating refreshes the aggregate from visible reviews. Users
// without a worker profile are left untouched.
func (r *workerRepo) RecomputeRating(ctx context.Context, userID string) error {
	query := `UPDATE worker_profiles wp SET
		rating_avg = COALESCE(agg.avg_rating, 0),
		rating_count = agg.cnt,
		updated_at = NOW()
	FROM (
		SELECT AVG(rating)::float8 AS avg_rating, COUNT(*) AS cnt
		FROM reviews WHERE reviewee_id = $1 AND is_hidden = false
	) agg
	WHERE wp.user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *workerRepo) IncrementCompletedJobs(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, `UPDATE worker_profiles SET completed_jobs = completed_jobs + 1, updated_at = NOW() WHERE user_id = $1`, userID)
	return err
}

func (r *workerRepo) ListWorkHistory(ctx context.Context, workerID string) ([]domain.WorkHistory, error) {
	query := `SELECT id, worker_id, title, company, start_date, end_date, description, created_at
              FROM work_history WHERE worker_id = $1 ORDER BY start_date DESC, id DESC`
	rows, err := r.db.Query(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.WorkHistory
	for rows.Next() {
		var h domain.WorkHistory
		if err := rows.Scan(&h.ID, &h.WorkerID, &h.Title, &h.Company, &h.StartDate, &h.EndDate, &h.Description, &h.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

func (r *workerRepo) GetWorkHistory(ctx context.Context, id int64) (*domain.WorkHistory, error) {
	query := `SELECT id, worker_id, title, company, start_date, end_date, description, created_at
              FROM work_history WHERE id = $1`
	var h domain.WorkHistory
	err := r.db.QueryRow(ctx, query, id).Scan(&h.ID, &h.WorkerID, &h.Title, &h.Company, &h.StartDate, &h.EndDate, &h.Description, &h.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &h, nil
}

func (r *workerRepo) CreateWorkHistory(ctx context.Context, h *domain.WorkHistory) error {
	query := `INSERT INTO work_history (worker_id, title, company, start_date, end_date, description)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	return mapError(r.db.QueryRow(ctx, query, h.WorkerID, h.Title, h.Company, h.StartDate, h.EndDate, h.Description).
		Scan(&h.ID, &h.CreatedAt))
}

func (r *workerRepo) UpdateWorkHistory(ctx context.Context, h *domain.WorkHistory) error {
	query := `UPDATE work_history SET title = $2, company = $3, start_date = $4, end_date = $5, description = $6 WHERE id = $1`
	return affected(r.db.Exec(ctx, query, h.ID, h.Title, h.Company, h.StartDate, h.EndDate, h.Description))
}

func (r *workerRepo) DeleteWorkHistory(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM work_history WHERE id = $1`, id))
}
