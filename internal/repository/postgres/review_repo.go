package postgres

import (
	"context"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const reviewSelect = `SELECT r.id, r.job_id, r.reviewer_id, u.full_name, r.reviewee_id, r.rating, r.comment,
	r.is_hidden, r.hidden_reason, r.created_at, r.updated_at
	FROM reviews r
	JOIN users u ON u.id = r.reviewer_id`

type reviewRepo struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) domain.ReviewRepository {
	return &reviewRepo{db: db}
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(&rv.ID, &rv.JobID, &rv.ReviewerID, &rv.ReviewerName, &rv.RevieweeID, &rv.Rating, &rv.Comment,
		&rv.IsHidden, &rv.HiddenReason, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &rv, nil
}

func (r *reviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (job_id, reviewer_id, reviewee_id, rating, comment)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	return mapError(r.db.QueryRow(ctx, query, rv.JobID, rv.ReviewerID, rv.RevieweeID, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.CreatedAt, &rv.UpdatedAt))
}

func (r *reviewRepo) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	return scanReview(r.db.QueryRow(ctx, reviewSelect+` WHERE r.id = $1`, id))
}

func (r *reviewRepo) Update(ctx context.Context, rv *domain.Review) error {
	return affected(r.db.Exec(ctx, `UPDATE reviews SET rating = $2, comment = $3, updated_at = $4 WHERE id = $1`,
		rv.ID, rv.Rating, rv.Comment, rv.UpdatedAt))
}

func (r *reviewRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id))
}

func (r *reviewRepo) Hide(ctx context.Context, id int64, reason string) error {
	return affected(r.db.Exec(ctx, `UPDATE reviews SET is_hidden = true, hidden_reason = $2, updated_at = NOW() WHERE id = $1`, id, reason))
}

// Fetch lists reviews newest first; hidden ones only when asked for
func (r *reviewRepo) Fetch(ctx context.Context, f domain.ReviewFilter, limit, offset int) ([]domain.Review, int64, error) {
	var w whereBuilder
	if f.RevieweeID != "" {
		w.add("r.reviewee_id = ?", f.RevieweeID)
	}
	if !f.IncludeHidden {
		w.add("r.is_hidden = false")
	}
	if f.MaxRating > 0 {
		w.add("r.rating <= ?", f.MaxRating)
	}

	suffix, args := w.page(limit, offset)
	rows, err := r.db.Query(ctx, reviewSelect+w.clause()+` ORDER BY r.created_at DESC, r.id DESC`+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reviews r`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}
