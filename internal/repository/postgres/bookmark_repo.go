package postgres

import (
	"context"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type bookmarkRepo struct {
	db *pgxpool.Pool
}

func NewBookmarkRepository(db *pgxpool.Pool) domain.BookmarkRepository {
	return &bookmarkRepo{db: db}
}

func (r *bookmarkRepo) Create(ctx context.Context, b *domain.Bookmark) error {
	return mapError(r.db.QueryRow(ctx,
		`INSERT INTO bookmarks (hirer_id, worker_id, note) VALUES ($1, $2, $3) RETURNING created_at`,
		b.HirerID, b.WorkerID, b.Note,
	).Scan(&b.CreatedAt))
}

func (r *bookmarkRepo) Delete(ctx context.Context, hirerID, workerID string) error {
	return affected(r.db.Exec(ctx, `DELETE FROM bookmarks WHERE hirer_id = $1 AND worker_id = $2`, hirerID, workerID))
}

// ListByHirer returns bookmarks with the saved worker's profile attached
func (r *bookmarkRepo) ListByHirer(ctx context.Context, hirerID string, limit, offset int) ([]domain.Bookmark, int64, error) {
	query := `SELECT b.hirer_id, b.worker_id, b.note, b.created_at, ` + workerColumns + `
              FROM bookmarks b
              JOIN worker_profiles wp ON wp.user_id = b.worker_id
              JOIN users u ON u.id = b.worker_id
              WHERE b.hirer_id = $1
              ORDER BY b.created_at DESC
              LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, hirerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookmarks []domain.Bookmark
	for rows.Next() {
		var b domain.Bookmark
		var p domain.WorkerProfile
		err := rows.Scan(&b.HirerID, &b.WorkerID, &b.Note, &b.CreatedAt,
			&p.UserID, &p.FullName, &p.AvatarURL, &p.Headline, &p.Bio, &p.HourlyRate, &p.Currency,
			&p.Location, &p.YearsExperience, pq.Array(&p.Languages), &p.AvailabilityStatus, &p.RatingAvg, &p.RatingCount,
			&p.CompletedJobs, &p.ProfileCompleteness, &p.IsVerified, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		b.Worker = &p
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookmarks WHERE hirer_id = $1`, hirerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return bookmarks, total, nil
}
