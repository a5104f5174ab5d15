package postgres

import (
	"context"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const documentColumns = `id, worker_id, doc_type, file_key, file_url, original_name, mime_type, size_bytes, status,
	review_reason, reviewed_by, reviewed_at, created_at`

type documentRepo struct {
	db *pgxpool.Pool
}

func NewDocumentRepository(db *pgxpool.Pool) domain.DocumentRepository {
	return &documentRepo{db: db}
}

func scanDocument(row rowScanner) (*domain.Document, error) {
	var d domain.Document
	err := row.Scan(&d.ID, &d.WorkerID, &d.DocType, &d.FileKey, &d.FileURL, &d.OriginalName, &d.MimeType, &d.SizeBytes, &d.Status,
		&d.ReviewReason, &d.ReviewedBy, &d.ReviewedAt, &d.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &d, nil
}

func (r *documentRepo) Create(ctx context.Context, d *domain.Document) error {
	query := `INSERT INTO documents (id, worker_id, doc_type, file_key, file_url, original_name, mime_type, size_bytes, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query, d.ID, d.WorkerID, d.DocType, d.FileKey, d.FileURL, d.OriginalName, d.MimeType,
		d.SizeBytes, d.Status, d.CreatedAt)
	return mapError(err)
}

func (r *documentRepo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	return scanDocument(r.db.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
}

func (r *documentRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Document, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

func (r *documentRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.Document, error) {
	return r.list(ctx, `SELECT `+documentColumns+` FROM documents WHERE worker_id = $1 ORDER BY created_at DESC`, workerID)
}

// ListByStatus returns the review queue, oldest first
func (r *documentRepo) ListByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Document, int64, error) {
	docs, err := r.list(ctx, `SELECT `+documentColumns+` FROM documents WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
		status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (r *documentRepo) Review(ctx context.Context, id, status, reviewerID string, reason *string) error {
	query := `UPDATE documents SET status = $2, reviewed_by = $3, review_reason = $4, reviewed_at = NOW()
              WHERE id = $1 AND status = 'pending'`
	return affected(r.db.Exec(ctx, query, id, status, reviewerID, reason))
}
