package postgres

import (
	"context"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const portfolioColumns = `id, worker_id, title, description, project_url, media_url, thumbnail_url, tags, sort_order, created_at, updated_at`

type portfolioRepo struct {
	db *pgxpool.Pool
}

func NewPortfolioRepository(db *pgxpool.Pool) domain.PortfolioRepository {
	return &portfolioRepo{db: db}
}

func scanPortfolioItem(row rowScanner) (*domain.PortfolioItem, error) {
	var p domain.PortfolioItem
	err := row.Scan(&p.ID, &p.WorkerID, &p.Title, &p.Description, &p.ProjectURL, &p.MediaURL, &p.ThumbnailURL,
		pq.Array(&p.Tags), &p.SortOrder, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

func (r *portfolioRepo) ListByWorker(ctx context.Context, workerID string) ([]domain.PortfolioItem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+portfolioColumns+` FROM portfolio_items WHERE worker_id = $1 ORDER BY sort_order, id`, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PortfolioItem
	for rows.Next() {
		item, err := scanPortfolioItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *portfolioRepo) GetByID(ctx context.Context, id int64) (*domain.PortfolioItem, error) {
	return scanPortfolioItem(r.db.QueryRow(ctx, `SELECT `+portfolioColumns+` FROM portfolio_items WHERE id = $1`, id))
}

func (r *portfolioRepo) Create(ctx context.Context, p *domain.PortfolioItem) error {
	query := `INSERT INTO portfolio_items (worker_id, title, description, project_url, tags, sort_order)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`
	return mapError(r.db.QueryRow(ctx, query, p.WorkerID, p.Title, p.Description, p.ProjectURL, pq.Array(p.Tags), p.SortOrder).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *portfolioRepo) Update(ctx context.Context, p *domain.PortfolioItem) error {
	query := `UPDATE portfolio_items SET title = $2, description = $3, project_url = $4, tags = $5, sort_order = $6, updated_at = $7
              WHERE id = $1`
	return affected(r.db.Exec(ctx, query, p.ID, p.Title, p.Description, p.ProjectURL, pq.Array(p.Tags), p.SortOrder, p.UpdatedAt))
}

func (r *portfolioRepo) SetMedia(ctx context.Context, id int64, mediaURL, thumbnailURL *string) error {
	query := `UPDATE portfolio_items SET media_url = $2, thumbnail_url = $3, updated_at = NOW() WHERE id = $1`
	return affected(r.db.Exec(ctx, query, id, mediaURL, thumbnailURL))
}

func (r *portfolioRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM portfolio_items WHERE id = $1`, id))
}

func (r *portfolioRepo) CountByWorker(ctx context.Context, workerID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM portfolio_items WHERE worker_id = $1`, workerID).Scan(&n)
	return n, err
}

const certificateColumns = `id, worker_id, name, issuer, issued_at, expires_at, credential_url, created_at`

func scanCertificate(row rowScanner) (*domain.Certificate, error) {
	var c domain.Certificate
	if err := row.Scan(&c.ID, &c.WorkerID, &c.Name, &c.Issuer, &c.IssuedAt, &c.ExpiresAt, &c.CredentialURL, &c.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

func (r *portfolioRepo) ListCertificates(ctx context.Context, workerID string) ([]domain.Certificate, error) {
	rows, err := r.db.Query(ctx, `SELECT `+certificateColumns+` FROM certificates WHERE worker_id = $1 ORDER BY issued_at DESC`, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var certs []domain.Certificate
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		certs = append(certs, *c)
	}
	return certs, rows.Err()
}

func (r *portfolioRepo) GetCertificate(ctx context.Context, id int64) (*domain.Certificate, error) {
	return scanCertificate(r.db.QueryRow(ctx, `SELECT `+certificateColumns+` FROM certificates WHERE id = $1`, id))
}

func (r *portfolioRepo) CreateCertificate(ctx context.Context, c *domain.Certificate) error {
	query := `INSERT INTO certificates (worker_id, name, issuer, issued_at, expires_at, credential_url)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	return mapError(r.db.QueryRow(ctx, query, c.WorkerID, c.Name, c.Issuer, c.IssuedAt, c.ExpiresAt, c.CredentialURL).
		Scan(&c.ID, &c.CreatedAt))
}

func (r *portfolioRepo) UpdateCertificate(ctx context.Context, c *domain.Certificate) error {
	query := `UPDATE certificates SET name = $2, issuer = $3, issued_at = $4, expires_at = $5, credential_url = $6 WHERE id = $1`
	return affected(r.db.Exec(ctx, query, c.ID, c.Name, c.Issuer, c.IssuedAt, c.ExpiresAt, c.CredentialURL))
}

func (r *portfolioRepo) DeleteCertificate(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM certificates WHERE id = $1`, id))
}
