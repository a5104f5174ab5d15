package domain

import (
	"context"
	"time"
)

// MaxPortfolioItems caps the number of portfolio entries per worker
const MaxPortfolioItems = 20

type PortfolioItem struct {
	ID           int64     `json:"id"`
	WorkerID     string    `json:"worker_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ProjectURL   *string   `json:"project_url"`
	MediaURL     *string   `json:"media_url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	Tags         []string  `json:"tags"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Certificate struct {
	ID            int64      `json:"id"`
	WorkerID      string     `json:"worker_id"`
	Name          string     `json:"name"`
	Issuer        string     `json:"issuer"`
	IssuedAt      time.Time  `json:"issued_at"`
	ExpiresAt     *time.Time `json:"expires_at"`
	CredentialURL *string    `json:"credential_url"`
	CreatedAt     time.Time  `json:"created_at"`
}

type PortfolioItemRequest struct {
	Title       string   `json:"title" binding:"required,max=150"`
	Description string   `json:"description" binding:"max=2000"`
	ProjectURL  *string  `json:"project_url" binding:"omitempty,url"`
	Tags        []string `json:"tags" binding:"max=15,dive,min=1,max=40"`
	SortOrder   int      `json:"sort_order" binding:"gte=0"`
}

type CertificateRequest struct {
	Name          string  `json:"name" binding:"required,max=150"`
	Issuer        string  `json:"issuer" binding:"max=150"`
	IssuedAt      string  `json:"issued_at" binding:"required,datetime=2006-01-02"`
	ExpiresAt     string  `json:"expires_at" binding:"omitempty,datetime=2006-01-02"`
	CredentialURL *string `json:"credential_url" binding:"omitempty,url"`
}

// MediaUpload is a file received from a multipart form
type MediaUpload struct {
	Filename string
	Data     []byte
}

type PortfolioRepository interface {
	ListByWorker(ctx context.Context, workerID string) ([]PortfolioItem, error)
	GetByID(ctx context.Context, id int64) (*PortfolioItem, error)
	Create(ctx context.Context, item *PortfolioItem) error
	Update(ctx context.Context, item *PortfolioItem) error
	SetMedia(ctx context.Context, id int64, mediaURL, thumbnailURL *string) error
	Delete(ctx context.Context, id int64) error
	CountByWorker(ctx context.Context, workerID string) (int, error)

	ListCertificates(ctx context.Context, workerID string) ([]Certificate, error)
	GetCertificate(ctx context.Context, id int64) (*Certificate, error)
	CreateCertificate(ctx context.Context, cert *Certificate) error
	UpdateCertificate(ctx context.Context, cert *Certificate) error
	DeleteCertificate(ctx context.Context, id int64) error
}

type PortfolioUsecase interface {
	ListItems(ctx context.Context, workerID string) ([]PortfolioItem, error)
	CreateItem(ctx context.Context, userID string, req PortfolioItemRequest) (*PortfolioItem, error)
	UpdateItem(ctx context.Context, userID string, id int64, req PortfolioItemRequest) (*PortfolioItem, error)
	DeleteItem(ctx context.Context, userID string, id int64) error
	UploadMedia(ctx context.Context, userID string, id int64, upload MediaUpload) (*PortfolioItem, error)

	ListCertificates(ctx context.Context, workerID string) ([]Certificate, error)
	CreateCertificate(ctx context.Context, userID string, req CertificateRequest) (*Certificate, error)
	UpdateCertificate(ctx context.Context, userID string, id int64, req CertificateRequest) (*Certificate, error)
	DeleteCertificate(ctx context.Context, userID string, id int64) error
}
