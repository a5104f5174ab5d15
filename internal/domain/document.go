package domain

import (
	"context"
	"time"
)

// Document types
const (
	DocTypeIDCard      = "id_card"
	DocTypePassport    = "passport"
	DocTypeCertificate = "certificate"
	DocTypeOther       = "other"
)

// Document review statuses
const (
	DocumentStatusPending  = "pending"
	DocumentStatusApproved = "approved"
	DocumentStatusRejected = "rejected"
)

type Document struct {
	ID           string     `json:"id"`
	WorkerID     string     `json:"worker_id"`
	DocType      string     `json:"doc_type"`
	FileKey      string     `json:"-"`
	FileURL      string     `json:"file_url"`
	OriginalName string     `json:"original_name"`
	MimeType     string     `json:"mime_type"`
	SizeBytes    int64      `json:"size_bytes"`
	Status       string     `json:"status"`
	ReviewReason *string    `json:"review_reason"`
	ReviewedBy   *string    `json:"reviewed_by"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

type DocumentReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Reason string `json:"reason" binding:"max=500"`
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	ListByWorker(ctx context.Context, workerID string) ([]Document, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]Document, int64, error)
	Review(ctx context.Context, id, status, reviewerID string, reason *string) error
}

type DocumentUsecase interface {
	Upload(ctx context.Context, userID, docType string, upload MediaUpload) (*Document, error)
	ListMine(ctx context.Context, userID string) ([]Document, error)
	ListForReview(ctx context.Context, status string, page, pageSize int) (*PaginatedResult[Document], error)
	Review(ctx context.Context, id string, req DocumentReviewRequest) (*Document, error)
}
