package domain

import (
	"context"
	"time"
)

type Review struct {
	ID           int64     `json:"id"`
	JobID        int64     `json:"job_id"`
	ReviewerID   string    `json:"reviewer_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	RevieweeID   string    `json:"reviewee_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	IsHidden     bool      `json:"is_hidden"`
	HiddenReason *string   `json:"hidden_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateReviewRequest struct {
	JobID   int64  `json:"job_id" binding:"required,gt=0"`
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ReviewFilter is used by admin moderation listings
type ReviewFilter struct {
	RevieweeID    string `form:"reviewee_id"`
	IncludeHidden bool   `form:"include_hidden"`
	MaxRating     int    `form:"max_rating"`
	Page          int    `form:"page"`
	PageSize      int    `form:"pageSize"`
}

type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id int64) (*Review, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id int64) error
	Hide(ctx context.Context, id int64, reason string) error
	Fetch(ctx context.Context, filter ReviewFilter, limit, offset int) ([]Review, int64, error)
}

type ReviewUsecase interface {
	CreateReview(ctx context.Context, userID string, req CreateReviewRequest) (*Review, error)
	UpdateReview(ctx context.Context, userID string, id int64, req UpdateReviewRequest) (*Review, error)
	DeleteReview(ctx context.Context, userID string, id int64) error
	ListForWorker(ctx context.Context, workerID string, page, pageSize int) (*PaginatedResult[Review], error)
}
