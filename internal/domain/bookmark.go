package domain

import (
	"context"
	"time"
)

// Bookmark is a worker saved by a hirer
type Bookmark struct {
	HirerID   string         `json:"hirer_id"`
	WorkerID  string         `json:"worker_id"`
	Note      string         `json:"note"`
	CreatedAt time.Time      `json:"created_at"`
	Worker    *WorkerProfile `json:"worker,omitempty"`
}

type BookmarkRequest struct {
	WorkerID string `json:"worker_id" binding:"required"`
	Note     string `json:"note" binding:"max=500"`
}

type BookmarkRepository interface {
	Create(ctx context.Context, bookmark *Bookmark) error
	Delete(ctx context.Context, hirerID, workerID string) error
	ListByHirer(ctx context.Context, hirerID string, limit, offset int) ([]Bookmark, int64, error)
}

type BookmarkUsecase interface {
	Add(ctx context.Context, userID string, req BookmarkRequest) (*Bookmark, error)
	Remove(ctx context.Context, userID, workerID string) error
	List(ctx context.Context, userID string, page, pageSize int) (*PaginatedResult[Bookmark], error)
}
