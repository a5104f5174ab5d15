package domain

import (
	"context"
	"time"
)

// Earning status constants
const (
	EarningStatusPending = "pending"
	EarningStatusPaid    = "paid"
)

type Earning struct {
	ID        int64      `json:"id"`
	WorkerID  string     `json:"worker_id"`
	JobID     *int64     `json:"job_id"`
	JobTitle  *string    `json:"job_title,omitempty"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type EarningsSummary struct {
	Total      float64 `json:"total"`
	Paid       float64 `json:"paid"`
	Pending    float64 `json:"pending"`
	Last30Days float64 `json:"last_30_days"`
	Count      int64   `json:"count"`
	Currency   string  `json:"currency"`
}

type EarningRepository interface {
	Create(ctx context.Context, earning *Earning) error
	GetByID(ctx context.Context, id int64) (*Earning, error)
	ListByWorker(ctx context.Context, workerID string, limit, offset int) ([]Earning, int64, error)
	Summary(ctx context.Context, workerID string, since time.Time) (*EarningsSummary, error)
	MarkPaid(ctx context.Context, id int64, paidAt time.Time) error
}

type EarningUsecase interface {
	List(ctx context.Context, userID string, page, pageSize int) (*PaginatedResult[Earning], error)
	Summary(ctx context.Context, userID string) (*EarningsSummary, error)
	MarkPaid(ctx context.Context, id int64) (*Earning, error)
}
