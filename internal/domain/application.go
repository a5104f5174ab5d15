package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusPending     = "pending"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusAccepted    = "accepted"
	ApplicationStatusRejected    = "rejected"
)

// Application represents a worker's proposal for a job
type Application struct {
	ID           int64     `json:"id"`
	JobID        int64     `json:"job_id"`
	WorkerID     string    `json:"worker_id"`
	CoverLetter  string    `json:"cover_letter"`
	ProposedRate float64   `json:"proposed_rate"`
	Status       string    `json:"status"` // pending → shortlisted → accepted / rejected
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Joined data for list responses
	WorkerName  *string `json:"worker_name,omitempty"`
	WorkerEmail *string `json:"-"`
	JobTitle    *string `json:"job_title,omitempty"`
}

type ApplyRequest struct {
	CoverLetter  string  `json:"cover_letter" binding:"max=5000"`
	ProposedRate float64 `json:"proposed_rate" binding:"gte=0"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=shortlisted accepted rejected"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	GetByWorkerID(ctx context.Context, workerID string) ([]Application, error)
	CheckExists(ctx context.Context, jobID int64, workerID string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	// Accept marks the application accepted, rejects the job's other pending or shortlisted
	// applications and moves the job to in_progress in one transaction.
	Accept(ctx context.Context, app *Application) error
	Delete(ctx context.Context, id int64) error
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Worker operations
	Apply(ctx context.Context, userID string, jobID int64, req ApplyRequest) (*Application, error)
	GetMyApplications(ctx context.Context, userID string) ([]Application, error)
	Withdraw(ctx context.Context, userID string, applicationID int64) error

	// Hirer operations
	ListByJobID(ctx context.Context, userID string, jobID int64) ([]Application, error)
	UpdateStatus(ctx context.Context, userID string, applicationID int64, status string) (*Application, error)
}
