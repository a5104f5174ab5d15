package domain

import (
	"context"
	"time"
)

// Job status constants
const (
	JobStatusOpen       = "open"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
)

type Job struct {
	ID             int64      `json:"id"`
	HirerID        string     `json:"hirer_id"`
	HirerName      string     `json:"hirer_name,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	CategoryID     *int64     `json:"category_id"`
	RequiredSkills []string   `json:"required_skills"`
	BudgetMin      float64    `json:"budget_min"`
	BudgetMax      float64    `json:"budget_max"`
	Location       string     `json:"location"`
	Status         string     `json:"status"`
	HiredWorkerID  *string    `json:"hired_worker_id"`
	AgreedAmount   *float64   `json:"agreed_amount"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type JobRequest struct {
	Title          string   `json:"title" binding:"required,min=3,max=150"`
	Description    string   `json:"description" binding:"required,max=10000"`
	CategoryID     *int64   `json:"category_id" binding:"omitempty,gt=0"`
	RequiredSkills []string `json:"required_skills" binding:"max=20,dive,min=1,max=80"`
	BudgetMin      float64  `json:"budget_min" binding:"gte=0"`
	BudgetMax      float64  `json:"budget_max" binding:"gte=0"`
	Location       string   `json:"location" binding:"max=120"`
}

// JobFilter holds public job list parameters
type JobFilter struct {
	Query      string `form:"q"`
	CategoryID int64  `form:"category"`
	Location   string `form:"location"`
	Status     string `form:"status"`
	HirerID    string `form:"-"`
	Page       int    `form:"page"`
	PageSize   int    `form:"pageSize"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, status string) error
	// Complete moves an in_progress job to completed, bumps the hired
	// worker's completed_jobs and records the earning in one transaction.
	Complete(ctx context.Context, id int64, completedAt time.Time, earning *Earning) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, userID string, req JobRequest) (*Job, error)
	GetJob(ctx context.Context, id int64) (*Job, error)
	ListOpenJobs(ctx context.Context, filter JobFilter) (*PaginatedResult[Job], error)
	ListMyJobs(ctx context.Context, userID string, filter JobFilter) (*PaginatedResult[Job], error)
	UpdateJob(ctx context.Context, userID string, id int64, req JobRequest) (*Job, error)
	DeleteJob(ctx context.Context, userID string, id int64) error
	CompleteJob(ctx context.Context, userID string, id int64) (*Job, error)
}
