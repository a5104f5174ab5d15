package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Fraud alert types
const (
	FraudTypePaymentAnomaly     = "payment_anomaly"
	FraudTypeLoginAnomaly       = "login_anomaly"
	FraudTypeReviewManipulation = "review_manipulation"
	FraudTypeDuplicateAccount   = "duplicate_account"
	FraudTypeRateOutlier        = "rate_outlier"
)

// Fraud alert severities
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Fraud alert statuses
const (
	FraudStatusOpen          = "open"
	FraudStatusInvestigating = "investigating"
	FraudStatusResolved      = "resolved"
	FraudStatusDismissed     = "dismissed"
)

type FraudAlert struct {
	ID             int64           `json:"id"`
	AlertType      string          `json:"alert_type"`
	Severity       string          `json:"severity"`
	Status         string          `json:"status"`
	SubjectUserID  string          `json:"subject_user_id"`
	Description    string          `json:"description"`
	Evidence       json.RawMessage `json:"evidence,omitempty"`
	EvidenceIDs    []string        `json:"evidence_ids"`
	ResolvedBy     *string         `json:"resolved_by"`
	ResolutionNote *string         `json:"resolution_note"`
	ResolvedAt     *time.Time      `json:"resolved_at"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type FraudAlertFilter struct {
	AlertType string `form:"type" binding:"omitempty,oneof=payment_anomaly login_anomaly review_manipulation duplicate_account rate_outlier"`
	Severity  string `form:"severity" binding:"omitempty,oneof=low medium high critical"`
	Status    string `form:"status" binding:"omitempty,oneof=open investigating resolved dismissed"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

type UpdateFraudAlertRequest struct {
	Status string `json:"status" binding:"required,oneof=investigating resolved dismissed"`
	Note   string `json:"note" binding:"max=2000"`
}

type FraudStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	BySeverity map[string]int64 `json:"by_severity"`
	ByType     map[string]int64 `json:"by_type"`
	Daily      []DailyCount     `json:"daily"`
}

type DailyCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// ScanResult summarizes one detector run
type ScanResult struct {
	Raised  []FraudAlert   `json:"raised"`
	ByType  map[string]int `json:"by_type"`
	Skipped int            `json:"skipped"`
}

// Detector input rows

type EarningsWindow struct {
	WorkerID    string
	Last24h     float64
	Prior30Days float64
}

type LoginFailureCount struct {
	UserID   string
	Failures int
	EventIDs []string
}

type ReviewBurst struct {
	RevieweeID    string
	FreshReviews  int
	ReviewIDs     []string
	ReviewerCount int
}

type SharedPhone struct {
	Phone   string
	UserIDs []string
}

type WorkerRate struct {
	WorkerID   string
	CategoryID int64
	HourlyRate float64
}

type FraudRepository interface {
	Create(ctx context.Context, alert *FraudAlert) error
	GetByID(ctx context.Context, id int64) (*FraudAlert, error)
	Fetch(ctx context.Context, filter FraudAlertFilter, limit, offset int) ([]FraudAlert, int64, error)
	UpdateStatus(ctx context.Context, alert *FraudAlert) error
	HasActive(ctx context.Context, alertType, subjectUserID string) (bool, error)
	Stats(ctx context.Context, since time.Time) (*FraudStats, error)
	ListAll(ctx context.Context) ([]FraudAlert, error)

	// Detector inputs
	EarningsWindows(ctx context.Context, now time.Time) ([]EarningsWindow, error)
	LoginFailures(ctx context.Context, since time.Time) ([]LoginFailureCount, error)
	FreshAccountReviewBursts(ctx context.Context, since time.Time, accountAge time.Duration) ([]ReviewBurst, error)
	SharedPhones(ctx context.Context) ([]SharedPhone, error)
	WorkerRates(ctx context.Context) ([]WorkerRate, error)
}

type FraudUsecase interface {
	Scan(ctx context.Context) (*ScanResult, error)
	ListAlerts(ctx context.Context, filter FraudAlertFilter) (*PaginatedResult[FraudAlert], error)
	GetAlert(ctx context.Context, id int64) (*FraudAlert, error)
	UpdateAlert(ctx context.Context, id int64, req UpdateFraudAlertRequest) (*FraudAlert, error)
	Stats(ctx context.Context) (*FraudStats, error)
}
