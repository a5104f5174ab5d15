package domain

import (
	"context"
	"time"
)

// Availability statuses
const (
	AvailabilityAvailable   = "available"
	AvailabilityBusy        = "busy"
	AvailabilityUnavailable = "unavailable"
)

// Worker search sort orders
const (
	SortRank     = "rank"
	SortRating   = "rating"
	SortRateAsc  = "rate_asc"
	SortRateDesc = "rate_desc"
	SortNewest   = "newest"
)

// WorkerProfile is the public-facing professional profile of a worker
type WorkerProfile struct {
	UserID              string        `json:"user_id"`
	FullName            string        `json:"full_name"`
	AvatarURL           *string       `json:"avatar_url,omitempty"`
	Headline            string        `json:"headline"`
	Bio                 string        `json:"bio"`
	HourlyRate          float64       `json:"hourly_rate"`
	Currency            string        `json:"currency"`
	Location            string        `json:"location"`
	YearsExperience     int           `json:"years_experience"`
	Languages           []string      `json:"languages"`
	AvailabilityStatus  string        `json:"availability_status"`
	RatingAvg           float64       `json:"rating_avg"`
	RatingCount         int           `json:"rating_count"`
	CompletedJobs       int           `json:"completed_jobs"`
	ProfileCompleteness int           `json:"profile_completeness"`
	IsVerified          bool          `json:"is_verified"`
	RankScore           float64       `json:"rank_score"`
	WorkHistory         []WorkHistory `json:"work_history"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// WorkHistory is one past engagement on a worker profile
type WorkHistory struct {
	ID          int64      `json:"id"`
	WorkerID    string     `json:"worker_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
}

// WorkerDetail is the public profile page payload
type WorkerDetail struct {
	Profile       *WorkerProfile     `json:"profile"`
	Skills        []WorkerSkill      `json:"skills"`
	Portfolio     []PortfolioItem    `json:"portfolio"`
	Certificates  []Certificate      `json:"certificates"`
	Availability  []AvailabilitySlot `json:"availability"`
	RecentReviews []Review           `json:"recent_reviews"`
}

// WorkerFilter holds the public search parameters
type WorkerFilter struct {
	Query        string   `form:"q"`
	Skill        string   `form:"skill"`
	CategoryID   int64    `form:"category"`
	Location     string   `form:"location"`
	MinRate      *float64 `form:"min_rate"`
	MaxRate      *float64 `form:"max_rate"`
	MinRating    *float64 `form:"min_rating"`
	Availability string   `form:"availability" binding:"omitempty,oneof=available busy unavailable"`
	Verified     *bool    `form:"verified"`
	Sort         string   `form:"sort" binding:"omitempty,oneof=rank rating rate_asc rate_desc newest"`
	Page         int      `form:"page"`
	PageSize     int      `form:"pageSize"`
}

type UpdateWorkerProfileRequest struct {
	Headline           *string   `json:"headline" binding:"omitempty,max=120,no_emoji"`
	Bio                *string   `json:"bio" binding:"omitempty,max=2000"`
	HourlyRate         *float64  `json:"hourly_rate" binding:"omitempty,gte=0,lte=10000"`
	Currency           *string   `json:"currency" binding:"omitempty,currency_code"`
	Location           *string   `json:"location" binding:"omitempty,max=120"`
	YearsExperience    *int      `json:"years_experience" binding:"omitempty,gte=0,lte=60"`
	Languages          *[]string `json:"languages" binding:"omitempty,max=20,dive,min=2,max=40"`
	AvailabilityStatus *string   `json:"availability_status" binding:"omitempty,oneof=available busy unavailable"`
}

type WorkHistoryRequest struct {
	Title       string `json:"title" binding:"required,max=150"`
	Company     string `json:"company" binding:"max=150"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Description string `json:"description" binding:"max=2000"`
}

type WorkerRepository interface {
	CreateProfile(ctx context.Context, profile *WorkerProfile) error
	GetProfile(ctx context.Context, userID string) (*WorkerProfile, error)
	UpdateProfile(ctx context.Context, profile *WorkerProfile) error
	Search(ctx context.Context, filter WorkerFilter, limit, offset int) ([]WorkerProfile, int64, error)
	SetCompleteness(ctx context.Context, userID string, completeness int) error
	SetVerified(ctx context.Context, userID string, verified bool) error
	RecomputeRating(ctx context.Context, userID string) error
	IncrementCompletedJobs(ctx context.Context, userID string) error

	ListWorkHistory(ctx context.Context, workerID string) ([]WorkHistory, error)
	GetWorkHistory(ctx context.Context, id int64) (*WorkHistory, error)
	CreateWorkHistory(ctx context.Context, item *WorkHistory) error
	UpdateWorkHistory(ctx context.Context, item *WorkHistory) error
	DeleteWorkHistory(ctx context.Context, id int64) error
}

type WorkerUsecase interface {
	Search(ctx context.Context, filter WorkerFilter) (*PaginatedResult[WorkerProfile], error)
	GetPublicProfile(ctx context.Context, workerID string) (*WorkerDetail, error)
	GetMyProfile(ctx context.Context, userID string) (*WorkerProfile, error)
	UpdateMyProfile(ctx context.Context, userID string, req UpdateWorkerProfileRequest) (*WorkerProfile, error)

	AddWorkHistory(ctx context.Context, userID string, req WorkHistoryRequest) (*WorkHistory, error)
	UpdateWorkHistory(ctx context.Context, userID string, id int64, req WorkHistoryRequest) (*WorkHistory, error)
	DeleteWorkHistory(ctx context.Context, userID string, id int64) error
}
