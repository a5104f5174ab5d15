package domain

import (
	"context"
	"encoding/json"
	"time"
)

// AdminStats contains dashboard statistics
type AdminStats struct {
	TotalUsers        int64        `json:"totalUsers"`
	UsersByRole       UsersByRole  `json:"usersByRole"`
	DisabledUsers     int64        `json:"disabledUsers"`
	VerifiedWorkers   int64        `json:"verifiedWorkers"`
	TotalJobs         int64        `json:"totalJobs"`
	JobsByStatus      JobsByStatus `json:"jobsByStatus"`
	TotalApplications int64        `json:"totalApplications"`
	TotalReviews      int64        `json:"totalReviews"`
	HiddenReviews     int64        `json:"hiddenReviews"`
	PendingDocuments  int64        `json:"pendingDocuments"`
	OpenFraudAlerts   int64        `json:"openFraudAlerts"`
	SystemHealth      SystemHealth `json:"systemHealth"`
}

type UsersByRole struct {
	Admin  int64 `json:"admin"`
	Hirer  int64 `json:"hirer"`
	Worker int64 `json:"worker"`
}

type JobsByStatus struct {
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}

type SystemHealth struct {
	Status      string `json:"status"`      // "healthy", "degraded", "down"
	LastChecked string `json:"lastChecked"` // ISO8601 timestamp
}

// AdminUser represents a user for admin management
type AdminUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"fullName"`
	Phone       *string   `json:"phone,omitempty"`
	Role        string    `json:"role"`
	IsDisabled  bool      `json:"isDisabled"`
	TOTPEnabled bool      `json:"totpEnabled"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AdminUserFilter narrows the admin user listing
type AdminUserFilter struct {
	Role     string `form:"role"`
	Status   string `form:"status" binding:"omitempty,oneof=active disabled"`
	Query    string `form:"q"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// Request structs for User CRUD
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"required,max=120,valid_name"`
	Role     string `json:"role" binding:"required,oneof=worker hirer admin"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=worker hirer admin"`
}

type DisableUserRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

type HideReviewRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type PlatformConfigEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedBy *string   `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PlatformConfigRequest struct {
	Value string `json:"value" binding:"required,max=1000"`
}

// AdminAction is one row of the admin audit log
type AdminAction struct {
	ID         int64           `json:"id"`
	ActorID    string          `json:"actor_id"`
	Action     string          `json:"action"`
	TargetType string          `json:"target_type"`
	TargetID   string          `json:"target_id"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type AdminActionFilter struct {
	ActorID  string `form:"actor_id"`
	Action   string `form:"action"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

type TOTPConfirmRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// TOTPSetup is returned when an admin starts 2FA enrollment
type TOTPSetup struct {
	Secret     string `json:"secret"`
	OTPAuthURL string `json:"otpauth_url"`
}

// AdminRepository defines admin-specific data access
type AdminRepository interface {
	// Stats
	GetStats(ctx context.Context) (*AdminStats, error)

	// Users
	ListUsers(ctx context.Context, filter AdminUserFilter, limit, offset int) ([]AdminUser, int64, error)
	GetUser(ctx context.Context, userID string) (*AdminUser, error)
	DisableUser(ctx context.Context, userID string, disable bool) error
	UpdateRole(ctx context.Context, userID, role string) error
	DeleteUser(ctx context.Context, userID string) error

	// Moderation
	CancelJob(ctx context.Context, jobID int64) error

	// Platform config
	ListConfig(ctx context.Context) ([]PlatformConfigEntry, error)
	SetConfig(ctx context.Context, key, value, updatedBy string) (*PlatformConfigEntry, error)

	// Audit log
	RecordAction(ctx context.Context, action *AdminAction) error
	ListActions(ctx context.Context, filter AdminActionFilter, limit, offset int) ([]AdminAction, int64, error)
}

// AdminUsecase defines admin business logic
type AdminUsecase interface {
	// Stats
	GetStats(ctx context.Context) (*AdminStats, error)

	// Users
	ListUsers(ctx context.Context, filter AdminUserFilter) (*PaginatedResult[AdminUser], error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*AdminUser, error)
	UpdateRole(ctx context.Context, userID string, req UpdateRoleRequest) (*AdminUser, error)
	DisableUser(ctx context.Context, userID string, disable bool) (*AdminUser, error)
	DeleteUser(ctx context.Context, userID string) error

	// Moderation
	ListReviews(ctx context.Context, filter ReviewFilter) (*PaginatedResult[Review], error)
	HideReview(ctx context.Context, reviewID int64, reason string) (*Review, error)
	CancelJob(ctx context.Context, jobID int64) (*Job, error)

	// Platform config
	ListConfig(ctx context.Context) ([]PlatformConfigEntry, error)
	SetConfig(ctx context.Context, key, value string) (*PlatformConfigEntry, error)

	// Audit log
	ListActions(ctx context.Context, filter AdminActionFilter) (*PaginatedResult[AdminAction], error)

	// Exports
	ExportUsers(ctx context.Context) ([]byte, error)
	ExportFraudAlerts(ctx context.Context) ([]byte, error)

	// Two-factor authentication
	SetupTOTP(ctx context.Context) (*TOTPSetup, error)
	ConfirmTOTP(ctx context.Context, code string) error
}
