package usecase

import (
	"context"
	"time"

	"go-marketplace-backend/pkg/auth"
	"go-marketplace-backend/pkg/email"
)

// TokenService issues and verifies access tokens
type TokenService interface {
	Issue(userID, email, role string) (string, time.Time, error)
	Parse(token string) (*auth.Claims, error)
}

// LoginGuard tracks failed logins and blocks brute force attempts
type LoginGuard interface {
	IsBlocked(ctx context.Context, email, ip string) (bool, error)
	RecordFailure(ctx context.Context, email, ip string) (bool, error)
	Clear(ctx context.Context, email, ip string) error
}

// Notifier sends transactional emails
type Notifier interface {
	SendWelcome(to string, data email.WelcomeEmailData) error
	SendApplicationStatus(to string, data email.ApplicationStatusEmailData) error
}

// SearchCache caches JSON-serializable search pages
type SearchCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	InvalidatePrefix(ctx context.Context) error
}

// ObjectStore persists uploaded files
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// UploadQuota limits uploads per user
type UploadQuota interface {
	Allow(ctx context.Context, userID string) (bool, error)
}

// ProfileRefresher recomputes a worker's profile completeness
type ProfileRefresher interface {
	Refresh(ctx context.Context, userID string) error
}
