package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleWorker = "worker"
	RoleHirer  = "hirer"
	RoleAdmin  = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        *string   `json:"phone,omitempty"`
	Location     *string   `json:"location,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	Role         string    `json:"role"`
	IsDisabled   bool      `json:"is_disabled"`
	TOTPSecret   *string   `json:"-"`
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"required,max=120,valid_name"`
	Role     string `json:"role" binding:"required,oneof=worker hirer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	TOTPCode string `json:"totp_code" binding:"omitempty,len=6,numeric"`
}

type UpdateMeRequest struct {
	FullName  *string `json:"full_name" binding:"omitempty,max=120,valid_name"`
	Phone     *string `json:"phone" binding:"omitempty,valid_phone"`
	Location  *string `json:"location" binding:"omitempty,max=120"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// CreateWithProfile inserts a worker account and its profile atomically
	CreateWithProfile(ctx context.Context, user *User, profile *WorkerProfile) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetTOTP(ctx context.Context, id string, secret *string, enabled bool) error
}

type AuthUsecase interface {
	Register(ctx context.Context, req RegisterRequest, meta ClientMeta) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest, meta ClientMeta) (*AuthResponse, error)
	Authenticate(ctx context.Context, token string) (*User, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	UpdateMe(ctx context.Context, id string, req UpdateMeRequest) (*User, error)
	ChangePassword(ctx context.Context, id string, req ChangePasswordRequest) error
}
