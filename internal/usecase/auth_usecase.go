package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/auth"
	"go-marketplace-backend/pkg/email"
	"go-marketplace-backend/pkg/logger"
	"go-marketplace-backend/pkg/security"

	"github.com/google/uuid"
)

type authUsecase struct {
	userRepo domain.UserRepository
	profiles ProfileRefresher
	tokens   TokenService
	guard    LoginGuard
	notifier Notifier
	secLog   *security.SecurityLogger
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	profiles ProfileRefresher,
	tokens TokenService,
	guard LoginGuard,
	notifier Notifier,
	secLog *security.SecurityLogger,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		profiles: profiles,
		tokens:   tokens,
		guard:    guard,
		notifier: notifier,
		secLog:   secLog,
	}
}

// createAccount inserts the user, together with an empty worker profile
// for workers, and maps a unique violation to 409
func createAccount(ctx context.Context, users domain.UserRepository, user *domain.User) error {
	var err error
	if user.Role == domain.RoleWorker {
		err = users.CreateWithProfile(ctx, user, newWorkerProfile(user.ID))
	} else {
		err = users.Create(ctx, user)
	}
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return apperror.Conflict("Email is already registered")
		}
		return apperror.Internal(err)
	}
	return nil
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// newWorkerProfile returns the empty profile created alongside a worker account
func newWorkerProfile(userID string) *domain.WorkerProfile {
	return &domain.WorkerProfile{
		UserID:             userID,
		Currency:           defaultCurrency,
		Languages:          []string{},
		AvailabilityStatus: domain.AvailabilityAvailable,
	}
}

// Register creates a worker or hirer account and signs the user in
func (u *authUsecase) Register(ctx context.Context, req domain.RegisterRequest, meta domain.ClientMeta) (*domain.AuthResponse, error) {
	if req.Role != domain.RoleWorker && req.Role != domain.RoleHirer {
		return nil, apperror.BadRequest("Role must be 'worker' or 'hirer'")
	}
	addr := normalizeEmail(req.Email)

	existing, err := u.userRepo.GetByEmail(ctx, addr)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("Email is already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        addr,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := createAccount(ctx, u.userRepo, user); err != nil {
		return nil, err
	}

	token, expires, err := u.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if u.secLog != nil {
		u.secLog.LogUserEvent(ctx, security.EventRegistered, user.ID, map[string]interface{}{
			"role": user.Role,
			"ip":   meta.IP,
		})
	}
	if u.notifier != nil {
		if err := u.notifier.SendWelcome(user.Email, email.WelcomeEmailData{FullName: user.FullName, Role: user.Role}); err != nil {
			logger.Log.Warn("welcome email not sent", "user_id", user.ID, "error", err)
		}
	}

	return &domain.AuthResponse{Token: token, ExpiresAt: expires, User: user}, nil
}

// Login verifies credentials (and the TOTP code for admins with 2FA enabled)
func (u *authUsecase) Login(ctx context.Context, req domain.LoginRequest, meta domain.ClientMeta) (*domain.AuthResponse, error) {
	addr := normalizeEmail(req.Email)

	if u.guard != nil {
		blocked, err := u.guard.IsBlocked(ctx, addr, meta.IP)
		if err != nil {
			logger.Log.Warn("login guard unavailable", "error", err)
		}
		if blocked {
			if u.secLog != nil {
				u.secLog.LogLoginBlocked(ctx, addr, meta.IP, meta.UserAgent, meta.RequestID)
			}
			return nil, apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
		}
	}

	user, err := u.userRepo.GetByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, u.loginFailed(ctx, addr, "", meta, "unknown_email")
		}
		return nil, apperror.Internal(err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, u.loginFailed(ctx, addr, user.ID, meta, "invalid_password")
	}

	if user.IsDisabled {
		return nil, apperror.Forbidden("Account is disabled")
	}

	if user.Role == domain.RoleAdmin && user.TOTPEnabled {
		if req.TOTPCode == "" {
			return nil, apperror.Unauthorized("Two-factor authentication code required")
		}
		secret := ""
		if user.TOTPSecret != nil {
			secret = *user.TOTPSecret
		}
		if !auth.ValidateTOTP(req.TOTPCode, secret) {
			return nil, u.loginFailed(ctx, addr, user.ID, meta, "invalid_totp")
		}
	}

	if u.guard != nil {
		if err := u.guard.Clear(ctx, addr, meta.IP); err != nil {
			logger.Log.Warn("failed to clear login attempts", "error", err)
		}
	}

	token, expires, err := u.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if u.secLog != nil {
		u.secLog.Log(ctx, security.SecurityEvent{
			Event:        security.EventLoginSuccess,
			SubjectType:  "user_id",
			SubjectValue: user.ID,
			IP:           meta.IP,
			UserAgent:    meta.UserAgent,
			RequestID:    meta.RequestID,
		})
	}

	return &domain.AuthResponse{Token: token, ExpiresAt: expires, User: user}, nil
}

func (u *authUsecase) loginFailed(ctx context.Context, addr, userID string, meta domain.ClientMeta, reason string) error {
	if u.secLog != nil {
		u.secLog.LogLoginFailed(ctx, addr, userID, meta.IP, meta.UserAgent, meta.RequestID, reason)
	}
	if u.guard != nil {
		blocked, err := u.guard.RecordFailure(ctx, addr, meta.IP)
		if err != nil {
			logger.Log.Warn("failed to record login failure", "error", err)
		}
		if blocked {
			return apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
		}
	}
	return apperror.Unauthorized("Invalid email or password")
}

// Authenticate resolves a bearer token to an active user
func (u *authUsecase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := u.tokens.Parse(token)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid token")
	}

	user, err := u.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, apperror.Internal(err)
	}
	if user.IsDisabled {
		return nil, apperror.Forbidden("Account is disabled")
	}
	return user, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	return user, nil
}

func (u *authUsecase) UpdateMe(ctx context.Context, id string, req domain.UpdateMeRequest) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "User not found")
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		user.Phone = emptyToNil(*req.Phone)
	}
	if req.Location != nil {
		user.Location = emptyToNil(*req.Location)
	}
	avatarChanged := false
	if req.AvatarURL != nil {
		next := emptyToNil(*req.AvatarURL)
		avatarChanged = derefString(next) != derefString(user.AvatarURL)
		user.AvatarURL = next
	}
	user.UpdatedAt = time.Now().UTC()

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, repoError(err, "User not found")
	}

	// The avatar counts towards profile completeness
	if avatarChanged && user.Role == domain.RoleWorker && u.profiles != nil {
		if err := u.profiles.Refresh(ctx, user.ID); err != nil {
			logger.Log.Warn("profile completeness refresh failed", "user_id", user.ID, "error", err)
		}
	}
	return user, nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, id string, req domain.ChangePasswordRequest) error {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return repoError(err, "User not found")
	}
	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return apperror.BadRequest("Current password is incorrect")
	}
	if req.CurrentPassword == req.NewPassword {
		return apperror.BadRequest("New password must differ from the current password")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.UpdatePassword(ctx, id, hash); err != nil {
		return repoError(err, "User not found")
	}

	if u.secLog != nil {
		u.secLog.LogUserEvent(ctx, security.EventPasswordChanged, id, nil)
	}
	return nil
}

func emptyToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
