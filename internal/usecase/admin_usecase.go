package usecase

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/auth"
	"go-marketplace-backend/pkg/logger"
	"go-marketplace-backend/pkg/security"

	"github.com/google/uuid"
)

var configKeyPattern = regexp.MustCompile(`^[a-z0-9_]{2,64}$`)

// exportBatchSize bounds each page read while building exports
const exportBatchSize = 500

// AdminDeps groups the repositories and services used by the admin usecase
type AdminDeps struct {
	Admin   domain.AdminRepository
	Users   domain.UserRepository
	Workers domain.WorkerRepository
	Reviews domain.ReviewRepository
	Jobs    domain.JobRepository
	Fraud   domain.FraudRepository
	Audit   *Auditor
	SecLog  *security.SecurityLogger
	Cache   SearchCache
	Health  HealthUsecase
}

type adminUsecase struct {
	AdminDeps
}

func NewAdminUsecase(deps AdminDeps) domain.AdminUsecase {
	return &adminUsecase{AdminDeps: deps}
}

func (u *adminUsecase) invalidateSearch(ctx context.Context) {
	invalidateSearchCache(ctx, u.Cache)
}

// GetStats returns dashboard statistics
func (u *adminUsecase) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	stats, err := u.Admin.GetStats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	stats.SystemHealth = domain.SystemHealth{Status: "healthy", LastChecked: time.Now().UTC().Format(time.RFC3339)}
	if u.Health != nil {
		stats.SystemHealth.Status = u.Health.Status(ctx)
	}
	return stats, nil
}

func (u *adminUsecase) ListUsers(ctx context.Context, filter domain.AdminUserFilter) (*domain.PaginatedResult[domain.AdminUser], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	filter.Query = strings.TrimSpace(filter.Query)

	users, total, err := u.Admin.ListUsers(ctx, filter, filter.PageSize, offsetFor(filter.Page, filter.PageSize))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return newPage(users, total, filter.Page, filter.PageSize), nil
}

// CreateUser lets an admin provision an account with any role
func (u *adminUsecase) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.AdminUser, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	switch req.Role {
	case domain.RoleWorker, domain.RoleHirer, domain.RoleAdmin:
	default:
		return nil, apperror.BadRequest("Role must be one of: worker, hirer, admin")
	}

	addr := normalizeEmail(req.Email)
	existing, err := u.Users.GetByEmail(ctx, addr)
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
	if err := createAccount(ctx, u.Users, user); err != nil {
		return nil, err
	}

	u.Audit.Record(ctx, "user.create", "user", user.ID, map[string]interface{}{"role": user.Role})
	return &domain.AdminUser{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

// guardSelf rejects admin actions aimed at the acting admin's own account
func guardSelf(ctx context.Context, userID, msg string) error {
	if contextValue(ctx, domain.KeyUserID) == userID {
		return apperror.BadRequest(msg)
	}
	return nil
}

func (u *adminUsecase) UpdateRole(ctx context.Context, userID string, req domain.UpdateRoleRequest) (*domain.AdminUser, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := guardSelf(ctx, userID, "You cannot change your own role"); err != nil {
		return nil, err
	}
	switch req.Role {
	case domain.RoleWorker, domain.RoleHirer, domain.RoleAdmin:
	default:
		return nil, apperror.BadRequest("Role must be one of: worker, hirer, admin")
	}

	user, err := u.Admin.GetUser(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	if user.Role == req.Role {
		return user, nil
	}
	previous := user.Role

	if err := u.Admin.UpdateRole(ctx, userID, req.Role); err != nil {
		return nil, repoError(err, "User not found")
	}
	if req.Role == domain.RoleWorker {
		if _, err := u.Workers.GetProfile(ctx, userID); errors.Is(err, domain.ErrNotFound) {
			if err := u.Workers.CreateProfile(ctx, newWorkerProfile(userID)); err != nil {
				return nil, apperror.Internal(err)
			}
		} else if err != nil {
			return nil, apperror.Internal(err)
		}
	}
	u.invalidateSearch(ctx)

	user.Role = req.Role
	u.Audit.Record(ctx, "user.update_role", "user", userID, map[string]interface{}{
		"from": previous,
		"to":   req.Role,
	})
	return user, nil
}

func (u *adminUsecase) DisableUser(ctx context.Context, userID string, disable bool) (*domain.AdminUser, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := guardSelf(ctx, userID, "You cannot disable your own account"); err != nil {
		return nil, err
	}
	user, err := u.Admin.GetUser(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	if err := u.Admin.DisableUser(ctx, userID, disable); err != nil {
		return nil, repoError(err, "User not found")
	}
	user.IsDisabled = disable
	u.invalidateSearch(ctx)

	action := "user.enable"
	if disable {
		action = "user.disable"
	}
	u.Audit.Record(ctx, action, "user", userID, nil)
	return user, nil
}

func (u *adminUsecase) DeleteUser(ctx context.Context, userID string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := guardSelf(ctx, userID, "You cannot delete your own account"); err != nil {
		return err
	}
	if err := u.Admin.DeleteUser(ctx, userID); err != nil {
		return repoError(err, "User not found")
	}
	u.invalidateSearch(ctx)
	u.Audit.Record(ctx, "user.delete", "user", userID, nil)
	return nil
}

func (u *adminUsecase) ListReviews(ctx context.Context, filter domain.ReviewFilter) (*domain.PaginatedResult[domain.Review], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	reviews, total, err := u.Reviews.Fetch(ctx, filter, filter.PageSize, offsetFor(filter.Page, filter.PageSize))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return newPage(reviews, total, filter.Page, filter.PageSize), nil
}

// HideReview removes a review from public view and from the rating average
func (u *adminUsecase) HideReview(ctx context.Context, reviewID int64, reason string) (*domain.Review, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperror.BadRequest("A reason is required to hide a review")
	}

	review, err := u.Reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, repoError(err, "Review not found")
	}
	if review.IsHidden {
		return nil, apperror.BadRequest("Review is already hidden")
	}
	if err := u.Reviews.Hide(ctx, reviewID, reason); err != nil {
		return nil, repoError(err, "Review not found")
	}
	review.IsHidden = true
	review.HiddenReason = &reason

	if err := u.Workers.RecomputeRating(ctx, review.RevieweeID); err != nil {
		logger.Log.Error("failed to recompute rating", "user_id", review.RevieweeID, "error", err)
	}
	u.invalidateSearch(ctx)

	u.Audit.Record(ctx, "review.hide", "review", strconv.FormatInt(reviewID, 10), map[string]interface{}{
		"reason":      reason,
		"reviewee_id": review.RevieweeID,
	})
	return review, nil
}

func (u *adminUsecase) CancelJob(ctx context.Context, jobID int64) (*domain.Job, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	job, err := u.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	if job.Status == domain.JobStatusCompleted || job.Status == domain.JobStatusCancelled {
		return nil, apperror.BadRequest("Job is already " + job.Status)
	}
	if err := u.Admin.CancelJob(ctx, jobID); err != nil {
		return nil, repoError(err, "Job not found")
	}
	previous := job.Status
	job.Status = domain.JobStatusCancelled

	u.Audit.Record(ctx, "job.cancel", "job", strconv.FormatInt(jobID, 10), map[string]interface{}{"from": previous})
	return job, nil
}

func (u *adminUsecase) ListConfig(ctx context.Context) ([]domain.PlatformConfigEntry, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	entries, err := u.Admin.ListConfig(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return nonNil(entries), nil
}

func (u *adminUsecase) SetConfig(ctx context.Context, key, value string) (*domain.PlatformConfigEntry, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if !configKeyPattern.MatchString(key) {
		return nil, apperror.BadRequest("Config key must be 2-64 characters of a-z, 0-9 or underscore")
	}
	entry, err := u.Admin.SetConfig(ctx, key, value, contextValue(ctx, domain.KeyUserID))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.Audit.Record(ctx, "config.set", "config", key, map[string]interface{}{"value": value})
	return entry, nil
}

func (u *adminUsecase) ListActions(ctx context.Context, filter domain.AdminActionFilter) (*domain.PaginatedResult[domain.AdminAction], error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	filter.Page, filter.PageSize = normalizePage(filter.Page, filter.PageSize)
	actions, total, err := u.Admin.ListActions(ctx, filter, filter.PageSize, offsetFor(filter.Page, filter.PageSize))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return newPage(actions, total, filter.Page, filter.PageSize), nil
}

// ExportUsers renders every account as an xlsx workbook
func (u *adminUsecase) ExportUsers(ctx context.Context) ([]byte, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	var all []domain.AdminUser
	for offset := 0; ; offset += exportBatchSize {
		batch, total, err := u.Admin.ListUsers(ctx, domain.AdminUserFilter{}, exportBatchSize, offset)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		all = append(all, batch...)
		if len(batch) < exportBatchSize || int64(len(all)) >= total {
			break
		}
	}

	data, err := usersSheet(all).xlsx()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.Audit.Record(ctx, "export.users", "export", "users", map[string]interface{}{"rows": len(all)})
	return data, nil
}

func (u *adminUsecase) ExportFraudAlerts(ctx context.Context) ([]byte, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	alerts, err := u.Fraud.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	data, err := fraudSheet(alerts).xlsx()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u.Audit.Record(ctx, "export.fraud_alerts", "export", "fraud_alerts", map[string]interface{}{"rows": len(alerts)})
	return data, nil
}

// SetupTOTP stores a fresh, not yet enabled secret for the calling admin
func (u *adminUsecase) SetupTOTP(ctx context.Context) (*domain.TOTPSetup, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	user, err := u.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	if user.TOTPEnabled {
		return nil, apperror.Conflict("Two-factor authentication is already enabled")
	}

	enrollment, err := auth.GenerateTOTP(user.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if err := u.Users.SetTOTP(ctx, userID, &enrollment.Secret, false); err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.TOTPSetup{Secret: enrollment.Secret, OTPAuthURL: enrollment.URL}, nil
}

// ConfirmTOTP enables 2FA once the admin proves the authenticator works
func (u *adminUsecase) ConfirmTOTP(ctx context.Context, code string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	user, err := u.Users.GetByID(ctx, userID)
	if err != nil {
		return repoError(err, "User not found")
	}
	if user.TOTPEnabled {
		return apperror.Conflict("Two-factor authentication is already enabled")
	}
	if user.TOTPSecret == nil {
		return apperror.BadRequest("Start two-factor setup before confirming")
	}
	if !auth.ValidateTOTP(code, *user.TOTPSecret) {
		return apperror.BadRequest("Invalid authentication code")
	}
	if err := u.Users.SetTOTP(ctx, userID, user.TOTPSecret, true); err != nil {
		return apperror.Internal(err)
	}

	if u.SecLog != nil {
		u.SecLog.LogUserEvent(ctx, security.EventTOTPEnabled, userID, nil)
	}
	u.Audit.Record(ctx, "user.totp_enabled", "user", userID, nil)
	return nil
}
