package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/apperror"
	"go-marketplace-backend/pkg/logger"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	dateLayout      = "2006-01-02"
)

// invalidateSearchCache drops cached worker search pages. Failures are
// logged and otherwise ignored; entries expire on their own TTL.
func invalidateSearchCache(ctx context.Context, cache SearchCache) {
	if cache == nil {
		return
	}
	if err := cache.InvalidatePrefix(ctx); err != nil {
		logger.Log.Warn("worker search cache invalidation failed", "error", err)
	}
}

// contextValue reads a value set either by gin (c.Set with a string key)
// or by context.WithValue with a domain.CtxKey.
func contextValue(ctx context.Context, key domain.CtxKey) string {
	if v, ok := ctx.Value(string(key)).(string); ok && v != "" {
		return v
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

func requireUser(ctx context.Context) (string, error) {
	userID := contextValue(ctx, domain.KeyUserID)
	if userID == "" {
		return "", apperror.Unauthorized("User not authenticated")
	}
	return userID, nil
}

func requireAdmin(ctx context.Context) error {
	if contextValue(ctx, domain.KeyUserRole) != domain.RoleAdmin {
		return apperror.Forbidden("Admin access required")
	}
	return nil
}

func requireRole(ctx context.Context, role string) error {
	if contextValue(ctx, domain.KeyUserRole) != role {
		return apperror.Forbidden("This action requires the " + role + " role")
	}
	return nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

func offsetFor(page, pageSize int) int {
	return (page - 1) * pageSize
}

func newPage[T any](data []T, total int64, page, pageSize int) *domain.PaginatedResult[T] {
	if data == nil {
		data = []T{}
	}
	return &domain.PaginatedResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}
}

// repoError maps repository sentinel errors onto HTTP-facing errors
func repoError(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFoundMsg)
	case errors.Is(err, domain.ErrDuplicate):
		return apperror.Conflict("Resource already exists")
	default:
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.Internal(err)
	}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperror.BadRequest(field + " must be a date in YYYY-MM-DD format")
	}
	return t, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(field, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
