package postgres

import (
	"context"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

// GetStats fetches dashboard statistics. SystemHealth is filled by the caller.
func (r *adminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{}

	// Users by role
	err := r.db.QueryRow(ctx, `SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE role = 'admin'),
		COUNT(*) FILTER (WHERE role = 'hirer'),
		COUNT(*) FILTER (WHERE role = 'worker'),
		COUNT(*) FILTER (WHERE is_disabled)
	FROM users`).Scan(&stats.TotalUsers, &stats.UsersByRole.Admin, &stats.UsersByRole.Hirer,
		&stats.UsersByRole.Worker, &stats.DisabledUsers)
	if err != nil {
		return nil, err
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM worker_profiles WHERE is_verified`).Scan(&stats.VerifiedWorkers); err != nil {
		return nil, err
	}

	// Jobs by status
	err = r.db.QueryRow(ctx, `SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = 'open'),
		COUNT(*) FILTER (WHERE status = 'in_progress'),
		COUNT(*) FILTER (WHERE status = 'completed'),
		COUNT(*) FILTER (WHERE status = 'cancelled')
	FROM jobs`).Scan(&stats.TotalJobs, &stats.JobsByStatus.Open, &stats.JobsByStatus.InProgress,
		&stats.JobsByStatus.Completed, &stats.JobsByStatus.Cancelled)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `SELECT
		(SELECT COUNT(*) FROM applications),
		(SELECT COUNT(*) FROM reviews),
		(SELECT COUNT(*) FROM reviews WHERE is_hidden),
		(SELECT COUNT(*) FROM documents WHERE status = 'pending'),
		(SELECT COUNT(*) FROM fraud_alerts WHERE status IN ('open', 'investigating'))`,
	).Scan(&stats.TotalApplications, &stats.TotalReviews, &stats.HiddenReviews, &stats.PendingDocuments, &stats.OpenFraudAlerts)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

const adminUserColumns = `id, email, full_name, phone, role, is_disabled, totp_enabled, created_at, updated_at`

func scanAdminUser(row rowScanner) (*domain.AdminUser, error) {
	var u domain.AdminUser
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &u.Role, &u.IsDisabled, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

// ListUsers fetches paginated users with optional role, status and text filters
func (r *adminRepo) ListUsers(ctx context.Context, f domain.AdminUserFilter, limit, offset int) ([]domain.AdminUser, int64, error) {
	var w whereBuilder
	if f.Role != "" {
		w.add("role = ?", f.Role)
	}
	switch f.Status {
	case "active":
		w.add("is_disabled = false")
	case "disabled":
		w.add("is_disabled = true")
	}
	if f.Query != "" {
		pattern := likePattern(f.Query)
		w.add("(email ILIKE ? OR full_name ILIKE ?)", pattern, pattern)
	}

	suffix, args := w.page(limit, offset)
	rows, err := r.db.Query(ctx, `SELECT `+adminUserColumns+` FROM users`+w.clause()+` ORDER BY created_at DESC, id`+suffix, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.AdminUser
	for rows.Next() {
		u, err := scanAdminUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *adminRepo) GetUser(ctx context.Context, userID string) (*domain.AdminUser, error) {
	return scanAdminUser(r.db.QueryRow(ctx, `SELECT `+adminUserColumns+` FROM users WHERE id = $1`, userID))
}

func (r *adminRepo) DisableUser(ctx context.Context, userID string, disable bool) error {
	return affected(r.db.Exec(ctx, `UPDATE users SET is_disabled = $2, updated_at = NOW() WHERE id = $1`, userID, disable))
}

func (r *adminRepo) UpdateRole(ctx context.Context, userID, role string) error {
	return affected(r.db.Exec(ctx, `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`, userID, role))
}

// DeleteUser removes the account; owned rows go with it through ON DELETE CASCADE
func (r *adminRepo) DeleteUser(ctx context.Context, userID string) error {
	return affected(r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID))
}

func (r *adminRepo) CancelJob(ctx context.Context, jobID int64) error {
	return affected(r.db.Exec(ctx,
		`UPDATE jobs SET status = 'cancelled', updated_at = NOW() WHERE id = $1 AND status IN ('open', 'in_progress')`, jobID))
}

func (r *adminRepo) ListConfig(ctx context.Context) ([]domain.PlatformConfigEntry, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value, updated_by, updated_at FROM platform_config ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PlatformConfigEntry
	for rows.Next() {
		var e domain.PlatformConfigEntry
		if err := rows.Scan(&e.Key, &e.Value, &e.UpdatedBy, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *adminRepo) SetConfig(ctx context.Context, key, value, updatedBy string) (*domain.PlatformConfigEntry, error) {
	query := `INSERT INTO platform_config (key, value, updated_by, updated_at)
              VALUES ($1, $2, $3, NOW())
              ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
              RETURNING key, value, updated_by, updated_at`
	var e domain.PlatformConfigEntry
	if err := r.db.QueryRow(ctx, query, key, value, updatedBy).Scan(&e.Key, &e.Value, &e.UpdatedBy, &e.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	return &e, nil
}

func (r *adminRepo) RecordAction(ctx context.Context, a *domain.AdminAction) error {
	var details interface{}
	if len(a.Details) > 0 {
		details = []byte(a.Details)
	}
	query := `INSERT INTO admin_actions (actor_id, action, target_type, target_id, details)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	return r.db.QueryRow(ctx, query, a.ActorID, a.Action, a.TargetType, a.TargetID, details).Scan(&a.ID, &a.CreatedAt)
}

func (r *adminRepo) ListActions(ctx context.Context, f domain.AdminActionFilter, limit, offset int) ([]domain.AdminAction, int64, error) {
	var w whereBuilder
	if f.ActorID != "" {
		w.add("actor_id = ?", f.ActorID)
	}
	if f.Action != "" {
		w.add("action = ?", f.Action)
	}

	suffix, args := w.page(limit, offset)
	query := `SELECT id, actor_id, action, target_type, target_id, details, created_at FROM admin_actions` +
		w.clause() + ` ORDER BY created_at DESC, id DESC` + suffix
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var actions []domain.AdminAction
	for rows.Next() {
		var a domain.AdminAction
		var details []byte
		if err := rows.Scan(&a.ID, &a.ActorID, &a.Action, &a.TargetType, &a.TargetID, &details, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		a.Details = details
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admin_actions`+w.clause(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return actions, total, nil
}
