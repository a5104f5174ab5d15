package postgres

import (
	"context"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, password_hash, full_name, phone, location, avatar_url, role,
	is_disabled, totp_secret, totp_enabled, created_at, updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.Location, &u.AvatarURL, &u.Role,
		&u.IsDisabled, &u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

const insertUserSQL = `INSERT INTO users (id, email, password_hash, full_name, phone, location, avatar_url, role, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func userArgs(user *domain.User) []interface{} {
	return []interface{}{
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Phone, user.Location, user.AvatarURL,
		user.Role, user.CreatedAt, user.UpdatedAt,
	}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, insertUserSQL, userArgs(user)...)
	return mapError(err)
}

// CreateWithProfile inserts the user and the worker profile in one
// transaction so a failed profile insert never leaves an orphan account.
func (r *userRepo) CreateWithProfile(ctx context.Context, user *domain.User, profile *domain.WorkerProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, insertUserSQL, userArgs(user)...); err != nil {
		return mapError(err)
	}
	if profile != nil {
		if err := tx.QueryRow(ctx, insertProfileSQL, profileArgs(profile)...).Scan(&profile.CreatedAt, &profile.UpdatedAt); err != nil {
			return mapError(err)
		}
	}

	return tx.Commit(ctx)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET full_name = $2, phone = $3, location = $4, avatar_url = $5, updated_at = $6 WHERE id = $1`
	return affected(r.db.Exec(ctx, query, user.ID, user.FullName, user.Phone, user.Location, user.AvatarURL, user.UpdatedAt))
}

func (r *userRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return affected(r.db.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash))
}

func (r *userRepo) SetTOTP(ctx context.Context, id string, secret *string, enabled bool) error {
	return affected(r.db.Exec(ctx, `UPDATE users SET totp_secret = $2, totp_enabled = $3, updated_at = NOW() WHERE id = $1`, id, secret, enabled))
}
