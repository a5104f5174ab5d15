package postgres

import (
	"errors"
	"testing"

	"go-marketplace-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	assert.Nil(t, mapError(nil))
	assert.ErrorIs(t, mapError(pgx.ErrNoRows), domain.ErrNotFound)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"}), domain.ErrDuplicate)
	assert.ErrorIs(t, mapError(&pgconn.PgError{Code: pgForeignKeyViolation}), domain.ErrNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError(other))
}

func TestWhereBuilder(t *testing.T) {
	var w whereBuilder
	assert.Equal(t, "", w.clause())

	w.add("status = ?", "open")
	w.add("(title ILIKE ? OR description ILIKE ?)", "%go%", "%go%")
	assert.Equal(t, " WHERE status = $1 AND (title ILIKE $2 OR description ILIKE $3)", w.clause())

	suffix, args := w.page(10, 20)
	assert.Equal(t, " LIMIT $4 OFFSET $5", suffix)
	assert.Equal(t, []interface{}{"open", "%go%", "%go%", 10, 20}, args)
	assert.Len(t, w.args, 3)
}

func TestLikePatternEscapes(t *testing.T) {
	assert.Equal(t, `%100\%%`, likePattern(" 100% "))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
}
