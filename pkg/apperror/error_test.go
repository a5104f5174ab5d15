package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-marketplace-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusConflict, apperror.StatusOf(apperror.Conflict("dup")))
	assert.Equal(t, http.StatusNotFound, apperror.StatusOf(fmt.Errorf("wrapped: %w", apperror.NotFound("x"))))
	assert.Equal(t, http.StatusInternalServerError, apperror.StatusOf(errors.New("boom")))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("db down")
	err := apperror.Internal(cause)
	assert.Equal(t, "Internal Server Error", err.Error())
	assert.ErrorIs(t, err, cause)
}
