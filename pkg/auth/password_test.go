package auth

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", "correct horse"))
}

func TestTOTPRoundTrip(t *testing.T) {
	enrollment, err := GenerateTOTP("admin@example.com")
	require.NoError(t, err)
	assert.Contains(t, enrollment.URL, "otpauth://totp/")

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	assert.True(t, ValidateTOTP(code, enrollment.Secret))
	assert.False(t, ValidateTOTP("", enrollment.Secret))
	assert.False(t, ValidateTOTP(code, ""))
}
