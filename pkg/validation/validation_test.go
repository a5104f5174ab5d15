package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotInput struct {
	DayOfWeek int    `validate:"min=0,max=6"`
	StartTime string `validate:"required,clock"`
	Phone     string `validate:"valid_phone"`
	Currency  string `validate:"currency_code"`
	Headline  string `validate:"no_emoji"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidator()

	t.Run("valid input", func(t *testing.T) {
		err := v.Struct(slotInput{DayOfWeek: 3, StartTime: "09:30", Phone: "+628123456789", Currency: "USD", Headline: "Go developer"})
		assert.NoError(t, err)
	})

	t.Run("invalid input", func(t *testing.T) {
		err := v.Struct(slotInput{DayOfWeek: 7, StartTime: "25:00", Phone: "12ab", Currency: "usd", Headline: "Rockstar 🚀"})
		require.Error(t, err)
		msgs := FormatValidationErrors(err)
		assert.Len(t, msgs, 5)
		assert.Contains(t, msgs, "Day of week: must be at most 6")
		assert.Contains(t, msgs, "Start time: must be a time in HH:MM format")
		assert.Contains(t, msgs, "Currency: must be a 3-letter currency code")
	})
}

func TestIsClock(t *testing.T) {
	for in, want := range map[string]bool{
		"00:00": true,
		"23:59": true,
		"24:00": false,
		"9:00":  false,
		"09:60": false,
	} {
		assert.Equal(t, want, IsClock(in), in)
	}
}

func TestFormatCamelCase(t *testing.T) {
	assert.Equal(t, "Some Field", getFieldLabel("SomeField"))
	assert.Equal(t, "Hourly rate", getFieldLabel("HourlyRate"))
}
