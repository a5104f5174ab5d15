package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Allow letters, numbers, spaces, and common professional punctuation: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

	// E164-like phone: optional +, digits 7-15 length
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	// 24h clock "HH:MM"
	clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

	// ISO 4217 style currency code
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("clock", Clock)
	_ = v.RegisterValidation("currency_code", CurrencyCode)
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	return !containsEmoji(fl.Field().String())
}

func containsEmoji(val string) bool {
	for _, r := range val {
		// Supplementary characters (mostly emoji/symbols)
		if r > 0x1F000 {
			return true
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return true
		}
	}
	return false
}

// Clock validates a 24h "HH:MM" time of day
func Clock(fl validator.FieldLevel) bool {
	return IsClock(fl.Field().String())
}

// IsClock reports whether s is a 24h "HH:MM" time of day
func IsClock(s string) bool {
	return clockRegex.MatchString(s)
}

// CurrencyCode validates a three-letter upper-case currency code
func CurrencyCode(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return currencyRegex.MatchString(val)
}
