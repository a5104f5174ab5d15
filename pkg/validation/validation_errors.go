package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	// Auth fields
	"Email":           "Email",
	"Password":        "Password",
	"CurrentPassword": "Current password",
	"NewPassword":     "New password",
	"FullName":        "Full name",
	"TOTPCode":        "Authenticator code",

	// Worker profile fields
	"Headline":           "Headline",
	"Bio":                "Bio",
	"HourlyRate":         "Hourly rate",
	"Currency":           "Currency",
	"YearsExperience":    "Years of experience",
	"AvailabilityStatus": "Availability",
	"AvatarURL":          "Avatar URL",

	// Work history / certificates
	"Company":       "Company",
	"StartDate":     "Start date",
	"EndDate":       "End date",
	"Issuer":        "Issuer",
	"IssuedAt":      "Issue date",
	"ExpiresAt":     "Expiry date",
	"CredentialURL": "Credential URL",

	// Skills
	"SkillName":  "Skill",
	"CategoryID": "Category",
	"Level":      "Level",
	"Score":      "Score",

	// Jobs and applications
	"BudgetMin":      "Minimum budget",
	"BudgetMax":      "Maximum budget",
	"RequiredSkills": "Required skills",
	"CoverLetter":    "Cover letter",
	"ProposedRate":   "Proposed rate",

	// Reviews
	"JobID":   "Job",
	"Rating":  "Rating",
	"Comment": "Comment",

	// Availability
	"DayOfWeek": "Day of week",
	"StartTime": "Start time",
	"EndTime":   "End time",

	// Misc
	"WorkerID":   "Worker",
	"ProjectURL": "Project URL",
}

// ValidationRules contains extra context for validation messages
var ValidationRules = map[string]map[string]interface{}{
	"HourlyRate": {"unit": "per hour"},
	"Rating":     {"unit": "stars"},
	"Score":      {"unit": "points"},
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	fieldName := e.Field()
	label := getFieldLabel(fieldName)
	tag := e.Tag()
	param := e.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s: is required", label)

	case "min", "gte":
		if unit := ruleUnit(fieldName); unit != "" {
			return fmt.Sprintf("%s: must be at least %s %s", label, param, unit)
		}
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at least %s", label, param)

	case "max", "lte":
		if unit := ruleUnit(fieldName); unit != "" {
			return fmt.Sprintf("%s: must be at most %s %s", label, param, unit)
		}
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s: must be at most %s", label, param)

	case "len":
		return fmt.Sprintf("%s: must be exactly %s characters", label, param)

	case "oneof":
		return fmt.Sprintf("%s: must be one of: %s", label, strings.Join(strings.Fields(param), ", "))

	case "email":
		return fmt.Sprintf("%s: invalid email format", label)

	case "url":
		return fmt.Sprintf("%s: invalid URL format", label)

	case "uuid", "uuid4":
		return fmt.Sprintf("%s: invalid identifier", label)

	case "valid_name":
		return fmt.Sprintf("%s: only letters, spaces and common punctuation (. ' - /) are allowed", label)

	case "valid_phone":
		return fmt.Sprintf("%s: invalid phone number (7-15 digits, optional +)", label)

	case "no_emoji":
		return fmt.Sprintf("%s: must not contain emoji or special symbols", label)

	case "clock":
		return fmt.Sprintf("%s: must be a time in HH:MM format", label)

	case "currency_code":
		return fmt.Sprintf("%s: must be a 3-letter currency code", label)

	case "eqfield":
		return fmt.Sprintf("%s: must match %s", label, getFieldLabel(param))

	case "gtfield", "gtefield":
		return fmt.Sprintf("%s: must be greater than %s", label, getFieldLabel(param))

	case "ltfield", "ltefield":
		return fmt.Sprintf("%s: must be less than %s", label, getFieldLabel(param))

	default:
		return fmt.Sprintf("%s: failed validation (%s)", label, tag)
	}
}

func ruleUnit(fieldName string) string {
	if rules, ok := ValidationRules[fieldName]; ok {
		if unit, ok := rules["unit"].(string); ok {
			return unit
		}
	}
	return ""
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
