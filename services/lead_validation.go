package services

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// Lead validation errors
var (
	ErrMissingRequiredField = errors.New("name and phone are required")
	ErrInvalidPhoneFormat   = errors.New("phone must be a 10-digit mobile number starting with 6-9")
	ErrSubmissionFailed     = errors.New("lead submission failed")
)

// Indian mobile numbers: 10 digits, leading digit 6, 7, 8 or 9.
var mobilePhonePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// LeadMessage is the user-facing copy for a lead form outcome
type LeadMessage struct {
	Title       string
	Description string
}

// ValidateLead checks the required lead fields.
// Missing fields take precedence over the phone format check. Email and
// message are never validated.
func ValidateLead(name, phone string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(phone) == "" {
		return ErrMissingRequiredField
	}

	if !mobilePhonePattern.MatchString(NormalizePhone(phone)) {
		return ErrInvalidPhoneFormat
	}

	return nil
}

// NormalizePhone removes every whitespace rune from the phone number
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
}

// LeadErrorKind maps a lead error to the label used in metrics and logs
func LeadErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingRequiredField):
		return "missing_required_field"
	case errors.Is(err, ErrInvalidPhoneFormat):
		return "invalid_phone_format"
	case errors.Is(err, ErrTurnstileFailed):
		return "turnstile_failed"
	default:
		return "submission_failed"
	}
}

// LeadErrorMessage returns the toast copy shown for a failed submit attempt
func LeadErrorMessage(err error) LeadMessage {
	switch {
	case errors.Is(err, ErrMissingRequiredField):
		return LeadMessage{
			Title:       "Please fill required fields",
			Description: "Name and phone number are required.",
		}
	case errors.Is(err, ErrInvalidPhoneFormat):
		return LeadMessage{
			Title:       "Invalid phone number",
			Description: "Please enter a valid 10-digit Indian mobile number.",
		}
	case errors.Is(err, ErrTurnstileFailed):
		return LeadMessage{
			Title:       "Verification failed",
			Description: "Please complete the security check and try again.",
		}
	default:
		return LeadMessage{
			Title:       "Something went wrong",
			Description: "We couldn't send your request. Please try again or call us directly.",
		}
	}
}
