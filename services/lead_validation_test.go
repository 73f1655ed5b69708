package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLead(t *testing.T) {
	tests := []struct {
		name    string
		lead    string
		phone   string
		wantErr error
	}{
		{name: "Valid lead", lead: "Priya", phone: "9876543210"},
		{name: "Valid with spaces in phone", lead: "Priya", phone: "98765 43210"},
		{name: "Valid with tabs and padding", lead: "  Priya ", phone: "\t987 654 3210 "},
		{name: "Leading six", lead: "Amit", phone: "6000000000"},
		{name: "Empty name", lead: "", phone: "9876543210", wantErr: ErrMissingRequiredField},
		{name: "Whitespace name", lead: "   ", phone: "9876543210", wantErr: ErrMissingRequiredField},
		{name: "Empty phone", lead: "Priya", phone: "", wantErr: ErrMissingRequiredField},
		{name: "Missing wins over bad format", lead: "", phone: "123", wantErr: ErrMissingRequiredField},
		{name: "Leading digit one", lead: "Amit", phone: "1234567890", wantErr: ErrInvalidPhoneFormat},
		{name: "Leading digit five", lead: "Amit", phone: "5876543210", wantErr: ErrInvalidPhoneFormat},
		{name: "Too short", lead: "Amit", phone: "987654321", wantErr: ErrInvalidPhoneFormat},
		{name: "Too long", lead: "Amit", phone: "98765432101", wantErr: ErrInvalidPhoneFormat},
		{name: "Country code", lead: "Amit", phone: "+919876543210", wantErr: ErrInvalidPhoneFormat},
		{name: "Dashes", lead: "Amit", phone: "98765-43210", wantErr: ErrInvalidPhoneFormat},
		{name: "Letters", lead: "Amit", phone: "98765abcde", wantErr: ErrInvalidPhoneFormat},
		{name: "Non ascii digits", lead: "Amit", phone: "९८७६५४३२१०", wantErr: ErrInvalidPhoneFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLead(tt.lead, tt.phone)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLeadAllLeadingDigits(t *testing.T) {
	for d := 0; d <= 9; d++ {
		phone := fmt.Sprintf("%d123456789", d)
		err := ValidateLead("Meera", phone)
		if d >= 6 {
			assert.NoError(t, err, phone)
		} else {
			assert.ErrorIs(t, err, ErrInvalidPhoneFormat, phone)
		}
	}
}

func TestValidateLeadIsIdempotent(t *testing.T) {
	first := ValidateLead("Amit", "1234567890")
	second := ValidateLead("Amit", "1234567890")
	assert.Equal(t, first, second)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "9876543210", NormalizePhone(" 98765\t43210\n"))
	assert.Equal(t, "", NormalizePhone("   "))
}

func TestLeadErrorKind(t *testing.T) {
	assert.Equal(t, "", LeadErrorKind(nil))
	assert.Equal(t, "missing_required_field", LeadErrorKind(ErrMissingRequiredField))
	assert.Equal(t, "invalid_phone_format", LeadErrorKind(fmt.Errorf("wrapped: %w", ErrInvalidPhoneFormat)))
	assert.Equal(t, "turnstile_failed", LeadErrorKind(ErrTurnstileFailed))
	assert.Equal(t, "submission_failed", LeadErrorKind(errors.New("db down")))
}

func TestLeadErrorMessage(t *testing.T) {
	t.Run("MissingFields", func(t *testing.T) {
		msg := LeadErrorMessage(ErrMissingRequiredField)
		assert.Equal(t, "Please fill required fields", msg.Title)
		assert.Equal(t, "Name and phone number are required.", msg.Description)
	})

	t.Run("InvalidPhone", func(t *testing.T) {
		msg := LeadErrorMessage(ErrInvalidPhoneFormat)
		assert.Equal(t, "Invalid phone number", msg.Title)
		assert.Equal(t, "Please enter a valid 10-digit Indian mobile number.", msg.Description)
	})

	t.Run("SubmissionFailed", func(t *testing.T) {
		msg := LeadErrorMessage(fmt.Errorf("%w: timeout", ErrSubmissionFailed))
		assert.Equal(t, "Something went wrong", msg.Title)
	})
}
