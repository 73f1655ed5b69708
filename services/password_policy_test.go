package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		problems []string
	}{
		{
			name:     "Valid complex password",
			password: "BrightSmile2024!",
		},
		{
			name:     "Too short",
			password: "Short1!a",
			problems: []string{"at least 12 characters"},
		},
		{
			name:     "Missing uppercase",
			password: "lowercase123!",
			problems: []string{"an uppercase letter"},
		},
		{
			name:     "Missing number and special char",
			password: "NoNumbersOrSymbols",
			problems: []string{"a number", "a special character"},
		},
		{
			name:     "Empty",
			password: "",
			problems: []string{"at least 12 characters", "an uppercase letter", "a lowercase letter", "a number", "a special character"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.problems, PasswordProblems(tt.password))

			err := ValidatePassword(tt.password)
			if tt.problems == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrWeakPassword)
			for _, p := range tt.problems {
				assert.Contains(t, err.Error(), p)
			}
		})
	}
}
