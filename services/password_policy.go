package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// MinPasswordLength applies to the lead inbox password
const MinPasswordLength = 12

// ErrWeakPassword wraps every password policy failure
var ErrWeakPassword = errors.New("password does not meet the policy")

// PasswordProblems lists every rule the password breaks, in a stable order.
// An empty result means the password is acceptable.
func PasswordProblems(password string) []string {
	var problems []string
	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, fmt.Sprintf("at least %d characters", MinPasswordLength))
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsNumber(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		problems = append(problems, "an uppercase letter")
	}
	if !hasLower {
		problems = append(problems, "a lowercase letter")
	}
	if !hasNumber {
		problems = append(problems, "a number")
	}
	if !hasSpecial {
		problems = append(problems, "a special character")
	}
	return problems
}

// ValidatePassword reports all policy failures in one error wrapping ErrWeakPassword
func ValidatePassword(password string) error {
	problems := PasswordProblems(password)
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: needs %s", ErrWeakPassword, strings.Join(problems, ", "))
}
