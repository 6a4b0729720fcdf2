package accounts

import (
	"regexp"
	"strings"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail lowercases and trims an address for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail reports whether email has the local@domain.tld shape.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword applies the password rules in order and returns the
// first failing rule as a validation error, or nil.
func ValidatePassword(password string) error {
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}

	if len([]rune(password)) < minPasswordLength {
		return validationError(MsgPasswordTooShort)
	}
	if !upper || !lower {
		return validationError(MsgPasswordMixedCase)
	}
	if !digit {
		return validationError(MsgPasswordNoDigit)
	}
	return nil
}

// validateRegistration checks input in order; the first failure wins.
// Uniqueness is checked by the caller against the user table.
func validateRegistration(in RegisterInput) error {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return validationError(MsgNameRequired)
	}
	if !ValidateEmail(strings.TrimSpace(in.Email)) {
		return validationError(MsgInvalidEmail)
	}
	if err := ValidatePassword(in.Password); err != nil {
		return err
	}
	if strings.TrimSpace(in.AvatarRef) == "" {
		return validationError(MsgAvatarRequired)
	}
	return nil
}

// Strength is a display-only score for the password meter.
type Strength int

const (
	StrengthNone Strength = iota
	StrengthWeak
	StrengthFair
	StrengthGood
	StrengthStrong
)

func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "Weak"
	case StrengthFair:
		return "Fair"
	case StrengthGood:
		return "Good"
	case StrengthStrong:
		return "Strong"
	default:
		return "None"
	}
}

// Acceptable reports whether the score meets the minimum the meter marks valid.
func (s Strength) Acceptable() bool {
	return s >= StrengthGood
}

// MeasureStrength scores a password 0..4: length, mixed case, digit, symbol.
// It never replaces ValidatePassword.
func MeasureStrength(password string) Strength {
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}

	score := StrengthNone
	if len([]rune(password)) >= minPasswordLength {
		score++
	}
	if upper && lower {
		score++
	}
	if digit {
		score++
	}
	if symbol {
		score++
	}
	return score
}
