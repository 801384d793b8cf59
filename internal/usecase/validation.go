package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
)

const (
	maxNameLength     = 255
	maxPhoneLength    = 15
	minPasswordLength = 8
)

// Registration is the sign-up payload after trimming.
type Registration struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// ValidateRegistration checks sign-up fields and returns the normalized copy.
func ValidateRegistration(r Registration) (Registration, error) {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)

	if r.Name == "" || utf8.RuneCountInString(r.Name) > maxNameLength {
		return r, fmt.Errorf("%w: name is required and must be at most %d characters", domainErrors.ErrValidation, maxNameLength)
	}
	if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		return r, fmt.Errorf("%w: invalid email", domainErrors.ErrValidation)
	}
	if !ValidatePhone(r.Phone) {
		return r, fmt.Errorf("%w: invalid phone", domainErrors.ErrValidation)
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLength {
		return r, fmt.Errorf("%w: password must be at least %d characters", domainErrors.ErrValidation, minPasswordLength)
	}
	return r, nil
}

// ValidatePhone accepts digits with an optional leading plus, up to 15 characters.
func ValidatePhone(phone string) bool {
	if phone == "" || len(phone) > maxPhoneLength {
		return false
	}
	digits := strings.TrimPrefix(phone, "+")
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// AmountMatches reports whether a gateway gross_amount string ("150000.00")
// equals the stored integral amount.
func AmountMatches(gross string, amount int64) bool {
	parsed, err := decimal.NewFromString(strings.TrimSpace(gross))
	if err != nil {
		return false
	}
	return parsed.Equal(decimal.NewFromInt(amount))
}
