package usecase

import (
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
)

func validRegistration() Registration {
	return Registration{Email: " Rina@Example.com ", Password: "password1", Name: " Rina ", Phone: "+628123456789"}
}

func TestValidateRegistrationNormalizes(t *testing.T) {
	got, err := ValidateRegistration(validRegistration())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "rina@example.com" || got.Name != "Rina" {
		t.Fatalf("unexpected normalized registration: %+v", got)
	}
}

func TestValidateRegistrationRejects(t *testing.T) {
	cases := map[string]func(*Registration){
		"empty name":     func(r *Registration) { r.Name = "  " },
		"long name":      func(r *Registration) { r.Name = strings.Repeat("a", 256) },
		"bad email":      func(r *Registration) { r.Email = "not-an-email" },
		"display email":  func(r *Registration) { r.Email = "Rina <rina@example.com>" },
		"short password": func(r *Registration) { r.Password = "short" },
		"letters phone":  func(r *Registration) { r.Phone = "08abc" },
		"long phone":     func(r *Registration) { r.Phone = "0812345678901234" },
		"empty phone":    func(r *Registration) { r.Phone = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := validRegistration()
			mutate(&r)
			if _, err := ValidateRegistration(r); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"08123456789", "+628123456789", "1"}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	invalid := []string{"", "+", "0812-345", "++62812"}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestAmountMatches(t *testing.T) {
	cases := []struct {
		gross  string
		amount int64
		want   bool
	}{
		{"150000.00", 150000, true},
		{"150000", 150000, true},
		{" 135000.0 ", 135000, true},
		{"150000.01", 150000, false},
		{"149999.99", 150000, false},
		{"abc", 150000, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		if got := AmountMatches(tc.gross, tc.amount); got != tc.want {
			t.Errorf("AmountMatches(%q, %d) = %v, want %v", tc.gross, tc.amount, got, tc.want)
		}
	}
}
