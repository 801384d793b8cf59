package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Principal is the authenticated identity carried by a token.
type Principal struct {
	UserID int64
	Role   string
}

type Strategy interface {
	IssueToken(p Principal) (string, error)
	ParseToken(token string) (Principal, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
}
