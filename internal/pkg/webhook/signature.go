// Package webhook verifies payment gateway notifications.
package webhook

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrEmptyServerKey is returned when a verifier is built without a key.
var ErrEmptyServerKey = errors.New("webhook: empty server key")

// Verifier checks notification signatures computed as
// hex(SHA-512(order_id + status_code + gross_amount + server_key)).
type Verifier struct {
	serverKey string
}

// NewVerifier builds Verifier for the given server key.
func NewVerifier(serverKey string) (*Verifier, error) {
	if strings.TrimSpace(serverKey) == "" {
		return nil, ErrEmptyServerKey
	}
	return &Verifier{serverKey: serverKey}, nil
}

// Sign returns the expected signature for the given fields.
func (v *Verifier) Sign(orderID, statusCode, grossAmount string) string {
	return Sign(orderID, statusCode, grossAmount, v.serverKey)
}

// Verify reports whether signature is exactly the lowercase hex digest of
// the fields. Comparison is constant-time.
func (v *Verifier) Verify(orderID, statusCode, grossAmount, signature string) bool {
	expected := v.Sign(orderID, statusCode, grossAmount)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// Sign computes the signature for fields using serverKey.
func Sign(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}
