// Package lifecycle holds the order payment state machine and the rules that
// derive invitation activation from a purchased package.
package lifecycle

import (
	"errors"
	"fmt"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
)

// Gateway transaction statuses.
const (
	TransactionCapture    = "capture"
	TransactionSettlement = "settlement"
	TransactionPending    = "pending"
	TransactionDeny       = "deny"
	TransactionCancel     = "cancel"
	TransactionExpire     = "expire"
)

// Gateway fraud statuses.
const (
	FraudAccept    = "accept"
	FraudChallenge = "challenge"
	FraudDeny      = "deny"
)

// ErrUnsupportedStatus marks a transaction status the ledger does not act on.
var ErrUnsupportedStatus = errors.New("unsupported transaction status")

// Event is the part of a notification that drives a transition.
type Event struct {
	TransactionStatus string
	FraudStatus       string
}

// Decision is the outcome of applying an event to a status.
type Decision struct {
	From    model.PaymentStatus
	To      model.PaymentStatus
	Changed bool
}

// Target maps an event to the payment status it asks for.
func Target(ev Event) (model.PaymentStatus, error) {
	switch ev.TransactionStatus {
	case TransactionCapture:
		switch ev.FraudStatus {
		case FraudChallenge:
			return model.PaymentStatusPending, nil
		case FraudDeny:
			return model.PaymentStatusCanceled, nil
		case FraudAccept, "":
			return model.PaymentStatusPaid, nil
		}
		return "", fmt.Errorf("%w: capture with fraud status %q", ErrUnsupportedStatus, ev.FraudStatus)
	case TransactionSettlement:
		return model.PaymentStatusPaid, nil
	case TransactionPending:
		return model.PaymentStatusPending, nil
	case TransactionDeny, TransactionCancel:
		return model.PaymentStatusCanceled, nil
	case TransactionExpire:
		return model.PaymentStatusExpired, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedStatus, ev.TransactionStatus)
}

// Apply computes the next status. Terminal statuses win: once an order is
// paid, canceled or expired every later event is a no-op.
func Apply(current model.PaymentStatus, ev Event) (Decision, error) {
	target, err := Target(ev)
	if err != nil {
		return Decision{From: current, To: current}, err
	}
	if current.IsTerminal() || target == current {
		return Decision{From: current, To: current}, nil
	}
	return Decision{From: current, To: target, Changed: true}, nil
}

// Cancel is the user-initiated transition, legal only from pending.
func Cancel(current model.PaymentStatus) (model.PaymentStatus, error) {
	if current != model.PaymentStatusPending {
		return current, fmt.Errorf("%w: cannot cancel %s order", domainErrors.ErrInvalidState, current)
	}
	return model.PaymentStatusCanceled, nil
}
