package model

import "time"

// PaymentStatus describes order payment lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusCanceled PaymentStatus = "canceled"
	PaymentStatusExpired  PaymentStatus = "expired"
)

// IsTerminal reports whether no further transition may leave the status.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusCanceled, PaymentStatusExpired:
		return true
	}
	return false
}

// Order describes a single purchase attempt of a package.
// ID is internal; Reference is the only identifier shared with the gateway and clients.
type Order struct {
	ID            int64
	Reference     string
	UserID        int64
	PackageID     int64
	PackageName   string
	Amount        int64
	PaymentStatus PaymentStatus
	PaymentMethod *string
	TransactionID *string
	SnapToken     *string
	RedirectURL   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderUpdate carries the fields a transition wants to persist.
// Nil fields are left untouched.
type OrderUpdate struct {
	Status        *PaymentStatus
	PaymentMethod *string
	TransactionID *string
}

// Empty reports whether the update would write nothing.
func (u *OrderUpdate) Empty() bool {
	return u == nil || (u.Status == nil && u.PaymentMethod == nil && u.TransactionID == nil)
}

// PaymentSession is the gateway handle used by the client to pay.
type PaymentSession struct {
	Token       string
	RedirectURL string
}

// Charge is everything the gateway needs to open a transaction for an order.
type Charge struct {
	Order    *Order
	Package  *Package
	Customer *User
}
