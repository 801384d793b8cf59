package dto

import "time"

// CreatePaymentRequest selects the package to buy.
type CreatePaymentRequest struct {
	PackageID int64 `json:"package_id"`
}

// CreatePaymentResponse carries the gateway session for a new order.
type CreatePaymentResponse struct {
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
}

// OrderPackage is the package summary embedded in order responses.
type OrderPackage struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderResponse describes an order as seen by its owner or an administrator.
type OrderResponse struct {
	OrderID       string       `json:"order_id"`
	PaymentStatus string       `json:"payment_status"`
	PaymentMethod *string      `json:"payment_method"`
	Amount        int64        `json:"amount"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	Package       OrderPackage `json:"package"`
	RedirectURL   *string      `json:"redirect_url,omitempty"`
	UserID        int64        `json:"user_id,omitempty"`
}

// StatusResponse acknowledges gateway notifications.
type StatusResponse struct {
	Status string `json:"status"`
}
