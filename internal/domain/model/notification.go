package model

// Notification is a gateway payment notification. The same shape is returned
// by the gateway transaction status API.
type Notification struct {
	OrderReference    string  `json:"order_id"`
	StatusCode        string  `json:"status_code"`
	GrossAmount       string  `json:"gross_amount"`
	SignatureKey      string  `json:"signature_key"`
	TransactionStatus string  `json:"transaction_status"`
	FraudStatus       *string `json:"fraud_status,omitempty"`
	PaymentType       *string `json:"payment_type,omitempty"`
	TransactionID     *string `json:"transaction_id,omitempty"`
}
