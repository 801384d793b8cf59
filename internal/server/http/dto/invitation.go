package dto

import "time"

// CreateInvitationRequest activates the invitation bought by an order.
type CreateInvitationRequest struct {
	OrderID string `json:"order_id"`
	ThemeID int64  `json:"theme_id"`
}

// CheckInvitationRequest asks whether an order already has an invitation.
type CheckInvitationRequest struct {
	OrderID string `json:"order_id"`
}

// InvitationResponse describes an activated invitation.
type InvitationResponse struct {
	ID         int64     `json:"id"`
	OrderID    string    `json:"order_id"`
	ThemeID    int64     `json:"theme_id"`
	Status     string    `json:"status"`
	ExpiryDate time.Time `json:"expiry_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// CheckInvitationResponse reports whether an invitation exists for the order.
type CheckInvitationResponse struct {
	Exists bool                `json:"exists"`
	Data   *InvitationResponse `json:"data"`
}
