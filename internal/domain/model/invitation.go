package model

import "time"

// InvitationStatus describes publication state of an invitation.
type InvitationStatus string

const (
	InvitationStatusDraft     InvitationStatus = "draft"
	InvitationStatusPublished InvitationStatus = "published"
)

// Invitation is the product activated by a paid order. At most one exists per order.
type Invitation struct {
	ID         int64
	UserID     int64
	OrderID    int64
	ThemeID    int64
	Status     InvitationStatus
	ExpiryDate time.Time
	CreatedAt  time.Time
}
