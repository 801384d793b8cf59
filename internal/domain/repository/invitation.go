package repository

import (
	"context"

	"github.com/polkiloo/undangan/internal/domain/model"
)

// InvitationRepository persists invitations. Create must reject a second
// invitation for the same order with ErrConflict.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *model.Invitation) (*model.Invitation, error)
	GetByOrderID(ctx context.Context, orderID int64) (*model.Invitation, error)
}
