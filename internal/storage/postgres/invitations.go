package postgres

import (
	"context"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
)

type invitationRepository struct {
	storage *Storage
}

// Create relies on the UNIQUE(order_id) constraint to reject a second invitation
// for the same order, including under concurrent requests.
func (r *invitationRepository) Create(ctx context.Context, inv *model.Invitation) (*model.Invitation, error) {
	const query = `INSERT INTO invitations (user_id, order_id, theme_id, status, expiry_date)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	created := *inv
	err := r.storage.pool.QueryRow(ctx, query, inv.UserID, inv.OrderID, inv.ThemeID, inv.Status, inv.ExpiryDate).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, mapUnique(err, domainErrors.ErrConflict)
	}
	return &created, nil
}

func (r *invitationRepository) GetByOrderID(ctx context.Context, orderID int64) (*model.Invitation, error) {
	const query = `SELECT id, user_id, order_id, theme_id, status, expiry_date, created_at
                   FROM invitations WHERE order_id=$1`
	var inv model.Invitation
	err := r.storage.pool.QueryRow(ctx, query, orderID).
		Scan(&inv.ID, &inv.UserID, &inv.OrderID, &inv.ThemeID, &inv.Status, &inv.ExpiryDate, &inv.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err, domainErrors.ErrNotFound)
	}
	return &inv, nil
}
