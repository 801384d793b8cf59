package repository

import (
	"context"
	"time"

	"github.com/polkiloo/undangan/internal/domain/model"
)

// TransitionFunc inspects the locked order and returns the fields to persist.
// Returning a nil or empty update writes nothing.
type TransitionFunc func(order *model.Order) (*model.OrderUpdate, error)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByReference(ctx context.Context, reference string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error)
	AttachSession(ctx context.Context, orderID int64, session model.PaymentSession) error
	// Transition applies fn to the order under a row lock and returns the resulting order.
	Transition(ctx context.Context, reference string, fn TransitionFunc) (*model.Order, error)
}
