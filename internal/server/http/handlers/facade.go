package handlers

import (
	"context"

	"github.com/polkiloo/undangan/internal/domain/model"
	pkgAuth "github.com/polkiloo/undangan/internal/pkg/auth"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password, name, phone string) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (pkgAuth.Principal, error)
}

// PackageFacade exposes the package catalog.
type PackageFacade interface {
	Packages(ctx context.Context) ([]model.Package, error)
	Package(ctx context.Context, id int64) (*model.Package, error)
}

// PaymentFacade encapsulates order and payment operations exposed via HTTP.
type PaymentFacade interface {
	CreatePayment(ctx context.Context, userID, packageID int64) (*model.Order, error)
	Order(ctx context.Context, userID int64, reference string) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	CancelOrder(ctx context.Context, userID int64, reference string) (*model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
}

// NotificationFacade applies gateway notifications.
type NotificationFacade interface {
	HandleNotification(ctx context.Context, n model.Notification) error
}

// InvitationFacade activates invitations for paid orders.
type InvitationFacade interface {
	CreateInvitation(ctx context.Context, userID int64, reference string, themeID int64) (*model.Invitation, error)
	InvitationForOrder(ctx context.Context, userID int64, reference string) (*model.Invitation, error)
}

// WeddingFacade aggregates the full set of operations used across handlers.
type WeddingFacade interface {
	AuthFacade
	PackageFacade
	PaymentFacade
	NotificationFacade
	InvitationFacade
}
