package app

import (
	"context"
	"time"

	"github.com/polkiloo/undangan/internal/config"
	"github.com/polkiloo/undangan/internal/domain/model"
	pkgAuth "github.com/polkiloo/undangan/internal/pkg/auth"
	"github.com/polkiloo/undangan/internal/usecase"
)

type WeddingFacade struct {
	auth        *usecase.AuthUseCase
	packages    *usecase.PackageUseCase
	payments    *usecase.PaymentUseCase
	invitations *usecase.InvitationUseCase
	staleAfter  time.Duration
}

func NewWeddingFacade(
	auth *usecase.AuthUseCase,
	packages *usecase.PackageUseCase,
	payments *usecase.PaymentUseCase,
	invitations *usecase.InvitationUseCase,
	cfg *config.Config,
) *WeddingFacade {
	return &WeddingFacade{
		auth:        auth,
		packages:    packages,
		payments:    payments,
		invitations: invitations,
		staleAfter:  cfg.ReconcileAfter,
	}
}

func (f *WeddingFacade) Register(ctx context.Context, email, password, name, phone string) (string, error) {
	_, token, err := f.auth.Register(ctx, usecase.Registration{Email: email, Password: password, Name: name, Phone: phone})
	return token, err
}

func (f *WeddingFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *WeddingFacade) ParseToken(token string) (pkgAuth.Principal, error) {
	return f.auth.ParseToken(token)
}

func (f *WeddingFacade) Packages(ctx context.Context) ([]model.Package, error) {
	return f.packages.List(ctx)
}

func (f *WeddingFacade) Package(ctx context.Context, id int64) (*model.Package, error) {
	return f.packages.Get(ctx, id)
}

func (f *WeddingFacade) CreatePayment(ctx context.Context, userID, packageID int64) (*model.Order, error) {
	return f.payments.CreatePayment(ctx, userID, packageID)
}

func (f *WeddingFacade) Order(ctx context.Context, userID int64, reference string) (*model.Order, error) {
	return f.payments.GetOrder(ctx, userID, reference)
}

func (f *WeddingFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.payments.ListOrders(ctx, userID)
}

func (f *WeddingFacade) CancelOrder(ctx context.Context, userID int64, reference string) (*model.Order, error) {
	return f.payments.CancelOrder(ctx, userID, reference)
}

func (f *WeddingFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.payments.ListAllOrders(ctx)
}

func (f *WeddingFacade) HandleNotification(ctx context.Context, n model.Notification) error {
	_, err := f.payments.HandleNotification(ctx, n)
	return err
}

func (f *WeddingFacade) CreateInvitation(ctx context.Context, userID int64, reference string, themeID int64) (*model.Invitation, error) {
	return f.invitations.CreateInvitation(ctx, userID, reference, themeID)
}

func (f *WeddingFacade) InvitationForOrder(ctx context.Context, userID int64, reference string) (*model.Invitation, error) {
	return f.invitations.InvitationForOrder(ctx, userID, reference)
}

func (f *WeddingFacade) StalePendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.payments.StalePending(ctx, f.staleAfter, limit)
}

func (f *WeddingFacade) ReconcileOrder(ctx context.Context, reference string) error {
	_, err := f.payments.Reconcile(ctx, reference)
	return err
}
