package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
)

// PackageFacadeStub serves DefaultPackages unless overridden.
type PackageFacadeStub struct {
	PackagesFn func(context.Context) ([]model.Package, error)
	PackageFn  func(context.Context, int64) (*model.Package, error)
}

// Packages lists the catalog.
func (s PackageFacadeStub) Packages(ctx context.Context) ([]model.Package, error) {
	if s.PackagesFn != nil {
		return s.PackagesFn(ctx)
	}
	return DefaultPackages(), nil
}

// Package returns a catalog entry or ErrPackageNotFound.
func (s PackageFacadeStub) Package(ctx context.Context, id int64) (*model.Package, error) {
	if s.PackageFn != nil {
		return s.PackageFn(ctx, id)
	}
	for _, p := range DefaultPackages() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domainErrors.ErrPackageNotFound
}

// PaymentFacadeStub provides controllable behaviour for payment endpoints.
type PaymentFacadeStub struct {
	CreateFn    func(context.Context, int64, int64) (*model.Order, error)
	OrderFn     func(context.Context, int64, string) (*model.Order, error)
	OrdersFn    func(context.Context, int64) ([]model.Order, error)
	CancelFn    func(context.Context, int64, string) (*model.Order, error)
	AllOrdersFn func(context.Context) ([]model.Order, error)
}

// CreatePayment returns a pending order with a session unless overridden.
func (s PaymentFacadeStub) CreatePayment(ctx context.Context, userID, packageID int64) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, packageID)
	}
	token, redirect := "snap-token", "https://pay.example/snap-token"
	return &model.Order{
		Reference:     "INV-1",
		UserID:        userID,
		PackageID:     packageID,
		Amount:        100000,
		PaymentStatus: model.PaymentStatusPending,
		SnapToken:     &token,
		RedirectURL:   &redirect,
	}, nil
}

// Order returns an owned pending order unless overridden.
func (s PaymentFacadeStub) Order(ctx context.Context, userID int64, reference string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, reference)
	}
	return &model.Order{Reference: reference, UserID: userID, PackageID: 1, PackageName: "Economy", Amount: 100000, PaymentStatus: model.PaymentStatusPending, CreatedAt: time.Unix(0, 0)}, nil
}

// Orders returns predefined orders for given user.
func (s PaymentFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{Reference: "INV-1", UserID: userID, PaymentStatus: model.PaymentStatusPending}}, nil
}

// CancelOrder returns a canceled order unless overridden.
func (s PaymentFacadeStub) CancelOrder(ctx context.Context, userID int64, reference string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, userID, reference)
	}
	return &model.Order{Reference: reference, UserID: userID, PaymentStatus: model.PaymentStatusCanceled}, nil
}

// AllOrders returns every order for administrators.
func (s PaymentFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{{Reference: "INV-1"}, {Reference: "INV-2"}}, nil
}

// NotificationFacadeStub records delivered notifications.
type NotificationFacadeStub struct {
	HandleFn func(context.Context, model.Notification) error
}

// HandleNotification delegates to override or accepts the notification.
func (s NotificationFacadeStub) HandleNotification(ctx context.Context, n model.Notification) error {
	if s.HandleFn != nil {
		return s.HandleFn(ctx, n)
	}
	return nil
}

// InvitationFacadeStub simulates invitation activation.
type InvitationFacadeStub struct {
	CreateFn func(context.Context, int64, string, int64) (*model.Invitation, error)
	ForOrder func(context.Context, int64, string) (*model.Invitation, error)
}

// CreateInvitation returns a draft invitation unless overridden.
func (s InvitationFacadeStub) CreateInvitation(ctx context.Context, userID int64, reference string, themeID int64) (*model.Invitation, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, reference, themeID)
	}
	return &model.Invitation{ID: 1, UserID: userID, OrderID: 1, ThemeID: themeID, Status: model.InvitationStatusDraft, ExpiryDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)}, nil
}

// InvitationForOrder reports no invitation unless overridden.
func (s InvitationFacadeStub) InvitationForOrder(ctx context.Context, userID int64, reference string) (*model.Invitation, error) {
	if s.ForOrder != nil {
		return s.ForOrder(ctx, userID, reference)
	}
	return nil, domainErrors.ErrNotFound
}

// ReconcileFacadeStub mimics reconciler interactions with the application facade.
type ReconcileFacadeStub struct {
	Batches     [][]model.Order
	StaleFn     func(context.Context, int) ([]model.Order, error)
	ReconcileFn func(context.Context, string) error

	mu         sync.Mutex
	Reconciled []string
	calls      int32
}

// StalePendingOrders returns configured batches one per call.
func (s *ReconcileFacadeStub) StalePendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.calls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	return nil, nil
}

// ReconcileOrder records reconciled references.
func (s *ReconcileFacadeStub) ReconcileOrder(ctx context.Context, reference string) error {
	s.mu.Lock()
	s.Reconciled = append(s.Reconciled, reference)
	s.mu.Unlock()
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, reference)
	}
	return nil
}

// ReconciledRefs returns a copy of reconciled references.
func (s *ReconcileFacadeStub) ReconciledRefs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Reconciled...)
}

// GatewayStub implements the payment gateway contract in memory.
type GatewayStub struct {
	CreateFn func(context.Context, model.Charge) (model.PaymentSession, error)
	StatusFn func(context.Context, string) (*model.Notification, error)

	mu      sync.Mutex
	Charges []model.Charge
}

// CreateTransaction records the charge and returns a session named after the order.
func (g *GatewayStub) CreateTransaction(ctx context.Context, charge model.Charge) (model.PaymentSession, error) {
	g.mu.Lock()
	g.Charges = append(g.Charges, charge)
	g.mu.Unlock()
	if g.CreateFn != nil {
		return g.CreateFn(ctx, charge)
	}
	token := "snap-" + charge.Order.Reference
	return model.PaymentSession{Token: token, RedirectURL: "https://pay.example/" + token}, nil
}

// TransactionStatus delegates to StatusFn or reports an unknown transaction.
func (g *GatewayStub) TransactionStatus(ctx context.Context, reference string) (*model.Notification, error) {
	if g.StatusFn != nil {
		return g.StatusFn(ctx, reference)
	}
	return nil, domainErrors.ErrNotFound
}

// ChargeCount returns the number of opened transactions.
func (g *GatewayStub) ChargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Charges)
}

// VerifierStub accepts notifications whose signature equals Valid.
type VerifierStub struct {
	Valid string
}

// Verify compares the signature with the configured value.
func (v VerifierStub) Verify(orderID, statusCode, grossAmount, signature string) bool {
	return signature == v.Valid
}
