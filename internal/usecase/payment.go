package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/lifecycle"
	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/domain/repository"
)

const referencePrefix = "INV-"

// abandonTimeout bounds the cleanup write made after a failed create.
const abandonTimeout = 5 * time.Second

// PaymentGateway opens transactions and reports their status.
type PaymentGateway interface {
	CreateTransaction(ctx context.Context, charge model.Charge) (model.PaymentSession, error)
	TransactionStatus(ctx context.Context, reference string) (*model.Notification, error)
}

// NotificationVerifier authenticates gateway notifications.
type NotificationVerifier interface {
	Verify(orderID, statusCode, grossAmount, signature string) bool
}

// Ignore reasons reported for authenticated notifications that change nothing.
const (
	IgnoreUnsupportedStatus = "unsupported transaction status"
	IgnoreAmountMismatch    = "gross amount mismatch"
)

// NotificationResult describes what a verified notification did to its order.
type NotificationResult struct {
	Order   *model.Order
	From    model.PaymentStatus
	Changed bool
	// Ignored is set when the notification was acknowledged without effect.
	Ignored string
}

// PaymentUseCase is the order ledger: it creates orders, opens gateway
// transactions and applies notifications through the state machine.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	packages repository.PackageRepository
	users    repository.UserRepository
	gateway  PaymentGateway
	verifier NotificationVerifier
	logger   *slog.Logger

	newReference func() string
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	orders repository.OrderRepository,
	packages repository.PackageRepository,
	users repository.UserRepository,
	gateway PaymentGateway,
	verifier NotificationVerifier,
	logger *slog.Logger,
) *PaymentUseCase {
	return &PaymentUseCase{
		orders:       orders,
		packages:     packages,
		users:        users,
		gateway:      gateway,
		verifier:     verifier,
		logger:       logger,
		newReference: func() string { return referencePrefix + uuid.NewString() },
	}
}

// CreatePayment records a pending order priced server-side and opens a gateway
// transaction for exactly that amount. When the gateway call fails the order
// is canceled and the error wraps ErrGateway.
func (u *PaymentUseCase) CreatePayment(ctx context.Context, userID, packageID int64) (*model.Order, error) {
	pkg, err := u.packages.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	customer, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}

	order, err := u.orders.Create(ctx, &model.Order{
		Reference:     u.newReference(),
		UserID:        userID,
		PackageID:     pkg.ID,
		PackageName:   pkg.Name,
		Amount:        pkg.FinalPrice(),
		PaymentStatus: model.PaymentStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	order.PackageName = pkg.Name

	session, err := u.gateway.CreateTransaction(ctx, model.Charge{Order: order, Package: pkg, Customer: customer})
	if err != nil {
		u.logger.Error("gateway transaction failed",
			slog.String("order", order.Reference),
			slog.Any("error", err),
		)
		u.abandon(ctx, order.Reference)
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrGateway, err)
	}

	// The gateway transaction exists now, so record it even if the caller left.
	if err := u.orders.AttachSession(context.WithoutCancel(ctx), order.ID, session); err != nil {
		u.logger.Error("attach gateway session failed",
			slog.String("order", order.Reference),
			slog.Any("error", err),
		)
		u.abandon(ctx, order.Reference)
		return nil, fmt.Errorf("attach session: %w", err)
	}
	order.SnapToken = &session.Token
	order.RedirectURL = &session.RedirectURL

	u.logger.Info("payment created",
		slog.String("order", order.Reference),
		slog.Int64("amount", order.Amount),
		slog.Int64("package", pkg.ID),
	)
	return order, nil
}

// abandon cancels an order left without a usable gateway session. Only a
// still pending order is touched. It runs detached from ctx because a
// canceled request is a common cause of the failure.
func (u *PaymentUseCase) abandon(ctx context.Context, reference string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), abandonTimeout)
	defer cancel()

	_, err := u.orders.Transition(ctx, reference, func(o *model.Order) (*model.OrderUpdate, error) {
		if o.PaymentStatus != model.PaymentStatusPending {
			return nil, nil
		}
		canceled := model.PaymentStatusCanceled
		return &model.OrderUpdate{Status: &canceled}, nil
	})
	if err != nil {
		u.logger.Error("cancel abandoned order", slog.String("order", reference), slog.Any("error", err))
	}
}

// HandleNotification verifies a gateway notification and applies it to the
// order atomically. Verification happens before any field is trusted.
func (u *PaymentUseCase) HandleNotification(ctx context.Context, n model.Notification) (*NotificationResult, error) {
	if !u.verifier.Verify(n.OrderReference, n.StatusCode, n.GrossAmount, n.SignatureKey) {
		u.logger.Warn("notification signature rejected", slog.String("order", n.OrderReference))
		return nil, domainErrors.ErrInvalidSignature
	}

	result := &NotificationResult{}
	order, err := u.orders.Transition(ctx, n.OrderReference, func(o *model.Order) (*model.OrderUpdate, error) {
		result.From = o.PaymentStatus
		result.Changed = false
		result.Ignored = ""

		if !AmountMatches(n.GrossAmount, o.Amount) {
			result.Ignored = IgnoreAmountMismatch
			return nil, nil
		}

		decision, err := lifecycle.Apply(o.PaymentStatus, lifecycle.Event{
			TransactionStatus: n.TransactionStatus,
			FraudStatus:       deref(n.FraudStatus),
		})
		if err != nil {
			if errors.Is(err, lifecycle.ErrUnsupportedStatus) {
				result.Ignored = IgnoreUnsupportedStatus
				return nil, nil
			}
			return nil, err
		}
		// Terminal orders keep their status but still learn gateway metadata
		// they never received.
		update := &model.OrderUpdate{}
		if decision.Changed {
			update.Status = &decision.To
			result.Changed = true
		}
		if o.PaymentMethod == nil && deref(n.PaymentType) != "" {
			update.PaymentMethod = n.PaymentType
		}
		if o.TransactionID == nil && deref(n.TransactionID) != "" {
			update.TransactionID = n.TransactionID
		}
		return update, nil
	})
	if err != nil {
		return nil, err
	}
	result.Order = order

	attrs := []any{
		slog.String("order", n.OrderReference),
		slog.String("transaction_status", n.TransactionStatus),
		slog.String("from", string(result.From)),
		slog.String("to", string(order.PaymentStatus)),
	}
	switch {
	case result.Ignored != "":
		u.logger.Warn("notification ignored", append(attrs, slog.String("reason", result.Ignored), slog.String("gross_amount", n.GrossAmount))...)
	case result.Changed:
		u.logger.Info("order transitioned", attrs...)
	default:
		u.logger.Debug("notification without transition", attrs...)
	}
	return result, nil
}

// CancelOrder lets the owner abandon a pending order.
func (u *PaymentUseCase) CancelOrder(ctx context.Context, userID int64, reference string) (*model.Order, error) {
	return u.orders.Transition(ctx, reference, func(o *model.Order) (*model.OrderUpdate, error) {
		if o.UserID != userID {
			return nil, domainErrors.ErrForbidden
		}
		next, err := lifecycle.Cancel(o.PaymentStatus)
		if err != nil {
			return nil, err
		}
		return &model.OrderUpdate{Status: &next}, nil
	})
}

// GetOrder returns the order if it belongs to the user.
func (u *PaymentUseCase) GetOrder(ctx context.Context, userID int64, reference string) (*model.Order, error) {
	order, err := u.orders.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListOrders returns the user's orders, newest first.
func (u *PaymentUseCase) ListOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// ListAllOrders returns every order, newest first.
func (u *PaymentUseCase) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListAll(ctx)
}

// StalePending returns pending orders older than age, oldest first.
func (u *PaymentUseCase) StalePending(ctx context.Context, age time.Duration, limit int) ([]model.Order, error) {
	return u.orders.ListStalePending(ctx, time.Now().Add(-age), limit)
}

// Reconcile asks the gateway for the order's status and applies it like a
// notification. Orders the gateway does not know yet are left untouched.
func (u *PaymentUseCase) Reconcile(ctx context.Context, reference string) (*NotificationResult, error) {
	n, err := u.gateway.TransactionStatus(ctx, reference)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return &NotificationResult{}, nil
		}
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrGateway, err)
	}
	return u.HandleNotification(ctx, *n)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
