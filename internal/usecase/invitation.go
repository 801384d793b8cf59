package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/lifecycle"
	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/domain/repository"
)

// InvitationUseCase activates invitations for paid orders.
type InvitationUseCase struct {
	orders      repository.OrderRepository
	packages    repository.PackageRepository
	invitations repository.InvitationRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewInvitationUseCase constructs InvitationUseCase.
func NewInvitationUseCase(
	orders repository.OrderRepository,
	packages repository.PackageRepository,
	invitations repository.InvitationRepository,
	logger *slog.Logger,
) *InvitationUseCase {
	return &InvitationUseCase{
		orders:      orders,
		packages:    packages,
		invitations: invitations,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateInvitation activates the invitation bought by a paid order. A second
// activation for the same order fails with ErrConflict.
func (u *InvitationUseCase) CreateInvitation(ctx context.Context, userID int64, reference string, themeID int64) (*model.Invitation, error) {
	if themeID <= 0 {
		return nil, fmt.Errorf("%w: theme id must be positive", domainErrors.ErrValidation)
	}

	order, err := u.ownedOrder(ctx, userID, reference)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus != model.PaymentStatusPaid {
		return nil, fmt.Errorf("%w: order is %s", domainErrors.ErrInvalidState, order.PaymentStatus)
	}

	pkg, err := u.packages.GetByID(ctx, order.PackageID)
	if errors.Is(err, domainErrors.ErrPackageNotFound) {
		return nil, fmt.Errorf("%w: package %d: %w", domainErrors.ErrInvalidState, order.PackageID, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load package: %w", err)
	}

	if _, err := u.invitations.GetByOrderID(ctx, order.ID); err == nil {
		return nil, domainErrors.ErrConflict
	} else if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	expiry, err := lifecycle.ExpiryDate(pkg.ID, u.now())
	if err != nil {
		u.logger.Error("package has no activation period", slog.Int64("package", pkg.ID))
		return nil, err
	}

	inv, err := u.invitations.Create(ctx, &model.Invitation{
		UserID:     userID,
		OrderID:    order.ID,
		ThemeID:    themeID,
		Status:     model.InvitationStatusDraft,
		ExpiryDate: expiry,
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("invitation activated",
		slog.String("order", order.Reference),
		slog.Int64("invitation", inv.ID),
		slog.Time("expires", inv.ExpiryDate),
	)
	return inv, nil
}

// InvitationForOrder returns the invitation activated by the user's order.
func (u *InvitationUseCase) InvitationForOrder(ctx context.Context, userID int64, reference string) (*model.Invitation, error) {
	order, err := u.ownedOrder(ctx, userID, reference)
	if err != nil {
		return nil, err
	}
	return u.invitations.GetByOrderID(ctx, order.ID)
}

func (u *InvitationUseCase) ownedOrder(ctx context.Context, userID int64, reference string) (*model.Order, error) {
	order, err := u.orders.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}
