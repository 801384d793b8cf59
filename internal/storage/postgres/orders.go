package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
	"github.com/polkiloo/undangan/internal/domain/model"
	"github.com/polkiloo/undangan/internal/domain/repository"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `o.id, o.reference, o.user_id, o.package_id, p.name, o.amount, o.payment_status,
       o.payment_method, o.transaction_id, o.snap_token, o.redirect_url, o.created_at, o.updated_at`

const selectOrder = `SELECT ` + orderColumns + `
FROM orders o JOIN packages p ON p.id = o.package_id`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.Reference, &o.UserID, &o.PackageID, &o.PackageName, &o.Amount, &o.PaymentStatus,
		&o.PaymentMethod, &o.TransactionID, &o.SnapToken, &o.RedirectURL, &o.CreatedAt, &o.UpdatedAt)
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (reference, user_id, package_id, amount, payment_status)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at, updated_at`
	created := *order
	if created.PaymentStatus == "" {
		created.PaymentStatus = model.PaymentStatusPending
	}
	err := r.storage.pool.QueryRow(ctx, query, order.Reference, order.UserID, order.PackageID, order.Amount, created.PaymentStatus).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, mapUnique(err, domainErrors.ErrAlreadyExists)
	}
	return &created, nil
}

func (r *orderRepository) GetByReference(ctx context.Context, reference string) (*model.Order, error) {
	var o model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, selectOrder+` WHERE o.reference=$1`, reference), &o); err != nil {
		return nil, mapNoRows(err, domainErrors.ErrOrderNotFound)
	}
	return &o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return r.list(ctx, selectOrder+` WHERE o.user_id=$1 ORDER BY o.created_at DESC, o.id DESC`, userID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	return r.list(ctx, selectOrder+` ORDER BY o.created_at DESC, o.id DESC`)
}

// ListStalePending returns pending orders with an open gateway session created before olderThan.
func (r *orderRepository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]model.Order, error) {
	const where = ` WHERE o.payment_status=$1 AND o.snap_token IS NOT NULL AND o.created_at < $2
ORDER BY o.created_at LIMIT $3`
	return r.list(ctx, selectOrder+where, model.PaymentStatusPending, olderThan, limit)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) AttachSession(ctx context.Context, orderID int64, session model.PaymentSession) error {
	const query = `UPDATE orders SET snap_token=$1, redirect_url=$2, updated_at=NOW() WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, session.Token, session.RedirectURL, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrOrderNotFound
	}
	return nil
}

// Transition locks the order row, lets fn decide and persists the non-empty update
// in the same transaction. Concurrent transitions of one order serialize on the lock.
func (r *orderRepository) Transition(ctx context.Context, reference string, fn repository.TransitionFunc) (*model.Order, error) {
	var result *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var o model.Order
		if err := scanOrder(tx.QueryRow(ctx, selectOrder+` WHERE o.reference=$1 FOR UPDATE OF o`, reference), &o); err != nil {
			return mapNoRows(err, domainErrors.ErrOrderNotFound)
		}

		update, err := fn(&o)
		if err != nil {
			return err
		}
		if update.Empty() {
			result = &o
			return nil
		}

		const query = `UPDATE orders
                       SET payment_status=COALESCE($1, payment_status),
                           payment_method=COALESCE($2, payment_method),
                           transaction_id=COALESCE($3, transaction_id),
                           updated_at=NOW()
                       WHERE id=$4
                       RETURNING updated_at`
		var status *string
		if update.Status != nil {
			s := string(*update.Status)
			status = &s
		}
		if err := tx.QueryRow(ctx, query, status, update.PaymentMethod, update.TransactionID, o.ID).Scan(&o.UpdatedAt); err != nil {
			return err
		}

		if update.Status != nil {
			o.PaymentStatus = *update.Status
		}
		if update.PaymentMethod != nil {
			o.PaymentMethod = update.PaymentMethod
		}
		if update.TransactionID != nil {
			o.TransactionID = update.TransactionID
		}
		result = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
