package repository

import (
	"context"
	"errors"
	"time"

	"carita-payment-api/internal/model"

	"gorm.io/gorm"
)

// ErrDuplicateOrder is returned when an order id is created twice. The order
// id is generated server-side, so a collision means a bug or a replayed
// checkout call; silently overwriting would lose the original order.
var ErrDuplicateOrder = errors.New("order already exists")

type OrderRepository interface {
	// Create inserts the order and its line items atomically.
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	// Update merges fields into an existing order and refreshes updated_at.
	// It never creates: a missing order id yields gorm.ErrRecordNotFound.
	Update(ctx context.Context, tx *gorm.DB, orderID string, fields map[string]interface{}) (*model.Order, error)
	// MarkPaid transitions the order to paid, stamps paid_at once and flags it
	// for the admin dashboard. Re-applying on an already-paid order keeps the
	// original paid_at.
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID string, n *model.MidtransNotification) (*model.Order, error)
	ListPaidForAdmin(ctx context.Context) ([]*model.Order, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	err := tx.WithContext(ctx).Create(order).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateOrder
	}
	return err
}

func (r *orderRepoImpl) FindByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) Update(ctx context.Context, tx *gorm.DB, orderID string, fields map[string]interface{}) (*model.Order, error) {
	fields["updated_at"] = time.Now()

	var order model.Order
	err := tx.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Order{}).
			Where("order_id = ?", orderID).
			Updates(fields)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Where("order_id = ?", orderID).First(&order).Error
	})

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, orderID string, n *model.MidtransNotification) (*model.Order, error) {
	return r.Update(ctx, tx, orderID, map[string]interface{}{
		"status":             model.OrderStatusPaid,
		"sent_to_admin":      true,
		"paid_at":            gorm.Expr("COALESCE(paid_at, ?)", time.Now()),
		"transaction_id":     n.TransactionID,
		"transaction_status": n.TransactionStatus,
		"status_code":        n.StatusCode,
	})
}

func (r *orderRepoImpl) ListPaidForAdmin(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status = ?", model.OrderStatusPaid).
		Order("created_at DESC").
		Find(&orders).
		Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}
