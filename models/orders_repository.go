package models

import (
	"context"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// CreateOrders inserts the given orders and commits them.
func (r *OrdersRepository) CreateOrders(ctx context.Context, orders []Order) error {
	if len(orders) == 0 {
		return nil
	}
	return translateWriteError(r.db.WithContext(ctx).Omit("Items").Create(&orders).Error)
}

func (r *OrdersRepository) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := r.db.WithContext(ctx).Order("order_id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrderItems inserts the given order items and commits them.
func (r *OrdersRepository) CreateOrderItems(ctx context.Context, items []OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return translateWriteError(r.db.WithContext(ctx).Create(&items).Error)
}

func (r *OrdersRepository) CountOrderItems(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&OrderItem{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
