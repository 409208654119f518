package models

import (
	"context"

	"gorm.io/gorm"
)

type CustomersRepository struct {
	db *gorm.DB
}

func NewCustomersRepository(db *gorm.DB) *CustomersRepository {
	return &CustomersRepository{db: db}
}

// CreateCustomers inserts the given customers and commits them.
func (r *CustomersRepository) CreateCustomers(ctx context.Context, customers []Customer) error {
	if len(customers) == 0 {
		return nil
	}
	return translateWriteError(r.db.WithContext(ctx).Create(&customers).Error)
}

func (r *CustomersRepository) ListCustomers(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := r.db.WithContext(ctx).Order("customer_id").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}
