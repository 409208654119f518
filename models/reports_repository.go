package models

import (
	"context"

	"gorm.io/gorm"
)

// DefaultBestsellerLimit is how many product groups the bestsellers report keeps.
const DefaultBestsellerLimit = 5

// ClientOrderCount is one row of the top clients report.
type ClientOrderCount struct {
	CustomerID uint
	Name       string
	Email      string
	OrderCount int64
}

// Bestseller is one row of the bestsellers report.
type Bestseller struct {
	Name         string
	Category     Category
	QuantitySold int64
}

type ReportsRepository struct {
	db *gorm.DB
}

func NewReportsRepository(db *gorm.DB) *ReportsRepository {
	return &ReportsRepository{db: db}
}

// TopClients ranks customers with at least one order by their number of orders.
func (r *ReportsRepository) TopClients(ctx context.Context) ([]ClientOrderCount, error) {
	var rows []ClientOrderCount
	if err := topClientsQuery(r.db.WithContext(ctx)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Bestsellers ranks product name and category groups by the total quantity sold,
// keeping at most limit groups.
func (r *ReportsRepository) Bestsellers(ctx context.Context, limit int) ([]Bestseller, error) {
	var rows []Bestseller
	if err := bestsellersQuery(r.db.WithContext(ctx), limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// TopClientsStatement renders the top clients query as plain SQL.
func (r *ReportsRepository) TopClientsStatement() string {
	return r.db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []ClientOrderCount
		return topClientsQuery(tx).Find(&rows)
	})
}

// BestsellersStatement renders the bestsellers query as plain SQL.
func (r *ReportsRepository) BestsellersStatement(limit int) string {
	return r.db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []Bestseller
		return bestsellersQuery(tx, limit).Find(&rows)
	})
}

func topClientsQuery(db *gorm.DB) *gorm.DB {
	return db.Model(&Customer{}).
		Select("customers.customer_id, customers.name, customers.email, COUNT(orders.order_id) AS order_count").
		Joins("JOIN orders ON orders.customer_id = customers.customer_id").
		Group("customers.customer_id, customers.name, customers.email").
		Order("COUNT(orders.order_id) DESC").
		Order("customers.customer_id")
}

func bestsellersQuery(db *gorm.DB, limit int) *gorm.DB {
	if limit <= 0 {
		limit = DefaultBestsellerLimit
	}
	return db.Model(&Product{}).
		Select("products.name, products.category, SUM(order_items.quantity) AS quantity_sold").
		Joins("JOIN order_items ON order_items.product_id = products.product_id").
		Group("products.name, products.category").
		Order("SUM(order_items.quantity) DESC").
		Order("products.name").
		Limit(limit)
}
