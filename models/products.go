package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// It includes a name, a category and a unit price.
type Product struct {
	ID         uint            `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	Name       string          `gorm:"size:50;not null"`
	Category   Category        `gorm:"size:50"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2)"`
	OrderItems []OrderItem     `gorm:"foreignKey:ProductID;references:ID"`
}

func (p *Product) TableName() string {
	return "products"
}
