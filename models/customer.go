package models

import "time"

// Customer is a registered shop client.
// Email is unique across all customers.
type Customer struct {
	ID               uint      `gorm:"column:customer_id;primaryKey;autoIncrement:false"`
	Name             string    `gorm:"size:50;not null"`
	Email            string    `gorm:"size:50;uniqueIndex"`
	RegistrationDate time.Time `gorm:"type:date"`
	Orders           []Order   `gorm:"foreignKey:CustomerID;references:ID"`
}

func (c *Customer) TableName() string {
	return "customers"
}
