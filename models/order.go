package models

import "time"

// OrderStatus is the processing state of an order.
type OrderStatus string

const (
	OrderStatusDone       OrderStatus = "done"
	OrderStatusCanceled   OrderStatus = "canceled"
	OrderStatusProcessing OrderStatus = "processing"
)

// OrderStatuses returns the known statuses in a stable order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusDone, OrderStatusCanceled, OrderStatusProcessing}
}

// Order belongs to one customer and groups one or more order items.
type Order struct {
	ID         uint        `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	CustomerID uint        `gorm:"index"`
	OrderDate  time.Time   `gorm:"type:date"`
	Status     OrderStatus `gorm:"size:50"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

func (o *Order) TableName() string {
	return "orders"
}

// OrderItem is a single product line of an order.
type OrderItem struct {
	ID        uint `gorm:"column:order_item_id;primaryKey;autoIncrement:false"`
	OrderID   uint `gorm:"index"`
	ProductID uint `gorm:"index"`
	Quantity  int
}

func (i *OrderItem) TableName() string {
	return "order_items"
}
