package models

// All returns every record type of the store in dependency order.
func All() []any {
	return []any{
		&Customer{},
		&Product{},
		&Order{},
		&OrderItem{},
	}
}
