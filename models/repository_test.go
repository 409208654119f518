package models

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- Helpers ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

// seedFixture stores three customers, four products and a known set of orders:
//
//	Alice: 3 orders, Bob: 1 order, Charlie: none
//	iPhone 15: 2+4 = 6, Nike Air Max: 5, Leather Sofa: 1+1 = 2, The Great Gatsby: 7
func seedFixture(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, NewCustomersRepository(db).CreateCustomers(ctx, []Customer{
		{ID: 1, Name: "Alice", Email: "alice@example.com", RegistrationDate: day("2025-01-10")},
		{ID: 2, Name: "Bob", Email: "bob@example.com", RegistrationDate: day("2025-02-01")},
		{ID: 3, Name: "Charlie", Email: "charlie@example.com", RegistrationDate: day("2025-03-15")},
	}))
	require.NoError(t, NewProductsRepository(db).CreateProducts(ctx, []Product{
		{ID: 1, Name: "iPhone 15", Category: CategoryElectronics, Price: decimal.NewFromInt(999)},
		{ID: 2, Name: "Nike Air Max", Category: CategoryClothing, Price: decimal.NewFromInt(120)},
		{ID: 3, Name: "Leather Sofa", Category: CategoryFurniture, Price: decimal.NewFromInt(1200)},
		{ID: 4, Name: "The Great Gatsby", Category: CategoryBooks, Price: decimal.NewFromInt(15)},
	}))

	orders := NewOrdersRepository(db)
	require.NoError(t, orders.CreateOrders(ctx, []Order{
		{ID: 1, CustomerID: 1, OrderDate: day("2025-04-01"), Status: OrderStatusDone},
		{ID: 2, CustomerID: 1, OrderDate: day("2025-04-02"), Status: OrderStatusCanceled},
		{ID: 3, CustomerID: 2, OrderDate: day("2025-04-03"), Status: OrderStatusProcessing},
		{ID: 4, CustomerID: 1, OrderDate: day("2025-04-04"), Status: OrderStatusDone},
	}))
	require.NoError(t, orders.CreateOrderItems(ctx, []OrderItem{
		{ID: 1, OrderID: 1, ProductID: 1, Quantity: 2},
		{ID: 2, OrderID: 1, ProductID: 3, Quantity: 1},
		{ID: 3, OrderID: 2, ProductID: 2, Quantity: 5},
		{ID: 4, OrderID: 3, ProductID: 1, Quantity: 4},
		{ID: 5, OrderID: 3, ProductID: 4, Quantity: 7},
		{ID: 6, OrderID: 4, ProductID: 3, Quantity: 1},
	}))
}

// --- Tests ---

func TestCustomersRepository(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewCustomersRepository(db)
	ctx := context.Background()

	customers, err := repo.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, "Alice", customers[0].Name)
	assert.Equal(t, "charlie@example.com", customers[2].Email)
	assert.Equal(t, "2025-02-01", customers[1].RegistrationDate.Format(time.DateOnly))

	t.Run("Duplicate primary key", func(t *testing.T) {
		err := repo.CreateCustomers(ctx, []Customer{{ID: 1, Name: "Alice", Email: "other@example.com"}})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		err := repo.CreateCustomers(ctx, []Customer{{ID: 99, Name: "Alicia", Email: "alice@example.com"}})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("Empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.CreateCustomers(ctx, nil))
	})
}

func TestProductsRepository(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewProductsRepository(db)
	ctx := context.Background()

	ids, err := repo.ListProductIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3, 4}, ids)

	all, err := repo.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.True(t, decimal.NewFromInt(120).Equal(all[1].Price))

	product, err := repo.GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Leather Sofa", product.Name)
	assert.Equal(t, CategoryFurniture, product.Category)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestOrdersRepository(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewOrdersRepository(db)
	ctx := context.Background()

	orders, err := repo.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 4)
	assert.Equal(t, uint(1), orders[0].ID)
	assert.Equal(t, OrderStatusProcessing, orders[2].Status)
	assert.Equal(t, "2025-04-04", orders[3].OrderDate.Format(time.DateOnly))

	count, err := repo.CountOrderItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)

	err = repo.CreateOrderItems(ctx, []OrderItem{{ID: 6, OrderID: 1, ProductID: 1, Quantity: 1}})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestReportsRepository_TopClients(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewReportsRepository(db)

	rows, err := repo.TopClients(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []ClientOrderCount{
		{CustomerID: 1, Name: "Alice", Email: "alice@example.com", OrderCount: 3},
		{CustomerID: 2, Name: "Bob", Email: "bob@example.com", OrderCount: 1},
	}, rows, "customers without orders are left out")
}

func TestReportsRepository_Bestsellers(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewReportsRepository(db)
	ctx := context.Background()

	testCases := []struct {
		name     string
		limit    int
		expected []Bestseller
	}{
		{
			name:  "Top two",
			limit: 2,
			expected: []Bestseller{
				{Name: "The Great Gatsby", Category: CategoryBooks, QuantitySold: 7},
				{Name: "iPhone 15", Category: CategoryElectronics, QuantitySold: 6},
			},
		},
		{
			name:  "Default limit keeps every ordered product when fewer than five",
			limit: 0,
			expected: []Bestseller{
				{Name: "The Great Gatsby", Category: CategoryBooks, QuantitySold: 7},
				{Name: "iPhone 15", Category: CategoryElectronics, QuantitySold: 6},
				{Name: "Nike Air Max", Category: CategoryClothing, QuantitySold: 5},
				{Name: "Leather Sofa", Category: CategoryFurniture, QuantitySold: 2},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := repo.Bestsellers(ctx, tc.limit)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, rows)
		})
	}
}

func TestReportsRepository_Statements(t *testing.T) {
	db := newTestDB(t)
	seedFixture(t, db)
	repo := NewReportsRepository(db)

	topClients := repo.TopClientsStatement()
	assert.Contains(t, topClients, "order_count")
	assert.Contains(t, topClients, "JOIN orders")

	bestsellers := repo.BestsellersStatement(5)
	assert.Contains(t, bestsellers, "quantity_sold")
	assert.Contains(t, bestsellers, "LIMIT 5")

	// The rendered statements run as-is on a plain connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)

	rows, err := sqlDB.Query(topClients)
	require.NoError(t, err)
	defer rows.Close()
	var n int
	for rows.Next() {
		n++
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, 2, n)
}
