package seed

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mytheresa/orders-report/database"
	"github.com/mytheresa/orders-report/logging"
	"github.com/mytheresa/orders-report/models"
)

func newStoreGenerator(t *testing.T) (*Generator, *gorm.DB, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := logging.New(&logs, "info")

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), database.NewGormConfig(false, logger))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.RunMigrations(context.Background(), db, logger))

	g := NewGenerator(
		models.NewCustomersRepository(db),
		models.NewProductsRepository(db),
		models.NewOrdersRepository(db),
		Options{Seed: 42, Today: func() time.Time { return fixedToday }, Logger: logger},
	)
	return g, db, &logs
}

func TestRun_AgainstStore(t *testing.T) {
	g, db, _ := newStoreGenerator(t)
	ctx := context.Background()

	require.NoError(t, g.Run(ctx))

	var customers, products, orders int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&customers).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(10), customers)
	assert.Equal(t, int64(15), products)
	assert.Equal(t, int64(OrderCount), orders)

	items, err := models.NewOrdersRepository(db).CountOrderItems(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, items, int64(OrderCount))
	assert.LessOrEqual(t, items, int64(5*OrderCount))

	// order dates stay within [registration date, today]
	var stored []models.Customer
	require.NoError(t, db.Preload("Orders").Find(&stored).Error)
	today := civilDate(fixedToday)
	for _, c := range stored {
		for _, o := range c.Orders {
			assert.False(t, civilDate(o.OrderDate).Before(civilDate(c.RegistrationDate)), "order %d", o.ID)
			assert.False(t, civilDate(o.OrderDate).After(today), "order %d", o.ID)
		}
	}
}

func TestRun_SecondRunViolatesUniqueness(t *testing.T) {
	g, _, logs := newStoreGenerator(t)
	ctx := context.Background()

	require.NoError(t, g.Run(ctx))
	err := g.Run(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDuplicateKey)
	assert.Contains(t, logs.String(), "An error occurred during data generation")
}
