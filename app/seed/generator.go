package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mytheresa/orders-report/models"
)

const (
	// OrderCount is the number of orders CreateOrders generates.
	OrderCount = 28

	maxRegistrationAgeDays = 365
	minItemsPerOrder       = 1
	maxItemsPerOrder       = 5
	minQuantity            = 1
	maxQuantity            = 10
)

// CustomerNames are the customers CreateCustomers stores, in id order.
var CustomerNames = []string{
	"Alice", "Bob", "Charlie", "Diana", "Ethan",
	"Fiona", "George", "Hannah", "Ian", "Jasmine",
}

type catalogEntry struct {
	name     string
	category models.Category
	price    int64
}

var catalog = []catalogEntry{
	{"iPhone 15", models.CategoryElectronics, 999},
	{"Samsung Galaxy S22", models.CategoryElectronics, 899},
	{"Sony Bravia TV", models.CategoryElectronics, 1200},
	{"MacBook Pro", models.CategoryElectronics, 2500},
	{"Dell XPS 13", models.CategoryElectronics, 1400},
	{"Nike Air Max", models.CategoryClothing, 120},
	{"Adidas Ultraboost", models.CategoryClothing, 180},
	{"The Great Gatsby", models.CategoryBooks, 15},
	{"1984 by George Orwell", models.CategoryBooks, 20},
	{"Harry Potter Series", models.CategoryBooks, 100},
	{"Wooden Dining Table", models.CategoryFurniture, 600},
	{"Leather Sofa", models.CategoryFurniture, 1200},
	{"LEGO Star Wars Set", models.CategoryToys, 150},
	{"Barbie Dreamhouse", models.CategoryToys, 200},
	{"Hot Wheels Track", models.CategoryToys, 50},
}

// Catalog returns the fixed product catalog with ids 1..15.
func Catalog() []models.Product {
	return lo.Map(catalog, func(e catalogEntry, i int) models.Product {
		return models.Product{
			ID:       uint(i + 1),
			Name:     e.name,
			Category: e.category,
			Price:    decimal.NewFromInt(e.price),
		}
	})
}

type CustomerStore interface {
	CreateCustomers(ctx context.Context, customers []models.Customer) error
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

type ProductStore interface {
	CreateProducts(ctx context.Context, products []models.Product) error
	ListProductIDs(ctx context.Context) ([]uint, error)
}

type OrderStore interface {
	CreateOrders(ctx context.Context, orders []models.Order) error
	ListOrders(ctx context.Context) ([]models.Order, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
}

type Options struct {
	Seed uint64
	// Today is the reference date. Defaults to the current UTC date.
	Today  func() time.Time
	Logger *slog.Logger
}

// Generator fills an empty store with reproducible sample data.
// The same seed and the same Today yield the same rows.
type Generator struct {
	customers CustomerStore
	products  ProductStore
	orders    OrderStore
	rng       *rand.Rand
	today     func() time.Time
	logger    *slog.Logger
}

func NewGenerator(customers CustomerStore, products ProductStore, orders OrderStore, opts Options) *Generator {
	g := &Generator{
		customers: customers,
		products:  products,
		orders:    orders,
		rng:       rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
		today:     opts.Today,
		logger:    opts.Logger,
	}
	if g.today == nil {
		g.today = time.Now
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Run creates customers, products, orders and order items in that order.
// It stops at the first failure; whatever earlier steps committed stays in the store.
func (g *Generator) Run(ctx context.Context) error {
	steps := []struct {
		name string
		done string
		fn   func(context.Context) error
	}{
		{"customers", "Customers created successfully.", g.CreateCustomers},
		{"products", "Products created successfully.", g.CreateProducts},
		{"orders", "Orders created successfully.", g.CreateOrders},
		{"order items", "Order items created successfully.", g.CreateOrderItems},
	}

	g.logger.Info("Starting data generation...")
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			g.logger.Error("An error occurred during data generation", "step", step.name, "error", err)
			return fmt.Errorf("create %s: %w", step.name, err)
		}
		g.logger.Info(step.done)
	}
	g.logger.Info("Data generation completed.")
	return nil
}

// CreateCustomers stores one customer per name in CustomerNames, each registered
// up to a year before today.
func (g *Generator) CreateCustomers(ctx context.Context) error {
	today := g.date()
	customers := make([]models.Customer, 0, len(CustomerNames))
	for i, name := range CustomerNames {
		customers = append(customers, models.Customer{
			ID:               uint(i + 1),
			Name:             name,
			Email:            strings.ToLower(name) + "@example.com",
			RegistrationDate: today.AddDate(0, 0, -g.intBetween(0, maxRegistrationAgeDays)),
		})
	}
	return g.customers.CreateCustomers(ctx, customers)
}

// CreateProducts stores the fixed catalog.
func (g *Generator) CreateProducts(ctx context.Context) error {
	return g.products.CreateProducts(ctx, Catalog())
}

// CreateOrders stores OrderCount orders for randomly picked stored customers. Every
// order date falls between the customer's registration date and today, inclusive.
func (g *Generator) CreateOrders(ctx context.Context) error {
	customers, err := g.customers.ListCustomers(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	if len(customers) == 0 {
		return errors.New("no customers to place orders for")
	}

	today := g.date()
	statuses := models.OrderStatuses()
	orders := make([]models.Order, 0, OrderCount)
	for i := 1; i <= OrderCount; i++ {
		customer := customers[g.rng.IntN(len(customers))]
		registered := civilDate(customer.RegistrationDate)
		span := daysBetween(registered, today)
		if span < 0 {
			// registered after the reference date: order on the registration day
			span = 0
		}

		orders = append(orders, models.Order{
			ID:         uint(i),
			CustomerID: customer.ID,
			OrderDate:  registered.AddDate(0, 0, g.intBetween(0, span)),
			Status:     statuses[g.rng.IntN(len(statuses))],
		})
	}
	return g.orders.CreateOrders(ctx, orders)
}

// CreateOrderItems gives every stored order between one and five items. Item ids
// are a single counter across all orders, starting at 1.
func (g *Generator) CreateOrderItems(ctx context.Context) error {
	orders, err := g.orders.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	productIDs, err := g.products.ListProductIDs(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(productIDs) == 0 {
		return errors.New("no products to order")
	}

	var items []models.OrderItem
	nextID := uint(1)
	for _, order := range orders {
		n := g.intBetween(minItemsPerOrder, maxItemsPerOrder)
		for range n {
			items = append(items, models.OrderItem{
				ID:        nextID,
				OrderID:   order.ID,
				ProductID: productIDs[g.rng.IntN(len(productIDs))],
				Quantity:  g.intBetween(minQuantity, maxQuantity),
			})
			nextID++
		}
	}
	return g.orders.CreateOrderItems(ctx, items)
}

// intBetween returns a uniform integer in [low, high].
func (g *Generator) intBetween(low, high int) int {
	return low + g.rng.IntN(high-low+1)
}

func (g *Generator) date() time.Time {
	return civilDate(g.today())
}

// civilDate drops the clock part of t, keeping its calendar date at UTC midnight.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
