package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// CreateProducts inserts the given products and commits them.
func (r *ProductsRepository) CreateProducts(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	return translateWriteError(r.db.WithContext(ctx).Create(&products).Error)
}

func (r *ProductsRepository) GetAllProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).
		Order("product_id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListProductIDs returns the identifiers of every stored product in ascending order.
func (r *ProductsRepository) ListProductIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&Product{}).
		Order("product_id").
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}
