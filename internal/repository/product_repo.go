package repository

import (
	"go-shop-pos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByName(name string) (*model.Product, error)

	// ApplyStockDelta adds delta (possibly negative) to the product's stock,
	// guarded so the counter can never go below zero. Runs on the given tx so
	// it composes with the sale transaction. Returns the number of rows
	// changed: zero means the guard rejected the update.
	ApplyStockDelta(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByName(name string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) ApplyStockDelta(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (int64, error) {
	// Single conditional UPDATE: the check and the write are one statement,
	// so concurrent sales cannot interleave between them.
	res := tx.Model(&model.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", delta),
			"updated_by": updatedBy,
		})
	return res.RowsAffected, res.Error
}
