package repository

import (
	"go-shop-pos/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	// Create runs on the caller's tx so the sale row commits together with
	// the stock decrement and the audit entry.
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll() ([]model.Sale, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Product").Order("created_at DESC").Find(&sales).Error
	return sales, err
}
