package repository

import (
	"go-shop-pos/internal/model"

	"gorm.io/gorm"
)

// DashboardStats is the overview block shown on every dashboard view.
// Always recomputed from the store, never cached.
type DashboardStats struct {
	TotalProducts int64   `json:"total_products"`
	TotalSales    float64 `json:"total_sales"`
	TotalExpenses float64 `json:"total_expenses"`
	Profit        float64 `json:"profit"`
	LowStockCount int64   `json:"low_stock_count"`
}

type ReportRepository interface {
	GetDashboardStats() (*DashboardStats, error)
}

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db}
}

func (r *reportRepo) GetDashboardStats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Sale{}).
		Select("COALESCE(SUM(total), 0)").Scan(&stats.TotalSales).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Expense{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalExpenses).Error; err != nil {
		return nil, err
	}

	// Products at or below their reorder threshold
	if err := r.db.Model(&model.Product{}).
		Where("stock <= reorder_level").Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	stats.Profit = stats.TotalSales - stats.TotalExpenses
	return &stats, nil
}
