package model

import "time"

type Product struct {
	BaseModel
	SKU          string     `gorm:"type:varchar(16);uniqueIndex;not null" json:"sku"`
	Name         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Category     string     `gorm:"type:varchar(100)" json:"category"`
	Supplier     string     `gorm:"type:varchar(255)" json:"supplier"`
	CostPrice    float64    `gorm:"default:0" json:"cost_price" validate:"gte=0"`
	SellingPrice float64    `gorm:"default:0" json:"selling_price" validate:"gte=0"`
	Stock        int        `gorm:"default:0" json:"stock" validate:"gte=0"`
	ReorderLevel int        `gorm:"default:0" json:"reorder_level" validate:"gte=0"`
	ExpiryDate   *time.Time `gorm:"type:date" json:"expiry_date,omitempty"`
}
