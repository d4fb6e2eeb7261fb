package model

import "github.com/google/uuid"

// Sale is one completed checkout line. Rows are written once inside the
// sale transaction and never edited or voided afterwards.
type Sale struct {
	BaseModel
	InvoiceNo string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"invoice_no"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	SKU       string    `gorm:"type:varchar(16);not null" json:"sku"` // Snapshot for exports and reports
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"` // Selling price at time of sale
	Total     float64   `gorm:"not null" json:"total"`
	SoldBy    string    `gorm:"type:varchar(255);not null" json:"sold_by"`
}
