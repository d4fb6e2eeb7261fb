package model

type Expense struct {
	BaseModel
	Title  string  `gorm:"type:varchar(255);not null" json:"title" validate:"required"`
	Amount float64 `gorm:"not null" json:"amount" validate:"gte=0"`
}
