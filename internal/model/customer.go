package model

type Customer struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Phone         string `gorm:"type:varchar(30)" json:"phone"`
	Email         string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	LoyaltyPoints int    `gorm:"default:0" json:"loyalty_points" validate:"gte=0"`
}
