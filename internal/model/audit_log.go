package model

// AuditLog is an append-only action record. The application never updates
// or deletes rows in this table.
type AuditLog struct {
	BaseModel
	Action string `gorm:"type:text;not null" json:"action"`
	Actor  string `gorm:"type:varchar(255);not null" json:"actor"`
}
