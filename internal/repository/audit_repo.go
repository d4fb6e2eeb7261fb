package repository

import (
	"go-shop-pos/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	// Append writes one immutable action record on the given handle. Pass
	// the ambient DB for best-effort logging, or an open transaction when
	// the log entry must commit with the mutation it describes (sales).
	Append(tx *gorm.DB, action, actor string) error
	FindAllNewestFirst() ([]model.AuditLog, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db}
}

func (r *auditRepo) Append(tx *gorm.DB, action, actor string) error {
	if tx == nil {
		tx = r.db
	}
	entry := &model.AuditLog{Action: action, Actor: actor}
	entry.CreatedBy = actor
	entry.UpdatedBy = actor
	return tx.Create(entry).Error
}

func (r *auditRepo) FindAllNewestFirst() ([]model.AuditLog, error) {
	var logs []model.AuditLog
	err := r.db.Order("created_at DESC").Find(&logs).Error
	return logs, err
}
