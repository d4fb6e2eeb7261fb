package handler

import (
	"go-shop-pos/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	auditRepo repository.AuditRepository
}

func NewAuditHandler(auditRepo repository.AuditRepository) *AuditHandler {
	return &AuditHandler{auditRepo: auditRepo}
}

// GET /api/v1/audit-logs — newest first
func (h *AuditHandler) GetAuditLogs(c *fiber.Ctx) error {
	logs, err := h.auditRepo.FindAllNewestFirst()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch audit logs"})
	}
	return c.JSON(logs)
}
