package handler

import (
	"go-shop-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ExportHandler struct {
	service service.ExportService
}

func NewExportHandler(s service.ExportService) *ExportHandler {
	return &ExportHandler{service: s}
}

// ExportRequest selects the table and format to snapshot
type ExportRequest struct {
	Table  string `json:"table"`
	Format string `json:"format"` // csv (default) or xlsx
}

// POST /api/v1/exports
func (h *ExportHandler) CreateExport(c *fiber.Ctx) error {
	var req ExportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Table == "" {
		return c.Status(400).JSON(fiber.Map{"error": "table is required"})
	}

	path, err := h.service.Export(req.Table, req.Format, getUsername(c))
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Export created", "path": path})
}
