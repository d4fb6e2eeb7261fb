package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/ws"
	"go-shop-pos/pkg/token"
	"go-shop-pos/pkg/validator"

	"gorm.io/gorm"
)

var ErrProductExists = errors.New("product name already exists")

type CatalogService interface {
	AddProduct(req *AddProductRequest, operator string) (*model.Product, error)
	ListProducts() ([]model.Product, error)
}

type AddProductRequest struct {
	Name         string  `json:"name" validate:"required"`
	Category     string  `json:"category"`
	Supplier     string  `json:"supplier"`
	CostPrice    float64 `json:"cost_price" validate:"gte=0"`
	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
	Stock        int     `json:"stock" validate:"gte=0"`
	ReorderLevel int     `json:"reorder_level" validate:"gte=0"`
	ExpiryDate   *string `json:"expiry_date"` // YYYY-MM-DD
}

type catalogService struct {
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
	wsHub       *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, aRepo repository.AuditRepository, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		auditRepo:   aRepo,
		wsHub:       hub,
	}
}

func (s *catalogService) AddProduct(req *AddProductRequest, operator string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if existing, _ := s.productRepo.FindByName(req.Name); existing != nil {
		return nil, ErrProductExists
	}

	var expiry *time.Time
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid expiry_date format, use YYYY-MM-DD", ErrValidation)
		}
		expiry = &parsed
	}

	product := &model.Product{
		Name:         req.Name,
		Category:     req.Category,
		Supplier:     req.Supplier,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		Stock:        req.Stock,
		ReorderLevel: req.ReorderLevel,
		ExpiryDate:   expiry,
	}
	product.CreatedBy = operator
	product.UpdatedBy = operator

	// SKU tokens are short; on a unique-index collision generate a fresh one
	// and try again, bounded.
	var err error
	for i := 0; i < maxTokenRetries; i++ {
		product.SKU = token.NewSKU()
		err = s.productRepo.Create(product)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProductExists
		}
		return nil, err
	}

	// Best-effort: a failed audit write must not undo the product insert.
	_ = s.auditRepo.Append(nil, fmt.Sprintf("Product Added: %s", product.Name), operator)

	s.broadcastProductCreated(product, operator)
	return product, nil
}

func (s *catalogService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) broadcastProductCreated(product *model.Product, operator string) {
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "product_created",
			"product": map[string]interface{}{
				"id":    product.ID,
				"sku":   product.SKU,
				"name":  product.Name,
				"stock": product.Stock,
				"price": product.SellingPrice,
			},
			"message": fmt.Sprintf("%s created product '%s'", operator, product.Name),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
