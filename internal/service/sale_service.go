package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/ws"
	"go-shop-pos/pkg/token"
	"go-shop-pos/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConflict          = errors.New("transaction conflict, please retry")
)

const (
	maxConflictRetries = 3
	maxTokenRetries    = 5
)

type SaleService interface {
	ProcessSale(req *ProcessSaleRequest, operator string) (*model.Sale, error)
	AdjustStock(req *AdjustStockRequest, operator string) (*model.Product, error)
	GetAllSales() ([]model.Sale, error)
}

type ProcessSaleRequest struct {
	ProductName string `json:"product_name" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

// AdjustStockRequest corrects stock outside a sale (receiving, shrinkage).
// Delta may be negative but can never push stock below zero.
type AdjustStockRequest struct {
	SKU    string `json:"sku" validate:"required"`
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"required"`
}

type saleService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	auditRepo   repository.AuditRepository
	db          *gorm.DB
	wsHub       *ws.Hub
	newInvoice  func() string
}

func NewSaleService(pRepo repository.ProductRepository, sRepo repository.SaleRepository, aRepo repository.AuditRepository, db *gorm.DB, hub *ws.Hub) SaleService {
	return &saleService{
		productRepo: pRepo,
		saleRepo:    sRepo,
		auditRepo:   aRepo,
		db:          db,
		wsHub:       hub,
		newInvoice:  token.NewInvoice,
	}
}

// ProcessSale records one sale: the stock check-and-decrement, the sale row
// and the audit entry commit as a single transaction, all-or-nothing. The
// decrement itself is a conditional UPDATE, so concurrent sales against the
// same product can never oversell.
func (s *saleService) ProcessSale(req *ProcessSaleRequest, operator string) (*model.Sale, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var sale *model.Sale
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		sale, err = s.trySale(req, operator)
		if err == nil || !isRetryableConflict(err) {
			break
		}
	}
	if err != nil {
		if isRetryableConflict(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.broadcastSale(sale, operator)
	return sale, nil
}

func (s *saleService) trySale(req *ProcessSaleRequest, operator string) (*model.Sale, error) {
	var sale *model.Sale

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, "name = ?", req.ProductName).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		rows, err := s.productRepo.ApplyStockDelta(tx, product.ID, -req.Quantity, operator)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Guard rejected: stock < quantity. Nothing written yet.
			return ErrInsufficientStock
		}

		record := &model.Sale{
			ProductID: product.ID,
			SKU:       product.SKU,
			Quantity:  req.Quantity,
			UnitPrice: product.SellingPrice,
			Total:     product.SellingPrice * float64(req.Quantity),
			SoldBy:    operator,
		}
		record.CreatedBy = operator
		record.UpdatedBy = operator

		// Invoice tokens are short and can collide; regenerate against the
		// unique index a bounded number of times. Each attempt runs under a
		// savepoint: postgres aborts the whole transaction on a failed
		// statement, so without the rollback the second insert would only see
		// "current transaction is aborted".
		var createErr error
		for i := 0; i < maxTokenRetries; i++ {
			record.InvoiceNo = s.newInvoice()
			if err := tx.SavePoint("sale_insert").Error; err != nil {
				return err
			}
			createErr = s.saleRepo.Create(tx, record)
			if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
				break
			}
			if err := tx.RollbackTo("sale_insert").Error; err != nil {
				return err
			}
		}
		if createErr != nil {
			return createErr
		}

		// Audit entry rides the same transaction so the log can never
		// diverge from the sales ledger after a crash.
		action := fmt.Sprintf("Sale Invoice %s: %d x %s", record.InvoiceNo, record.Quantity, product.Name)
		if err := s.auditRepo.Append(tx, action, operator); err != nil {
			return err
		}

		sale = record
		return nil
	})

	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *saleService) AdjustStock(req *AdjustStockRequest, operator string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var product *model.Product
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		product, err = s.tryAdjust(req, operator)
		if err == nil || !isRetryableConflict(err) {
			break
		}
	}
	if err != nil {
		if isRetryableConflict(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.broadcastStockAdjust(product, req.Delta, operator)
	return product, nil
}

func (s *saleService) tryAdjust(req *AdjustStockRequest, operator string) (*model.Product, error) {
	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.First(&existing, "sku = ?", req.SKU).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		rows, err := s.productRepo.ApplyStockDelta(tx, existing.ID, req.Delta, operator)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrInsufficientStock
		}

		action := fmt.Sprintf("Stock Adjusted: %s by %+d (%s)", existing.Name, req.Delta, req.Reason)
		if err := s.auditRepo.Append(tx, action, operator); err != nil {
			return err
		}

		existing.Stock += req.Delta
		product = &existing
		return nil
	})

	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *saleService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *saleService) broadcastSale(sale *model.Sale, operator string) {
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "sale_processed",
			"sale": map[string]interface{}{
				"invoice_no": sale.InvoiceNo,
				"sku":        sale.SKU,
				"quantity":   sale.Quantity,
				"total":      sale.Total,
			},
			"message": fmt.Sprintf("%s sold %d x %s (invoice %s)", operator, sale.Quantity, sale.SKU, sale.InvoiceNo),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}

func (s *saleService) broadcastStockAdjust(product *model.Product, delta int, operator string) {
	go func() {
		payload := map[string]interface{}{
			"type":   "stock_update",
			"action": "stock_adjusted",
			"product": map[string]interface{}{
				"sku":       product.SKU,
				"name":      product.Name,
				"new_stock": product.Stock,
			},
			"message": fmt.Sprintf("%s adjusted '%s' stock by %+d", operator, product.Name, delta),
		}
		msg, _ := json.Marshal(payload)
		s.wsHub.Broadcast <- msg
	}()
}
