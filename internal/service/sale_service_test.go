package service

import (
	"sync"
	"testing"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSaleService(db *gorm.DB) SaleService {
	return NewSaleService(
		repository.NewProductRepo(db),
		repository.NewSaleRepo(db),
		repository.NewAuditRepo(db),
		db,
		newTestHub(),
	)
}

func TestProcessSaleSuccess(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	seedProduct(t, db, "milk0001", "Milk", 2.50, 10)

	sale, err := svc.ProcessSale(&ProcessSaleRequest{ProductName: "Milk", Quantity: 3}, "alice")
	require.NoError(t, err)

	assert.Equal(t, 3, sale.Quantity)
	assert.InDelta(t, 2.50, sale.UnitPrice, 1e-9)
	assert.InDelta(t, 7.50, sale.Total, 1e-9)
	assert.Equal(t, "milk0001", sale.SKU)
	assert.Equal(t, "alice", sale.SoldBy)
	assert.NotEmpty(t, sale.InvoiceNo)

	var product model.Product
	require.NoError(t, db.First(&product, "sku = ?", "milk0001").Error)
	assert.Equal(t, 7, product.Stock)

	var saleCount, auditCount int64
	db.Model(&model.Sale{}).Count(&saleCount)
	db.Model(&model.AuditLog{}).Count(&auditCount)
	assert.Equal(t, int64(1), saleCount)
	assert.Equal(t, int64(1), auditCount, "audit entry must commit with the sale")
}

func TestProcessSaleInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	seedProduct(t, db, "milk0001", "Milk", 2.50, 2)

	_, err := svc.ProcessSale(&ProcessSaleRequest{ProductName: "Milk", Quantity: 5}, "alice")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// No partial effects: stock, sales and audit log are untouched.
	var product model.Product
	require.NoError(t, db.First(&product, "sku = ?", "milk0001").Error)
	assert.Equal(t, 2, product.Stock)

	var saleCount, auditCount int64
	db.Model(&model.Sale{}).Count(&saleCount)
	db.Model(&model.AuditLog{}).Count(&auditCount)
	assert.Zero(t, saleCount)
	assert.Zero(t, auditCount)
}

func TestProcessSaleProductNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)

	_, err := svc.ProcessSale(&ProcessSaleRequest{ProductName: "Nope", Quantity: 1}, "alice")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProcessSaleRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	seedProduct(t, db, "milk0001", "Milk", 2.50, 10)

	for _, qty := range []int{0, -3} {
		_, err := svc.ProcessSale(&ProcessSaleRequest{ProductName: "Milk", Quantity: qty}, "alice")
		assert.ErrorIs(t, err, ErrValidation, "quantity %d", qty)
	}

	var product model.Product
	require.NoError(t, db.First(&product, "sku = ?", "milk0001").Error)
	assert.Equal(t, 10, product.Stock)
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)

	const stock = 5
	const callers = 12
	seedProduct(t, db, "milk0001", "Milk", 2.50, stock)

	errsChan := make(chan error, callers)
	var wg sync.WaitGroup

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ProcessSale(&ProcessSaleRequest{ProductName: "Milk", Quantity: 1}, "alice")
			errsChan <- err
		}()
	}

	wg.Wait()
	close(errsChan)

	successes, failures := 0, 0
	for err := range errsChan {
		if err == nil {
			successes++
		} else {
			failures++
			assert.True(t,
				err == ErrInsufficientStock || err == ErrConflict,
				"unexpected failure: %v", err)
		}
	}

	assert.Equal(t, stock, successes)
	assert.Equal(t, callers-stock, failures)

	var product model.Product
	require.NoError(t, db.First(&product, "sku = ?", "milk0001").Error)
	assert.Equal(t, 0, product.Stock, "stock must land on exactly zero, never negative")

	var saleCount int64
	db.Model(&model.Sale{}).Count(&saleCount)
	assert.Equal(t, int64(stock), saleCount)
}

func TestSaleInvoiceCollisionRetriesWithFreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db).(*saleService)
	seedProduct(t, db, "milk0001", "Milk", 2.50, 10)

	// First sale takes invoice "aaa111".
	svc.newInvoice = func() string { return "aaa111" }
	first, err := svc.ProcessSale(&ProcessSaleRequest{ProductName: "Milk", Quantity: 1}, "alice")
	require.NoError(t, err)
	require.Equal(t, "aaa111", first.InvoiceNo)

	// Second sale collides on the unique index, then regenerates. The insert
	// runs under a savepoint so the stock decrement survives the failed
	// attempt and the sale still commits in one transaction.
	tokens := []string{"aaa111", "bbb222"}
	svc.newInvoice = func() string {
		next := tokens[0]
		if len(tokens) > 1 {
			tokens = tokens[1:]
		}
		return next
	}
	second, err := svc.ProcessSale(&ProcessSaleRequest{ProductName: "Milk", Quantity: 2}, "alice")
	require.NoError(t, err)
	assert.Equal(t, "bbb222", second.InvoiceNo)

	var product model.Product
	require.NoError(t, db.First(&product, "sku = ?", "milk0001").Error)
	assert.Equal(t, 7, product.Stock)

	var saleCount, auditCount int64
	db.Model(&model.Sale{}).Count(&saleCount)
	db.Model(&model.AuditLog{}).Count(&auditCount)
	assert.Equal(t, int64(2), saleCount)
	assert.Equal(t, int64(2), auditCount)
}

func TestSaleInvoiceCollisionExhaustsRetries(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db).(*saleService)
	seedProduct(t, db, "milk0001", "Milk", 2.50, 10)

	svc.newInvoice = func() string { return "aaa111" }
	_, err := svc.ProcessSale(&ProcessSaleRequest{ProductName: "Milk", Quantity: 1}, "alice")
	require.NoError(t, err)

	// Every attempt collides; the sale must fail and roll back cleanly.
	_, err = svc.ProcessSale(&ProcessSaleRequest{ProductName: "Milk", Quantity: 1}, "alice")
	require.Error(t, err)

	var product model.Product
	require.NoError(t, db.First(&product, "sku = ?", "milk0001").Error)
	assert.Equal(t, 9, product.Stock, "failed sale must not decrement stock")

	var saleCount int64
	db.Model(&model.Sale{}).Count(&saleCount)
	assert.Equal(t, int64(1), saleCount)
}

func TestSaleInvoiceTokensUnique(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	seedProduct(t, db, "milk0001", "Milk", 2.50, 50)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		sale, err := svc.ProcessSale(&ProcessSaleRequest{ProductName: "Milk", Quantity: 1}, "alice")
		require.NoError(t, err)
		assert.False(t, seen[sale.InvoiceNo], "duplicate invoice %s", sale.InvoiceNo)
		seen[sale.InvoiceNo] = true
	}
}

func TestAdjustStock(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)
	seedProduct(t, db, "milk0001", "Milk", 2.50, 10)

	product, err := svc.AdjustStock(&AdjustStockRequest{SKU: "milk0001", Delta: 5, Reason: "delivery"}, "bob")
	require.NoError(t, err)
	assert.Equal(t, 15, product.Stock)

	product, err = svc.AdjustStock(&AdjustStockRequest{SKU: "milk0001", Delta: -3, Reason: "breakage"}, "bob")
	require.NoError(t, err)
	assert.Equal(t, 12, product.Stock)

	// Cannot adjust below zero.
	_, err = svc.AdjustStock(&AdjustStockRequest{SKU: "milk0001", Delta: -20, Reason: "typo"}, "bob")
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var fresh model.Product
	require.NoError(t, db.First(&fresh, "sku = ?", "milk0001").Error)
	assert.Equal(t, 12, fresh.Stock)

	_, err = svc.AdjustStock(&AdjustStockRequest{SKU: "ghost", Delta: 1, Reason: "x"}, "bob")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestConcurrentAdjustmentsNeverGoNegative(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db)

	const stock = 5
	const callers = 12
	seedProduct(t, db, "milk0001", "Milk", 2.50, stock)

	errsChan := make(chan error, callers)
	var wg sync.WaitGroup

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AdjustStock(&AdjustStockRequest{SKU: "milk0001", Delta: -1, Reason: "shrinkage"}, "bob")
			errsChan <- err
		}()
	}

	wg.Wait()
	close(errsChan)

	successes := 0
	for err := range errsChan {
		if err == nil {
			successes++
		} else {
			assert.True(t,
				err == ErrInsufficientStock || err == ErrConflict,
				"unexpected failure: %v", err)
		}
	}
	assert.Equal(t, stock, successes)

	var product model.Product
	require.NoError(t, db.First(&product, "sku = ?", "milk0001").Error)
	assert.Equal(t, 0, product.Stock)
}
