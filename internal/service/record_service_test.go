package service

import (
	"testing"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRecordService(db *gorm.DB) RecordService {
	return NewRecordService(
		repository.NewExpenseRepo(db),
		repository.NewSupplierRepo(db),
		repository.NewCustomerRepo(db),
		repository.NewAuditRepo(db),
	)
}

func TestAddAndListExpenses(t *testing.T) {
	db := newTestDB(t)
	svc := newRecordService(db)

	expense, err := svc.AddExpense(&AddExpenseRequest{Title: "Rent", Amount: 500}, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Rent", expense.Title)

	_, err = svc.AddExpense(&AddExpenseRequest{Title: "", Amount: 10}, "alice")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddExpense(&AddExpenseRequest{Title: "Bad", Amount: -1}, "alice")
	assert.ErrorIs(t, err, ErrValidation)

	expenses, err := svc.ListExpenses()
	require.NoError(t, err)
	assert.Len(t, expenses, 1)
}

func TestAddAndListSuppliers(t *testing.T) {
	db := newTestDB(t)
	svc := newRecordService(db)

	_, err := svc.AddSupplier(&AddSupplierRequest{Name: "Farm Co", Phone: "555-1234", Email: "farm@example.com"}, "alice")
	require.NoError(t, err)

	_, err = svc.AddSupplier(&AddSupplierRequest{Name: "Bad", Email: "not-an-email"}, "alice")
	assert.ErrorIs(t, err, ErrValidation)

	suppliers, err := svc.ListSuppliers()
	require.NoError(t, err)
	require.Len(t, suppliers, 1)
	assert.Equal(t, "Farm Co", suppliers[0].Name)
}

func TestAddAndListCustomers(t *testing.T) {
	db := newTestDB(t)
	svc := newRecordService(db)

	_, err := svc.AddCustomer(&AddCustomerRequest{Name: "Dana", LoyaltyPoints: 10}, "alice")
	require.NoError(t, err)

	_, err = svc.AddCustomer(&AddCustomerRequest{Name: "Eve", LoyaltyPoints: -1}, "alice")
	assert.ErrorIs(t, err, ErrValidation)

	customers, err := svc.ListCustomers()
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Dana", customers[0].Name)
}

func TestRecordWritesAreAudited(t *testing.T) {
	db := newTestDB(t)
	svc := newRecordService(db)

	_, err := svc.AddExpense(&AddExpenseRequest{Title: "Rent", Amount: 500}, "alice")
	require.NoError(t, err)
	_, err = svc.AddSupplier(&AddSupplierRequest{Name: "Farm Co"}, "alice")
	require.NoError(t, err)
	_, err = svc.AddCustomer(&AddCustomerRequest{Name: "Dana"}, "alice")
	require.NoError(t, err)

	var logs []model.AuditLog
	require.NoError(t, db.Find(&logs).Error)
	assert.Len(t, logs, 3)
	for _, entry := range logs {
		assert.Equal(t, "alice", entry.Actor)
	}
}
