package service

import (
	"fmt"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/pkg/validator"
)

// RecordService covers the plain reference ledgers: expenses, suppliers and
// customers. Each is add + list with no cross-entity invariant.
type RecordService interface {
	AddExpense(req *AddExpenseRequest, operator string) (*model.Expense, error)
	ListExpenses() ([]model.Expense, error)

	AddSupplier(req *AddSupplierRequest, operator string) (*model.Supplier, error)
	ListSuppliers() ([]model.Supplier, error)

	AddCustomer(req *AddCustomerRequest, operator string) (*model.Customer, error)
	ListCustomers() ([]model.Customer, error)
}

type AddExpenseRequest struct {
	Title  string  `json:"title" validate:"required"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

type AddSupplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

type AddCustomerRequest struct {
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	LoyaltyPoints int    `json:"loyalty_points" validate:"gte=0"`
}

type recordService struct {
	expenseRepo  repository.ExpenseRepository
	supplierRepo repository.SupplierRepository
	customerRepo repository.CustomerRepository
	auditRepo    repository.AuditRepository
}

func NewRecordService(eRepo repository.ExpenseRepository, sRepo repository.SupplierRepository, cRepo repository.CustomerRepository, aRepo repository.AuditRepository) RecordService {
	return &recordService{
		expenseRepo:  eRepo,
		supplierRepo: sRepo,
		customerRepo: cRepo,
		auditRepo:    aRepo,
	}
}

func (s *recordService) AddExpense(req *AddExpenseRequest, operator string) (*model.Expense, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	expense := &model.Expense{Title: req.Title, Amount: req.Amount}
	expense.CreatedBy = operator
	expense.UpdatedBy = operator

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Append(nil, fmt.Sprintf("Expense Added: %s", expense.Title), operator)
	return expense, nil
}

func (s *recordService) ListExpenses() ([]model.Expense, error) {
	return s.expenseRepo.FindAll()
}

func (s *recordService) AddSupplier(req *AddSupplierRequest, operator string) (*model.Supplier, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	supplier := &model.Supplier{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
	supplier.CreatedBy = operator
	supplier.UpdatedBy = operator

	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Append(nil, fmt.Sprintf("Supplier Added: %s", supplier.Name), operator)
	return supplier, nil
}

func (s *recordService) ListSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

func (s *recordService) AddCustomer(req *AddCustomerRequest, operator string) (*model.Customer, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	customer := &model.Customer{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		LoyaltyPoints: req.LoyaltyPoints,
	}
	customer.CreatedBy = operator
	customer.UpdatedBy = operator

	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}

	_ = s.auditRepo.Append(nil, fmt.Sprintf("Customer Added: %s", customer.Name), operator)
	return customer, nil
}

func (s *recordService) ListCustomers() ([]model.Customer, error) {
	return s.customerRepo.FindAll()
}
