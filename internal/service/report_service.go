package service

import (
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
)

type ReportService interface {
	GetDashboardStats() (*repository.DashboardStats, error)
	GetSalesReport() ([]model.Sale, error)
	GetExpenseReport() ([]model.Expense, error)
}

type reportService struct {
	reportRepo  repository.ReportRepository
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
}

func NewReportService(rRepo repository.ReportRepository, sRepo repository.SaleRepository, eRepo repository.ExpenseRepository) ReportService {
	return &reportService{
		reportRepo:  rRepo,
		saleRepo:    sRepo,
		expenseRepo: eRepo,
	}
}

func (s *reportService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.reportRepo.GetDashboardStats()
}

func (s *reportService) GetSalesReport() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}

func (s *reportService) GetExpenseReport() ([]model.Expense, error) {
	return s.expenseRepo.FindAll()
}
