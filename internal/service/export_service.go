package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go-shop-pos/internal/repository"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownFormat = errors.New("unknown format (use csv or xlsx)")
)

type ExportService interface {
	// Export snapshots the named table into <TableName>_<unixTimestamp>.<ext>
	// under the export directory and returns the file path.
	Export(table, format, operator string) (string, error)
}

type exportService struct {
	productRepo  repository.ProductRepository
	saleRepo     repository.SaleRepository
	expenseRepo  repository.ExpenseRepository
	userRepo     repository.UserRepository
	supplierRepo repository.SupplierRepository
	customerRepo repository.CustomerRepository
	auditRepo    repository.AuditRepository
	exportDir    string
}

func NewExportService(
	pRepo repository.ProductRepository,
	sRepo repository.SaleRepository,
	eRepo repository.ExpenseRepository,
	uRepo repository.UserRepository,
	supRepo repository.SupplierRepository,
	cRepo repository.CustomerRepository,
	aRepo repository.AuditRepository,
	exportDir string,
) ExportService {
	if exportDir == "" {
		exportDir = "exports"
	}
	return &exportService{
		productRepo:  pRepo,
		saleRepo:     sRepo,
		expenseRepo:  eRepo,
		userRepo:     uRepo,
		supplierRepo: supRepo,
		customerRepo: cRepo,
		auditRepo:    aRepo,
		exportDir:    exportDir,
	}
}

// Table titles used in export file names.
var exportTitles = map[string]string{
	"products":   "Products",
	"sales":      "Sales",
	"expenses":   "Expenses",
	"users":      "Users",
	"suppliers":  "Suppliers",
	"customers":  "Customers",
	"audit_logs": "AuditLogs",
}

func (s *exportService) Export(table, format, operator string) (string, error) {
	title, ok := exportTitles[table]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	if format == "" {
		format = "csv"
	}

	header, rows, err := s.snapshot(table)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s_%d.%s", title, time.Now().Unix(), format)
	path := filepath.Join(s.exportDir, filename)

	switch format {
	case "csv":
		err = writeCSV(path, header, rows)
	case "xlsx":
		err = writeXLSX(path, title, header, rows)
	default:
		return "", ErrUnknownFormat
	}
	if err != nil {
		return "", err
	}

	_ = s.auditRepo.Append(nil, fmt.Sprintf("Exported %s (%s)", title, format), operator)
	return path, nil
}

func (s *exportService) snapshot(table string) ([]string, [][]string, error) {
	switch table {
	case "products":
		products, err := s.productRepo.FindAll()
		if err != nil {
			return nil, nil, err
		}
		header := []string{"id", "sku", "name", "category", "supplier", "cost_price", "selling_price", "stock", "reorder_level", "expiry_date", "created_at"}
		rows := make([][]string, 0, len(products))
		for _, p := range products {
			expiry := ""
			if p.ExpiryDate != nil {
				expiry = p.ExpiryDate.Format("2006-01-02")
			}
			rows = append(rows, []string{
				p.ID.String(), p.SKU, p.Name, p.Category, p.Supplier,
				formatAmount(p.CostPrice), formatAmount(p.SellingPrice),
				strconv.Itoa(p.Stock), strconv.Itoa(p.ReorderLevel),
				expiry, p.CreatedAt.Format(time.RFC3339),
			})
		}
		return header, rows, nil

	case "sales":
		sales, err := s.saleRepo.FindAll()
		if err != nil {
			return nil, nil, err
		}
		header := []string{"id", "invoice_no", "sku", "quantity", "unit_price", "total", "sold_by", "created_at"}
		rows := make([][]string, 0, len(sales))
		for _, sl := range sales {
			rows = append(rows, []string{
				sl.ID.String(), sl.InvoiceNo, sl.SKU, strconv.Itoa(sl.Quantity),
				formatAmount(sl.UnitPrice), formatAmount(sl.Total),
				sl.SoldBy, sl.CreatedAt.Format(time.RFC3339),
			})
		}
		return header, rows, nil

	case "expenses":
		expenses, err := s.expenseRepo.FindAll()
		if err != nil {
			return nil, nil, err
		}
		header := []string{"id", "title", "amount", "created_at"}
		rows := make([][]string, 0, len(expenses))
		for _, e := range expenses {
			rows = append(rows, []string{
				e.ID.String(), e.Title, formatAmount(e.Amount), e.CreatedAt.Format(time.RFC3339),
			})
		}
		return header, rows, nil

	case "users":
		users, err := s.userRepo.FindAll()
		if err != nil {
			return nil, nil, err
		}
		// Password hashes never leave the store.
		header := []string{"id", "username", "role", "is_active", "created_at"}
		rows := make([][]string, 0, len(users))
		for _, u := range users {
			rows = append(rows, []string{
				u.ID.String(), u.Username, u.Role, strconv.FormatBool(u.IsActive), u.CreatedAt.Format(time.RFC3339),
			})
		}
		return header, rows, nil

	case "suppliers":
		suppliers, err := s.supplierRepo.FindAll()
		if err != nil {
			return nil, nil, err
		}
		header := []string{"id", "name", "phone", "email", "address"}
		rows := make([][]string, 0, len(suppliers))
		for _, sp := range suppliers {
			rows = append(rows, []string{sp.ID.String(), sp.Name, sp.Phone, sp.Email, sp.Address})
		}
		return header, rows, nil

	case "customers":
		customers, err := s.customerRepo.FindAll()
		if err != nil {
			return nil, nil, err
		}
		header := []string{"id", "name", "phone", "email", "loyalty_points"}
		rows := make([][]string, 0, len(customers))
		for _, c := range customers {
			rows = append(rows, []string{c.ID.String(), c.Name, c.Phone, c.Email, strconv.Itoa(c.LoyaltyPoints)})
		}
		return header, rows, nil

	case "audit_logs":
		logs, err := s.auditRepo.FindAllNewestFirst()
		if err != nil {
			return nil, nil, err
		}
		header := []string{"id", "action", "actor", "created_at"}
		rows := make([][]string, 0, len(logs))
		for _, l := range logs {
			rows = append(rows, []string{l.ID.String(), l.Action, l.Actor, l.CreatedAt.Format(time.RFC3339)})
		}
		return header, rows, nil
	}

	return nil, nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeXLSX(path, sheet string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheet)

	for c, h := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(header), 1)
		f.SetCellStyle(sheet, "A1", endCell, style)
	}

	return f.SaveAs(path)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
