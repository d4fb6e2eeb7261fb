package service

import (
	"testing"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/ws"
	"go-shop-pos/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory store with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Product{}, &model.Supplier{}, &model.Customer{},
		&model.Sale{}, &model.Expense{}, &model.AuditLog{},
	))

	return db
}

// newTestHub returns a running hub so broadcasts are drained.
func newTestHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

// seedProduct inserts a catalog row directly, bypassing the service.
func seedProduct(t *testing.T, db *gorm.DB, sku, name string, price float64, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		SKU:          sku,
		Name:         name,
		SellingPrice: price,
		Stock:        stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

// seedUser inserts a user with a bcrypt-hashed password.
func seedUser(t *testing.T, db *gorm.DB, username, password, role string) *model.User {
	t.Helper()

	user := &model.User{
		Username: username,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(user).Error)
	return user
}
