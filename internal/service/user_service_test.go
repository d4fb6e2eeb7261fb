package service

import (
	"testing"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) UserService {
	return NewUserService(repository.NewUserRepo(db), repository.NewAuditRepo(db))
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	req := &CreateUserRequest{Username: "bob", Password: "secret123", Role: model.RoleCashier}

	_, err := svc.CreateUser(req, "carol", model.RoleCashier)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.CreateUser(req, "carol", model.RoleManager)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	user, err := svc.CreateUser(req, "root", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.Equal(t, model.RoleCashier, user.Role)
}

func TestCreateUserHashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	_, err := svc.CreateUser(&CreateUserRequest{Username: "bob", Password: "secret123", Role: model.RoleManager}, "root", model.RoleAdmin)
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.First(&stored, "username = ?", "bob").Error)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, stored.CheckPassword("secret123"))
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	req := &CreateUserRequest{Username: "bob", Password: "secret123", Role: model.RoleCashier}
	_, err := svc.CreateUser(req, "root", model.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.CreateUser(req, "root", model.RoleAdmin)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateUserValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	// Short password
	_, err := svc.CreateUser(&CreateUserRequest{Username: "bob", Password: "abc", Role: model.RoleCashier}, "root", model.RoleAdmin)
	assert.ErrorIs(t, err, ErrValidation)

	// Unknown role
	_, err = svc.CreateUser(&CreateUserRequest{Username: "bob", Password: "secret123", Role: "OWNER"}, "root", model.RoleAdmin)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetAllUsersHidesPasswordHash(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	seedUser(t, db, "alice", "secret123", model.RoleAdmin)

	users, err := svc.GetAllUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
	// UserResponse carries no password field at all; spot-check the shape.
	assert.Equal(t, model.RoleAdmin, users[0].Role)
}
