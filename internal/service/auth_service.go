package service

import (
	"errors"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/pkg/jwt"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	Logout(username string) error
	ResetPassword(username, oldPassword, newPassword string) error
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
}

func NewAuthService(userRepo repository.UserRepository, auditRepo repository.AuditRepository) AuthService {
	return &authService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

// Login verifies credentials and issues a session token. Unknown username
// and wrong password return the same error so callers learn nothing about
// which field was wrong.
func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Checked only after the password so a probe without valid credentials
	// cannot tell an inactive account from a nonexistent one.
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	// Single session: a fresh token version invalidates earlier tokens.
	newVersion := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(user.Username, newVersion); err != nil {
		return nil, errors.New("failed to update session")
	}

	tokenString, err := jwt.GenerateToken(user.Username, user.Role, newVersion)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	_ = s.auditRepo.Append(nil, "User Logged In", user.Username)

	return &LoginResponse{
		Token: tokenString,
		User:  user.ToResponse(),
	}, nil
}

// Logout rotates the token version so any outstanding token stops
// validating.
func (s *authService) Logout(username string) error {
	if err := s.userRepo.UpdateTokenVersion(username, uuid.New().String()); err != nil {
		return err
	}
	_ = s.auditRepo.Append(nil, "User Logged Out", username)
	return nil
}

func (s *authService) ResetPassword(username, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return ErrUserNotFound
	}

	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}

	// Rotating the version here forces re-login everywhere.
	user.TokenVersion = uuid.New().String()
	user.UpdatedBy = username

	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	_ = s.auditRepo.Append(nil, "Password Reset", username)
	return nil
}
