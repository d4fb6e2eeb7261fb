package service

import (
	"errors"
	"fmt"

	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrUsernameTaken    = errors.New("username already exists")
	ErrPermissionDenied = errors.New("permission denied")
)

type UserService interface {
	CreateUser(req *CreateUserRequest, actor, actorRole string) (*model.User, error)
	GetAllUsers() ([]model.UserResponse, error)
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=ADMIN MANAGER CASHIER"`
}

type userService struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
}

func NewUserService(userRepo repository.UserRepository, auditRepo repository.AuditRepository) UserService {
	return &userService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

// CreateUser is restricted to ADMIN callers.
func (s *userService) CreateUser(req *CreateUserRequest, actor, actorRole string) (*model.User, error) {
	if actorRole != model.RoleAdmin {
		return nil, ErrPermissionDenied
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if existing, _ := s.userRepo.FindByUsername(req.Username); existing != nil {
		return nil, ErrUsernameTaken
	}

	user := &model.User{
		Username: req.Username,
		Role:     req.Role,
		IsActive: true,
	}
	user.CreatedBy = actor
	user.UpdatedBy = actor

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	_ = s.auditRepo.Append(nil, fmt.Sprintf("User Created: %s (%s)", user.Username, user.Role), actor)
	return user, nil
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}
