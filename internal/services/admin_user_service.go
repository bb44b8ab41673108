package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	"github.com/Vinay9897/postpaid-billing-system/internal/repository"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type UpdateUserInput struct {
	Email string
	Role  string
}

// AdminUserService is the back-office user management surface. All of it
// sits behind the admin role check in the handlers.
type AdminUserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (int64, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, input UpdateUserInput) error
	SetPassword(ctx context.Context, id int64, password string) error
	DeleteUser(ctx context.Context, id int64) error
}

type adminUserService struct {
	userRepo repository.UserRepository
}

func NewAdminUserService(userRepo repository.UserRepository) *adminUserService {
	return &adminUserService{userRepo: userRepo}
}

func (s *adminUserService) CreateUser(ctx context.Context, input CreateUserInput) (int64, error) {
	tracer := otel.Tracer("billing-service")
	ctx, span := tracer.Start(ctx, "AdminCreateUser")
	defer span.End()

	if input.Username == "" || input.Password == "" || input.Email == "" {
		return 0, pkgerrors.ErrInvalidInput
	}

	role := models.RoleCustomer
	if input.Role != "" {
		role = models.Role(input.Role)
		if !role.Valid() {
			span.SetStatus(codes.Error, "invalid role")
			return 0, fmt.Errorf("%w: %q", pkgerrors.ErrInvalidRole, input.Role)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("%w: failed to hash password", pkgerrors.ErrInternal)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		span.RecordError(err)
		slog.Error("admin user creation failed", "username", input.Username, "error", err)
		return 0, err
	}

	slog.Info("admin created user", "user_id", user.ID, "username", user.Username, "role", user.Role)
	return user.ID, nil
}

func (s *adminUserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *adminUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *adminUserService) UpdateUser(ctx context.Context, id int64, input UpdateUserInput) error {
	tracer := otel.Tracer("billing-service")
	ctx, span := tracer.Start(ctx, "AdminUpdateUser")
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Role != "" {
		role := models.Role(input.Role)
		if !role.Valid() {
			span.SetStatus(codes.Error, "invalid role")
			return fmt.Errorf("%w: %q", pkgerrors.ErrInvalidRole, input.Role)
		}
		user.Role = role
	}
	return s.userRepo.Update(ctx, user)
}

func (s *adminUserService) SetPassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return pkgerrors.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: failed to hash password", pkgerrors.ErrInternal)
	}
	return s.userRepo.UpdatePassword(ctx, id, string(hash))
}

func (s *adminUserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("admin deleted user", "user_id", id)
	return nil
}
