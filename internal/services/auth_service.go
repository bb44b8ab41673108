package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	stderrors "errors"

	"github.com/Vinay9897/postpaid-billing-system/internal/infrastructure/auth"
	"github.com/Vinay9897/postpaid-billing-system/internal/infrastructure/kafka"
	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	"github.com/Vinay9897/postpaid-billing-system/internal/repository"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	PhoneNumber string
}

type LoginResult struct {
	Token     string
	ExpiresIn int64
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (int64, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type authService struct {
	userRepo      repository.UserRepository
	customerRepo  repository.CustomerRepository
	tokens        *auth.TokenService
	kafkaProducer kafka.KafkaProducer
	tokenTTL      time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	tokens *auth.TokenService,
	kafkaProducer kafka.KafkaProducer,
	tokenTTL time.Duration,
) *authService {
	return &authService{
		userRepo:      userRepo,
		customerRepo:  customerRepo,
		tokens:        tokens,
		kafkaProducer: kafkaProducer,
		tokenTTL:      tokenTTL,
	}
}

// Register creates a user with the customer role and a linked, mostly
// empty customer profile that the owner fills in later.
func (s *authService) Register(ctx context.Context, input RegisterInput) (int64, error) {
	tracer := otel.Tracer("billing-service")
	ctx, span := tracer.Start(ctx, "Register")
	defer span.End()

	if input.Username == "" || input.Password == "" || input.Email == "" {
		span.SetStatus(codes.Error, "missing required fields")
		return 0, pkgerrors.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "password hashing failed")
		slog.Error("failed to hash password", "username", input.Username, "error", err)
		return 0, fmt.Errorf("%w: failed to hash password", pkgerrors.ErrInternal)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if stderrors.Is(err, pkgerrors.ErrUsernameExists) || stderrors.Is(err, pkgerrors.ErrEmailExists) {
			span.SetStatus(codes.Error, "duplicate user")
			slog.Warn("registration rejected", "username", input.Username, "error", err)
			return 0, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "user creation failed")
		slog.Error("failed to create user", "username", input.Username, "error", err)
		return 0, fmt.Errorf("%w: failed to create user", pkgerrors.ErrInternal)
	}

	customer := &models.Customer{
		UserID:      user.ID,
		FullName:    input.FullName,
		PhoneNumber: input.PhoneNumber,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "customer profile creation failed")
		slog.Error("failed to create customer profile", "user_id", user.ID, "error", err)
		return 0, fmt.Errorf("%w: failed to create customer profile", pkgerrors.ErrInternal)
	}

	event := map[string]interface{}{
		"event_type": "user_registered",
		"user_id":    user.ID,
		"username":   user.Username,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	if eventBytes, err := json.Marshal(event); err != nil {
		span.RecordError(err)
		slog.Error("failed to marshal kafka event", "user_id", user.ID, "error", err)
	} else {
		go sendWithRetry(s.kafkaProducer, "users", user.ID, eventBytes)
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user.ID, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	tracer := otel.Tracer("billing-service")
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		span.SetStatus(codes.Error, "user lookup failed")
		slog.Warn("login failed", "username", username, "error", err)
		return nil, pkgerrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		span.SetStatus(codes.Error, "password mismatch")
		slog.Warn("login failed", "username", username)
		return nil, pkgerrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user, s.tokenTTL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "token issuance failed")
		slog.Error("failed to issue token", "user_id", user.ID, "error", err)
		return nil, fmt.Errorf("%w: failed to issue token", pkgerrors.ErrInternal)
	}

	slog.Info("user logged in", "user_id", user.ID, "username", username)
	return &LoginResult{Token: token, ExpiresIn: int64(s.tokenTTL.Seconds())}, nil
}

func sendWithRetry(producer kafka.KafkaProducer, topic string, key int64, value []byte) {
	retries := 3
	for i := 0; i < retries; i++ {
		if err := producer.Send(context.Background(), topic, key, value); err == nil {
			return
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}
	slog.Error("failed to send kafka event after retries", "topic", topic, "key", key)
}
