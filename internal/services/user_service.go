package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/bancofortis/backend/internal/models"
	"github.com/bancofortis/backend/internal/store"
	"github.com/shopspring/decimal"
)

// RegisterRequest carries the fields of the registration form.
type RegisterRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=120"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

type UserService struct {
	users     UserRepository
	validator *ValidationHelper
	argon2    Argon2Params
}

func NewUserService(users UserRepository, params Argon2Params) *UserService {
	return &UserService{
		users:     users,
		validator: NewValidationHelper(),
		argon2:    params,
	}
}

// Register creates the user and opens its account with a zero balance.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.User, *models.Account, error) {
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}
	if req.BirthDate != "" {
		birthDate, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: birth date: %w", ErrInvalidInput, err)
		}
		user.BirthDate = birthDate
	}

	hashed, err := hashPassword(req.Password, s.argon2)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}
	user.Password = hashed

	account := &models.Account{
		BankName:      models.DefaultBankName,
		BranchCode:    models.DefaultBranchCode,
		AccountNumber: generateAccountNumber(),
		AccountType:   models.DefaultAccountType,
		Balance:       decimal.Zero,
	}

	if err := s.users.CreateUserWithAccount(ctx, user, account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, nil, fmt.Errorf("%w: %s", ErrUserExists, req.Email)
		}
		return nil, nil, err
	}

	log.Printf("[USER] Registered user %d with account %d (%s)", user.ID, account.ID, account.AccountNumber)
	return user, account, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

func generateAccountNumber() string {
	return fmt.Sprintf("%08d", rand.Intn(100_000_000))
}
