package services

import (
	"context"

	"github.com/bancofortis/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Store interfaces consumed outside the transfer routine. They are satisfied
// by the types in internal/store.

type UserRepository interface {
	CreateUserWithAccount(ctx context.Context, user *models.User, account *models.Account) error
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type AccountReader interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
	ListAccountsByUser(ctx context.Context, userID int64) ([]models.Account, error)
	CreditAccount(ctx context.Context, accountID int64, amount decimal.Decimal) (*models.Account, error)
}

type TransactionReader interface {
	ListByAccounts(ctx context.Context, accountIDs []int64) ([]models.Transaction, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	List(ctx context.Context) ([]models.Category, error)
}
