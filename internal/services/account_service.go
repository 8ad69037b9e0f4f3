package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bancofortis/backend/internal/audit"
	"github.com/bancofortis/backend/internal/models"
	"github.com/bancofortis/backend/internal/store"
	"github.com/shopspring/decimal"
)

// CreditRequest adds money straight to an account, outside the transfer flow.
type CreditRequest struct {
	AccountID int64           `json:"account_id" validate:"required,gt=0"`
	Amount    decimal.Decimal `json:"amount"`
}

type AccountService struct {
	accounts  AccountReader
	users     UserRepository
	audit     *audit.AuditLogger
	validator *ValidationHelper
	policy    RetryPolicy
	clock     Clock
}

func NewAccountService(accounts AccountReader, users UserRepository, policy RetryPolicy) *AccountService {
	return &AccountService{
		accounts:  accounts,
		users:     users,
		audit:     audit.NewAuditLogger(),
		validator: NewValidationHelper(),
		policy:    policy,
		clock:     systemClock{},
	}
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.accounts.ListAccounts(ctx)
}

// ListUsersWithAccounts joins every user with the accounts it owns.
func (s *AccountService) ListUsersWithAccounts(ctx context.Context) ([]models.UserWithAccounts, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	byUser := make(map[int64][]models.Account, len(users))
	for _, a := range accounts {
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}

	result := make([]models.UserWithAccounts, 0, len(users))
	for _, u := range users {
		owned := byUser[u.ID]
		if owned == nil {
			owned = []models.Account{}
		}
		result = append(result, models.UserWithAccounts{User: u, Accounts: owned})
	}
	return result, nil
}

func (s *AccountService) Credit(ctx context.Context, req CreditRequest) (*models.Account, error) {
	if err := s.validator.ValidateStruct(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	amount := models.RoundMoney(req.Amount)
	if err := checkAmount(amount); err != nil {
		return nil, err
	}

	var account *models.Account
	err := s.policy.do(ctx, s.clock, "[ACCOUNT]", func() error {
		var err error
		account, err = s.accounts.CreditAccount(ctx, req.AccountID, amount)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil, fmt.Errorf("%w: %w", ErrAccountNotFound, err)
		case errors.Is(err, store.ErrOutOfRange):
			return nil, fmt.Errorf("%w: resulting balance exceeds %s: %w", ErrInvalidInput, models.MaxMoney.StringFixed(2), err)
		}
		return nil, err
	}

	log.Printf("[ACCOUNT] Credited %s to account %d, balance now %s",
		amount.StringFixed(2), account.ID, account.Balance.StringFixed(2))
	s.audit.LogCredit(account.ID, amount)
	return account, nil
}
