package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bancofortis/backend/internal/models"
	"github.com/bancofortis/backend/internal/store"
	"github.com/shopspring/decimal"
)

type ReportService struct {
	users        UserRepository
	accounts     AccountReader
	transactions TransactionReader
}

func NewReportService(users UserRepository, accounts AccountReader, transactions TransactionReader) *ReportService {
	return &ReportService{users: users, accounts: accounts, transactions: transactions}
}

// Build summarises the balances and transaction history of userID.
func (s *ReportService) Build(ctx context.Context, userID int64) (*models.Report, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, userID)
		}
		return nil, err
	}

	accounts, err := s.accounts.ListAccountsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	transactions, err := s.transactions.ListByAccounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		User:              *user,
		Accounts:          accounts,
		Transactions:      transactions,
		TotalBalance:      decimal.Zero,
		TotalTransactions: len(transactions),
		TotalDeposits:     decimal.Zero,
		TotalSpends:       decimal.Zero,
	}
	for _, a := range accounts {
		report.TotalBalance = report.TotalBalance.Add(a.Balance)
	}
	for _, tx := range transactions {
		switch tx.Type {
		case models.TransferDeposit:
			report.TotalDeposits = report.TotalDeposits.Add(tx.Amount)
		case models.TransferSpend:
			report.TotalSpends = report.TotalSpends.Add(tx.Amount)
		}
	}
	return report, nil
}
