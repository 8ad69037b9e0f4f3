package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bancofortis/backend/internal/models"
	"github.com/lib/pq"
)

// TransactionStore reads the transaction log. Records are written only by
// AccountStore.CreateTransactionRecord.
type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

// ListByAccounts returns the transactions attributed to any of accountIDs,
// newest first.
func (s *TransactionStore) ListByAccounts(ctx context.Context, accountIDs []int64) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	if len(accountIDs) == 0 {
		return transactions, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, type, amount, description, payment_method, created_at
		FROM transactions
		WHERE account_id = ANY($1)
		ORDER BY created_at DESC, id DESC`, pq.Array(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.AccountID, &tx.Type, &tx.Amount, &tx.Description, &tx.PaymentMethod, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}
