package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bancofortis/backend/internal/models"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, user_id, bank_name, branch_code, account_number, account_type, balance, updated_at`

// AccountStore is the account store adapter used by the transfer routine.
//
// Correctness depends on the isolation level RunInTx requests: under
// REPEATABLE READ, Postgres takes a row lock on every UPDATE and aborts a
// transaction whose snapshot was overwritten by a concurrent committer with
// SQLSTATE 40001. Together with a fixed update order this keeps concurrent
// transfers on the same pair of accounts from losing updates or deadlocking.
type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

// RunInTx executes fn in a REPEATABLE READ transaction.
func (s *AccountStore) RunInTx(ctx context.Context, fn TxFunc) error {
	return runInTx(ctx, s.db, &sql.TxOptions{Isolation: sql.LevelRepeatableRead}, fn)
}

// FindAccountByUser returns the account owned by userID. Users own a single
// account; if more exist the oldest one wins.
func (s *AccountStore) FindAccountByUser(ctx context.Context, q Querier, userID int64) (*models.Account, error) {
	unlock := lockQuerier(q)
	defer unlock()

	row := q.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE user_id = $1
		ORDER BY id
		LIMIT 1`, userID)

	account, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("find account for user %d: %w", userID, err)
	}
	return account, nil
}

// FindAccountByID looks an account up by primary key.
func (s *AccountStore) FindAccountByID(ctx context.Context, q Querier, accountID int64) (*models.Account, error) {
	unlock := lockQuerier(q)
	defer unlock()

	row := q.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE id = $1`, accountID)

	account, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("find account %d: %w", accountID, err)
	}
	return account, nil
}

// UpdateBalance overwrites the balance of accountID.
func (s *AccountStore) UpdateBalance(ctx context.Context, q Querier, accountID int64, balance decimal.Decimal) error {
	unlock := lockQuerier(q)
	defer unlock()

	result, err := q.ExecContext(ctx, `
		UPDATE accounts
		SET balance = $1, updated_at = NOW()
		WHERE id = $2`,
		balance.StringFixed(2), accountID)
	if err != nil {
		return fmt.Errorf("update balance of account %d: %w", accountID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("update balance of account %d: %w", accountID, ErrNotFound)
	}
	return nil
}

// CreateTransactionRecord inserts tx and fills in its generated ID.
func (s *AccountStore) CreateTransactionRecord(ctx context.Context, q Querier, tx *models.Transaction) error {
	unlock := lockQuerier(q)
	defer unlock()

	err := q.QueryRowContext(ctx, `
		INSERT INTO transactions (account_id, type, amount, description, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		tx.AccountID, string(tx.Type), tx.Amount.StringFixed(2), tx.Description, tx.PaymentMethod, tx.CreatedAt,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("create transaction record: %w", err)
	}
	return nil
}

// ListAccounts returns every account ordered by id.
func (s *AccountStore) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY id`)
}

// ListAccountsByUser returns the accounts owned by userID.
func (s *AccountStore) ListAccountsByUser(ctx context.Context, userID int64) ([]models.Account, error) {
	return s.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 ORDER BY id`, userID)
}

// CreditAccount adds amount to the balance of accountID and returns the
// updated account. It runs at READ COMMITTED: FOR UPDATE waits for a
// concurrent transfer on the row and then reads its committed balance.
func (s *AccountStore) CreditAccount(ctx context.Context, accountID int64, amount decimal.Decimal) (*models.Account, error) {
	var account *models.Account
	err := runInTx(ctx, s.db, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(ctx context.Context, q Querier) error {
		row := q.QueryRowContext(ctx, `
			SELECT `+accountColumns+`
			FROM accounts
			WHERE id = $1
			FOR UPDATE`, accountID)

		current, err := scanAccount(row)
		if err != nil {
			return fmt.Errorf("lock account %d: %w", accountID, err)
		}

		current.Balance = models.RoundMoney(current.Balance.Add(amount))
		if err := s.UpdateBalance(ctx, q, current.ID, current.Balance); err != nil {
			return err
		}
		account = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountStore) queryAccounts(ctx context.Context, query string, args ...any) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*models.Account, error) {
	var account models.Account
	err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.BankName,
		&account.BranchCode,
		&account.AccountNumber,
		&account.AccountType,
		&account.Balance,
		&account.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
