// Package store is the Postgres persistence layer. Every method takes the
// Querier it should run on, so callers decide whether work happens inside a
// transaction.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/lib/pq"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	// ErrContention marks lock-wait timeouts, deadlocks and serialization
	// failures reported by Postgres. The statement can succeed if retried.
	ErrContention = errors.New("database contention")
	// ErrOutOfRange marks a value that does not fit its column.
	ErrOutOfRange = errors.New("value out of range")
)

// Postgres SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeUniqueViolation      = "23505"
	codeNumericOutOfRange    = "22003"
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxFunc is the unit of work executed by RunInTx.
type TxFunc func(ctx context.Context, q Querier) error

// IsContention reports whether err is a retryable contention failure.
func IsContention(err error) bool {
	return errors.Is(err, ErrContention)
}

// classify tags Postgres contention and uniqueness errors so callers can use
// errors.Is without importing the driver.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return fmt.Errorf("%w: %w", ErrContention, err)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case codeNumericOutOfRange:
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	return err
}

// txQuerier serialises statements issued on one transaction. Callers may
// read concurrently, but a Postgres connection runs one statement at a time.
type txQuerier struct {
	*sql.Tx
	sync.Mutex
}

// lockQuerier holds q's lock, if it has one, until the returned func runs.
func lockQuerier(q Querier) func() {
	if l, ok := q.(sync.Locker); ok {
		l.Lock()
		return l.Unlock
	}
	return func() {}
}

// runInTx commits when fn returns nil and rolls back otherwise. Errors from
// begin, fn and commit all pass through classify.
func runInTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFunc) error {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return classify(fmt.Errorf("begin transaction: %w", err))
	}
	defer tx.Rollback()

	if err := fn(ctx, &txQuerier{Tx: tx}); err != nil {
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
