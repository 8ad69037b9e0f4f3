package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bancofortis/backend/internal/models"
	"github.com/bancofortis/backend/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishTransfer(ctx context.Context, event models.TransferEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// fakeClock never sleeps; it records requested waits and advances time.
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waits = append(c.waits, d)
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func (c *fakeClock) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.waits...)
}

// contentionErr mimics what store.AccountStore returns for a deadlock.
func contentionErr() error {
	return fmt.Errorf("%w: pq: deadlock detected", store.ErrContention)
}

// fakeAccountStore is an in-memory AccountRepository. Transactions run one
// at a time and are rolled back by restoring a snapshot when the work fails.
type fakeAccountStore struct {
	txMu sync.Mutex

	mu       sync.Mutex
	accounts map[int64]models.Account
	records  []models.Transaction
	updates  []int64
	attempts int
	nextTxID int64

	// failUpdate, when set, is consulted before every balance update.
	failUpdate func(attempt int) error
	failRecord error
	failFind   error
}

func newFakeAccountStore(accounts ...models.Account) *fakeAccountStore {
	f := &fakeAccountStore{accounts: map[int64]models.Account{}}
	for _, a := range accounts {
		f.accounts[a.ID] = a
	}
	return f
}

func account(id, userID int64, balance string) models.Account {
	return models.Account{
		ID:            id,
		UserID:        userID,
		BankName:      models.DefaultBankName,
		BranchCode:    models.DefaultBranchCode,
		AccountNumber: fmt.Sprintf("%08d", id),
		AccountType:   models.DefaultAccountType,
		Balance:       decimal.RequireFromString(balance),
	}
}

func (f *fakeAccountStore) RunInTx(ctx context.Context, fn store.TxFunc) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	f.mu.Lock()
	f.attempts++
	snapshot := make(map[int64]models.Account, len(f.accounts))
	for id, a := range f.accounts {
		snapshot[id] = a
	}
	recordCount := len(f.records)
	f.mu.Unlock()

	if err := fn(ctx, nil); err != nil {
		f.mu.Lock()
		f.accounts = snapshot
		f.records = f.records[:recordCount]
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeAccountStore) FindAccountByUser(ctx context.Context, q store.Querier, userID int64) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFind != nil {
		return nil, f.failFind
	}
	var found *models.Account
	for _, a := range f.accounts {
		if a.UserID == userID && (found == nil || a.ID < found.ID) {
			a := a
			found = &a
		}
	}
	if found == nil {
		return nil, fmt.Errorf("find account for user %d: %w", userID, store.ErrNotFound)
	}
	return found, nil
}

func (f *fakeAccountStore) UpdateBalance(ctx context.Context, q store.Querier, accountID int64, balance decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUpdate != nil {
		if err := f.failUpdate(f.attempts); err != nil {
			return err
		}
	}
	a, ok := f.accounts[accountID]
	if !ok {
		return store.ErrNotFound
	}
	a.Balance = balance
	f.accounts[accountID] = a
	f.updates = append(f.updates, accountID)
	return nil
}

func (f *fakeAccountStore) CreateTransactionRecord(ctx context.Context, q store.Querier, tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failRecord != nil {
		return f.failRecord
	}
	f.nextTxID++
	tx.ID = f.nextTxID
	f.records = append(f.records, *tx)
	return nil
}

func (f *fakeAccountStore) balance(accountID int64) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[accountID].Balance
}

func (f *fakeAccountStore) recordCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}
