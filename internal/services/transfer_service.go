package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/bancofortis/backend/internal/audit"
	"github.com/bancofortis/backend/internal/models"
	"github.com/bancofortis/backend/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// AccountRepository is what the transfer routine needs from the store.
// RunInTx must provide all-or-nothing execution with row locks on UPDATE and
// report lock-wait timeouts and deadlocks as store.ErrContention.
type AccountRepository interface {
	RunInTx(ctx context.Context, fn store.TxFunc) error
	FindAccountByUser(ctx context.Context, q store.Querier, userID int64) (*models.Account, error)
	UpdateBalance(ctx context.Context, q store.Querier, accountID int64, balance decimal.Decimal) error
	CreateTransactionRecord(ctx context.Context, q store.Querier, tx *models.Transaction) error
}

// TransferRequest is a validated transfer order. A spend requires the source
// balance to cover Amount; a deposit does not. Source and destination may be
// the same user.
type TransferRequest struct {
	SourceUserID  int64               `json:"source_user_id" validate:"required,gt=0"`
	DestUserID    int64               `json:"dest_user_id" validate:"required,gt=0"`
	Amount        decimal.Decimal     `json:"amount"`
	Type          models.TransferType `json:"type" validate:"required,oneof=deposit spend"`
	PaymentMethod string              `json:"payment_method" validate:"required,max=50"`
}

type TransferService struct {
	accounts  AccountRepository
	events    EventPublisher
	audit     *audit.AuditLogger
	validator *ValidationHelper
	policy    RetryPolicy
	clock     Clock
}

func NewTransferService(accounts AccountRepository, events EventPublisher, policy RetryPolicy) *TransferService {
	return &TransferService{
		accounts:  accounts,
		events:    events,
		audit:     audit.NewAuditLogger(),
		validator: NewValidationHelper(),
		policy:    policy,
		clock:     systemClock{},
	}
}

// Transfer debits the source user's account, credits the destination user's
// account and records a transaction against the source, atomically.
// Contention reported by the store is retried according to the policy;
// every other failure returns immediately.
func (s *TransferService) Transfer(ctx context.Context, req TransferRequest) (*models.Transaction, error) {
	if err := s.normalize(&req); err != nil {
		return nil, err
	}

	log.Printf("[TRANSFER] Request: source_user=%d dest_user=%d amount=%s type=%s method=%s",
		req.SourceUserID, req.DestUserID, req.Amount.StringFixed(2), req.Type, req.PaymentMethod)

	var record *models.Transaction
	err := s.policy.do(ctx, s.clock, "[TRANSFER]", func() error {
		var err error
		record, err = s.attempt(ctx, req)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrOutOfRange) {
			err = fmt.Errorf("%w: resulting balance exceeds %s: %w", ErrInvalidInput, models.MaxMoney.StringFixed(2), err)
		}
		s.audit.LogError(req.SourceUserID, req.DestUserID, req.Amount, err)
		return nil, err
	}

	s.afterCommit(ctx, req, record)
	return record, nil
}

func (s *TransferService) normalize(req *TransferRequest) error {
	if err := s.validator.ValidateStruct(req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	req.Amount = models.RoundMoney(req.Amount)
	return checkAmount(req.Amount)
}

// checkAmount rejects rounded amounts the money columns cannot store.
func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidInput)
	}
	if amount.GreaterThan(models.MaxMoney) {
		return fmt.Errorf("%w: amount must not exceed %s", ErrInvalidInput, models.MaxMoney.StringFixed(2))
	}
	return nil
}

// attempt runs one pass of the protocol inside a single store transaction.
func (s *TransferService) attempt(ctx context.Context, req TransferRequest) (*models.Transaction, error) {
	var record *models.Transaction

	err := s.accounts.RunInTx(ctx, func(ctx context.Context, q store.Querier) error {
		source, dest, err := s.fetchAccounts(ctx, q, req.SourceUserID, req.DestUserID)
		if err != nil {
			return err
		}

		if req.Type == models.TransferSpend && source.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: balance %s, amount %s",
				ErrInsufficientFunds, source.Balance.StringFixed(2), req.Amount.StringFixed(2))
		}

		for _, u := range planUpdates(source, dest, req.Amount) {
			if err := s.accounts.UpdateBalance(ctx, q, u.accountID, u.balance); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("%w: %w", ErrAccountNotFound, err)
				}
				return err
			}
		}

		record = &models.Transaction{
			AccountID:     source.ID,
			Type:          req.Type,
			Amount:        req.Amount,
			Description:   fmt.Sprintf("%s transfer between user %d and user %d", req.Type, req.SourceUserID, req.DestUserID),
			PaymentMethod: req.PaymentMethod,
			CreatedAt:     s.clock.Now(),
		}
		return s.accounts.CreateTransactionRecord(ctx, q, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// fetchAccounts loads both accounts concurrently.
func (s *TransferService) fetchAccounts(ctx context.Context, q store.Querier, sourceUserID, destUserID int64) (*models.Account, *models.Account, error) {
	var (
		g            errgroup.Group
		source, dest *models.Account
	)
	g.Go(func() error {
		var err error
		source, err = s.accounts.FindAccountByUser(ctx, q, sourceUserID)
		return err
	})
	g.Go(func() error {
		var err error
		dest, err = s.accounts.FindAccountByUser(ctx, q, destUserID)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: %w", ErrAccountNotFound, err)
		}
		return nil, nil, err
	}
	return source, dest, nil
}

type balanceUpdate struct {
	accountID int64
	balance   decimal.Decimal
}

// planUpdates returns the new balances ordered by ascending account id, the
// global lock order shared by every transfer.
func planUpdates(source, dest *models.Account, amount decimal.Decimal) []balanceUpdate {
	if source.ID == dest.ID {
		// Debit and credit hit the same row and cancel out. Writing the
		// debit and then the credit computed from the same read would let
		// the credit win and grow the balance by amount.
		return []balanceUpdate{{accountID: source.ID, balance: models.RoundMoney(source.Balance)}}
	}

	updates := []balanceUpdate{
		{accountID: source.ID, balance: models.RoundMoney(source.Balance.Sub(amount))},
		{accountID: dest.ID, balance: models.RoundMoney(dest.Balance.Add(amount))},
	}
	sort.Slice(updates, func(i, j int) bool {
		return updates[i].accountID < updates[j].accountID
	})
	return updates
}

// afterCommit runs once the transfer is durable; failures here are logged only.
func (s *TransferService) afterCommit(ctx context.Context, req TransferRequest, record *models.Transaction) {
	log.Printf("[TRANSFER] Committed transaction %d on account %d", record.ID, record.AccountID)
	s.audit.LogTransfer(record.ID, record.AccountID, req.SourceUserID, req.DestUserID, record.Amount, "SUCCESS")

	if s.events == nil {
		return
	}
	event := models.TransferEvent{
		EventID:       uuid.NewString(),
		TransactionID: record.ID,
		SourceUserID:  req.SourceUserID,
		DestUserID:    req.DestUserID,
		Type:          record.Type,
		Amount:        record.Amount,
		PaymentMethod: record.PaymentMethod,
		OccurredAt:    record.CreatedAt,
	}
	if err := s.events.PublishTransfer(ctx, event); err != nil {
		log.Printf("[TRANSFER] Failed to publish event for transaction %d: %v", record.ID, err)
	}
}
