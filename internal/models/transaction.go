package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferType tells whether a transfer is recorded as a deposit or a spend
// against the source account.
type TransferType string

const (
	TransferDeposit TransferType = "deposit"
	TransferSpend   TransferType = "spend"
)

func (t TransferType) IsValid() bool {
	return t == TransferDeposit || t == TransferSpend
}

// Transaction is an immutable log entry written once per successful transfer,
// attributed to the source account.
type Transaction struct {
	ID            int64           `json:"id" db:"id"`
	AccountID     int64           `json:"account_id" db:"account_id"`
	Type          TransferType    `json:"type" db:"type"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Description   string          `json:"description" db:"description"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// TransferEvent is published after a transfer commits.
type TransferEvent struct {
	EventID       string          `json:"event_id"`
	TransactionID int64           `json:"transaction_id"`
	SourceUserID  int64           `json:"source_user_id"`
	DestUserID    int64           `json:"dest_user_id"`
	Type          TransferType    `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
