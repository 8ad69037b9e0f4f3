package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

type AuditEvent struct {
	Timestamp     time.Time       `json:"timestamp"`
	EventType     string          `json:"event_type"`
	TransactionID int64           `json:"transaction_id,omitempty"`
	AccountID     int64           `json:"account_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	Details       any             `json:"details"`
}

// AuditLogger writes one JSON line per money movement to the standard logger.
type AuditLogger struct {
	logger *log.Logger
}

func NewAuditLogger() *AuditLogger {
	return &AuditLogger{logger: log.Default()}
}

// NewAuditLoggerWith is used by tests to capture output.
func NewAuditLoggerWith(logger *log.Logger) *AuditLogger {
	return &AuditLogger{logger: logger}
}

func (a *AuditLogger) LogTransfer(transactionID, accountID, sourceUserID, destUserID int64, amount decimal.Decimal, status string) {
	a.log(AuditEvent{
		Timestamp:     time.Now(),
		EventType:     "TRANSFER",
		TransactionID: transactionID,
		AccountID:     accountID,
		Amount:        amount,
		Status:        status,
		Details: map[string]int64{
			"source_user_id": sourceUserID,
			"dest_user_id":   destUserID,
		},
	})
}

func (a *AuditLogger) LogCredit(accountID int64, amount decimal.Decimal) {
	a.log(AuditEvent{
		Timestamp: time.Now(),
		EventType: "CREDIT",
		AccountID: accountID,
		Amount:    amount,
		Status:    "SUCCESS",
	})
}

func (a *AuditLogger) LogError(sourceUserID, destUserID int64, amount decimal.Decimal, err error) {
	a.log(AuditEvent{
		Timestamp: time.Now(),
		EventType: "ERROR",
		Amount:    amount,
		Status:    "FAILED",
		Details: map[string]any{
			"source_user_id": sourceUserID,
			"dest_user_id":   destUserID,
			"error":          err.Error(),
		},
	})
}

func (a *AuditLogger) log(event AuditEvent) {
	data, _ := json.Marshal(event)
	a.logger.Printf("AUDIT: %s", string(data))
}
