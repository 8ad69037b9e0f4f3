package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Defaults applied to the account opened on registration.
const (
	DefaultBankName    = "Banco Fortis"
	DefaultBranchCode  = "0001"
	DefaultAccountType = "Conta Corrente"
)

type Account struct {
	ID            int64           `json:"id" db:"id"`
	UserID        int64           `json:"user_id" db:"user_id"`
	BankName      string          `json:"bank_name" db:"bank_name"`
	BranchCode    string          `json:"branch_code" db:"branch_code"`
	AccountNumber string          `json:"account_number" db:"account_number"`
	AccountType   string          `json:"account_type" db:"account_type"`
	Balance       decimal.Decimal `json:"balance" db:"balance"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// MaxMoney is the largest value a NUMERIC(14,2) balance or amount column holds.
var MaxMoney = decimal.RequireFromString("999999999999.99")

// RoundMoney rounds to two decimal places, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
