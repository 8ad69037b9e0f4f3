package models

import "github.com/shopspring/decimal"

// Report summarises a user's accounts and transaction history.
type Report struct {
	User              User            `json:"user"`
	Accounts          []Account       `json:"accounts"`
	Transactions      []Transaction   `json:"transactions"`
	TotalBalance      decimal.Decimal `json:"total_balance"`
	TotalTransactions int             `json:"total_transactions"`
	TotalDeposits     decimal.Decimal `json:"total_deposits"`
	TotalSpends       decimal.Decimal `json:"total_spends"`
}
