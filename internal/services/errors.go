package services

import "errors"

// Transfer failures callers can tell apart with errors.Is. Store contention
// (store.ErrContention) is retried inside TransferService and only reaches
// callers wrapped in ErrRetryExhausted. Any other error is an unclassified
// store failure.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrAccountNotFound   = errors.New("source or destination account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrRetryExhausted    = errors.New("retries exhausted")
	ErrUserExists        = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
)
