package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates a zero or negative amount where a positive one is required.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrNegativeAmount indicates a negative initial deposit.
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrAmountOutOfRange indicates an amount finer than a cent or too large to keep.
	ErrAmountOutOfRange = errors.New("amount must be a whole number of cents below 1000000000000000")
	// ErrInsufficientFunds indicates that the account balance does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidLimit indicates a history limit outside of the allowed range.
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")
)

// History limits.
const (
	MinHistoryLimit     = 1
	MaxHistoryLimit     = 100
	DefaultHistoryLimit = 10
)

// TransactionType tells how a transaction affected the balance.
type TransactionType string

// Supported transaction types.
const (
	TypeDeposit     TransactionType = "deposit"
	TypeWithdrawal  TransactionType = "withdrawal"
	TypeTransferIn  TransactionType = "transfer_in"
	TypeTransferOut TransactionType = "transfer_out"
)

// IsCredit returns true if the transaction type increases the balance.
func (t TransactionType) IsCredit() bool {
	return t == TypeDeposit || t == TypeTransferIn
}

// Transaction is an immutable record of one balance change.
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"` // always positive, the sign comes from Type
	Type        TransactionType `json:"type"`
	Timestamp   time.Time       `json:"timestamp"`
	Description string          `json:"description"`
}

// Signed returns the amount with the sign the transaction applies to the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type.IsCredit() {
		return t.Amount
	}

	return t.Amount.Neg()
}

// MoveParams is the input data for a deposit or a withdrawal.
type MoveParams struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// History holds the latest transactions of an account, newest first.
type History struct {
	AccountID    string          `json:"account_id"`
	Transactions []Transaction   `json:"transactions"`
	Balance      decimal.Decimal `json:"balance"`
}
