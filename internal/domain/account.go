// Package domain provides defenitions of all ledger entities and errors.
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/pkg/currencypkg"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNonZeroBalance indicates that the account still holds funds and cannot be closed.
	ErrNonZeroBalance = errors.New("account balance is not zero")
)

// Account holds the balance of a single account holder.
//
// It is a snapshot: the transaction log stays in the store and only its size is reported.
type Account struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transaction_count"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CreateAccountParams is the input data to open an account.
type CreateAccountParams struct {
	Name           string          `json:"name"`
	InitialDeposit decimal.Decimal `json:"initial_deposit"`
}

// Side tells which leg of a transfer an account plays.
type Side string

// Transfer sides. SideNone is used outside of transfers.
const (
	SideNone        Side = ""
	SideSource      Side = "source"
	SideDestination Side = "destination"
)

// AccountError reports a failed account lookup together with the id that was asked for.
type AccountError struct {
	Err       error
	AccountID string
	Side      Side
}

func (e *AccountError) Error() string {
	if e.Side == SideNone {
		return fmt.Sprintf("account %s: %v", e.AccountID, e.Err)
	}

	return fmt.Sprintf("%s account %s: %v", e.Side, e.AccountID, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewNotFoundError returns ErrAccountNotFound wrapped with the account id.
func NewNotFoundError(accountID string, side Side) error {
	return &AccountError{Err: ErrAccountNotFound, AccountID: accountID, Side: side}
}

// BalanceError reports a rejected balance change and the balance the account holds.
type BalanceError struct {
	Err       error
	AccountID string
	Balance   decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("account %s: %v (balance %s)", e.AccountID, e.Err, currencypkg.Format(e.Balance))
}

// Unwrap returns the underlying sentinel error.
func (e *BalanceError) Unwrap() error {
	return e.Err
}
