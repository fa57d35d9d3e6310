package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrSameAccount indicates that the transfer source and destination are the same account.
var ErrSameAccount = errors.New("cannot transfer to the same account")

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
}

// TransferResult is the result of the transfer transaction.
type TransferResult struct {
	FromAccount     Account     `json:"from_account"`
	ToAccount       Account     `json:"to_account"`
	FromTransaction Transaction `json:"from_transaction"`
	ToTransaction   Transaction `json:"to_transaction"`
}
