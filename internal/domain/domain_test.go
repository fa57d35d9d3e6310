package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSigned(t *testing.T) {
	amount := decimal.RequireFromString("12.34")

	testCases := []struct {
		typ  TransactionType
		want string
	}{
		{TypeDeposit, "12.34"},
		{TypeTransferIn, "12.34"},
		{TypeWithdrawal, "-12.34"},
		{TypeTransferOut, "-12.34"},
	}

	for _, tc := range testCases {
		txn := Transaction{Amount: amount, Type: tc.typ}
		require.Equal(t, tc.want, txn.Signed().String(), string(tc.typ))
	}
}

func TestAccountError(t *testing.T) {
	err := NewNotFoundError("ACC000001", SideDestination)

	require.ErrorIs(t, err, ErrAccountNotFound)
	require.EqualError(t, err, "destination account ACC000001: account not found")

	var accErr *AccountError
	require.True(t, errors.As(err, &accErr))
	require.Equal(t, SideDestination, accErr.Side)

	require.EqualError(t, NewNotFoundError("ACC000002", SideNone), "account ACC000002: account not found")
}

func TestBalanceError(t *testing.T) {
	err := error(&BalanceError{Err: ErrInsufficientFunds, AccountID: "ACC000003", Balance: decimal.NewFromInt(10)})

	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.NotErrorIs(t, err, ErrNonZeroBalance)
	require.EqualError(t, err, "account ACC000003: insufficient funds (balance $10.00)")
}
