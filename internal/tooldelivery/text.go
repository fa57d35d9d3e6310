package tooldelivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/currencypkg"
)

const (
	listRule    = 40
	historyRule = 50

	historyTimeLayout = "2006-01-02 15:04"
)

func accountCreatedText(a domain.Account) string {
	return fmt.Sprintf("Account created successfully. Account ID: %s, Balance: %s",
		a.ID, currencypkg.Format(a.Balance))
}

func accountInfoText(a domain.Account) string {
	return fmt.Sprintf("Account ID: %s\nName: %s\nBalance: %s\nCreated: %s\nTransaction count: %d",
		a.ID, a.Name, currencypkg.Format(a.Balance), a.CreatedAt.Format(time.RFC3339), a.TransactionCount)
}

func accountListText(accounts []domain.Account) string {
	if len(accounts) == 0 {
		return "No accounts found."
	}

	lines := make([]string, 0, len(accounts)+2)
	lines = append(lines, "Account List:", strings.Repeat("-", listRule))

	for _, a := range accounts {
		lines = append(lines, fmt.Sprintf("  %s: %s - %s", a.ID, a.Name, currencypkg.Format(a.Balance)))
	}

	return strings.Join(lines, "\n")
}

func accountClosedText(id string) string {
	return fmt.Sprintf("Account %s has been closed successfully.", id)
}

func depositText(arg domain.MoveParams, a domain.Account) string {
	return fmt.Sprintf("Deposited %s to %s. New balance: %s",
		currencypkg.Format(arg.Amount), a.ID, currencypkg.Format(a.Balance))
}

func withdrawText(arg domain.MoveParams, a domain.Account) string {
	return fmt.Sprintf("Withdrew %s from %s. New balance: %s",
		currencypkg.Format(arg.Amount), a.ID, currencypkg.Format(a.Balance))
}

func transferText(arg domain.CreateTransferParams, res domain.TransferResult) string {
	return fmt.Sprintf("Transferred %s from %s to %s.\nSource balance: %s\nDestination balance: %s",
		currencypkg.Format(arg.Amount), arg.FromAccountID, arg.ToAccountID,
		currencypkg.Format(res.FromAccount.Balance), currencypkg.Format(res.ToAccount.Balance))
}

func historyText(h domain.History) string {
	if len(h.Transactions) == 0 {
		return fmt.Sprintf("No transactions found for account %s.", h.AccountID)
	}

	lines := make([]string, 0, len(h.Transactions)+4)
	lines = append(lines, fmt.Sprintf("Transaction History for %s:", h.AccountID), strings.Repeat("-", historyRule))

	for _, t := range h.Transactions {
		lines = append(lines, fmt.Sprintf("  %s | %s | %s",
			t.Timestamp.Format(historyTimeLayout),
			currencypkg.FormatSigned(t.Amount, t.Type.IsCredit()),
			t.Description))
	}

	lines = append(lines, strings.Repeat("-", historyRule), "Current Balance: "+currencypkg.Format(h.Balance))

	return strings.Join(lines, "\n")
}

// errorText renders a domain error the way tool clients expect it.
// It returns false for errors that are not caused by the caller.
func errorText(err error) (string, bool) {
	var accErr *domain.AccountError
	if errors.As(err, &accErr) && errors.Is(err, domain.ErrAccountNotFound) {
		switch accErr.Side {
		case domain.SideSource:
			return fmt.Sprintf("Error: Source account %s not found.", accErr.AccountID), true
		case domain.SideDestination:
			return fmt.Sprintf("Error: Destination account %s not found.", accErr.AccountID), true
		default:
			return fmt.Sprintf("Error: Account %s not found.", accErr.AccountID), true
		}
	}

	var balErr *domain.BalanceError
	if errors.As(err, &balErr) {
		switch {
		case errors.Is(err, domain.ErrInsufficientFunds):
			return "Error: Insufficient funds. Available balance: " + currencypkg.Format(balErr.Balance), true
		case errors.Is(err, domain.ErrNonZeroBalance):
			return fmt.Sprintf("Error: Cannot close account with balance %s. Please withdraw all funds first.",
				currencypkg.Format(balErr.Balance)), true
		}
	}

	switch {
	case errors.Is(err, domain.ErrSameAccount):
		return "Error: Cannot transfer to the same account.", true
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountOutOfRange),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInvalidLimit):
		return fmt.Sprintf("Error: %s.", capitalize(err.Error())), true
	}

	return "", false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
