// Package ledgerrepo manages repository layer of accounts and their transactions.
package ledgerrepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
)

const initialDepositDescription = "Initial deposit"

// FormatAccountID returns an account id like "ACC000001".
func FormatAccountID(seq uint64) string {
	return fmt.Sprintf("ACC%06d", seq)
}

// FormatTransactionID returns a transaction id like "TXN000001".
func FormatTransactionID(seq uint64) string {
	return fmt.Sprintf("TXN%06d", seq)
}

type accountRecord struct {
	id           string
	name         string
	balance      decimal.Decimal
	transactions []domain.Transaction
	createdAt    time.Time
}

func (a *accountRecord) snapshot() domain.Account {
	return domain.Account{
		ID:               a.id,
		Name:             a.name,
		Balance:          a.balance,
		TransactionCount: len(a.transactions),
		CreatedAt:        a.createdAt,
	}
}

// Option configures RepoMem.
type Option func(r *RepoMem)

// WithClock replaces the clock used to stamp accounts and transactions.
func WithClock(now func() time.Time) Option {
	return func(r *RepoMem) {
		r.now = now
	}
}

// RepoMem keeps accounts and transactions in process memory.
//
// A single mutex serializes every operation, so a transfer is never observed half-applied
// and a balance check cannot race a concurrent withdrawal.
type RepoMem struct {
	mu             sync.Mutex
	now            func() time.Time
	accounts       map[string]*accountRecord
	order          []string // account ids in creation order
	accountSeq     uint64
	transactionSeq uint64
}

// NewRepoMem returns an empty in-memory ledger.
func NewRepoMem(opts ...Option) *RepoMem {
	r := &RepoMem{
		now:      func() time.Time { return time.Now().UTC() },
		accounts: make(map[string]*accountRecord),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// nextTransaction must be called with r.mu held.
func (r *RepoMem) nextTransaction(accountID string, amount decimal.Decimal, typ domain.TransactionType, ts time.Time, desc string) domain.Transaction {
	r.transactionSeq++

	return domain.Transaction{
		ID:          FormatTransactionID(r.transactionSeq),
		AccountID:   accountID,
		Amount:      amount,
		Type:        typ,
		Timestamp:   ts,
		Description: desc,
	}
}

// Create opens an account and records the initial deposit if there is one.
func (r *RepoMem) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accountSeq++
	now := r.now()

	a := &accountRecord{
		id:        FormatAccountID(r.accountSeq),
		name:      arg.Name,
		balance:   arg.InitialDeposit,
		createdAt: now,
	}

	if arg.InitialDeposit.IsPositive() {
		t := r.nextTransaction(a.id, arg.InitialDeposit, domain.TypeDeposit, now, initialDepositDescription)
		a.transactions = append(a.transactions, t)
	}

	r.accounts[a.id] = a
	r.order = append(r.order, a.id)

	return a.snapshot(), nil
}

// Get returns the account with the given id.
func (r *RepoMem) Get(ctx context.Context, id string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.NewNotFoundError(id, domain.SideNone)
	}

	return a.snapshot(), nil
}

// List returns all open accounts in creation order.
func (r *RepoMem) List(ctx context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]domain.Account, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.accounts[id].snapshot())
	}

	return items, nil
}

// Delete removes the account together with its transactions.
// Only accounts with exactly zero balance can be removed.
func (r *RepoMem) Delete(ctx context.Context, id string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.Account{}, domain.NewNotFoundError(id, domain.SideNone)
	}

	if !a.balance.IsZero() {
		return domain.Account{}, &domain.BalanceError{
			Err:       domain.ErrNonZeroBalance,
			AccountID: id,
			Balance:   a.balance,
		}
	}

	delete(r.accounts, id)

	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	return a.snapshot(), nil
}

// Deposit adds the amount to the account balance.
func (r *RepoMem) Deposit(ctx context.Context, arg domain.MoveParams) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[arg.AccountID]
	if !ok {
		return domain.Account{}, domain.NewNotFoundError(arg.AccountID, domain.SideNone)
	}

	t := r.nextTransaction(a.id, arg.Amount, domain.TypeDeposit, r.now(), arg.Description)
	a.balance = a.balance.Add(arg.Amount)
	a.transactions = append(a.transactions, t)

	return a.snapshot(), nil
}

// Withdraw subtracts the amount from the account balance.
// The balance is left untouched when it does not cover the amount.
func (r *RepoMem) Withdraw(ctx context.Context, arg domain.MoveParams) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[arg.AccountID]
	if !ok {
		return domain.Account{}, domain.NewNotFoundError(arg.AccountID, domain.SideNone)
	}

	if a.balance.LessThan(arg.Amount) {
		return domain.Account{}, &domain.BalanceError{
			Err:       domain.ErrInsufficientFunds,
			AccountID: a.id,
			Balance:   a.balance,
		}
	}

	t := r.nextTransaction(a.id, arg.Amount, domain.TypeWithdrawal, r.now(), arg.Description)
	a.balance = a.balance.Sub(arg.Amount)
	a.transactions = append(a.transactions, t)

	return a.snapshot(), nil
}

// Transfer moves money between two accounts.
//
// Both accounts are looked up before anything changes; either both legs are recorded with
// one shared timestamp or none is.
func (r *RepoMem) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result domain.TransferResult

	from, ok := r.accounts[arg.FromAccountID]
	if !ok {
		return result, domain.NewNotFoundError(arg.FromAccountID, domain.SideSource)
	}

	to, ok := r.accounts[arg.ToAccountID]
	if !ok {
		return result, domain.NewNotFoundError(arg.ToAccountID, domain.SideDestination)
	}

	if from.id == to.id {
		return result, domain.ErrSameAccount
	}

	if from.balance.LessThan(arg.Amount) {
		return result, &domain.BalanceError{
			Err:       domain.ErrInsufficientFunds,
			AccountID: from.id,
			Balance:   from.balance,
		}
	}

	now := r.now()

	result.FromTransaction = r.nextTransaction(from.id, arg.Amount, domain.TypeTransferOut, now,
		fmt.Sprintf("%s to %s", arg.Description, to.id))
	result.ToTransaction = r.nextTransaction(to.id, arg.Amount, domain.TypeTransferIn, now,
		fmt.Sprintf("%s from %s", arg.Description, from.id))

	from.balance = from.balance.Sub(arg.Amount)
	to.balance = to.balance.Add(arg.Amount)
	from.transactions = append(from.transactions, result.FromTransaction)
	to.transactions = append(to.transactions, result.ToTransaction)

	result.FromAccount, result.ToAccount = from.snapshot(), to.snapshot()

	return result, nil
}

// History returns up to limit latest transactions of the account, newest first.
func (r *RepoMem) History(ctx context.Context, id string, limit int) (domain.History, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return domain.History{}, domain.NewNotFoundError(id, domain.SideNone)
	}

	start := len(a.transactions) - limit
	if start < 0 {
		start = 0
	}

	latest := a.transactions[start:]
	items := make([]domain.Transaction, 0, len(latest))

	for i := len(latest) - 1; i >= 0; i-- {
		items = append(items, latest[i])
	}

	return domain.History{
		AccountID:    a.id,
		Transactions: items,
		Balance:      a.balance,
	}, nil
}
