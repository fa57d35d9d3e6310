// Package ledgerservice manages business logic layer of the ledger.
package ledgerservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/currencypkg"
)

// Default transaction descriptions.
const (
	DefaultDepositDescription    = "Deposit"
	DefaultWithdrawalDescription = "Withdrawal"
	DefaultTransferDescription   = "Transfer"
)

// Repo provides data access layer interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Delete(ctx context.Context, id string) (domain.Account, error)
	Deposit(ctx context.Context, arg domain.MoveParams) (domain.Account, error)
	Withdraw(ctx context.Context, arg domain.MoveParams) (domain.Account, error)
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error)
	History(ctx context.Context, id string, limit int) (domain.History, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo Repo
}

// New returns ledger service struct to manage accounts and money movements.
func New(r Repo) *Service {
	return &Service{repo: r}
}

// CreateAccount opens an account with an optional initial deposit.
func (s *Service) CreateAccount(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if arg.InitialDeposit.IsNegative() {
		l.Info().Err(domain.ErrNegativeAmount).Send()
		return domain.Account{}, domain.ErrNegativeAmount
	}

	if !currencypkg.IsValidAmount(arg.InitialDeposit) {
		l.Info().Err(domain.ErrAmountOutOfRange).Send()
		return domain.Account{}, domain.ErrAmountOutOfRange
	}

	account, err := s.repo.Create(ctx, arg)
	if err != nil {
		l.Error().Err(err).Send()
		return account, err
	}

	l.Debug().Str("account_id", account.ID).Msg("account created")

	return account, nil
}

// GetAccount returns account for the given account ID.
func (s *Service) GetAccount(ctx context.Context, id string) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Info().Err(err).Send()
		return account, err
	}

	return account, nil
}

// ListAccounts returns all open accounts in creation order.
func (s *Service) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return nil, err
	}

	return accounts, nil
}

// CloseAccount removes an account whose balance is exactly zero.
func (s *Service) CloseAccount(ctx context.Context, id string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.Delete(ctx, id)
	if err != nil {
		l.Info().Err(err).Send()
		return account, err
	}

	l.Debug().Str("account_id", id).Msg("account closed")

	return account, nil
}

// Deposit adds money to the account and returns the updated account.
func (s *Service) Deposit(ctx context.Context, arg domain.MoveParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !arg.Amount.IsPositive() {
		l.Info().Err(domain.ErrInvalidAmount).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if !currencypkg.IsValidAmount(arg.Amount) {
		l.Info().Err(domain.ErrAmountOutOfRange).Send()
		return domain.Account{}, domain.ErrAmountOutOfRange
	}

	if arg.Description == "" {
		arg.Description = DefaultDepositDescription
	}

	account, err := s.repo.Deposit(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()
		return account, err
	}

	return account, nil
}

// Withdraw takes money from the account and returns the updated account.
func (s *Service) Withdraw(ctx context.Context, arg domain.MoveParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !arg.Amount.IsPositive() {
		l.Info().Err(domain.ErrInvalidAmount).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if !currencypkg.IsValidAmount(arg.Amount) {
		l.Info().Err(domain.ErrAmountOutOfRange).Send()
		return domain.Account{}, domain.ErrAmountOutOfRange
	}

	if arg.Description == "" {
		arg.Description = DefaultWithdrawalDescription
	}

	account, err := s.repo.Withdraw(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()
		return account, err
	}

	return account, nil
}

// Transfer checks if transfer request is valid and then executes transfer.
func (s *Service) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	if !arg.Amount.IsPositive() {
		l.Info().Err(domain.ErrInvalidAmount).Send()
		return domain.TransferResult{}, domain.ErrInvalidAmount
	}

	if !currencypkg.IsValidAmount(arg.Amount) {
		l.Info().Err(domain.ErrAmountOutOfRange).Send()
		return domain.TransferResult{}, domain.ErrAmountOutOfRange
	}

	if arg.Description == "" {
		arg.Description = DefaultTransferDescription
	}

	result, err := s.repo.Transfer(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()
		return result, err
	}

	l.Debug().
		Str("from_account_id", arg.FromAccountID).
		Str("to_account_id", arg.ToAccountID).
		Str("amount", arg.Amount.String()).
		Msg("transfer completed")

	return result, nil
}

// History returns the latest transactions of the account, newest first.
// A zero limit means domain.DefaultHistoryLimit.
func (s *Service) History(ctx context.Context, id string, limit int) (domain.History, error) {
	l := zerolog.Ctx(ctx)

	if limit == 0 {
		limit = domain.DefaultHistoryLimit
	}

	if limit < domain.MinHistoryLimit || limit > domain.MaxHistoryLimit {
		l.Info().Err(domain.ErrInvalidLimit).Send()
		return domain.History{}, domain.ErrInvalidLimit
	}

	history, err := s.repo.History(ctx, id, limit)
	if err != nil {
		l.Info().Err(err).Send()
		return history, err
	}

	return history, nil
}
