// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	CreateAccount(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	GetAccount(ctx context.Context, id string) (domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CloseAccount(ctx context.Context, id string) (domain.Account, error)
	Deposit(ctx context.Context, arg domain.MoveParams) (domain.Account, error)
	Withdraw(ctx context.Context, arg domain.MoveParams) (domain.Account, error)
	History(ctx context.Context, id string, limit int) (domain.History, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type data struct {
	Account domain.Account `json:"account"`
}

type dataAccounts struct {
	Accounts []domain.Account `json:"accounts"`
}

type dataHistory struct {
	History domain.History `json:"history"`
}

// respondError writes the status matching the domain error.
func respondError(gctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		gctx.JSON(http.StatusNotFound, web.Error(err))
	case errors.Is(err, domain.ErrNonZeroBalance):
		gctx.JSON(http.StatusConflict, web.Error(err))
	case
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountOutOfRange),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrInvalidLimit):
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	default:
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

func badRequest(gctx *gin.Context, err error) {
	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
	gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})
}

type createRequest struct {
	Name           string          `json:"name" binding:"required"`
	InitialDeposit decimal.Decimal `json:"initial_deposit" binding:"money,gte=0"`
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	account, err := h.service.CreateAccount(ctx, domain.CreateAccountParams{
		Name:           req.Name,
		InitialDeposit: req.InitialDeposit,
	})
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Response{Data: data{account}})
}

type uriRequest struct {
	ID string `uri:"id" binding:"required"`
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	account, err := h.service.GetAccount(ctx, req.ID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{account}})
}

// List handles http request to list accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	accounts, err := h.service.ListAccounts(ctx)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataAccounts{accounts}})
}

// Close handles http request to close account.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	account, err := h.service.CloseAccount(ctx, req.ID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{account}})
}

type moveRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"money,gt=0"`
	Description string          `json:"description"`
}

func (h *Handler) bindMove(gctx *gin.Context) (domain.MoveParams, bool) {
	var (
		uri uriRequest
		req moveRequest
	)

	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return domain.MoveParams{}, false
	}

	if err := gctx.ShouldBindJSON(&req); err != nil {
		badRequest(gctx, err)
		return domain.MoveParams{}, false
	}

	return domain.MoveParams{
		AccountID:   uri.ID,
		Amount:      req.Amount,
		Description: req.Description,
	}, true
}

// Deposit handles http request to deposit money into account.
func (h *Handler) Deposit(gctx *gin.Context) {
	arg, ok := h.bindMove(gctx)
	if !ok {
		return
	}

	account, err := h.service.Deposit(gctx.Request.Context(), arg)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{account}})
}

// Withdraw handles http request to withdraw money from account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	arg, ok := h.bindMove(gctx)
	if !ok {
		return
	}

	account, err := h.service.Withdraw(gctx.Request.Context(), arg)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{account}})
}

type historyRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// History handles http request to list the latest account transactions.
func (h *Handler) History(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var (
		uri uriRequest
		req historyRequest
	)

	if err := gctx.ShouldBindUri(&uri); err != nil {
		badRequest(gctx, err)
		return
	}

	if err := gctx.ShouldBindQuery(&req); err != nil {
		badRequest(gctx, err)
		return
	}

	history, err := h.service.History(ctx, uri.ID, req.Limit)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataHistory{history}})
}
