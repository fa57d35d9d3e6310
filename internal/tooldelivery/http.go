// Package tooldelivery exposes the ledger operations as named tools.
//
// A tool call carries a JSON object of arguments and always answers with a text result.
// Caller mistakes such as an unknown account come back as results flagged with isError,
// only malformed arguments are rejected with 400.
package tooldelivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// ErrToolNotFound indicates that no tool is registered under the requested name.
var ErrToolNotFound = errors.New("tool not found")

// Service provides service layer interface needed by tool delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package tooldelivery
type Service interface {
	CreateAccount(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	GetAccount(ctx context.Context, id string) (domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CloseAccount(ctx context.Context, id string) (domain.Account, error)
	Deposit(ctx context.Context, arg domain.MoveParams) (domain.Account, error)
	Withdraw(ctx context.Context, arg domain.MoveParams) (domain.Account, error)
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferResult, error)
	History(ctx context.Context, id string, limit int) (domain.History, error)
}

// Content is a single piece of a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result is the outcome of a tool call.
type Result struct {
	Content           []Content `json:"content"`
	StructuredContent any       `json:"structuredContent,omitempty"`
	IsError           bool      `json:"isError"`
}

func textResult(text string, structured any) Result {
	return Result{
		Content:           []Content{{Type: "text", Text: text}},
		StructuredContent: structured,
	}
}

type argumentsError struct {
	msg string
}

func (e *argumentsError) Error() string {
	return e.msg
}

type callFunc func(ctx context.Context, raw json.RawMessage) (Result, error)

// Handler facilitates tool delivery layer logic.
type Handler struct {
	service Service
	calls   map[string]callFunc
}

// NewHandler returns tool handler.
func NewHandler(s Service) *Handler {
	h := &Handler{service: s}

	h.calls = map[string]callFunc{
		ToolCreateAccount:         h.createAccount,
		ToolGetAccountInfo:        h.getAccountInfo,
		ToolListAccounts:          h.listAccounts,
		ToolCloseAccount:          h.closeAccount,
		ToolDeposit:               h.deposit,
		ToolWithdraw:              h.withdraw,
		ToolTransfer:              h.transfer,
		ToolGetTransactionHistory: h.history,
	}

	return h
}

type listResponse struct {
	Tools []Definition `json:"tools"`
}

// List handles http request to list tools.
func (h *Handler) List(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, listResponse{Tools: Definitions()})
}

type callRequest struct {
	Arguments json.RawMessage `json:"arguments"`
}

// Call handles http request to call the tool named in the path.
func (h *Handler) Call(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	name := gctx.Param("name")

	call, ok := h.calls[name]
	if !ok {
		l.Info().Str("tool", name).Err(ErrToolNotFound).Send()
		gctx.JSON(http.StatusNotFound, web.Error(ErrToolNotFound))

		return
	}

	var req callRequest
	if gctx.Request.ContentLength != 0 {
		if err := gctx.ShouldBindJSON(&req); err != nil {
			l.Info().Err(err).Send()
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}
	}

	res, err := call(ctx, req.Arguments)
	if err != nil {
		var argErr *argumentsError
		if errors.As(err, &argErr) {
			l.Info().Str("tool", name).Err(err).Send()
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		l.Error().Str("tool", name).Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, res)
}

// decode unmarshals and validates the tool arguments into dst.
func decode(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return &argumentsError{msg: err.Error()}
	}

	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return &argumentsError{msg: web.BindingErrorMsg(err)}
	}

	return nil
}

// failure turns a domain error into an error result and passes other errors through.
func failure(err error) (Result, error) {
	text, ok := errorText(err)
	if !ok {
		return Result{}, err
	}

	res := textResult(text, nil)
	res.IsError = true

	return res, nil
}

func (h *Handler) createAccount(ctx context.Context, raw json.RawMessage) (Result, error) {
	var args createAccountArgs
	if err := decode(raw, &args); err != nil {
		return Result{}, err
	}

	account, err := h.service.CreateAccount(ctx, domain.CreateAccountParams{
		Name:           args.Name,
		InitialDeposit: args.InitialDeposit,
	})
	if err != nil {
		return failure(err)
	}

	return textResult(accountCreatedText(account), account), nil
}

func (h *Handler) getAccountInfo(ctx context.Context, raw json.RawMessage) (Result, error) {
	var args accountArgs
	if err := decode(raw, &args); err != nil {
		return Result{}, err
	}

	account, err := h.service.GetAccount(ctx, args.AccountID)
	if err != nil {
		return failure(err)
	}

	return textResult(accountInfoText(account), account), nil
}

type accountsData struct {
	Accounts []domain.Account `json:"accounts"`
}

func (h *Handler) listAccounts(ctx context.Context, _ json.RawMessage) (Result, error) {
	accounts, err := h.service.ListAccounts(ctx)
	if err != nil {
		return failure(err)
	}

	return textResult(accountListText(accounts), accountsData{Accounts: accounts}), nil
}

func (h *Handler) closeAccount(ctx context.Context, raw json.RawMessage) (Result, error) {
	var args accountArgs
	if err := decode(raw, &args); err != nil {
		return Result{}, err
	}

	account, err := h.service.CloseAccount(ctx, args.AccountID)
	if err != nil {
		return failure(err)
	}

	return textResult(accountClosedText(args.AccountID), account), nil
}

func (h *Handler) deposit(ctx context.Context, raw json.RawMessage) (Result, error) {
	var args moveArgs
	if err := decode(raw, &args); err != nil {
		return Result{}, err
	}

	arg := domain.MoveParams{
		AccountID:   args.AccountID,
		Amount:      args.Amount,
		Description: args.Description,
	}

	account, err := h.service.Deposit(ctx, arg)
	if err != nil {
		return failure(err)
	}

	return textResult(depositText(arg, account), account), nil
}

func (h *Handler) withdraw(ctx context.Context, raw json.RawMessage) (Result, error) {
	var args moveArgs
	if err := decode(raw, &args); err != nil {
		return Result{}, err
	}

	arg := domain.MoveParams{
		AccountID:   args.AccountID,
		Amount:      args.Amount,
		Description: args.Description,
	}

	account, err := h.service.Withdraw(ctx, arg)
	if err != nil {
		return failure(err)
	}

	return textResult(withdrawText(arg, account), account), nil
}

func (h *Handler) transfer(ctx context.Context, raw json.RawMessage) (Result, error) {
	var args transferArgs
	if err := decode(raw, &args); err != nil {
		return Result{}, err
	}

	arg := domain.CreateTransferParams{
		FromAccountID: args.FromAccountID,
		ToAccountID:   args.ToAccountID,
		Amount:        args.Amount,
		Description:   args.Description,
	}

	result, err := h.service.Transfer(ctx, arg)
	if err != nil {
		return failure(err)
	}

	return textResult(transferText(arg, result), result), nil
}

func (h *Handler) history(ctx context.Context, raw json.RawMessage) (Result, error) {
	var args historyArgs
	if err := decode(raw, &args); err != nil {
		return Result{}, err
	}

	limit := domain.DefaultHistoryLimit
	if args.Limit != nil {
		limit = *args.Limit
	}

	history, err := h.service.History(ctx, args.AccountID, limit)
	if err != nil {
		return failure(err)
	}

	return textResult(historyText(history), history), nil
}
