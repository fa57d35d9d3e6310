// Package resourcedelivery exposes read-only bank:// views of the ledger.
package resourcedelivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/currencypkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Resource URIs.
const (
	Scheme              = "bank://"
	AccountsURI         = Scheme + "accounts"
	AccountURITemplate  = Scheme + "account/{account_id}"
	BalanceURITemplate  = Scheme + "account/{account_id}/balance"
	accountPrefix       = Scheme + "account/"
	balanceSuffix       = "/balance"
	textMimeType        = "text/plain"
	openedDateLayout    = "2006-01-02"
	zeroBalanceFallback = "0.00"
)

// ErrResourceNotFound indicates that the uri does not name any resource.
var ErrResourceNotFound = errors.New("resource not found")

// Service provides service layer interface needed by resource delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package resourcedelivery
type Service interface {
	GetAccount(ctx context.Context, id string) (domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// Handler facilitates resource delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns resource handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// Resource describes a concrete resource.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

// Template describes a family of resources addressed by an uri template.
type Template struct {
	URITemplate string `json:"uriTemplate"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

type listResponse struct {
	Resources []Resource `json:"resources"`
	Templates []Template `json:"resourceTemplates"`
}

// List handles http request to list resources and resource templates.
func (h *Handler) List(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, listResponse{
		Resources: []Resource{{
			URI:         AccountsURI,
			Name:        "accounts",
			Description: "Get a list of all bank accounts as a resource.",
			MimeType:    textMimeType,
		}},
		Templates: []Template{
			{
				URITemplate: AccountURITemplate,
				Name:        "account",
				Description: "Get details of a specific bank account as a resource.",
				MimeType:    textMimeType,
			},
			{
				URITemplate: BalanceURITemplate,
				Name:        "balance",
				Description: "Get just the balance of an account as a resource.",
				MimeType:    textMimeType,
			},
		},
	})
}

// Contents is the body of a read resource.
type Contents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

type readResponse struct {
	Contents []Contents `json:"contents"`
}

type readRequest struct {
	URI string `form:"uri" binding:"required"`
}

// Read handles http request to read the resource given by the uri query parameter.
func (h *Handler) Read(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req readRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	text, err := h.read(ctx, req.URI)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			l.Info().Str("uri", req.URI).Err(err).Send()
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		}

		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, readResponse{
		Contents: []Contents{{URI: req.URI, MimeType: textMimeType, Text: text}},
	})
}

func (h *Handler) read(ctx context.Context, uri string) (string, error) {
	if uri == AccountsURI {
		return h.accounts(ctx)
	}

	if !strings.HasPrefix(uri, accountPrefix) {
		return "", ErrResourceNotFound
	}

	rest := strings.TrimPrefix(uri, accountPrefix)

	if strings.HasSuffix(rest, balanceSuffix) {
		id := strings.TrimSuffix(rest, balanceSuffix)
		if id == "" || strings.Contains(id, "/") {
			return "", ErrResourceNotFound
		}

		return h.balance(ctx, id)
	}

	if rest == "" || strings.Contains(rest, "/") {
		return "", ErrResourceNotFound
	}

	return h.account(ctx, rest)
}

func (h *Handler) accounts(ctx context.Context) (string, error) {
	accounts, err := h.service.ListAccounts(ctx)
	if err != nil {
		return "", err
	}

	if len(accounts) == 0 {
		return "No accounts available.", nil
	}

	lines := make([]string, 0, len(accounts))
	for _, a := range accounts {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", a.ID, a.Name, currencypkg.Format(a.Balance)))
	}

	return strings.Join(lines, "\n"), nil
}

func (h *Handler) account(ctx context.Context, id string) (string, error) {
	a, err := h.service.GetAccount(ctx, id)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Sprintf("Account %s not found.", id), nil
	}

	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Account: %s\nHolder: %s\nBalance: %s\nOpened: %s",
		a.ID, a.Name, currencypkg.Format(a.Balance), a.CreatedAt.Format(openedDateLayout)), nil
}

// balance reports unknown accounts as holding nothing.
func (h *Handler) balance(ctx context.Context, id string) (string, error) {
	a, err := h.service.GetAccount(ctx, id)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return zeroBalanceFallback, nil
	}

	if err != nil {
		return "", err
	}

	return currencypkg.Fixed(a.Balance), nil
}
