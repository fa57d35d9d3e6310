// Package promptdelivery serves prompt templates for common ledger requests.
package promptdelivery

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/pkg/web"
)

var (
	// ErrPromptNotFound indicates that no prompt is registered under the requested name.
	ErrPromptNotFound = errors.New("prompt not found")
	// ErrMissingArgument indicates that a required prompt argument is absent.
	ErrMissingArgument = errors.New("missing required argument")
)

// Argument describes a single prompt argument.
type Argument struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     string `json:"-"`
}

// Prompt is a named text template.
type Prompt struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Arguments   []Argument `json:"arguments"`

	render func(args map[string]string) string
}

// Prompts returns all registered prompts.
func Prompts() []Prompt {
	return []Prompt{
		{
			Name:        "open_account",
			Description: "Prompt template for opening a new bank account.",
			Arguments: []Argument{
				{Name: "name", Description: "Name of the account holder", Required: true},
				{Name: "initial_deposit", Description: "Initial deposit amount", Default: "0"},
			},
			render: func(args map[string]string) string {
				return fmt.Sprintf("Please open a new bank account for %s with an initial deposit of $%s.",
					args["name"], args["initial_deposit"])
			},
		},
		{
			Name:        "check_balance",
			Description: "Prompt template for checking account balance.",
			Arguments: []Argument{
				{Name: "account_id", Description: "The account ID to check", Required: true},
			},
			render: func(args map[string]string) string {
				return fmt.Sprintf("Please check the balance for account %s.", args["account_id"])
			},
		},
		{
			Name:        "make_transfer",
			Description: "Prompt template for making a transfer between accounts.",
			Arguments: []Argument{
				{Name: "from_account", Description: "The source account ID", Required: true},
				{Name: "to_account", Description: "The destination account ID", Required: true},
				{Name: "amount", Description: "Amount to transfer", Required: true},
			},
			render: func(args map[string]string) string {
				return fmt.Sprintf("Please transfer $%s from account %s to account %s.",
					args["amount"], args["from_account"], args["to_account"])
			},
		},
	}
}

// Render fills the prompt template with args, applying defaults for optional arguments.
func (p Prompt) Render(args map[string]string) (string, error) {
	values := make(map[string]string, len(p.Arguments))

	for _, a := range p.Arguments {
		v, ok := args[a.Name]
		if !ok || v == "" {
			if a.Required {
				return "", fmt.Errorf("%w: %s", ErrMissingArgument, a.Name)
			}

			v = a.Default
		}

		values[a.Name] = v
	}

	return p.render(values), nil
}

// Handler facilitates prompt delivery layer logic.
type Handler struct {
	prompts map[string]Prompt
	order   []Prompt
}

// NewHandler returns prompt handler.
func NewHandler() *Handler {
	h := &Handler{
		prompts: make(map[string]Prompt),
		order:   Prompts(),
	}

	for _, p := range h.order {
		h.prompts[p.Name] = p
	}

	return h
}

type listResponse struct {
	Prompts []Prompt `json:"prompts"`
}

// List handles http request to list prompts.
func (h *Handler) List(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, listResponse{Prompts: h.order})
}

type getRequest struct {
	Arguments map[string]string `json:"arguments"`
}

// Content is the text body of a prompt message.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Message is a single rendered prompt message.
type Message struct {
	Role    string  `json:"role"`
	Content Content `json:"content"`
}

type getResponse struct {
	Description string    `json:"description"`
	Messages    []Message `json:"messages"`
}

// Get handles http request to render the prompt named in the path.
func (h *Handler) Get(gctx *gin.Context) {
	l := zerolog.Ctx(gctx.Request.Context())

	name := gctx.Param("name")

	p, ok := h.prompts[name]
	if !ok {
		l.Info().Str("prompt", name).Err(ErrPromptNotFound).Send()
		gctx.JSON(http.StatusNotFound, web.Error(ErrPromptNotFound))

		return
	}

	var req getRequest
	if gctx.Request.ContentLength != 0 {
		if err := gctx.ShouldBindJSON(&req); err != nil {
			l.Info().Err(err).Send()
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}
	}

	text, err := p.Render(req.Arguments)
	if err != nil {
		l.Info().Str("prompt", name).Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, getResponse{
		Description: p.Description,
		Messages: []Message{{
			Role:    "user",
			Content: Content{Type: "text", Text: text},
		}},
	})
}
