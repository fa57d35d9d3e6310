package tooldelivery

import (
	"github.com/shopspring/decimal"
)

// Tool names.
const (
	ToolCreateAccount         = "create_account"
	ToolGetAccountInfo        = "get_account_info"
	ToolListAccounts          = "list_accounts"
	ToolCloseAccount          = "close_account"
	ToolDeposit               = "deposit"
	ToolWithdraw              = "withdraw"
	ToolTransfer              = "transfer"
	ToolGetTransactionHistory = "get_transaction_history"
)

// Definition describes a tool to clients.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type createAccountArgs struct {
	Name           string          `json:"name" binding:"required"`
	InitialDeposit decimal.Decimal `json:"initial_deposit" binding:"money,gte=0"`
}

type accountArgs struct {
	AccountID string `json:"account_id" binding:"required"`
}

type moveArgs struct {
	AccountID   string          `json:"account_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"money,gt=0"`
	Description string          `json:"description"`
}

type transferArgs struct {
	FromAccountID string          `json:"from_account_id" binding:"required"`
	ToAccountID   string          `json:"to_account_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"money,gt=0"`
	Description   string          `json:"description"`
}

type historyArgs struct {
	AccountID string `json:"account_id" binding:"required"`
	Limit     *int   `json:"limit" binding:"omitempty,min=1,max=100"`
}

func objectSchema(required []string, properties map[string]any) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}

	if len(required) > 0 {
		schema["required"] = required
	}

	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func numberProp(description string, bounds map[string]any) map[string]any {
	p := map[string]any{"type": "number", "description": description}
	for k, v := range bounds {
		p[k] = v
	}

	return p
}

// Definitions returns all tools in the order they are listed to clients.
func Definitions() []Definition {
	return []Definition{
		{
			Name:        ToolCreateAccount,
			Description: "Create a new bank account with an optional initial deposit.",
			InputSchema: objectSchema([]string{"name"}, map[string]any{
				"name":            stringProp("Name of the account holder"),
				"initial_deposit": numberProp("Initial deposit amount", map[string]any{"minimum": 0, "default": 0}),
			}),
		},
		{
			Name:        ToolGetAccountInfo,
			Description: "Get detailed information about a bank account.",
			InputSchema: objectSchema([]string{"account_id"}, map[string]any{
				"account_id": stringProp("The account ID to retrieve"),
			}),
		},
		{
			Name:        ToolListAccounts,
			Description: "List all bank accounts.",
			InputSchema: objectSchema(nil, map[string]any{}),
		},
		{
			Name:        ToolCloseAccount,
			Description: "Close a bank account. Account must have zero balance.",
			InputSchema: objectSchema([]string{"account_id"}, map[string]any{
				"account_id": stringProp("The account ID to close"),
			}),
		},
		{
			Name:        ToolDeposit,
			Description: "Deposit money into a bank account.",
			InputSchema: objectSchema([]string{"account_id", "amount"}, map[string]any{
				"account_id":  stringProp("The account ID to deposit into"),
				"amount":      numberProp("Amount to deposit", map[string]any{"exclusiveMinimum": 0}),
				"description": stringProp("Transaction description"),
			}),
		},
		{
			Name:        ToolWithdraw,
			Description: "Withdraw money from a bank account.",
			InputSchema: objectSchema([]string{"account_id", "amount"}, map[string]any{
				"account_id":  stringProp("The account ID to withdraw from"),
				"amount":      numberProp("Amount to withdraw", map[string]any{"exclusiveMinimum": 0}),
				"description": stringProp("Transaction description"),
			}),
		},
		{
			Name:        ToolTransfer,
			Description: "Transfer money between two bank accounts.",
			InputSchema: objectSchema([]string{"from_account_id", "to_account_id", "amount"}, map[string]any{
				"from_account_id": stringProp("The source account ID"),
				"to_account_id":   stringProp("The destination account ID"),
				"amount":          numberProp("Amount to transfer", map[string]any{"exclusiveMinimum": 0}),
				"description":     stringProp("Transfer description"),
			}),
		},
		{
			Name:        ToolGetTransactionHistory,
			Description: "Get the transaction history for a bank account.",
			InputSchema: objectSchema([]string{"account_id"}, map[string]any{
				"account_id": stringProp("The account ID to get history for"),
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum number of transactions to return",
					"minimum":     1,
					"maximum":     100,
					"default":     10,
				},
			}),
		},
	}
}
