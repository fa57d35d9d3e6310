package tooldelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/ledgerrepo"
	"github.com/go-petr/pet-ledger/internal/ledgerservice"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

var testTime = time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if err := web.RegisterValidators(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func newEngine(s Service) *gin.Engine {
	h := NewHandler(s)

	r := gin.New()
	r.GET("/tools", h.List)
	r.POST("/tools/:name", h.Call)

	return r
}

func newLedgerEngine() *gin.Engine {
	repo := ledgerrepo.NewRepoMem(ledgerrepo.WithClock(func() time.Time { return testTime }))
	return newEngine(ledgerservice.New(repo))
}

func call(t *testing.T, r *gin.Engine, name string, args any) (int, Result) {
	t.Helper()

	body, err := json.Marshal(map[string]any{"arguments": args})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/tools/"+name, bytes.NewReader(body))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	var res Result
	if recorder.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	}

	return recorder.Code, res
}

func text(t *testing.T, res Result) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	require.Equal(t, "text", res.Content[0].Type)

	return res.Content[0].Text
}

func mustCall(t *testing.T, r *gin.Engine, name string, args any) string {
	t.Helper()

	code, res := call(t, r, name, args)
	require.Equal(t, http.StatusOK, code)
	require.False(t, res.IsError, text(t, res))

	return text(t, res)
}

func mustFail(t *testing.T, r *gin.Engine, name string, args any) string {
	t.Helper()

	code, res := call(t, r, name, args)
	require.Equal(t, http.StatusOK, code)
	require.True(t, res.IsError)

	return text(t, res)
}

func TestList(t *testing.T) {
	t.Parallel()

	r := newEngine(nil)

	req, err := http.NewRequest(http.MethodGet, "/tools", nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Tools []struct {
			Name        string         `json:"name"`
			Description string         `json:"description"`
			InputSchema map[string]any `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))

	names := make([]string, 0, len(got.Tools))
	for _, tool := range got.Tools {
		names = append(names, tool.Name)
		require.NotEmpty(t, tool.Description)
		require.Equal(t, "object", tool.InputSchema["type"])
	}

	require.Equal(t, []string{
		ToolCreateAccount,
		ToolGetAccountInfo,
		ToolListAccounts,
		ToolCloseAccount,
		ToolDeposit,
		ToolWithdraw,
		ToolTransfer,
		ToolGetTransactionHistory,
	}, names)
}

func TestAccountLifecycle(t *testing.T) {
	t.Parallel()

	r := newLedgerEngine()

	require.Equal(t, "No accounts found.", mustCall(t, r, ToolListAccounts, nil))

	require.Equal(t,
		"Account created successfully. Account ID: ACC000001, Balance: $100.00",
		mustCall(t, r, ToolCreateAccount, map[string]any{"name": "John Doe", "initial_deposit": 100}))

	require.Equal(t,
		"Account created successfully. Account ID: ACC000002, Balance: $0.00",
		mustCall(t, r, ToolCreateAccount, map[string]any{"name": "Jane Roe"}))

	require.Equal(t,
		"Account ID: ACC000001\nName: John Doe\nBalance: $100.00\nCreated: 2025-01-02T15:04:05Z\nTransaction count: 1",
		mustCall(t, r, ToolGetAccountInfo, map[string]any{"account_id": "ACC000001"}))

	require.Equal(t,
		"Account List:\n"+strings.Repeat("-", 40)+"\n  ACC000001: John Doe - $100.00\n  ACC000002: Jane Roe - $0.00",
		mustCall(t, r, ToolListAccounts, map[string]any{}))

	require.Equal(t,
		"Error: Cannot close account with balance $100.00. Please withdraw all funds first.",
		mustFail(t, r, ToolCloseAccount, map[string]any{"account_id": "ACC000001"}))

	require.Equal(t,
		"Account ACC000002 has been closed successfully.",
		mustCall(t, r, ToolCloseAccount, map[string]any{"account_id": "ACC000002"}))

	require.Equal(t,
		"Error: Account ACC000002 not found.",
		mustFail(t, r, ToolGetAccountInfo, map[string]any{"account_id": "ACC000002"}))

	require.Equal(t,
		"Account created successfully. Account ID: ACC000003, Balance: $5.50",
		mustCall(t, r, ToolCreateAccount, map[string]any{"name": "Late Comer", "initial_deposit": 5.5}))
}

func TestMoneyMovement(t *testing.T) {
	t.Parallel()

	r := newLedgerEngine()

	mustCall(t, r, ToolCreateAccount, map[string]any{"name": "Alice", "initial_deposit": 100})
	mustCall(t, r, ToolCreateAccount, map[string]any{"name": "Bob", "initial_deposit": 50})

	require.Equal(t,
		"Deposited $25.00 to ACC000001. New balance: $125.00",
		mustCall(t, r, ToolDeposit, map[string]any{"account_id": "ACC000001", "amount": 25}))

	require.Equal(t,
		"Withdrew $20.00 from ACC000001. New balance: $105.00",
		mustCall(t, r, ToolWithdraw, map[string]any{"account_id": "ACC000001", "amount": 20, "description": "ATM"}))

	require.Equal(t,
		"Transferred $30.00 from ACC000001 to ACC000002.\nSource balance: $75.00\nDestination balance: $80.00",
		mustCall(t, r, ToolTransfer, map[string]any{
			"from_account_id": "ACC000001",
			"to_account_id":   "ACC000002",
			"amount":          30,
		}))

	require.Equal(t,
		"Error: Insufficient funds. Available balance: $80.00",
		mustFail(t, r, ToolWithdraw, map[string]any{"account_id": "ACC000002", "amount": 500}))

	require.Equal(t,
		"Error: Insufficient funds. Available balance: $75.00",
		mustFail(t, r, ToolTransfer, map[string]any{
			"from_account_id": "ACC000001",
			"to_account_id":   "ACC000002",
			"amount":          75.01,
		}))

	require.Equal(t,
		"Error: Cannot transfer to the same account.",
		mustFail(t, r, ToolTransfer, map[string]any{
			"from_account_id": "ACC000001",
			"to_account_id":   "ACC000001",
			"amount":          1,
		}))

	require.Equal(t,
		"Error: Source account ACC000404 not found.",
		mustFail(t, r, ToolTransfer, map[string]any{
			"from_account_id": "ACC000404",
			"to_account_id":   "ACC000001",
			"amount":          1,
		}))

	require.Equal(t,
		"Error: Destination account ACC000404 not found.",
		mustFail(t, r, ToolTransfer, map[string]any{
			"from_account_id": "ACC000001",
			"to_account_id":   "ACC000404",
			"amount":          1,
		}))

	require.Equal(t,
		"Error: Account ACC000404 not found.",
		mustFail(t, r, ToolDeposit, map[string]any{"account_id": "ACC000404", "amount": 1}))

	rule := strings.Repeat("-", 50)
	require.Equal(t,
		"Transaction History for ACC000001:\n"+rule+"\n"+
			"  2025-01-02 15:04 | -$30.00 | Transfer to ACC000002\n"+
			"  2025-01-02 15:04 | -$20.00 | ATM\n"+
			"  2025-01-02 15:04 | +$25.00 | Deposit\n"+
			"  2025-01-02 15:04 | +$100.00 | Initial deposit\n"+
			rule+"\nCurrent Balance: $75.00",
		mustCall(t, r, ToolGetTransactionHistory, map[string]any{"account_id": "ACC000001"}))

	require.Equal(t,
		"Transaction History for ACC000002:\n"+rule+"\n"+
			"  2025-01-02 15:04 | +$30.00 | Transfer from ACC000001\n"+
			rule+"\nCurrent Balance: $80.00",
		mustCall(t, r, ToolGetTransactionHistory, map[string]any{"account_id": "ACC000002", "limit": 1}))

	mustCall(t, r, ToolCreateAccount, map[string]any{"name": "Empty"})
	require.Equal(t,
		"No transactions found for account ACC000003.",
		mustCall(t, r, ToolGetTransactionHistory, map[string]any{"account_id": "ACC000003"}))
}

func TestCallBadRequest(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		tool     string
		args     any
		wantCode int
	}{
		{
			name:     "UnknownTool",
			tool:     "rob_bank",
			args:     map[string]any{},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "MissingName",
			tool:     ToolCreateAccount,
			args:     map[string]any{"initial_deposit": 10},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "NegativeInitialDeposit",
			tool:     ToolCreateAccount,
			args:     map[string]any{"name": "John", "initial_deposit": -1},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "HugeDeposit",
			tool:     ToolDeposit,
			args:     map[string]any{"account_id": "ACC000001", "amount": json.RawMessage("1e30000000")},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "TinyInitialDeposit",
			tool:     ToolCreateAccount,
			args:     map[string]any{"name": "John", "initial_deposit": json.RawMessage("1e-30000000")},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "FractionOfCentTransfer",
			tool:     ToolTransfer,
			args:     map[string]any{"from_account_id": "ACC000001", "to_account_id": "ACC000002", "amount": 0.001},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "TooLargeWithdrawal",
			tool:     ToolWithdraw,
			args:     map[string]any{"account_id": "ACC000001", "amount": "1000000000000000"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "ZeroDeposit",
			tool:     ToolDeposit,
			args:     map[string]any{"account_id": "ACC000001", "amount": 0},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "NegativeWithdrawal",
			tool:     ToolWithdraw,
			args:     map[string]any{"account_id": "ACC000001", "amount": -5},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "AmountNotNumber",
			tool:     ToolTransfer,
			args:     map[string]any{"from_account_id": "ACC000001", "to_account_id": "ACC000002", "amount": "lots"},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "LimitTooLarge",
			tool:     ToolGetTransactionHistory,
			args:     map[string]any{"account_id": "ACC000001", "limit": 101},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "LimitZero",
			tool:     ToolGetTransactionHistory,
			args:     map[string]any{"account_id": "ACC000001", "limit": 0},
			wantCode: http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := NewMockService(ctrl)

			code, _ := call(t, newEngine(s), tc.tool, tc.args)
			require.Equal(t, tc.wantCode, code)
		})
	}
}

func TestCallRejectsHugeAmountMessage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := NewMockService(ctrl)
	s.EXPECT().Deposit(gomock.Any(), gomock.Any()).Times(0)

	body := []byte(`{"arguments":{"account_id":"ACC000001","amount":1e30000000}}`)

	req, err := http.NewRequest(http.MethodPost, "/tools/"+ToolDeposit, bytes.NewReader(body))
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	newEngine(s).ServeHTTP(recorder, req)

	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var got web.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "Amount must be a whole number of cents below 1000000000000000", got.Error)
}

func TestCallInternalError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := NewMockService(ctrl)
	s.EXPECT().ListAccounts(gomock.Any()).Times(1).Return(nil, errorspkg.ErrInternal)

	r := newEngine(s)

	req, err := http.NewRequest(http.MethodPost, "/tools/"+ToolListAccounts, nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	var got web.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, errorspkg.ErrInternal.Error(), got.Error)
}
