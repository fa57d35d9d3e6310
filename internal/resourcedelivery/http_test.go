package resourcedelivery

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newEngine(s Service) *gin.Engine {
	h := NewHandler(s)

	r := gin.New()
	r.GET("/resources", h.List)
	r.GET("/resources/read", h.Read)

	return r
}

func read(t *testing.T, r *gin.Engine, uri string) (int, readResponse) {
	t.Helper()

	target := "/resources/read"
	if uri != "" {
		target += "?" + url.Values{"uri": {uri}}.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, req)

	var res readResponse
	if recorder.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	}

	return recorder.Code, res
}

func TestList(t *testing.T) {
	t.Parallel()

	req, err := http.NewRequest(http.MethodGet, "/resources", nil)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	newEngine(nil).ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got listResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Len(t, got.Resources, 1)
	require.Equal(t, AccountsURI, got.Resources[0].URI)
	require.Len(t, got.Templates, 2)
	require.Equal(t, AccountURITemplate, got.Templates[0].URITemplate)
	require.Equal(t, BalanceURITemplate, got.Templates[1].URITemplate)
}

func TestRead(t *testing.T) {
	t.Parallel()

	alice := domain.Account{
		ID:        "ACC000001",
		Name:      "Alice",
		Balance:   decimal.RequireFromString("70"),
		CreatedAt: time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC),
	}
	bob := domain.Account{
		ID:        "ACC000002",
		Name:      "Bob",
		Balance:   decimal.RequireFromString("80.125"),
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	notFound := domain.NewNotFoundError("ACC000404", domain.SideNone)

	testCases := []struct {
		name       string
		uri        string
		buildStubs func(s *MockService)
		wantCode   int
		wantText   string
	}{
		{
			name: "Accounts",
			uri:  AccountsURI,
			buildStubs: func(s *MockService) {
				s.EXPECT().ListAccounts(gomock.Any()).Times(1).Return([]domain.Account{alice, bob}, nil)
			},
			wantCode: http.StatusOK,
			wantText: "ACC000001: Alice ($70.00)\nACC000002: Bob ($80.12)",
		},
		{
			name: "NoAccounts",
			uri:  AccountsURI,
			buildStubs: func(s *MockService) {
				s.EXPECT().ListAccounts(gomock.Any()).Times(1).Return([]domain.Account{}, nil)
			},
			wantCode: http.StatusOK,
			wantText: "No accounts available.",
		},
		{
			name: "Account",
			uri:  "bank://account/ACC000001",
			buildStubs: func(s *MockService) {
				s.EXPECT().GetAccount(gomock.Any(), gomock.Eq(alice.ID)).Times(1).Return(alice, nil)
			},
			wantCode: http.StatusOK,
			wantText: "Account: ACC000001\nHolder: Alice\nBalance: $70.00\nOpened: 2024-12-31",
		},
		{
			name: "AccountNotFound",
			uri:  "bank://account/ACC000404",
			buildStubs: func(s *MockService) {
				s.EXPECT().GetAccount(gomock.Any(), gomock.Eq("ACC000404")).Times(1).Return(domain.Account{}, notFound)
			},
			wantCode: http.StatusOK,
			wantText: "Account ACC000404 not found.",
		},
		{
			name: "Balance",
			uri:  "bank://account/ACC000002/balance",
			buildStubs: func(s *MockService) {
				s.EXPECT().GetAccount(gomock.Any(), gomock.Eq(bob.ID)).Times(1).Return(bob, nil)
			},
			wantCode: http.StatusOK,
			wantText: "80.12",
		},
		{
			name: "BalanceNotFound",
			uri:  "bank://account/ACC000404/balance",
			buildStubs: func(s *MockService) {
				s.EXPECT().GetAccount(gomock.Any(), gomock.Eq("ACC000404")).Times(1).Return(domain.Account{}, notFound)
			},
			wantCode: http.StatusOK,
			wantText: "0.00",
		},
		{
			name: "InternalError",
			uri:  "bank://account/ACC000001",
			buildStubs: func(s *MockService) {
				s.EXPECT().GetAccount(gomock.Any(), gomock.Any()).Times(1).Return(domain.Account{}, errorspkg.ErrInternal)
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:       "UnknownScheme",
			uri:        "http://accounts",
			buildStubs: func(s *MockService) {},
			wantCode:   http.StatusNotFound,
		},
		{
			name:       "UnknownPath",
			uri:        "bank://account/ACC000001/history",
			buildStubs: func(s *MockService) {},
			wantCode:   http.StatusNotFound,
		},
		{
			name:       "EmptyID",
			uri:        "bank://account/",
			buildStubs: func(s *MockService) {},
			wantCode:   http.StatusNotFound,
		},
		{
			name:       "MissingURI",
			buildStubs: func(s *MockService) {},
			wantCode:   http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s := NewMockService(ctrl)
			tc.buildStubs(s)

			code, res := read(t, newEngine(s), tc.uri)
			require.Equal(t, tc.wantCode, code)

			if tc.wantCode != http.StatusOK {
				return
			}

			require.Equal(t, []Contents{{URI: tc.uri, MimeType: "text/plain", Text: tc.wantText}}, res.Contents)
		})
	}
}
