// Package httpserver manages server creation and api routing.
package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/accountdelivery"
	"github.com/go-petr/pet-ledger/internal/ledgerrepo"
	"github.com/go-petr/pet-ledger/internal/ledgerservice"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/promptdelivery"
	"github.com/go-petr/pet-ledger/internal/resourcedelivery"
	"github.com/go-petr/pet-ledger/internal/tooldelivery"
	"github.com/go-petr/pet-ledger/internal/transferdelivery"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Server holds the ledger store, handlers router and configuration.
type Server struct {
	Repo   *ledgerrepo.RepoMem
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

type infoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// New creates Server type with a fresh in-memory ledger and all routes.
func New(logger zerolog.Logger, config configpkg.Config, opts ...ledgerrepo.Option) (*Server, error) {
	if err := web.RegisterValidators(); err != nil {
		return nil, err
	}

	repo := ledgerrepo.NewRepoMem(opts...)
	service := ledgerservice.New(repo)

	toolHandler := tooldelivery.NewHandler(service)
	accountHandler := accountdelivery.NewHandler(service)
	transferHandler := transferdelivery.NewHandler(service)
	resourceHandler := resourcedelivery.NewHandler(service)
	promptHandler := promptdelivery.NewHandler()

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, infoResponse{Name: config.ServerName, Version: config.ServerVersion})
	})

	engine.GET("/tools", toolHandler.List)
	engine.POST("/tools/:name", toolHandler.Call)

	engine.GET("/resources", resourceHandler.List)
	engine.GET("/resources/read", resourceHandler.Read)

	engine.GET("/prompts", promptHandler.List)
	engine.POST("/prompts/:name", promptHandler.Get)

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts", accountHandler.List)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.DELETE("/accounts/:id", accountHandler.Close)
	engine.POST("/accounts/:id/deposits", accountHandler.Deposit)
	engine.POST("/accounts/:id/withdrawals", accountHandler.Withdraw)
	engine.GET("/accounts/:id/transactions", accountHandler.History)

	engine.POST("/transfers", transferHandler.Create)

	server := &Server{
		Repo:   repo,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
