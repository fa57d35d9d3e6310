package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/tooldelivery"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

// Set at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
)

const shutdownTimeout = 5 * time.Second

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledger",
		Short:   "In-memory bank ledger exposed as tools, resources and prompts",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand(), newToolsCommand())

	return rootCmd
}

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "./configs", "directory holding app.env")

	return cmd
}

func newToolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools the server exposes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range tooldelivery.Definitions() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", d.Name, d.Description); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	config, err := configpkg.Load(configPath)
	if err != nil {
		log.Error().Err(err).Msg("cannot load config")
		return err
	}

	logger := middleware.CreateLogger(config)

	if config.Environement != configpkg.EnvDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := httpserver.New(logger, config)
	if err != nil {
		logger.Error().Err(err).Msg("cannot create server")
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info().Str("address", config.ServerAddress).Msg("LEDGER SERVER HAS STARTED")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("cannot start server")
			return err
		}

		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("cannot shut down server")
		return err
	}

	logger.Info().Msg("LEDGER SERVER HAS STOPPED")

	return nil
}
