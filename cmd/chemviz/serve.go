package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "chemviz/docs"
	"chemviz/internal/handlers"
	"chemviz/internal/logger"
	"chemviz/internal/server"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// @title        chemviz dashboard API
// @version      1.0
// @description  Local dashboard over the chemical equipment analysis backend.
// @BasePath     /
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the local dashboard",
		RunE:  withAppHistory(true, runServe),
	}
}

func runServe(cmd *cobra.Command, a *app, _ []string) error {
	apiHandler := handlers.NewHandler(a.services, a.log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// keep history fresh while the dashboard is open
	go a.services.Run(ctx, a.cfg.History.PollInterval)

	srv := &server.Server{}
	runHTTPServer(srv, a.cfg.Server.Host, a.cfg.Server.Port, apiHandler, a.log)
	a.log.Infow("dashboard_listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port, "backend", a.cfg.API.BaseURL)

	waitForShutdown(cancel, srv, a.log)
	return nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, host, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(host, port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
