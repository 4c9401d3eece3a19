package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"chemviz/internal/api"
	"chemviz/internal/config"
	"chemviz/internal/logger"
	"chemviz/internal/repository"
	sqlitedb "chemviz/internal/repository/db"
	"chemviz/internal/service"

	"github.com/spf13/cobra"
)

var configPath string

// app is the wired client shared by every subcommand.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *sql.DB
	services *service.Service
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Errorw("failed to close sqlite", "err", err)
	}
}

// bootstrap loads config, opens the local store, and restores any persisted
// session. History is fetched on restore only when eagerHistory is set;
// one-shot commands refresh it themselves when they need it.
func bootstrap(ctx context.Context, eagerHistory bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.Get(cfg.Log.Level)

	conn, err := sqlitedb.InitDB(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("init sqlite: %w", err)
	}

	backend, err := api.New(api.Options{
		BaseURL:    cfg.API.BaseURL,
		AuthScheme: cfg.API.AuthScheme,
		Timeout:    cfg.API.Timeout,
	}, log)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	repos := repository.NewRepository(conn, repository.NewSealer(cfg.Session.Secret))
	services := service.NewService(repos, backend, service.Options{
		HistoryLimit:         cfg.History.Limit,
		LogoutOnUnauthorized: cfg.Session.LogoutOnUnauthorized,
		ManualHistoryRefresh: !eagerHistory,
	}, log)

	if _, err := services.Restore(ctx); err != nil {
		// an unreadable credential means starting signed out
		log.Warnw("session_restore_failed", "err", err)
	}
	return &app{cfg: cfg, log: log, db: conn, services: services}, nil
}

type runFunc func(cmd *cobra.Command, a *app, args []string) error

// withApp adapts a run function that needs the wired client into a cobra
// RunE. Nothing is fetched from the backend until run asks for it.
func withApp(run runFunc) func(*cobra.Command, []string) error {
	return withAppHistory(false, run)
}

// withAppHistory is withApp for long-running commands that keep the history
// cache current from the start.
func withAppHistory(eager bool, run runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), eager)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}

var rootCmd = &cobra.Command{
	Use:           "chemviz",
	Short:         "chemviz - client for the chemical equipment analysis backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default configs/config.yml)")
	rootCmd.AddCommand(
		newServeCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newHistoryCmd(),
		newUploadCmd(),
		newAnalyticsCmd(),
		newReportCmd(),
		newNoticesCmd(),
	)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
