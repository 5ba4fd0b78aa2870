package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-mentor/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for profiles, recommendations, advice and job search.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (default :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = serveAddr
	}

	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	srv, err := server.New(a.svc, server.Config{
		Addr:      cfg.Addr,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting career mentor server", slog.String("addr", cfg.Addr), slog.String("store", cfg.Store))
	return srv.Start(ctx)
}
