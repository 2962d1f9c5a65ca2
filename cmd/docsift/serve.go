package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docsift/docsift/api"
	"github.com/docsift/docsift/store"
)

var serveAddr string
var serveDB string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve indexed artifacts over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(serveDB)
		if err != nil {
			return err
		}
		defer st.Close()

		srv := &http.Server{
			Addr:         serveAddr,
			Handler:      api.NewServer(st, slog.Default()),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		// Graceful shutdown on SIGTERM/SIGINT.
		done := make(chan os.Signal, 1)
		signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

		errCh := make(chan error, 1)
		go func() {
			slog.Info("server starting", "addr", serveAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-done:
		}
		slog.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveDB, "db", "artifacts/artifacts.db", "SQLite artifact database")
	rootCmd.AddCommand(serveCmd)
}
