package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"nmapview/internal/logging"
	"nmapview/internal/metrics"
	"nmapview/internal/nmapdata"
	"nmapview/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scan viewer and JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if portFlag != "" {
			appConfig.Port = portFlag
		}

		m := metrics.New()
		service := nmapdata.NewNmapDataService(appConfig, m)
		handler, err := web.NewWebHandler(service, m, appConfig)
		if err != nil {
			return err
		}

		server := &http.Server{
			Addr:              ":" + appConfig.Port,
			Handler:           handler.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServer(ctx, server)
	},
}

var portFlag string

func init() {
	serveCmd.Flags().StringVar(&portFlag, "port", "", "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, server *http.Server) error {
	logging.Debugf("Runtime info - OS: %s, Arch: %s, Go version: %s", runtime.GOOS, runtime.GOARCH, runtime.Version())

	serveErr := make(chan error, 1)
	go func() {
		logging.Infof("Server is starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logging.Infof("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logging.Infof("Shutting down the server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	logging.Infof("Server stopped")
	return nil
}
