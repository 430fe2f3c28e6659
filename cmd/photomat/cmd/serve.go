package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/photomat/photomat/internal/server"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP image processing server",
	Long: `Start an HTTP server exposing the resize and segmentation pipeline.

The server provides the following endpoints:
  POST /resize     - Resize an uploaded image
  POST /segment    - Segment an uploaded image
  GET  /size       - Compute the policy output size without uploading
  GET  /health     - Health check endpoint
  GET  /status/ws  - WebSocket status stream
  GET  /metrics    - Prometheus metrics

Examples:
  photomat serve
  photomat serve --port 8080 --model isnet.onnx
  photomat serve --host 0.0.0.0 --port 3000`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	host := cfg.Server.Host
	if cmd.Flags().Changed("host") {
		host, _ = cmd.Flags().GetString("host")
	}
	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port number: %d (must be between 1 and 65535)", port)
	}

	p, err := buildPipeline(cmd, cfg)
	if err != nil {
		return err
	}

	srv := server.NewServer(cfg.Server, p)
	defer func() { _ = srv.Close() }()

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      srv.Handler(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting HTTP server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	case <-cmd.Context().Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	addModelFlags(serveCmd)
	serveCmd.Flags().String("host", "", "host interface to bind")
	serveCmd.Flags().Int("port", 0, "port to listen on")
	serveCmd.Flags().Int("screen-bound", 0, "maximum display dimension for the overflow check")
}
