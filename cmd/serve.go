package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kozaktomas/imagehash/internal/config"
	"github.com/kozaktomas/imagehash/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hashing web server",
	Long: `Start the imagehash web server.
The server exposes a small JSON API for computing perceptual hashes of
uploaded images and comparing them, so other services can hash images
without shipping the algorithms themselves.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (0 = config default)")
	serveCmd.Flags().String("host", "", "Host to bind to (empty = config default)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	port := cfg.Server.Port
	if flagPort := mustGetInt(cmd, "port"); flagPort > 0 {
		port = flagPort
	}
	host := cfg.Server.Host
	if flagHost := mustGetString(cmd, "host"); flagHost != "" {
		host = flagHost
	}

	server := web.NewServer(cfg, port, host)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		fmt.Println("\nShutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}
	return nil
}
