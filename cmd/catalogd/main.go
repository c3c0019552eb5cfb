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

	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"findanything/internal/catalog"
	"findanything/internal/config"
	"findanything/internal/logging"
	"findanything/internal/provider"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		topK       int
		debug      bool
	)

	cmd := &cobra.Command{
		Use:           "catalogd",
		Short:         "Serve the sample product catalog as a results provider",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfigServiceWithBus(nil, configPath).Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if topK > 0 {
				cfg.Server.TopK = topK
			}

			logger, err := logging.New(logging.Options{Debug: debug || cfg.Log.Debug})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			products, err := catalog.Products()
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg.Server.Addr, provider.NewServer(products, cfg.Server.TopK, logger), logger)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8000)")
	cmd.Flags().IntVar(&topK, "top-k", 0, "results per query")
	cmd.Flags().BoolVar(&debug, "debug", false, "debug logging")
	return cmd
}

func serve(ctx context.Context, addr string, srv *provider.Server, logger *zap.Logger) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog provider listening", zap.String("addr", addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
