package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shrishtravels/routegen/pkg/routegen/config"
	"github.com/shrishtravels/routegen/pkg/routegen/server"
)

var ServeCmd = &cobra.Command{
	Use:   ServeCmdName,
	Short: ServeCmdShort,
	Long:  ServeCmdLong,
	Args:  cobra.NoArgs,
	RunE:  serveCmdFunc,
}

func init() {
	ServeCmd.Flags().String(config.KeyAddr, ":8080", "listen address")
	v.BindPFlags(ServeCmd.Flags())
}

func serveCmdFunc(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	serve := server.NewHTTPServer(cfg, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving site", zap.String("addr", serve.Addr), zap.String("site_dir", cfg.SiteDir))
		if err := serve.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-signalCh:
		log.Info("shutting down the server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return serve.Shutdown(ctx)
}
