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

	"kpidash/internal/server"
	"kpidash/internal/util"
)

// NewServeCmd 创建 serve 命令
func NewServeCmd() *cobra.Command {
	var (
		port      int
		devMode   bool
		noBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, info, err := loadConfig()
			if err != nil {
				return err
			}

			// 命令行参数仅在显式给出时覆盖配置
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if devMode {
				cfg.Server.DevMode = true
			}
			if noBrowser {
				cfg.Server.OpenBrowser = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			logger := newLogger(cmd, cmd.ErrOrStderr(), cfg)

			fmt.Fprintln(out, "==========================================")
			fmt.Fprintln(out, "  kpidash - Marketing KPI Dashboard")
			fmt.Fprintln(out, "==========================================")
			if info.Path != "" {
				fmt.Fprintf(out, "Config: %s\n", info.Path)
			}

			srv := server.NewServer(cfg, getVersion(), logger)
			httpSrv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go srv.RunJanitor(ctx, 10*time.Minute)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("starting server", "port", cfg.Server.Port)
				if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			if cfg.Server.OpenBrowser && !cfg.Server.DevMode {
				fmt.Fprintf(out, "Opening browser: %s\n", url)
				if err := util.OpenBrowser(url); err != nil {
					fmt.Fprintf(out, "Could not open a browser, visit %s manually\n", url)
				}
			} else {
				fmt.Fprintf(out, "Listening on %s\n", url)
			}
			fmt.Fprintln(out, "\nPress Ctrl+C to stop...")

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			fmt.Fprintln(out, "\nShutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides config.toml)")
	cmd.Flags().BoolVar(&devMode, "dev", false, "Development mode (debug gin, no browser)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open a browser on start")

	return cmd
}
