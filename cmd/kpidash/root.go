package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"kpidash/internal/config"
)

// NewRootCmd 创建根命令
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kpidash",
		Short: "Marketing KPI dashboard: status classification and report export",
		Long: `kpidash compares marketing KPI actuals against benchmarks, assigns each row a
Green / Yellow / Red / Gray status, and renders a styled dashboard report
(xlsx, pdf or markdown).

Run "kpidash serve" for the web API, or "kpidash render" to build reports
straight from a spreadsheet.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewRenderCmd())
	cmd.AddCommand(NewClassifyCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute 执行根命令
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig 加载配置；配置文件有误时直接报错
func loadConfig() (*config.AppConfig, config.LoadConfigInfo, error) {
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		return nil, info, fmt.Errorf("load config: %w", err)
	}
	return cfg, info, nil
}

// newLogger 按配置级别创建 slog 文本日志，--verbose 时强制 debug
func newLogger(cmd *cobra.Command, w io.Writer, cfg *config.AppConfig) *slog.Logger {
	level, _ := cfg.SlogLevel()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
