package main

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	"asbestos-screen/config"
	"asbestos-screen/internal/container"
)

// version задаётся при сборке через -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "asbestos-screen",
	Short: "Preliminary asbestos risk screening: Telegram bot, HTTP API and PDF reports",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(centersCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.Version = version

	log.SetHandler(cli.New(os.Stderr))
}

// setup читает конфигурацию, настраивает логгер и собирает контейнер
func setup(ctx context.Context) (*config.Config, *container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(cfg.LogLevel)

	c, err := container.Build(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, c, nil
}
