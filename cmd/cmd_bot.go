package main

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	telegram "asbestos-screen/internal/api"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, c, err := setup(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if cfg.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN is required")
	}

	bot, err := telegram.NewBot(cfg.TelegramToken, c)
	if err != nil {
		return err
	}
	return bot.Run(ctx)
}
