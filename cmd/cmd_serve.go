package main

import (
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	telegram "asbestos-screen/internal/api"
	"asbestos-screen/internal/api/rest"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, and the Telegram bot when TELEGRAM_TOKEN is set",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "listen address (overrides HTTP_ADDR)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, c, err := setup(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	addr := cfg.HTTPAddr
	if serveFlags.addr != "" {
		addr = serveFlags.addr
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return rest.NewServer(c).Run(gctx, addr)
	})

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, c)
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}
		g.Go(func() error {
			return bot.Run(gctx)
		})
	} else {
		log.Info("TELEGRAM_TOKEN is not set, running HTTP API only")
	}

	return g.Wait()
}
