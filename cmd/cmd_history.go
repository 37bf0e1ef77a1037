package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyFlags struct {
	userID int64
	limit  int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show saved assessments of a user",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.Int64Var(&historyFlags.userID, "user-id", 0, "Telegram user ID (required)")
	f.IntVar(&historyFlags.limit, "limit", 20, "max results")

	_ = historyCmd.MarkFlagRequired("user-id")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	_, c, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer c.Close()

	list, err := c.ScreeningService.History(cmd.Context(), historyFlags.userID, historyFlags.limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), historyTable(c.Theme, list))
	return nil
}
