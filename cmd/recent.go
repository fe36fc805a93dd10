package cmd

import (
	"fmt"

	"github.com/connorleisz/emojiTUI/internal/config"
	"github.com/connorleisz/emojiTUI/internal/emoji"
	"github.com/connorleisz/emojiTUI/internal/store"
	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most frequently picked emojis",
	RunE:  runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening preferences: %w", err)
	}
	defer db.Close()

	data, err := emoji.Default()
	if err != nil {
		return fmt.Errorf("loading emoji data: %w", err)
	}

	perLine := cfg.PerLine
	if perLine < 1 {
		perLine = 1
	}
	for _, id := range store.NewTracker(db).Get(perLine) {
		rec, ok := data.Lookup(id)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "   :%s:\n", id)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  :%s:  %s\n", rec.Native, id, rec.Name)
	}
	return nil
}
