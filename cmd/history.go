// Package cmd implements the command-line interface for hoopsgrab.
package cmd

import (
	"fmt"
	"sort"

	"github.com/hoopsgrab-cli/hoopsgrab/color"
	"github.com/hoopsgrab-cli/hoopsgrab/history"
	"github.com/hoopsgrab-cli/hoopsgrab/icon"
	"github.com/hoopsgrab-cli/hoopsgrab/style"
	"github.com/hoopsgrab-cli/hoopsgrab/util"
	"github.com/hoopsgrab-cli/hoopsgrab/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Bool("clear", false, "Forget every saved replay record")
}

// historyCmd displays the registry of already-saved replays.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the replays saved by previous runs",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("clear")) {
			handleErr(util.Delete(where.History()))
			fmt.Printf("%s history cleared\n", icon.Get(icon.Success))
			return
		}

		saved, err := history.Get()
		handleErr(err)

		if len(saved) == 0 {
			fmt.Println("no replays saved yet")
			return
		}

		records := lo.Values(saved)
		sort.Slice(records, func(i, j int) bool {
			return records[i].SavedAt.After(records[j].SavedAt)
		})

		for _, record := range records {
			fmt.Printf(
				"%s %s %s\n  %s\n",
				icon.Get(icon.Calendar),
				style.Fg(color.Purple)(record.Date),
				style.Bold(record.Title),
				style.Faint(record.Path),
			)
		}
	},
}
