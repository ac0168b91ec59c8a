package cli

import (
	"fmt"
	"strings"

	"apkstate/internal/history"
	"apkstate/internal/ui"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent reconcile runs",
	Long: `List recent reconcile runs, newest first, with what was requested
and whether anything changed.

Examples:
  apkstate history           # Last 20 runs
  apkstate history -l 5      # Last 5 runs`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "maximum number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open()
	if err != nil {
		ui.ErrorMsg("%v", err)
		return err
	}
	defer store.Close()

	entries, err := store.List(historyLimit)
	if err != nil {
		ui.ErrorMsg("%v", err)
		return err
	}

	if len(entries) == 0 {
		ui.MutedMsg("No runs recorded yet.")
		return nil
	}

	for _, e := range entries {
		status := ui.Green(ui.SymbolSuccess)
		if !e.Success {
			status = ui.Red(ui.SymbolError)
		}

		result := "unchanged"
		if !e.Success {
			result = "failed"
		} else if e.Changed {
			result = "changed"
		}

		ui.Println("%s %s  %-9s  %s",
			status,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			result,
			describeEntry(e))

		if e.Error != "" {
			ui.MutedMsg("    %s", e.Error)
		}
	}

	return nil
}

// describeEntry summarizes what a run asked for.
func describeEntry(e history.Entry) string {
	var parts []string
	if e.Refresh {
		parts = append(parts, "update-cache")
	}
	if e.Upgrade {
		parts = append(parts, "upgrade")
	}
	if len(e.Packages) > 0 {
		parts = append(parts, fmt.Sprintf("state=%s %s", e.State, strings.Join(e.Packages, " ")))
	}
	if e.Simulate {
		parts = append(parts, "(dry-run)")
	}
	return strings.Join(parts, " ")
}
