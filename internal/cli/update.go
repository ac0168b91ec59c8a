package cli

import (
	"context"

	"apkstate/internal/ui"
	"apkstate/pkg/reconcile"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update repository indexes",
	Long: `Refresh the repository indexes.

This downloads the latest package information from the repositories but
does not install or upgrade anything. A refresh always counts as a
change, since index freshness is not independently verifiable.

Examples:
  apkstate update`,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	backend, err := newBackend()
	if err != nil {
		ui.ErrorMsg("%v", err)
		return err
	}

	req := reconcile.Request{UpdateCache: true}
	return runReconcile(context.Background(), backend, req)
}
