package cli

import (
	"context"

	"apkstate/internal/ui"
	"apkstate/pkg/reconcile"

	"github.com/spf13/cobra"
)

var upgradeUpdateCache bool

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade all installed packages",
	Long: `Upgrade every installed package to its latest version.

Whether anything changed is taken from apk's own report: an output
starting with "OK:" means the system was already up to date.

Examples:
  apkstate upgrade           # Upgrade everything
  apkstate upgrade -u        # Refresh indexes first, then upgrade
  apkstate upgrade -n        # Dry run: show what apk would upgrade`,
	RunE: runUpgrade,
}

func init() {
	upgradeCmd.Flags().BoolVarP(&upgradeUpdateCache, "update-cache", "u", false, "refresh repository indexes before upgrading")
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	backend, err := newBackend()
	if err != nil {
		ui.ErrorMsg("%v", err)
		return err
	}

	// Upgrade-all has no locally computed plan, so confirm up front.
	if !cfg.General.AutoConfirm && !cfg.General.DryRun {
		confirmed, err := ui.Confirm("Upgrade all installed packages?", true)
		if err != nil {
			return err
		}
		if !confirmed {
			ui.WarningMsg("aborted, no changes made")
			return reconcile.ErrAborted
		}
	}

	req := reconcile.Request{
		UpdateCache: upgradeUpdateCache,
		Upgrade:     true,
		Simulate:    cfg.General.DryRun,
	}
	return runReconcile(context.Background(), backend, req)
}
