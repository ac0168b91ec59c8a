package cli

import (
	"context"
	"errors"

	"apkstate/internal/history"
	"apkstate/internal/ui"
	"apkstate/pkg/apk"
	"apkstate/pkg/reconcile"

	"github.com/spf13/cobra"
)

var (
	applyState       string
	applyUpdateCache bool
	applyUpgrade     bool
)

var applyCmd = &cobra.Command{
	Use:   "apply [packages...]",
	Short: "Reconcile packages to a desired state",
	Long: `Reconcile the named packages to the desired state.

apkstate queries each package's current status and submits only the apk
transactions needed: nothing is reinstalled, nothing is removed twice.
Re-applying an already-reconciled state reports "unchanged".

When --upgrade is given it takes precedence: all installed packages are
upgraded and the named packages are not reconciled in the same run.
--update-cache always runs first so staleness is judged against fresh
indexes.

Examples:
  apkstate apply vim git                    # present (the default)
  apkstate apply --state latest vim         # upgrade vim if stale
  apkstate apply --state absent vim git     # remove both if installed
  apkstate apply --update-cache             # refresh indexes only
  apkstate apply -u --state latest nginx    # refresh, then reconcile`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyState, "state", "s", "present", "desired state: present, absent or latest")
	applyCmd.Flags().BoolVarP(&applyUpdateCache, "update-cache", "u", false, "refresh repository indexes before reconciling")
	applyCmd.Flags().BoolVar(&applyUpgrade, "upgrade", false, "upgrade all installed packages instead of reconciling")
}

func runApply(cmd *cobra.Command, args []string) error {
	state, err := reconcile.ParseState(applyState)
	if err != nil {
		ui.ErrorMsg("%v", err)
		return err
	}

	if len(args) == 0 && !applyUpdateCache && !applyUpgrade {
		ui.ErrorMsg("%v", ErrNoAction)
		return ErrNoAction
	}

	backend, err := newBackend()
	if err != nil {
		ui.ErrorMsg("%v", err)
		return err
	}

	req := reconcile.Request{
		Names:       args,
		State:       state,
		UpdateCache: applyUpdateCache,
		Upgrade:     applyUpgrade,
		Simulate:    cfg.General.DryRun,
	}

	return runReconcile(context.Background(), backend, req)
}

// runReconcile drives one reconciliation, records it in history and
// translates the outcome to the terminal. Shared by apply, update and
// upgrade.
func runReconcile(ctx context.Context, backend *apk.APK, req reconcile.Request) error {
	stateStr := ""
	if len(req.Names) > 0 {
		stateStr = string(req.State)
	}
	entry := history.NewEntry(stateStr, req.Names, req.UpdateCache, req.Upgrade, req.Simulate)

	sp := ui.NewSpinner("Reconciling package state")
	rec := reconcile.New(backend, reconcile.WithConfirm(confirmPlan(sp)))

	sp.Start()
	outcome, err := rec.Run(ctx, req)
	sp.Stop()

	if errors.Is(err, reconcile.ErrAborted) {
		// Nothing was attempted; not worth a history entry.
		ui.WarningMsg("aborted, no changes made")
		return err
	}

	if err != nil {
		entry.MarkFailed(err)
	} else {
		entry.MarkOutcome(outcome.Changed, outcome.Message)
	}
	if store, storeErr := history.Open(); storeErr == nil {
		_ = store.Record(entry) //nolint:errcheck
		_ = store.Close()       //nolint:errcheck
	}

	if err != nil {
		ui.ErrorMsg("%v", err)
		return err
	}

	if outcome.Changed {
		ui.SuccessMsg("%s", outcome.Message)
	} else {
		ui.InfoMsg("%s (unchanged)", outcome.Message)
	}
	return nil
}

// confirmPlan pauses the spinner, shows the computed plan and asks for
// confirmation. Skipped entirely under --yes/auto_confirm; dry runs
// never reach it.
func confirmPlan(sp *ui.Spinner) reconcile.ConfirmFunc {
	return func(plan reconcile.Plan) (bool, error) {
		if cfg.General.AutoConfirm {
			return true, nil
		}

		sp.Stop()

		if len(plan.Install) > 0 {
			verb := "Installing"
			if plan.AllowUpgrade {
				verb = "Installing/upgrading"
			}
			ui.InfoMsg("%s %d package(s):", verb, len(plan.Install))
			for _, name := range plan.Install {
				ui.MutedMsg("  - %s", name)
			}
		}
		if len(plan.Remove) > 0 {
			ui.InfoMsg("Removing %d package(s):", len(plan.Remove))
			for _, name := range plan.Remove {
				ui.MutedMsg("  - %s", name)
			}
		}

		ok, err := ui.Confirm("Proceed?", true)
		if err != nil {
			return false, err
		}
		if ok {
			sp.Start()
		}
		return ok, nil
	}
}
