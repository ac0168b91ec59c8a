// Package cli implements the command-line interface for apkstate.
package cli

import (
	"fmt"

	"apkstate/internal/config"
	"apkstate/internal/ui"
	"apkstate/pkg/apk"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	dryRun  bool
	yes     bool
	verbose bool
	noColor bool

	// Global state
	cfg *config.Config
)

// Build metadata - set at build time via ldflags
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "apkstate",
	Short: "Declarative package state for Alpine Linux",
	Long: `apkstate reconciles a declared package state against the system
by driving apk. Declare which packages should be present, absent or at
their latest version; apkstate queries what is actually installed and
issues only the apk transactions needed to close the gap. A run that
finds nothing to do changes nothing and says so.

Examples:
  apkstate apply vim git                  # Ensure vim and git are installed
  apkstate apply --state absent vim       # Ensure vim is removed
  apkstate apply --state latest -u vim    # Refresh indexes, then upgrade vim if stale
  apkstate apply -n --state latest vim    # Dry run: ask apk what it would do
  apkstate update                         # Refresh repository indexes only
  apkstate upgrade                        # Upgrade all installed packages`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "ask apk to simulate transactions instead of applying them")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "assume yes to all prompts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(historyCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initializeApp sets up the application state.
func initializeApp() error {
	// Load configuration
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	// Apply global flag overrides
	if yes {
		cfg.General.AutoConfirm = true
	}
	if dryRun {
		cfg.General.DryRun = true
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.Color = false
	}

	// Initialize UI
	ui.Init(cfg.ShouldUseColor(), cfg.Output.Unicode)

	return nil
}

// newBackend builds the apk adapter and verifies the binary can be
// found before the reconciler runs. A missing binary is a configuration
// error, not a reconciliation outcome.
func newBackend() (*apk.APK, error) {
	backend := apk.New(apk.Options{
		Binary:  cfg.Backend.Path,
		Purge:   cfg.Backend.Purge,
		Verbose: cfg.Output.Verbose,
	})
	if !backend.IsAvailable() {
		return nil, fmt.Errorf("cannot find apk, looking for %s", backend.Binary())
	}
	return backend, nil
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print apkstate version",
	Run: func(cmd *cobra.Command, args []string) {
		ui.InfoMsg("apkstate version %s", Version)
		if Commit != "unknown" {
			ui.MutedMsg("  Commit: %s", Commit)
		}
		if BuildTime != "unknown" {
			ui.MutedMsg("  Built:  %s", BuildTime)
		}
	},
}
