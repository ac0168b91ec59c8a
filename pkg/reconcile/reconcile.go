package reconcile

import (
	"context"
	"fmt"
	"strings"
)

// Op identifies a mutating backend operation.
type Op string

const (
	// OpInstall installs packages that are not present.
	OpInstall Op = "install"
	// OpInstallOrUpgrade installs packages, upgrading any that are
	// already present at an older version.
	OpInstallOrUpgrade Op = "install-or-upgrade"
	// OpRemove removes installed packages.
	OpRemove Op = "remove"
	// OpRefreshIndex refreshes the repository indexes.
	OpRefreshIndex Op = "update repository indexes"
	// OpUpgradeAll upgrades all installed packages.
	OpUpgradeAll Op = "upgrade packages"
)

// Backend is the package-manager capability surface the reconciler
// drives. Calls are sequential and synchronous; callers own the
// serialization of concurrent runs against the shared package database.
type Backend interface {
	// IsInstalled reports whether the named package is installed.
	IsInstalled(ctx context.Context, name string) (bool, error)

	// HasUpdate reports whether a newer version of an installed package
	// is available. Implementations fail closed: when the answer cannot
	// be determined they report no update rather than risk an
	// unnecessary mutation.
	HasUpdate(ctx context.Context, name string) (bool, error)

	// RefreshIndex refreshes the backend's view of available versions.
	RefreshIndex(ctx context.Context) error

	// UpgradeAll upgrades every installed package and reports whether
	// anything changed. The backend's own signal is authoritative here
	// because no batch is computed locally for this path.
	UpgradeAll(ctx context.Context, simulate bool) (bool, error)

	// Apply submits a mutating transaction for the named packages.
	// With simulate set the backend reports what it would do without
	// touching system state.
	Apply(ctx context.Context, op Op, names []string, simulate bool) error
}

// Request is the desired state for a single reconciliation run.
type Request struct {
	Names       []string
	State       State
	UpdateCache bool
	Upgrade     bool
	Simulate    bool
}

// Plan is the set of operations a run has decided to submit. Both
// batches empty means nothing to do. A name never appears in both.
type Plan struct {
	Install      []string
	Remove       []string
	AllowUpgrade bool
}

// Empty reports whether the plan contains no work.
func (p Plan) Empty() bool {
	return len(p.Install) == 0 && len(p.Remove) == 0
}

// Outcome is the observable result of a run. Changed=false is the
// idempotence signal: re-running an already-reconciled state always
// yields it.
type Outcome struct {
	Changed bool
	Message string
}

// ConfirmFunc is invoked with the computed plan before any mutation is
// submitted. Returning false aborts the run with ErrAborted.
type ConfirmFunc func(Plan) (bool, error)

// Reconciler maps a desired state onto backend operations.
type Reconciler struct {
	backend Backend
	confirm ConfirmFunc
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithConfirm installs a confirmation hook that runs between plan
// construction and execution. Simulated runs never invoke it.
func WithConfirm(fn ConfirmFunc) Option {
	return func(r *Reconciler) {
		r.confirm = fn
	}
}

// New creates a Reconciler driving the given backend.
func New(backend Backend, opts ...Option) *Reconciler {
	r := &Reconciler{backend: backend}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one reconciliation. The index refresh, if requested,
// runs before anything else so that staleness is judged against fresh
// indexes. Upgrade-all, if requested, runs next and ends the run:
// upgrading everything and reconciling named packages are mutually
// exclusive intents, and upgrade-all takes precedence.
func (r *Reconciler) Run(ctx context.Context, req Request) (Outcome, error) {
	if req.UpdateCache {
		if err := r.backend.RefreshIndex(ctx); err != nil {
			return Outcome{}, &MutationError{Op: OpRefreshIndex, Err: err}
		}
		if len(req.Names) == 0 && !req.Upgrade {
			// Freshness is not independently verifiable, so a refresh
			// always counts as a change.
			return Outcome{Changed: true, Message: "updated repository indexes"}, nil
		}
	}

	if req.Upgrade {
		changed, err := r.backend.UpgradeAll(ctx, req.Simulate)
		if err != nil {
			return Outcome{}, &MutationError{Op: OpUpgradeAll, Err: err}
		}
		if !changed {
			return Outcome{Message: "packages already upgraded"}, nil
		}
		return Outcome{Changed: true, Message: "upgraded packages"}, nil
	}

	plan, err := r.plan(ctx, req)
	if err != nil {
		return Outcome{}, err
	}

	return r.execute(ctx, req, plan)
}

// plan classifies each requested package and builds the transaction
// batches. Request order is preserved for deterministic command
// construction.
func (r *Reconciler) plan(ctx context.Context, req Request) (Plan, error) {
	var plan Plan

	for _, name := range req.Names {
		status, err := r.classify(ctx, name, req.State)
		if err != nil {
			return Plan{}, err
		}

		switch req.State {
		case StateAbsent:
			if status != StatusNotInstalled {
				plan.Remove = append(plan.Remove, name)
			}
		default: // present, latest
			switch status {
			case StatusNotInstalled:
				plan.Install = append(plan.Install, name)
			case StatusStale:
				plan.Install = append(plan.Install, name)
				plan.AllowUpgrade = true
			}
		}
	}

	return plan, nil
}

// classify determines a package's status with at most two backend
// queries: installed-ness always, update availability only when the
// desired state is latest.
func (r *Reconciler) classify(ctx context.Context, name string, state State) (Status, error) {
	installed, err := r.backend.IsInstalled(ctx, name)
	if err != nil {
		return StatusNotInstalled, &QueryError{Pkg: name, Err: err}
	}
	if !installed {
		return StatusNotInstalled, nil
	}

	if state == StateLatest {
		stale, err := r.backend.HasUpdate(ctx, name)
		if err != nil {
			return StatusNotInstalled, &QueryError{Pkg: name, Err: err}
		}
		if stale {
			return StatusStale, nil
		}
	}

	return StatusCurrent, nil
}

// execute submits the plan. The changed decision is driven by whether
// the computed batches are non-empty, not by backend output.
func (r *Reconciler) execute(ctx context.Context, req Request, plan Plan) (Outcome, error) {
	if plan.Empty() {
		if req.State == StateAbsent {
			return Outcome{Message: "package(s) already removed"}, nil
		}
		return Outcome{Message: "package(s) already installed"}, nil
	}

	if r.confirm != nil && !req.Simulate {
		ok, err := r.confirm(plan)
		if err != nil {
			return Outcome{}, err
		}
		if !ok {
			return Outcome{}, ErrAborted
		}
	}

	if len(plan.Remove) > 0 {
		if err := r.backend.Apply(ctx, OpRemove, plan.Remove, req.Simulate); err != nil {
			return Outcome{}, &MutationError{Op: OpRemove, Names: plan.Remove, Err: err}
		}
		return Outcome{
			Changed: true,
			Message: fmt.Sprintf("removed %s package(s)", strings.Join(plan.Remove, " ")),
		}, nil
	}

	op := OpInstall
	if plan.AllowUpgrade {
		// One stale package forces upgrade semantics for the whole
		// batch; apk applies the modifier uniformly.
		op = OpInstallOrUpgrade
	}
	if err := r.backend.Apply(ctx, op, plan.Install, req.Simulate); err != nil {
		return Outcome{}, &MutationError{Op: op, Names: plan.Install, Err: err}
	}
	return Outcome{
		Changed: true,
		Message: fmt.Sprintf("installed %s package(s)", strings.Join(plan.Install, " ")),
	}, nil
}
