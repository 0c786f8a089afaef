package reconcile

import (
	"context"
	"fmt"
	"sort"
)

// AuditAll performs a full audit of one surface: ledger entries on one side,
// the trader's remote listings on the other. It returns a result for every
// key seen on either side.
func AuditAll(ctx context.Context, spec *Spec) ([]AuditResult, error) {
	snapshot, err := GetOrBuildSnapshot(ctx, spec)
	if err != nil {
		return nil, err
	}
	return auditFromSnapshot(snapshot, spec.Adapter), nil
}

// AuditWithPlan performs an audit and returns a plan with results and repair
// actions. It does NOT execute actions; use ApplyPlan for that.
func AuditWithPlan(ctx context.Context, spec *Spec, opts Options) (*AuditPlan, error) {
	snapshot, err := GetOrBuildSnapshot(ctx, spec)
	if err != nil {
		return nil, err
	}

	results := auditFromSnapshot(snapshot, spec.Adapter)
	summary, actions := buildPlanFromResults(results, snapshot, opts)

	return &AuditPlan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

// ApplyPlan executes the repair actions in an audit plan, in plan order.
// Returns the number of actions executed and the first error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, spec *Spec, plan *AuditPlan, opts Options) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	mutator, ok := spec.Adapter.(Mutator)
	if !ok {
		return 0, fmt.Errorf("adapter %s cannot execute repairs", spec.Adapter.Name())
	}

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDeleteRemote:
			err = mutator.DeleteRemote(ctx, action.Key)
		case ActionUnlinkLedger:
			err = mutator.UnlinkLedger(ctx, action.Key)
		case ActionSyncRemote:
			err = mutator.SyncRemote(ctx, action.Key, action.Ledger)
		default:
			err = fmt.Errorf("unknown action type %s", action.Type)
		}
		if err != nil {
			return executed, fmt.Errorf("failed to apply %s for %s: %w", action.Type, action.Key, err)
		}
		executed++
	}

	// The repaired state invalidates whatever snapshot produced the plan.
	if executed > 0 {
		InvalidateSnapshot(spec)
	}
	return executed, nil
}

// AuditAndApply is a convenience wrapper that plans and optionally applies
// repairs. It returns the plan, the number of actions executed, and any error.
func AuditAndApply(ctx context.Context, spec *Spec, opts Options) (*AuditPlan, int, error) {
	plan, err := AuditWithPlan(ctx, spec, opts)
	if err != nil {
		return nil, 0, err
	}

	executed, err := ApplyPlan(ctx, spec, plan, opts)
	return plan, executed, err
}

// auditFromSnapshot builds sorted results from a snapshot.
func auditFromSnapshot(snapshot *Snapshot, adapter Adapter) []AuditResult {
	union := make(map[string]struct{})
	for key := range snapshot.LedgerIndex {
		union[key] = struct{}{}
	}
	for key := range snapshot.RemoteIndex {
		union[key] = struct{}{}
	}

	results := make([]AuditResult, 0, len(union))
	for key := range union {
		results = append(results, buildResult(key, snapshot, adapter))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})
	return results
}

// buildResult creates an AuditResult for a single key.
func buildResult(key string, snapshot *Snapshot, adapter Adapter) AuditResult {
	ledger, ledgerPresent := snapshot.LedgerIndex[key]
	remote, remotePresent := snapshot.RemoteIndex[key]

	result := AuditResult{
		Key:           key,
		LedgerPresent: ledgerPresent,
		RemotePresent: remotePresent,
		Mismatch:      []string{},
	}

	if ledgerPresent || remotePresent {
		var ledgerItem LedgerItem
		var remoteItem RemoteItem
		if ledgerPresent {
			ledgerItem = ledger
		}
		if remotePresent {
			remoteItem = remote
		}
		result.Name = adapter.ResolveName(ledgerItem, remoteItem)
		result.Metadata = adapter.GetMetadata(ledgerItem, remoteItem)
	}

	if ledgerPresent && remotePresent {
		result.Mismatch = adapter.CompareFields(ledger, remote)
	}

	return result
}

// buildPlanFromResults generates a summary and repair plan from audit results.
func buildPlanFromResults(results []AuditResult, snapshot *Snapshot, opts Options) (PlanSummary, []Action) {
	var summary PlanSummary
	var actions []Action

	summary.TotalEntries = len(results)

	for _, result := range results {
		if result.LedgerPresent && !result.RemotePresent {
			summary.MissingRemote++
		}
		if result.RemotePresent && !result.LedgerPresent {
			summary.OrphanedRemote++
		}
		if len(result.Mismatch) > 0 {
			summary.Mismatches++
		}

		if opts.FixOrphans {
			// A remote listing nothing in the ledger backs gets deleted; a
			// ledger entry pointing at a vanished listing gets unlinked.
			if result.RemotePresent && !result.LedgerPresent {
				actions = append(actions, Action{
					Type:   ActionDeleteRemote,
					Key:    result.Key,
					Reason: "no ledger entry backs this listing",
				})
				summary.RepairActions++
				continue
			}
			if result.LedgerPresent && !result.RemotePresent {
				actions = append(actions, Action{
					Type:   ActionUnlinkLedger,
					Key:    result.Key,
					Reason: "listing no longer exists on remote",
				})
				summary.RepairActions++
				continue
			}
		}

		if opts.SyncDrift && len(result.Mismatch) > 0 {
			actions = append(actions, Action{
				Type:   ActionSyncRemote,
				Key:    result.Key,
				Reason: fmt.Sprintf("drift: %v", result.Mismatch),
				Ledger: snapshot.LedgerIndex[result.Key],
			})
			summary.RepairActions++
		}
	}

	return summary, actions
}
