package reconcile

import "time"

// AuditResult is the audit output for a single entity: presence on each side
// and any field-level drift between the ledger and its remote listing.
type AuditResult struct {
	// Key is the identifier shared by both sides (listing id or url name).
	Key string `json:"key"`

	// Name is the display name of the entity.
	Name string `json:"name"`

	// LedgerPresent indicates whether the entity exists in the local ledger.
	LedgerPresent bool `json:"ledger_present"`

	// RemotePresent indicates whether a matching remote listing exists.
	RemotePresent bool `json:"remote_present"`

	// Mismatch describes field drift between ledger and listing,
	// e.g. "quantity: ledger=3 remote=5".
	Mismatch []string `json:"mismatch"`

	// Metadata carries adapter-specific detail (kind, listing id, ...).
	Metadata map[string]string `json:"metadata"`
}

// Spec bundles the adapter and cache settings for one audit surface.
type Spec struct {
	// Adapter provides the surface-specific load and compare logic.
	Adapter Adapter

	// CacheTTL is the time-to-live for cached snapshots.
	// If zero, every audit loads fresh.
	CacheTTL time.Duration
}

// CacheKey returns a unique key for caching snapshots of this spec.
func (s *Spec) CacheKey() string {
	return s.Adapter.Name()
}

// LedgerItem is one ledger-side entity. Adapters define the concrete type.
type LedgerItem any

// RemoteItem is one remote-listing entity. Adapters define the concrete type.
type RemoteItem any

// ActionType classifies a planned repair action.
type ActionType string

const (
	// ActionDeleteRemote removes a remote listing with no ledger backing.
	ActionDeleteRemote ActionType = "delete_remote"
	// ActionUnlinkLedger clears a ledger entry's stale remote listing reference.
	ActionUnlinkLedger ActionType = "unlink_ledger"
	// ActionSyncRemote updates a remote listing from the ledger state.
	ActionSyncRemote ActionType = "sync_remote"
)

// Action is one planned repair operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the entity identifier.
	Key string `json:"key"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Ledger stores the ledger source for sync actions.
	// Only populated for ActionSyncRemote.
	Ledger LedgerItem `json:"-"`
}

// AuditPlan contains audit results and planned repair actions.
type AuditPlan struct {
	// Results contains per-entity audit data, sorted by key.
	Results []AuditResult `json:"results"`

	// Actions contains planned repair operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for an audit plan.
type PlanSummary struct {
	// TotalEntries is the total number of unique entities seen on either side.
	TotalEntries int `json:"total_entries"`

	// MissingRemote counts ledger entries whose listing is absent remotely.
	MissingRemote int `json:"missing_remote"`

	// OrphanedRemote counts remote listings with no ledger backing.
	OrphanedRemote int `json:"orphaned_remote"`

	// Mismatches counts entities with field drift.
	Mismatches int `json:"mismatches"`

	// RepairActions counts planned repair operations.
	RepairActions int `json:"repair_actions"`
}

// Options controls planning and execution of repair actions.
type Options struct {
	// DryRun prevents execution of any repairs if true.
	DryRun bool

	// FixOrphans plans deletion of remote listings with no ledger backing
	// and unlinking of ledger entries whose listing is gone.
	FixOrphans bool

	// SyncDrift plans remote updates for entities with field drift.
	SyncDrift bool

	// Confirmed indicates the caller has confirmed destructive actions.
	// If false, repairs will not execute regardless of DryRun.
	Confirmed bool
}
