package reconcile

import "context"

// Adapter defines the surface-specific audit logic. Each adapter implements
// how to load, key and compare one audit surface (e.g. the order book or the
// auction list) against the ledger.
type Adapter interface {
	// Name returns the unique name of this adapter (e.g. "orders", "auctions").
	Name() string

	// LoadLedgerIndex loads the ledger entries for this surface, indexed by
	// entity key. Implementations should load minimal columns in one query.
	LoadLedgerIndex(ctx context.Context) (map[string]LedgerItem, error)

	// LoadRemoteIndex loads the trader's remote listings for this surface,
	// indexed by entity key. Implementations must fetch fresh; a stale
	// listing snapshot makes the audit lie.
	LoadRemoteIndex(ctx context.Context) (map[string]RemoteItem, error)

	// ResolveName returns the display name for an entity given the available
	// ledger and/or remote items. Either item may be nil.
	ResolveName(ledger LedgerItem, remote RemoteItem) string

	// CompareFields compares mapped fields between ledger and remote items
	// and returns a list of drift descriptions. Each string should include
	// the field label and both values (e.g. "quantity: ledger=3 remote=5").
	// Both items are guaranteed to be non-nil when this is called.
	CompareFields(ledger LedgerItem, remote RemoteItem) []string

	// GetMetadata returns surface-specific metadata for the entity, included
	// in the AuditResult.
	GetMetadata(ledger LedgerItem, remote RemoteItem) map[string]string
}

// Mutator is implemented by adapters that can execute repair actions.
// Adapters without it produce plans that can never be applied.
type Mutator interface {
	// DeleteRemote removes the remote listing for the given key. A listing
	// already absent on the remote side must be treated as success.
	DeleteRemote(ctx context.Context, key string) error

	// UnlinkLedger clears the ledger entry's remote listing reference.
	UnlinkLedger(ctx context.Context, key string) error

	// SyncRemote updates the remote listing from the ledger state.
	SyncRemote(ctx context.Context, key string, ledger LedgerItem) error
}
