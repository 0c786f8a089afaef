package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Snapshot holds one loaded pair of indices for fast repeated audits.
type Snapshot struct {
	// LedgerIndex is the indexed map of ledger items by entity key.
	LedgerIndex map[string]LedgerItem

	// RemoteIndex is the indexed map of remote listings by entity key.
	RemoteIndex map[string]RemoteItem

	// Built is the timestamp when this snapshot was built.
	Built time.Time

	// TTL is the time-to-live for this snapshot.
	TTL time.Duration
}

// IsExpired returns true if this snapshot has expired based on its TTL.
func (s *Snapshot) IsExpired() bool {
	if s.TTL == 0 {
		return true
	}
	return time.Since(s.Built) > s.TTL
}

// snapshotStore holds all audit snapshots keyed by spec cache key.
type snapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	sf        singleflight.Group
}

var globalSnapshotStore = &snapshotStore{
	snapshots: make(map[string]*Snapshot),
}

// BuildSnapshot loads both indices concurrently and returns a fresh snapshot.
// This function does NOT store the snapshot; use GetOrBuildSnapshot for that.
func BuildSnapshot(ctx context.Context, spec *Spec) (*Snapshot, error) {
	var (
		ledgerIndex map[string]LedgerItem
		remoteIndex map[string]RemoteItem
		ledgerErr   error
		remoteErr   error
		wg          sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		ledgerIndex, ledgerErr = spec.Adapter.LoadLedgerIndex(ctx)
	}()
	go func() {
		defer wg.Done()
		remoteIndex, remoteErr = spec.Adapter.LoadRemoteIndex(ctx)
	}()
	wg.Wait()

	if ledgerErr != nil {
		return nil, ledgerErr
	}
	if remoteErr != nil {
		return nil, remoteErr
	}

	return &Snapshot{
		LedgerIndex: ledgerIndex,
		RemoteIndex: remoteIndex,
		Built:       time.Now(),
		TTL:         spec.CacheTTL,
	}, nil
}

// GetOrBuildSnapshot retrieves a snapshot for the given spec from the store,
// or builds a new one if it doesn't exist or has expired.
// Uses singleflight to prevent snapshot stampedes.
func GetOrBuildSnapshot(ctx context.Context, spec *Spec) (*Snapshot, error) {
	cacheKey := spec.CacheKey()

	globalSnapshotStore.mu.RLock()
	snapshot, exists := globalSnapshotStore.snapshots[cacheKey]
	globalSnapshotStore.mu.RUnlock()

	if exists && !snapshot.IsExpired() {
		return snapshot, nil
	}

	result, err, _ := globalSnapshotStore.sf.Do(cacheKey, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		globalSnapshotStore.mu.RLock()
		snapshot, exists := globalSnapshotStore.snapshots[cacheKey]
		globalSnapshotStore.mu.RUnlock()

		if exists && !snapshot.IsExpired() {
			return snapshot, nil
		}

		fresh, err := BuildSnapshot(ctx, spec)
		if err != nil {
			return nil, err
		}

		globalSnapshotStore.mu.Lock()
		globalSnapshotStore.snapshots[cacheKey] = fresh
		globalSnapshotStore.mu.Unlock()

		return fresh, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Snapshot), nil
}

// InvalidateSnapshot removes the snapshot for the given spec from the store.
// Useful after applying repairs, so the next audit sees the repaired state.
func InvalidateSnapshot(spec *Spec) {
	cacheKey := spec.CacheKey()
	globalSnapshotStore.mu.Lock()
	delete(globalSnapshotStore.snapshots, cacheKey)
	globalSnapshotStore.mu.Unlock()
}
