package provider

import (
	"sync"

	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

// SnapshotKey addresses the latest payload of one dataset for one store.
type SnapshotKey struct {
	Dataset domain.Dataset
	StoreID string
}

// Snapshot is the engine's current input state for one store. Each
// dataset slot holds whatever the last committed fetch delivered;
// missing slots degrade to normalizer heuristics downstream.
type Snapshot struct {
	Items  []domain.WarehouseItem
	Ledger []domain.StorageLedgerRow
	Sales  map[int64]float64
}

type slot struct {
	started   uint64 // generation of the newest fetch that began
	committed uint64 // generation of the fetch currently stored
	payload   interface{}
}

// SnapshotTable keeps the latest provider payloads per (dataset,
// store) with a monotonically increasing generation counter per key.
// A fetch that completes after a newer fetch for the same key has
// started is discarded on commit, so stale completions can never
// overwrite fresher data.
type SnapshotTable struct {
	mu    sync.Mutex
	slots map[SnapshotKey]*slot
}

func NewSnapshotTable() *SnapshotTable {
	return &SnapshotTable{slots: make(map[SnapshotKey]*slot)}
}

// Begin registers the start of a fetch and returns its generation.
func (t *SnapshotTable) Begin(key SnapshotKey) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.slot(key)
	s.started++
	return s.started
}

// Commit stores the payload unless a newer fetch for the same key has
// already started. Returns whether the payload was accepted.
func (t *SnapshotTable) Commit(key SnapshotKey, gen uint64, payload interface{}) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.slot(key)
	if gen < s.started {
		return false
	}
	s.committed = gen
	s.payload = payload
	return true
}

// Get returns the last committed payload for a key.
func (t *SnapshotTable) Get(key SnapshotKey) (interface{}, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, ok := t.slots[key]
	if !ok || s.committed == 0 {
		return nil, false
	}
	return s.payload, true
}

// Current assembles the full input snapshot for one store. Datasets
// that have never committed are left zero.
func (t *SnapshotTable) Current(storeID string) Snapshot {
	var snapshot Snapshot

	if payload, ok := t.Get(SnapshotKey{Dataset: domain.DatasetRemains, StoreID: storeID}); ok {
		if items, ok := payload.([]domain.WarehouseItem); ok {
			snapshot.Items = items
		}
	}
	if payload, ok := t.Get(SnapshotKey{Dataset: domain.DatasetStorageLedger, StoreID: storeID}); ok {
		if ledger, ok := payload.([]domain.StorageLedgerRow); ok {
			snapshot.Ledger = ledger
		}
	}
	if payload, ok := t.Get(SnapshotKey{Dataset: domain.DatasetSalesVelocity, StoreID: storeID}); ok {
		if sales, ok := payload.(map[int64]float64); ok {
			snapshot.Sales = sales
		}
	}

	return snapshot
}

func (t *SnapshotTable) slot(key SnapshotKey) *slot {
	s, ok := t.slots[key]
	if !ok {
		s = &slot{}
		t.slots[key] = s
	}
	return s
}
