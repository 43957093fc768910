package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

// MemoryCostInputsRepository keeps overrides in process memory. Used
// in tests and when running the engine without a database.
type MemoryCostInputsRepository struct {
	mu   sync.RWMutex
	docs map[string][]byte // storeID -> encoded overrides
}

func NewMemoryCostInputsRepository() *MemoryCostInputsRepository {
	return &MemoryCostInputsRepository{docs: make(map[string][]byte)}
}

func (r *MemoryCostInputsRepository) Load(ctx context.Context, storeID string) (domain.CostOverrides, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	overrides := domain.NewCostOverrides()
	payload, ok := r.docs[storeID]
	if !ok {
		return overrides, nil
	}
	if err := json.Unmarshal(payload, &overrides); err != nil {
		// Unreadable state loads as empty, mirroring the durable impl
		return domain.NewCostOverrides(), nil
	}
	return overrides, nil
}

func (r *MemoryCostInputsRepository) Save(ctx context.Context, storeID string, overrides domain.CostOverrides) error {
	payload, err := json.Marshal(overrides)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[storeID] = payload
	return nil
}

var _ CostInputsRepository = (*MemoryCostInputsRepository)(nil)
