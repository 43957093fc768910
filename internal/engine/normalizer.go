package engine

import (
	"strings"

	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

// Normalizer derives complete CostInputs for every item in a stock
// snapshot, filling the gaps between persisted user overrides and
// whatever provider datasets happen to be available. A missing dataset
// degrades to heuristics; it never blocks analysis.
type Normalizer struct {
	params       Params
	storageRates StorageRateTable
}

// NewNormalizer creates a normalizer with the given parameters and
// category storage-rate table.
func NewNormalizer(params Params, rates StorageRateTable) *Normalizer {
	if rates == nil {
		rates = DefaultStorageRates()
	}
	return &Normalizer{params: params, storageRates: rates}
}

// Normalize builds the per-item inputs map for one store snapshot.
//
// sales maps item id to average units/day and may be nil. ledger rows
// carry the paid-storage cost over ledgerDays and may be empty.
// overrides are the persisted user edits; a field present there is
// never overwritten by a heuristic default.
func (n *Normalizer) Normalize(
	items []domain.WarehouseItem,
	overrides domain.CostOverrides,
	sales map[int64]float64,
	ledger []domain.StorageLedgerRow,
	ledgerDays int,
) map[int64]domain.CostInputs {
	if ledgerDays <= 0 {
		ledgerDays = 1
	}

	ledgerByItem := make(map[int64]domain.StorageLedgerRow, len(ledger))
	for _, row := range ledger {
		ledgerByItem[row.ItemID] = row
	}

	inputs := make(map[int64]domain.CostInputs, len(items))
	for _, item := range items {
		ci := domain.CostInputs{}

		// Sales velocity: provider value, else conservative fallback
		if rate, ok := sales[item.ItemID]; ok && rate > 0 {
			ci.DailySalesRate = rate
		} else {
			ci.DailySalesRate = n.params.DefaultDailySalesRate
		}

		// Daily storage cost: ledger row, else category heuristic
		if row, ok := ledgerByItem[item.ItemID]; ok && row.PeriodCost > 0 {
			ci.DailyStorageCost = roundMoney(row.PeriodCost / float64(ledgerDays))
		} else {
			ci.DailyStorageCost = n.heuristicStorageCost(item)
		}

		// Selling price defaults to the listed price
		ci.SellingPrice = item.Price
		ci.DiscountPercent = n.params.DefaultDiscountPercent
		ci.LowStockThreshold = n.defaultThreshold(ci.DailySalesRate)

		// User overrides always win
		if v, ok := overrides.CostPrices[item.ItemID]; ok {
			ci.CostPrice = v
		}
		if v, ok := overrides.SellingPrices[item.ItemID]; ok {
			ci.SellingPrice = v
		}
		if v, ok := overrides.LowStockThresholds[item.ItemID]; ok {
			ci.LowStockThreshold = v
		}
		if v, ok := overrides.DiscountPercents[item.ItemID]; ok {
			ci.DiscountPercent = v
		}

		inputs[item.ItemID] = ci
	}

	return inputs
}

// heuristicStorageCost prices storage from the category table times
// item volume, falling back to the flat default when the item has no
// usable volume.
func (n *Normalizer) heuristicStorageCost(item domain.WarehouseItem) float64 {
	rate, ok := n.storageRates[strings.ToLower(strings.TrimSpace(item.Category))]
	if !ok {
		rate = n.storageRates["default"]
	}

	if rate > 0 && item.Volume > 0 {
		return roundMoney(rate * item.Volume)
	}
	return n.params.FlatDailyStorageCost
}

// defaultThreshold is a one-week sales buffer, floored at the minimum.
func (n *Normalizer) defaultThreshold(dailySalesRate float64) int {
	threshold := ceilUnits(dailySalesRate * float64(n.params.LowStockBufferDays))
	if threshold < n.params.MinLowStockThreshold {
		threshold = n.params.MinLowStockThreshold
	}
	return threshold
}
