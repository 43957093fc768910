package domain

import "strings"

// Action is the engine's per-item recommendation.
type Action string

const (
	// ActionKeep leaves the item at its current price.
	ActionKeep Action = "keep"
	// ActionDiscount applies a discount to accelerate sell-through.
	ActionDiscount Action = "discount"
	// ActionSell liquidates at a loss to stop storage-cost accrual.
	ActionSell Action = "sell"
)

// StockLevel bands current stock against the low-stock threshold.
type StockLevel string

const (
	StockLevelLow    StockLevel = "low"
	StockLevelMedium StockLevel = "medium"
	StockLevelHigh   StockLevel = "high"
)

// Tab is a preset filter over analysis results.
type Tab string

const (
	TabAll      Tab = "all"
	TabLowStock Tab = "low-stock"
	TabDiscount Tab = "discount"
	TabKeep     Tab = "keep"
)

// ParseTab returns the tab for a label (case-insensitive). Unknown
// labels fall back to TabAll.
func ParseTab(label string) Tab {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "low-stock", "low_stock":
		return TabLowStock
	case "discount":
		return TabDiscount
	case "keep":
		return TabKeep
	default:
		return TabAll
	}
}

// Dataset identifies one of the independently fetched provider inputs.
type Dataset string

const (
	DatasetRemains       Dataset = "warehouse_remains"
	DatasetStorageLedger Dataset = "storage_ledger"
	DatasetSalesVelocity Dataset = "sales_velocity"
)

// Datasets lists every provider dataset in a stable order.
func Datasets() []Dataset {
	return []Dataset{DatasetRemains, DatasetStorageLedger, DatasetSalesVelocity}
}
