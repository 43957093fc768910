package engine

// Params holds the tunable constants of the profitability analysis.
// The defaults mirror the dashboard's historical behaviour; none of
// them are validated business rules, so they stay configurable.
type Params struct {
	// SentinelDaysOfInventory caps days-of-inventory when the sales
	// rate is zero. Finite so sorting and formatting stay total.
	SentinelDaysOfInventory int

	// DiscountSellThroughFactor scales days-of-inventory under a
	// discount. 0.5 assumes discounting halves sell-through time.
	DiscountSellThroughFactor float64

	// OverstockDays is the runway above which a profitable discount
	// is recommended outright.
	OverstockDays int

	// DefaultDiscountPercent is applied when the user has not chosen
	// a discount for an item.
	DefaultDiscountPercent float64

	// MediumStockMultiplier widens the low threshold into the medium
	// band: stock <= threshold*multiplier is "medium".
	MediumStockMultiplier int

	// DefaultDailySalesRate is the conservative non-zero fallback
	// when the sales-velocity provider has no row for an item.
	DefaultDailySalesRate float64

	// LowStockBufferDays and MinLowStockThreshold derive the default
	// low-stock threshold: max(min, ceil(rate*buffer)).
	LowStockBufferDays   int
	MinLowStockThreshold int

	// FlatDailyStorageCost is the last-resort storage cost when
	// neither the ledger nor the category table can price an item.
	FlatDailyStorageCost float64
}

// DefaultParams returns the engine defaults.
func DefaultParams() Params {
	return Params{
		SentinelDaysOfInventory:   999,
		DiscountSellThroughFactor: 0.5,
		OverstockDays:             60,
		DefaultDiscountPercent:    30,
		MediumStockMultiplier:     3,
		DefaultDailySalesRate:     0.1,
		LowStockBufferDays:        7,
		MinLowStockThreshold:      3,
		FlatDailyStorageCost:      0.5,
	}
}

// StorageRateTable maps an item category to a per-litre daily storage
// rate used when the paid-storage ledger has no row for the item.
type StorageRateTable map[string]float64

// DefaultStorageRates returns the category heuristic table. The
// "default" key prices categories missing from the table.
func DefaultStorageRates() StorageRateTable {
	return StorageRateTable{
		"footwear":    0.20,
		"apparel":     0.12,
		"electronics": 0.30,
		"accessories": 0.08,
		"default":     0.15,
	}
}
