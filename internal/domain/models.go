// backend-go/internal/domain/models.go
package domain

import "time"

// WarehouseItem is a stock snapshot row for one sellable variant,
// aggregated across physical warehouses. It is replaced wholesale on
// every remains refresh, never merged.
type WarehouseItem struct {
	ItemID        int64   `json:"item_id" db:"item_id"`
	Brand         string  `json:"brand" db:"brand"`
	VendorCode    string  `json:"vendor_code" db:"vendor_code"`
	SubjectName   string  `json:"subject_name" db:"subject_name"`
	Size          string  `json:"size" db:"size"`
	StockQuantity int     `json:"stock_quantity" db:"stock_quantity"`
	Price         float64 `json:"price" db:"price"`
	Category      string  `json:"category,omitempty" db:"category"`
	Volume        float64 `json:"volume,omitempty" db:"volume"`
}

// StorageLedgerRow is one row of the paid-storage ledger for an item.
type StorageLedgerRow struct {
	ItemID     int64   `json:"item_id"`
	PeriodCost float64 `json:"period_cost"`
	Volume     float64 `json:"volume"`
}

// CostInputs holds the per-item unit economics the analysis runs on.
// Fields start as normalizer defaults and are overwritten only by
// explicit user edits, which persist across restarts.
type CostInputs struct {
	CostPrice         float64 `json:"cost_price"`
	SellingPrice      float64 `json:"selling_price"`
	DailySalesRate    float64 `json:"daily_sales_rate"`
	DailyStorageCost  float64 `json:"daily_storage_cost"`
	DiscountPercent   float64 `json:"discount_percent"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}

// CostInputEdit is a single explicit user override for one item.
// Nil fields are left untouched.
type CostInputEdit struct {
	ItemID            int64    `json:"item_id"`
	CostPrice         *float64 `json:"cost_price,omitempty"`
	SellingPrice      *float64 `json:"selling_price,omitempty"`
	LowStockThreshold *int     `json:"low_stock_threshold,omitempty"`
	DiscountPercent   *float64 `json:"discount_percent,omitempty"`
}

// CostOverrides are the persisted user edits for one store, keyed by
// item id. Only explicitly edited fields appear here; everything else
// is recomputed by the normalizer on each run.
type CostOverrides struct {
	CostPrices         map[int64]float64 `json:"cost_prices"`
	SellingPrices      map[int64]float64 `json:"selling_prices"`
	LowStockThresholds map[int64]int     `json:"low_stock_thresholds"`
	DiscountPercents   map[int64]float64 `json:"discount_percents"`
}

// NewCostOverrides returns an empty override set with all maps allocated.
func NewCostOverrides() CostOverrides {
	return CostOverrides{
		CostPrices:         make(map[int64]float64),
		SellingPrices:      make(map[int64]float64),
		LowStockThresholds: make(map[int64]int),
		DiscountPercents:   make(map[int64]float64),
	}
}

// AnalysisResult is the per-item output of the profitability engine.
// It is a derived view: recomputed from the latest WarehouseItem and
// CostInputs on every read, never persisted.
type AnalysisResult struct {
	ItemID        int64  `json:"item_id"`
	Brand         string `json:"brand"`
	VendorCode    string `json:"vendor_code"`
	SubjectName   string `json:"subject_name"`
	Size          string `json:"size"`
	StockQuantity int    `json:"stock_quantity"`

	Inputs CostInputs `json:"inputs"`

	DaysOfInventory           int     `json:"days_of_inventory"`
	TotalStorageCost          float64 `json:"total_storage_cost"`
	ProfitPerItem             float64 `json:"profit_per_item"`
	ProfitWithoutDiscount     float64 `json:"profit_without_discount"`
	DiscountedPrice           float64 `json:"discounted_price"`
	DiscountedDaysOfInv       int     `json:"discounted_days_of_inventory"`
	DiscountedStorageCost     float64 `json:"discounted_storage_cost"`
	ProfitWithDiscountPerItem float64 `json:"profit_with_discount_per_item"`
	ProfitWithDiscount        float64 `json:"profit_with_discount"`
	SavingsWithDiscount       float64 `json:"savings_with_discount"`

	Action               Action     `json:"action"`
	StockLevel           StockLevel `json:"stock_level"`
	LowStock             bool       `json:"low_stock"`
	StockLevelPercentage int        `json:"stock_level_percentage"`

	// ProjectedStockoutDate is set only when the sales rate is
	// positive; a zero rate has no projectable runway.
	ProjectedStockoutDate *time.Time `json:"projected_stockout_date,omitempty"`
}

// AnalysisSummary is the portfolio-level rollup over all results.
type AnalysisSummary struct {
	TotalItems                   int       `json:"total_items"`
	LowStockItems                int       `json:"low_stock_items"`
	DiscountItems                int       `json:"discount_items"`
	SellItems                    int       `json:"sell_items"`
	KeepItems                    int       `json:"keep_items"`
	TotalStorageCost             float64   `json:"total_storage_cost"`
	PotentialSavings             float64   `json:"potential_savings"`
	ItemsStockingOutBeforeTarget int       `json:"items_stocking_out_before_target"`
	TargetDate                   time.Time `json:"target_date"`
}

// ResultFilter selects and orders analysis results for presentation.
type ResultFilter struct {
	Search    string `json:"search"`
	Tab       Tab    `json:"tab"`
	SortField string `json:"sort_field"`
	SortDir   string `json:"sort_dir"`
}

// DatasetFreshness reports how old the cached copy of one dataset is.
type DatasetFreshness struct {
	Dataset    string  `json:"dataset"`
	AgeSeconds float64 `json:"age_seconds"`
	Cached     bool    `json:"cached"`
}
