// backend-go/internal/repository/costinputs.go
package repository

import (
	"context"

	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

// Document keys for the persisted per-store override documents. One
// JSON document per key, always partitioned by store id.
const (
	DocCostPrices         = "product_cost_prices"
	DocSellingPrices      = "product_selling_prices"
	DocLowStockThresholds = "product_low_stock_thresholds"
	DocDiscountPercents   = "product_discount_percents"
)

// CostInputsRepository stores explicit user cost-input overrides per
// store. Overrides survive restarts; a missing or unreadable document
// loads as an empty override set, never an error that blocks analysis.
type CostInputsRepository interface {
	Load(ctx context.Context, storeID string) (domain.CostOverrides, error)
	Save(ctx context.Context, storeID string, overrides domain.CostOverrides) error
}

// ApplyEdits merges explicit user edits into an override set. Nil
// fields in an edit leave the stored override untouched.
func ApplyEdits(overrides domain.CostOverrides, edits []domain.CostInputEdit) domain.CostOverrides {
	for _, edit := range edits {
		if edit.CostPrice != nil {
			overrides.CostPrices[edit.ItemID] = *edit.CostPrice
		}
		if edit.SellingPrice != nil {
			overrides.SellingPrices[edit.ItemID] = *edit.SellingPrice
		}
		if edit.LowStockThreshold != nil {
			overrides.LowStockThresholds[edit.ItemID] = *edit.LowStockThreshold
		}
		if edit.DiscountPercent != nil {
			overrides.DiscountPercents[edit.ItemID] = *edit.DiscountPercent
		}
	}
	return overrides
}
