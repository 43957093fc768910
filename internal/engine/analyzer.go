package engine

import (
	"math"
	"time"

	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

// Analyzer computes storage-profitability metrics for warehouse items.
// Analyze is pure: same item, inputs and clock always produce the same
// result, and no numeric edge case raises an error.
type Analyzer struct {
	params Params
}

// NewAnalyzer creates an analyzer with the given parameters.
func NewAnalyzer(params Params) *Analyzer {
	return &Analyzer{params: params}
}

// Analyze computes the full metric set for a single item.
func (a *Analyzer) Analyze(item domain.WarehouseItem, inputs domain.CostInputs, now time.Time) domain.AnalysisResult {
	result := domain.AnalysisResult{
		ItemID:        item.ItemID,
		Brand:         item.Brand,
		VendorCode:    item.VendorCode,
		SubjectName:   item.SubjectName,
		Size:          item.Size,
		StockQuantity: item.StockQuantity,
		Inputs:        inputs,
	}

	stock := float64(item.StockQuantity)

	// 1. Days of inventory. Zero sales rate gets a large finite
	// sentinel so downstream sorting stays total.
	if inputs.DailySalesRate > 0 {
		result.DaysOfInventory = int(math.Round(stock / inputs.DailySalesRate))
		if result.DaysOfInventory > a.params.SentinelDaysOfInventory {
			result.DaysOfInventory = a.params.SentinelDaysOfInventory
		}
	} else {
		result.DaysOfInventory = a.params.SentinelDaysOfInventory
	}

	// 2. Storage cost over the remaining runway
	result.TotalStorageCost = roundMoney(inputs.DailyStorageCost * float64(result.DaysOfInventory))

	// 3. Profit at current price
	result.ProfitPerItem = roundMoney(inputs.SellingPrice - inputs.CostPrice)
	result.ProfitWithoutDiscount = roundMoney(result.ProfitPerItem*stock - result.TotalStorageCost)

	// 4. Discounted price
	result.DiscountedPrice = roundMoney(inputs.SellingPrice * (1 - inputs.DiscountPercent/100))

	// 5. Discounting is assumed to shorten sell-through time
	result.DiscountedDaysOfInv = int(math.Round(float64(result.DaysOfInventory) * a.params.DiscountSellThroughFactor))

	// 6. Storage cost over the discounted runway
	result.DiscountedStorageCost = roundMoney(inputs.DailyStorageCost * float64(result.DiscountedDaysOfInv))

	// 7. Profit at the discounted price
	result.ProfitWithDiscountPerItem = roundMoney(result.DiscountedPrice - inputs.CostPrice)
	result.ProfitWithDiscount = roundMoney(result.ProfitWithDiscountPerItem*stock - result.DiscountedStorageCost)

	// 8. Savings from discounting. Kept as the exact difference of the
	// two rounded profits so the identity holds bit-for-bit.
	result.SavingsWithDiscount = result.ProfitWithDiscount - result.ProfitWithoutDiscount

	// 9. Action decision, first matching rule wins
	result.Action = a.decideAction(result)

	// 10. Stock classification against the low-stock threshold
	result.StockLevel, result.LowStock = a.classifyStock(item.StockQuantity, inputs.LowStockThreshold)
	result.StockLevelPercentage = stockLevelPercentage(item.StockQuantity, inputs.LowStockThreshold)

	// 11. Stockout projection, only meaningful with a positive rate
	if inputs.DailySalesRate > 0 {
		stockout := now.AddDate(0, 0, result.DaysOfInventory)
		result.ProjectedStockoutDate = &stockout
	}

	return result
}

// AnalyzeAll runs Analyze over a full snapshot, reading each item's
// inputs from the normalized map.
func (a *Analyzer) AnalyzeAll(items []domain.WarehouseItem, inputs map[int64]domain.CostInputs, now time.Time) []domain.AnalysisResult {
	results := make([]domain.AnalysisResult, 0, len(items))
	for _, item := range items {
		results = append(results, a.Analyze(item, inputs[item.ItemID], now))
	}
	return results
}

func (a *Analyzer) decideAction(r domain.AnalysisResult) domain.Action {
	// Overstocked and still profitable after the discount
	if r.DaysOfInventory > a.params.OverstockDays && r.ProfitWithDiscountPerItem > 0 {
		return domain.ActionDiscount
	}

	// Both unit margins negative: liquidate
	if r.ProfitWithDiscountPerItem < 0 && r.ProfitPerItem < 0 {
		return domain.ActionSell
	}

	// Discounting nets out positive
	if r.SavingsWithDiscount > 0 {
		return domain.ActionDiscount
	}

	return domain.ActionKeep
}

func (a *Analyzer) classifyStock(stock, threshold int) (domain.StockLevel, bool) {
	switch {
	case stock <= threshold:
		return domain.StockLevelLow, true
	case stock <= threshold*a.params.MediumStockMultiplier:
		return domain.StockLevelMedium, false
	default:
		return domain.StockLevelHigh, false
	}
}

func stockLevelPercentage(stock, threshold int) int {
	if threshold <= 0 {
		return 100
	}
	pct := int(math.Round(float64(stock) / (float64(threshold) * 2) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
