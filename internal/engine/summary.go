package engine

import (
	"time"

	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

// Summarize rolls the full result set up into portfolio KPIs against a
// target horizon date.
//
// PotentialSavings sums only positive per-item savings: it is an
// "upside available" figure, so negative savings are not netted
// against positive ones.
func Summarize(results []domain.AnalysisResult, targetDate time.Time) domain.AnalysisSummary {
	summary := domain.AnalysisSummary{
		TotalItems: len(results),
		TargetDate: targetDate,
	}

	for _, r := range results {
		if r.LowStock {
			summary.LowStockItems++
		}

		switch r.Action {
		case domain.ActionDiscount:
			summary.DiscountItems++
		case domain.ActionSell:
			summary.SellItems++
		case domain.ActionKeep:
			summary.KeepItems++
		}

		summary.TotalStorageCost += r.TotalStorageCost

		if r.SavingsWithDiscount > 0 {
			summary.PotentialSavings += r.SavingsWithDiscount
		}

		if r.ProjectedStockoutDate != nil && !r.ProjectedStockoutDate.After(targetDate) {
			summary.ItemsStockingOutBeforeTarget++
		}
	}

	summary.TotalStorageCost = roundMoney(summary.TotalStorageCost)
	summary.PotentialSavings = roundMoney(summary.PotentialSavings)

	return summary
}
