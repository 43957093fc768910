package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

// Query filters and orders a result set for presentation. The input
// slice is not mutated.
func Query(results []domain.AnalysisResult, filter domain.ResultFilter) []domain.AnalysisResult {
	out := make([]domain.AnalysisResult, 0, len(results))
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	for _, r := range results {
		if !matchesTab(r, filter.Tab) {
			continue
		}
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		out = append(out, r)
	}

	sortResults(out, filter.SortField, filter.SortDir)

	return out
}

func matchesTab(r domain.AnalysisResult, tab domain.Tab) bool {
	switch tab {
	case domain.TabLowStock:
		return r.LowStock
	case domain.TabDiscount:
		return r.Action == domain.ActionDiscount || r.Action == domain.ActionSell
	case domain.TabKeep:
		return r.Action == domain.ActionKeep
	default:
		return true
	}
}

func matchesSearch(r domain.AnalysisResult, search string) bool {
	return strings.Contains(strings.ToLower(r.Brand), search) ||
		strings.Contains(strings.ToLower(r.SubjectName), search) ||
		strings.Contains(strings.ToLower(r.VendorCode), search) ||
		strings.Contains(strconv.FormatInt(r.ItemID, 10), search)
}

// sortResults orders results by the named field. Unknown fields leave
// the input order untouched; the sort itself is stable so repeated
// re-sorts do not shuffle equal rows.
func sortResults(results []domain.AnalysisResult, field, dir string) {
	less := lessBy(field)
	if less == nil {
		return
	}

	desc := strings.EqualFold(dir, "desc")
	sort.SliceStable(results, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		return less(results[i], results[j])
	})
}

// lessBy maps a declared result field to an ascending comparator.
// String fields compare case-insensitively.
func lessBy(field string) func(a, b domain.AnalysisResult) bool {
	byString := func(f func(domain.AnalysisResult) string) func(a, b domain.AnalysisResult) bool {
		return func(a, b domain.AnalysisResult) bool {
			return strings.ToLower(f(a)) < strings.ToLower(f(b))
		}
	}
	byFloat := func(f func(domain.AnalysisResult) float64) func(a, b domain.AnalysisResult) bool {
		return func(a, b domain.AnalysisResult) bool { return f(a) < f(b) }
	}

	switch strings.ToLower(strings.TrimSpace(field)) {
	case "brand":
		return byString(func(r domain.AnalysisResult) string { return r.Brand })
	case "vendor_code":
		return byString(func(r domain.AnalysisResult) string { return r.VendorCode })
	case "subject_name":
		return byString(func(r domain.AnalysisResult) string { return r.SubjectName })
	case "action":
		return byString(func(r domain.AnalysisResult) string { return string(r.Action) })
	case "stock_level":
		return byString(func(r domain.AnalysisResult) string { return string(r.StockLevel) })
	case "item_id":
		return byFloat(func(r domain.AnalysisResult) float64 { return float64(r.ItemID) })
	case "stock_quantity":
		return byFloat(func(r domain.AnalysisResult) float64 { return float64(r.StockQuantity) })
	case "days_of_inventory":
		return byFloat(func(r domain.AnalysisResult) float64 { return float64(r.DaysOfInventory) })
	case "total_storage_cost":
		return byFloat(func(r domain.AnalysisResult) float64 { return r.TotalStorageCost })
	case "profit_without_discount":
		return byFloat(func(r domain.AnalysisResult) float64 { return r.ProfitWithoutDiscount })
	case "profit_with_discount":
		return byFloat(func(r domain.AnalysisResult) float64 { return r.ProfitWithDiscount })
	case "savings_with_discount":
		return byFloat(func(r domain.AnalysisResult) float64 { return r.SavingsWithDiscount })
	case "stock_level_percentage":
		return byFloat(func(r domain.AnalysisResult) float64 { return float64(r.StockLevelPercentage) })
	default:
		return nil
	}
}
