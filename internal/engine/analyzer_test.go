package engine

import (
	"testing"
	"time"

	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestAnalyze_OverstockScenario(t *testing.T) {
	// stock=100, sales=5/day, storage=2/day, cost=50, price=80, 30% off
	analyzer := NewAnalyzer(DefaultParams())

	item := domain.WarehouseItem{ItemID: 1001, StockQuantity: 100}
	inputs := domain.CostInputs{
		CostPrice:         50,
		SellingPrice:      80,
		DailySalesRate:    5,
		DailyStorageCost:  2,
		DiscountPercent:   30,
		LowStockThreshold: 35,
	}

	r := analyzer.Analyze(item, inputs, testNow)

	if r.DaysOfInventory != 20 {
		t.Errorf("DaysOfInventory = %d, want 20", r.DaysOfInventory)
	}
	if r.TotalStorageCost != 40 {
		t.Errorf("TotalStorageCost = %v, want 40", r.TotalStorageCost)
	}
	if r.ProfitWithoutDiscount != 2960 {
		t.Errorf("ProfitWithoutDiscount = %v, want 2960", r.ProfitWithoutDiscount)
	}
	if r.DiscountedPrice != 56 {
		t.Errorf("DiscountedPrice = %v, want 56", r.DiscountedPrice)
	}
	if r.DiscountedDaysOfInv != 10 {
		t.Errorf("DiscountedDaysOfInv = %d, want 10", r.DiscountedDaysOfInv)
	}
	if r.DiscountedStorageCost != 20 {
		t.Errorf("DiscountedStorageCost = %v, want 20", r.DiscountedStorageCost)
	}
	if r.ProfitWithDiscount != 580 {
		t.Errorf("ProfitWithDiscount = %v, want 580", r.ProfitWithDiscount)
	}
	if r.SavingsWithDiscount != -2380 {
		t.Errorf("SavingsWithDiscount = %v, want -2380", r.SavingsWithDiscount)
	}

	// 20 days <= 60, discounted unit margin 6 > 0, savings negative:
	// every discount/sell rule fails, so the item is kept.
	if r.Action != domain.ActionKeep {
		t.Errorf("Action = %q, want %q", r.Action, domain.ActionKeep)
	}
}

func TestAnalyze_ZeroSalesRate(t *testing.T) {
	analyzer := NewAnalyzer(DefaultParams())

	item := domain.WarehouseItem{ItemID: 1002, StockQuantity: 10}
	inputs := domain.CostInputs{
		CostPrice:         20,
		SellingPrice:      35,
		DailySalesRate:    0,
		DailyStorageCost:  1,
		DiscountPercent:   30,
		LowStockThreshold: 10,
	}

	r := analyzer.Analyze(item, inputs, testNow)

	if r.DaysOfInventory != 999 {
		t.Errorf("DaysOfInventory = %d, want sentinel 999", r.DaysOfInventory)
	}
	if r.ProjectedStockoutDate != nil {
		t.Errorf("ProjectedStockoutDate = %v, want nil for zero sales rate", r.ProjectedStockoutDate)
	}
	// Threshold evaluation is unaffected by the sentinel
	if !r.LowStock {
		t.Error("LowStock = false, want true at stock == threshold")
	}
}

func TestAnalyze_ThresholdBoundary(t *testing.T) {
	analyzer := NewAnalyzer(DefaultParams())
	inputs := domain.CostInputs{
		SellingPrice:      30,
		CostPrice:         10,
		DailySalesRate:    1,
		DailyStorageCost:  0.5,
		DiscountPercent:   30,
		LowStockThreshold: 5,
	}

	tests := []struct {
		name     string
		stock    int
		lowStock bool
		level    domain.StockLevel
	}{
		{"at threshold", 5, true, domain.StockLevelLow},
		{"one above threshold", 6, false, domain.StockLevelMedium},
		{"at medium bound", 15, false, domain.StockLevelMedium},
		{"above medium bound", 16, false, domain.StockLevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := analyzer.Analyze(domain.WarehouseItem{ItemID: 1, StockQuantity: tt.stock}, inputs, testNow)
			if r.LowStock != tt.lowStock {
				t.Errorf("LowStock = %v, want %v", r.LowStock, tt.lowStock)
			}
			if r.StockLevel != tt.level {
				t.Errorf("StockLevel = %q, want %q", r.StockLevel, tt.level)
			}
		})
	}
}

func TestAnalyze_ActionRules(t *testing.T) {
	analyzer := NewAnalyzer(DefaultParams())

	tests := []struct {
		name   string
		item   domain.WarehouseItem
		inputs domain.CostInputs
		want   domain.Action
	}{
		{
			// 1000/5 = 200 days runway, discounted margin still positive
			name: "overstocked and profitable after discount",
			item: domain.WarehouseItem{ItemID: 1, StockQuantity: 1000},
			inputs: domain.CostInputs{
				CostPrice: 10, SellingPrice: 50,
				DailySalesRate: 5, DailyStorageCost: 0.1,
				DiscountPercent: 30, LowStockThreshold: 10,
			},
			want: domain.ActionDiscount,
		},
		{
			// Margin negative at full price and after discount
			name: "both margins negative",
			item: domain.WarehouseItem{ItemID: 2, StockQuantity: 50},
			inputs: domain.CostInputs{
				CostPrice: 100, SellingPrice: 90,
				DailySalesRate: 5, DailyStorageCost: 1,
				DiscountPercent: 30, LowStockThreshold: 10,
			},
			want: domain.ActionSell,
		},
		{
			// Short runway, but storage is so expensive that halving
			// it beats the lost margin
			name: "savings positive",
			item: domain.WarehouseItem{ItemID: 3, StockQuantity: 10},
			inputs: domain.CostInputs{
				CostPrice: 50, SellingPrice: 52,
				DailySalesRate: 0.5, DailyStorageCost: 20,
				DiscountPercent: 1, LowStockThreshold: 5,
			},
			want: domain.ActionDiscount,
		},
		{
			name: "default keep",
			item: domain.WarehouseItem{ItemID: 4, StockQuantity: 100},
			inputs: domain.CostInputs{
				CostPrice: 50, SellingPrice: 80,
				DailySalesRate: 5, DailyStorageCost: 2,
				DiscountPercent: 30, LowStockThreshold: 35,
			},
			want: domain.ActionKeep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := analyzer.Analyze(tt.item, tt.inputs, testNow)
			if r.Action != tt.want {
				t.Errorf("Action = %q, want %q (savings=%v pwdpi=%v ppi=%v days=%d)",
					r.Action, tt.want, r.SavingsWithDiscount, r.ProfitWithDiscountPerItem, r.ProfitPerItem, r.DaysOfInventory)
			}
		})
	}
}

func TestAnalyze_Invariants(t *testing.T) {
	analyzer := NewAnalyzer(DefaultParams())

	items := []domain.WarehouseItem{
		{ItemID: 1, StockQuantity: 0},
		{ItemID: 2, StockQuantity: 1},
		{ItemID: 3, StockQuantity: 100},
		{ItemID: 4, StockQuantity: 100000},
	}
	inputSets := []domain.CostInputs{
		{},
		{CostPrice: 50, SellingPrice: 80, DailySalesRate: 5, DailyStorageCost: 2, DiscountPercent: 30, LowStockThreshold: 10},
		{CostPrice: 120, SellingPrice: 90, DailySalesRate: 0.01, DailyStorageCost: 15, DiscountPercent: 90, LowStockThreshold: 3},
		{CostPrice: 0, SellingPrice: 0, DailySalesRate: 0, DailyStorageCost: 0, DiscountPercent: 0, LowStockThreshold: 0},
	}

	for _, item := range items {
		for _, inputs := range inputSets {
			r := analyzer.Analyze(item, inputs, testNow)

			if r.DaysOfInventory < 0 || r.DaysOfInventory > 999 {
				t.Errorf("item %d: DaysOfInventory = %d, want within [0, 999]", item.ItemID, r.DaysOfInventory)
			}
			if got := r.ProfitWithDiscount - r.ProfitWithoutDiscount; r.SavingsWithDiscount != got {
				t.Errorf("item %d: SavingsWithDiscount = %v, want %v", item.ItemID, r.SavingsWithDiscount, got)
			}
			if r.Action != domain.ActionKeep && r.Action != domain.ActionDiscount && r.Action != domain.ActionSell {
				t.Errorf("item %d: unexpected action %q", item.ItemID, r.Action)
			}
			if r.StockLevelPercentage < 0 || r.StockLevelPercentage > 100 {
				t.Errorf("item %d: StockLevelPercentage = %d, want within [0, 100]", item.ItemID, r.StockLevelPercentage)
			}

			// Determinism
			again := analyzer.Analyze(item, inputs, testNow)
			if again.Action != r.Action || again.SavingsWithDiscount != r.SavingsWithDiscount {
				t.Errorf("item %d: analysis is not deterministic", item.ItemID)
			}
		}
	}
}

func TestAnalyze_StockoutProjection(t *testing.T) {
	analyzer := NewAnalyzer(DefaultParams())

	r := analyzer.Analyze(
		domain.WarehouseItem{ItemID: 1, StockQuantity: 100},
		domain.CostInputs{SellingPrice: 10, DailySalesRate: 5, LowStockThreshold: 3},
		testNow,
	)

	if r.ProjectedStockoutDate == nil {
		t.Fatal("ProjectedStockoutDate = nil, want a date for positive sales rate")
	}
	want := testNow.AddDate(0, 0, 20)
	if !r.ProjectedStockoutDate.Equal(want) {
		t.Errorf("ProjectedStockoutDate = %v, want %v", r.ProjectedStockoutDate, want)
	}
}
