package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerdesk/stockwise/backend-go/internal/api"
	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
	"github.com/sellerdesk/stockwise/backend-go/internal/engine"
	"github.com/sellerdesk/stockwise/backend-go/internal/provider"
	"github.com/sellerdesk/stockwise/backend-go/internal/service"
)

type stubProviders struct {
	items []domain.WarehouseItem
	sales map[int64]float64
}

func (s *stubProviders) FetchWarehouseRemains(ctx context.Context) ([]domain.WarehouseItem, error) {
	return s.items, nil
}

func (s *stubProviders) FetchStorageLedger(ctx context.Context, from, to time.Time) ([]domain.StorageLedgerRow, error) {
	return nil, nil
}

func (s *stubProviders) FetchAverageDailySales(ctx context.Context, from, to time.Time) (map[int64]float64, error) {
	return s.sales, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := &stubProviders{
		items: []domain.WarehouseItem{
			{ItemID: 100, Brand: "Acme", VendorCode: "ACM-1", SubjectName: "Sneakers", StockQuantity: 40, Price: 80, Category: "footwear", Volume: 2},
			{ItemID: 200, Brand: "Bolt", VendorCode: "BLT-7", SubjectName: "Jacket", StockQuantity: 5, Price: 120, Category: "apparel", Volume: 4},
		},
		sales: map[int64]float64{100: 4, 200: 0.5},
	}
	svc := service.NewAnalysisService(service.Options{
		Providers: provider.Providers{Remains: stub, Storage: stub, Sales: stub},
		Params:    engine.DefaultParams(),
		Rates:     engine.DefaultStorageRates(),
	})
	return api.NewRouter(&api.Services{AnalysisService: svc}, nil)
}

func doRequest(router *gin.Engine, method, path, storeID, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if storeID != "" {
		req.Header.Set("X-Store-ID", storeID)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetItemsRequiresStoreHeader(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/v1/analysis/items", "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without store header, got %d", rec.Code)
	}
}

func TestRefreshThenGetItems(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/v1/analysis/refresh", "store-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(router, http.MethodGet, "/api/v1/analysis/items", "store-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("items failed: %d %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Items []domain.AnalysisResult `json:"items"`
		Total int                     `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode items response: %v", err)
	}
	if payload.Total != 2 || len(payload.Items) != 2 {
		t.Fatalf("expected 2 items, got total=%d len=%d", payload.Total, len(payload.Items))
	}
}

func TestGetItemsSearchFilter(t *testing.T) {
	router := newTestRouter(t)
	doRequest(router, http.MethodPost, "/api/v1/analysis/refresh", "store-1", "")

	rec := doRequest(router, http.MethodGet, "/api/v1/analysis/items?search=acme", "store-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("items failed: %d %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Items []domain.AnalysisResult `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode items response: %v", err)
	}
	if len(payload.Items) != 1 || payload.Items[0].ItemID != 100 {
		t.Fatalf("expected only the Acme item, got %+v", payload.Items)
	}
}

func TestGetSummaryRejectsBadTargetDate(t *testing.T) {
	router := newTestRouter(t)
	doRequest(router, http.MethodPost, "/api/v1/analysis/refresh", "store-1", "")

	rec := doRequest(router, http.MethodGet, "/api/v1/analysis/summary?target_date=next-tuesday", "store-1", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad target_date, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodGet, "/api/v1/analysis/summary?target_date=2026-09-30", "store-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
	}
}

func TestSaveCostInputsValidation(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(router, http.MethodPut, "/api/v1/analysis/cost-inputs", "store-1", `{"edits":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty edits, got %d", rec.Code)
	}

	rec = doRequest(router, http.MethodPut, "/api/v1/analysis/cost-inputs", "store-1", `{"edits":[{"item_id":100,"cost_price":55}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save failed: %d %s", rec.Code, rec.Body.String())
	}
}

func TestClearCacheAndFreshness(t *testing.T) {
	router := newTestRouter(t)
	doRequest(router, http.MethodPost, "/api/v1/analysis/refresh", "store-1", "")

	rec := doRequest(router, http.MethodGet, "/api/v1/analysis/freshness", "store-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("freshness failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(router, http.MethodDelete, "/api/v1/analysis/cache", "store-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("clear failed: %d %s", rec.Code, rec.Body.String())
	}
}
