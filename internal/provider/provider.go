// Package provider defines the three marketplace report inputs the
// engine consumes. The remote wire protocols are external concerns;
// only the fetched shapes matter here.
package provider

import (
	"context"
	"time"

	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

// RemainsProvider fetches the current stock snapshot.
type RemainsProvider interface {
	FetchWarehouseRemains(ctx context.Context) ([]domain.WarehouseItem, error)
}

// StorageProvider fetches the paid-storage ledger over a period.
type StorageProvider interface {
	FetchStorageLedger(ctx context.Context, dateFrom, dateTo time.Time) ([]domain.StorageLedgerRow, error)
}

// SalesProvider fetches average daily sales per item over a period.
type SalesProvider interface {
	FetchAverageDailySales(ctx context.Context, dateFrom, dateTo time.Time) (map[int64]float64, error)
}

// Providers bundles the three independent report sources.
type Providers struct {
	Remains RemainsProvider
	Storage StorageProvider
	Sales   SalesProvider
}
