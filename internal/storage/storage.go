package storage

import (
	"context"

	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
)

// SnapshotArchive stores raw provider payloads for audit and replay.
// Archival is best-effort: a failed upload never blocks analysis.
type SnapshotArchive interface {
	ArchivePayload(ctx context.Context, dataset domain.Dataset, storeID string, payload []byte) error
}

// NoopArchive is used when archival is disabled.
type NoopArchive struct{}

func (NoopArchive) ArchivePayload(ctx context.Context, dataset domain.Dataset, storeID string, payload []byte) error {
	return nil
}
