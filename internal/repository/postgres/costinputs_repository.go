// backend-go/internal/repository/postgres/costinputs_repository.go
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
	"github.com/sellerdesk/stockwise/backend-go/internal/repository"
)

// costInputsRepository persists per-store override documents in a
// store_documents(store_id, doc_key, payload jsonb) table, one JSON
// document per (store_id, doc_key).
type costInputsRepository struct {
	db *DB
}

func NewCostInputsRepository(db *DB) repository.CostInputsRepository {
	return &costInputsRepository{db: db}
}

func (r *costInputsRepository) Load(ctx context.Context, storeID string) (domain.CostOverrides, error) {
	overrides := domain.NewCostOverrides()

	query := `
		SELECT doc_key, payload
		FROM store_documents
		WHERE store_id = $1
	`

	rows, err := r.db.QueryxContext(ctx, query, storeID)
	if err != nil {
		return overrides, fmt.Errorf("error loading store documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var docKey string
		var payload []byte
		if err := rows.Scan(&docKey, &payload); err != nil {
			return overrides, fmt.Errorf("error scanning store document: %w", err)
		}

		// An unreadable document degrades to "no overrides" for that
		// key; its defaults get recomputed on the next analysis.
		if err := decodeDocument(docKey, payload, &overrides); err != nil {
			log.Warn().Err(err).Str("store_id", storeID).Str("doc_key", docKey).
				Msg("cost inputs: skipping unreadable override document")
		}
	}
	if err := rows.Err(); err != nil {
		return overrides, fmt.Errorf("error iterating store documents: %w", err)
	}

	return overrides, nil
}

func (r *costInputsRepository) Save(ctx context.Context, storeID string, overrides domain.CostOverrides) error {
	docs := map[string]interface{}{
		repository.DocCostPrices:         overrides.CostPrices,
		repository.DocSellingPrices:      overrides.SellingPrices,
		repository.DocLowStockThresholds: overrides.LowStockThresholds,
		repository.DocDiscountPercents:   overrides.DiscountPercents,
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO store_documents (store_id, doc_key, payload, updated_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (store_id, doc_key)
			DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
		`

		for docKey, doc := range docs {
			payload, err := json.Marshal(doc)
			if err != nil {
				return fmt.Errorf("error encoding %s: %w", docKey, err)
			}
			if _, err := tx.ExecContext(ctx, query, storeID, docKey, payload); err != nil {
				return fmt.Errorf("error upserting %s: %w", docKey, err)
			}
		}
		return nil
	})
}

func decodeDocument(docKey string, payload []byte, overrides *domain.CostOverrides) error {
	switch docKey {
	case repository.DocCostPrices:
		return json.Unmarshal(payload, &overrides.CostPrices)
	case repository.DocSellingPrices:
		return json.Unmarshal(payload, &overrides.SellingPrices)
	case repository.DocLowStockThresholds:
		return json.Unmarshal(payload, &overrides.LowStockThresholds)
	case repository.DocDiscountPercents:
		return json.Unmarshal(payload, &overrides.DiscountPercents)
	default:
		// Unknown documents belong to other features; ignore them
		return nil
	}
}
