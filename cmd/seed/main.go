package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
	"github.com/sellerdesk/stockwise/backend-go/internal/engine"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newStoreIDFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "store-id",
		Usage:    "Store the documents belong to",
		Required: true,
		EnvVars:  []string{"STORE_ID"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed cost-input overrides and run one-shot analyses",
		Commands: []*cli.Command{
			{
				Name:  "cost-inputs",
				Usage: "Load per-item cost-input overrides from CSV into the store documents",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newStoreIDFlag(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "CSV file: item_id,cost_price,selling_price,low_stock_threshold,discount_percent",
						Required: true,
					},
				},
				Action: runSeedCostInputs,
			},
			{
				Name:  "analyze",
				Usage: "Run a one-shot analysis from JSON snapshot files and print the summary",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "remains",
						Usage:    "JSON file with the warehouse remains snapshot",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "storage",
						Usage: "JSON file with the storage ledger rows",
					},
					&cli.StringFlag{
						Name:  "sales",
						Usage: "JSON file mapping item id to average daily sales",
					},
					&cli.IntFlag{
						Name:  "period-days",
						Usage: "Days the storage ledger covers",
						Value: 30,
					},
					&cli.StringFlag{
						Name:  "target-date",
						Usage: "Stockout horizon (YYYY-MM-DD), defaults to one month out",
					},
				},
				Action: runAnalyze,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSeedCostInputs(c *cli.Context) error {
	overrides, err := readOverridesCSV(c.String("file"))
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	storeID := c.String("store-id")
	docs := map[string]interface{}{
		"product_cost_prices":          overrides.CostPrices,
		"product_selling_prices":       overrides.SellingPrices,
		"product_low_stock_thresholds": overrides.LowStockThresholds,
		"product_discount_percents":    overrides.DiscountPercents,
	}

	query := `
		INSERT INTO store_documents (store_id, doc_key, payload, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (store_id, doc_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`

	for docKey, doc := range docs {
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", docKey, err)
		}
		if _, err := db.ExecContext(context.Background(), query, storeID, docKey, payload); err != nil {
			return fmt.Errorf("failed to upsert %s: %w", docKey, err)
		}
	}

	log.Printf("Seeded %d cost prices, %d selling prices, %d thresholds, %d discounts for store %s",
		len(overrides.CostPrices), len(overrides.SellingPrices),
		len(overrides.LowStockThresholds), len(overrides.DiscountPercents), storeID)
	return nil
}

func readOverridesCSV(path string) (domain.CostOverrides, error) {
	overrides := domain.NewCostOverrides()

	f, err := os.Open(path)
	if err != nil {
		return overrides, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return overrides, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if header {
			header = false
			continue
		}
		if len(record) < 5 {
			continue
		}

		itemID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			log.Printf("warning: skipping row with bad item id %q", record[0])
			continue
		}

		if v, err := strconv.ParseFloat(record[1], 64); err == nil {
			overrides.CostPrices[itemID] = v
		}
		if v, err := strconv.ParseFloat(record[2], 64); err == nil {
			overrides.SellingPrices[itemID] = v
		}
		if v, err := strconv.Atoi(record[3]); err == nil {
			overrides.LowStockThresholds[itemID] = v
		}
		if v, err := strconv.ParseFloat(record[4], 64); err == nil {
			overrides.DiscountPercents[itemID] = v
		}
	}

	return overrides, nil
}

func runAnalyze(c *cli.Context) error {
	var items []domain.WarehouseItem
	if err := readJSONFile(c.String("remains"), &items); err != nil {
		return err
	}

	var ledger []domain.StorageLedgerRow
	if path := c.String("storage"); path != "" {
		if err := readJSONFile(path, &ledger); err != nil {
			return err
		}
	}

	sales := make(map[int64]float64)
	if path := c.String("sales"); path != "" {
		raw := make(map[string]float64)
		if err := readJSONFile(path, &raw); err != nil {
			return err
		}
		for key, rate := range raw {
			if id, err := strconv.ParseInt(key, 10, 64); err == nil {
				sales[id] = rate
			}
		}
	}

	targetDate := time.Now().AddDate(0, 1, 0)
	if raw := c.String("target-date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fmt.Errorf("invalid target-date %q: %w", raw, err)
		}
		targetDate = parsed
	}

	params := engine.DefaultParams()
	normalizer := engine.NewNormalizer(params, engine.DefaultStorageRates())
	analyzer := engine.NewAnalyzer(params)

	inputs := normalizer.Normalize(items, domain.NewCostOverrides(), sales, ledger, c.Int("period-days"))
	results := analyzer.AnalyzeAll(items, inputs, time.Now())
	summary := engine.Summarize(results, targetDate)

	encoded, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func readJSONFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
