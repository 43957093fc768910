package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sellerdesk/stockwise/backend-go/internal/config"
	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
	"golang.org/x/oauth2"
)

const dateParamLayout = "2006-01-02"

// HTTPProviders implements all three provider interfaces against the
// marketplace report endpoints, authenticating with a bearer token.
type HTTPProviders struct {
	remainsURL string
	storageURL string
	salesURL   string
	client     *http.Client
}

// NewHTTPProviders builds authenticated clients from config. The
// token rides on every request via an oauth2 static token source.
func NewHTTPProviders(cfg config.ProvidersConfig) *HTTPProviders {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	if cfg.Token != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		client = &http.Client{
			Timeout:   timeout,
			Transport: &oauth2.Transport{Source: source, Base: http.DefaultTransport},
		}
	}

	return &HTTPProviders{
		remainsURL: cfg.RemainsURL,
		storageURL: cfg.StorageURL,
		salesURL:   cfg.SalesURL,
		client:     client,
	}
}

func (p *HTTPProviders) FetchWarehouseRemains(ctx context.Context) ([]domain.WarehouseItem, error) {
	var items []domain.WarehouseItem
	if err := p.getJSON(ctx, p.remainsURL, nil, &items); err != nil {
		return nil, fmt.Errorf("fetch warehouse remains: %w", err)
	}
	return items, nil
}

func (p *HTTPProviders) FetchStorageLedger(ctx context.Context, dateFrom, dateTo time.Time) ([]domain.StorageLedgerRow, error) {
	params := url.Values{
		"date_from": {dateFrom.Format(dateParamLayout)},
		"date_to":   {dateTo.Format(dateParamLayout)},
	}

	var rows []domain.StorageLedgerRow
	if err := p.getJSON(ctx, p.storageURL, params, &rows); err != nil {
		return nil, fmt.Errorf("fetch storage ledger: %w", err)
	}
	return rows, nil
}

func (p *HTTPProviders) FetchAverageDailySales(ctx context.Context, dateFrom, dateTo time.Time) (map[int64]float64, error) {
	params := url.Values{
		"date_from": {dateFrom.Format(dateParamLayout)},
		"date_to":   {dateTo.Format(dateParamLayout)},
	}

	// Keyed JSON objects arrive with string keys
	raw := make(map[string]float64)
	if err := p.getJSON(ctx, p.salesURL, params, &raw); err != nil {
		return nil, fmt.Errorf("fetch average daily sales: %w", err)
	}

	sales := make(map[int64]float64, len(raw))
	for key, rate := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		sales[id] = rate
	}
	return sales, nil
}

func (p *HTTPProviders) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	target := endpoint
	if len(params) > 0 {
		target = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var (
	_ RemainsProvider = (*HTTPProviders)(nil)
	_ StorageProvider = (*HTTPProviders)(nil)
	_ SalesProvider   = (*HTTPProviders)(nil)
)
