package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/productorderingapp/ordering/internal/order/service/models/stock"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Client queries the inventory service for per-SKU stock availability.
// It performs exactly one attempt per call; retry policy, if any, belongs
// to a higher layer.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates an inventory client. The timeout bounds the whole
// round trip; exceeding it surfaces as an error, never as a hang.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// CheckStock performs a single batched query for the given SKU codes and
// returns the per-SKU in-stock flags. SKUs missing from the response are
// absent from the returned map; callers treat them as out of stock.
func (c *Client) CheckStock(ctx context.Context, skuCodes []string) (map[string]bool, error) {
	query := url.Values{}
	for _, skuCode := range skuCodes {
		query.Add("skuCode", skuCode)
	}

	reqURL := c.baseURL + "/api/inventory?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory request: %w", err)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inventory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inventory request returned status %d", resp.StatusCode)
	}

	var records []stock.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode inventory response: %w", err)
	}

	results := make(map[string]bool, len(records))
	for _, record := range records {
		results[record.SkuCode] = record.InStock
	}

	return results, nil
}
