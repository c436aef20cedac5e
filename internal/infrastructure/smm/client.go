package smm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/provider"
)

// maxResponseSize is the maximum allowed response size from a provider API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client implements provider.Gateway against the common SMM-panel protocol:
// form-encoded POSTs carrying {key, action, ...} against the provider's
// configured endpoint. Every call carries the configured timeout; failures
// map to the two gateway sentinels and are never retried here.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a gateway client with the given per-call timeout
func NewClient(timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("smm"),
	}
}

// FetchCatalog retrieves the provider's full service listing
func (c *Client) FetchCatalog(ctx context.Context, p *provider.Provider) ([]provider.RawService, error) {
	body, err := c.do(ctx, p, url.Values{"action": {"services"}})
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected JSON array, got %s", provider.ErrProviderInvalidResponse, snippet(trimmed))
	}

	var entries []catalogEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrProviderInvalidResponse, err)
	}

	services := make([]provider.RawService, 0, len(entries))
	for _, e := range entries {
		rate, err := decimal.NewFromString(strings.TrimSpace(e.Rate.String()))
		if err != nil {
			rate = decimal.Zero
		}
		services = append(services, provider.RawService{
			ExternalID:  strings.TrimSpace(e.Service.String()),
			Name:        e.Name,
			Category:    e.Category,
			Rate:        rate,
			Min:         int(e.Min),
			Max:         int(e.Max),
			AverageTime: e.AverageTime,
			Description: e.description(),
		})
	}

	c.logger.Debug("Fetched provider catalog",
		zap.String("provider", p.Name),
		zap.Int("services", len(services)),
	)
	return services, nil
}

// GetOrder retrieves the provider-reported state of one order
func (c *Client) GetOrder(ctx context.Context, p *provider.Provider, externalOrderID string) (*provider.RemoteOrder, error) {
	body, err := c.do(ctx, p, url.Values{
		"action": {"status"},
		"order":  {externalOrderID},
	})
	if err != nil {
		return nil, err
	}

	var entry orderStatusEntry
	if err := json.Unmarshal(bytes.TrimSpace(body), &entry); err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrProviderInvalidResponse, err)
	}
	if entry.Error != "" {
		return nil, fmt.Errorf("%w: %s", provider.ErrProviderInvalidResponse, entry.Error)
	}
	if entry.Status == "" {
		return nil, fmt.Errorf("%w: missing order status", provider.ErrProviderInvalidResponse)
	}

	charge, err := decimal.NewFromString(strings.TrimSpace(entry.Charge.String()))
	if err != nil {
		charge = decimal.Zero
	}

	remote := &provider.RemoteOrder{
		Status:         entry.Status,
		Charge:         charge,
		Currency:       entry.Currency,
		RefillEligible: bool(entry.Refill),
	}
	if entry.Remains != nil {
		v := int(*entry.Remains)
		remote.Remains = &v
	}
	if entry.StartCount != nil {
		v := int(*entry.StartCount)
		remote.StartCount = &v
	}
	return remote, nil
}

// RequestRefill asks the provider to refill an order
func (c *Client) RequestRefill(ctx context.Context, p *provider.Provider, externalOrderID string) error {
	return c.doAction(ctx, p, "refill", externalOrderID)
}

// RequestCancel asks the provider to cancel an order
func (c *Client) RequestCancel(ctx context.Context, p *provider.Provider, externalOrderID string) error {
	return c.doAction(ctx, p, "cancel", externalOrderID)
}

// doAction performs a refill/cancel request and surfaces the provider's
// error message verbatim on rejection
func (c *Client) doAction(ctx context.Context, p *provider.Provider, action, externalOrderID string) error {
	body, err := c.do(ctx, p, url.Values{
		"action": {action},
		"order":  {externalOrderID},
	})
	if err != nil {
		return err
	}

	var resp actionResponse
	if err := json.Unmarshal(bytes.TrimSpace(body), &resp); err != nil {
		return fmt.Errorf("%w: %v", provider.ErrProviderInvalidResponse, err)
	}
	if resp.Error != "" {
		return fmt.Errorf("provider %q rejected %s: %s", p.Name, action, resp.Error)
	}
	return nil
}

// do posts a form-encoded request to the provider endpoint and returns the
// raw response body
func (c *Client) do(ctx context.Context, p *provider.Provider, values url.Values) ([]byte, error) {
	values.Set("key", p.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.APIURL, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrProviderUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Provider request failed",
			zap.String("provider", p.Name),
			zap.String("action", values.Get("action")),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", provider.ErrProviderUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d from %s", provider.ErrProviderUnreachable, resp.StatusCode, p.Name)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", provider.ErrProviderUnreachable, err)
	}
	return body, nil
}

// snippet returns a short prefix of a response body for error messages
func snippet(b []byte) string {
	const n = 60
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
