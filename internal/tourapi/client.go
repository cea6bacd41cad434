// Package tourapi implements the read-only client for the government
// tourism open-data catalog API.
package tourapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/plan4land/tourindex/internal/domain"
	"github.com/plan4land/tourindex/internal/logger"
)

// API paths relative to the service base URL.
const (
	listPath     = "/areaBasedList1"
	syncListPath = "/areaBasedSyncList1"
)

const responseType = "json"

const defaultRequestTimeout = 30 * time.Second

// Config holds catalog source client configuration.
type Config struct {
	BaseURL        string
	ServiceKey     string
	MobileOS       string
	MobileApp      string
	PageSize       int
	RequestTimeout time.Duration
}

// Client fetches catalog listing pages from the source API.
type Client struct {
	httpClient *http.Client
	cfg        Config
	logger     logger.Logger
}

// NewClient creates a new catalog source client.
func NewClient(cfg Config, log logger.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		cfg:        cfg,
		logger:     log,
	}
}

// FetchPage requests one page of the catalog listing. When opts.ModifiedDate
// is set the sync listing endpoint is used, scoped to records modified on
// that date.
func (c *Client) FetchPage(ctx context.Context, pageNo int, opts ListOptions) (*Page, error) {
	reqURL := c.buildURL(pageNo, opts)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build page request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", pageNo, err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close response body", logger.Error(closeErr))
		}
	}()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("fetch page %d: unexpected status %d: %s", pageNo, res.StatusCode, string(body))
	}

	var env envelope
	if decodeErr := json.NewDecoder(res.Body).Decode(&env); decodeErr != nil {
		return nil, fmt.Errorf("decode page %d response: %w", pageNo, decodeErr)
	}

	items, err := decodeItems(env.Response.Body.Items)
	if err != nil {
		return nil, fmt.Errorf("decode page %d items: %w", pageNo, err)
	}

	return &Page{
		PageNo:     pageNo,
		TotalCount: env.Response.Body.TotalCount,
		Items:      items,
	}, nil
}

func (c *Client) buildURL(pageNo int, opts ListOptions) string {
	path := listPath
	if opts.ModifiedDate != "" {
		path = syncListPath
	}

	params := url.Values{}
	params.Set("serviceKey", c.cfg.ServiceKey)
	params.Set("MobileOS", c.cfg.MobileOS)
	params.Set("MobileApp", c.cfg.MobileApp)
	params.Set("_type", responseType)
	params.Set("numOfRows", strconv.Itoa(c.cfg.PageSize))
	params.Set("pageNo", strconv.Itoa(pageNo))
	if opts.ModifiedDate != "" {
		params.Set("modifiedtime", opts.ModifiedDate)
		params.Set("listYN", "Y")
	}

	return c.cfg.BaseURL + path + "?" + params.Encode()
}

// decodeItems unwraps body.items.item, tolerating the provider's three
// renderings: an empty string on empty pages, an array, and a bare object
// when the page holds a single record.
func decodeItems(raw json.RawMessage) ([]domain.RawRecord, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var empty string
	if err := json.Unmarshal(raw, &empty); err == nil {
		return nil, nil
	}

	var wrapper struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("unexpected items shape: %w", err)
	}
	if len(wrapper.Item) == 0 {
		return nil, nil
	}

	var records []domain.RawRecord
	if err := json.Unmarshal(wrapper.Item, &records); err == nil {
		return records, nil
	}

	var single domain.RawRecord
	if err := json.Unmarshal(wrapper.Item, &single); err != nil {
		return nil, fmt.Errorf("unexpected item shape: %w", err)
	}
	return []domain.RawRecord{single}, nil
}
