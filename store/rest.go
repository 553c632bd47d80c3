package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ordersight/config"
)

// restClient reads order pages from a hosted tabular REST API
// (PostgREST/Supabase style: equality filters and offset/limit windows
// expressed as query parameters).
type restClient struct {
	baseURL    string
	apiKey     string
	table      string
	httpClient *http.Client
}

func newRESTClient(cfg *config.RESTConfig) (*restClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("rest store: base_url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	table := cfg.Table
	if table == "" {
		table = "Orders"
	}
	return &restClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		table:   table,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// restOrder is the wire row shape; created_at arrives as a string and is
// parsed into an instant here, never compared as text.
type restOrder struct {
	ID             int64  `json:"id"`
	SubscriberName string `json:"subscriber_name"`
	OrderID        string `json:"order_id"`
	Phone          string `json:"phone"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
}

func (c *restClient) FetchPage(ctx context.Context, subscriber string, offset, limit int) ([]Order, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "id.asc")
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	if subscriber != "" {
		q.Set("subscriber_name", "eq."+subscriber)
	}
	path := "/rest/v1/" + url.PathEscape(c.table) + "?" + q.Encode()

	var rows []restOrder
	if err := c.get(ctx, path, &rows); err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(rows))
	for _, r := range rows {
		orders = append(orders, Order{
			ID:             r.ID,
			SubscriberName: r.SubscriberName,
			OrderID:        r.OrderID,
			Phone:          r.Phone,
			Status:         r.Status,
			CreatedAt:      parseTime(r.CreatedAt),
		})
	}
	return orders, nil
}

func (c *restClient) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("rest GET %s: %w", path, err)
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rest GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	return c.decode(resp, result)
}

func (c *restClient) decode(resp *http.Response, result any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("rest read body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("rest HTTP %d: %s", resp.StatusCode, string(data))
	}
	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("rest decode: %w", err)
		}
	}
	return nil
}

func (c *restClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
