// internal/sheets/sheets.go
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"stallpos/internal/logger"
	"stallpos/internal/order"
)

// ErrNotConfigured means no webhook URL is set; orders stay local-only.
var ErrNotConfigured = errors.New("sheets webhook not configured")

// Client forwards finalized orders to the spreadsheet-backed webhook.
// One fire-and-forget POST per order: no retry, no queue, no offline
// reconciliation. A failed send leaves the order durable locally and is
// surfaced to the operator as a warning.
type Client struct {
	URL        string
	Token      string
	HTTPClient *http.Client
}

func NewClient(url, token string) *Client {
	return &Client{
		URL:        url,
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// payload mirrors what the webhook expects. Line ids are excluded; the
// spreadsheet only keeps name, price, qty and line total.
type payload struct {
	Token           string        `json:"token"`
	OrderID         string        `json:"orderId"`
	CreatedAtMillis int64         `json:"createdAtMillis"`
	Total           float64       `json:"total"`
	Items           []payloadItem `json:"items"`
}

type payloadItem struct {
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
	LineTotal float64 `json:"lineTotal"`
}

// Send posts one order to the webhook. Success requires a 2xx status and
// a response body with a truthy ok flag; anything else is a sync error.
func (c *Client) Send(ctx context.Context, o order.Order) error {
	if c.URL == "" {
		return ErrNotConfigured
	}

	body := payload{
		Token:           c.Token,
		OrderID:         o.OrderID,
		CreatedAtMillis: o.CreatedAtMillis,
		Total:           o.Total,
	}
	for _, line := range o.Items {
		body.Items = append(body.Items, payloadItem{
			Name:      line.Name,
			Price:     line.Price,
			Qty:       line.Qty,
			LineTotal: line.LineTotal,
		})
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("sync request failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
		result.OK = false
		result.Error = "bad JSON response"
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !result.OK {
		if result.Error == "" {
			result.Error = resp.Status
		}
		return fmt.Errorf("remote declined order %s: %s", o.OrderID, result.Error)
	}

	logger.LogInfo("Order %s synced to sheet", o.OrderID)
	return nil
}
