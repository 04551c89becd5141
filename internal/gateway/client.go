package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/sarthakvk/tradedeck/models"
)

// Client is a thin typed wrapper over the dashboard HTTP API. It holds no
// entity state; every call builds a request, normalizes failures into
// *RequestError, and decodes the JSON body.
type Client struct {
	http   *resty.Client
	userID string
}

// NewClient creates a gateway client for the given API base URL. The user
// identity is stamped into approve/reject bodies. No client-side timeout
// or retry is applied; a hung request blocks its caller until the context
// is cancelled.
func NewClient(baseURL, userID string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Accept", "application/json")

	return &Client{
		http:   client,
		userID: userID,
	}
}

// do performs one request and decodes the response into out (when out is
// non-nil). All error normalization lives here; the per-endpoint wrappers
// only fix path, method, and body shape.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &RequestError{Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return &RequestError{
			StatusCode: resp.StatusCode(),
			Detail:     detailFromBody(resp.Body(), resp.StatusCode()),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// detailFromBody extracts the server-supplied detail message, falling back
// to a generic status line when the body has no parseable detail field.
func detailFromBody(body []byte, status int) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return fmt.Sprintf("HTTP %d", status)
}

// AuthStatus checks whether the server holds a broker session.
func (c *Client) AuthStatus(ctx context.Context) (*models.AuthStatus, error) {
	var status models.AuthStatus
	if err := c.do(ctx, resty.MethodGet, "/api/auth/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// PendingCards fetches all trade cards awaiting approval.
func (c *Client) PendingCards(ctx context.Context) ([]models.TradeCard, error) {
	var cards []models.TradeCard
	if err := c.do(ctx, resty.MethodGet, "/api/trade-cards/pending", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// ApproveCard approves a pending trade card. The server places the broker
// order; the caller is expected to re-fetch the pending list afterwards.
func (c *Client) ApproveCard(ctx context.Context, cardID int64, notes string) error {
	body := models.TradeCardApproval{
		TradeCardID: cardID,
		UserID:      c.userID,
		Notes:       notes,
	}
	path := fmt.Sprintf("/api/trade-cards/%d/approve", cardID)
	return c.do(ctx, resty.MethodPost, path, body, nil)
}

// RejectCard rejects a pending trade card with the operator's reason.
func (c *Client) RejectCard(ctx context.Context, cardID int64, reason string) error {
	body := models.TradeCardRejection{
		TradeCardID: cardID,
		Reason:      reason,
		UserID:      c.userID,
	}
	path := fmt.Sprintf("/api/trade-cards/%d/reject", cardID)
	return c.do(ctx, resty.MethodPost, path, body, nil)
}

// ExplainGuardrails fetches the guardrail breakdown for one card.
func (c *Client) ExplainGuardrails(ctx context.Context, cardID int64) (*models.GuardrailExplanation, error) {
	var explanation models.GuardrailExplanation
	path := "/api/guardrails/explain?card_id=" + strconv.FormatInt(cardID, 10)
	if err := c.do(ctx, resty.MethodGet, path, nil, &explanation); err != nil {
		return nil, err
	}
	return &explanation, nil
}

// Positions fetches the current open positions.
func (c *Client) Positions(ctx context.Context) ([]models.Position, error) {
	var positions []models.Position
	if err := c.do(ctx, resty.MethodGet, "/api/positions", nil, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// Orders fetches the order history.
func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, resty.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// RunSignals triggers the server-side signal generation pipeline and
// blocks until it reports its counts.
func (c *Client) RunSignals(ctx context.Context, req models.SignalRunRequest) (*models.SignalRunResponse, error) {
	var result models.SignalRunResponse
	if err := c.do(ctx, resty.MethodPost, "/api/signals/run", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// EODReport fetches the end-of-day report. Empty date means the latest.
func (c *Client) EODReport(ctx context.Context, date string) (*models.EODReport, error) {
	path := "/api/reports/eod"
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var report models.EODReport
	if err := c.do(ctx, resty.MethodGet, path, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// MonthlyReport fetches the monthly report. Empty month means the current.
func (c *Client) MonthlyReport(ctx context.Context, month string) (*models.MonthlyReport, error) {
	path := "/api/reports/monthly"
	if month != "" {
		path += "?month=" + url.QueryEscape(month)
	}
	var report models.MonthlyReport
	if err := c.do(ctx, resty.MethodGet, path, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// OptionChain fetches the option chain for an underlying. Expiry is
// optional; when empty the server picks the nearest one.
func (c *Client) OptionChain(ctx context.Context, symbol, expiry string) (*models.OptionChain, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	if expiry != "" {
		params.Set("expiry", expiry)
	}
	var chain models.OptionChain
	path := "/api/options/chain?" + params.Encode()
	if err := c.do(ctx, resty.MethodGet, path, nil, &chain); err != nil {
		return nil, err
	}
	return &chain, nil
}

// LoginURL returns the broker OAuth entry point. Logging in is a browser
// navigation, not an API fetch, so this only builds the URL.
func (c *Client) LoginURL() string {
	return c.http.BaseURL + "/api/auth/upstox/login"
}
