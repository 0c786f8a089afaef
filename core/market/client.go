package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"stock-manager/core/apperror"
)

// Client is the listing-mirror surface of the marketplace: the trader's own
// open orders and auctions. It is the only component that talks to the remote
// API; everything above it works with structured results and error kinds.
type Client interface {
	// MyOrders fetches the trader's open order book.
	MyOrders(ctx context.Context) (*Orders, error)
	// CreateOrder publishes a new order-book listing.
	CreateOrder(ctx context.Context, spec OrderSpec) (*Order, error)
	// UpdateOrder changes price, quantity and visibility of an open order.
	UpdateOrder(ctx context.Context, id string, platinum, quantity int64, visible bool) (*Order, error)
	// CloseOrder marks one unit of the order for the given item as fulfilled
	// through the marketplace's own flow.
	CloseOrder(ctx context.Context, urlName string, orderType OrderType) error
	// DeleteOrder removes an open order and returns its last remote state.
	DeleteOrder(ctx context.Context, id string) (*Order, error)
	// MyAuctions fetches the trader's open auctions, always fresh.
	MyAuctions(ctx context.Context) ([]Auction, error)
	// DeleteAuction removes an auction. When the auction is already gone on
	// the remote side the returned error carries apperror.KindRemoteGone.
	DeleteAuction(ctx context.Context, id string) (*Auction, error)
}

// notExistCode is the error code the marketplace returns for listings that
// were already closed or removed. It is translated to KindRemoteGone here,
// at the adapter boundary, so no caller ever matches on message text.
const notExistCode = "app.form.not_exist"

type httpClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a marketplace client from the configuration.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}
}

// envelope is the common response wrapper of the marketplace API.
type envelope struct {
	Payload json.RawMessage `json:"payload"`
	Error   json.RawMessage `json:"error"`
}

func (c *httpClient) do(ctx context.Context, op, method, path string, body any, payload any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperror.Wrap(op, apperror.KindValidation, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperror.Wrap(op, apperror.KindValidation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return apperror.Wrap(op, apperror.KindRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperror.Wrap(op, apperror.KindRemoteUnavailable, err)
	}

	var env envelope
	if len(raw) > 0 {
		// Some endpoints return an empty body on success.
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return apperror.Wrap(op, apperror.KindRemoteUnavailable, fmt.Errorf("malformed response: %w", err))
		}
	}

	if resp.StatusCode >= 300 {
		detail := string(env.Error)
		if resp.StatusCode == http.StatusNotFound || strings.Contains(detail, notExistCode) {
			return apperror.New(op, apperror.KindRemoteGone, "listing already absent on remote")
		}
		return apperror.New(op, apperror.KindRemoteUnavailable, "remote returned %d: %s", resp.StatusCode, detail)
	}

	if payload != nil && len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, payload); err != nil {
			return apperror.Wrap(op, apperror.KindRemoteUnavailable, fmt.Errorf("malformed payload: %w", err))
		}
	}
	return nil
}

func (c *httpClient) MyOrders(ctx context.Context) (*Orders, error) {
	var payload Orders
	if err := c.do(ctx, "MarketMyOrders", http.MethodGet, "/profile/orders", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *httpClient) CreateOrder(ctx context.Context, spec OrderSpec) (*Order, error) {
	var payload struct {
		Order Order `json:"order"`
	}
	if err := c.do(ctx, "MarketCreateOrder", http.MethodPost, "/profile/orders", spec, &payload); err != nil {
		return nil, err
	}
	return &payload.Order, nil
}

func (c *httpClient) UpdateOrder(ctx context.Context, id string, platinum, quantity int64, visible bool) (*Order, error) {
	body := map[string]any{
		"platinum": platinum,
		"quantity": quantity,
		"visible":  visible,
	}
	var payload struct {
		Order Order `json:"order"`
	}
	if err := c.do(ctx, "MarketUpdateOrder", http.MethodPut, "/profile/orders/"+id, body, &payload); err != nil {
		return nil, err
	}
	return &payload.Order, nil
}

func (c *httpClient) CloseOrder(ctx context.Context, urlName string, orderType OrderType) error {
	body := map[string]any{
		"url_name":   urlName,
		"order_type": orderType,
	}
	return c.do(ctx, "MarketCloseOrder", http.MethodPost, "/profile/orders/close", body, nil)
}

func (c *httpClient) DeleteOrder(ctx context.Context, id string) (*Order, error) {
	var payload struct {
		Order Order `json:"order"`
	}
	if err := c.do(ctx, "MarketDeleteOrder", http.MethodDelete, "/profile/orders/"+id, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Order, nil
}

func (c *httpClient) MyAuctions(ctx context.Context) ([]Auction, error) {
	var payload struct {
		Auctions []Auction `json:"auctions"`
	}
	if err := c.do(ctx, "MarketMyAuctions", http.MethodGet, "/profile/auctions", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Auctions, nil
}

func (c *httpClient) DeleteAuction(ctx context.Context, id string) (*Auction, error) {
	var payload struct {
		Auction Auction `json:"auction"`
	}
	if err := c.do(ctx, "MarketDeleteAuction", http.MethodDelete, "/profile/auctions/"+id, nil, &payload); err != nil {
		return nil, err
	}
	return &payload.Auction, nil
}
