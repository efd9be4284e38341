// Package api talks to the remote storefront service: it fetches the product
// list and submits orders.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jask/storefront/internal/model"
)

// IdempotencyHeader carries a fresh key on every order submission.
const IdempotencyHeader = "Idempotency-Key"

// ServiceError is returned when the service answers with a non-2xx status.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service returned %d", e.Status)
	}
	return fmt.Sprintf("service returned %d: %s", e.Status, e.Message)
}

// ServiceMessage returns the message reported by the service, or the status
// text when it sent none.
func (e *ServiceError) ServiceMessage() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// Client is the HTTP implementation of the storefront service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient builds a client for baseURL. A zero timeout leaves requests bound
// only by their context.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// ListProducts fetches the catalog in service order.
func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var body ProductList
	if err := c.do(ctx, http.MethodGet, "/product", nil, nil, &body); err != nil {
		c.log.Warn("fetch products failed", zap.Error(err))
		return nil, errors.Wrap(err, "list products")
	}
	out := make([]model.Product, 0, len(body.Items))
	for _, dto := range body.Items {
		p, err := ToProduct(dto)
		if err != nil {
			return nil, errors.Wrap(err, "list products")
		}
		out = append(out, p)
	}
	c.log.Info("products fetched", zap.Int("count", len(out)))
	return out, nil
}

// CreateOrder submits o and returns the service confirmation.
func (c *Client) CreateOrder(ctx context.Context, o model.Order) (model.OrderResult, error) {
	key := uuid.NewString()
	var body OrderResponse
	header := http.Header{IdempotencyHeader: []string{key}}
	if err := c.do(ctx, http.MethodPost, "/order", NewOrderRequest(o), header, &body); err != nil {
		c.log.Warn("create order failed", zap.String("idempotency_key", key), zap.Error(err))
		return model.OrderResult{}, errors.Wrap(err, "create order")
	}
	total, err := decimal.NewFromString(body.Total.String())
	if err != nil {
		return model.OrderResult{}, errors.Wrap(err, "create order: total")
	}
	c.log.Info("order created", zap.String("order_id", body.ID), zap.String("total", total.String()))
	return model.OrderResult{ID: body.ID, Total: total}, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any, header http.Header, out any) error {
	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reqBody = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &ServiceError{Status: resp.StatusCode, Message: e.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}
