// Package backend is the HTTP client for the book exchange REST API.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/hongminglow/bookx-web/internal/models"
	"github.com/hongminglow/bookx-web/internal/models/dto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxErrorBody = 4 << 10

// Client calls the exchange API. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithTracerProvider sets where request spans are recorded.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

const tracerName = "github.com/hongminglow/bookx-web/internal/backend"

// New returns a client for the API rooted at baseURL. Endpoint paths are
// resolved relative to it, so baseURL should end with a slash.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("api base url %q must be an absolute http(s) url", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c := &Client{
		baseURL:    u,
		http:       &http.Client{},
		tracer:     otel.Tracer(tracerName),
		propagator: otel.GetTextMapPropagator(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Profile fetches the signed-in user and their books.
func (c *Client) Profile(ctx context.Context, token string) (dto.ProfileResponse, error) {
	var out dto.ProfileResponse
	err := c.do(ctx, http.MethodGet, "profile/", token, nil, &out)
	return out, err
}

// ExchangeRequests fetches the pending exchange requests shown as notifications.
func (c *Client) ExchangeRequests(ctx context.Context, token string) ([]models.Notification, error) {
	var out []models.Notification
	err := c.do(ctx, http.MethodGet, "exchange-requests/", token, nil, &out)
	return out, err
}

// Transactions fetches the user's transactions.
func (c *Client) Transactions(ctx context.Context, token string) ([]models.Transaction, error) {
	var out []models.Transaction
	err := c.do(ctx, http.MethodGet, "transactions/", token, nil, &out)
	return out, err
}

// CancelTransaction asks the API to cancel a transaction and returns the
// record it sent back. An empty response body yields a zero Transaction.
func (c *Client) CancelTransaction(ctx context.Context, token string, id int64) (models.Transaction, error) {
	var out models.Transaction
	path := "transactions/" + strconv.FormatInt(id, 10) + "/cancel/"
	err := c.do(ctx, http.MethodPatch, path, token, struct{}{}, &out)
	return out, err
}

// ObtainToken exchanges credentials for a token pair.
func (c *Client) ObtainToken(ctx context.Context, username, password string) (dto.TokenPair, error) {
	var out dto.TokenPair
	err := c.do(ctx, http.MethodPost, "token/", "", dto.TokenRequest{Username: username, Password: password}, &out)
	return out, err
}

// Ping reports whether the API answers HTTP at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	endpoint := c.baseURL.ResolveReference(&url.URL{Path: path})
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", endpoint.Path),
		attribute.Int("http.response.status_code", resp.StatusCode),
	)

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
