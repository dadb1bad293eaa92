// Package catalog is the client for the remote catalog API: products,
// flash deals, click tracking, admin login and analytics.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"storefront/internal/models"
	"storefront/internal/observability"
)

// ErrNetwork marks every failure to obtain a usable answer from the
// catalog API: transport errors, unexpected status codes and bodies that
// do not decode into valid records.
var ErrNetwork = errors.New("catalog: network failure")

// Client performs single-attempt calls against one base URL. It never
// retries and adds no deadline of its own; callers bound calls through ctx.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// FlashDeals returns the products currently flagged as flash deals.
func (c *Client) FlashDeals(ctx context.Context) ([]models.Product, error) {
	return c.listProducts(ctx, "/flash_deals", nil)
}

// Products returns the products matching query. The catalog API treats
// the value as a category name; free-text searches go through the same
// parameter.
func (c *Client) Products(ctx context.Context, query string) ([]models.Product, error) {
	return c.listProducts(ctx, "/products", url.Values{"category": {query}})
}

// TrackClick records a purchase click. No response body is expected.
func (c *Client) TrackClick(ctx context.Context, productID string) error {
	resp, err := c.do(ctx, http.MethodPost, "/track_click", nil, models.ClickRequest{ProductID: productID})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return checkStatus(resp)
}

// AdminLogin submits email for verification. The answer body is decoded
// whatever the status code, since the API reports rejected logins as 401
// with {"success": false}.
func (c *Client) AdminLogin(ctx context.Context, email string) (models.LoginResult, error) {
	var result models.LoginResult

	resp, err := c.do(ctx, http.MethodPost, "/admin_login", nil, models.LoginRequest{Email: email})
	if err != nil {
		return result, err
	}
	defer resp.Body.Close()

	if err := decodeJSON(resp.Body, &result); err != nil {
		return models.LoginResult{}, err
	}
	return result, nil
}

// Analytics returns the admin analytics summary.
func (c *Client) Analytics(ctx context.Context) (models.AnalyticsSummary, error) {
	var summary models.AnalyticsSummary

	resp, err := c.do(ctx, http.MethodGet, "/analytics", nil, nil)
	if err != nil {
		return summary, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return summary, err
	}
	if err := decodeJSON(resp.Body, &summary); err != nil {
		return models.AnalyticsSummary{}, err
	}
	return summary, nil
}

func (c *Client) listProducts(ctx context.Context, path string, query url.Values) ([]models.Product, error) {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var products []models.Product
	if err := decodeJSON(resp.Body, &products); err != nil {
		return nil, err
	}
	if err := models.ValidateProducts(products); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	ctx, span := observability.StartSpan(ctx, "catalog "+method+" "+path)
	defer span.End(ctx, c.logger)

	span.SetTag("http.method", method)
	span.SetTag("http.path", path)

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			span.SetError(err)
			return nil, fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := observability.GetRequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}

	span.SetTag("http.status_code", strconv.Itoa(resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetError(fmt.Errorf("HTTP %d", resp.StatusCode))
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: unexpected status %d",
			ErrNetwork, resp.Request.Method, resp.Request.URL.Path, resp.StatusCode)
	}
	return nil
}

func decodeJSON(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrNetwork, err)
	}
	return nil
}
