// Package storeapi reads products from a WooCommerce Store API endpoint.
package storeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/Roselynepj1/Flowerpower/pkg/errors"
	"github.com/Roselynepj1/Flowerpower/pkg/httpclient"
	"github.com/Roselynepj1/Flowerpower/pkg/tracing"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
)

const (
	// DefaultEndpoint is the products collection of the Rainy Days store.
	DefaultEndpoint = "https://itinsiderafrica.com/rainydaysjackets/wp-json/wc/store/products"

	upstreamName = "store api"
	tracerName   = "storefront/storeapi"

	// maxBodyBytes bounds a decoded catalog response.
	maxBodyBytes = 16 << 20
)

// HTTPDoer executes HTTP requests.
// Both httpclient.Client and httpclient.CircuitBreakerClient satisfy this.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client fetches catalog data. Every call goes to the upstream; nothing is
// cached between calls.
type Client struct {
	http     HTTPDoer
	endpoint string
	logger   *slog.Logger
}

// NewClient creates a store API client for the given products endpoint.
func NewClient(doer HTTPDoer, endpoint string, logger *slog.Logger) *Client {
	return &Client{
		http:     doer,
		endpoint: strings.TrimRight(endpoint, "/"),
		logger:   logger,
	}
}

// Endpoint returns the products collection URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchCatalog returns the full product collection in upstream order.
func (c *Client) FetchCatalog(ctx context.Context) (products []domain.Product, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "storeapi.FetchCatalog",
		attribute.String("http.url", c.endpoint),
	)
	start := time.Now()
	defer func() {
		observe(opCatalog, start, err)
		tracing.EndSpan(span, err)
	}()

	if err = c.getJSON(ctx, c.endpoint, "", &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}

	span.SetAttributes(attribute.Int("catalog.size", len(products)))
	c.logger.DebugContext(ctx, "catalog fetched",
		slog.Int("products", len(products)),
		slog.Duration("took", time.Since(start)),
	)
	return products, nil
}

// FetchProduct returns a single product. An unknown id yields a NotFound
// error; any other failure is a fetch failure.
func (c *Client) FetchProduct(ctx context.Context, id int) (product *domain.Product, err error) {
	idStr := strconv.Itoa(id)
	ctx, span := tracing.StartSpan(ctx, tracerName, "storeapi.FetchProduct",
		attribute.String("product.id", idStr),
	)
	start := time.Now()
	defer func() {
		observe(opProduct, start, err)
		tracing.EndSpan(span, err)
	}()

	var p domain.Product
	if err = c.getJSON(ctx, c.endpoint+"/"+idStr, idStr, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Ping checks that the endpoint answers with a 2xx status.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?per_page=1", http.NoBody)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return apperrors.FetchFailed(upstreamName, err)
	}
	if !httpclient.IsSuccess(resp.StatusCode) {
		return httpclient.ParseResponseError(resp, upstreamName, "product", "")
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// getJSON performs a GET and decodes the body into dst. A body that does not
// decode is discarded entirely.
func (c *Client) getJSON(ctx context.Context, url, id string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return apperrors.FetchFailed(upstreamName, fmt.Errorf("create request: %w", err))
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return apperrors.FetchFailed(upstreamName, err)
	}

	if !httpclient.IsSuccess(resp.StatusCode) {
		return httpclient.ParseResponseError(resp, upstreamName, "product", id)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dst); err != nil {
		return apperrors.FetchFailed(upstreamName, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
