package storeapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Roselynepj1/Flowerpower/pkg/errors"
	"github.com/Roselynepj1/Flowerpower/pkg/httpclient"
)

const catalogJSON = `[
	{"id": 1, "name": "Blue Rain Jacket", "average_rating": "4.0", "is_in_stock": true, "on_sale": false,
	 "prices": {"price": "1000", "currency_code": "USD", "currency_symbol": "$", "currency_minor_unit": 2}},
	{"id": 2, "name": "Storm Parka", "average_rating": "4.5", "is_in_stock": false, "on_sale": true,
	 "prices": {"price": "500", "currency_code": "USD", "currency_symbol": "$", "currency_minor_unit": 2}}
]`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(httpclient.New(httpclient.DefaultConfig()), srv.URL+"/products/", testLogger()), srv
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient(nil, "https://shop.example/wp-json/wc/store/products/", testLogger())
	assert.Equal(t, "https://shop.example/wp-json/wc/store/products", c.Endpoint())
}

func TestFetchCatalog_Success(t *testing.T) {
	var path string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, catalogJSON)
	})

	products, err := c.FetchCatalog(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/products", path)
	require.Len(t, products, 2)
	assert.Equal(t, "Blue Rain Jacket", products[0].Name)
	assert.Equal(t, 2, products[1].ID)
	assert.True(t, products[1].OnSale)
}

func TestFetchCatalog_EveryCallHitsUpstream(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, catalogJSON)
	})

	for range 3 {
		_, err := c.FetchCatalog(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchCatalog_EmptyAndNull(t *testing.T) {
	for _, body := range []string{"[]", "null"} {
		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, body)
		})

		products, err := c.FetchCatalog(context.Background())
		require.NoError(t, err, body)
		assert.NotNil(t, products, body)
		assert.Empty(t, products, body)
	}
}

func TestFetchCatalog_MalformedBodyIsFetchFailure(t *testing.T) {
	for _, body := range []string{`[{"id": 1, "name": `, `{"id": 1}`, `<html>maintenance</html>`} {
		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, body)
		})

		products, err := c.FetchCatalog(context.Background())
		assert.Nil(t, products, body)
		assert.True(t, apperrors.IsFetchFailure(err), body)
	}
}

func TestFetchCatalog_Non2xxIsFetchFailure(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, `{"code":"rest_no_route","message":"No route","data":{"status":404}}`)
		})

		_, err := c.FetchCatalog(context.Background())
		assert.True(t, apperrors.IsFetchFailure(err), "status %d", status)
	}
}

func TestFetchCatalog_TransportError(t *testing.T) {
	c, srv := newTestClient(t, func(http.ResponseWriter, *http.Request) {})
	srv.Close()

	_, err := c.FetchCatalog(context.Background())

	assert.True(t, apperrors.IsFetchFailure(err))
}

func TestFetchCatalog_CircuitOpenIsFetchFailure(t *testing.T) {
	cbCfg := httpclient.DefaultCircuitBreakerConfig("storeapi-test")
	cbCfg.MinRequests = 1
	cbCfg.FailureRatio = 0.1

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	cb := httpclient.NewCircuitBreakerClient(httpclient.New(httpclient.DefaultConfig()), cbCfg, testLogger())
	c := NewClient(cb, srv.URL, testLogger())

	_, err := c.FetchCatalog(context.Background())
	require.True(t, apperrors.IsFetchFailure(err))

	_, err = c.FetchCatalog(context.Background())
	assert.True(t, apperrors.IsFetchFailure(err))
	assert.True(t, errors.Is(err, httpclient.ErrCircuitOpen))
}

func TestFetchProduct_Success(t *testing.T) {
	var path string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = io.WriteString(w, `{"id": 7, "name": "Kids Poncho", "prices": {"price": "2500", "currency_minor_unit": 2}}`)
	})

	p, err := c.FetchProduct(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "/products/7", path)
	assert.Equal(t, "Kids Poncho", p.Name)
	price, ok := p.Price()
	require.True(t, ok)
	assert.Equal(t, "25", price.String())
}

func TestFetchProduct_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"code":"woocommerce_rest_product_invalid_id","message":"Invalid ID.","data":{"status":404}}`)
	})

	p, err := c.FetchProduct(context.Background(), 404)

	assert.Nil(t, p)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.False(t, apperrors.IsFetchFailure(err))
}

func TestFetchProduct_Metrics(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	before := testutil.ToFloat64(upstreamRequestsTotal.WithLabelValues(opProduct, "not_found"))

	_, _ = c.FetchProduct(context.Background(), 1)

	after := testutil.ToFloat64(upstreamRequestsTotal.WithLabelValues(opProduct, "not_found"))
	assert.Equal(t, before+1, after)
}

func TestPing(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		_, _ = io.WriteString(w, "[]")
	})
	assert.NoError(t, c.Ping(context.Background()))

	down, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	assert.True(t, apperrors.IsFetchFailure(down.Ping(context.Background())))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", outcome(nil))
	assert.Equal(t, "not_found", outcome(apperrors.NotFound("product", "1")))
	assert.Equal(t, "error", outcome(apperrors.FetchFailed(upstreamName, errors.New("x"))))
}
