package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	apperrors "github.com/Roselynepj1/Flowerpower/pkg/errors"
)

// UpstreamErrorResponse is the error body returned by WordPress/WooCommerce
// REST endpoints, e.g.
//
//	{"code":"woocommerce_rest_product_invalid_id","message":"Invalid product ID.","data":{"status":404}}
type UpstreamErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
	} `json:"data"`
}

// ParseResponseError consumes and closes the body of a non-2xx response and
// translates it into an AppError. A 404 becomes NotFound for the given
// resource and id; everything else is a fetch failure.
func ParseResponseError(resp *http.Response, upstream, resource, id string) error {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound && id != "" {
		return apperrors.NotFound(resource, id)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apperrors.FetchFailed(upstream,
			fmt.Errorf("status %d (failed to read body: %w)", resp.StatusCode, err))
	}

	var body UpstreamErrorResponse
	if json.Unmarshal(bodyBytes, &body) == nil && body.Code != "" {
		return apperrors.FetchFailed(upstream,
			fmt.Errorf("status %d: %s: %s", resp.StatusCode, body.Code, body.Message))
	}

	return apperrors.FetchFailed(upstream,
		fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(bodyBytes), 256)))
}

// IsSuccess reports whether status is a 2xx code.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "... (" + strconv.Itoa(len(s)-n) + " more bytes)"
}
