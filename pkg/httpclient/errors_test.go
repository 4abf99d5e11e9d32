package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/Roselynepj1/Flowerpower/pkg/errors"
)

func makeResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestParseResponseError_NotFoundWithID(t *testing.T) {
	resp := makeResponse(http.StatusNotFound,
		`{"code":"woocommerce_rest_product_invalid_id","message":"Invalid ID.","data":{"status":404}}`)

	err := ParseResponseError(resp, "store api", "product", "17")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))
	assert.Contains(t, err.Error(), "product with id 17")
}

func TestParseResponseError_NotFoundOnCollectionIsFetchFailure(t *testing.T) {
	resp := makeResponse(http.StatusNotFound, `{"code":"rest_no_route","message":"No route.","data":{"status":404}}`)

	err := ParseResponseError(resp, "store api", "product", "")

	assert.True(t, apperrors.IsFetchFailure(err))
	assert.Contains(t, err.Error(), "rest_no_route")
}

func TestParseResponseError_StructuredBody(t *testing.T) {
	resp := makeResponse(http.StatusBadRequest,
		`{"code":"rest_invalid_param","message":"Invalid parameter(s): per_page","data":{"status":400}}`)

	err := ParseResponseError(resp, "store api", "product", "")

	assert.True(t, apperrors.IsFetchFailure(err))
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "Invalid parameter(s)")
}

func TestParseResponseError_HTMLBody(t *testing.T) {
	resp := makeResponse(http.StatusBadGateway, "<html><body>Bad Gateway</body></html>")

	err := ParseResponseError(resp, "store api", "product", "")

	assert.True(t, apperrors.IsFetchFailure(err))
	assert.Contains(t, err.Error(), "Bad Gateway")
}

func TestParseResponseError_LongBodyIsTruncated(t *testing.T) {
	resp := makeResponse(http.StatusInternalServerError, strings.Repeat("x", 1000))

	err := ParseResponseError(resp, "store api", "product", "")

	assert.Contains(t, err.Error(), "more bytes")
	assert.Less(t, len(err.Error()), 600)
}

func TestIsSuccess(t *testing.T) {
	assert.True(t, IsSuccess(200))
	assert.True(t, IsSuccess(204))
	assert.False(t, IsSuccess(199))
	assert.False(t, IsSuccess(300))
	assert.False(t, IsSuccess(404))
}
