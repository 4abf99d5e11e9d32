package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func spanContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestNewWithWriter_TagsService(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("storefront", "info", &buf).Info("hello")

	out := decodeLine(t, &buf)
	assert.Equal(t, "storefront", out["service"])
	assert.Equal(t, "hello", out["msg"])
}

func TestNewWithWriter_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("storefront", "warn", &buf).Info("dropped")
	assert.Zero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestWithContext_CorrelationID(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", &buf)

	ctx := WithCorrelationID(context.Background(), "req-123")
	WithContext(ctx, l).Info("hello")

	assert.Equal(t, "req-123", decodeLine(t, &buf)["correlation_id"])
}

func TestWithContext_ShopperID(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", &buf)

	ctx := WithShopperID(context.Background(), "shopper-789")
	WithContext(ctx, l).Info("with shopper")

	assert.Equal(t, "shopper-789", decodeLine(t, &buf)["shopper_id"])
	assert.Equal(t, "shopper-789", ShopperIDFromContext(ctx))
}

func TestWithContext_NoFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", &buf)

	WithContext(context.Background(), l).Info("bare")

	out := decodeLine(t, &buf)
	for _, key := range []string{"correlation_id", "shopper_id", "trace_id", "span_id"} {
		_, ok := out[key]
		assert.False(t, ok, "%s should not be present", key)
	}
}

func TestWithContext_AllFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", &buf)

	ctx := spanContext(t)
	ctx = WithCorrelationID(ctx, "corr-all")
	ctx = WithShopperID(ctx, "shopper-all")
	WithContext(ctx, l).Info("all fields")

	out := decodeLine(t, &buf)
	assert.Equal(t, "corr-all", out["correlation_id"])
	assert.Equal(t, "shopper-all", out["shopper_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", out["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", out["span_id"])
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", &buf)

	assert.Same(t, l, FromContext(NewContext(context.Background(), l)))
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
