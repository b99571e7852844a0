package observability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseHeaders(t *testing.T) {
	assert.Empty(t, parseHeaders(""))
	assert.Equal(t, map[string]string{
		"Authorization": "Basic abc=",
		"x-team":        "pets",
	}, parseHeaders(" Authorization = Basic abc= ,x-team=pets,broken"))
}

func TestWithContextAddsTraceFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	WithContext(context.Background(), logger).Info("plain")

	traceId, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanId, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceId,
		SpanID:     spanId,
		TraceFlags: trace.FlagsSampled,
	}))
	WithContext(ctx, logger).Info("traced")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Empty(t, entries[0].ContextMap())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entries[1].ContextMap()["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", entries[1].ContextMap()["span_id"])
}

func TestTraceFieldsWithoutSpanIsNil(t *testing.T) {
	assert.Nil(t, TraceFields(context.Background()))

	invalid := trace.ContextWithSpanContext(context.Background(), trace.SpanContext{})
	assert.Nil(t, TraceFields(invalid))
}

func TestCommentMutationsCountByResult(t *testing.T) {
	assert.Equal(t, "changed", MutationResult(true))
	assert.Equal(t, "noop", MutationResult(false))

	counter := CommentMutations.WithLabelValues("reply", MutationResult(false))
	before := testutil.ToFloat64(counter)
	counter.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
