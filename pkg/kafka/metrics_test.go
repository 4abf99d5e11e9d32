package kafka

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducerMetrics_Registered(t *testing.T) {
	ProducerMessagesPublished.WithLabelValues("metrics-topic")
	ProducerPublishErrors.WithLabelValues("metrics-topic")
	ProducerPublishDuration.WithLabelValues("metrics-topic")

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, fam := range families {
		names[fam.GetName()] = true
	}

	for _, name := range []string{
		"kafka_producer_messages_published_total",
		"kafka_producer_publish_errors_total",
		"kafka_producer_publish_duration_seconds",
	} {
		assert.True(t, names[name], "expected metric %q to be registered", name)
	}
}

func TestProducerMetrics_Increment(t *testing.T) {
	before := testutil.ToFloat64(ProducerPublishErrors.WithLabelValues("metrics-inc"))
	ProducerPublishErrors.WithLabelValues("metrics-inc").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ProducerPublishErrors.WithLabelValues("metrics-inc")))
}
