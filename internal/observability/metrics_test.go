package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CollectorsRegisterCleanly(t *testing.T) {
	m := NewMetricsForTesting()
	reg := prometheus.NewRegistry()

	for _, c := range m.collectors() {
		require.NoError(t, reg.Register(c))
	}
}

func TestMetrics_CountersIncrement(t *testing.T) {
	m := NewMetricsForTesting()

	m.ReportsCreated.Inc()
	m.UnknownEventTypes.Add(2)
	m.HTTPRequests.WithLabelValues("POST /api/eventos", "201").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ReportsCreated))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.UnknownEventTypes))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("POST /api/eventos", "201")))
}
