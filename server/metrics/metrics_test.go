package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teilomillet/bedrockgate/errors"
)

func TestRecordFailure(t *testing.T) {
	m := NewMetrics()

	for _, typ := range errors.Types {
		assert.Equal(t, float64(0), testutil.ToFloat64(m.FailuresTotal.WithLabelValues(string(typ))))
	}

	m.RecordFailure(errors.ProviderTransportError)
	m.RecordFailure(errors.ProviderTransportError)
	m.RecordFailure(errors.EmptyGenerationError)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.FailuresTotal.WithLabelValues(string(errors.ProviderTransportError))))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FailuresTotal.WithLabelValues(string(errors.EmptyGenerationError))))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.FailuresTotal.WithLabelValues(string(errors.ProviderClientError))))
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.RequestsTotal.WithLabelValues("/", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `bedrockgate_http_requests_total{route="/",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), `bedrockgate_failures_total{type="unexpected_error"} 0`)
}
