package exporter

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/neox5/jetdqm/internal/jetdqm"
	"github.com/neox5/jetdqm/internal/metric"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorSeries(t *testing.T) {
	reg := jetdqm.Builtin()
	live := metric.NewLive(reg)

	promRegistry := createPrometheusRegistry(live)

	count, err := testutil.GatherAndCount(promRegistry, "jetdqm_analyzer_info")
	require.NoError(t, err)
	assert.Equal(t, reg.Len(), count)

	count, err = testutil.GatherAndCount(promRegistry, "jetdqm_analyzer_trigger_paths")
	require.NoError(t, err)
	assert.Equal(t, reg.Len()*2, count)

	count, err = testutil.GatherAndCount(promRegistry, "jetdqm_sequence_analyzers")
	require.NoError(t, err)
	assert.Equal(t, len(reg.Sequences()), count)
}

func TestCollectorReloadCounter(t *testing.T) {
	live := metric.NewLive(jetdqm.Builtin())
	live.Failed()
	live.Store(jetdqm.Builtin())
	live.Store(jetdqm.Builtin())

	expected := `
# HELP jetdqm_config_reloads_total Configuration reloads by result
# TYPE jetdqm_config_reloads_total counter
jetdqm_config_reloads_total{result="failure"} 1
jetdqm_config_reloads_total{result="success"} 2
`
	err := testutil.GatherAndCompare(
		createPrometheusRegistry(live),
		strings.NewReader(expected),
		"jetdqm_config_reloads_total",
	)
	require.NoError(t, err)
}

func TestCollectorFollowsStore(t *testing.T) {
	live := metric.NewLive(jetdqm.Builtin())
	promRegistry := createPrometheusRegistry(live)

	reg := jetdqm.NewRegistry()
	require.NoError(t, reg.DefineBase("onlyCalo", jetdqm.BaseAnalyzer()))
	live.Store(reg)

	count, err := testutil.GatherAndCount(promRegistry, "jetdqm_analyzer_info")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetricsHandler(t *testing.T) {
	live := metric.NewLive(jetdqm.Builtin())

	for _, internal := range []bool{false, true} {
		handler := createMetricsHandler(createPrometheusRegistry(live), internal)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body, err := io.ReadAll(rec.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "jetdqm_analyzer_pt_threshold_gev")
		assert.Equal(t, internal, strings.Contains(string(body), "promhttp_metric_handler_requests_total"))
	}
}
