package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/neox5/jetdqm/internal/jetdqm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	reg *jetdqm.Registry
}

func (s staticSource) Registry() *jetdqm.Registry {
	return s.reg
}

func get(t *testing.T, h http.Handler, path string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	res := rec.Result()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestServerRoutes(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "metrics")
	})
	s := New(0, "/metrics", metrics, staticSource{reg: jetdqm.Builtin()})
	h := s.Handler()

	res, body := get(t, h, "/metrics")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "metrics", body)

	res, body = get(t, h, "/registry")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/yaml", res.Header.Get("Content-Type"))

	s2, err := jetdqm.UnmarshalSnapshot([]byte(body))
	require.NoError(t, err)
	restored, err := jetdqm.Restore(s2)
	require.NoError(t, err)
	assert.Equal(t, jetdqm.Builtin().Names(), restored.Names())

	res, body = get(t, h, "/registry/"+jetdqm.AnalyzerAk4PFCHSCleaned)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "jetsrc: ak4PFJetsCHS")
	assert.Contains(t, body, "clone: "+jetdqm.AnalyzerAk4PFCleaned)

	res, _ = get(t, h, "/registry/missing")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
