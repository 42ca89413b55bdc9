package metric

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewRequestCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewViewRequestCounter(reg)

	c.Increment("ok")
	c.Increment("ok")
	c.Increment("error")

	assert.Equal(t, "navmenu_view_requests_total", c.Name)
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Collector().WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Collector().WithLabelValues("error")))
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewReloadCounter(reg)

	assert.Panics(t, func() { NewReloadCounter(reg) })
}

func TestGetHandlerForRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewReloadCounter(reg).Increment("success")

	rec := httptest.NewRecorder()
	GetHandlerForRegistry(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `navmenu_reloads_total{result="success"} 1`))
}
