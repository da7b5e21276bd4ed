package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cgxeiji/weather"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.Observe(weather.Reading{Sample: 29815, Average: 29815})
	m.Observe(weather.Reading{Sample: 29915, Average: 59730})
	m.Observe(weather.Reading{Err: errors.New("nack"), Average: 59730})
	m.Observe(weather.Reading{Sample: 29715, Average: 44722, Saturated: true})

	require.Equal(t, float64(44722), testutil.ToFloat64(m.average))
	require.Equal(t, float64(29715), testutil.ToFloat64(m.sample))
	require.Equal(t, float64(1), testutil.ToFloat64(m.saturated))
	require.Equal(t, float64(3), testutil.ToFloat64(m.samples))
	require.Equal(t, float64(1), testutil.ToFloat64(m.errors))
}

func TestNewTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	require.Error(t, err)
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	m.Observe(weather.Reading{Sample: 29815, Average: 29815})

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "weather_average_centikelvin 29815")
	require.Contains(t, string(body), "weather_samples_total 1")
}
