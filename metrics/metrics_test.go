// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	assert.Nil(t, HTTPHandler())

	// noop meters accept anything
	Counter("noop_count").Add(1)
	CounterVec("noop_vec", []string{"a"}).AddWithLabel(1, map[string]string{"nonsense": "ok"})
	Gauge("noop_gauge").Set(3)
	Histogram("noop_hist", nil).Observe(5)
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	Counter("tx_total").Add(2)
	assert.Same(t, Counter("tx_total"), Counter("tx_total"))

	CounterVec("tx_status", []string{"status"}).AddWithLabel(1, map[string]string{"status": "ok"})
	Gauge("vlist_size").Set(42)
	HistogramVec("tx_ms", []string{"status"}, BucketTxMillis).ObserveWithLabels(3, map[string]string{"status": "ok"})

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, "seraph_metrics_tx_total 2")
	assert.Contains(t, out, `seraph_metrics_tx_status{status="ok"} 1`)
	assert.Contains(t, out, "seraph_metrics_vlist_size 42")
	assert.Contains(t, out, `seraph_metrics_tx_ms_count{status="ok"} 1`)
}
