// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/Eliascm17/seraph/metrics"

var (
	metricTxCount    = metrics.LazyLoadCounterVec("tx_count", []string{"status"})
	metricTxDuration = metrics.LazyLoadHistogramVec("tx_duration_ms", []string{"status"}, metrics.BucketTxMillis)
	metricEpoch      = metrics.LazyLoadGauge("epoch")
)
