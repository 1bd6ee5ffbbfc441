// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"strings"

	"github.com/Eliascm17/seraph/metrics"
)

var (
	metricEventsWritten        = metrics.LazyLoadCounterVec("logdb_events_written", []string{"name"})
	metricEventQueryParameters = metrics.LazyLoadCounterVec("logdb_query_parameters", []string{"parameters"})
	metricLimitBucket          = metrics.LazyLoadHistogramVec("logdb_query_limit_bucket", []string{"order"}, []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleEventsFilter(filter *EventFilter) {
	paramsUsed := make([]string, 0, 3)
	if filter.Name != "" {
		paramsUsed = append(paramsUsed, "name")
	}
	if filter.Subject != nil {
		paramsUsed = append(paramsUsed, "subject")
	}
	if filter.Range != nil {
		paramsUsed = append(paramsUsed, "range")
	}
	metricEventQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(paramsUsed, ",")})

	if filter.Options != nil {
		limit := filter.Options.Limit
		if limit > 1000 {
			limit = 1001
		}
		order := string(filter.Order)
		if order == "" {
			order = string(ASC)
		}
		metricLimitBucket().ObserveWithLabels(int64(limit), map[string]string{"order": order})
	}
}
