// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package seraph

import "github.com/Eliascm17/seraph/metrics"

var (
	metricScoreCount = metrics.LazyLoadCounterVec("seraph_score_count", []string{"outcome"})
	metricStakeOps   = metrics.LazyLoadCounterVec("seraph_stake_op_count", []string{"op", "status"})
	metricVListSize  = metrics.LazyLoadGauge("seraph_vlist_size")
)
