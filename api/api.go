// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/Eliascm17/seraph/api/clock"
	"github.com/Eliascm17/seraph/api/events"
	"github.com/Eliascm17/seraph/api/middleware"
	"github.com/Eliascm17/seraph/api/node"
	"github.com/Eliascm17/seraph/api/pools"
	"github.com/Eliascm17/seraph/api/stakes"
	"github.com/Eliascm17/seraph/api/subscriptions"
	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/health"
	"github.com/Eliascm17/seraph/log"
	"github.com/Eliascm17/seraph/logdb"
	"github.com/Eliascm17/seraph/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	EnableMetrics        bool
	LogsLimit            uint64
	// SkipLogs disables the events endpoint when no log db is kept.
	SkipLogs bool
	Health   *health.Health
	// Events feeds the websocket subscriptions. They are not mounted when nil.
	Events *subscriptions.Hub
}

// New return api router and a func to close the websocket subscriptions.
func New(rt *runtime.Runtime, logDB *logdb.LogDB, genesisID chain.Hash, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	pools.New(rt).
		Mount(router, "/pools")
	stakes.New(rt).
		Mount(router, "/stakes")
	clock.New(rt, genesisID).
		Mount(router, "/clock")
	h := opts.Health
	if h == nil {
		h = health.New(0)
	}
	node.New(h).
		Mount(router, "/node")
	if !opts.SkipLogs {
		events.New(logDB, opts.LogsLimit).
			Mount(router, "/events")
	}
	closeSubs := func() {}
	if opts.Events != nil {
		subs := subscriptions.New(opts.Events, origins)
		subs.Mount(router, "/subscriptions")
		closeSubs = subs.Close
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	enableReqLogger := opts.EnableReqLogger
	if enableReqLogger == nil {
		enableReqLogger = &atomic.Bool{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, enableReqLogger, opts.SlowQueriesThreshold))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	return handler.ServeHTTP, closeSubs // hijacked conns are not closed by the http server
}
