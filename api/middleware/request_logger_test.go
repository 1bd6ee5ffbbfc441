// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Eliascm17/seraph/log"
)

// mockLogger is a simple logger implementation for testing purposes
type mockLogger struct {
	loggedData []any
}

func (m *mockLogger) With(_ ...any) log.Logger { return m }
func (m *mockLogger) New(_ ...any) log.Logger { return m }
func (m *mockLogger) Log(_ slog.Level, _ string, _ ...any) {}
func (m *mockLogger) Trace(_ string, _ ...any) {}
func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Warn(_ string, _ ...any) {}
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) Crit(_ string, _ ...any) {}
func (m *mockLogger) Write(_ slog.Level, _ string, _ ...any) {}
func (m *mockLogger) Enabled(_ context.Context, _ slog.Level) bool { return true }
func (m *mockLogger) Handler() slog.Handler { return nil }

func (m *mockLogger) Info(_ string, ctx ...any) {
	m.loggedData = append(m.loggedData, ctx...)
}

func TestRequestLogger(t *testing.T) {
	fast := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) }
	slow := func(w http.ResponseWriter, _ *http.Request) { time.Sleep(20 * time.Millisecond) }

	tests := []struct {
		name      string
		handler   http.HandlerFunc
		enabled   bool
		threshold time.Duration
		shouldLog bool
	}{
		{"enabled", fast, true, 0, true},
		{"disabled", fast, false, 0, false},
		{"disabled fast below threshold", fast, false, time.Second, false},
		{"disabled slow above threshold", slow, false, time.Millisecond, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &mockLogger{}
			var enabled atomic.Bool
			enabled.Store(tt.enabled)

			handler := RequestLoggerMiddleware(logger, &enabled, tt.threshold)(tt.handler)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/clock", nil))

			if tt.shouldLog {
				assert.Contains(t, logger.loggedData, "/clock")
			} else {
				assert.Empty(t, logger.loggedData)
			}
		})
	}
}
