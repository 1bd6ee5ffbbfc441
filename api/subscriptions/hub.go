// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"sync"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/metrics"
	"github.com/Eliascm17/seraph/runtime"
)

var (
	metricSubscribers = metrics.LazyLoadGauge("api_subscribers")
	metricDropped     = metrics.LazyLoadCounterVec("api_subscription_dropped_count", []string{"name"})
)

var _ runtime.EventSink = (*Hub)(nil)

// Hub receives the events of committed transactions and fans them out to listeners.
type Hub struct {
	listeners map[chan *EventMessage]struct{}
	mu        sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		listeners: make(map[chan *EventMessage]struct{}),
	}
}

func (h *Hub) Subscribe(ch chan *EventMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.listeners[ch] = struct{}{}
	metricSubscribers().Set(int64(len(h.listeners)))
}

func (h *Hub) Unsubscribe(ch chan *EventMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.listeners, ch)
	metricSubscribers().Set(int64(len(h.listeners)))
}

// Write broadcasts without blocking the runtime. A listener whose buffer is
// full misses the event.
func (h *Hub) Write(txID chain.Hash, clock chain.Clock, events []*chain.Event) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.listeners) == 0 {
		return nil
	}
	for i, ev := range events {
		msg := newEventMessage(txID, clock, i, ev)
		for lsn := range h.listeners {
			select {
			case lsn <- msg:
			default:
				metricDropped().AddWithLabel(1, map[string]string{"name": ev.Name})
			}
		}
	}
	return nil
}
