// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package health tracks whether the epoch loop of a serving node keeps up.
package health

import (
	"sync"
	"time"

	"github.com/Eliascm17/seraph/chain"
)

type EpochTick struct {
	Epoch     uint64     `json:"epoch"`
	Timestamp *time.Time `json:"timestamp"`
	Scored    int        `json:"scored"`
	Failed    int        `json:"failed"`
}

type Status struct {
	Healthy   bool       `json:"healthy"`
	Ticking   bool       `json:"ticking"`
	LastEpoch *EpochTick `json:"lastEpoch"`
}

// Health is healthy when no epoch loop runs, or when the loop advanced within
// two intervals and its last round scored without failures.
type Health struct {
	lock     sync.RWMutex
	interval time.Duration
	last     *EpochTick
}

// New creates a Health for an epoch loop ticking every interval. Zero means no loop.
func New(interval time.Duration) *Health {
	return &Health{interval: interval}
}

// NewEpoch records a completed round of the epoch loop.
func (h *Health) NewEpoch(clock chain.Clock, scored, failed int) {
	h.lock.Lock()
	defer h.lock.Unlock()

	now := time.Now()
	h.last = &EpochTick{
		Epoch:     clock.Epoch,
		Timestamp: &now,
		Scored:    scored,
		Failed:    failed,
	}
}

func (h *Health) Status() *Status {
	h.lock.RLock()
	defer h.lock.RUnlock()

	if h.interval == 0 {
		return &Status{Healthy: true}
	}
	healthy := h.last != nil &&
		time.Since(*h.last.Timestamp) <= 2*h.interval &&
		h.last.Failed == 0
	return &Status{
		Healthy:   healthy,
		Ticking:   true,
		LastEpoch: h.last,
	}
}
