// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Eliascm17/seraph/chain"
)

func TestHealthWithoutLoop(t *testing.T) {
	status := New(0).Status()
	assert.True(t, status.Healthy)
	assert.False(t, status.Ticking)
	assert.Nil(t, status.LastEpoch)
}

func TestHealthNewEpoch(t *testing.T) {
	h := New(time.Minute)
	assert.False(t, h.Status().Healthy, "no round yet")

	h.NewEpoch(chain.Clock{Epoch: 7}, 3, 0)
	status := h.Status()
	assert.True(t, status.Healthy)
	assert.True(t, status.Ticking)
	assert.Equal(t, uint64(7), status.LastEpoch.Epoch)
	assert.Equal(t, 3, status.LastEpoch.Scored)

	h.NewEpoch(chain.Clock{Epoch: 8}, 2, 1)
	assert.False(t, h.Status().Healthy, "failed scores")
}

func TestHealthStale(t *testing.T) {
	h := New(time.Millisecond)
	h.NewEpoch(chain.Clock{Epoch: 1}, 0, 0)
	time.Sleep(5 * time.Millisecond)
	assert.False(t, h.Status().Healthy)
}
