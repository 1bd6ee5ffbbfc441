// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "fmt"

// Constants of the local cluster.
const (
	SlotsPerEpoch  uint64 = 432_000
	SlotDurationMs uint64 = 400
)

// Clock is the cluster time as seen by programs.
type Clock struct {
	Slot          uint64
	Epoch         uint64
	UnixTimestamp int64
}

// AdvanceEpochs returns the clock n epochs later, at the first slot of that epoch.
func (c Clock) AdvanceEpochs(n uint64) Clock {
	epoch := c.Epoch + n
	slot := epoch * SlotsPerEpoch
	if slot < c.Slot {
		slot = c.Slot
	}
	elapsed := (slot - c.Slot) * SlotDurationMs / 1000
	return Clock{
		Slot:          slot,
		Epoch:         epoch,
		UnixTimestamp: c.UnixTimestamp + int64(elapsed),
	}
}

func (c Clock) String() string {
	return fmt.Sprintf("Clock(slot=%d epoch=%d ts=%d)", c.Slot, c.Epoch, c.UnixTimestamp)
}
