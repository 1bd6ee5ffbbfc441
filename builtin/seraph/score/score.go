// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package score computes validator scores from their epoch history.
package score

import (
	"math"

	"github.com/Eliascm17/seraph/native/history"
)

// WindowEpochs is the number of past epochs a score averages over.
const WindowEpochs = 5

// Window returns the half open epoch range [max(epoch-5, 0), epoch) a score at epoch reads.
// History records epochs as uint16, so epochs past that range read the last
// window it can hold instead of wrapping around.
func Window(epoch uint64) (start, end uint16) {
	epoch = min(epoch, math.MaxUint16)
	if epoch > WindowEpochs {
		start = uint16(epoch - WindowEpochs)
	}
	return start, uint16(epoch)
}

// Contribution returns the credits earned for delegators in one epoch, that is
// credits scaled by (100 - commission) percent, truncated.
func Contribution(credits uint32, commission uint8) uint64 {
	if commission > 100 {
		return 0
	}
	return uint64(credits) * uint64(100-commission) / 100
}

// Calculate averages the contributions over the window ending before epoch.
// Missing epochs and entries without credits or commission are skipped.
// ok is false when nothing in the window could be scored.
func Calculate(r history.Reader, epoch uint64) (score uint32, ok bool) {
	var (
		sum   uint64
		count uint64
	)
	for _, e := range r.EpochRange(Window(epoch)) {
		if e == nil || !e.HasCredits() || !e.HasCommission() {
			continue
		}
		sum += Contribution(e.EpochCredits, e.Commission)
		count++
	}
	if count == 0 {
		return 0, false
	}
	return uint32(sum / count), true
}
