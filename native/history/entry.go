// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package history

import "math"

// MaxItems is the capacity of the history ring.
const MaxItems = 512

// Unset sentinels of entry fields.
const (
	UnsetEpoch       = math.MaxUint16
	UnsetCredits     = math.MaxUint32
	UnsetCommission  = math.MaxUint8
	UnsetStake       = math.MaxUint64
	UnsetUpdatedSlot = math.MaxUint64
)

// Entry is the record of a validator for one epoch.
type Entry struct {
	Epoch                     uint16
	EpochCredits              uint32
	Commission                uint8
	ActivatedStakeLamports    uint64
	VoteAccountLastUpdateSlot uint64
}

// NewEntry returns an entry for epoch with every other field unset.
func NewEntry(epoch uint16) Entry {
	return Entry{
		Epoch:                     epoch,
		EpochCredits:              UnsetCredits,
		Commission:                UnsetCommission,
		ActivatedStakeLamports:    UnsetStake,
		VoteAccountLastUpdateSlot: UnsetUpdatedSlot,
	}
}

// HasCredits reports whether credits were recorded.
func (e *Entry) HasCredits() bool { return e.EpochCredits != UnsetCredits }

// HasCommission reports whether commission was recorded.
func (e *Entry) HasCommission() bool { return e.Commission != UnsetCommission }

// CircBuf is a fixed capacity ring of entries ordered by epoch.
type CircBuf struct {
	Idx     uint64
	IsEmpty bool
	Arr     []Entry
}

// NewCircBuf creates an empty ring.
func NewCircBuf() CircBuf {
	arr := make([]Entry, MaxItems)
	for i := range arr {
		arr[i] = NewEntry(UnsetEpoch)
	}
	return CircBuf{Idx: MaxItems - 1, IsEmpty: true, Arr: arr}
}

// Push appends an entry, overwriting the oldest one when full.
func (c *CircBuf) Push(e Entry) {
	c.Idx = (c.Idx + 1) % uint64(len(c.Arr))
	c.Arr[c.Idx] = e
	c.IsEmpty = false
}

// Last returns the most recent entry.
func (c *CircBuf) Last() (Entry, bool) {
	if c.IsEmpty {
		return Entry{}, false
	}
	return c.Arr[c.Idx], true
}

// Upsert replaces the entry of the same epoch, or pushes e if its epoch is newer
// than the last one. Entries older than the last one without a slot are dropped.
func (c *CircBuf) Upsert(e Entry) bool {
	if last, ok := c.Last(); ok && e.Epoch <= last.Epoch {
		for i := range c.Arr {
			if c.Arr[i].Epoch == e.Epoch {
				c.Arr[i] = e
				return true
			}
		}
		return false
	}
	c.Push(e)
	return true
}

// EpochRange returns one slot per epoch in [start, end); epochs without an entry are nil.
func (c *CircBuf) EpochRange(start, end uint16) []*Entry {
	if end <= start {
		return nil
	}
	out := make([]*Entry, end-start)
	if c.IsEmpty {
		return out
	}
	for i := range c.Arr {
		e := c.Arr[i]
		if e.Epoch == UnsetEpoch || e.Epoch < start || e.Epoch >= end {
			continue
		}
		out[e.Epoch-start] = &e
	}
	return out
}
