// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Eliascm17/seraph/native/history"
)

type entries map[uint16]history.Entry

func (m entries) EpochRange(start, end uint16) []*history.Entry {
	var out []*history.Entry
	for ep := start; ep < end; ep++ {
		if e, ok := m[ep]; ok {
			out = append(out, &e)
		} else {
			out = append(out, nil)
		}
	}
	return out
}

func entry(epoch uint16, credits uint32, commission uint8) history.Entry {
	e := history.NewEntry(epoch)
	e.EpochCredits = credits
	e.Commission = commission
	return e
}

func TestWindow(t *testing.T) {
	s, e := Window(3)
	assert.Equal(t, [2]uint16{0, 3}, [2]uint16{s, e})
	s, e = Window(5)
	assert.Equal(t, [2]uint16{0, 5}, [2]uint16{s, e})
	s, e = Window(12)
	assert.Equal(t, [2]uint16{7, 12}, [2]uint16{s, e})

	s, e = Window(math.MaxUint16)
	assert.Equal(t, [2]uint16{math.MaxUint16 - 5, math.MaxUint16}, [2]uint16{s, e})
	for _, epoch := range []uint64{math.MaxUint16 + 1, math.MaxUint16 + 3, math.MaxUint32} {
		s, e = Window(epoch)
		assert.Equal(t, [2]uint16{math.MaxUint16 - 5, math.MaxUint16}, [2]uint16{s, e}, "epoch %d", epoch)
	}
}

func TestCalculatePastEpochRange(t *testing.T) {
	h := entries{
		math.MaxUint16 - 2: entry(math.MaxUint16-2, 100, 0),
		math.MaxUint16 - 1: entry(math.MaxUint16-1, 300, 0),
	}
	score, ok := Calculate(h, math.MaxUint16+10)
	assert.True(t, ok)
	assert.Equal(t, uint32(200), score)
}

func TestContribution(t *testing.T) {
	assert.Equal(t, uint64(90), Contribution(100, 10))
	assert.Equal(t, uint64(0), Contribution(100, 100))
	assert.Equal(t, uint64(0), Contribution(100, 150))
	assert.Equal(t, uint64(35), Contribution(39, 9))
}

func TestCalculate(t *testing.T) {
	h := entries{
		0: entry(0, 100, 10),
		1: entry(1, 200, 0),
		2: entry(2, 50, 50),
		3: entry(3, 1000, 0),
	}
	// window [0,3): 90 + 200 + 25 = 315 / 3
	score, ok := Calculate(h, 3)
	assert.True(t, ok)
	assert.Equal(t, uint32(105), score)

	// window [4,9) is empty
	_, ok = Calculate(h, 9)
	assert.False(t, ok)

	_, ok = Calculate(h, 0)
	assert.False(t, ok)
}

func TestCalculateSkipsMissing(t *testing.T) {
	h := entries{
		5: entry(5, 40, 0),
		7: entry(7, 20, 0),
		8: history.NewEntry(8),
	}
	score, ok := Calculate(h, 10)
	assert.True(t, ok)
	assert.Equal(t, uint32(30), score)
}

func TestCalculateDeterministic(t *testing.T) {
	h := entries{}
	for ep := uint16(0); ep < 6; ep++ {
		h[ep] = entry(ep, 20+uint32(ep)*5, uint8(5+ep))
	}
	a, _ := Calculate(h, 6)
	b, _ := Calculate(h, 6)
	assert.Equal(t, a, b)
}

func TestUniformWindow(t *testing.T) {
	h := entries{}
	for ep := uint16(10); ep < 15; ep++ {
		h[ep] = entry(ep, 40, 10)
	}
	score, ok := Calculate(h, 15)
	assert.True(t, ok)
	assert.Equal(t, uint32(36), score)
}

func TestSparseWindow(t *testing.T) {
	h := entries{
		11: entry(11, 100, 0),
		13: entry(13, 50, 0),
	}
	score, ok := Calculate(h, 15)
	assert.True(t, ok)
	assert.Equal(t, uint32(75), score)
}
