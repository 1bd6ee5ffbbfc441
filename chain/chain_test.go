// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

func TestBlake2b(t *testing.T) {
	assert.Equal(t, Blake2b([]byte("ab")), Blake2b([]byte("a"), []byte("b")))
	assert.NotEqual(t, Blake2b([]byte("a")), Blake2b([]byte("b")))
}

func TestAccountDiscriminator(t *testing.T) {
	pool := AccountDiscriminator("Pool")
	assert.Equal(t, pool, AccountDiscriminator("Pool"))
	assert.NotEqual(t, pool, AccountDiscriminator("VList"))
}

func TestMinimumBalance(t *testing.T) {
	assert.Equal(t, uint64(890880), MinimumBalance(0))
	assert.Equal(t, uint64(2282880), MinimumBalance(200))
}

func TestClockAdvance(t *testing.T) {
	c := Clock{Slot: 10, Epoch: 0, UnixTimestamp: 1000}
	next := c.AdvanceEpochs(2)
	assert.Equal(t, uint64(2), next.Epoch)
	assert.Equal(t, 2*SlotsPerEpoch, next.Slot)
	assert.Equal(t, int64(1000+(2*SlotsPerEpoch-10)*SlotDurationMs/1000), next.UnixTimestamp)
}

func TestFindAddress(t *testing.T) {
	admin := solana.NewWallet().PublicKey()
	a1, b1 := FindAddress(ProgramID, []byte("pool"), admin.Bytes())
	a2, b2 := FindAddress(ProgramID, []byte("pool"), admin.Bytes())
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
	assert.False(t, a1.IsOnCurve())
}

func TestAccountCodec(t *testing.T) {
	type body struct {
		A uint64
		B []byte
	}
	d := AccountDiscriminator("Body")

	data, err := EncodeAccount(d, &body{A: 7, B: []byte("hi")}, 64)
	assert.NoError(t, err)
	assert.Len(t, data, 64)

	var got body
	assert.NoError(t, DecodeAccount(d, data, &got))
	assert.Equal(t, body{A: 7, B: []byte("hi")}, got)

	assert.ErrorIs(t, DecodeAccount(AccountDiscriminator("Other"), data, &got), ErrDiscriminatorMismatch)

	_, err = EncodeAccount(d, &body{B: make([]byte, 64)}, 64)
	assert.Error(t, err)
}

func TestHashString(t *testing.T) {
	var h Hash
	assert.Equal(t, "11111111111111111111111111111111", h.String())

	text, err := Blake2b([]byte("x")).MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, Blake2b([]byte("x")).String(), string(text))

	var back Hash
	assert.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, Blake2b([]byte("x")), back)
	assert.Error(t, back.UnmarshalText([]byte("abc")))
}
