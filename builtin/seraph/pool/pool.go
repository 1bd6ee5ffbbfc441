// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Eliascm17/seraph/chain"
)

// Seed prefixes the pool address.
const Seed = "pool"

// Space is the data length of a pool account.
const Space = 8 + 56

var Discriminator = chain.AccountDiscriminator("Pool")

// Pool is the administrative record every other program account hangs off.
// It never changes after creation.
type Pool struct {
	Admin      solana.PublicKey
	StartSlot  uint64
	StartEpoch uint64
	Bump       uint8
}

// New creates the pool of admin at the given clock.
func New(admin solana.PublicKey, clock chain.Clock, bump uint8) *Pool {
	return &Pool{
		Admin:      admin,
		StartSlot:  clock.Slot,
		StartEpoch: clock.Epoch,
		Bump:       bump,
	}
}

// Address returns the pool address of admin.
func Address(admin solana.PublicKey) (solana.PublicKey, uint8) {
	return chain.FindAddress(chain.ProgramID, []byte(Seed), admin[:])
}

// Decode parses pool account data.
func Decode(data []byte) (*Pool, error) {
	var p Pool
	if err := chain.DecodeAccount(Discriminator, data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Encode serializes the pool into Space bytes.
func (p *Pool) Encode() ([]byte, error) {
	return chain.EncodeAccount(Discriminator, p, Space)
}

// EpochsSinceStart returns the number of epochs elapsed since the pool was created.
func (p *Pool) EpochsSinceStart(epoch uint64) uint64 {
	if epoch < p.StartEpoch {
		return 0
	}
	return epoch - p.StartEpoch
}
