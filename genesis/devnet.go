// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/gagliardetto/solana-go"

	"github.com/Eliascm17/seraph/builtin/seraph"
	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/native/stake"
)

// Devnet presets.
const (
	DevnetValidators   = 20
	DevnetStakes       = 2
	DevnetEpochs       = 6
	DevnetAdminBalance = 1_000_000 * 1_000_000_000
	DevnetStakeDeposit = 10 * 1_000_000_000
)

// DevnetConfig tunes the devnet description.
type DevnetConfig struct {
	Validators int
	Stakes     int
	// Epochs of history recorded per validator, starting at epoch 0.
	Epochs uint16
	Seed   uint64
}

// DefaultDevnetConfig returns the devnet presets.
func DefaultDevnetConfig() DevnetConfig {
	return DevnetConfig{
		Validators: DevnetValidators,
		Stakes:     DevnetStakes,
		Epochs:     DevnetEpochs,
	}
}

func randKey(rng *rand.Rand) solana.PublicKey {
	var k solana.PublicKey
	for i := 0; i < len(k); i += 8 {
		binary.LittleEndian.PutUint64(k[i:], rng.Uint64())
	}
	return k
}

// NewDevnetGenesis describes a local network administered by admin. Every
// validator records credits in [20, 46) and commission in [5, 14) for each
// epoch, and every stake account is controlled by the admin's pool.
func NewDevnetGenesis(admin solana.PublicKey, cfg DevnetConfig) *CustomGenesis {
	rng := rand.New(rand.NewPCG(cfg.Seed, uint64(cfg.Validators)))

	gen := &CustomGenesis{
		Name: "devnet",
		Accounts: []Account{
			{Address: admin, Lamports: DevnetAdminBalance},
		},
	}
	for range cfg.Validators {
		v := Validator{
			Vote:      randKey(rng),
			Authority: admin,
		}
		for ep := range cfg.Epochs {
			v.History = append(v.History, EpochRecord{
				Epoch:      ep,
				Credits:    20 + uint32(rng.IntN(26)),
				Commission: 5 + uint8(rng.IntN(9)),
			})
		}
		gen.Validators = append(gen.Validators, v)
	}

	poolAddr := seraph.PoolAddress(admin)
	for i := range cfg.Stakes {
		var idx [4]byte
		binary.LittleEndian.PutUint32(idx[:], uint32(i))
		addr, _ := chain.FindAddress(chain.StakeProgramID, []byte("devnet-stake"), admin[:], idx[:])
		gen.Stakes = append(gen.Stakes, Stake{
			Address:    addr,
			Lamports:   chain.MinimumBalance(stake.StateSize) + DevnetStakeDeposit,
			Staker:     poolAddr,
			Withdrawer: admin,
		})
	}
	return gen
}

// NewDevnet creates the devnet genesis for admin.
func NewDevnet(admin solana.PublicKey) *Genesis {
	gen, err := NewCustomNet(NewDevnetGenesis(admin, DefaultDevnetConfig()))
	if err != nil {
		panic(err)
	}
	return gen
}
