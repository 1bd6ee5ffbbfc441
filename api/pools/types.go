// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Eliascm17/seraph/builtin/seraph/pool"
	"github.com/Eliascm17/seraph/builtin/seraph/vlist"
)

// Pool is the JSON form of a pool account.
type Pool struct {
	Address          solana.PublicKey `json:"address"`
	Admin            solana.PublicKey `json:"admin"`
	StartSlot        uint64           `json:"startSlot"`
	StartEpoch       uint64           `json:"startEpoch"`
	EpochsSinceStart uint64           `json:"epochsSinceStart"`
	VList            solana.PublicKey `json:"vlist"`
	Validators       int              `json:"validators"`
}

// Validator is one shortlist entry with its rank, starting from 1.
type Validator struct {
	Rank            int              `json:"rank"`
	Vote            solana.PublicKey `json:"vote"`
	Score           uint32           `json:"score"`
	LastScoredEpoch uint64           `json:"lastScoredEpoch"`
}

// VList is the JSON form of a shortlist.
type VList struct {
	Address    solana.PublicKey `json:"address"`
	Count      int              `json:"count"`
	Capacity   int              `json:"capacity"`
	Validators []*Validator     `json:"validators"`
}

func convertPool(addr, vlistAddr solana.PublicKey, pl *pool.Pool, epoch uint64, count int) *Pool {
	return &Pool{
		Address:          addr,
		Admin:            pl.Admin,
		StartSlot:        pl.StartSlot,
		StartEpoch:       pl.StartEpoch,
		EpochsSinceStart: pl.EpochsSinceStart(epoch),
		VList:            vlistAddr,
		Validators:       count,
	}
}

func convertVList(addr solana.PublicKey, vl *vlist.VList, top int) *VList {
	entries := vl.Top(top)
	validators := make([]*Validator, len(entries))
	for i, e := range entries {
		validators[i] = &Validator{
			Rank:            i + 1,
			Vote:            e.Validator,
			Score:           e.Score,
			LastScoredEpoch: e.LastScoredEpoch,
		}
	}
	return &VList{
		Address:    addr,
		Count:      vl.Len(),
		Capacity:   vl.Cap(),
		Validators: validators,
	}
}
