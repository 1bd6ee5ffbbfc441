// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vlist

import (
	"slices"

	"github.com/gagliardetto/solana-go"

	"github.com/Eliascm17/seraph/chain"
)

const (
	// Seed prefixes the vlist address.
	Seed = "v_list"

	EntrySize  = 48
	ListBudget = 4800

	// MaxValidatorsInList is the fixed capacity of a VList.
	MaxValidatorsInList = ListBudget / EntrySize

	// Space is the data length of a vlist account, with room for rlp framing.
	Space = 8 + 4880 + 16
)

var Discriminator = chain.AccountDiscriminator("VList")

// Entry is the standing of one validator.
type Entry struct {
	Validator       solana.PublicKey
	LastScoredEpoch uint64
	Score           uint32
}

// VList is the ranked shortlist of a pool. Validators[:Count] is sorted by score
// descending, the rest are zero entries. Once full, unseen validators are dropped.
type VList struct {
	Validators [MaxValidatorsInList]Entry
	Count      uint64
	Admin      solana.PublicKey
	Pool       solana.PublicKey
	Bump       uint8
}

// New creates an empty list.
func New(admin, pool solana.PublicKey, bump uint8) *VList {
	return &VList{Admin: admin, Pool: pool, Bump: bump}
}

// Address returns the vlist address of a pool.
func Address(admin, pool solana.PublicKey) (solana.PublicKey, uint8) {
	return chain.FindAddress(chain.ProgramID, []byte(Seed), admin[:], pool[:])
}

// InsertOrUpdate records the score of validator. An existing entry is updated
// in place, a new one is appended when there is room. It returns false when
// the list is full and validator was not in it. The occupied entries are
// re-sorted stably, so equal scores keep their relative order.
func (v *VList) InsertOrUpdate(validator solana.PublicKey, score uint32, epoch uint64) bool {
	stored := false
	for i := range v.Count {
		if v.Validators[i].Validator == validator {
			v.Validators[i].Score = score
			v.Validators[i].LastScoredEpoch = epoch
			stored = true
			break
		}
	}
	if !stored && v.Count < MaxValidatorsInList {
		v.Validators[v.Count] = Entry{
			Validator:       validator,
			LastScoredEpoch: epoch,
			Score:           score,
		}
		v.Count++
		stored = true
	}

	slices.SortStableFunc(v.Validators[:v.Count], func(a, b Entry) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return stored
}

// Len returns the number of occupied entries.
func (v *VList) Len() int { return int(v.Count) }

// Cap returns the capacity.
func (v *VList) Cap() int { return MaxValidatorsInList }

// Entries returns a copy of the occupied entries, best first.
func (v *VList) Entries() []Entry {
	return slices.Clone(v.Validators[:v.Count])
}

// Top returns the k best entries, or all of them if fewer.
func (v *VList) Top(k int) []Entry {
	if k < 0 {
		k = 0
	}
	if k > int(v.Count) {
		k = int(v.Count)
	}
	return slices.Clone(v.Validators[:k])
}

// Find returns the rank and entry of validator.
func (v *VList) Find(validator solana.PublicKey) (int, Entry, bool) {
	for i := range int(v.Count) {
		if v.Validators[i].Validator == validator {
			return i, v.Validators[i], true
		}
	}
	return -1, Entry{}, false
}

// Decode parses vlist account data.
func Decode(data []byte) (*VList, error) {
	var v VList
	if err := chain.DecodeAccount(Discriminator, data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Encode serializes the list into Space bytes.
func (v *VList) Encode() ([]byte, error) {
	return chain.EncodeAccount(Discriminator, v, Space)
}
