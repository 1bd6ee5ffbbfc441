// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Eliascm17/seraph/builtin/seraph/lifecycle"
	"github.com/Eliascm17/seraph/native/stake"
)

// Delegation is set once the account has been delegated.
type Delegation struct {
	Voter             solana.PublicKey `json:"voter"`
	Stake             uint64           `json:"stake"`
	ActivationEpoch   uint64           `json:"activationEpoch"`
	DeactivationEpoch *uint64          `json:"deactivationEpoch"`
	Activation        string           `json:"activation"`
}

// Stake is the JSON form of a stake account.
type Stake struct {
	Address    solana.PublicKey `json:"address"`
	Lamports   uint64           `json:"lamports"`
	Kind       string           `json:"kind"`
	Status     string           `json:"status"`
	Staker     solana.PublicKey `json:"staker"`
	Withdrawer solana.PublicKey `json:"withdrawer"`
	Delegation *Delegation      `json:"delegation"`
	// Data is the raw account data in base58.
	Data string `json:"data,omitempty"`
}

func convertStake(addr solana.PublicKey, lamports uint64, st *stake.State, status lifecycle.Status, epoch uint64) *Stake {
	s := &Stake{
		Address:    addr,
		Lamports:   lamports,
		Kind:       st.Kind.String(),
		Status:     status.String(),
		Staker:     st.Meta.Authorized.Staker,
		Withdrawer: st.Meta.Authorized.Withdrawer,
	}
	if st.Kind == stake.KindStake {
		d := st.Delegation
		s.Delegation = &Delegation{
			Voter:           d.Voter,
			Stake:           d.Stake,
			ActivationEpoch: d.ActivationEpoch,
			Activation:      st.Status(epoch).String(),
		}
		if d.IsDeactivated() {
			s.Delegation.DeactivationEpoch = &d.DeactivationEpoch
		}
	}
	return s
}
