// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"bytes"
	"math"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// StateSize is the data length of every stake account.
const StateSize = 200

// NoEpoch marks a delegation that has not been deactivated.
const NoEpoch = math.MaxUint64

// Kind is the discriminant of a stake account.
type Kind uint8

const (
	KindUninitialized Kind = iota
	KindInitialized
	KindStake
)

func (k Kind) String() string {
	switch k {
	case KindUninitialized:
		return "uninitialized"
	case KindInitialized:
		return "initialized"
	case KindStake:
		return "stake"
	default:
		return "unknown"
	}
}

// Authorized holds the keys allowed to manage the account.
type Authorized struct {
	Staker     solana.PublicKey
	Withdrawer solana.PublicKey
}

// Lockup prevents withdrawal before a time or epoch unless the custodian signs.
type Lockup struct {
	UnixTimestamp uint64
	Epoch         uint64
	Custodian     solana.PublicKey
}

// Meta is set once the account is initialized.
type Meta struct {
	RentExemptReserve uint64
	Authorized        Authorized
	Lockup            Lockup
}

// Delegation is the vote account a stake is delegated to.
type Delegation struct {
	Voter             solana.PublicKey
	Stake             uint64
	ActivationEpoch   uint64
	DeactivationEpoch uint64
}

// IsDeactivated returns whether deactivation was requested.
func (d *Delegation) IsDeactivated() bool {
	return d.DeactivationEpoch != NoEpoch
}

// State is the content of a stake account.
type State struct {
	Kind       Kind
	Meta       Meta
	Delegation Delegation
}

type stateBody struct {
	Meta       Meta
	Delegation Delegation
}

// Decode parses stake account data.
func Decode(data []byte) (*State, error) {
	if len(data) != StateSize {
		return nil, errors.WithMessagef(ErrInvalidAccountData, "data length %d", len(data))
	}
	st := &State{Kind: Kind(data[0])}
	switch st.Kind {
	case KindUninitialized:
		return st, nil
	case KindInitialized, KindStake:
		var body stateBody
		if err := rlp.NewStream(bytes.NewReader(data[1:]), 0).Decode(&body); err != nil {
			return nil, errors.WithMessage(ErrInvalidAccountData, err.Error())
		}
		st.Meta, st.Delegation = body.Meta, body.Delegation
		return st, nil
	default:
		return nil, errors.WithMessagef(ErrInvalidAccountData, "kind %d", data[0])
	}
}

// Encode serializes the state into StateSize bytes.
func (s *State) Encode() ([]byte, error) {
	data := make([]byte, StateSize)
	data[0] = byte(s.Kind)
	if s.Kind == KindUninitialized {
		return data, nil
	}
	body, err := rlp.EncodeToBytes(&stateBody{s.Meta, s.Delegation})
	if err != nil {
		return nil, err
	}
	if 1+len(body) > StateSize {
		return nil, errors.Errorf("stake state too large: %d", 1+len(body))
	}
	copy(data[1:], body)
	return data, nil
}

// Status is the activation status of a delegation at an epoch.
type Status uint8

const (
	StatusNone Status = iota
	StatusActivating
	StatusActive
	StatusDeactivating
	StatusInactive
)

func (s Status) String() string {
	switch s {
	case StatusActivating:
		return "activating"
	case StatusActive:
		return "active"
	case StatusDeactivating:
		return "deactivating"
	case StatusInactive:
		return "inactive"
	default:
		return "none"
	}
}

// Status returns the activation status at epoch. Activation and deactivation
// each take one epoch: a delegation made in epoch N is active from N+1, and a
// deactivation requested in epoch M is inactive from M+1.
func (s *State) Status(epoch uint64) Status {
	if s.Kind != KindStake {
		return StatusNone
	}
	d := &s.Delegation
	if d.IsDeactivated() {
		if epoch <= d.DeactivationEpoch {
			return StatusDeactivating
		}
		return StatusInactive
	}
	if epoch <= d.ActivationEpoch {
		return StatusActivating
	}
	return StatusActive
}
