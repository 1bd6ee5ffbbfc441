// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lifecycle is the stake lifecycle as the pool sees it, derived from the
// native stake state of an account at an epoch.
package lifecycle

import "github.com/Eliascm17/seraph/native/stake"

// Status is the lifecycle status of a stake account.
type Status uint8

const (
	Undelegated Status = iota
	PendingDelegation
	Delegated
	PendingDeactivation
	Deactivated
)

func (s Status) String() string {
	switch s {
	case Undelegated:
		return "undelegated"
	case PendingDelegation:
		return "pending-delegation"
	case Delegated:
		return "delegated"
	case PendingDeactivation:
		return "pending-deactivation"
	case Deactivated:
		return "deactivated"
	default:
		return "unknown"
	}
}

// Op is an operation the pool performs on a stake account.
type Op uint8

const (
	Delegate Op = iota
	Deactivate
	Redelegate
)

func (o Op) String() string {
	switch o {
	case Delegate:
		return "delegate"
	case Deactivate:
		return "deactivate"
	case Redelegate:
		return "redelegate"
	default:
		return "unknown"
	}
}

// RedelegateTarget is the status of the account that receives a redelegation.
const RedelegateTarget = PendingDelegation

// FromStake maps a native stake state to its lifecycle status at epoch.
func FromStake(st *stake.State, epoch uint64) Status {
	switch st.Status(epoch) {
	case stake.StatusActivating:
		return PendingDelegation
	case stake.StatusActive:
		return Delegated
	case stake.StatusDeactivating:
		return PendingDeactivation
	case stake.StatusInactive:
		return Deactivated
	default:
		return Undelegated
	}
}

// Next returns the status an account in from reaches by op. ok is false when
// op is not allowed in from. For Redelegate it is the status of the source.
func Next(op Op, from Status) (Status, bool) {
	switch op {
	case Delegate:
		if from == Undelegated || from == Deactivated {
			return PendingDelegation, true
		}
	case Deactivate:
		if from == PendingDelegation || from == Delegated {
			return PendingDeactivation, true
		}
	case Redelegate:
		if from == Delegated {
			return PendingDeactivation, true
		}
	}
	return from, false
}
