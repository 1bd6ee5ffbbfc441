// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package seraph

import (
	"strconv"

	"github.com/gagliardetto/solana-go"

	"github.com/Eliascm17/seraph/chain"
)

// Event names.
const (
	EventPoolInitialized  = "PoolInitialized"
	EventValidatorScored  = "ValidatorScored"
	EventStakeDelegated   = "StakeDelegated"
	EventStakeDeactivated = "StakeDeactivated"
	EventStakeRedelegated = "StakeRedelegated"
)

func newEvent(name string, subject solana.PublicKey, kv ...string) *chain.Event {
	data := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		data[kv[i]] = kv[i+1]
	}
	return &chain.Event{
		Program: chain.ProgramID,
		Name:    name,
		Subject: subject,
		Data:    data,
	}
}

func u64(v uint64) string { return strconv.FormatUint(v, 10) }
