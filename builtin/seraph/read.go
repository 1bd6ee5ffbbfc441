// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package seraph

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/builtin/seraph/lifecycle"
	"github.com/Eliascm17/seraph/builtin/seraph/pool"
	"github.com/Eliascm17/seraph/builtin/seraph/vlist"
	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/native/stake"
)

// loadPool returns nil when there is no account at addr.
func loadPool(l *ledger.Ledger, addr solana.PublicKey) (*pool.Pool, error) {
	acc, err := l.Get(addr)
	if err != nil || acc == nil {
		return nil, err
	}
	if acc.Owner != chain.ProgramID {
		return nil, errors.WithMessagef(ErrAccountMismatch, "pool %v owned by %v", addr, acc.Owner)
	}
	pl, err := pool.Decode(acc.Data)
	if err != nil {
		return nil, errors.WithMessagef(ErrAccountMismatch, "pool %v: %v", addr, err)
	}
	return pl, nil
}

func loadVList(l *ledger.Ledger, addr, admin, poolAddr solana.PublicKey) (*vlist.VList, error) {
	acc, err := l.Get(addr)
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.Owner != chain.ProgramID {
		return nil, errors.WithMessagef(ErrAccountMismatch, "no vlist at %v", addr)
	}
	vl, err := vlist.Decode(acc.Data)
	if err != nil {
		return nil, errors.WithMessagef(ErrAccountMismatch, "vlist %v: %v", addr, err)
	}
	if vl.Admin != admin || vl.Pool != poolAddr {
		return nil, errors.WithMessagef(ErrAccountMismatch, "vlist %v belongs to pool %v", addr, vl.Pool)
	}
	return vl, nil
}

// Pool returns the pool of admin, or nil if it was never initialized.
func Pool(l *ledger.Ledger, admin solana.PublicKey) (*pool.Pool, error) {
	return loadPool(l, PoolAddress(admin))
}

// VList returns the shortlist of admin's pool, or nil if the pool was never initialized.
func VList(l *ledger.Ledger, admin solana.PublicKey) (*vlist.VList, error) {
	poolAddr := PoolAddress(admin)
	pl, err := loadPool(l, poolAddr)
	if err != nil || pl == nil {
		return nil, err
	}
	return loadVList(l, VListAddress(admin, poolAddr), admin, poolAddr)
}

// StakeStatus returns the lifecycle status of a stake account at epoch.
func StakeStatus(l *ledger.Ledger, epoch uint64, stakeAccount solana.PublicKey) (lifecycle.Status, *stake.State, error) {
	st, _, err := stake.Get(l, stakeAccount)
	if err != nil {
		return lifecycle.Undelegated, nil, err
	}
	return lifecycle.FromStake(st, epoch), st, nil
}
