// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stake implements the native staking primitive: stake accounts that are
// initialized, delegated to a vote account, deactivated and redelegated.
package stake

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/log"
	"github.com/Eliascm17/seraph/runtime"
)

var logger = log.WithContext("pkg", "stake")

// AuthorizeKind selects which authority Authorize replaces.
type AuthorizeKind uint8

const (
	AuthorizeStaker AuthorizeKind = iota
	AuthorizeWithdrawer
)

// Program is the stake program.
type Program struct{}

// New creates the stake program.
func New() *Program { return &Program{} }

func (p *Program) ID() solana.PublicKey { return chain.StakeProgramID }

// Get reads the stake state of an account.
func Get(l *ledger.Ledger, addr solana.PublicKey) (*State, *ledger.Account, error) {
	acc, err := l.Get(addr)
	if err != nil {
		return nil, nil, err
	}
	if acc == nil {
		return nil, nil, errors.WithMessagef(ErrAccountNotFound, "%v", addr)
	}
	if acc.Owner != chain.StakeProgramID {
		return nil, nil, errors.WithMessagef(ErrInvalidAccountOwner, "%v owned by %v", addr, acc.Owner)
	}
	st, err := Decode(acc.Data)
	if err != nil {
		return nil, nil, err
	}
	return st, acc, nil
}

func put(l *ledger.Ledger, addr solana.PublicKey, acc *ledger.Account, st *State) error {
	data, err := st.Encode()
	if err != nil {
		return err
	}
	acc.Data = data
	l.Set(addr, acc)
	return nil
}

func requireSigner(ctx *runtime.Context, key solana.PublicKey) error {
	if !ctx.IsSigner(key) {
		return errors.WithMessagef(ErrMissingRequiredSignature, "%v", key)
	}
	return nil
}

// Initialize sets the authorities and lockup of an uninitialized stake account.
// The account must hold at least the rent exempt reserve.
func Initialize(ctx *runtime.Context, addr solana.PublicKey, authorized Authorized, lockup Lockup) error {
	l := ctx.Ledger()
	st, acc, err := Get(l, addr)
	if err != nil {
		return err
	}
	if st.Kind != KindUninitialized {
		return errors.WithMessagef(ErrAlreadyInitialized, "%v", addr)
	}
	reserve := chain.MinimumBalance(StateSize)
	if acc.Lamports < reserve {
		return errors.WithMessagef(ErrInsufficientFunds, "%v holds %d, needs %d", addr, acc.Lamports, reserve)
	}
	st = &State{
		Kind: KindInitialized,
		Meta: Meta{
			RentExemptReserve: reserve,
			Authorized:        authorized,
			Lockup:            lockup,
		},
	}
	return put(l, addr, acc, st)
}

// Authorize replaces the staker or withdrawer authority. The current staker may
// change the staker, the withdrawer may change either.
func Authorize(ctx *runtime.Context, addr, newAuthority solana.PublicKey, kind AuthorizeKind) error {
	l := ctx.Ledger()
	st, acc, err := Get(l, addr)
	if err != nil {
		return err
	}
	if st.Kind == KindUninitialized {
		return errors.WithMessagef(ErrInvalidAccountData, "%v is uninitialized", addr)
	}
	auth := &st.Meta.Authorized
	switch kind {
	case AuthorizeStaker:
		if !ctx.IsSigner(auth.Staker) && !ctx.IsSigner(auth.Withdrawer) {
			return errors.WithMessagef(ErrMissingRequiredSignature, "staker %v", auth.Staker)
		}
		auth.Staker = newAuthority
	case AuthorizeWithdrawer:
		if err := requireSigner(ctx, auth.Withdrawer); err != nil {
			return err
		}
		auth.Withdrawer = newAuthority
	default:
		return runtime.ErrInvalidInstructionData
	}
	return put(l, addr, acc, st)
}

func checkVoteAccount(l *ledger.Ledger, vote solana.PublicKey) error {
	acc, err := l.Get(vote)
	if err != nil {
		return err
	}
	if acc == nil || acc.Owner != chain.VoteProgramID {
		return errors.WithMessagef(ErrInvalidVoteAccount, "%v", vote)
	}
	return nil
}

// Delegate delegates the stake of an initialized or fully deactivated account to vote.
// The staker authority must sign.
func Delegate(ctx *runtime.Context, addr, vote solana.PublicKey) error {
	l := ctx.Ledger()
	epoch := ctx.Clock().Epoch

	st, acc, err := Get(l, addr)
	if err != nil {
		return err
	}
	switch st.Kind {
	case KindInitialized:
	case KindStake:
		if status := st.Status(epoch); status != StatusInactive {
			return errors.WithMessagef(ErrTooSoonToRedelegate, "%v is %v", addr, status)
		}
	default:
		return errors.WithMessagef(ErrInvalidAccountData, "%v is %v", addr, st.Kind)
	}
	if err := requireSigner(ctx, st.Meta.Authorized.Staker); err != nil {
		return err
	}
	if err := checkVoteAccount(l, vote); err != nil {
		return err
	}
	if acc.Lamports <= st.Meta.RentExemptReserve {
		return errors.WithMessagef(ErrInsufficientDelegation, "%v", addr)
	}

	st.Kind = KindStake
	st.Delegation = Delegation{
		Voter:             vote,
		Stake:             acc.Lamports - st.Meta.RentExemptReserve,
		ActivationEpoch:   epoch,
		DeactivationEpoch: NoEpoch,
	}
	logger.Debug("delegated", "stake", addr, "vote", vote, "amount", st.Delegation.Stake, "epoch", epoch)
	return put(l, addr, acc, st)
}

// Deactivate requests deactivation of a delegated stake. The staker authority must sign.
func Deactivate(ctx *runtime.Context, addr solana.PublicKey) error {
	l := ctx.Ledger()
	epoch := ctx.Clock().Epoch

	st, acc, err := Get(l, addr)
	if err != nil {
		return err
	}
	if st.Kind != KindStake {
		return errors.WithMessagef(ErrInvalidAccountData, "%v is %v", addr, st.Kind)
	}
	if err := requireSigner(ctx, st.Meta.Authorized.Staker); err != nil {
		return err
	}
	if st.Delegation.IsDeactivated() {
		return errors.WithMessagef(ErrAlreadyDeactivated, "%v at epoch %d", addr, st.Delegation.DeactivationEpoch)
	}

	st.Delegation.DeactivationEpoch = epoch
	logger.Debug("deactivated", "stake", addr, "epoch", epoch)
	return put(l, addr, acc, st)
}

// Redelegate moves the delegated stake of a fully active account into an
// uninitialized stake account delegated to vote, and deactivates the source.
// The staker authority of the source must sign.
func Redelegate(ctx *runtime.Context, addr, vote, newAddr solana.PublicKey) error {
	l := ctx.Ledger()
	epoch := ctx.Clock().Epoch

	st, acc, err := Get(l, addr)
	if err != nil {
		return err
	}
	if st.Kind != KindStake {
		return errors.WithMessagef(ErrInvalidAccountData, "%v is %v", addr, st.Kind)
	}
	if err := requireSigner(ctx, st.Meta.Authorized.Staker); err != nil {
		return err
	}
	if status := st.Status(epoch); status != StatusActive {
		return errors.WithMessagef(ErrRedelegateTransientOrInactive, "%v is %v", addr, status)
	}
	if st.Delegation.Voter == vote {
		return errors.WithMessagef(ErrRedelegateToSameVoteAccount, "%v", vote)
	}
	if err := checkVoteAccount(l, vote); err != nil {
		return err
	}

	newSt, newAcc, err := Get(l, newAddr)
	if err != nil {
		return err
	}
	if newSt.Kind != KindUninitialized {
		return errors.WithMessagef(ErrInvalidAccountData, "%v is %v", newAddr, newSt.Kind)
	}
	reserve := chain.MinimumBalance(StateSize)
	if newAcc.Lamports < reserve {
		return errors.WithMessagef(ErrInsufficientFunds, "%v holds %d, needs %d", newAddr, newAcc.Lamports, reserve)
	}

	amount := st.Delegation.Stake
	if acc.Lamports < st.Meta.RentExemptReserve+amount {
		return errors.WithMessagef(ErrInsufficientDelegation, "%v", addr)
	}
	acc.Lamports -= amount
	newAcc.Lamports += amount

	st.Delegation.DeactivationEpoch = epoch
	newSt = &State{
		Kind: KindStake,
		Meta: Meta{
			RentExemptReserve: reserve,
			Authorized:        st.Meta.Authorized,
			Lockup:            st.Meta.Lockup,
		},
		Delegation: Delegation{
			Voter:             vote,
			Stake:             amount,
			ActivationEpoch:   epoch,
			DeactivationEpoch: NoEpoch,
		},
	}
	if err := put(l, addr, acc, st); err != nil {
		return err
	}
	logger.Debug("redelegated", "from", addr, "to", newAddr, "vote", vote, "amount", amount, "epoch", epoch)
	return put(l, newAddr, newAcc, newSt)
}
