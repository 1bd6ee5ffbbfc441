// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/lvldb"
	"github.com/Eliascm17/seraph/runtime"
)

const deposit = 10_000_000_000

type fixture struct {
	ledger *ledger.Ledger
	staker solana.PublicKey
	stake  solana.PublicKey
	voteX  solana.PublicKey
	voteY  solana.PublicKey
}

func newKey() solana.PublicKey { return solana.NewWallet().PublicKey() }

func newFixture(t *testing.T) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		ledger: ledger.New(db),
		staker: newKey(),
		stake:  newKey(),
		voteX:  newKey(),
		voteY:  newKey(),
	}
	for _, vote := range []solana.PublicKey{f.voteX, f.voteY} {
		f.ledger.Set(vote, &ledger.Account{Lamports: 1, Owner: chain.VoteProgramID, Data: []byte{1}})
	}
	f.fund(f.stake, chain.MinimumBalance(StateSize)+deposit)

	ctx := f.ctx(0)
	require.NoError(t, Initialize(ctx, f.stake, Authorized{Staker: f.staker, Withdrawer: f.staker}, Lockup{}))
	return f
}

func (f *fixture) fund(addr solana.PublicKey, lamports uint64) {
	f.ledger.Set(addr, &ledger.Account{Lamports: lamports, Owner: chain.StakeProgramID, Data: make([]byte, StateSize)})
}

func (f *fixture) ctx(epoch uint64, signers ...solana.PublicKey) *runtime.Context {
	return runtime.NewContext(f.ledger, chain.Clock{Epoch: epoch, Slot: epoch * chain.SlotsPerEpoch}, signers...)
}

func (f *fixture) state(t *testing.T, addr solana.PublicKey) *State {
	st, _, err := Get(f.ledger, addr)
	require.NoError(t, err)
	return st
}

func TestEncodeDecode(t *testing.T) {
	st := &State{
		Kind: KindStake,
		Meta: Meta{
			RentExemptReserve: ^uint64(0),
			Authorized:        Authorized{newKey(), newKey()},
			Lockup:            Lockup{^uint64(0), ^uint64(0), newKey()},
		},
		Delegation: Delegation{newKey(), ^uint64(0), ^uint64(0), NoEpoch},
	}
	data, err := st.Encode()
	require.NoError(t, err)
	assert.Len(t, data, StateSize)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, st, got)

	empty, err := Decode(make([]byte, StateSize))
	require.NoError(t, err)
	assert.Equal(t, KindUninitialized, empty.Kind)

	_, err = Decode(make([]byte, 10))
	assert.True(t, errors.Is(err, ErrInvalidAccountData))
}

func TestStatus(t *testing.T) {
	st := &State{Kind: KindStake, Delegation: Delegation{ActivationEpoch: 3, DeactivationEpoch: NoEpoch}}
	assert.Equal(t, StatusActivating, st.Status(3))
	assert.Equal(t, StatusActive, st.Status(4))

	st.Delegation.DeactivationEpoch = 6
	assert.Equal(t, StatusDeactivating, st.Status(6))
	assert.Equal(t, StatusInactive, st.Status(7))

	assert.Equal(t, StatusNone, (&State{Kind: KindInitialized}).Status(1))
}

func TestInitialize(t *testing.T) {
	f := newFixture(t)
	st := f.state(t, f.stake)
	assert.Equal(t, KindInitialized, st.Kind)
	assert.Equal(t, chain.MinimumBalance(StateSize), st.Meta.RentExemptReserve)
	assert.Equal(t, f.staker, st.Meta.Authorized.Staker)

	err := Initialize(f.ctx(0), f.stake, Authorized{}, Lockup{})
	assert.True(t, errors.Is(err, ErrAlreadyInitialized))

	poor := newKey()
	f.fund(poor, 1)
	err = Initialize(f.ctx(0), poor, Authorized{}, Lockup{})
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
}

func TestDelegateLifecycle(t *testing.T) {
	f := newFixture(t)

	err := Delegate(f.ctx(1), f.stake, f.voteX)
	assert.True(t, errors.Is(err, ErrMissingRequiredSignature))

	require.NoError(t, Delegate(f.ctx(1, f.staker), f.stake, f.voteX))
	st := f.state(t, f.stake)
	assert.Equal(t, KindStake, st.Kind)
	assert.Equal(t, f.voteX, st.Delegation.Voter)
	assert.Equal(t, uint64(deposit), st.Delegation.Stake)
	assert.Equal(t, StatusActivating, st.Status(1))

	// still delegated to X, Y is rejected
	err = Delegate(f.ctx(2, f.staker), f.stake, f.voteY)
	assert.True(t, errors.Is(err, ErrTooSoonToRedelegate))
	assert.Equal(t, f.voteX, f.state(t, f.stake).Delegation.Voter)

	require.NoError(t, Deactivate(f.ctx(2, f.staker), f.stake))
	err = Deactivate(f.ctx(2, f.staker), f.stake)
	assert.True(t, errors.Is(err, ErrAlreadyDeactivated))

	// deactivating stake can not be delegated
	err = Delegate(f.ctx(2, f.staker), f.stake, f.voteY)
	assert.True(t, errors.Is(err, ErrTooSoonToRedelegate))

	require.NoError(t, Delegate(f.ctx(3, f.staker), f.stake, f.voteY))
	st = f.state(t, f.stake)
	assert.Equal(t, f.voteY, st.Delegation.Voter)
	assert.Equal(t, uint64(3), st.Delegation.ActivationEpoch)
	assert.False(t, st.Delegation.IsDeactivated())
}

func TestDelegateInvalidVote(t *testing.T) {
	f := newFixture(t)
	err := Delegate(f.ctx(1, f.staker), f.stake, newKey())
	assert.True(t, errors.Is(err, ErrInvalidVoteAccount))
}

func TestDeactivateUndelegated(t *testing.T) {
	f := newFixture(t)
	err := Deactivate(f.ctx(1, f.staker), f.stake)
	assert.True(t, errors.Is(err, ErrInvalidAccountData))
}

func TestRedelegate(t *testing.T) {
	f := newFixture(t)
	target := newKey()
	reserve := chain.MinimumBalance(StateSize)
	f.fund(target, reserve)

	require.NoError(t, Delegate(f.ctx(1, f.staker), f.stake, f.voteX))

	// activating
	err := Redelegate(f.ctx(1, f.staker), f.stake, f.voteY, target)
	assert.True(t, errors.Is(err, ErrRedelegateTransientOrInactive))

	err = Redelegate(f.ctx(2, f.staker), f.stake, f.voteX, target)
	assert.True(t, errors.Is(err, ErrRedelegateToSameVoteAccount))

	err = Redelegate(f.ctx(2), f.stake, f.voteY, target)
	assert.True(t, errors.Is(err, ErrMissingRequiredSignature))

	require.NoError(t, Redelegate(f.ctx(2, f.staker), f.stake, f.voteY, target))

	src := f.state(t, f.stake)
	assert.Equal(t, StatusDeactivating, src.Status(2))
	dst := f.state(t, target)
	assert.Equal(t, StatusActivating, dst.Status(2))
	assert.Equal(t, f.voteY, dst.Delegation.Voter)
	assert.Equal(t, uint64(deposit), dst.Delegation.Stake)
	assert.Equal(t, f.staker, dst.Meta.Authorized.Staker)

	srcBal, _ := f.ledger.Balance(f.stake)
	dstBal, _ := f.ledger.Balance(target)
	assert.Equal(t, reserve, srcBal)
	assert.Equal(t, reserve+deposit, dstBal)

	// the target is no longer uninitialized
	other := newKey()
	f.fund(other, reserve+deposit)
	require.NoError(t, Initialize(f.ctx(2), other, Authorized{Staker: f.staker}, Lockup{}))
	require.NoError(t, Delegate(f.ctx(2, f.staker), other, f.voteX))
	err = Redelegate(f.ctx(3, f.staker), other, f.voteY, target)
	assert.True(t, errors.Is(err, ErrInvalidAccountData))
}

func TestAuthorize(t *testing.T) {
	f := newFixture(t)
	pda := newKey()

	err := Authorize(f.ctx(0), f.stake, pda, AuthorizeStaker)
	assert.True(t, errors.Is(err, ErrMissingRequiredSignature))

	require.NoError(t, Authorize(f.ctx(0, f.staker), f.stake, pda, AuthorizeStaker))
	assert.Equal(t, pda, f.state(t, f.stake).Meta.Authorized.Staker)

	// old staker is out
	err = Delegate(f.ctx(1, f.staker), f.stake, f.voteX)
	assert.True(t, errors.Is(err, ErrMissingRequiredSignature))
	require.NoError(t, Delegate(f.ctx(1, pda), f.stake, f.voteX))
}

func TestProgramDispatch(t *testing.T) {
	f := newFixture(t)
	p := New()

	ix := NewDelegateInstruction(f.stake, f.voteX)
	require.NoError(t, p.Execute(f.ctx(1, f.staker), ix.Accounts, ix.Data))
	assert.Equal(t, KindStake, f.state(t, f.stake).Kind)

	ix = NewDeactivateInstruction(f.stake)
	require.NoError(t, p.Execute(f.ctx(1, f.staker), ix.Accounts, ix.Data))
	assert.True(t, f.state(t, f.stake).Delegation.IsDeactivated())

	err := p.Execute(f.ctx(1), nil, []byte{opDeactivate})
	assert.True(t, errors.Is(err, runtime.ErrNotEnoughAccounts))
}
