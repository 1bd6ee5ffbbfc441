// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package seraph

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eliascm17/seraph/builtin/seraph/lifecycle"
	"github.com/Eliascm17/seraph/builtin/seraph/pool"
	"github.com/Eliascm17/seraph/builtin/seraph/vlist"
	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/lvldb"
	"github.com/Eliascm17/seraph/native/history"
	"github.com/Eliascm17/seraph/native/stake"
	"github.com/Eliascm17/seraph/native/system"
	"github.com/Eliascm17/seraph/runtime"
)

const (
	deposit      = 10_000_000_000
	adminFunding = 1_000_000_000_000_000
)

type eventLog struct {
	events []*chain.Event
}

func (e *eventLog) Write(_ chain.Hash, _ chain.Clock, events []*chain.Event) error {
	e.events = append(e.events, events...)
	return nil
}

func (e *eventLog) count(name string) (n int) {
	for _, ev := range e.events {
		if ev.Name == name {
			n++
		}
	}
	return
}

type validator struct {
	vote    solana.PublicKey
	history solana.PublicKey
}

type SeraphTest struct {
	t          *testing.T
	rt         *runtime.Runtime
	events     *eventLog
	admin      solana.PrivateKey
	validators []validator
	stakes     []solana.PublicKey
}

func newTest(t *testing.T, program *Program) *SeraphTest {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	events := &eventLog{}
	rt, err := runtime.New(db, events, system.New(), stake.New(), history.New(), program)
	require.NoError(t, err)

	admin := solana.NewWallet().PrivateKey
	require.NoError(t, rt.Bootstrap(chain.Clock{}, func(l *ledger.Ledger) error {
		l.Set(admin.PublicKey(), &ledger.Account{Lamports: adminFunding, Owner: chain.SystemProgramID})
		return nil
	}))

	return &SeraphTest{t: t, rt: rt, events: events, admin: admin}
}

func newDefaultTest(t *testing.T) *SeraphTest {
	return newTest(t, New(DefaultConfig()))
}

func (ts *SeraphTest) Admin() solana.PublicKey { return ts.admin.PublicKey() }

func (ts *SeraphTest) PoolAddress() solana.PublicKey { return PoolAddress(ts.Admin()) }

// exec runs the instructions in one transaction signed by admin and extra.
func (ts *SeraphTest) exec(extra []solana.PrivateKey, ixs ...*runtime.Instruction) error {
	tx := runtime.NewTransaction(ixs...)
	require.NoError(ts.t, tx.Sign(append([]solana.PrivateKey{ts.admin}, extra...)...))
	_, err := ts.rt.Execute(tx)
	return err
}

func (ts *SeraphTest) mustExec(extra []solana.PrivateKey, ixs ...*runtime.Instruction) *SeraphTest {
	require.NoError(ts.t, ts.exec(extra, ixs...))
	return ts
}

func (ts *SeraphTest) Initialize() *SeraphTest {
	return ts.mustExec(nil, NewInitializeInstruction(ts.Admin()))
}

// Advance moves the clock n epochs forward.
func (ts *SeraphTest) Advance(n uint64) *SeraphTest {
	_, err := ts.rt.AdvanceEpochs(n)
	require.NoError(ts.t, err)
	return ts
}

// AddValidator creates a vote account and its history holding entries.
func (ts *SeraphTest) AddValidator(entries ...history.Entry) validator {
	vote := solana.NewWallet().PublicKey()
	require.NoError(ts.t, ts.rt.Bootstrap(ts.rt.Clock(), func(l *ledger.Ledger) error {
		l.Set(vote, &ledger.Account{Lamports: 1, Owner: chain.VoteProgramID, Data: []byte{1}})
		return nil
	}))

	ixs := []*runtime.Instruction{
		history.NewInitializeAccountInstruction(ts.Admin(), vote, ts.Admin(), uint32(len(ts.validators))),
	}
	for _, e := range entries {
		ixs = append(ixs, history.NewRecordEntryInstruction(vote, e))
	}
	ts.mustExec(nil, ixs...)

	addr, _ := history.Address(vote)
	v := validator{vote: vote, history: addr}
	ts.validators = append(ts.validators, v)
	return v
}

func entry(epoch uint16, credits uint32, commission uint8) history.Entry {
	e := history.NewEntry(epoch)
	e.EpochCredits = credits
	e.Commission = commission
	return e
}

// Fill adds n validators with history for epochs [0, epochs). perf gives the
// credits and commission of validator i.
func (ts *SeraphTest) Fill(n int, epochs uint16, perf func(i int) (uint32, uint8)) *SeraphTest {
	for i := range n {
		credits, commission := perf(i)
		var entries []history.Entry
		for ep := range epochs {
			entries = append(entries, entry(ep, credits, commission))
		}
		ts.AddValidator(entries...)
	}
	return ts
}

// AddStakes creates n initialized stake accounts controlled by the pool.
func (ts *SeraphTest) AddStakes(n int) *SeraphTest {
	for range n {
		key := solana.NewWallet().PrivateKey
		addr := key.PublicKey()
		ts.mustExec([]solana.PrivateKey{key},
			system.NewCreateAccountInstruction(ts.Admin(), addr, chain.MinimumBalance(stake.StateSize)+deposit, stake.StateSize, chain.StakeProgramID),
			stake.NewInitializeInstruction(addr, stake.Authorized{Staker: ts.PoolAddress(), Withdrawer: ts.Admin()}, stake.Lockup{}),
		)
		ts.stakes = append(ts.stakes, addr)
	}
	return ts
}

func (ts *SeraphTest) Score(v validator) error {
	return ts.exec(nil, NewCalculateScoreInstruction(ts.Admin(), v.history, v.vote))
}

func (ts *SeraphTest) ScoreAll() *SeraphTest {
	for _, v := range ts.validators {
		require.NoError(ts.t, ts.Score(v))
	}
	return ts
}

func (ts *SeraphTest) Delegate(stakeAccount, vote solana.PublicKey) error {
	return ts.exec(nil, NewDelegateStakeInstruction(ts.Admin(), stakeAccount, vote))
}

func (ts *SeraphTest) Deactivate(stakeAccount solana.PublicKey) error {
	return ts.exec(nil, NewDeactivateStakeInstruction(ts.Admin(), stakeAccount))
}

func (ts *SeraphTest) view(fn func(l *ledger.Ledger, clock chain.Clock)) {
	require.NoError(ts.t, ts.rt.View(func(l *ledger.Ledger, clock chain.Clock) error {
		fn(l, clock)
		return nil
	}))
}

func (ts *SeraphTest) Pool() (p *pool.Pool) {
	ts.view(func(l *ledger.Ledger, _ chain.Clock) {
		var err error
		p, err = Pool(l, ts.Admin())
		require.NoError(ts.t, err)
	})
	return
}

func (ts *SeraphTest) VList() (v *vlist.VList) {
	ts.view(func(l *ledger.Ledger, _ chain.Clock) {
		var err error
		v, err = VList(l, ts.Admin())
		require.NoError(ts.t, err)
	})
	return
}

func (ts *SeraphTest) Stake(addr solana.PublicKey) (status lifecycle.Status, st *stake.State) {
	ts.view(func(l *ledger.Ledger, clock chain.Clock) {
		var err error
		status, st, err = StakeStatus(l, clock.Epoch, addr)
		require.NoError(ts.t, err)
	})
	return
}

func (ts *SeraphTest) Balance(addr solana.PublicKey) (bal uint64) {
	ts.view(func(l *ledger.Ledger, _ chain.Clock) {
		var err error
		bal, err = l.Balance(addr)
		require.NoError(ts.t, err)
	})
	return
}

func (ts *SeraphTest) AssertStatus(addr solana.PublicKey, want lifecycle.Status) *SeraphTest {
	got, _ := ts.Stake(addr)
	assert.Equal(ts.t, want, got, "status of %v", addr)
	return ts
}

func (ts *SeraphTest) AssertVoter(addr, vote solana.PublicKey) *SeraphTest {
	_, st := ts.Stake(addr)
	assert.Equal(ts.t, vote, st.Delegation.Voter, "voter of %v", addr)
	return ts
}

// AssertVList checks ordering, uniqueness and the occupied count.
func (ts *SeraphTest) AssertVList(count int) *SeraphTest {
	v := ts.VList()
	require.NotNil(ts.t, v)
	assert.Equal(ts.t, count, v.Len(), "vlist count")
	seen := make(map[solana.PublicKey]bool)
	entries := v.Entries()
	for i, e := range entries {
		assert.False(ts.t, seen[e.Validator], "duplicate %v", e.Validator)
		seen[e.Validator] = true
		if i > 0 {
			assert.GreaterOrEqual(ts.t, entries[i-1].Score, e.Score, "unsorted at %d", i)
		}
	}
	return ts
}
