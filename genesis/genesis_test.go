// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eliascm17/seraph/builtin/seraph"
	"github.com/Eliascm17/seraph/builtin/seraph/lifecycle"
	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/lvldb"
	"github.com/Eliascm17/seraph/native/history"
	"github.com/Eliascm17/seraph/runtime"
)

func newRuntime(t *testing.T) *runtime.Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	rt, err := runtime.New(db, nil)
	require.NoError(t, err)
	return rt
}

func TestDevnetGenesis(t *testing.T) {
	admin := solana.NewWallet().PublicKey()
	desc := NewDevnetGenesis(admin, DefaultDevnetConfig())
	require.Len(t, desc.Validators, DevnetValidators)
	require.Len(t, desc.Stakes, DevnetStakes)
	for _, v := range desc.Validators {
		require.Len(t, v.History, DevnetEpochs)
		for _, r := range v.History {
			assert.GreaterOrEqual(t, r.Credits, uint32(20))
			assert.Less(t, r.Credits, uint32(46))
			assert.GreaterOrEqual(t, r.Commission, uint8(5))
			assert.Less(t, r.Commission, uint8(14))
		}
	}
	// deterministic for a seed
	assert.Equal(t, desc, NewDevnetGenesis(admin, DefaultDevnetConfig()))

	gen, err := NewCustomNet(desc)
	require.NoError(t, err)
	assert.Equal(t, "devnet", gen.Name())

	rt := newRuntime(t)
	require.NoError(t, gen.Build(rt))

	require.NoError(t, rt.View(func(l *ledger.Ledger, clock chain.Clock) error {
		bal, err := l.Balance(admin)
		require.NoError(t, err)
		assert.Equal(t, uint64(DevnetAdminBalance), bal)

		for _, v := range desc.Validators {
			addr, _ := history.Address(v.Vote)
			vh, err := history.Load(l, addr)
			require.NoError(t, err)
			assert.Equal(t, v.Vote, vh.VoteAccount)
			entries := vh.EpochRange(0, DevnetEpochs)
			require.Len(t, entries, DevnetEpochs)
			for i, e := range entries {
				require.NotNil(t, e)
				assert.Equal(t, v.History[i].Credits, e.EpochCredits)
			}
		}
		for _, s := range desc.Stakes {
			status, st, err := seraph.StakeStatus(l, clock.Epoch, s.Address)
			require.NoError(t, err)
			assert.Equal(t, lifecycle.Undelegated, status)
			assert.Equal(t, seraph.PoolAddress(admin), st.Meta.Authorized.Staker)
		}
		return nil
	}))
}

func TestSaveLoad(t *testing.T) {
	admin := solana.NewWallet().PublicKey()
	desc := NewDevnetGenesis(admin, DevnetConfig{Validators: 3, Stakes: 1, Epochs: 2, Seed: 7})
	owner := chain.VoteProgramID
	desc.Accounts = append(desc.Accounts, Account{Address: solana.NewWallet().PublicKey(), Lamports: 5, Owner: &owner})
	desc.Clock = Clock{Slot: 10, Epoch: 1, UnixTimestamp: 1700000000}

	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, desc.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, desc, loaded)

	a, err := NewCustomNet(desc)
	require.NoError(t, err)
	b, err := NewCustomNet(loaded)
	require.NoError(t, err)
	assert.Equal(t, a.ID(), b.ID())
	assert.Equal(t, chain.Clock{Slot: 10, Epoch: 1, UnixTimestamp: 1700000000}, a.Clock())
}

func TestValidate(t *testing.T) {
	admin := solana.NewWallet().PublicKey()

	desc := NewDevnetGenesis(admin, DevnetConfig{Validators: 1, Stakes: 1, Epochs: 1})
	desc.Stakes[0].Lamports = 1
	_, err := NewCustomNet(desc)
	assert.ErrorContains(t, err, "below reserve")

	desc = NewDevnetGenesis(admin, DevnetConfig{Validators: 1, Epochs: 1})
	desc.Accounts = append(desc.Accounts, Account{Address: admin, Lamports: 1})
	_, err = NewCustomNet(desc)
	assert.ErrorContains(t, err, "used as")

	// history records out of order
	desc = NewDevnetGenesis(admin, DevnetConfig{Validators: 1, Epochs: 3})
	h := desc.Validators[0].History
	h[0], h[2] = h[2], h[0]
	gen, err := NewCustomNet(desc)
	require.NoError(t, err)
	assert.ErrorIs(t, gen.Build(newRuntime(t)), history.ErrStaleEntry)
}

func TestSetup(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	rt, err := runtime.New(db, nil)
	require.NoError(t, err)

	admin := solana.NewWallet().PublicKey()
	gen, err := NewCustomNet(NewDevnetGenesis(admin, DevnetConfig{Validators: 2, Epochs: 1}))
	require.NoError(t, err)

	fresh, err := gen.Setup(rt, db)
	require.NoError(t, err)
	assert.True(t, fresh)

	// spend some lamports, a second setup must not rebuild
	require.NoError(t, rt.Bootstrap(rt.Clock(), func(l *ledger.Ledger) error {
		l.Set(admin, &ledger.Account{Lamports: 1, Owner: chain.SystemProgramID})
		return nil
	}))
	fresh, err = gen.Setup(rt, db)
	require.NoError(t, err)
	assert.False(t, fresh)
	require.NoError(t, rt.View(func(l *ledger.Ledger, _ chain.Clock) error {
		bal, err := l.Balance(admin)
		assert.Equal(t, uint64(1), bal)
		return err
	}))

	other, err := NewCustomNet(NewDevnetGenesis(admin, DevnetConfig{Validators: 3, Epochs: 1}))
	require.NoError(t, err)
	_, err = other.Setup(rt, db)
	assert.ErrorContains(t, err, "database was set up by genesis")
}
