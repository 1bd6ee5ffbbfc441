// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package system_test

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/lvldb"
	"github.com/Eliascm17/seraph/native/system"
	"github.com/Eliascm17/seraph/runtime"
)

func setup(t *testing.T) (*runtime.Runtime, solana.PrivateKey) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rt, err := runtime.New(db, nil, system.New())
	require.NoError(t, err)

	payer := solana.NewWallet().PrivateKey
	require.NoError(t, rt.Bootstrap(chain.Clock{}, func(l *ledger.Ledger) error {
		l.Set(payer.PublicKey(), &ledger.Account{Lamports: 1_000_000_000, Owner: chain.SystemProgramID})
		return nil
	}))
	return rt, payer
}

func get(t *testing.T, rt *runtime.Runtime, addr solana.PublicKey) (acc *ledger.Account) {
	require.NoError(t, rt.View(func(l *ledger.Ledger, _ chain.Clock) (err error) {
		acc, err = l.Get(addr)
		return
	}))
	return
}

func TestCreateAccount(t *testing.T) {
	rt, payer := setup(t)
	newAcc := solana.NewWallet().PrivateKey
	owner := chain.StakeProgramID

	tx := runtime.NewTransaction(system.NewCreateAccountInstruction(payer.PublicKey(), newAcc.PublicKey(), 5000, 200, owner))
	require.NoError(t, tx.Sign(payer, newAcc))
	_, err := rt.Execute(tx)
	require.NoError(t, err)

	acc := get(t, rt, newAcc.PublicKey())
	require.NotNil(t, acc)
	assert.Equal(t, uint64(5000), acc.Lamports)
	assert.Equal(t, owner, acc.Owner)
	assert.Len(t, acc.Data, 200)
	assert.Equal(t, uint64(1_000_000_000-5000), get(t, rt, payer.PublicKey()).Lamports)

	// creating it again fails
	tx = runtime.NewTransaction(system.NewCreateAccountInstruction(payer.PublicKey(), newAcc.PublicKey(), 5000, 200, owner))
	require.NoError(t, tx.Sign(payer, newAcc))
	_, err = rt.Execute(tx)
	assert.True(t, errors.Is(err, system.ErrAccountAlreadyInUse))
}

func TestCreateAccountRequiresSignatures(t *testing.T) {
	rt, payer := setup(t)
	newAcc := solana.NewWallet().PublicKey()

	tx := runtime.NewTransaction(system.NewCreateAccountInstruction(payer.PublicKey(), newAcc, 1, 0, chain.StakeProgramID))
	require.NoError(t, tx.Sign(payer))
	_, err := rt.Execute(tx)
	assert.True(t, errors.Is(err, system.ErrMissingRequiredSignature))
	assert.Nil(t, get(t, rt, newAcc))
}

func TestCreateAccountInsufficientFunds(t *testing.T) {
	rt, payer := setup(t)
	newAcc := solana.NewWallet().PrivateKey

	tx := runtime.NewTransaction(system.NewCreateAccountInstruction(payer.PublicKey(), newAcc.PublicKey(), 2_000_000_000, 0, chain.StakeProgramID))
	require.NoError(t, tx.Sign(payer, newAcc))
	_, err := rt.Execute(tx)
	assert.True(t, errors.Is(err, ledger.ErrInsufficientFunds))
}

func TestTransfer(t *testing.T) {
	rt, payer := setup(t)
	to := solana.NewWallet().PublicKey()

	tx := runtime.NewTransaction(system.NewTransferInstruction(payer.PublicKey(), to, 42))
	require.NoError(t, tx.Sign(payer))
	_, err := rt.Execute(tx)
	require.NoError(t, err)

	assert.Equal(t, uint64(42), get(t, rt, to).Lamports)
	assert.Equal(t, chain.SystemProgramID, get(t, rt, to).Owner)
}
