// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eliascm17/seraph/lvldb"
)

func newAddr() solana.PublicKey {
	return solana.NewWallet().PublicKey()
}

func TestCheckpointRevert(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	l := New(db)
	a, b := newAddr(), newAddr()

	l.Set(a, &Account{Lamports: 100, Owner: solana.SystemProgramID})
	cp := l.NewCheckpoint()

	require.NoError(t, l.Transfer(a, b, 40))
	l.Set(newAddr(), &Account{Lamports: 1, Data: []byte{1}})

	bal, _ := l.Balance(b)
	assert.Equal(t, uint64(40), bal)

	l.RevertTo(cp)

	bal, _ = l.Balance(a)
	assert.Equal(t, uint64(100), bal)
	exists, err := l.Exists(b)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTransferInsufficient(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()

	l := New(db)
	a, b := newAddr(), newAddr()
	l.Set(a, &Account{Lamports: 5})

	err := l.Transfer(a, b, 6)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))

	err = l.Transfer(newAddr(), b, 1)
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
}

func TestGetReturnsCopy(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()

	l := New(db)
	a := newAddr()
	l.Set(a, &Account{Lamports: 1, Data: []byte{1, 2}})

	acc, err := l.Get(a)
	require.NoError(t, err)
	acc.Data[0] = 9
	acc.Lamports = 7

	again, _ := l.Get(a)
	assert.Equal(t, []byte{1, 2}, again.Data)
	assert.Equal(t, uint64(1), again.Lamports)
}

func TestCommitPersists(t *testing.T) {
	path := t.TempDir()
	db, err := lvldb.New(path, lvldb.Options{})
	require.NoError(t, err)

	owner := newAddr()
	a, b, gone := newAddr(), newAddr(), newAddr()

	l := New(db)
	l.Set(gone, &Account{Lamports: 3})
	n, err := l.Commit()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	l.Set(a, &Account{Lamports: 10, Owner: owner, Data: []byte("x")})
	l.Set(b, &Account{Lamports: 20, Owner: solana.SystemProgramID})
	l.Delete(gone)
	n, err = l.Commit()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, db.Close())

	db, err = lvldb.New(path, lvldb.Options{})
	require.NoError(t, err)
	defer db.Close()

	l = New(db)
	acc, err := l.Get(a)
	require.NoError(t, err)
	assert.Equal(t, &Account{Lamports: 10, Owner: owner, Data: []byte("x")}, acc)

	exists, _ := l.Exists(gone)
	assert.False(t, exists)

	var owned []solana.PublicKey
	require.NoError(t, l.Iterate(owner, func(addr solana.PublicKey, _ *Account) bool {
		owned = append(owned, addr)
		return true
	}))
	assert.Equal(t, []solana.PublicKey{a}, owned)
}

func TestEmptyAccountRemoved(t *testing.T) {
	db, _ := lvldb.NewMem()
	defer db.Close()

	l := New(db)
	a, b := newAddr(), newAddr()
	l.Set(a, &Account{Lamports: 5})
	require.NoError(t, l.Transfer(a, b, 5))

	exists, _ := l.Exists(a)
	assert.False(t, exists)
}
