// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eliascm17/seraph/chain"
)

func newEvents(name string, subjects ...solana.PublicKey) []*chain.Event {
	var events []*chain.Event
	for _, s := range subjects {
		events = append(events, &chain.Event{
			Program: chain.ProgramID,
			Name:    name,
			Subject: s,
			Data:    map[string]string{"subject": s.String()},
		})
	}
	return events
}

func TestWriteAndFilter(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	a, b := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	for epoch := uint64(0); epoch < 10; epoch++ {
		clock := chain.Clock{Epoch: epoch, Slot: epoch * chain.SlotsPerEpoch}
		txID := chain.Blake2b([]byte{byte(epoch)})
		require.NoError(t, db.Write(txID, clock, append(newEvents("Scored", a, b), newEvents("Delegated", a)...)))
	}
	ctx := context.Background()

	all, err := db.FilterEvents(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 30)
	assert.Equal(t, "Scored", all[0].Name)
	assert.Equal(t, uint32(2), all[2].Index)
	assert.Equal(t, a.String(), all[0].Data["subject"])

	byName, err := db.FilterEvents(ctx, &EventFilter{Name: "Delegated"})
	require.NoError(t, err)
	assert.Len(t, byName, 10)

	bySubject, err := db.FilterEvents(ctx, &EventFilter{Subject: &b})
	require.NoError(t, err)
	assert.Len(t, bySubject, 10)
	for _, ev := range bySubject {
		assert.Equal(t, b, ev.Subject)
	}

	ranged, err := db.FilterEvents(ctx, &EventFilter{Name: "Scored", Range: &Range{From: 3, To: 5}})
	require.NoError(t, err)
	assert.Len(t, ranged, 6)
	assert.Equal(t, uint64(3), ranged[0].Epoch)
	assert.Equal(t, uint64(5), ranged[5].Epoch)

	unbounded, err := db.FilterEvents(ctx, &EventFilter{Range: &Range{From: 8}})
	require.NoError(t, err)
	assert.Len(t, unbounded, 6)

	page, err := db.FilterEvents(ctx, &EventFilter{Order: DESC, Options: &Options{Offset: 1, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, all[28].Seq, page[0].Seq)
	assert.Equal(t, all[27].Seq, page[1].Seq)
}

func TestWriteIsIdempotent(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	txID := chain.Blake2b([]byte("tx"))
	events := newEvents("Scored", solana.NewWallet().PublicKey())
	require.NoError(t, db.Write(txID, chain.Clock{}, events))
	require.NoError(t, db.Write(txID, chain.Clock{}, events))
	require.NoError(t, db.Write(txID, chain.Clock{}, nil))

	all, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, txID, all[0].TxID)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.db")
	db, err := New(path)
	require.NoError(t, err)
	require.NoError(t, db.Write(chain.Blake2b([]byte("tx")), chain.Clock{Epoch: 4}, newEvents("Scored", solana.NewWallet().PublicKey())))
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, path, db.Path())

	all, err := db.FilterEvents(context.Background(), &EventFilter{Range: &Range{From: 4, To: 4}})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
