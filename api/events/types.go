// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/logdb"
)

// FilteredEvent is an event returned by a filter query.
type FilteredEvent struct {
	Name    string            `json:"name"`
	Program solana.PublicKey  `json:"program"`
	Subject solana.PublicKey  `json:"subject"`
	Data    map[string]string `json:"data"`
	Meta    Meta              `json:"meta"`
}

// Meta locates an event.
type Meta struct {
	TxID     chain.Hash `json:"txID"`
	Index    uint32     `json:"index"`
	Slot     uint64     `json:"slot"`
	Epoch    uint64     `json:"epoch"`
	UnixTime int64      `json:"unixTime"`
}

func convertEvent(ev *logdb.Event) *FilteredEvent {
	return &FilteredEvent{
		Name:    ev.Name,
		Program: ev.Program,
		Subject: ev.Subject,
		Data:    ev.Data,
		Meta: Meta{
			TxID:     ev.TxID,
			Index:    ev.Index,
			Slot:     ev.Slot,
			Epoch:    ev.Epoch,
			UnixTime: ev.UnixTime,
		},
	}
}
