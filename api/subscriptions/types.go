// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Eliascm17/seraph/chain"
)

// EventMessage is a committed program event pushed to subscribers.
type EventMessage struct {
	Name    string            `json:"name"`
	Program solana.PublicKey  `json:"program"`
	Subject solana.PublicKey  `json:"subject"`
	Data    map[string]string `json:"data"`
	Meta    MessageMeta       `json:"meta"`
}

// MessageMeta locates the event in the transaction that emitted it.
type MessageMeta struct {
	TxID     chain.Hash `json:"txID"`
	Index    uint32     `json:"index"`
	Slot     uint64     `json:"slot"`
	Epoch    uint64     `json:"epoch"`
	UnixTime int64      `json:"unixTime"`
}

func newEventMessage(txID chain.Hash, clock chain.Clock, index int, ev *chain.Event) *EventMessage {
	return &EventMessage{
		Name:    ev.Name,
		Program: ev.Program,
		Subject: ev.Subject,
		Data:    ev.Data,
		Meta: MessageMeta{
			TxID:     txID,
			Index:    uint32(index),
			Slot:     clock.Slot,
			Epoch:    clock.Epoch,
			UnixTime: clock.UnixTimestamp,
		},
	}
}

// EventFilter selects events by name and subject. Empty fields match anything.
type EventFilter struct {
	Name    string
	Subject *solana.PublicKey
}

func (f *EventFilter) Match(msg *EventMessage) bool {
	if f.Name != "" && f.Name != msg.Name {
		return false
	}
	if f.Subject != nil && *f.Subject != msg.Subject {
		return false
	}
	return true
}
