// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Eliascm17/seraph/chain"
)

// Event is a program event as stored in the db.
type Event struct {
	Seq      uint64
	TxID     chain.Hash
	Index    uint32
	Slot     uint64
	Epoch    uint64
	UnixTime int64
	Program  solana.PublicKey
	Name     string
	Subject  solana.PublicKey
	Data     map[string]string
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive epoch range. To below From means unbounded.
type Range struct {
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventFilter selects events. Zero fields match everything.
type EventFilter struct {
	Name    string
	Subject *solana.PublicKey
	Range   *Range
	Options *Options
	Order   Order // default asc
}
