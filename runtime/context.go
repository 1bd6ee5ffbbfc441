// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
)

// Context is what a program sees while executing an instruction.
type Context struct {
	ledger  *ledger.Ledger
	clock   chain.Clock
	txID    chain.Hash
	signers map[solana.PublicKey]struct{}
	events  *[]*chain.Event
}

// NewContext creates a context with the given signers. Events are buffered in the context.
func NewContext(l *ledger.Ledger, clock chain.Clock, signers ...solana.PublicKey) *Context {
	ctx := &Context{
		ledger:  l,
		clock:   clock,
		signers: make(map[solana.PublicKey]struct{}, len(signers)),
		events:  new([]*chain.Event),
	}
	for _, s := range signers {
		ctx.signers[s] = struct{}{}
	}
	return ctx
}

func (c *Context) Ledger() *ledger.Ledger { return c.ledger }
func (c *Context) Clock() chain.Clock     { return c.clock }
func (c *Context) TxID() chain.Hash       { return c.txID }

// IsSigner returns whether the key signed the transaction or was granted by the invoking program.
func (c *Context) IsSigner(key solana.PublicKey) bool {
	_, ok := c.signers[key]
	return ok
}

// WithSigners derives a context for a cross program invocation, adding signers
// the invoking program vouches for. Ledger and event buffer are shared.
func (c *Context) WithSigners(signers ...solana.PublicKey) *Context {
	cpy := *c
	cpy.signers = make(map[solana.PublicKey]struct{}, len(c.signers)+len(signers))
	for s := range c.signers {
		cpy.signers[s] = struct{}{}
	}
	for _, s := range signers {
		cpy.signers[s] = struct{}{}
	}
	return &cpy
}

// Emit buffers an event. Events are dropped if the transaction fails.
func (c *Context) Emit(ev *chain.Event) {
	*c.events = append(*c.events, ev)
}

// Events returns buffered events.
func (c *Context) Events() []*chain.Event {
	return *c.events
}
