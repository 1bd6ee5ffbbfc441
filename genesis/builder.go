// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/runtime"
)

// Builder helper to build the genesis ledger.
type Builder struct {
	clock      chain.Clock
	stateProcs []func(l *ledger.Ledger) error
}

// Clock sets the clock the ledger starts at.
func (b *Builder) Clock(c chain.Clock) *Builder {
	b.clock = c
	return b
}

// State adds a ledger process.
func (b *Builder) State(proc func(l *ledger.Ledger) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Build applies all processes to the runtime's ledger and commits them at once.
func (b *Builder) Build(rt *runtime.Runtime) error {
	return rt.Bootstrap(b.clock, func(l *ledger.Ledger) error {
		for _, proc := range b.stateProcs {
			if err := proc(l); err != nil {
				return err
			}
		}
		return nil
	})
}
