// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/kv"
	"github.com/Eliascm17/seraph/runtime"
)

var (
	genesisBucket = kv.Bucket("g")
	idKey         = []byte("id")
)

// Genesis to build the initial ledger.
type Genesis struct {
	builder *Builder
	id      chain.Hash
	name    string
}

// Build writes the genesis ledger.
func (g *Genesis) Build(rt *runtime.Runtime) error {
	return g.builder.Build(rt)
}

// ID returns the genesis id, a hash of its description.
func (g *Genesis) ID() chain.Hash {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// Clock returns the clock the ledger starts at.
func (g *Genesis) Clock() chain.Clock {
	return g.builder.clock
}

// Setup builds the genesis ledger on a fresh store and records its id. An
// existing store must have been set up by the same genesis.
func (g *Genesis) Setup(rt *runtime.Runtime, store kv.Store) (fresh bool, err error) {
	meta := genesisBucket.NewStore(store)
	stored, err := meta.Get(idKey)
	if err == nil {
		if len(stored) != len(g.id) || chain.Hash(stored) != g.id {
			return false, errors.Errorf("database was set up by genesis %x, not %v", stored, g.id)
		}
		return false, nil
	}
	if !meta.IsNotFound(err) {
		return false, err
	}
	if err := g.Build(rt); err != nil {
		return false, errors.Wrap(err, "build genesis")
	}
	return true, meta.Put(idKey, g.id[:])
}
