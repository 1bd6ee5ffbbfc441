// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/api/utils"
	"github.com/Eliascm17/seraph/builtin/seraph"
	"github.com/Eliascm17/seraph/builtin/seraph/pool"
	"github.com/Eliascm17/seraph/builtin/seraph/vlist"
	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/runtime"
)

type Pools struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Pools {
	return &Pools{rt}
}

func (p *Pools) load(req *http.Request) (admin solana.PublicKey, pl *pool.Pool, vl *vlist.VList, clock chain.Clock, err error) {
	admin, err = utils.ParsePublicKey("admin", mux.Vars(req)["admin"])
	if err != nil {
		return
	}
	err = p.rt.View(func(l *ledger.Ledger, c chain.Clock) error {
		clock = c
		if pl, err = seraph.Pool(l, admin); err != nil || pl == nil {
			return err
		}
		vl, err = seraph.VList(l, admin)
		return err
	})
	if err == nil && pl == nil {
		err = utils.NotFound(errors.Errorf("no pool for admin %v", admin))
	}
	return
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	admin, pl, vl, clock, err := p.load(req)
	if err != nil {
		return err
	}
	poolAddr := seraph.PoolAddress(admin)
	return utils.WriteJSON(w, convertPool(poolAddr, seraph.VListAddress(admin, poolAddr), pl, clock.Epoch, vl.Len()))
}

func (p *Pools) handleGetVList(w http.ResponseWriter, req *http.Request) error {
	top, err := utils.ParseUint("top", req.URL.Query().Get("top"), vlist.MaxValidatorsInList)
	if err != nil {
		return err
	}
	admin, _, vl, _, err := p.load(req)
	if err != nil {
		return err
	}
	addr := seraph.VListAddress(admin, seraph.PoolAddress(admin))
	return utils.WriteJSON(w, convertVList(addr, vl, int(min(top, vlist.MaxValidatorsInList))))
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{admin}").
		Methods(http.MethodGet).
		Name("GET /pools/{admin}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{admin}/vlist").
		Methods(http.MethodGet).
		Name("GET /pools/{admin}/vlist").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetVList))
}
