// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/api/utils"
	"github.com/Eliascm17/seraph/builtin/seraph"
	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/native/stake"
	"github.com/Eliascm17/seraph/runtime"
)

type Stakes struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Stakes {
	return &Stakes{rt}
}

func (s *Stakes) handleGetStake(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParsePublicKey("address", mux.Vars(req)["address"])
	if err != nil {
		return err
	}
	raw := req.URL.Query().Get("raw") == "true"

	var result *Stake
	err = s.rt.View(func(l *ledger.Ledger, clock chain.Clock) error {
		status, st, err := seraph.StakeStatus(l, clock.Epoch, addr)
		if err != nil {
			return err
		}
		acc, err := l.Get(addr)
		if err != nil {
			return err
		}
		result = convertStake(addr, acc.Lamports, st, status, clock.Epoch)
		if raw {
			result.Data = base58.Encode(acc.Data)
		}
		return nil
	})
	switch {
	case errors.Is(err, stake.ErrAccountNotFound):
		return utils.NotFound(err)
	case errors.Is(err, stake.ErrInvalidAccountOwner), errors.Is(err, stake.ErrInvalidAccountData):
		return utils.BadRequest(err)
	case err != nil:
		return err
	}
	return utils.WriteJSON(w, result)
}

func (s *Stakes) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /stakes/{address}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStake))
}
