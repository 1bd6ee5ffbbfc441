// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Eliascm17/seraph/api/utils"
	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/runtime"
)

type Clock struct {
	rt      *runtime.Runtime
	genesis chain.Hash
}

func New(rt *runtime.Runtime, genesisID chain.Hash) *Clock {
	return &Clock{rt, genesisID}
}

func (c *Clock) handleGetClock(w http.ResponseWriter, _ *http.Request) error {
	clock := c.rt.Clock()
	return utils.WriteJSON(w, utils.M{
		"genesis":       c.genesis,
		"slot":          clock.Slot,
		"epoch":         clock.Epoch,
		"unixTimestamp": clock.UnixTimestamp,
		"slotsPerEpoch": chain.SlotsPerEpoch,
	})
}

func (c *Clock) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /clock").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetClock))
}
