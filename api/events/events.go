// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Eliascm17/seraph/api/utils"
	"github.com/Eliascm17/seraph/logdb"
)

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Events {
	return &Events{
		db,
		logsLimit,
	}
}

func (e *Events) parseFilter(req *http.Request) (*logdb.EventFilter, error) {
	q := req.URL.Query()
	filter := &logdb.EventFilter{
		Name:  q.Get("name"),
		Order: logdb.ASC,
	}
	if s := q.Get("subject"); s != "" {
		subject, err := utils.ParsePublicKey("subject", s)
		if err != nil {
			return nil, err
		}
		filter.Subject = &subject
	}

	from, err := utils.ParseUint("from", q.Get("from"), 0)
	if err != nil {
		return nil, err
	}
	to, err := utils.ParseUint("to", q.Get("to"), math.MaxUint64)
	if err != nil {
		return nil, err
	}
	if from > to {
		return nil, utils.BadRequest(fmt.Errorf("to must be greater than or equal to from"))
	}
	if from > 0 || to < math.MaxUint64 {
		filter.Range = &logdb.Range{From: from, To: to}
	}

	switch order := logdb.Order(q.Get("order")); order {
	case "", logdb.ASC:
	case logdb.DESC:
		filter.Order = logdb.DESC
	default:
		return nil, utils.BadRequest(fmt.Errorf("order: unknown value %q", order))
	}

	offset, err := utils.ParseUint("offset", q.Get("offset"), 0)
	if err != nil {
		return nil, err
	}
	if offset > math.MaxInt64 {
		return nil, utils.BadRequest(fmt.Errorf("offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	// one more than the limit to detect an oversized result
	limit, err := utils.ParseUint("limit", q.Get("limit"), e.limit+1)
	if err != nil {
		return nil, err
	}
	if q.Has("limit") && limit > e.limit {
		return nil, utils.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", e.limit))
	}
	filter.Options = &logdb.Options{Offset: offset, Limit: limit}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req)
	if err != nil {
		return err
	}
	events, err := e.db.FilterEvents(req.Context(), filter)
	if err != nil {
		return err
	}
	// ensure the result size is less than the configured limit
	if len(events) > int(e.limit) {
		return utils.Forbidden(fmt.Errorf("the number of filtered events exceeds the maximum allowed value of %d, please use pagination", e.limit))
	}

	fes := make([]*FilteredEvent, len(events))
	for i, ev := range events {
		fes[i] = convertEvent(ev)
	}
	return utils.WriteJSON(w, fes)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
