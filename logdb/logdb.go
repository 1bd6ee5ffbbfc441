// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/gagliardetto/solana-go"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/log"
)

var logger = log.WithContext("pkg", "logdb")

const insertEvent = "INSERT OR IGNORE INTO event(txID, eventIndex, slot, epoch, unixTime, program, name, subject, data) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"

// LogDB stores program events of committed transactions.
type LogDB struct {
	path          string
	db            *sql.DB
	stmtCache     *stmtCache
	driverVersion string
}

// New creates or opens the log db at path.
func New(path string) (*LogDB, error) {
	return open(path, path+"?_journal_mode=WAL&_busy_timeout=5000", 0)
}

// NewMem creates a log db in memory.
func NewMem() (*LogDB, error) {
	// every connection to :memory: is a distinct database
	return open(":memory:", ":memory:", 1)
}

func open(path, dsn string, maxConns int) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	logger.Debug("log db opened", "path", path, "sqlite", driverVer)
	return &LogDB{
		path:          path,
		db:            db,
		stmtCache:     newStmtCache(db),
		driverVersion: driverVer,
	}, nil
}

// Close closes the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// Write stores the events of one transaction. Writing the same transaction
// twice is a no-op.
func (db *LogDB) Write(txID chain.Hash, clock chain.Clock, events []*chain.Event) error {
	if len(events) == 0 {
		return nil
	}
	stmt, err := db.stmtCache.Prepare(insertEvent)
	if err != nil {
		return err
	}
	return db.execInTx(func(tx *sql.Tx) error {
		txStmt := tx.Stmt(stmt)
		defer txStmt.Close()

		for i, ev := range events {
			data, err := json.Marshal(ev.Data)
			if err != nil {
				return err
			}
			if _, err := txStmt.Exec(
				txID[:],
				i,
				clock.Slot,
				clock.Epoch,
				clock.UnixTimestamp,
				ev.Program.Bytes(),
				ev.Name,
				ev.Subject.Bytes(),
				string(data),
			); err != nil {
				return err
			}
			metricEventsWritten().AddWithLabel(1, map[string]string{"name": ev.Name})
		}
		return nil
	})
}

func (db *LogDB) execInTx(proc func(*sql.Tx) error) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// FilterEvents returns events matching the filter, nil filter matches all.
func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT seq, txID, eventIndex, slot, epoch, unixTime, program, name, subject, data FROM event"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var (
		conds []string
		args  []any
	)
	if filter.Name != "" {
		conds = append(conds, "name = ?")
		args = append(args, filter.Name)
	}
	if filter.Subject != nil {
		conds = append(conds, "subject = ?")
		args = append(args, filter.Subject.Bytes())
	}
	if filter.Range != nil {
		conds = append(conds, "epoch >= ?")
		args = append(args, filter.Range.From)
		if filter.Range.To >= filter.Range.From {
			conds = append(conds, "epoch <= ?")
			args = append(args, filter.Range.To)
		}
	}

	var b strings.Builder
	b.WriteString(query)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	if filter.Order == DESC {
		b.WriteString(" ORDER BY seq DESC")
	} else {
		b.WriteString(" ORDER BY seq ASC")
	}
	if filter.Options != nil {
		b.WriteString(" LIMIT ?, ?")
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, b.String(), args...)
}

func (db *LogDB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	stmt, err := db.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			ev      Event
			txID    []byte
			program []byte
			subject []byte
			data    string
		)
		if err := rows.Scan(
			&ev.Seq,
			&txID,
			&ev.Index,
			&ev.Slot,
			&ev.Epoch,
			&ev.UnixTime,
			&program,
			&ev.Name,
			&subject,
			&data,
		); err != nil {
			return nil, err
		}
		copy(ev.TxID[:], txID)
		ev.Program = solana.PublicKeyFromBytes(program)
		ev.Subject = solana.PublicKeyFromBytes(subject)
		if err := json.Unmarshal([]byte(data), &ev.Data); err != nil {
			return nil, errors.Wrapf(err, "event %d data", ev.Seq)
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
