// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/kv"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/log"
)

var (
	logger = log.WithContext("pkg", "runtime")

	metaBucket = kv.Bucket("m")
	clockKey   = []byte("clock")

	ErrUnknownProgram = errors.New("unknown program")
)

// Program executes instructions addressed to its id.
type Program interface {
	ID() solana.PublicKey
	Execute(ctx *Context, accounts []solana.PublicKey, data []byte) error
}

// EventSink receives the events of committed transactions.
type EventSink interface {
	Write(txID chain.Hash, clock chain.Clock, events []*chain.Event) error
}

// Sinks writes to every sink in order and returns the first error.
type Sinks []EventSink

func (s Sinks) Write(txID chain.Hash, clock chain.Clock, events []*chain.Event) error {
	var first error
	for _, sink := range s {
		if err := sink.Write(txID, clock, events); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// InstructionError reports which instruction of a transaction failed.
type InstructionError struct {
	Index int
	cause error
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("instruction %d: %v", e.Index, e.cause)
}

func (e *InstructionError) Cause() error  { return e.cause }
func (e *InstructionError) Unwrap() error { return e.cause }

// Receipt is the outcome of a committed transaction.
type Receipt struct {
	TxID   chain.Hash
	Clock  chain.Clock
	Events []*chain.Event
}

// Runtime executes transactions one at a time against the ledger.
type Runtime struct {
	mu       sync.RWMutex
	meta     kv.Store
	ledger   *ledger.Ledger
	clock    chain.Clock
	programs map[solana.PublicKey]Program
	sink     EventSink
}

// persisted form of chain.Clock, rlp has no signed integers.
type storedClock struct {
	Slot, Epoch, UnixTimestamp uint64
}

// New opens a runtime on the store. sink may be nil.
func New(store kv.Store, sink EventSink, programs ...Program) (*Runtime, error) {
	rt := &Runtime{
		meta:     metaBucket.NewStore(store),
		ledger:   ledger.New(store),
		programs: make(map[solana.PublicKey]Program),
		sink:     sink,
	}
	for _, p := range programs {
		rt.programs[p.ID()] = p
	}

	data, err := rt.meta.Get(clockKey)
	switch {
	case err == nil:
		var sc storedClock
		if err := rlp.DecodeBytes(data, &sc); err != nil {
			return nil, errors.Wrap(err, "decode clock")
		}
		rt.clock = chain.Clock{Slot: sc.Slot, Epoch: sc.Epoch, UnixTimestamp: int64(sc.UnixTimestamp)}
	case rt.meta.IsNotFound(err):
	default:
		return nil, errors.Wrap(err, "load clock")
	}
	return rt, nil
}

// Clock returns the current cluster clock.
func (rt *Runtime) Clock() chain.Clock {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.clock
}

// View runs fn with a read lock held. fn must not modify the ledger.
func (rt *Runtime) View(fn func(l *ledger.Ledger, clock chain.Clock) error) error {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return fn(rt.ledger, rt.clock)
}

// Bootstrap applies fn to the ledger and commits it with the given clock.
// It is meant for building genesis state.
func (rt *Runtime) Bootstrap(clock chain.Clock, fn func(l *ledger.Ledger) error) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	cp := rt.ledger.NewCheckpoint()
	if err := fn(rt.ledger); err != nil {
		rt.ledger.RevertTo(cp)
		return err
	}
	if _, err := rt.ledger.Commit(); err != nil {
		rt.ledger.RevertTo(cp)
		return err
	}
	return rt.setClock(clock)
}

// AdvanceEpochs moves the clock forward n epochs.
func (rt *Runtime) AdvanceEpochs(n uint64) (chain.Clock, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if err := rt.setClock(rt.clock.AdvanceEpochs(n)); err != nil {
		return chain.Clock{}, err
	}
	metricEpoch().Set(int64(rt.clock.Epoch))
	logger.Info("advanced clock", "epoch", rt.clock.Epoch, "slot", rt.clock.Slot)
	return rt.clock, nil
}

func (rt *Runtime) setClock(clock chain.Clock) error {
	data, err := rlp.EncodeToBytes(&storedClock{clock.Slot, clock.Epoch, uint64(clock.UnixTimestamp)})
	if err != nil {
		return err
	}
	if err := rt.meta.Put(clockKey, data); err != nil {
		return errors.Wrap(err, "save clock")
	}
	rt.clock = clock
	return nil
}

// Execute verifies and runs the transaction. Either every instruction takes
// effect and is committed, or nothing does.
func (rt *Runtime) Execute(tx *Transaction) (*Receipt, error) {
	if err := tx.Verify(); err != nil {
		metricTxCount().AddWithLabel(1, map[string]string{"status": "rejected"})
		return nil, err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	txID := tx.ID()
	ctx := NewContext(rt.ledger, rt.clock, tx.Signers...)
	ctx.txID = txID

	cp := rt.ledger.NewCheckpoint()
	if err := rt.run(ctx, tx); err != nil {
		rt.ledger.RevertTo(cp)
		metricTxCount().AddWithLabel(1, map[string]string{"status": "reverted"})
		metricTxDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"status": "reverted"})
		logger.Debug("transaction reverted", "id", fmt.Sprintf("%x", txID[:8]), "err", err)
		return nil, err
	}

	n, err := rt.ledger.Commit()
	if err != nil {
		rt.ledger.RevertTo(cp)
		metricTxCount().AddWithLabel(1, map[string]string{"status": "reverted"})
		logger.Warn("failed to commit transaction", "id", fmt.Sprintf("%x", txID[:8]), "err", err)
		return nil, errors.Wrap(err, "commit")
	}
	events := ctx.Events()
	if rt.sink != nil && len(events) > 0 {
		if err := rt.sink.Write(txID, rt.clock, events); err != nil {
			// ledger is already committed, the event log is an index only
			logger.Warn("failed to write events", "id", fmt.Sprintf("%x", txID[:8]), "err", err)
		}
	}

	metricTxCount().AddWithLabel(1, map[string]string{"status": "committed"})
	metricTxDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"status": "committed"})
	logger.Debug("transaction committed", "id", fmt.Sprintf("%x", txID[:8]), "accounts", n, "events", len(events))

	return &Receipt{TxID: txID, Clock: rt.clock, Events: events}, nil
}

func (rt *Runtime) run(ctx *Context, tx *Transaction) error {
	if len(tx.Instructions) == 0 {
		return errors.New("empty transaction")
	}
	for i, ix := range tx.Instructions {
		program, ok := rt.programs[ix.ProgramID]
		if !ok {
			return &InstructionError{i, errors.WithMessagef(ErrUnknownProgram, "%v", ix.ProgramID)}
		}
		if err := program.Execute(ctx, ix.Accounts, ix.Data); err != nil {
			return &InstructionError{i, err}
		}
	}
	return nil
}
