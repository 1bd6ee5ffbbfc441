// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/cache"
	"github.com/Eliascm17/seraph/kv"
	"github.com/Eliascm17/seraph/log"
	"github.com/Eliascm17/seraph/stackedmap"
)

const (
	accountBucket = kv.Bucket("a")
	cacheSize     = 4096
)

var (
	logger = log.WithContext("pkg", "ledger")

	// ErrInsufficientFunds is returned when a debit exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Error is the error caused by ledger access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ledger: %v", e.cause)
}

func (e *Error) Cause() error {
	return e.cause
}

// Ledger holds accounts. Changes are journaled in memory and can be reverted to
// any checkpoint until Commit persists them.
type Ledger struct {
	store kv.Store
	cache *cache.LRU[solana.PublicKey, *Account]
	sm    *stackedmap.StackedMap[solana.PublicKey, *Account]
}

// New creates a ledger on top of the given store.
func New(store kv.Store) *Ledger {
	c, _ := cache.NewLRU[solana.PublicKey, *Account](cacheSize)
	l := &Ledger{
		store: accountBucket.NewStore(store),
		cache: c,
	}
	l.reset()
	return l
}

func (l *Ledger) reset() {
	l.sm = stackedmap.New(l.committed)
}

// committed loads the persisted account, nil value stands for absent.
func (l *Ledger) committed(addr solana.PublicKey) (*Account, bool, error) {
	acc, err := l.cache.GetOrLoad(addr, func(addr solana.PublicKey) (*Account, error) {
		data, err := l.store.Get(addr[:])
		if err != nil {
			if l.store.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		return loadAccount(data)
	})
	if err != nil {
		return nil, false, err
	}
	return acc, acc != nil, nil
}

func (l *Ledger) get(addr solana.PublicKey) (*Account, error) {
	acc, _, err := l.sm.Get(addr)
	if err != nil {
		return nil, &Error{err}
	}
	return acc, nil
}

// Get returns a copy of the account, or nil if absent.
func (l *Ledger) Get(addr solana.PublicKey) (*Account, error) {
	acc, err := l.get(addr)
	if err != nil || acc == nil {
		return nil, err
	}
	return acc.Copy(), nil
}

// Exists returns whether an account is present.
func (l *Ledger) Exists(addr solana.PublicKey) (bool, error) {
	acc, err := l.get(addr)
	if err != nil {
		return false, err
	}
	return acc != nil, nil
}

// Balance returns the lamports of the account, zero if absent.
func (l *Ledger) Balance(addr solana.PublicKey) (uint64, error) {
	acc, err := l.get(addr)
	if err != nil || acc == nil {
		return 0, err
	}
	return acc.Lamports, nil
}

// Set stores a copy of the account. An empty account is removed.
func (l *Ledger) Set(addr solana.PublicKey, acc *Account) {
	if acc == nil || acc.IsEmpty() {
		l.sm.Put(addr, nil)
		return
	}
	l.sm.Put(addr, acc.Copy())
}

// Delete removes the account.
func (l *Ledger) Delete(addr solana.PublicKey) {
	l.sm.Put(addr, nil)
}

// Transfer moves lamports between accounts. The receiver is created owned by
// the system program when absent.
func (l *Ledger) Transfer(from, to solana.PublicKey, lamports uint64) error {
	src, err := l.Get(from)
	if err != nil {
		return err
	}
	if src == nil || src.Lamports < lamports {
		return errors.Wrapf(ErrInsufficientFunds, "transfer %d from %v", lamports, from)
	}
	if from == to {
		return nil
	}
	dst, err := l.Get(to)
	if err != nil {
		return err
	}
	if dst == nil {
		dst = &Account{Owner: solana.SystemProgramID}
	}
	src.Lamports -= lamports
	l.Set(from, src)
	dst.Lamports += lamports
	l.Set(to, dst)
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (l *Ledger) NewCheckpoint() int {
	return l.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (l *Ledger) RevertTo(revision int) {
	l.sm.PopTo(revision)
}

// Commit persists all journaled changes in one batch and starts a fresh journal.
// It returns the number of accounts written.
func (l *Ledger) Commit() (int, error) {
	changes := make(map[solana.PublicKey]*Account)
	l.sm.Journal(func(addr solana.PublicKey, acc *Account) bool {
		changes[addr] = acc
		return true
	})

	bulk := l.store.Bulk()
	for addr, acc := range changes {
		if acc == nil {
			if err := bulk.Delete(addr[:]); err != nil {
				return 0, &Error{err}
			}
			continue
		}
		data, err := saveAccount(acc)
		if err != nil {
			return 0, &Error{err}
		}
		if err := bulk.Put(addr[:], data); err != nil {
			return 0, &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return 0, &Error{err}
	}

	for addr, acc := range changes {
		l.cache.Add(addr, acc)
	}
	l.reset()

	if changed, hit, miss := l.cache.Stats(); changed {
		logger.Debug("account cache stats", "hit", hit, "miss", miss)
	}
	return len(changes), nil
}

// Iterate visits committed accounts owned by owner in address order.
// The visit stops when cb returns false.
func (l *Ledger) Iterate(owner solana.PublicKey, cb func(addr solana.PublicKey, acc *Account) bool) error {
	iter := l.store.Iterate(kv.Range{})
	defer iter.Release()

	for iter.Next() {
		acc, err := loadAccount(iter.Value())
		if err != nil {
			return &Error{errors.Wrap(err, "decode account")}
		}
		if acc.Owner != owner {
			continue
		}
		if !cb(solana.PublicKeyFromBytes(iter.Key()), acc) {
			break
		}
	}
	if err := iter.Error(); err != nil {
		return &Error{err}
	}
	return nil
}
