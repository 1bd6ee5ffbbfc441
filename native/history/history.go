// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package history implements validator history accounts: a ring of per epoch
// records of vote credits and commission kept for every vote account.
package history

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/native/system"
	"github.com/Eliascm17/seraph/runtime"
)

// Seed prefixes the history address of a vote account.
const Seed = "validator-history"

// Space is the data length of a history account.
const Space = 8 + 128 + MaxItems*32

var (
	Discriminator = chain.AccountDiscriminator("ValidatorHistory")

	ErrMissingRequiredSignature = errors.New("missing required signature")
	ErrInvalidAccount           = errors.New("invalid validator history account")
	ErrStaleEntry               = errors.New("entry older than the history window")
)

// Reader reads epoch records of one validator.
type Reader interface {
	EpochRange(start, end uint16) []*Entry
}

// ValidatorHistory is the content of a history account.
type ValidatorHistory struct {
	StructVersion uint32
	VoteAccount   solana.PublicKey
	Index         uint32
	Authority     solana.PublicKey
	Bump          uint8
	History       CircBuf
}

var _ Reader = (*ValidatorHistory)(nil)

// EpochRange implements Reader.
func (v *ValidatorHistory) EpochRange(start, end uint16) []*Entry {
	return v.History.EpochRange(start, end)
}

// Address returns the history account address of a vote account.
func Address(vote solana.PublicKey) (solana.PublicKey, uint8) {
	return chain.FindAddress(chain.HistoryProgramID, []byte(Seed), vote[:])
}

// Load reads a history account.
func Load(l *ledger.Ledger, addr solana.PublicKey) (*ValidatorHistory, error) {
	acc, err := l.Get(addr)
	if err != nil {
		return nil, err
	}
	if acc == nil || acc.Owner != chain.HistoryProgramID {
		return nil, errors.WithMessagef(ErrInvalidAccount, "%v", addr)
	}
	var v ValidatorHistory
	if err := chain.DecodeAccount(Discriminator, acc.Data, &v); err != nil {
		return nil, errors.WithMessagef(ErrInvalidAccount, "%v: %v", addr, err)
	}
	return &v, nil
}

func save(l *ledger.Ledger, addr solana.PublicKey, v *ValidatorHistory) error {
	acc, err := l.Get(addr)
	if err != nil {
		return err
	}
	data, err := chain.EncodeAccount(Discriminator, v, Space)
	if err != nil {
		return err
	}
	acc.Data = data
	l.Set(addr, acc)
	return nil
}

// Program is the validator history program.
type Program struct{}

// New creates the history program.
func New() *Program { return &Program{} }

func (p *Program) ID() solana.PublicKey { return chain.HistoryProgramID }

// InitializeAccount creates the history account of vote, paid by payer. authority
// is allowed to record entries.
func InitializeAccount(ctx *runtime.Context, payer, vote, authority solana.PublicKey, index uint32) (solana.PublicKey, error) {
	addr, bump := Address(vote)
	err := system.CreateAccount(ctx.WithSigners(addr), payer, addr, chain.MinimumBalance(Space), Space, chain.HistoryProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	v := &ValidatorHistory{
		StructVersion: 0,
		VoteAccount:   vote,
		Index:         index,
		Authority:     authority,
		Bump:          bump,
		History:       NewCircBuf(),
	}
	return addr, save(ctx.Ledger(), addr, v)
}

// RecordEntry stores the entry of an epoch. The history authority must sign.
func RecordEntry(ctx *runtime.Context, vote solana.PublicKey, entry Entry) error {
	addr, _ := Address(vote)
	v, err := Load(ctx.Ledger(), addr)
	if err != nil {
		return err
	}
	if !ctx.IsSigner(v.Authority) {
		return errors.WithMessagef(ErrMissingRequiredSignature, "authority %v", v.Authority)
	}
	if !v.History.Upsert(entry) {
		return errors.WithMessagef(ErrStaleEntry, "epoch %d", entry.Epoch)
	}
	return save(ctx.Ledger(), addr, v)
}
