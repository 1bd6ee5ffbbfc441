// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/native/history"
	"github.com/Eliascm17/seraph/native/stake"
)

// CustomGenesis describes a genesis ledger.
type CustomGenesis struct {
	Name       string      `yaml:"name"`
	Clock      Clock       `yaml:"clock"`
	Accounts   []Account   `yaml:"accounts"`
	Validators []Validator `yaml:"validators"`
	Stakes     []Stake     `yaml:"stakes"`
}

type Clock struct {
	Slot          uint64 `yaml:"slot"`
	Epoch         uint64 `yaml:"epoch"`
	UnixTimestamp int64  `yaml:"unixTimestamp"`
}

// Account is a plain lamport holding account.
type Account struct {
	Address  solana.PublicKey  `yaml:"address"`
	Lamports uint64            `yaml:"lamports"`
	Owner    *solana.PublicKey `yaml:"owner,omitempty"` // system program if nil
}

// Validator is a vote account and its history.
type Validator struct {
	Vote      solana.PublicKey `yaml:"vote"`
	Authority solana.PublicKey `yaml:"authority"` // allowed to record history
	History   []EpochRecord    `yaml:"history"`
}

type EpochRecord struct {
	Epoch      uint16 `yaml:"epoch"`
	Credits    uint32 `yaml:"credits"`
	Commission uint8  `yaml:"commission"`
}

// Stake is an initialized stake account.
type Stake struct {
	Address    solana.PublicKey `yaml:"address"`
	Lamports   uint64           `yaml:"lamports"`
	Staker     solana.PublicKey `yaml:"staker"`
	Withdrawer solana.PublicKey `yaml:"withdrawer"`
}

// Load reads a genesis description file.
func Load(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var gen CustomGenesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

// Save writes the description to path.
func (gen *CustomGenesis) Save(path string) error {
	data, err := yaml.Marshal(gen)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (gen *CustomGenesis) validate() error {
	seen := make(map[solana.PublicKey]string)
	claim := func(addr solana.PublicKey, what string) error {
		if prev, ok := seen[addr]; ok {
			return errors.Errorf("%v used as %s and %s", addr, prev, what)
		}
		seen[addr] = what
		return nil
	}
	for _, a := range gen.Accounts {
		if err := claim(a.Address, "account"); err != nil {
			return err
		}
		if a.Lamports == 0 {
			return errors.Errorf("account %v: no lamports", a.Address)
		}
	}
	for _, v := range gen.Validators {
		if err := claim(v.Vote, "vote account"); err != nil {
			return err
		}
		addr, _ := history.Address(v.Vote)
		if err := claim(addr, "history account"); err != nil {
			return err
		}
		if len(v.History) > history.MaxItems {
			return errors.Errorf("validator %v: %d history records exceed %d", v.Vote, len(v.History), history.MaxItems)
		}
	}
	reserve := chain.MinimumBalance(stake.StateSize)
	for _, s := range gen.Stakes {
		if err := claim(s.Address, "stake account"); err != nil {
			return err
		}
		if s.Lamports < reserve {
			return errors.Errorf("stake %v: %d lamports below reserve %d", s.Address, s.Lamports, reserve)
		}
	}
	return nil
}

// NewCustomNet creates a genesis from its description.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if err := gen.validate(); err != nil {
		return nil, err
	}
	desc, err := yaml.Marshal(gen)
	if err != nil {
		return nil, err
	}

	builder := new(Builder).
		Clock(chain.Clock{Slot: gen.Clock.Slot, Epoch: gen.Clock.Epoch, UnixTimestamp: gen.Clock.UnixTimestamp}).
		State(func(l *ledger.Ledger) error {
			for _, a := range gen.Accounts {
				owner := chain.SystemProgramID
				if a.Owner != nil {
					owner = *a.Owner
				}
				l.Set(a.Address, &ledger.Account{Lamports: a.Lamports, Owner: owner})
			}
			return nil
		}).
		State(func(l *ledger.Ledger) error {
			for i, v := range gen.Validators {
				if err := allocValidator(l, uint32(i), v); err != nil {
					return errors.WithMessagef(err, "validator %v", v.Vote)
				}
			}
			return nil
		}).
		State(func(l *ledger.Ledger) error {
			for _, s := range gen.Stakes {
				if err := allocStake(l, s); err != nil {
					return errors.WithMessagef(err, "stake %v", s.Address)
				}
			}
			return nil
		})

	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	return &Genesis{builder, chain.Blake2b(desc), name}, nil
}

// voteAccountSpace is the data length of vote accounts.
const voteAccountSpace = 3762

func allocValidator(l *ledger.Ledger, index uint32, v Validator) error {
	l.Set(v.Vote, &ledger.Account{
		Lamports: chain.MinimumBalance(voteAccountSpace),
		Owner:    chain.VoteProgramID,
		Data:     make([]byte, voteAccountSpace),
	})

	addr, bump := history.Address(v.Vote)
	vh := &history.ValidatorHistory{
		VoteAccount: v.Vote,
		Index:       index,
		Authority:   v.Authority,
		Bump:        bump,
		History:     history.NewCircBuf(),
	}
	for _, r := range v.History {
		e := history.NewEntry(r.Epoch)
		e.EpochCredits = r.Credits
		e.Commission = r.Commission
		if !vh.History.Upsert(e) {
			return errors.WithMessagef(history.ErrStaleEntry, "epoch %d", r.Epoch)
		}
	}
	data, err := chain.EncodeAccount(history.Discriminator, vh, history.Space)
	if err != nil {
		return err
	}
	l.Set(addr, &ledger.Account{
		Lamports: chain.MinimumBalance(history.Space),
		Owner:    chain.HistoryProgramID,
		Data:     data,
	})
	return nil
}

func allocStake(l *ledger.Ledger, s Stake) error {
	st := &stake.State{
		Kind: stake.KindInitialized,
		Meta: stake.Meta{
			RentExemptReserve: chain.MinimumBalance(stake.StateSize),
			Authorized:        stake.Authorized{Staker: s.Staker, Withdrawer: s.Withdrawer},
		},
	}
	data, err := st.Encode()
	if err != nil {
		return err
	}
	l.Set(s.Address, &ledger.Account{
		Lamports: s.Lamports,
		Owner:    chain.StakeProgramID,
		Data:     data,
	})
	return nil
}
