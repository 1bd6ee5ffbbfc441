// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package history

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/runtime"
)

const (
	opInitializeAccount byte = iota
	opRecordEntry
)

type initializeArgs struct {
	Authority solana.PublicKey
	Index     uint32
}

// Execute dispatches an instruction.
func (p *Program) Execute(ctx *runtime.Context, accounts []solana.PublicKey, data []byte) error {
	op, err := runtime.Opcode(data)
	if err != nil {
		return err
	}
	switch op {
	case opInitializeAccount:
		if err := runtime.RequireAccounts(accounts, 2); err != nil {
			return err
		}
		var args initializeArgs
		if _, err := runtime.DecodeData(data, &args); err != nil {
			return err
		}
		_, err := InitializeAccount(ctx, accounts[0], accounts[1], args.Authority, args.Index)
		return err
	case opRecordEntry:
		if err := runtime.RequireAccounts(accounts, 1); err != nil {
			return err
		}
		var entry Entry
		if _, err := runtime.DecodeData(data, &entry); err != nil {
			return err
		}
		return RecordEntry(ctx, accounts[0], entry)
	default:
		return runtime.ErrInvalidInstructionData
	}
}

// NewInitializeAccountInstruction builds an InitializeAccount instruction.
func NewInitializeAccountInstruction(payer, vote, authority solana.PublicKey, index uint32) *runtime.Instruction {
	return &runtime.Instruction{
		ProgramID: chain.HistoryProgramID,
		Accounts:  []solana.PublicKey{payer, vote},
		Data:      runtime.EncodeData(opInitializeAccount, &initializeArgs{authority, index}),
	}
}

// NewRecordEntryInstruction builds a RecordEntry instruction.
func NewRecordEntryInstruction(vote solana.PublicKey, entry Entry) *runtime.Instruction {
	return &runtime.Instruction{
		ProgramID: chain.HistoryProgramID,
		Accounts:  []solana.PublicKey{vote},
		Data:      runtime.EncodeData(opRecordEntry, &entry),
	}
}
