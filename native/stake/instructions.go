// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/runtime"
)

const (
	opInitialize byte = iota
	opAuthorize
	opDelegate
	opDeactivate
	opRedelegate
)

type initializeArgs struct {
	Authorized Authorized
	Lockup     Lockup
}

type authorizeArgs struct {
	NewAuthority solana.PublicKey
	Kind         AuthorizeKind
}

// Execute dispatches an instruction.
func (p *Program) Execute(ctx *runtime.Context, accounts []solana.PublicKey, data []byte) error {
	op, err := runtime.Opcode(data)
	if err != nil {
		return err
	}
	if err := runtime.RequireAccounts(accounts, 1); err != nil {
		return err
	}
	switch op {
	case opInitialize:
		var args initializeArgs
		if _, err := runtime.DecodeData(data, &args); err != nil {
			return err
		}
		return Initialize(ctx, accounts[0], args.Authorized, args.Lockup)
	case opAuthorize:
		var args authorizeArgs
		if _, err := runtime.DecodeData(data, &args); err != nil {
			return err
		}
		return Authorize(ctx, accounts[0], args.NewAuthority, args.Kind)
	case opDelegate:
		if err := runtime.RequireAccounts(accounts, 2); err != nil {
			return err
		}
		return Delegate(ctx, accounts[0], accounts[1])
	case opDeactivate:
		return Deactivate(ctx, accounts[0])
	case opRedelegate:
		if err := runtime.RequireAccounts(accounts, 3); err != nil {
			return err
		}
		return Redelegate(ctx, accounts[0], accounts[1], accounts[2])
	default:
		return runtime.ErrInvalidInstructionData
	}
}

func newInstruction(data []byte, accounts ...solana.PublicKey) *runtime.Instruction {
	return &runtime.Instruction{ProgramID: chain.StakeProgramID, Accounts: accounts, Data: data}
}

// NewInitializeInstruction builds an Initialize instruction.
func NewInitializeInstruction(addr solana.PublicKey, authorized Authorized, lockup Lockup) *runtime.Instruction {
	return newInstruction(runtime.EncodeData(opInitialize, &initializeArgs{authorized, lockup}), addr)
}

// NewAuthorizeInstruction builds an Authorize instruction.
func NewAuthorizeInstruction(addr, newAuthority solana.PublicKey, kind AuthorizeKind) *runtime.Instruction {
	return newInstruction(runtime.EncodeData(opAuthorize, &authorizeArgs{newAuthority, kind}), addr)
}

// NewDelegateInstruction builds a Delegate instruction.
func NewDelegateInstruction(addr, vote solana.PublicKey) *runtime.Instruction {
	return newInstruction(runtime.EncodeData(opDelegate, nil), addr, vote)
}

// NewDeactivateInstruction builds a Deactivate instruction.
func NewDeactivateInstruction(addr solana.PublicKey) *runtime.Instruction {
	return newInstruction(runtime.EncodeData(opDeactivate, nil), addr)
}

// NewRedelegateInstruction builds a Redelegate instruction.
func NewRedelegateInstruction(addr, vote, newAddr solana.PublicKey) *runtime.Instruction {
	return newInstruction(runtime.EncodeData(opRedelegate, nil), addr, vote, newAddr)
}
