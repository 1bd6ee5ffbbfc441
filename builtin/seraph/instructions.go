// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package seraph

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/runtime"
)

const (
	opInitialize byte = iota
	opCalculateScore
	opDelegateStake
	opDeactivateStake
	opRedelegateStake
)

// Account layouts, admin first:
//
//	Initialize       admin, pool, vlist
//	CalculateScore   admin, pool, vlist, history, vote
//	DelegateStake    admin, pool, stake, vote
//	DeactivateStake  admin, pool, stake
//	RedelegateStake  admin, pool, stake, newStake, vote
var accountCounts = map[byte]int{
	opInitialize:      3,
	opCalculateScore:  5,
	opDelegateStake:   4,
	opDeactivateStake: 3,
	opRedelegateStake: 5,
}

func expect(name string, got, want solana.PublicKey) error {
	if got != want {
		return errors.WithMessagef(ErrAccountMismatch, "%s: got %v, want %v", name, got, want)
	}
	return nil
}

// Execute dispatches an instruction.
func (p *Program) Execute(ctx *runtime.Context, accounts []solana.PublicKey, data []byte) error {
	op, err := runtime.Opcode(data)
	if err != nil {
		return err
	}
	n, ok := accountCounts[op]
	if !ok {
		return runtime.ErrInvalidInstructionData
	}
	if err := runtime.RequireAccounts(accounts, n); err != nil {
		return err
	}

	admin := accounts[0]
	poolAddr := PoolAddress(admin)
	if err := expect("pool", accounts[1], poolAddr); err != nil {
		return err
	}

	switch op {
	case opInitialize:
		if err := expect("vlist", accounts[2], VListAddress(admin, poolAddr)); err != nil {
			return err
		}
		_, err := p.Initialize(ctx, admin)
		return err
	case opCalculateScore:
		if err := expect("vlist", accounts[2], VListAddress(admin, poolAddr)); err != nil {
			return err
		}
		_, err := p.CalculateScore(ctx, admin, accounts[3], accounts[4])
		return err
	case opDelegateStake:
		return p.DelegateStake(ctx, admin, accounts[2], accounts[3])
	case opDeactivateStake:
		return p.DeactivateStake(ctx, admin, accounts[2])
	default: // opRedelegateStake
		return p.RedelegateStake(ctx, admin, accounts[2], accounts[3], accounts[4])
	}
}

func newInstruction(op byte, accounts ...solana.PublicKey) *runtime.Instruction {
	return &runtime.Instruction{
		ProgramID: chain.ProgramID,
		Accounts:  accounts,
		Data:      runtime.EncodeData(op, nil),
	}
}

// NewInitializeInstruction builds an Initialize instruction.
func NewInitializeInstruction(admin solana.PublicKey) *runtime.Instruction {
	poolAddr := PoolAddress(admin)
	return newInstruction(opInitialize, admin, poolAddr, VListAddress(admin, poolAddr))
}

// NewCalculateScoreInstruction builds a CalculateScore instruction.
func NewCalculateScoreInstruction(admin, historyAccount, vote solana.PublicKey) *runtime.Instruction {
	poolAddr := PoolAddress(admin)
	return newInstruction(opCalculateScore, admin, poolAddr, VListAddress(admin, poolAddr), historyAccount, vote)
}

// NewDelegateStakeInstruction builds a DelegateStake instruction.
func NewDelegateStakeInstruction(admin, stakeAccount, vote solana.PublicKey) *runtime.Instruction {
	return newInstruction(opDelegateStake, admin, PoolAddress(admin), stakeAccount, vote)
}

// NewDeactivateStakeInstruction builds a DeactivateStake instruction.
func NewDeactivateStakeInstruction(admin, stakeAccount solana.PublicKey) *runtime.Instruction {
	return newInstruction(opDeactivateStake, admin, PoolAddress(admin), stakeAccount)
}

// NewRedelegateStakeInstruction builds a RedelegateStake instruction. The
// transaction must be signed by newStakeAccount as well as admin.
func NewRedelegateStakeInstruction(admin, stakeAccount, newStakeAccount, vote solana.PublicKey) *runtime.Instruction {
	return newInstruction(opRedelegateStake, admin, PoolAddress(admin), stakeAccount, newStakeAccount, vote)
}
