// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package system implements account creation and lamport transfers.
package system

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/runtime"
)

// MaxPermittedDataLength caps the space of a created account.
const MaxPermittedDataLength = 10 * 1024 * 1024

var (
	ErrAccountAlreadyInUse      = errors.New("account already in use")
	ErrMissingRequiredSignature = errors.New("missing required signature")
	ErrInvalidAccountDataLength = errors.New("invalid account data length")
	ErrInvalidAccountOwner      = errors.New("invalid account owner")
)

const (
	opCreateAccount byte = iota
	opTransfer
)

// Program is the system program.
type Program struct{}

// New creates the system program.
func New() *Program { return &Program{} }

func (p *Program) ID() solana.PublicKey { return chain.SystemProgramID }

type createAccountArgs struct {
	Lamports uint64
	Space    uint64
	Owner    solana.PublicKey
}

// Execute dispatches an instruction.
func (p *Program) Execute(ctx *runtime.Context, accounts []solana.PublicKey, data []byte) error {
	op, err := runtime.Opcode(data)
	if err != nil {
		return err
	}
	if err := runtime.RequireAccounts(accounts, 2); err != nil {
		return err
	}
	switch op {
	case opCreateAccount:
		var args createAccountArgs
		if _, err := runtime.DecodeData(data, &args); err != nil {
			return err
		}
		return CreateAccount(ctx, accounts[0], accounts[1], args.Lamports, args.Space, args.Owner)
	case opTransfer:
		var lamports uint64
		if _, err := runtime.DecodeData(data, &lamports); err != nil {
			return err
		}
		return Transfer(ctx, accounts[0], accounts[1], lamports)
	default:
		return runtime.ErrInvalidInstructionData
	}
}

// CreateAccount allocates a new account of space bytes owned by owner, funded by payer.
// Both payer and the new account must sign.
func CreateAccount(ctx *runtime.Context, payer, newAccount solana.PublicKey, lamports, space uint64, owner solana.PublicKey) error {
	if !ctx.IsSigner(payer) {
		return errors.WithMessagef(ErrMissingRequiredSignature, "payer %v", payer)
	}
	if !ctx.IsSigner(newAccount) {
		return errors.WithMessagef(ErrMissingRequiredSignature, "new account %v", newAccount)
	}
	if space > MaxPermittedDataLength {
		return ErrInvalidAccountDataLength
	}

	l := ctx.Ledger()
	existing, err := l.Get(newAccount)
	if err != nil {
		return err
	}
	if existing != nil && (existing.Lamports > 0 || len(existing.Data) > 0 || existing.Owner != chain.SystemProgramID) {
		return errors.WithMessagef(ErrAccountAlreadyInUse, "%v", newAccount)
	}

	payerAcc, err := l.Get(payer)
	if err != nil {
		return err
	}
	if payerAcc == nil || payerAcc.Lamports < lamports {
		return errors.WithMessagef(ledger.ErrInsufficientFunds, "payer %v needs %d lamports", payer, lamports)
	}
	payerAcc.Lamports -= lamports
	l.Set(payer, payerAcc)
	l.Set(newAccount, &ledger.Account{
		Lamports: lamports,
		Owner:    owner,
		Data:     make([]byte, space),
	})
	return nil
}

// Transfer moves lamports from a system owned account.
func Transfer(ctx *runtime.Context, from, to solana.PublicKey, lamports uint64) error {
	if !ctx.IsSigner(from) {
		return errors.WithMessagef(ErrMissingRequiredSignature, "from %v", from)
	}
	acc, err := ctx.Ledger().Get(from)
	if err != nil {
		return err
	}
	if acc != nil && (acc.Owner != chain.SystemProgramID || len(acc.Data) > 0) {
		return errors.WithMessagef(ErrInvalidAccountOwner, "from %v", from)
	}
	return ctx.Ledger().Transfer(from, to, lamports)
}

// NewCreateAccountInstruction builds a CreateAccount instruction.
func NewCreateAccountInstruction(payer, newAccount solana.PublicKey, lamports, space uint64, owner solana.PublicKey) *runtime.Instruction {
	return &runtime.Instruction{
		ProgramID: chain.SystemProgramID,
		Accounts:  []solana.PublicKey{payer, newAccount},
		Data:      runtime.EncodeData(opCreateAccount, &createAccountArgs{lamports, space, owner}),
	}
}

// NewTransferInstruction builds a Transfer instruction.
func NewTransferInstruction(from, to solana.PublicKey, lamports uint64) *runtime.Instruction {
	return &runtime.Instruction{
		ProgramID: chain.SystemProgramID,
		Accounts:  []solana.PublicKey{from, to},
		Data:      runtime.EncodeData(opTransfer, lamports),
	}
}
