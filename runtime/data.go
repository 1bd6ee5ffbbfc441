// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// ErrInvalidInstructionData is returned when instruction data can not be decoded.
var ErrInvalidInstructionData = errors.New("invalid instruction data")

// EncodeData packs an opcode and its rlp encoded arguments. args may be nil.
func EncodeData(op byte, args any) []byte {
	if args == nil {
		return []byte{op}
	}
	enc, err := rlp.EncodeToBytes(args)
	if err != nil {
		panic(err)
	}
	return append([]byte{op}, enc...)
}

// DecodeData splits data into the opcode and decodes arguments into args.
func DecodeData(data []byte, args any) (byte, error) {
	if len(data) == 0 {
		return 0, ErrInvalidInstructionData
	}
	if args != nil {
		if err := rlp.DecodeBytes(data[1:], args); err != nil {
			return 0, errors.WithMessage(ErrInvalidInstructionData, err.Error())
		}
	}
	return data[0], nil
}

// Opcode returns the opcode of the data.
func Opcode(data []byte) (byte, error) {
	return DecodeData(data, nil)
}

// ErrNotEnoughAccounts is returned when an instruction lists fewer accounts than required.
var ErrNotEnoughAccounts = errors.New("not enough account keys")

// RequireAccounts checks the instruction carries at least n accounts.
func RequireAccounts(accounts []solana.PublicKey, n int) error {
	if len(accounts) < n {
		return errors.WithMessagef(ErrNotEnoughAccounts, "want %d, got %d", n, len(accounts))
	}
	return nil
}
