// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
)

// Account is the ledger record of an address.
type Account struct {
	Lamports   uint64
	Owner      solana.PublicKey
	Data       []byte
	Executable bool
}

// IsEmpty returns if the account holds nothing.
func (a *Account) IsEmpty() bool {
	return a.Lamports == 0 && len(a.Data) == 0 && !a.Executable
}

// Copy returns a deep copy.
func (a *Account) Copy() *Account {
	cpy := *a
	cpy.Data = bytes.Clone(a.Data)
	return &cpy
}

func loadAccount(data []byte) (*Account, error) {
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func saveAccount(a *Account) ([]byte, error) {
	return rlp.EncodeToBytes(a)
}
