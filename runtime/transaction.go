// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/chain"
)

var (
	ErrMissingSignature = errors.New("missing signature")
	ErrInvalidSignature = errors.New("invalid signature")
)

// Instruction invokes a program with the accounts it touches and opaque data.
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []solana.PublicKey
	Data      []byte
}

// Transaction is an ordered list of instructions executed atomically.
type Transaction struct {
	Instructions []*Instruction
	Signers      []solana.PublicKey
	Signatures   []solana.Signature
}

// NewTransaction creates an unsigned transaction.
func NewTransaction(instructions ...*Instruction) *Transaction {
	return &Transaction{Instructions: instructions}
}

// SigningHash returns the hash signers sign over.
func (tx *Transaction) SigningHash() chain.Hash {
	return chain.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{tx.Instructions, tx.Signers})
	})
}

// ID returns the transaction id.
func (tx *Transaction) ID() chain.Hash {
	return chain.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, tx)
	})
}

// Sign sets signers and signs with all the keys.
// The signer set is frozen once signed.
func (tx *Transaction) Sign(keys ...solana.PrivateKey) error {
	tx.Signers = tx.Signers[:0]
	for _, key := range keys {
		tx.Signers = append(tx.Signers, key.PublicKey())
	}
	hash := tx.SigningHash()

	tx.Signatures = tx.Signatures[:0]
	for _, key := range keys {
		sig, err := key.Sign(hash[:])
		if err != nil {
			return errors.Wrap(err, "sign")
		}
		tx.Signatures = append(tx.Signatures, sig)
	}
	return nil
}

// Verify checks every signer has a valid signature.
func (tx *Transaction) Verify() error {
	if len(tx.Signers) == 0 || len(tx.Signatures) != len(tx.Signers) {
		return ErrMissingSignature
	}
	hash := tx.SigningHash()
	for i, signer := range tx.Signers {
		if !tx.Signatures[i].Verify(signer, hash[:]) {
			return errors.WithMessagef(ErrInvalidSignature, "signer %v", signer)
		}
	}
	return nil
}
