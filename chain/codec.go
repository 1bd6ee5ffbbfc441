// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// ErrDiscriminatorMismatch is returned when account data is not of the expected type.
var ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")

// EncodeAccount encodes v prefixed with the discriminator, zero padded to space bytes.
func EncodeAccount(d Discriminator, v any, space int) ([]byte, error) {
	body, err := rlp.EncodeToBytes(v)
	if err != nil {
		return nil, err
	}
	if len(d)+len(body) > space {
		return nil, errors.Errorf("account body %d bytes exceeds space %d", len(d)+len(body), space)
	}
	data := make([]byte, space)
	copy(data, d[:])
	copy(data[len(d):], body)
	return data, nil
}

// DecodeAccount checks the discriminator and decodes the body into v.
// Padding after the body is ignored.
func DecodeAccount(d Discriminator, data []byte, v any) error {
	if len(data) < len(d) || !bytes.Equal(data[:len(d)], d[:]) {
		return ErrDiscriminatorMismatch
	}
	return rlp.NewStream(bytes.NewReader(data[len(d):]), 0).Decode(v)
}
