// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/gagliardetto/solana-go"

// Event is a record emitted by a program during a successful transaction.
type Event struct {
	Program solana.PublicKey
	Name    string
	// Subject is the account the event is about.
	Subject solana.PublicKey
	Data    map[string]string
}
