// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

const (
	// AccountStorageOverhead is charged on top of the data length of every account.
	AccountStorageOverhead uint64 = 128
	LamportsPerByteYear    uint64 = 3480
	ExemptionThreshold     uint64 = 2
)

// MinimumBalance returns the lamports an account holding dataLen bytes needs to be rent exempt.
func MinimumBalance(dataLen uint64) uint64 {
	return (AccountStorageOverhead + dataLen) * LamportsPerByteYear * ExemptionThreshold
}
