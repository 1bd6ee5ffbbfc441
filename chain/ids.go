// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package chain

import "github.com/gagliardetto/solana-go"

// Well known program and account ids.
var (
	ProgramID        = solana.MustPublicKeyFromBase58("9EK4NR8LwFBzV6jCNYoshQ9yyuM6yDxB8zsqrhTsK5z")
	HistoryProgramID = solana.MustPublicKeyFromBase58("HistoryJTGbKQD2mRgLZ3XhqHnN811Qpez8X9kCcGHoa")
	SystemProgramID  = solana.SystemProgramID
	StakeProgramID   = solana.StakeProgramID
	VoteProgramID    = solana.VoteProgramID
	StakeConfigID    = solana.MustPublicKeyFromBase58("StakeConfig11111111111111111111111111111111")
)

// FindAddress derives a program address from seeds.
// It panics on the practically impossible case of no valid bump.
func FindAddress(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, uint8) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		panic(err)
	}
	return addr, bump
}
