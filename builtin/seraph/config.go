// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package seraph

// DefaultMinTenureEpochs is the number of epochs a pool must exist before it scores validators.
const DefaultMinTenureEpochs = 5

// Config holds program tunables.
type Config struct {
	// MinTenureEpochs gates scoring until StartEpoch+MinTenureEpochs. Zero disables the gate.
	MinTenureEpochs uint64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{MinTenureEpochs: DefaultMinTenureEpochs}
}
