// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/Eliascm17/seraph/builtin/seraph"
	"github.com/Eliascm17/seraph/genesis"
	"github.com/Eliascm17/seraph/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:   "data-dir",
		Value:  defaultDataDir(),
		EnvVar: "SERAPH_DATA_DIR",
		Usage:  "directory for ledger and event databases",
	}
	genesisFlag = cli.StringFlag{
		Name:   "genesis",
		EnvVar: "SERAPH_GENESIS",
		Usage:  "path to a genesis file (devnet of the admin key if not set)",
	}
	keyFileFlag = cli.StringFlag{
		Name:   "key-file",
		EnvVar: "SERAPH_KEY_FILE",
		Usage:  "admin key file, base58 or solana-keygen json (<data-dir>/admin.key if not set)",
	}
	minTenureFlag = cli.Uint64Flag{
		Name:  "min-tenure-epochs",
		Value: seraph.DefaultMinTenureEpochs,
		Usage: "epochs a pool must exist before scoring validators (0 to disable)",
	}
	skipLogsFlag = cli.BoolFlag{
		Name:  "skip-logs",
		Usage: "skip writing events (/events API will be disabled)",
	}

	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  log.LegacyLevelInfo,
		EnvVar: "SERAPH_VERBOSITY",
		Usage:  "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}

	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8899",
		EnvVar: "SERAPH_API_ADDR",
		Usage:  "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiLogsLimitFlag = cli.Uint64Flag{
		Name:  "api-logs-limit",
		Value: 1000,
		Usage: "limit the number of events returned by /events API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.DurationFlag{
		Name:  "api-slow-queries-threshold",
		Usage: "log API requests slower than this (0 to disable)",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	epochIntervalFlag = cli.DurationFlag{
		Name:  "epoch-interval",
		Usage: "advance one epoch and score every validator at this interval (0 to disable)",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}

	voteFlag = cli.StringFlag{
		Name:  "vote",
		Usage: "vote account of the validator",
	}
	stakeFlag = cli.StringFlag{
		Name:  "stake",
		Usage: "stake account controlled by the pool",
	}
	topFlag = cli.IntFlag{
		Name:  "top",
		Value: 10,
		Usage: "number of shortlist entries to print",
	}
	epochsFlag = cli.Uint64Flag{
		Name:  "epochs",
		Value: 1,
		Usage: "number of epochs to advance",
	}
	concurrencyFlag = cli.IntFlag{
		Name:  "concurrency",
		Value: 8,
		Usage: "number of validators prepared in parallel",
	}

	outFlag = cli.StringFlag{
		Name:  "out",
		Value: "genesis.yaml",
		Usage: "path of the written genesis file",
	}
	validatorsFlag = cli.IntFlag{
		Name:  "validators",
		Value: genesis.DevnetValidators,
		Usage: "number of devnet validators",
	}
	stakesFlag = cli.IntFlag{
		Name:  "stakes",
		Value: genesis.DevnetStakes,
		Usage: "number of devnet stake accounts",
	}
	historyEpochsFlag = cli.IntFlag{
		Name:  "history-epochs",
		Value: genesis.DevnetEpochs,
		Usage: "epochs of history recorded per devnet validator",
	}
	seedFlag = cli.Uint64Flag{
		Name:  "seed",
		Usage: "seed of the devnet generator",
	}
)
