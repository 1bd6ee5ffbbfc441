// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/joho/godotenv"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/Eliascm17/seraph/log"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "cmd")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	// a .env file in the working dir supplies SERAPH_* variables
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(1)
	}

	app := cli.App{
		Version: fullVersion(),
		Name:    "Seraph",
		Usage:   "Validator scoring and stake pool manager",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			keyFileFlag,
			minTenureFlag,
			skipLogsFlag,
			verbosityFlag,
			jsonLogsFlag,
		},
		Commands: []cli.Command{
			{
				Name:  "genesis",
				Usage: "write a devnet genesis file for the admin key",
				Flags: []cli.Flag{
					outFlag,
					validatorsFlag,
					stakesFlag,
					historyEpochsFlag,
					seedFlag,
				},
				Action: genesisAction,
			},
			{
				Name:   "initialize",
				Usage:  "create the pool and its validator shortlist",
				Action: initializeAction,
			},
			{
				Name:   "score",
				Usage:  "score one validator into the shortlist",
				Flags:  []cli.Flag{voteFlag},
				Action: scoreAction,
			},
			{
				Name:   "score-all",
				Usage:  "score every validator of the ledger",
				Flags:  []cli.Flag{concurrencyFlag},
				Action: scoreAllAction,
			},
			{
				Name:   "delegate",
				Usage:  "delegate a pool stake account to a validator",
				Flags:  []cli.Flag{stakeFlag, voteFlag},
				Action: delegateAction,
			},
			{
				Name:   "deactivate",
				Usage:  "deactivate a pool stake account",
				Flags:  []cli.Flag{stakeFlag},
				Action: deactivateAction,
			},
			{
				Name:   "redelegate",
				Usage:  "move the stake of a pool stake account to another validator",
				Flags:  []cli.Flag{stakeFlag, voteFlag},
				Action: redelegateAction,
			},
			{
				Name:   "advance",
				Usage:  "advance the cluster clock",
				Flags:  []cli.Flag{epochsFlag},
				Action: advanceAction,
			},
			{
				Name:   "shortlist",
				Usage:  "print the best validators of the pool",
				Flags:  []cli.Flag{topFlag},
				Action: shortlistAction,
			},
			{
				Name:  "serve",
				Usage: "serve the read API",
				Flags: []cli.Flag{
					apiAddrFlag,
					apiCorsFlag,
					apiLogsLimitFlag,
					enableAPILogsFlag,
					apiSlowQueriesThresholdFlag,
					enableMetricsFlag,
					metricsAddrFlag,
					epochIntervalFlag,
					concurrencyFlag,
				},
				Action: serveAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReqLoggerSwitch(enabled bool) *atomic.Bool {
	var b atomic.Bool
	b.Store(enabled)
	return &b
}
