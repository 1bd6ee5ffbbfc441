// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/Eliascm17/seraph/api"
	"github.com/Eliascm17/seraph/builtin/seraph"
	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/genesis"
	"github.com/Eliascm17/seraph/health"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/log"
	"github.com/Eliascm17/seraph/metrics"
	"github.com/Eliascm17/seraph/native/history"
	"github.com/Eliascm17/seraph/runtime"
)

func genesisAction(ctx *cli.Context) error {
	initLogger(ctx)
	admin := adminKey(ctx, makeDataDir(ctx))
	desc := genesis.NewDevnetGenesis(admin.PublicKey(), genesis.DevnetConfig{
		Validators: ctx.Int(validatorsFlag.Name),
		Stakes:     ctx.Int(stakesFlag.Name),
		Epochs:     uint16(ctx.Int(historyEpochsFlag.Name)),
		Seed:       ctx.Uint64(seedFlag.Name),
	})
	if _, err := genesis.NewCustomNet(desc); err != nil {
		return err
	}
	out := ctx.String(outFlag.Name)
	if err := desc.Save(out); err != nil {
		return errors.Wrap(err, "save genesis")
	}
	fmt.Printf("genesis written to %v (admin %v)\n", out, admin.PublicKey())
	return nil
}

func printReceipt(receipt *runtime.Receipt) {
	fmt.Printf("tx %v at epoch %d\n", receipt.TxID, receipt.Clock.Epoch)
	for _, ev := range receipt.Events {
		fmt.Printf("  %s %v %v\n", ev.Name, ev.Subject, ev.Data)
	}
}

func initializeAction(ctx *cli.Context) error {
	n := openNode(ctx)
	defer n.Close()

	receipt, err := n.submit(nil, seraph.NewInitializeInstruction(n.admin.PublicKey()))
	if err != nil {
		return err
	}
	printReceipt(receipt)
	return nil
}

func scoreAction(ctx *cli.Context) error {
	vote, err := parsePublicKey(ctx, voteFlag)
	if err != nil {
		return err
	}
	n := openNode(ctx)
	defer n.Close()

	historyAddr, _ := history.Address(vote)
	receipt, err := n.submit(nil, seraph.NewCalculateScoreInstruction(n.admin.PublicKey(), historyAddr, vote))
	if err != nil {
		return err
	}
	if !hasEvent(receipt, seraph.EventValidatorScored) {
		fmt.Println("no history in the scoring window, validator not scored")
	}
	printReceipt(receipt)
	return nil
}

func scoreAllAction(ctx *cli.Context) error {
	n := openNode(ctx)
	defer n.Close()

	sum, err := scoreAll(handleExitSignal(), n, ctx.Int(concurrencyFlag.Name), true)
	if sum != nil {
		fmt.Printf("scored %d, skipped %d, failed %d\n", sum.Scored, sum.Skipped, sum.Failed)
	}
	return err
}

func delegateAction(ctx *cli.Context) error {
	stakeAddr, err := parsePublicKey(ctx, stakeFlag)
	if err != nil {
		return err
	}
	vote, err := parsePublicKey(ctx, voteFlag)
	if err != nil {
		return err
	}
	n := openNode(ctx)
	defer n.Close()

	receipt, err := n.submit(nil, seraph.NewDelegateStakeInstruction(n.admin.PublicKey(), stakeAddr, vote))
	if err != nil {
		return err
	}
	printReceipt(receipt)
	return nil
}

func deactivateAction(ctx *cli.Context) error {
	stakeAddr, err := parsePublicKey(ctx, stakeFlag)
	if err != nil {
		return err
	}
	n := openNode(ctx)
	defer n.Close()

	receipt, err := n.submit(nil, seraph.NewDeactivateStakeInstruction(n.admin.PublicKey(), stakeAddr))
	if err != nil {
		return err
	}
	printReceipt(receipt)
	return nil
}

func redelegateAction(ctx *cli.Context) error {
	stakeAddr, err := parsePublicKey(ctx, stakeFlag)
	if err != nil {
		return err
	}
	vote, err := parsePublicKey(ctx, voteFlag)
	if err != nil {
		return err
	}
	n := openNode(ctx)
	defer n.Close()

	newStake, err := solana.NewRandomPrivateKey()
	if err != nil {
		return err
	}
	receipt, err := n.submit([]solana.PrivateKey{newStake},
		seraph.NewRedelegateStakeInstruction(n.admin.PublicKey(), stakeAddr, newStake.PublicKey(), vote))
	if err != nil {
		return err
	}
	fmt.Printf("new stake account %v\n", newStake.PublicKey())
	printReceipt(receipt)
	return nil
}

func advanceAction(ctx *cli.Context) error {
	n := openNode(ctx)
	defer n.Close()

	clock, err := n.rt.AdvanceEpochs(ctx.Uint64(epochsFlag.Name))
	if err != nil {
		return err
	}
	fmt.Println(clock)
	return nil
}

func shortlistAction(ctx *cli.Context) error {
	n := openNode(ctx)
	defer n.Close()

	admin := n.admin.PublicKey()
	return n.rt.View(func(l *ledger.Ledger, clock chain.Clock) error {
		vl, err := seraph.VList(l, admin)
		if err != nil {
			return err
		}
		if vl == nil {
			return errors.Errorf("no pool for admin %v, run initialize first", admin)
		}
		fmt.Printf("%d of %d validators at epoch %d\n", vl.Len(), vl.Cap(), clock.Epoch)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tVOTE\tSCORE\tSCORED AT")
		for i, e := range vl.Top(ctx.Int(topFlag.Name)) {
			fmt.Fprintf(w, "%d\t%v\t%d\t%d\n", i+1, e.Validator, e.Score, e.LastScoredEpoch)
		}
		return w.Flush()
	})
}

func serveAction(ctx *cli.Context) error {
	n := openNode(ctx)
	defer n.Close()

	enableMetrics := ctx.Bool(enableMetricsFlag.Name)
	if enableMetrics {
		metrics.InitializePrometheusMetrics()
		url, stop := startServer(ctx.String(metricsAddrFlag.Name), metrics.HTTPHandler(), "metrics")
		defer func() { log.Info("stopping metrics server..."); stop() }()
		log.Info("metrics server started", "url", url)
	}

	interval := ctx.Duration(epochIntervalFlag.Name)
	h := health.New(interval)

	handler, closeSubs := api.New(n.rt, n.logDB, n.gene.ID(), api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		EnableReqLogger:      newReqLoggerSwitch(ctx.Bool(enableAPILogsFlag.Name)),
		SlowQueriesThreshold: ctx.Duration(apiSlowQueriesThresholdFlag.Name),
		EnableMetrics:        enableMetrics,
		LogsLimit:            ctx.Uint64(apiLogsLimitFlag.Name),
		SkipLogs:             n.logDB == nil,
		Health:               h,
		Events:               n.events,
	})
	url, stop := startServer(ctx.String(apiAddrFlag.Name), handler, "api")
	defer func() {
		log.Info("stopping API server...")
		closeSubs()
		stop()
	}()

	fmt.Printf(`Starting %v
    Network    [ %v %v ]
    Admin      [ %v ]
    Pool       [ %v ]
    Clock      [ %v ]
    API portal [ %v ]
`, fullVersion(), n.gene.Name(), n.gene.ID(), n.admin.PublicKey(), seraph.PoolAddress(n.admin.PublicKey()), n.rt.Clock(), url)

	g, exitCtx := errgroup.WithContext(handleExitSignal())
	if interval > 0 {
		g.Go(func() error {
			return epochLoop(exitCtx, n, h, interval, ctx.Int(concurrencyFlag.Name))
		})
	}
	g.Go(func() error {
		<-exitCtx.Done()
		return nil
	})
	return g.Wait()
}
