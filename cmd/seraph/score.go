// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/Eliascm17/seraph/builtin/seraph"
	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/native/history"
	"github.com/Eliascm17/seraph/runtime"
)

// voteAccounts lists every vote account in the ledger.
func voteAccounts(rt *runtime.Runtime) (votes []solana.PublicKey, err error) {
	err = rt.View(func(l *ledger.Ledger, _ chain.Clock) error {
		return l.Iterate(chain.VoteProgramID, func(addr solana.PublicKey, _ *ledger.Account) bool {
			votes = append(votes, addr)
			return true
		})
	})
	return
}

// planScores builds a CalculateScore instruction per vote account. Deriving the
// history addresses dominates, so it runs on up to concurrency goroutines.
func planScores(ctx context.Context, admin solana.PublicKey, votes []solana.PublicKey, concurrency int) ([]*runtime.Instruction, error) {
	ixs := make([]*runtime.Instruction, len(votes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, vote := range votes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			addr, _ := history.Address(vote)
			ixs[i] = seraph.NewCalculateScoreInstruction(admin, addr, vote)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ixs, nil
}

type scoreSummary struct {
	Scored, Skipped, Failed int
}

// scoreAll scores every validator of the ledger, one transaction each. A failed
// validator is logged and does not stop the others. Validators refused by the
// tenure gate count as skipped.
func scoreAll(ctx context.Context, n *node, concurrency int, progress bool) (*scoreSummary, error) {
	votes, err := voteAccounts(n.rt)
	if err != nil {
		return nil, errors.Wrap(err, "list vote accounts")
	}
	ixs, err := planScores(ctx, n.admin.PublicKey(), votes, concurrency)
	if err != nil {
		return nil, err
	}

	var bar *pb.ProgressBar
	if progress {
		fmt.Println(">> Scoring validators <<")
		bar = pb.New(len(ixs)).SetMaxWidth(90).Start()
		defer func() { bar.NotPrint = true }()
	}

	var sum scoreSummary
	for i, ix := range ixs {
		if err := ctx.Err(); err != nil {
			return &sum, err
		}
		receipt, err := n.submit(nil, ix)
		switch {
		case errors.Is(err, seraph.ErrNotEnoughEpochs):
			sum.Skipped++
		case err != nil:
			sum.Failed++
			logger.Warn("score failed", "vote", votes[i], "err", err)
		case hasEvent(receipt, seraph.EventValidatorScored):
			sum.Scored++
		default:
			sum.Skipped++
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return &sum, nil
}

func hasEvent(receipt *runtime.Receipt, name string) bool {
	for _, ev := range receipt.Events {
		if ev.Name == name {
			return true
		}
	}
	return false
}
