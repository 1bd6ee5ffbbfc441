// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/health"
)

// epochLoop advances the clock one epoch every interval and scores every
// validator in the new epoch, until ctx is done.
func epochLoop(ctx context.Context, n *node, h *health.Health, interval time.Duration, concurrency int) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		clock, err := n.rt.AdvanceEpochs(1)
		if err != nil {
			return errors.Wrap(err, "advance epoch")
		}
		sum, err := scoreAll(ctx, n, concurrency, false)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.WithMessagef(err, "score epoch %d", clock.Epoch)
		}
		h.NewEpoch(clock, sum.Scored, sum.Failed)
		logger.Info("epoch scored", "epoch", clock.Epoch, "scored", sum.Scored, "skipped", sum.Skipped, "failed", sum.Failed)
	}
}
