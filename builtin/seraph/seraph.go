// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package seraph implements the pool program: it scores validators from their
// history into a ranked shortlist and moves pool controlled stake between them.
package seraph

import (
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/Eliascm17/seraph/builtin/seraph/lifecycle"
	"github.com/Eliascm17/seraph/builtin/seraph/pool"
	"github.com/Eliascm17/seraph/builtin/seraph/score"
	"github.com/Eliascm17/seraph/builtin/seraph/vlist"
	"github.com/Eliascm17/seraph/chain"
	"github.com/Eliascm17/seraph/ledger"
	"github.com/Eliascm17/seraph/log"
	"github.com/Eliascm17/seraph/native/history"
	"github.com/Eliascm17/seraph/native/stake"
	"github.com/Eliascm17/seraph/native/system"
	"github.com/Eliascm17/seraph/runtime"
)

var logger = log.WithContext("pkg", "seraph")

func SetLogger(l log.Logger) {
	logger = l
}

// StakeProgram is the staking primitive the pool drives.
type StakeProgram interface {
	Delegate(ctx *runtime.Context, stakeAccount, vote solana.PublicKey) error
	Deactivate(ctx *runtime.Context, stakeAccount solana.PublicKey) error
	Redelegate(ctx *runtime.Context, stakeAccount, vote, newStakeAccount solana.PublicKey) error
}

type nativeStake struct{}

func (nativeStake) Delegate(ctx *runtime.Context, addr, vote solana.PublicKey) error {
	return stake.Delegate(ctx, addr, vote)
}

func (nativeStake) Deactivate(ctx *runtime.Context, addr solana.PublicKey) error {
	return stake.Deactivate(ctx, addr)
}

func (nativeStake) Redelegate(ctx *runtime.Context, addr, vote, newAddr solana.PublicKey) error {
	return stake.Redelegate(ctx, addr, vote, newAddr)
}

// Program is the pool program.
type Program struct {
	config Config
	stake  StakeProgram
}

// New creates the program backed by the native stake program.
func New(config Config) *Program {
	return &Program{config: config, stake: nativeStake{}}
}

// WithStakeProgram returns a copy of the program driving sp instead of the native stake program.
func (p *Program) WithStakeProgram(sp StakeProgram) *Program {
	cpy := *p
	cpy.stake = sp
	return &cpy
}

func (p *Program) ID() solana.PublicKey { return chain.ProgramID }

func (p *Program) Config() Config { return p.config }

// PoolAddress returns the pool address of admin.
func PoolAddress(admin solana.PublicKey) solana.PublicKey {
	addr, _ := pool.Address(admin)
	return addr
}

// VListAddress returns the shortlist address of a pool.
func VListAddress(admin, poolAddr solana.PublicKey) solana.PublicKey {
	addr, _ := vlist.Address(admin, poolAddr)
	return addr
}

func writeData(l *ledger.Ledger, addr solana.PublicKey, data []byte) error {
	acc, err := l.Get(addr)
	if err != nil {
		return err
	}
	if acc == nil || acc.Owner != chain.ProgramID {
		return errors.WithMessagef(ErrAccountMismatch, "%v is not a program account", addr)
	}
	acc.Data = data
	l.Set(addr, acc)
	return nil
}

func saveVList(l *ledger.Ledger, addr solana.PublicKey, v *vlist.VList) error {
	data, err := v.Encode()
	if err != nil {
		return err
	}
	return writeData(l, addr, data)
}

// Initialize creates the pool of admin and its empty shortlist, both funded rent
// exempt by admin. It fails if the pool already exists.
func (p *Program) Initialize(ctx *runtime.Context, admin solana.PublicKey) (solana.PublicKey, error) {
	if !ctx.IsSigner(admin) {
		return solana.PublicKey{}, errors.WithMessagef(ErrAuthorityMismatch, "admin %v did not sign", admin)
	}
	l := ctx.Ledger()

	poolAddr, poolBump := pool.Address(admin)
	exists, err := l.Exists(poolAddr)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if exists {
		return solana.PublicKey{}, errors.WithMessagef(ErrAlreadyInitialized, "pool %v", poolAddr)
	}
	vlAddr, vlBump := vlist.Address(admin, poolAddr)

	signed := ctx.WithSigners(poolAddr, vlAddr)
	if err := system.CreateAccount(signed, admin, poolAddr, chain.MinimumBalance(pool.Space), pool.Space, chain.ProgramID); err != nil {
		return solana.PublicKey{}, errors.WithMessage(err, "create pool account")
	}
	if err := system.CreateAccount(signed, admin, vlAddr, chain.MinimumBalance(vlist.Space), vlist.Space, chain.ProgramID); err != nil {
		return solana.PublicKey{}, errors.WithMessage(err, "create vlist account")
	}

	clock := ctx.Clock()
	data, err := pool.New(admin, clock, poolBump).Encode()
	if err != nil {
		return solana.PublicKey{}, err
	}
	if err := writeData(l, poolAddr, data); err != nil {
		return solana.PublicKey{}, err
	}
	if err := saveVList(l, vlAddr, vlist.New(admin, poolAddr, vlBump)); err != nil {
		return solana.PublicKey{}, err
	}

	ctx.Emit(newEvent(EventPoolInitialized, poolAddr,
		"admin", admin.String(),
		"vlist", vlAddr.String(),
		"startSlot", u64(clock.Slot),
		"startEpoch", u64(clock.Epoch),
	))
	logger.Info("pool initialized", "admin", admin, "pool", poolAddr, "epoch", clock.Epoch)
	return poolAddr, nil
}

// authorize checks admin signed and owns a valid pool, returning the pool and its address.
func (p *Program) authorize(ctx *runtime.Context, admin solana.PublicKey) (*pool.Pool, solana.PublicKey, error) {
	if !ctx.IsSigner(admin) {
		return nil, solana.PublicKey{}, errors.WithMessagef(ErrAuthorityMismatch, "admin %v did not sign", admin)
	}
	poolAddr := PoolAddress(admin)
	pl, err := loadPool(ctx.Ledger(), poolAddr)
	if err != nil {
		return nil, solana.PublicKey{}, err
	}
	if pl == nil {
		return nil, solana.PublicKey{}, errors.WithMessagef(ErrAccountMismatch, "no pool at %v", poolAddr)
	}
	if pl.Admin != admin {
		return nil, solana.PublicKey{}, errors.WithMessagef(ErrAuthorityMismatch, "pool %v is administered by %v", poolAddr, pl.Admin)
	}
	return pl, poolAddr, nil
}

// CalculateScore scores the validator of vote from its history account and
// records it in the shortlist. scored is false, and nothing changes, when the
// history holds no usable entry in the scoring window.
func (p *Program) CalculateScore(ctx *runtime.Context, admin, historyAccount, vote solana.PublicKey) (bool, error) {
	pl, poolAddr, err := p.authorize(ctx, admin)
	if err != nil {
		return false, err
	}
	l := ctx.Ledger()
	epoch := ctx.Clock().Epoch

	if tenure := p.config.MinTenureEpochs; tenure > 0 && pl.EpochsSinceStart(epoch) < tenure {
		return false, errors.WithMessagef(ErrNotEnoughEpochs, "pool started at epoch %d, now %d, need %d", pl.StartEpoch, epoch, tenure)
	}

	hist, err := history.Load(l, historyAccount)
	if err != nil {
		return false, errors.WithMessage(ErrAccountMismatch, err.Error())
	}
	if hist.VoteAccount != vote {
		return false, errors.WithMessagef(ErrAccountMismatch, "history %v belongs to %v", historyAccount, hist.VoteAccount)
	}

	s, ok := score.Calculate(hist, epoch)
	if !ok {
		metricScoreCount().AddWithLabel(1, map[string]string{"outcome": "insufficient"})
		logger.Debug("insufficient history", "vote", vote, "epoch", epoch)
		return false, nil
	}

	vlAddr := VListAddress(admin, poolAddr)
	vl, err := loadVList(l, vlAddr, admin, poolAddr)
	if err != nil {
		return false, err
	}
	stored := vl.InsertOrUpdate(vote, s, epoch)
	if err := saveVList(l, vlAddr, vl); err != nil {
		return false, err
	}
	rank, _, _ := vl.Find(vote)

	outcome := "stored"
	if !stored {
		outcome = "dropped"
	}
	metricScoreCount().AddWithLabel(1, map[string]string{"outcome": outcome})
	metricVListSize().Set(int64(vl.Len()))

	ctx.Emit(newEvent(EventValidatorScored, vote,
		"score", strconv.FormatUint(uint64(s), 10),
		"epoch", u64(epoch),
		"rank", strconv.Itoa(rank),
		"stored", strconv.FormatBool(stored),
	))
	logger.Debug("validator scored", "vote", vote, "score", s, "rank", rank, "stored", stored)
	return true, nil
}

// checkStake loads a stake account and checks the pool controls it: the staker
// authority is either the pool address or its admin.
func checkStake(l *ledger.Ledger, addr, admin, poolAddr solana.PublicKey) (*stake.State, error) {
	st, _, err := stake.Get(l, addr)
	if err != nil {
		return nil, errors.WithMessage(ErrAccountMismatch, err.Error())
	}
	if staker := st.Meta.Authorized.Staker; staker != poolAddr && staker != admin {
		return nil, errors.WithMessagef(ErrAuthorityMismatch, "stake %v is controlled by %v", addr, staker)
	}
	return st, nil
}

// observe re-reads a stake account after a native call and checks it reached want.
func observe(l *ledger.Ledger, op lifecycle.Op, addr solana.PublicKey, epoch uint64, from, want lifecycle.Status, allowed bool) error {
	st, _, err := stake.Get(l, addr)
	if err != nil {
		return errors.WithMessage(ErrInvalidTransition, err.Error())
	}
	if got := lifecycle.FromStake(st, epoch); !allowed || got != want {
		return errors.WithMessagef(ErrInvalidTransition, "%v of %v: %v -> %v", op, addr, from, got)
	}
	return nil
}

// transition runs one stake operation: authorization, the native call signed by
// the pool, then the check of the resulting status.
func (p *Program) transition(ctx *runtime.Context, op lifecycle.Op, admin, addr solana.PublicKey, call func(*runtime.Context) error) (err error) {
	defer func() {
		status := "ok"
		if err != nil {
			status = "failed"
		}
		metricStakeOps().AddWithLabel(1, map[string]string{"op": op.String(), "status": status})
	}()

	_, poolAddr, err := p.authorize(ctx, admin)
	if err != nil {
		return err
	}
	l := ctx.Ledger()
	epoch := ctx.Clock().Epoch

	st, err := checkStake(l, addr, admin, poolAddr)
	if err != nil {
		return err
	}
	from := lifecycle.FromStake(st, epoch)
	want, allowed := lifecycle.Next(op, from)

	if err := call(ctx.WithSigners(poolAddr)); err != nil {
		return &NativeRejection{op, err}
	}
	return observe(l, op, addr, epoch, from, want, allowed)
}

// DelegateStake delegates a pool controlled stake account to vote.
func (p *Program) DelegateStake(ctx *runtime.Context, admin, stakeAccount, vote solana.PublicKey) error {
	err := p.transition(ctx, lifecycle.Delegate, admin, stakeAccount, func(signed *runtime.Context) error {
		return p.stake.Delegate(signed, stakeAccount, vote)
	})
	if err != nil {
		return err
	}
	epoch := ctx.Clock().Epoch
	ctx.Emit(newEvent(EventStakeDelegated, stakeAccount, "vote", vote.String(), "epoch", u64(epoch)))
	logger.Info("stake delegated", "stake", stakeAccount, "vote", vote, "epoch", epoch)
	return nil
}

// DeactivateStake deactivates a pool controlled stake account.
func (p *Program) DeactivateStake(ctx *runtime.Context, admin, stakeAccount solana.PublicKey) error {
	err := p.transition(ctx, lifecycle.Deactivate, admin, stakeAccount, func(signed *runtime.Context) error {
		return p.stake.Deactivate(signed, stakeAccount)
	})
	if err != nil {
		return err
	}
	epoch := ctx.Clock().Epoch
	ctx.Emit(newEvent(EventStakeDeactivated, stakeAccount, "epoch", u64(epoch)))
	logger.Info("stake deactivated", "stake", stakeAccount, "epoch", epoch)
	return nil
}

// RedelegateStake moves the stake of a delegated account to vote through a new
// stake account, created rent exempt by admin. newStakeAccount must sign.
func (p *Program) RedelegateStake(ctx *runtime.Context, admin, stakeAccount, newStakeAccount, vote solana.PublicKey) error {
	epoch := ctx.Clock().Epoch
	err := p.transition(ctx, lifecycle.Redelegate, admin, stakeAccount, func(signed *runtime.Context) error {
		if err := system.CreateAccount(signed, admin, newStakeAccount, chain.MinimumBalance(stake.StateSize), stake.StateSize, chain.StakeProgramID); err != nil {
			return err
		}
		return p.stake.Redelegate(signed, stakeAccount, vote, newStakeAccount)
	})
	if err != nil {
		return err
	}
	if err := observe(ctx.Ledger(), lifecycle.Redelegate, newStakeAccount, epoch, lifecycle.Undelegated, lifecycle.RedelegateTarget, true); err != nil {
		return err
	}
	ctx.Emit(newEvent(EventStakeRedelegated, stakeAccount,
		"newStake", newStakeAccount.String(),
		"vote", vote.String(),
		"epoch", u64(epoch),
	))
	logger.Info("stake redelegated", "stake", stakeAccount, "newStake", newStakeAccount, "vote", vote, "epoch", epoch)
	return nil
}
