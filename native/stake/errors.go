// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import "github.com/pkg/errors"

var (
	ErrMissingRequiredSignature      = errors.New("missing required signature")
	ErrInvalidAccountOwner           = errors.New("invalid account owner")
	ErrInvalidAccountData            = errors.New("invalid account data")
	ErrAccountNotFound               = errors.New("account not found")
	ErrInsufficientFunds             = errors.New("insufficient funds for rent exemption")
	ErrInsufficientDelegation        = errors.New("stake account has no lamports to delegate")
	ErrInvalidVoteAccount            = errors.New("invalid vote account")
	ErrTooSoonToRedelegate           = errors.New("stake is still delegated, deactivate it first")
	ErrAlreadyDeactivated            = errors.New("stake already deactivated")
	ErrRedelegateTransientOrInactive = errors.New("stake is activating, deactivating or inactive")
	ErrRedelegateToSameVoteAccount   = errors.New("redelegating to the same vote account")
	ErrAlreadyInitialized            = errors.New("stake account already initialized")
)
