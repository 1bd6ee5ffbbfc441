// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package seraph

import (
	"fmt"

	"github.com/Eliascm17/seraph/builtin/seraph/lifecycle"
)

// Error is a program error with a stable code.
type Error struct {
	Code uint32
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("seraph error %d: %s", e.Code, e.Msg)
}

const customErrorOffset = 6000

var (
	ErrCustom             = &Error{customErrorOffset, "custom error"}
	ErrNotEnoughEpochs    = &Error{customErrorOffset + 1, "validator cannot be scored yet: not enough epochs have passed"}
	ErrAuthorityMismatch  = &Error{customErrorOffset + 2, "authority mismatch"}
	ErrAccountMismatch    = &Error{customErrorOffset + 3, "account mismatch"}
	ErrAlreadyInitialized = &Error{customErrorOffset + 4, "pool already initialized"}
	ErrInvalidTransition  = &Error{customErrorOffset + 5, "invalid stake lifecycle transition"}
)

// NativeRejection is returned when the native stake program refuses an operation.
// Its cause is the native error, untouched.
type NativeRejection struct {
	Op    lifecycle.Op
	cause error
}

func (e *NativeRejection) Error() string {
	return fmt.Sprintf("native stake %v rejected: %v", e.Op, e.cause)
}

func (e *NativeRejection) Cause() error  { return e.cause }
func (e *NativeRejection) Unwrap() error { return e.cause }
