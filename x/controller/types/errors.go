package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrUnauthorized      = errors.Register(ModuleName, 1, "caller is not governance or strategist")
	ErrBindingViolation  = errors.Register(ModuleName, 2, "binding violation")
	ErrBindingNotFound   = errors.Register(ModuleName, 3, "binding not found")
	ErrSenderNotVault    = errors.Register(ModuleName, 4, "caller is not part of a bound pairing")
	ErrMaxFeeZero        = errors.Register(ModuleName, 5, "no fee budget configured")
	ErrExceedsMaxFee     = errors.Register(ModuleName, 6, "amount exceeds the fee budget")
	ErrAlreadyExtracted  = errors.Register(ModuleName, 7, "fee already extracted")
	ErrExecutionReverted = errors.Register(ModuleName, 8, "strategy command reverted")
	ErrUnknownCommand    = errors.Register(ModuleName, 9, "unknown strategy command")
	ErrAlreadyRegistered = errors.Register(ModuleName, 10, "strategy already registered")
)
