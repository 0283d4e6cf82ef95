package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrVaultNotFound      = errors.Register(ModuleName, 1, "vault not found")
	ErrAlreadyInitialised = errors.Register(ModuleName, 2, "already initialised")
	ErrNotInitialised     = errors.Register(ModuleName, 3, "not initialised")
	ErrInsufficientBalance = errors.Register(ModuleName, 4, "insufficient balance")
	ErrUnauthorized       = errors.Register(ModuleName, 5, "caller is not governance")
	ErrNotController      = errors.Register(ModuleName, 6, "caller is not the controller")
	ErrInvalidFeeRate     = errors.Register(ModuleName, 7, "invalid fee rate")
	ErrControllerSet      = errors.Register(ModuleName, 8, "controller already set")
	ErrNoBoundStrategy    = errors.Register(ModuleName, 9, "vault has no bound strategy")
	ErrInsufficientAllowance = errors.Register(ModuleName, 10, "insufficient allowance")
)
