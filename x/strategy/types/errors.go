package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrStrategyNotFound   = errors.Register(ModuleName, 1, "strategy not found")
	ErrNotController      = errors.Register(ModuleName, 2, "caller is not the controller")
	ErrAlreadyInitialised = errors.Register(ModuleName, 3, "already initialised")
	ErrNotInitialised     = errors.Register(ModuleName, 4, "not initialised")
	ErrNotApproved        = errors.Register(ModuleName, 5, "tokens not approved")
	ErrInsufficientBalance = errors.Register(ModuleName, 6, "insufficient balance")
	ErrTokenBound         = errors.Register(ModuleName, 7, "token already bound")
	ErrTokenNotBound      = errors.Register(ModuleName, 8, "token not bound")
	ErrShareFloor         = errors.Register(ModuleName, 9, "cannot withdraw below the initial share floor")
	ErrVariantMismatch    = errors.Register(ModuleName, 10, "operation not supported by this strategy variant")
	ErrNoUnderlyingTokens = errors.Register(ModuleName, 11, "no underlying tokens configured")
	ErrUnauthorized       = errors.Register(ModuleName, 12, "caller is not governance")
	ErrAlreadyExists      = errors.Register(ModuleName, 13, "strategy already exists")
	ErrPoolExists         = errors.Register(ModuleName, 14, "pool already created")
)
