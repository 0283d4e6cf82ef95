package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrTicketNotFound        = errors.Register(ModuleName, 1, "ticket not found")
	ErrTicketNotReady        = errors.Register(ModuleName, 2, "ticket not ready to settle")
	ErrTicketAlreadyConsumed = errors.Register(ModuleName, 3, "ticket already consumed")
	ErrInsufficientBalance   = errors.Register(ModuleName, 4, "insufficient balance")
	ErrUnauthorized          = errors.Register(ModuleName, 5, "caller does not own the ticket")
	ErrAssetMismatch         = errors.Register(ModuleName, 6, "destination asset mismatch")
)
